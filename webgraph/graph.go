// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package webgraph

import (
	"fmt"
	"io"
	"os"

	"github.com/bvcodec/webgraph/bitio"
	"github.com/bvcodec/webgraph/iterator"
	"github.com/bvcodec/webgraph/properties"
	"github.com/bvcodec/webgraph/werr"
)

// Graph is a handle onto a compressed graph, opened in one of three modes
// (see Mode). It owns the compressed byte buffer or file handle
// exclusively; bitio.Readers opened against it are read-only and may
// coexist freely, each with its own cursor.
type Graph struct {
	Props *properties.Properties

	mode Mode
	file *os.File // Offline only
	data []byte   // Sequential, Random

	offsets []int64 // Random only; len == Props.Nodes+1
}

// Load opens the three files sharing basename (".properties", ".graph",
// ".offsets") according to mode. Offline keeps only the property record
// and a file handle, reading lists lazily and sequentially; Sequential
// loads the graph bytes into memory; Random loads both the graph bytes
// and the offset table, enabling Outdegree and Successors.
func Load(basename string, mode Mode) (*Graph, error) {
	propFile, err := os.Open(basename + ".properties")
	if err != nil {
		return nil, werr.Wrap(werr.Io, "opening properties file", err)
	}
	defer propFile.Close()
	props, err := properties.Parse(propFile)
	if err != nil {
		return nil, werr.Wrap(werr.InvalidConfig, "parsing properties file", err)
	}
	props.BaseName, props.HasBaseName = basename, true

	g := &Graph{Props: props, mode: mode}

	switch mode {
	case Offline:
		f, err := os.Open(basename + ".graph")
		if err != nil {
			return nil, werr.Wrap(werr.Io, "opening graph file", err)
		}
		g.file = f
	case Sequential, Random:
		b, err := os.ReadFile(basename + ".graph")
		if err != nil {
			return nil, werr.Wrap(werr.Io, "reading graph file", err)
		}
		g.data = b
		if mode == Random {
			offsets, err := loadOffsets(basename+".offsets", props)
			if err != nil {
				return nil, err
			}
			g.offsets = offsets
		}
	default:
		return nil, werr.New(werr.InvalidConfig, fmt.Sprintf("unknown mode %v", mode))
	}
	return g, nil
}

func loadOffsets(path string, props *properties.Properties) ([]int64, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, werr.Wrap(werr.Io, "reading offsets file", err)
	}
	r := bitio.NewReaderBytes(b)
	offs := make([]int64, props.Nodes+1)
	var pos int64
	for i := range offs {
		delta, err := readCode(r, props.Flags[properties.Offsets], props.ZetaK)
		if err != nil {
			return nil, werr.Wrap(werr.CorruptStream, fmt.Sprintf("decoding offset %d", i), err)
		}
		pos += int64(delta)
		offs[i] = pos
	}
	return offs, nil
}

// Close releases any file handle Load opened (Offline mode only; a no-op
// in the in-memory modes).
func (g *Graph) Close() error {
	if g.file != nil {
		return g.file.Close()
	}
	return nil
}

// NumNodes returns N, the node count.
func (g *Graph) NumNodes() int { return g.Props.Nodes }

// NumArcs returns M, the arc count.
func (g *Graph) NumArcs() int { return g.Props.Arcs }

// Outdegree decodes only the leading outdegree field of node x's list,
// positioned directly via the offset table. Requires Random mode.
func (g *Graph) Outdegree(x int) (int, error) {
	if g.mode != Random {
		return 0, werr.New(werr.InvalidConfig, "Outdegree requires a graph loaded in Random mode")
	}
	if x < 0 || x >= g.Props.Nodes {
		return 0, werr.New(werr.InvalidWire, fmt.Sprintf("node %d out of range [0,%d)", x, g.Props.Nodes))
	}
	r := bitio.NewReaderBytes(g.data)
	r.Overflow = true
	if err := r.SetPosition(g.offsets[x]); err != nil {
		return 0, err
	}
	d, err := decodeOutdegree(r, g.Props)
	if err != nil {
		return 0, werr.Wrap(werr.CorruptStream, fmt.Sprintf("decoding outdegree for node %d", x), err)
	}
	return d, nil
}

// Successors returns a lazy iterator over node x's out-neighbors,
// positioned via the offset table. Requires Random mode. Resolving a
// nonzero reference recurses into decodeAt for the referenced node, at
// most Props.MaxRefCount levels deep.
func (g *Graph) Successors(x int) (iterator.Iterator, error) {
	if g.mode != Random {
		return nil, werr.New(werr.InvalidConfig, "Successors requires a graph loaded in Random mode")
	}
	it, _, err := g.decodeAt(x)
	return it, err
}

func (g *Graph) decodeAt(x int) (iterator.Iterator, int, error) {
	if x < 0 || x >= g.Props.Nodes {
		return nil, 0, werr.New(werr.InvalidWire, fmt.Sprintf("node %d out of range [0,%d)", x, g.Props.Nodes))
	}
	r := bitio.NewReaderBytes(g.data)
	if err := r.SetPosition(g.offsets[x]); err != nil {
		return nil, 0, err
	}
	lookup := func(ref int) ([]int, error) {
		it, _, err := g.decodeAt(ref)
		if err != nil {
			return nil, err
		}
		return iterator.Drain(it)
	}
	return decodeList(r, g.Props, x, lookup)
}

// NodeIterator returns an iterator that visits nodes from..N-1 in order,
// decoding each list sequentially and maintaining its own cyclic window
// of recently decoded lists to resolve references. from must be 0 unless
// the graph was loaded in Random mode (only Random mode has an offset
// table to seek with).
func (g *Graph) NodeIterator(from int) (*NodeIterator, error) {
	if from < 0 || from > g.Props.Nodes {
		return nil, werr.New(werr.InvalidWire, fmt.Sprintf("from %d out of range [0,%d]", from, g.Props.Nodes))
	}
	if from != 0 && g.mode != Random {
		return nil, werr.New(werr.InvalidConfig, "NodeIterator with from>0 requires Random mode")
	}

	var r *bitio.Reader
	switch g.mode {
	case Offline:
		rdr, err := bitio.NewReaderFile(g.file)
		if err != nil {
			return nil, werr.Wrap(werr.Io, "opening graph file for sequential read", err)
		}
		r = rdr
	case Sequential, Random:
		r = bitio.NewReaderBytes(g.data)
	}
	if from != 0 {
		if err := r.SetPosition(g.offsets[from]); err != nil {
			return nil, err
		}
	}

	return &NodeIterator{
		g:   g,
		r:   r,
		win: newWindow(g.Props.WindowSize),
		n:   g.Props.Nodes,
		idx: from - 1,
	}, nil
}

// NodeIterator sequentially decodes successor lists in ascending node-id
// order, maintaining the cyclic reference window as it goes.
type NodeIterator struct {
	g   *Graph
	r   *bitio.Reader
	win *window
	n   int

	idx       int
	curVals   []int
	curOutdeg int
}

// HasNext reports whether Next would advance to another node.
func (ni *NodeIterator) HasNext() bool { return ni.idx+1 < ni.n }

// Next decodes the next node's list, advancing Index, Outdegree, and
// Successors.
func (ni *NodeIterator) Next() error {
	if !ni.HasNext() {
		return werr.New(werr.InvalidWire, "node iterator exhausted")
	}
	x := ni.idx + 1
	lookup := func(ref int) ([]int, error) {
		list, ok := ni.win.get(ref)
		if !ok && ni.g.offsets != nil {
			// A reference to a node before the iterator's start point is
			// decoded directly via the offset table.
			it, _, err := ni.g.decodeAt(ref)
			if err != nil {
				return nil, err
			}
			return iterator.Drain(it)
		}
		if !ok {
			return nil, werr.New(werr.CorruptStream, fmt.Sprintf("reference %d outside the window while decoding node %d", ref, x))
		}
		return list, nil
	}
	it, d, err := decodeList(ni.r, ni.g.Props, x, lookup)
	if err != nil {
		return werr.Wrap(werr.CorruptStream, fmt.Sprintf("decoding node %d", x), err)
	}
	vals, err := iterator.Drain(it)
	if err != nil {
		return err
	}
	ni.win.put(x, vals, 0)
	ni.curVals = vals
	ni.curOutdeg = d
	ni.idx = x
	return nil
}

// Position reports the bit reader's current position: the bit offset at
// which the next call to Next will begin decoding.
func (ni *NodeIterator) Position() int64 { return ni.r.Position() }

// Index returns the id of the node last visited by Next.
func (ni *NodeIterator) Index() int { return ni.idx }

// Outdegree returns the outdegree of the node last visited by Next.
func (ni *NodeIterator) Outdegree() int { return ni.curOutdeg }

// Successors returns a fresh iterator over the node last visited by
// Next's out-neighbors. It is backed by a capture wrapper (see the
// iterator package) so advancing it does not disturb the cyclic window,
// even after the window slot has been recycled by later nodes.
func (ni *NodeIterator) Successors() (iterator.Iterator, error) {
	return iterator.Capture(iterator.FromSlice(ni.curVals), len(ni.curVals))
}

// WriteOffsets regenerates the offset table for an already-compressed
// graph by decoding it sequentially (via a node iterator, so it works
// whether g was loaded Offline or Sequential) and recording the bit
// length each node's list consumed, gap-coded with the OFFSETS field of
// g.Props. It writes Props.Nodes+1 entries, matching Load's expectations
// for Random mode.
func (g *Graph) WriteOffsets(w io.Writer) error {
	ni, err := g.NodeIterator(0)
	if err != nil {
		return err
	}
	bw := bitio.NewWriter(w)
	n := g.Props.Nodes
	var prevStart int64
	for i := 0; i < n; i++ {
		before := ni.Position()
		gap := before - prevStart
		if _, err := writeCode(bw, g.Props.Flags[properties.Offsets], g.Props.ZetaK, int(gap)); err != nil {
			return werr.Wrap(werr.Io, fmt.Sprintf("writing offset %d", i), err)
		}
		prevStart = before
		if err := ni.Next(); err != nil {
			return err
		}
	}
	after := ni.Position()
	if _, err := writeCode(bw, g.Props.Flags[properties.Offsets], g.Props.ZetaK, int(after-prevStart)); err != nil {
		return werr.Wrap(werr.Io, "writing final offset", err)
	}
	return bw.Flush()
}

// StoreFrom encodes src into the three files sharing basename, using the
// given codec parameters, and returns the property record written.
func StoreFrom(basename string, src ListSource, p Params) (*properties.Properties, error) {
	return StoreFromTraced(basename, src, p, nil)
}

// StoreFromTraced is StoreFrom with an injectable Tracer.
func StoreFromTraced(basename string, src ListSource, p Params, tracer Tracer) (*properties.Properties, error) {
	graphFile, err := os.Create(basename + ".graph")
	if err != nil {
		return nil, werr.Wrap(werr.Io, "creating graph file", err)
	}
	defer graphFile.Close()
	offsetsFile, err := os.Create(basename + ".offsets")
	if err != nil {
		return nil, werr.Wrap(werr.Io, "creating offsets file", err)
	}
	defer offsetsFile.Close()

	graphW := bitio.NewWriterAt(graphFile)
	offsetsW := bitio.NewWriterAt(offsetsFile)

	props, err := Encode(graphW, offsetsW, src, p, tracer)
	if err != nil {
		return nil, err
	}
	props.BaseName, props.HasBaseName = basename, true

	propFile, err := os.Create(basename + ".properties")
	if err != nil {
		return nil, werr.Wrap(werr.Io, "creating properties file", err)
	}
	defer propFile.Close()
	if _, err := props.WriteTo(propFile); err != nil {
		return nil, werr.Wrap(werr.Io, "writing properties file", err)
	}
	return props, nil
}

// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package webgraph

import (
	"fmt"
	"io"

	"github.com/bvcodec/webgraph/bitio"
	"github.com/bvcodec/webgraph/iterator"
	"github.com/bvcodec/webgraph/properties"
	"github.com/bvcodec/webgraph/werr"
)

// ListSource supplies the N successor lists an encode pass consumes, in
// node-id order. Each list must already be sorted, duplicate-free, and
// free of self-loops; Encode validates this and fails with InvalidInput
// otherwise. The adjacency package's Reader satisfies this interface.
type ListSource interface {
	NumNodes() int
	NextList() ([]int, error)
}

// Encode streams every list NextList returns from src through the
// reference-selection and body-emission logic of spec.md section 4.5,
// writing the compressed bitstream to graphW and the gap-coded offset
// table to offsetsW. It returns the property-file record the caller
// should persist alongside the two streams (everything except BaseName,
// which the caller fills in).
func Encode(graphW, offsetsW *bitio.Writer, src ListSource, p Params, tracer Tracer) (*properties.Properties, error) {
	n := src.NumNodes()
	win := newWindow(p.WindowSize)

	var totLinks, totRef, totDist int64
	bitOffset := int64(0)

	for x := 0; x < n; x++ {
		list, err := src.NextList()
		if err != nil {
			return nil, werr.Wrap(werr.Io, fmt.Sprintf("reading successor list for node %d", x), err)
		}
		list = append([]int(nil), list...)
		if err := validateList(list, x, n); err != nil {
			return nil, err
		}

		delta := graphW.BitsWritten() - bitOffset
		if _, err := writeCode(offsetsW, p.Flags[properties.Offsets], p.ZetaK, int(delta)); err != nil {
			return nil, werr.Wrap(werr.Io, "writing offset", err)
		}
		bitOffset = graphW.BitsWritten()

		d := len(list)
		if _, err := writeCode(graphW, p.Flags[properties.Outdegrees], p.ZetaK, d); err != nil {
			return nil, werr.Wrap(werr.Io, fmt.Sprintf("writing outdegree for node %d", x), err)
		}
		if d == 0 {
			win.put(x, list, 0)
			tracer.trace("node %d: outdegree=0", x)
			continue
		}

		ref, blocks, extras, depth, err := chooseReference(win, p, x, list)
		if err != nil {
			return nil, err
		}

		if _, err := writeBody(graphW, p, x, ref, blocks, extras); err != nil {
			return nil, werr.Wrap(werr.Io, fmt.Sprintf("writing body for node %d", x), err)
		}

		win.put(x, list, depth)
		totLinks += int64(d)
		totRef += int64(depth)
		totDist += int64(ref)
		tracer.trace("node %d: outdegree=%d reference=%d blocks=%d extras=%d", x, d, ref, len(blocks), len(extras))
	}

	delta := graphW.BitsWritten() - bitOffset
	if _, err := writeCode(offsetsW, p.Flags[properties.Offsets], p.ZetaK, int(delta)); err != nil {
		return nil, werr.Wrap(werr.Io, "writing final offset", err)
	}

	if err := graphW.Flush(); err != nil {
		return nil, werr.Wrap(werr.Io, "flushing graph stream", err)
	}
	if err := offsetsW.Flush(); err != nil {
		return nil, werr.Wrap(werr.Io, "flushing offsets stream", err)
	}

	props := &properties.Properties{
		Version:           0,
		GraphClass:        p.GraphClass,
		Nodes:             n,
		Arcs:              int(totLinks),
		WindowSize:        p.WindowSize,
		MaxRefCount:       p.MaxRefCount,
		MinIntervalLength: p.MinIntervalLength,
		ZetaK:             p.ZetaK,
		Flags:             p.Flags,
	}
	if n > 0 {
		props.AvgRef, props.HasAvgRef = float64(totRef)/float64(n), true
		props.AvgDist, props.HasAvgDist = float64(totDist)/float64(n), true
	}
	if totLinks > 0 {
		props.BitsPerLink, props.HasBitsPerLink = float64(graphW.BitsWritten())/float64(totLinks), true
	}
	if n > 0 {
		props.BitsPerNode, props.HasBitsPerNode = float64(graphW.BitsWritten())/float64(n), true
	}
	return props, nil
}

// validateList rejects an out-of-range, self-looping, unsorted, or
// duplicated successor list rather than relying on an assertion the way
// the original C++ implementation does (spec.md section 9, open question
// (c)).
func validateList(list []int, x, n int) error {
	prev := -1
	for _, v := range list {
		if v < 0 || v >= n {
			return werr.New(werr.InvalidInput, fmt.Sprintf("node %d: successor %d out of range [0,%d)", x, v, n))
		}
		if v == x {
			return werr.New(werr.InvalidInput, fmt.Sprintf("node %d: self-loop to %d", x, v))
		}
		if v <= prev {
			return werr.New(werr.InvalidInput, fmt.Sprintf("node %d: successor list not strictly increasing at %d", x, v))
		}
		prev = v
	}
	return nil
}

// chooseReference evaluates every admissible candidate reference in
// [0, W] by trial-encoding the body against each into a bit-counting
// sink, and returns the cheapest: its distance, its block list, its
// uncopied extras, and the reference-chain depth the chosen candidate
// commits x to.
func chooseReference(win *window, p Params, x int, list []int) (ref int, blocks, extras []int, depth int, err error) {
	bestExtras := list
	bestCost, err := bodyCost(p, x, 0, nil, bestExtras)
	if err != nil {
		return 0, nil, nil, 0, err
	}
	bestRef, bestBlocks, bestDepth := 0, []int(nil), 0

	for j := 1; j <= p.WindowSize; j++ {
		cand := x - j
		if cand < 0 {
			continue
		}
		refList, ok := win.get(cand)
		if !ok || len(refList) == 0 {
			continue
		}
		candDepth, _ := win.depthOf(cand)
		if candDepth+1 > p.MaxRefCount {
			continue
		}
		cb, ce := computeBlocks(list, refList)
		cost, err := bodyCost(p, x, j, cb, ce)
		if err != nil {
			return 0, nil, nil, 0, err
		}
		if cost < bestCost {
			bestCost = cost
			bestRef, bestBlocks, bestExtras, bestDepth = j, cb, ce, candDepth+1
		}
	}
	return bestRef, bestBlocks, bestExtras, bestDepth, nil
}

// computeBlocks walks curr and ref in lockstep, producing the alternating
// include/exclude block-length list and the extras left over, per the
// state machine of spec.md section 4.5.
func computeBlocks(curr, ref []int) (blocks, extras []int) {
	i, k := 0, 0
	copying := true
	curBlockLen := 0
	for i < len(curr) && k < len(ref) {
		if copying {
			switch {
			case curr[i] > ref[k]:
				blocks = append(blocks, curBlockLen)
				copying = false
				curBlockLen = 0
			case curr[i] < ref[k]:
				extras = append(extras, curr[i])
				i++
			default:
				i++
				k++
				curBlockLen++
			}
		} else {
			switch {
			case curr[i] < ref[k]:
				extras = append(extras, curr[i])
				i++
			case curr[i] > ref[k]:
				k++
				curBlockLen++
			default:
				blocks = append(blocks, curBlockLen)
				copying = true
				curBlockLen = 0
			}
		}
	}
	if copying && k < len(ref) {
		blocks = append(blocks, curBlockLen)
	}
	extras = append(extras, curr[i:]...)
	return blocks, extras
}

// intervalize partitions a sorted, unique slice e into maximal runs of
// consecutive integers of length >= minLen (emitted as left/length pairs)
// and the remaining scattered residuals, per spec.md section 4.5's
// "Intervalize" paragraph. minLen <= 0 disables interval extraction
// entirely (spec.md's "no intervals" mode): every element becomes a
// residual.
func intervalize(e []int, minLen int) (lefts, lens, residuals []int) {
	if minLen <= 0 {
		return nil, nil, e
	}
	n := len(e)
	for i := 0; i < n; {
		runLen := 1
		for i+runLen < n && e[i+runLen-1]+1 == e[i+runLen] {
			runLen++
		}
		if runLen >= minLen {
			lefts = append(lefts, e[i])
			lens = append(lens, runLen)
			i += runLen
		} else {
			residuals = append(residuals, e[i])
			i++
		}
	}
	return lefts, lens, residuals
}

// bodyCost trial-encodes the body of x's list against the given reference
// into a bit-counting sink and returns the number of bits it would cost.
func bodyCost(p Params, x, ref int, blocks, extras []int) (int, error) {
	w := bitio.NewWriter(io.Discard)
	if _, err := writeBody(w, p, x, ref, blocks, extras); err != nil {
		return 0, err
	}
	return int(w.BitsWritten()), nil
}

// writeBody emits the reference, copy-block list (if referencing), and
// extra part (intervals then residuals) of one node's list, per the wire
// layout of spec.md section 4.5. It is used both for real encoding and,
// wrapped around a bit-counting sink, for reference-selection trials.
func writeBody(w *bitio.Writer, p Params, x, ref int, blocks, extras []int) (int, error) {
	start := w.BitsWritten()

	if p.WindowSize > 0 {
		if _, err := writeCode(w, p.Flags[properties.References], p.ZetaK, ref); err != nil {
			return 0, err
		}
	}
	if ref != 0 {
		if _, err := writeCode(w, p.Flags[properties.BlockCount], p.ZetaK, len(blocks)); err != nil {
			return 0, err
		}
		for i, b := range blocks {
			v := b
			if i > 0 {
				v = b - 1
			}
			if _, err := writeCode(w, p.Flags[properties.Blocks], p.ZetaK, v); err != nil {
				return 0, err
			}
		}
	}

	if len(extras) > 0 {
		var lefts, lens, residuals []int
		if p.MinIntervalLength > 0 {
			lefts, lens, residuals = intervalize(extras, p.MinIntervalLength)
			if _, err := w.WriteGamma(len(lefts)); err != nil {
				return 0, err
			}
			prevRight := 0
			for i, left := range lefts {
				if i == 0 {
					if _, err := w.WriteGamma(iterator.Int2Nat(left - x)); err != nil {
						return 0, err
					}
				} else {
					if _, err := w.WriteGamma(left - prevRight - 1); err != nil {
						return 0, err
					}
				}
				prevRight = left + lens[i]
				if _, err := w.WriteGamma(lens[i] - p.MinIntervalLength); err != nil {
					return 0, err
				}
			}
		} else {
			residuals = extras
		}

		if len(residuals) > 0 {
			prev := residuals[0]
			if _, err := writeCode(w, p.Flags[properties.Residuals], p.ZetaK, iterator.Int2Nat(prev-x)); err != nil {
				return 0, err
			}
			for i := 1; i < len(residuals); i++ {
				if _, err := writeCode(w, p.Flags[properties.Residuals], p.ZetaK, residuals[i]-prev-1); err != nil {
					return 0, err
				}
				prev = residuals[i]
			}
		}
	}

	return int(w.BitsWritten() - start), nil
}

// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command bvgraph-compress is the CLI front end for the BVGraph encoder
// described in spec.md section 6: it reads a plain-text adjacency list and
// writes the three files (".graph", ".offsets", ".properties") making up a
// compressed graph, or, given --offsets, regenerates the offset file for
// an already-compressed graph.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dsnet/golib/strconv"

	"github.com/bvcodec/webgraph/adjacency"
	"github.com/bvcodec/webgraph/properties"
	"github.com/bvcodec/webgraph/webgraph"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "bvgraph-compress:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("bvgraph-compress", flag.ContinueOnError)
	source := fs.String("source", "", "basename of the input graph (required)")
	dest := fs.String("dest", "", "basename of the output graph (optional; required unless -offsets is set)")
	windowSize := fs.String("window-size", "", "reference window size (default 10)")
	maxRefCount := fs.String("max-ref-count", "", "maximum reference chain depth (default unbounded)")
	minIntervalLength := fs.String("min-interval-length", "", "minimum run length stored as an interval, or 0 to disable (default 3)")
	zetaK := fs.String("zeta-k", "", "k parameter of the zeta_k residual code (default 5)")
	emitOffsets := fs.Bool("offsets", false, "regenerate the offset file for an already-compressed graph at -source")
	offline := fs.Bool("offline", false, "for -offsets, decode without loading the graph into memory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *source == "" {
		return fmt.Errorf("-source is required")
	}

	if *emitOffsets {
		return runEmitOffsets(*source, *dest, *offline)
	}
	if *dest == "" {
		return fmt.Errorf("-dest is required unless -offsets is set")
	}
	return runCompress(*source, *dest, *windowSize, *maxRefCount, *minIntervalLength, *zetaK)
}

func runCompress(source, dest, windowSize, maxRefCount, minIntervalLength, zetaK string) error {
	f, err := os.Open(source + ".graph-txt")
	if err != nil {
		return err
	}
	defer f.Close()

	src, err := adjacency.NewReader(f)
	if err != nil {
		return err
	}

	params := webgraph.DefaultParams()
	if err := overrideInt(&params.WindowSize, windowSize); err != nil {
		return fmt.Errorf("-window-size: %w", err)
	}
	if err := overrideInt(&params.MaxRefCount, maxRefCount); err != nil {
		return fmt.Errorf("-max-ref-count: %w", err)
	}
	if err := overrideInt(&params.MinIntervalLength, minIntervalLength); err != nil {
		return fmt.Errorf("-min-interval-length: %w", err)
	}
	if err := overrideInt(&params.ZetaK, zetaK); err != nil {
		return fmt.Errorf("-zeta-k: %w", err)
	}

	_, err = webgraph.StoreFrom(dest, src, params)
	return err
}

func runEmitOffsets(source, dest string, offline bool) error {
	mode := webgraph.Sequential
	if offline {
		mode = webgraph.Offline
	}
	g, err := webgraph.Load(source, mode)
	if err != nil {
		return err
	}
	defer g.Close()

	if dest == "" {
		dest = source
	}
	out, err := os.Create(dest + ".offsets")
	if err != nil {
		return err
	}
	defer out.Close()

	if err := g.WriteOffsets(out); err != nil {
		return err
	}
	return writeUpdatedProperties(g.Props, dest)
}

// writeUpdatedProperties re-emits the property file at dest, in case dest
// differs from source (the offsets were computed against source's graph
// but should be discoverable alongside dest's offsets too).
func writeUpdatedProperties(props *properties.Properties, dest string) error {
	if props.BaseName == dest {
		return nil
	}
	f, err := os.Create(dest + ".properties")
	if err != nil {
		return err
	}
	defer f.Close()
	props.BaseName, props.HasBaseName = dest, true
	_, err = props.WriteTo(f)
	return err
}

// overrideInt replaces *dst with s parsed via dsnet/golib's flexible
// numeric-prefix parser (so "1e2" and "100" are both accepted), leaving
// *dst untouched when s is empty.
func overrideInt(dst *int, s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.ParsePrefix(s, strconv.AutoParse)
	if err != nil {
		return err
	}
	*dst = int(v)
	return nil
}

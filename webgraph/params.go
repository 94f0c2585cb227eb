// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package webgraph

import (
	"math"

	"github.com/bvcodec/webgraph/properties"
)

// Params holds the codec parameters that the encoder chooses and that the
// decoder needs in order to make sense of a compressed stream; the loaded
// form lives in properties.Properties, but encoding starts from a Params
// value before any statistics exist to put in a property file.
type Params struct {
	WindowSize        int
	MaxRefCount       int
	MinIntervalLength int // 0 means "no intervals"
	ZetaK             int
	Flags             properties.Flags
	GraphClass        string
}

// DefaultParams mirrors the original implementation's defaults.
func DefaultParams() Params {
	return Params{
		WindowSize:        10,
		MaxRefCount:       math.MaxInt32,
		MinIntervalLength: 3,
		ZetaK:             5,
		Flags:             properties.DefaultFlags(),
		GraphClass:        "BVGraph",
	}
}

// Tracer receives one-line trace events as fields are encoded or decoded.
// A nil Tracer disables tracing; callers on the hot path check for nil
// before formatting anything.
type Tracer func(format string, args ...interface{})

func (t Tracer) trace(format string, args ...interface{}) {
	if t != nil {
		t(format, args...)
	}
}

// Mode selects how Load brings a compressed graph's bytes into a Graph.
type Mode int

const (
	// Offline keeps only the property-file metadata resident; the graph
	// bytes are read from disk lazily through a node iterator, and random
	// access (Outdegree, Successors) is unavailable.
	Offline Mode = iota
	// Sequential loads the graph bytes into memory but not the offsets;
	// only sequential access through a node iterator is available.
	Sequential
	// Random loads both the graph bytes and the offsets into memory,
	// enabling Outdegree and Successors for arbitrary nodes.
	Random
)

func (m Mode) String() string {
	switch m {
	case Offline:
		return "offline"
	case Sequential:
		return "sequential"
	case Random:
		return "random"
	default:
		return "unknown"
	}
}

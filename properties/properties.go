// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package properties reads and writes the key=value sidecar file that
// accompanies a compressed graph, recording the codec parameters needed to
// decode it. It is deliberately a small, self-contained wire-format
// package in the style of the teacher's xflate/meta: a handful of
// exported types plus Parse/WriteTo, no dependency on the bit-level codec
// itself.
package properties

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	dsstrconv "github.com/dsnet/golib/strconv"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "properties: " + string(e) }

// Properties is the parsed content of a <base>.properties file.
type Properties struct {
	Version           int
	GraphClass        string
	Nodes             int
	Arcs              int
	WindowSize        int
	MaxRefCount       int
	MinIntervalLength int
	ZetaK             int // meaningful only when Flags[Residuals] == Zeta
	Flags             Flags

	BaseName    string
	HasBaseName bool

	AvgRef         float64
	HasAvgRef      bool
	AvgDist        float64
	HasAvgDist     bool
	BitsPerLink    float64
	HasBitsPerLink bool
	BitsPerNode    float64
	HasBitsPerNode bool
}

const requiredVersion = 0

// Parse reads a key=value properties file. Lines whose first non-blank
// character is '#' are comments. Parse validates that every required key
// is present, that version is 0, and that zetak is present whenever the
// RESIDUALS field is configured to ZETA.
func Parse(r io.Reader) (*Properties, error) {
	kv := make(map[string]string)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			return nil, Error("malformed line (no '='): " + line)
		}
		key := strings.TrimSpace(line[:eq])
		val := strings.TrimSpace(line[eq+1:])
		kv[key] = val
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("properties: reading: %w", err)
	}

	p := &Properties{}
	var err error

	if p.Version, err = requireInt(kv, "version"); err != nil {
		return nil, err
	}
	if p.Version != requiredVersion {
		return nil, Error(fmt.Sprintf("unsupported version %d", p.Version))
	}
	p.GraphClass = kv["graphclass"]
	if p.Nodes, err = requireInt(kv, "nodes"); err != nil {
		return nil, err
	}
	if p.Arcs, err = requireInt(kv, "arcs"); err != nil {
		return nil, err
	}
	if p.WindowSize, err = requireInt(kv, "windowsize"); err != nil {
		return nil, err
	}
	if p.MaxRefCount, err = requireInt(kv, "maxrefcount"); err != nil {
		return nil, err
	}
	if p.MinIntervalLength, err = requireInt(kv, "minintervallength"); err != nil {
		return nil, err
	}
	flagsStr, ok := kv["compressionflags"]
	if !ok {
		return nil, Error("missing required key compressionflags")
	}
	if p.Flags, err = ParseFlags(flagsStr); err != nil {
		return nil, err
	}
	if p.Flags[Residuals] == Zeta {
		if p.ZetaK, err = requireInt(kv, "zetak"); err != nil {
			return nil, err
		}
	}

	if v, ok := kv["basename"]; ok {
		p.BaseName, p.HasBaseName = v, true
	}
	if v, ok := kv["avgref"]; ok {
		if p.AvgRef, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, Error("invalid avgref: " + v)
		}
		p.HasAvgRef = true
	}
	if v, ok := kv["avgdist"]; ok {
		if p.AvgDist, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, Error("invalid avgdist: " + v)
		}
		p.HasAvgDist = true
	}
	if v, ok := kv["bitsperlink"]; ok {
		if p.BitsPerLink, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, Error("invalid bitsperlink: " + v)
		}
		p.HasBitsPerLink = true
	}
	if v, ok := kv["bitspernode"]; ok {
		if p.BitsPerNode, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, Error("invalid bitspernode: " + v)
		}
		p.HasBitsPerNode = true
	}
	return p, nil
}

// requireInt parses a required integer-valued key using the same flexible
// numeric-prefix parser the CLI uses for its flags (dsnet/golib/strconv's
// ParsePrefix with AutoParse), so "1e6"-style magnitudes written by other
// tooling into the integer fields (nodes, arcs, windowsize, and so on)
// parse the same way here as they do on the command line.
func requireInt(kv map[string]string, key string) (int, error) {
	v, ok := kv[key]
	if !ok {
		return 0, Error("missing required key " + key)
	}
	n, err := dsstrconv.ParsePrefix(v, dsstrconv.AutoParse)
	if err != nil {
		return 0, Error("invalid integer for " + key + ": " + v)
	}
	return int(n), nil
}

// WriteTo writes p in key=value form, one key per line, in the same order
// the required keys are listed in section 6.
func (p *Properties) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "version=%d\n", p.Version)
	if p.GraphClass != "" {
		fmt.Fprintf(&b, "graphclass=%s\n", p.GraphClass)
	}
	fmt.Fprintf(&b, "nodes=%d\n", p.Nodes)
	fmt.Fprintf(&b, "arcs=%d\n", p.Arcs)
	fmt.Fprintf(&b, "windowsize=%d\n", p.WindowSize)
	fmt.Fprintf(&b, "maxrefcount=%d\n", p.MaxRefCount)
	fmt.Fprintf(&b, "minintervallength=%d\n", p.MinIntervalLength)
	fmt.Fprintf(&b, "compressionflags=%s\n", p.Flags.String())
	if p.Flags[Residuals] == Zeta {
		fmt.Fprintf(&b, "zetak=%d\n", p.ZetaK)
	}
	if p.HasBaseName {
		fmt.Fprintf(&b, "basename=%s\n", p.BaseName)
	}
	if p.HasAvgRef {
		fmt.Fprintf(&b, "avgref=%g\n", p.AvgRef)
	}
	if p.HasAvgDist {
		fmt.Fprintf(&b, "avgdist=%g\n", p.AvgDist)
	}
	if p.HasBitsPerLink {
		fmt.Fprintf(&b, "bitsperlink=%g\n", p.BitsPerLink)
	}
	if p.HasBitsPerNode {
		fmt.Fprintf(&b, "bitspernode=%g\n", p.BitsPerNode)
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

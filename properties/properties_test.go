// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package properties

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseWriteToRoundTrip(t *testing.T) {
	p := &Properties{
		Version:           0,
		GraphClass:        "BVGraph",
		Nodes:             100,
		Arcs:              500,
		WindowSize:        7,
		MaxRefCount:       3,
		MinIntervalLength: 4,
		ZetaK:             5,
		Flags:             DefaultFlags(),
		BaseName:          "mygraph",
		HasBaseName:       true,
		AvgRef:            1.5,
		HasAvgRef:         true,
		AvgDist:           2.25,
		HasAvgDist:        true,
		BitsPerLink:       3.75,
		HasBitsPerLink:    true,
		BitsPerNode:       9.0,
		HasBitsPerNode:    true,
	}
	p.Flags[Residuals] = Zeta

	var buf strings.Builder
	if _, err := p.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	got, err := Parse(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff(p, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMinimal(t *testing.T) {
	const text = `version=0
nodes=4
arcs=5
windowsize=10
maxrefcount=3
minintervallength=3
compressionflags=
zetak=3
`
	p, err := Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Nodes != 4 || p.Arcs != 5 {
		t.Errorf("Nodes=%d Arcs=%d, want 4, 5", p.Nodes, p.Arcs)
	}
	if p.Flags != DefaultFlags() {
		t.Errorf("Flags = %v, want defaults", p.Flags)
	}
	if p.HasBaseName || p.HasAvgRef {
		t.Error("optional fields should be unset when absent from the file")
	}
}

func TestParseMissingRequiredKey(t *testing.T) {
	const text = "version=0\nnodes=4\n"
	if _, err := Parse(strings.NewReader(text)); err == nil {
		t.Error("Parse with missing required keys succeeded, want error")
	}
}

func TestParseBadVersion(t *testing.T) {
	const text = `version=1
nodes=1
arcs=0
windowsize=1
maxrefcount=1
minintervallength=1
compressionflags=
`
	if _, err := Parse(strings.NewReader(text)); err == nil {
		t.Error("Parse with unsupported version succeeded, want error")
	}
}

func TestParseZetaRequiresZetaK(t *testing.T) {
	const text = `version=0
nodes=1
arcs=0
windowsize=1
maxrefcount=1
minintervallength=1
compressionflags=RESIDUALS_ZETA
`
	if _, err := Parse(strings.NewReader(text)); err == nil {
		t.Error("Parse with RESIDUALS_ZETA but no zetak succeeded, want error")
	}
}

func TestParseMalformedLine(t *testing.T) {
	if _, err := Parse(strings.NewReader("not-a-key-value-line\n")); err == nil {
		t.Error("Parse of a line without '=' succeeded, want error")
	}
}

func TestDefaultFlags(t *testing.T) {
	f := DefaultFlags()
	want := Flags{
		Outdegrees: Gamma,
		Blocks:     Gamma,
		Residuals:  Zeta,
		References: Unary,
		BlockCount: Gamma,
		Offsets:    Gamma,
	}
	if f != want {
		t.Errorf("DefaultFlags() = %v, want %v", f, want)
	}
}

func TestParseFlagsOverride(t *testing.T) {
	f, err := ParseFlags("OUTDEGREES_DELTA | BLOCKS_UNARY")
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if f[Outdegrees] != Delta {
		t.Errorf("Outdegrees = %v, want Delta", f[Outdegrees])
	}
	if f[Blocks] != Unary {
		t.Errorf("Blocks = %v, want Unary", f[Blocks])
	}
	// Everything else should remain at its default.
	want := DefaultFlags()
	want[Outdegrees] = Delta
	want[Blocks] = Unary
	if f != want {
		t.Errorf("ParseFlags() = %v, want %v", f, want)
	}
}

func TestParseFlagsRejectsImpermissibleCode(t *testing.T) {
	// OFFSETS only permits GAMMA or DELTA.
	if _, err := ParseFlags("OFFSETS_ZETA"); err == nil {
		t.Error("ParseFlags(OFFSETS_ZETA) succeeded, want error")
	}
}

func TestParseFlagsRejectsUnknownField(t *testing.T) {
	if _, err := ParseFlags("BOGUS_GAMMA"); err == nil {
		t.Error("ParseFlags(BOGUS_GAMMA) succeeded, want error")
	}
}

func TestFlagsStringRoundTrip(t *testing.T) {
	f := DefaultFlags()
	f[References] = Gamma
	s := f.String()
	got, err := ParseFlags(s)
	if err != nil {
		t.Fatalf("ParseFlags(%q): %v", s, err)
	}
	if got != f {
		t.Errorf("round trip through String/ParseFlags = %v, want %v", got, f)
	}
}

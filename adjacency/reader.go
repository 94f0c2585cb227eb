// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package adjacency implements the plain-text adjacency-list reader
// spec.md section 6 describes as an external input to the encoder: a
// ".graph-txt" file whose first line holds the node count N and whose
// following N lines each hold a whitespace-separated, strictly increasing
// successor list (a blank line for an isolated node). spec.md explicitly
// places this format out of the core's scope; it is implemented here only
// as the thin plumbing the CLI and round-trip tests need to have
// something to feed webgraph.Encode.
package adjacency

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bvcodec/webgraph/werr"
)

// Reader sequentially parses a ".graph-txt" stream, satisfying
// webgraph.ListSource.
type Reader struct {
	sc   *bufio.Scanner
	n    int
	next int
}

// NewReader reads the leading node-count line from r and returns a Reader
// positioned to parse the N successor-list lines that follow.
func NewReader(r io.Reader) (*Reader, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, werr.Wrap(werr.Io, "reading node count line", err)
		}
		return nil, werr.New(werr.InvalidInput, "empty adjacency stream: missing node count line")
	}
	n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil || n < 0 {
		return nil, werr.New(werr.InvalidInput, fmt.Sprintf("invalid node count line %q", sc.Text()))
	}
	return &Reader{sc: sc, n: n}, nil
}

// NumNodes returns N, read from the first line.
func (r *Reader) NumNodes() int { return r.n }

// NextList parses and returns the next successor list. It fails with
// io.EOF once all N lists have been returned, and with InvalidInput if a
// line does not parse as whitespace-separated integers.
func (r *Reader) NextList() ([]int, error) {
	if r.next >= r.n {
		return nil, io.EOF
	}
	x := r.next
	r.next++
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return nil, werr.Wrap(werr.Io, fmt.Sprintf("reading successor list for node %d", x), err)
		}
		return nil, werr.New(werr.InvalidInput, fmt.Sprintf("unexpected end of input before node %d's list", x))
	}
	fields := strings.Fields(r.sc.Text())
	if len(fields) == 0 {
		return nil, nil
	}
	list := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, werr.New(werr.InvalidInput, fmt.Sprintf("node %d: non-integer successor %q", x, f))
		}
		list[i] = v
	}
	return list, nil
}

// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package iterator

// captured replays a fixed slice of values snapshotted eagerly from
// another iterator. It exists so a successor list that is itself composed
// of lazy, stream-backed pieces (residuals in particular, see
// residual.go) can still be kept around and cheaply cloned once it needs
// to serve as a future reference list.
type captured struct {
	vals []int
	pos  int
}

// Capture reads up to n values from under and returns an iterator over
// them. It stops early, without error, if under is exhausted first.
func Capture(under Iterator, n int) (Iterator, error) {
	vals := make([]int, 0, n)
	for i := 0; i < n && under.HasNext(); i++ {
		v, err := under.Next()
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return &captured{vals: vals}, nil
}

// CaptureAll drains under entirely into an owned slice.
func CaptureAll(under Iterator) (Iterator, error) {
	vals, err := Drain(under)
	if err != nil {
		return nil, err
	}
	return &captured{vals: vals}, nil
}

// Drain reads every remaining value from it into a plain slice.
func Drain(it Iterator) ([]int, error) {
	var vals []int
	for it.HasNext() {
		v, err := it.Next()
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// FromSlice returns an iterator that replays vals in order. vals is not
// copied; pass a slice the caller will not mutate while the iterator is
// alive (the caller is free to mutate it afterward, since captured never
// aliases it back out).
func FromSlice(vals []int) Iterator {
	return &captured{vals: vals}
}

func (c *captured) HasNext() bool { return c.pos < len(c.vals) }

func (c *captured) Next() (int, error) {
	if !c.HasNext() {
		return 0, ErrExhausted
	}
	v := c.vals[c.pos]
	c.pos++
	return v, nil
}

func (c *captured) Skip(n int) (int, error) {
	remaining := len(c.vals) - c.pos
	if n > remaining {
		n = remaining
	}
	c.pos += n
	return n, nil
}

func (c *captured) Clone() Iterator {
	cp := *c
	return &cp
}

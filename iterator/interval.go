// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package iterator

// interval enumerates, for each i, left[i], left[i]+1, ..., left[i]+len[i]-1.
type interval struct {
	left []int
	len  []int
	i    int // index into left/len
	off  int // offset within the current run
}

// NewInterval builds an iterator over the runs described by left and
// length, two equal-length slices. The slices are not copied; pass slices
// the caller will not mutate while the iterator is alive.
func NewInterval(left, length []int) Iterator {
	it := &interval{left: left, len: length}
	it.advancePastEmpty()
	return it
}

func (it *interval) advancePastEmpty() {
	for it.i < len(it.left) && it.len[it.i] == 0 {
		it.i++
	}
}

func (it *interval) HasNext() bool {
	return it.i < len(it.left)
}

func (it *interval) Next() (int, error) {
	if !it.HasNext() {
		return 0, ErrExhausted
	}
	v := it.left[it.i] + it.off
	it.off++
	if it.off >= it.len[it.i] {
		it.i++
		it.off = 0
		it.advancePastEmpty()
	}
	return v, nil
}

func (it *interval) Skip(n int) (int, error) {
	skipped := 0
	for skipped < n && it.HasNext() {
		remaining := it.len[it.i] - it.off
		take := n - skipped
		if take >= remaining {
			skipped += remaining
			it.i++
			it.off = 0
			it.advancePastEmpty()
		} else {
			it.off += take
			skipped += take
		}
	}
	return skipped, nil
}

func (it *interval) Clone() Iterator {
	cp := *it
	return &cp
}

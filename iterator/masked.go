// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package iterator

// masked wraps an underlying iterator and a mask of alternating
// include/exclude run lengths: the first mask[0] values are included, the
// next mask[1] are excluded, and so on. Once the mask is exhausted, the
// mode flips one more time past the last explicit entry and then holds for
// the rest of the underlying iterator — so a mask of even length leaves
// the remainder included, and a mask of odd length leaves it excluded
// (spec.md section 4.3).
type masked struct {
	under     Iterator
	mask      []int
	idx       int  // next unconsumed mask entry
	remaining int  // values left in the active segment, -1 once the mask is exhausted
	including bool // active segment's mode

	hasNext bool
	next    int
	err     error
}

// NewMasked builds a masked-copy iterator. mask[0] may be 0; every other
// entry must be positive.
func NewMasked(mask []int, under Iterator) Iterator {
	m := &masked{under: under, mask: mask, including: true}
	m.startSegment()
	m.advance()
	return m
}

func (m *masked) startSegment() {
	if m.idx >= len(m.mask) {
		m.remaining = -1 // tail: continue in the current mode indefinitely
		return
	}
	m.remaining = m.mask[m.idx]
	m.idx++
}

// advance positions the iterator on its next emitted value, or records
// that none remain.
func (m *masked) advance() {
	if m.err != nil {
		return
	}
	for {
		if m.remaining == 0 {
			// A segment just finished: flip mode unconditionally, even
			// when the mask is exhausted and this flip carries into the
			// indefinite tail segment — that flip is what makes the
			// tail's mode depend on the mask length's parity.
			m.including = !m.including
			m.startSegment()
			continue
		}
		if !m.under.HasNext() {
			m.hasNext = false
			return
		}
		v, err := m.under.Next()
		if err != nil {
			m.err = err
			m.hasNext = false
			return
		}
		if m.remaining > 0 {
			m.remaining--
		}
		if m.including {
			m.next = v
			m.hasNext = true
			return
		}
		// excluded value: discard and keep scanning
	}
}

func (m *masked) HasNext() bool { return m.err == nil && m.hasNext }

func (m *masked) Next() (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if !m.hasNext {
		return 0, ErrExhausted
	}
	v := m.next
	m.advance()
	return v, nil
}

func (m *masked) Skip(n int) (int, error) {
	skipped := 0
	for skipped < n && m.HasNext() {
		if _, err := m.Next(); err != nil {
			return skipped, err
		}
		skipped++
	}
	return skipped, nil
}

func (m *masked) Clone() Iterator {
	cp := *m
	cp.under = m.under.Clone()
	return &cp
}

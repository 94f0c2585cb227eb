// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package iterator

// residual enumerates a list of residuals decoded one code at a time from a
// bit stream: the first value is base + Nat2Int(code), and every value
// after that is prev + code + 1. The codes themselves are read through
// next, a closure the caller binds to whichever RESIDUALS code
// (gamma/delta/zeta/nibble) the stream's properties configured — this
// package has no notion of bit framing itself.
type residual struct {
	next      func() (int, error)
	base      int
	remaining int
	prev      int
	started   bool

	hasNext bool
	cur     int
	err     error
}

// NewResidual builds an iterator over count residual values relative to
// base, read by repeatedly calling next.
func NewResidual(base int, count int, next func() (int, error)) Iterator {
	r := &residual{next: next, base: base, remaining: count}
	r.advance()
	return r
}

func (r *residual) advance() {
	if r.err != nil || r.remaining <= 0 {
		r.hasNext = false
		return
	}
	code, err := r.next()
	if err != nil {
		r.err = err
		r.hasNext = false
		return
	}
	if !r.started {
		r.cur = r.base + Nat2Int(code)
		r.started = true
	} else {
		r.cur = r.prev + code + 1
	}
	r.prev = r.cur
	r.remaining--
	r.hasNext = true
}

func (r *residual) HasNext() bool { return r.err == nil && r.hasNext }

func (r *residual) Next() (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if !r.hasNext {
		return 0, ErrExhausted
	}
	v := r.cur
	r.advance()
	return v, nil
}

func (r *residual) Skip(n int) (int, error) {
	skipped := 0
	for skipped < n && r.HasNext() {
		if _, err := r.Next(); err != nil {
			return skipped, err
		}
		skipped++
	}
	return skipped, nil
}

// Clone always fails: a residual iterator reads one shared bit stream, so
// two independently-advancing copies cannot coexist. Callers that need to
// keep a successor list around as a future reference must capture it into
// a plain slice first (see Capture) before it is reused.
func (r *residual) Clone() Iterator {
	return errIter{err: Error("residual iterator cannot be cloned; capture it first")}
}

// errIter is an iterator that reports a fixed error from Next. HasNext
// returns true so a caller that follows the usual HasNext/Next protocol
// observes the error instead of silently treating the iterator as merely
// exhausted.
type errIter struct{ err error }

func (e errIter) HasNext() bool           { return true }
func (e errIter) Next() (int, error)      { return 0, e.err }
func (e errIter) Skip(int) (int, error)   { return 0, e.err }
func (e errIter) Clone() Iterator         { return e }

// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package iterator

// emptyIter yields no elements.
type emptyIter struct{}

// Empty returns an iterator with no elements.
func Empty() Iterator { return emptyIter{} }

func (emptyIter) HasNext() bool            { return false }
func (emptyIter) Next() (int, error)       { return 0, ErrExhausted }
func (emptyIter) Skip(n int) (int, error)  { return 0, nil }
func (emptyIter) Clone() Iterator          { return emptyIter{} }

// ErrExhausted is returned by Next when HasNext would have reported false.
// Well-behaved callers check HasNext first and never observe it.
var ErrExhausted = Error("iterator exhausted")

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "iterator: " + string(e) }

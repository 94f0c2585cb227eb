// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bitio

import (
	"fmt"
	"io"
)

// Error is the wrapper type for all errors specific to this package.
//
// Only the lowest two error kinds of spec.md's taxonomy are native to this
// package; CorruptStream/InvalidWire/InvalidInput/InvalidConfig belong to
// callers that know about node ids, references, and codec parameters.
type Error string

func (e Error) Error() string { return "bitio: " + string(e) }

// ErrEOF reports that a read ran past the end of the underlying byte source
// without the Reader's Overflow flag being set.
var ErrEOF error = Error(io.EOF.Error())

// IOError wraps a failure from the underlying byte source (a file, normally).
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string { return fmt.Sprintf("bitio: %s: %v", e.Op, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

func ioErrorf(op string, err error) error {
	return &IOError{Op: op, Err: err}
}

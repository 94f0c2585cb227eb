// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package werr defines the error taxonomy shared by the codec, property,
// and adjacency packages, following the wrapper-type-with-prefix pattern
// the teacher uses for its per-format Error string types, extended with a
// Kind so callers can branch on the failure category without parsing
// messages.
package werr

import "fmt"

// Kind classifies why an operation failed.
type Kind int

const (
	// Io indicates the underlying byte source failed: disk full, a
	// truncated file, a permission error.
	Io Kind = iota
	// Eof indicates end of bit stream was reached before a required code
	// completed. Not raised by a reader in overflow mode.
	Eof
	// CorruptStream indicates a decoded code would read beyond the
	// stream, or a decoded value exceeds a documented bound.
	CorruptStream
	// InvalidWire indicates a decoded node id or field is out of range
	// or inconsistent with the fields that follow it.
	InvalidWire
	// InvalidInput indicates an encoder was given an unsorted,
	// duplicated, self-looping, or out-of-range successor list.
	InvalidInput
	// InvalidConfig indicates a property sidecar is missing a required
	// key, names an unknown flag token, declares an unsupported
	// version, or a parameter lies outside its documented range.
	InvalidConfig
)

func (k Kind) String() string {
	switch k {
	case Io:
		return "io"
	case Eof:
		return "eof"
	case CorruptStream:
		return "corrupt stream"
	case InvalidWire:
		return "invalid wire"
	case InvalidInput:
		return "invalid input"
	case InvalidConfig:
		return "invalid config"
	default:
		return "unknown"
	}
}

// Error pairs a Kind with the operation that was in progress and,
// optionally, the lower-level error that caused it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Op)
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an *Error with no wrapped cause.
func New(kind Kind, op string) error {
	return &Error{Kind: kind, Op: op}
}

// Wrap returns an *Error recording that op failed because of err.
func Wrap(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf reports the Kind of err, if err is (or wraps) a *werr.Error.
func KindOf(err error) (Kind, bool) {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return 0, false
		}
		err = u.Unwrap()
	}
	return 0, false
}

// Is reports whether err is (or wraps) a *werr.Error of the given Kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

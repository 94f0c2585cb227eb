// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bitio

import (
	"io"
	"os"
)

// defaultWindow is the size of the internal byte window kept in memory for
// a file-backed source, per spec.md section 4.1.
const defaultWindow = 16 * 1024

// source is a random-access view over the bytes a Reader decodes. It
// abstracts over an in-memory buffer and a file, the way the teacher
// package's prefix.buffer/bytesReader/stringReader adapters gave a single
// Peek/Discard view over heterogeneous byte readers; here the adapted shape
// gives a single byteAt/size view instead.
type source struct {
	mem []byte // non-nil in in-memory mode

	file     *os.File // non-nil in file mode
	size     int64    // cached file size, -1 if unknown
	window   []byte   // the resident byte window
	winStart int64    // file offset of window[0]
}

func newMemSource(b []byte) *source {
	return &source{mem: b}
}

func newFileSource(f *os.File) (*source, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, ioErrorf("stat", err)
	}
	return &source{file: f, size: fi.Size()}, nil
}

// Len returns the total number of bytes in the source.
func (s *source) Len() int64 {
	if s.mem != nil {
		return int64(len(s.mem))
	}
	return s.size
}

// byteAt returns the byte at the given absolute offset. ok is false if pos
// is out of range.
func (s *source) byteAt(pos int64) (b byte, ok bool, err error) {
	if pos < 0 {
		return 0, false, nil
	}
	if s.mem != nil {
		if pos >= int64(len(s.mem)) {
			return 0, false, nil
		}
		return s.mem[pos], true, nil
	}
	if pos < s.winStart || pos >= s.winStart+int64(len(s.window)) {
		if err := s.fillWindow(pos); err != nil {
			return 0, false, err
		}
	}
	idx := pos - s.winStart
	if idx < 0 || idx >= int64(len(s.window)) {
		return 0, false, nil
	}
	return s.window[idx], true, nil
}

func (s *source) fillWindow(pos int64) error {
	if cap(s.window) < defaultWindow {
		s.window = make([]byte, defaultWindow)
	}
	s.window = s.window[:cap(s.window)]
	n, err := s.file.ReadAt(s.window, pos)
	s.window = s.window[:n]
	s.winStart = pos
	if err != nil && err != io.EOF {
		return ioErrorf("read", err)
	}
	// ReadAt reports io.EOF when there is nothing left; that is not a
	// failure of the source itself, just a short or empty window.
	return nil
}

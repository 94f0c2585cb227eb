// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package properties

import "strings"

// Code names a universal code used for one wire field.
type Code int

const (
	Gamma Code = iota
	Delta
	Zeta
	Nibble
	Unary
)

func (c Code) String() string {
	switch c {
	case Gamma:
		return "GAMMA"
	case Delta:
		return "DELTA"
	case Zeta:
		return "ZETA"
	case Nibble:
		return "NIBBLE"
	case Unary:
		return "UNARY"
	default:
		return "UNKNOWN"
	}
}

func parseCode(s string) (Code, bool) {
	switch s {
	case "GAMMA":
		return Gamma, true
	case "DELTA":
		return Delta, true
	case "ZETA":
		return Zeta, true
	case "NIBBLE":
		return Nibble, true
	case "UNARY":
		return Unary, true
	default:
		return 0, false
	}
}

// Field names one of the six codec fields a compressionflags string
// configures.
type Field int

const (
	Outdegrees Field = iota
	Blocks
	Residuals
	References
	BlockCount
	Offsets
	numFields
)

func (f Field) String() string {
	switch f {
	case Outdegrees:
		return "OUTDEGREES"
	case Blocks:
		return "BLOCKS"
	case Residuals:
		return "RESIDUALS"
	case References:
		return "REFERENCES"
	case BlockCount:
		return "BLOCK_COUNT"
	case Offsets:
		return "OFFSETS"
	default:
		return "UNKNOWN"
	}
}

func parseField(s string) (Field, bool) {
	switch s {
	case "OUTDEGREES":
		return Outdegrees, true
	case "BLOCKS":
		return Blocks, true
	case "RESIDUALS":
		return Residuals, true
	case "REFERENCES":
		return References, true
	case "BLOCK_COUNT":
		return BlockCount, true
	case "OFFSETS":
		return Offsets, true
	default:
		return 0, false
	}
}

var defaultCode = [numFields]Code{
	Outdegrees: Gamma,
	Blocks:     Gamma,
	Residuals:  Zeta,
	References: Unary,
	BlockCount: Gamma,
	Offsets:    Gamma,
}

var permittedCodes = [numFields][]Code{
	Outdegrees: {Gamma, Delta},
	Blocks:     {Gamma, Delta, Unary},
	Residuals:  {Gamma, Delta, Zeta, Nibble},
	References: {Gamma, Delta, Unary},
	BlockCount: {Gamma, Delta, Unary},
	Offsets:    {Gamma, Delta},
}

func permits(f Field, c Code) bool {
	for _, p := range permittedCodes[f] {
		if p == c {
			return true
		}
	}
	return false
}

// Flags holds the code chosen for each of the six wire fields.
type Flags [numFields]Code

// DefaultFlags returns the default code for every field.
func DefaultFlags() Flags {
	return Flags(defaultCode)
}

// ParseFlags parses a " | "-separated list of FIELD_CODE tokens. Any field
// not named by a token keeps its default code. An unknown field, unknown
// code, or a code not permitted for its field is an error.
func ParseFlags(s string) (Flags, error) {
	f := DefaultFlags()
	s = strings.TrimSpace(s)
	if s == "" {
		return f, nil
	}
	for _, tok := range strings.Split(s, "|") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		field, code, err := parseToken(tok)
		if err != nil {
			return f, err
		}
		f[field] = code
	}
	return f, nil
}

func parseToken(tok string) (Field, Code, error) {
	// Split on the last underscore: BLOCK_COUNT is itself the only field
	// name containing one, so the code name never does.
	idx := strings.LastIndexByte(tok, '_')
	if idx < 0 {
		return 0, 0, badToken(tok)
	}
	fieldName, codeName := tok[:idx], tok[idx+1:]
	field, ok := parseField(fieldName)
	if !ok {
		return 0, 0, badToken(tok)
	}
	code, ok := parseCode(codeName)
	if !ok {
		return 0, 0, badToken(tok)
	}
	if !permits(field, code) {
		return 0, 0, badToken(tok)
	}
	return field, code, nil
}

func badToken(tok string) error {
	return Error("invalid compressionflags token " + tok)
}

// String renders the flags as a full " | "-separated FIELD_CODE list, one
// token per field, in field declaration order.
func (f Flags) String() string {
	var b strings.Builder
	for i := Field(0); i < numFields; i++ {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(i.String())
		b.WriteByte('_')
		b.WriteString(f[i].String())
	}
	return b.String()
}

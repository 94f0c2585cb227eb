// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package webgraph

import (
	"fmt"

	"github.com/bvcodec/webgraph/bitio"
	"github.com/bvcodec/webgraph/properties"
	"github.com/bvcodec/webgraph/werr"
)

// readCode decodes one natural number using the universal code c, which
// must be one of the five codes a compressionflags field can name.
func readCode(r *bitio.Reader, c properties.Code, zetaK int) (int, error) {
	switch c {
	case properties.Gamma:
		return r.ReadGamma()
	case properties.Delta:
		return r.ReadDelta()
	case properties.Zeta:
		return r.ReadZeta(zetaK)
	case properties.Nibble:
		return r.ReadNibble()
	case properties.Unary:
		return r.ReadUnary()
	default:
		return 0, werr.New(werr.InvalidConfig, fmt.Sprintf("unknown code %v", c))
	}
}

// writeCode encodes x using the universal code c.
func writeCode(w *bitio.Writer, c properties.Code, zetaK, x int) (int, error) {
	switch c {
	case properties.Gamma:
		return w.WriteGamma(x)
	case properties.Delta:
		return w.WriteDelta(x)
	case properties.Zeta:
		return w.WriteZeta(x, zetaK)
	case properties.Nibble:
		return w.WriteNibble(x)
	case properties.Unary:
		return w.WriteUnary(x)
	default:
		return 0, werr.New(werr.InvalidConfig, fmt.Sprintf("unknown code %v", c))
	}
}

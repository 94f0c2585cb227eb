// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package webgraph

import (
	"fmt"

	"github.com/dsnet/golib/errs"

	"github.com/bvcodec/webgraph/bitio"
	"github.com/bvcodec/webgraph/iterator"
	"github.com/bvcodec/webgraph/properties"
	"github.com/bvcodec/webgraph/werr"
)

// refLookup resolves the materialized successor list of a reference node,
// either from a cache (the sequential window) or by recursively decoding
// it.
type refLookup func(node int) ([]int, error)

// decodeList parses the wire-format successor list for node x, positioned
// at the start of that list, returning a lazy iterator over S(x) and its
// outdegree. lookupRef supplies the reference list when the list has a
// nonzero reference.
func decodeList(r *bitio.Reader, p *properties.Properties, x int, lookupRef refLookup) (result iterator.Iterator, outdegree int, err error) {
	defer errs.Recover(&err)

	d := decodeOne(r, p, properties.Outdegrees)
	errs.Assert(d >= 0, werr.New(werr.CorruptStream, fmt.Sprintf("negative outdegree for node %d", x)))
	if d == 0 {
		return iterator.Empty(), 0, nil
	}

	ref := 0
	if p.WindowSize > 0 {
		ref = decodeOne(r, p, properties.References)
		errs.Assert(ref >= 0 && ref <= p.WindowSize,
			werr.New(werr.InvalidWire, fmt.Sprintf("reference %d out of [0,%d] for node %d", ref, p.WindowSize, x)))
	}

	if ref == 0 {
		extras, err := decodeExtras(r, p, x, d)
		errs.Panic(err)
		return extras, d, nil
	}

	refNode := x - ref
	errs.Assert(refNode >= 0, werr.New(werr.InvalidWire, fmt.Sprintf("node %d references a node before 0", x)))
	refList, err := lookupRef(refNode)
	errs.Panic(err)

	blockCount := decodeOne(r, p, properties.BlockCount)
	errs.Assert(blockCount >= 0, werr.New(werr.CorruptStream, "negative block count"))

	blocks := make([]int, blockCount)
	sumEven, sumAll := 0, 0
	for i := range blocks {
		b := decodeOne(r, p, properties.Blocks)
		valid := b >= 0
		if i > 0 {
			b++
			valid = b >= 1
		}
		errs.Assert(valid, werr.New(werr.CorruptStream, fmt.Sprintf("invalid block length decoding node %d", x)))
		blocks[i] = b
		sumAll += b
		if i%2 == 0 {
			sumEven += b
		}
	}

	var kappa int
	if blockCount%2 == 1 {
		kappa = sumEven
	} else {
		kappa = sumEven + (len(refList) - sumAll)
	}
	e := d - kappa
	errs.Assert(e >= 0, werr.New(werr.CorruptStream, fmt.Sprintf("extra count negative decoding node %d", x)))

	blockIter := iterator.NewMasked(blocks, iterator.FromSlice(refList))
	extraIter, err := decodeExtras(r, p, x, e)
	errs.Panic(err)

	return iterator.NewMerge(blockIter, extraIter, d), d, nil
}

// decodeExtras parses the interval list and residual list making up the e
// extra (non-copied) successors of node x.
func decodeExtras(r *bitio.Reader, p *properties.Properties, x int, e int) (iterator.Iterator, error) {
	if e == 0 {
		return iterator.Empty(), nil
	}

	remaining := e
	var intervalIter iterator.Iterator
	hasIntervals := false

	if p.MinIntervalLength > 0 {
		intervalCount, err := r.ReadGamma()
		if err != nil {
			return nil, err
		}
		if intervalCount > 0 {
			lefts := make([]int, intervalCount)
			lens := make([]int, intervalCount)
			prevRight := 0
			for i := 0; i < intervalCount; i++ {
				g, err := r.ReadGamma()
				if err != nil {
					return nil, err
				}
				var left int
				if i == 0 {
					left = x + iterator.Nat2Int(g)
				} else {
					left = prevRight + g + 1
				}
				lg, err := r.ReadGamma()
				if err != nil {
					return nil, err
				}
				length := lg + p.MinIntervalLength
				lefts[i], lens[i] = left, length
				prevRight = left + length
				remaining -= length
			}
			if remaining < 0 {
				return nil, werr.New(werr.CorruptStream, fmt.Sprintf("intervals overrun extra count for node %d", x))
			}
			intervalIter = iterator.NewInterval(lefts, lens)
			hasIntervals = true
		}
	}

	hasResiduals := remaining > 0
	var residualIter iterator.Iterator
	if hasResiduals {
		residualIter = iterator.NewResidual(x, remaining, func() (int, error) {
			return readCode(r, p.Flags[properties.Residuals], p.ZetaK)
		})
	}

	switch {
	case !hasIntervals && !hasResiduals:
		return iterator.Empty(), nil
	case !hasResiduals:
		return intervalIter, nil
	case !hasIntervals:
		return residualIter, nil
	default:
		return iterator.NewMerge(intervalIter, residualIter, -1), nil
	}
}

func decodeOne(r *bitio.Reader, p *properties.Properties, f properties.Field) int {
	v, err := readCode(r, p.Flags[f], p.ZetaK)
	errs.Panic(err)
	return v
}

// decodeOutdegree positions r at the leading outdegree field of a list and
// decodes only that, for the fast-path scan used by Graph.Outdegree.
func decodeOutdegree(r *bitio.Reader, p *properties.Properties) (int, error) {
	return readCode(r, p.Flags[properties.Outdegrees], p.ZetaK)
}

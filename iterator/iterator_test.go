// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package iterator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func drainT(t *testing.T, it Iterator) []int {
	t.Helper()
	vals, err := Drain(it)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	return vals
}

func TestInt2NatRoundTrip(t *testing.T) {
	for x := -1000; x <= 1000; x++ {
		if got := Nat2Int(Int2Nat(x)); got != x {
			t.Fatalf("Nat2Int(Int2Nat(%d)) = %d", x, got)
		}
	}
}

func TestEmpty(t *testing.T) {
	it := Empty()
	if it.HasNext() {
		t.Error("Empty().HasNext() = true, want false")
	}
	if _, err := it.Next(); err != ErrExhausted {
		t.Errorf("Empty().Next() error = %v, want ErrExhausted", err)
	}
	if n, err := it.Skip(5); n != 0 || err != nil {
		t.Errorf("Empty().Skip(5) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestInterval(t *testing.T) {
	it := NewInterval([]int{3, 10, 20}, []int{2, 0, 3})
	got := drainT(t, it)
	want := []int{3, 4, 20, 21, 22}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Interval mismatch (-want +got):\n%s", diff)
	}
}

func TestIntervalSkip(t *testing.T) {
	it := NewInterval([]int{3, 10}, []int{4, 4}) // 3,4,5,6,10,11,12,13
	n, err := it.Skip(5)
	if err != nil || n != 5 {
		t.Fatalf("Skip(5) = (%d, %v), want (5, nil)", n, err)
	}
	got := drainT(t, it)
	want := []int{11, 12, 13}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("after Skip mismatch (-want +got):\n%s", diff)
	}
}

func TestIntervalClone(t *testing.T) {
	it := NewInterval([]int{3}, []int{3})
	it.Next()
	cl := it.Clone()
	got1 := drainT(t, it)
	got2 := drainT(t, cl)
	if diff := cmp.Diff(got1, got2); diff != "" {
		t.Errorf("clone diverged from original (-orig +clone):\n%s", diff)
	}
}

func TestMaskedIncludeFirst(t *testing.T) {
	under := NewInterval([]int{0}, []int{10}) // 0..9
	it := NewMasked([]int{3, 2, 2}, under)    // include 3, exclude 2, include 2 (mask length 3 is odd, so the rest is excluded)
	got := drainT(t, it)
	want := []int{0, 1, 2, 5, 6}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Masked mismatch (-want +got):\n%s", diff)
	}
}

func TestMaskedExcludeFirst(t *testing.T) {
	under := NewInterval([]int{0}, []int{6}) // 0..5
	it := NewMasked([]int{0, 2, 2}, under)   // 0-length include, exclude 2, include 2 (mask length 3 is odd, so the rest is excluded)
	got := drainT(t, it)
	want := []int{2, 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Masked mismatch (-want +got):\n%s", diff)
	}
}

func TestMaskedEvenLengthKeepsTail(t *testing.T) {
	under := NewInterval([]int{0}, []int{10}) // 0..9
	it := NewMasked([]int{3, 2}, under)       // include 3, exclude 2 (mask length 2 is even, so the rest is included)
	got := drainT(t, it)
	want := []int{0, 1, 2, 5, 6, 7, 8, 9}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Masked mismatch (-want +got):\n%s", diff)
	}
}

func TestMaskedEmptyMask(t *testing.T) {
	under := NewInterval([]int{0}, []int{3})
	it := NewMasked(nil, under)
	got := drainT(t, it)
	want := []int{0, 1, 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Masked with nil mask mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge(t *testing.T) {
	a := NewInterval([]int{0, 10}, []int{3, 2}) // 0,1,2,10,11
	b := NewInterval([]int{1, 11}, []int{2, 2}) // 1,2,11,12
	it := NewMerge(a, b, -1)
	got := drainT(t, it)
	want := []int{0, 1, 2, 10, 11, 12}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeBound(t *testing.T) {
	a := NewInterval([]int{0}, []int{5})
	b := NewInterval([]int{100}, []int{5})
	it := NewMerge(a, b, 3)
	got := drainT(t, it)
	want := []int{0, 1, 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge with bound mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeOneEmpty(t *testing.T) {
	a := Empty()
	b := NewInterval([]int{5}, []int{3})
	it := NewMerge(a, b, -1)
	got := drainT(t, it)
	want := []int{5, 6, 7}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge with one empty side mismatch (-want +got):\n%s", diff)
	}
}

func TestResidual(t *testing.T) {
	// Encode residuals for base=10: first = 13 (delta +3 -> Int2Nat(3)=6),
	// then 16 (gap 2 -> code 2), then 20 (gap 3 -> code 3).
	codes := []int{Int2Nat(3), 2, 3}
	i := 0
	next := func() (int, error) {
		v := codes[i]
		i++
		return v, nil
	}
	it := NewResidual(10, len(codes), next)
	got := drainT(t, it)
	want := []int{13, 16, 20}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Residual mismatch (-want +got):\n%s", diff)
	}
}

func TestResidualCannotClone(t *testing.T) {
	it := NewResidual(0, 1, func() (int, error) { return 0, nil })
	cl := it.Clone()
	if _, err := cl.Next(); err == nil {
		t.Error("cloned residual iterator's Next() succeeded, want error")
	}
}

func TestCaptureAndClone(t *testing.T) {
	under := NewInterval([]int{0}, []int{5})
	cap, err := Capture(under, 3)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	got := drainT(t, cap)
	want := []int{0, 1, 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Capture mismatch (-want +got):\n%s", diff)
	}

	full := NewInterval([]int{0}, []int{3})
	all, err := CaptureAll(full)
	if err != nil {
		t.Fatalf("CaptureAll: %v", err)
	}
	all.Next()
	cl := all.Clone()
	gotOrig := drainT(t, all)
	gotClone := drainT(t, cl)
	if diff := cmp.Diff(gotOrig, gotClone); diff != "" {
		t.Errorf("captured clone diverged (-orig +clone):\n%s", diff)
	}
}

func TestFromSlice(t *testing.T) {
	it := FromSlice([]int{7, 8, 9})
	if n, err := it.Skip(1); n != 1 || err != nil {
		t.Fatalf("Skip(1) = (%d, %v)", n, err)
	}
	got := drainT(t, it)
	want := []int{8, 9}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromSlice mismatch (-want +got):\n%s", diff)
	}
}

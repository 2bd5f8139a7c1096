// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bitvec_test

import (
	"testing"

	"github.com/evsim/eventsim/bitvec"
)

func mustBV(t *testing.T, width int, s string) bitvec.BitVector {
	t.Helper()
	v, err := bitvec.FromBinaryString(width, s)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestAndReduce(t *testing.T) {
	tests := []struct {
		in   string
		want bitvec.Quad
	}{
		{"11111111111", bitvec.Q1},
		{"11011101111", bitvec.Q0},
	}
	for _, tt := range tests {
		v := mustBV(t, 11, tt.in)
		got := bitvec.AndReduce(v)
		if got.Get(0) != tt.want {
			t.Errorf("AndReduce(%s) = %s, want %s", tt.in, got.Get(0), tt.want)
		}
	}
}

func TestOrReduce(t *testing.T) {
	v := mustBV(t, 4, "0000")
	if bitvec.OrReduce(v).Get(0) != bitvec.Q0 {
		t.Error("OrReduce(0000) != 0")
	}
	v = mustBV(t, 4, "0100")
	if bitvec.OrReduce(v).Get(0) != bitvec.Q1 {
		t.Error("OrReduce(0100) != 1")
	}
}

func TestAddSub(t *testing.T) {
	a := bitvec.FromUint64(16, 18)
	b := bitvec.FromUint64(16, 24)
	sum := bitvec.Add(a, b)
	v, ok := sum.Uint64()
	if !ok || v != 42 {
		t.Fatalf("Add(18, 24) = %v, ok=%v, want 42", v, ok)
	}
	diff := bitvec.Sub(sum, b)
	v, ok = diff.Uint64()
	if !ok || v != 18 {
		t.Fatalf("Sub(42, 24) = %v, ok=%v, want 18", v, ok)
	}
}

func TestMul(t *testing.T) {
	a := bitvec.FromUint64(8, 6)
	b := bitvec.FromUint64(8, 7)
	v, ok := bitvec.Mul(a, b).Uint64()
	if !ok || v != 42 {
		t.Fatalf("Mul(6, 7) = %v, ok=%v, want 42", v, ok)
	}
}

func TestShifts(t *testing.T) {
	v := bitvec.FromUint64(8, 0x0F)
	got, _ := bitvec.Shl(v, 2).Uint64()
	if got != 0x3C {
		t.Errorf("Shl = %#x, want 0x3c", got)
	}
	got, _ = bitvec.Lshr(v, 2).Uint64()
	if got != 0x03 {
		t.Errorf("Lshr = %#x, want 0x03", got)
	}
	neg := bitvec.FromUint64(8, 0x80)
	got, _ = bitvec.Ashr(neg, 1).Uint64()
	if got != 0xC0 {
		t.Errorf("Ashr = %#x, want 0xc0", got)
	}
}

func TestUltEqNeq(t *testing.T) {
	a := bitvec.FromUint64(8, 3)
	b := bitvec.FromUint64(8, 5)
	if bitvec.Ult(a, b).Get(0) != bitvec.Q1 {
		t.Error("Ult(3, 5) != 1")
	}
	if bitvec.Ult(b, a).Get(0) != bitvec.Q0 {
		t.Error("Ult(5, 3) != 0")
	}
	if bitvec.Eq(a, a).Get(0) != bitvec.Q1 {
		t.Error("Eq(3, 3) != 1")
	}
	if bitvec.Neq(a, b).Get(0) != bitvec.Q1 {
		t.Error("Neq(3, 5) != 1")
	}
}

func TestUnknownPropagation(t *testing.T) {
	x := bitvec.New(4)
	known := bitvec.FromUint64(4, 5)
	if bitvec.Eq(x, known).Get(0) != bitvec.QX {
		t.Error("Eq with an all-X operand should be X")
	}
	sum := bitvec.Add(x, known)
	for i := 0; i < sum.Width(); i++ {
		if sum.Get(i) != bitvec.QX {
			t.Fatalf("Add with an X operand should yield all-X, bit %d = %s", i, sum.Get(i))
		}
	}
}

func TestSameRepresentation(t *testing.T) {
	a := mustBV(t, 3, "10X")
	b := mustBV(t, 3, "10X")
	if !bitvec.SameRepresentation(a, b) {
		t.Error("identical vectors (including X) should compare equal")
	}
	c := mustBV(t, 3, "101")
	if bitvec.SameRepresentation(a, c) {
		t.Error("X bit should not compare equal to a defined bit")
	}
}

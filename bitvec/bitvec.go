// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package bitvec provides arbitrary-width four-valued bit vectors with the
// arithmetic, logical, shift and comparison operations that the event
// simulator's primitive evaluators need.
//
// A bit vector is a fixed-width, non-empty sequence of Quad values indexed
// from the least significant bit (index 0) to the most significant bit
// (index Width()-1).
package bitvec

import (
	"strings"

	"github.com/pkg/errors"
)

// Quad is a single four-valued logic bit.
type Quad uint8

// The four quad-values.
const (
	Q0 Quad = iota
	Q1
	QX
	QZ
)

// String returns the conventional single-character representation of q.
func (q Quad) String() string {
	switch q {
	case Q0:
		return "0"
	case Q1:
		return "1"
	case QX:
		return "X"
	case QZ:
		return "Z"
	default:
		return "?"
	}
}

// Known reports whether q is a definite 0 or 1.
func (q Quad) Known() bool { return q == Q0 || q == Q1 }

// AsBool returns the boolean value of q. It panics if q is X or Z; callers
// must only use it where the bit is already known to be definite, as Add and
// Sub do after checking Defined.
func (q Quad) AsBool() bool {
	switch q {
	case Q0:
		return false
	case Q1:
		return true
	default:
		panic(errors.Errorf("bitvec: cannot convert quad value %s to bool", q))
	}
}

func quadOf(b bool) Quad {
	if b {
		return Q1
	}
	return Q0
}

// BitVector is a fixed-width sequence of quad-valued bits.
type BitVector struct {
	bits []Quad
}

// New returns a width-bit vector with every bit set to X.
func New(width int) BitVector {
	if width < 1 {
		panic(errors.Errorf("bitvec: invalid width %d", width))
	}
	bits := make([]Quad, width)
	for i := range bits {
		bits[i] = QX
	}
	return BitVector{bits}
}

// FromBinaryString parses a width-character string of '0', '1', 'x'/'X' or
// 'z'/'Z' characters, most-significant bit first, into a bit vector of the
// given width.
func FromBinaryString(width int, s string) (BitVector, error) {
	if len(s) != width {
		return BitVector{}, errors.Errorf("bitvec: string %q has length %d, want %d", s, len(s), width)
	}
	bits := make([]Quad, width)
	for i, r := range s {
		pos := width - 1 - i
		switch r {
		case '0':
			bits[pos] = Q0
		case '1':
			bits[pos] = Q1
		case 'x', 'X':
			bits[pos] = QX
		case 'z', 'Z':
			bits[pos] = QZ
		default:
			return BitVector{}, errors.Errorf("bitvec: invalid character %q in %q", r, s)
		}
	}
	return BitVector{bits}, nil
}

// FromUint64 returns a width-bit vector holding the low width bits of v.
func FromUint64(width int, v uint64) BitVector {
	bv := New(width)
	for i := 0; i < width; i++ {
		bv.bits[i] = quadOf(v&(1<<uint(i)) != 0)
	}
	return bv
}

// FromQuad returns a 1-bit vector holding q.
func FromQuad(q Quad) BitVector { return BitVector{bits: []Quad{q}} }

// Width returns the number of bits in v.
func (v BitVector) Width() int { return len(v.bits) }

// Get returns the quad-value of bit i.
func (v BitVector) Get(i int) Quad {
	if i < 0 || i >= len(v.bits) {
		panic(errors.Errorf("bitvec: index %d out of range for width %d", i, len(v.bits)))
	}
	return v.bits[i]
}

// Set assigns the quad-value of bit i.
func (v BitVector) Set(i int, q Quad) {
	if i < 0 || i >= len(v.bits) {
		panic(errors.Errorf("bitvec: index %d out of range for width %d", i, len(v.bits)))
	}
	v.bits[i] = q
}

// Clone returns an independent copy of v.
func (v BitVector) Clone() BitVector {
	bits := make([]Quad, len(v.bits))
	copy(bits, v.bits)
	return BitVector{bits}
}

// String renders v most-significant bit first.
func (v BitVector) String() string {
	var b strings.Builder
	b.Grow(len(v.bits))
	for i := len(v.bits) - 1; i >= 0; i-- {
		b.WriteString(v.bits[i].String())
	}
	return b.String()
}

// Defined reports whether every bit of v is a definite 0 or 1.
func (v BitVector) Defined() bool {
	for _, q := range v.bits {
		if !q.Known() {
			return false
		}
	}
	return true
}

// Uint64 returns the unsigned integer value of v and true, or 0 and false if
// any bit is not a definite 0 or 1, or if v is wider than 64 bits.
func (v BitVector) Uint64() (uint64, bool) {
	if len(v.bits) > 64 {
		return 0, false
	}
	var r uint64
	for i, q := range v.bits {
		if !q.Known() {
			return 0, false
		}
		if q == Q1 {
			r |= 1 << uint(i)
		}
	}
	return r, true
}

// SameRepresentation reports whether a and b have the same width and every
// bit compares exactly equal, including unknown (X) and high-impedance (Z)
// values. The event engine uses this, not numeric equality, to decide
// whether a primitive's output has changed.
func SameRepresentation(a, b BitVector) bool {
	if len(a.bits) != len(b.bits) {
		return false
	}
	for i := range a.bits {
		if a.bits[i] != b.bits[i] {
			return false
		}
	}
	return true
}

func widen(a, b BitVector) (BitVector, BitVector, int) {
	w := a.Width()
	if b.Width() > w {
		w = b.Width()
	}
	return a.ZeroExtend(w), b.ZeroExtend(w), w
}

// ZeroExtend returns v extended to width bits with its upper bits set to 0.
// width must be >= v.Width().
func (v BitVector) ZeroExtend(width int) BitVector {
	if width < v.Width() {
		panic(errors.Errorf("bitvec: zero-extend target width %d smaller than source width %d", width, v.Width()))
	}
	if width == v.Width() {
		return v.Clone()
	}
	r := New(width)
	copy(r.bits, v.bits)
	for i := v.Width(); i < width; i++ {
		r.bits[i] = Q0
	}
	return r
}

// Slice returns bits [lo, hi) of v as a (hi-lo)-bit vector. It requires
// hi > lo.
func (v BitVector) Slice(lo, hi int) BitVector {
	if hi <= lo {
		panic(errors.Errorf("bitvec: invalid slice [%d, %d)", lo, hi))
	}
	if lo < 0 || hi > v.Width() {
		panic(errors.Errorf("bitvec: slice [%d, %d) out of range for width %d", lo, hi, v.Width()))
	}
	r := New(hi - lo)
	copy(r.bits, v.bits[lo:hi])
	return r
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bitvec

// Add, Sub and Mul implement general-width arithmetic over a and b, widened
// to a common width first. If either operand carries an unknown bit, the
// entire result is X, since this library does not attempt bit-level
// X-propagation through carry chains (see the arithmetic non-goal).
//
// The ripple-carry structure of Add mirrors hwlib/arith.go's AdderN, with a
// single carry threaded bit by bit instead of one Component closure per bit.
func Add(a, b BitVector) BitVector {
	a, b, w := widen(a, b)
	if !a.Defined() || !b.Defined() {
		return New(w)
	}
	r := New(w)
	carry := false
	for i := 0; i < w; i++ {
		va, vb := a.bits[i].AsBool(), b.bits[i].AsBool()
		sum := va != vb != carry
		carry = (va && vb) || (va && carry) || (vb && carry)
		r.bits[i] = quadOf(sum)
	}
	return r
}

// Sub returns a - b computed as a + (two's complement of b), the usual
// ripple-carry-adder trick (carry-in forced to 1, b inverted).
func Sub(a, b BitVector) BitVector {
	a, b, w := widen(a, b)
	if !a.Defined() || !b.Defined() {
		return New(w)
	}
	nb := Not(b)
	r := New(w)
	carry := true
	for i := 0; i < w; i++ {
		va, vb := a.bits[i].AsBool(), nb.bits[i].AsBool()
		sum := va != vb != carry
		carry = (va && vb) || (va && carry) || (vb && carry)
		r.bits[i] = quadOf(sum)
	}
	return r
}

// Mul returns the low w bits of a * b, w being max(a.Width(), b.Width()),
// computed as repeated shift-and-add over the defined bits of b.
func Mul(a, b BitVector) BitVector {
	a, b, w := widen(a, b)
	if !a.Defined() || !b.Defined() {
		return New(w)
	}
	acc := New(w)
	for i := range acc.bits {
		acc.bits[i] = Q0
	}
	shifted := a.Clone()
	for i := 0; i < w; i++ {
		if b.bits[i] == Q1 {
			acc = Add(acc, shifted)
		}
		shifted = Shl(shifted, 1)
	}
	return acc
}

// shiftAmount extracts a definite, non-negative shift amount from sh, or
// reports false if sh carries any unknown bit.
func shiftAmount(sh BitVector) (int, bool) {
	v, ok := sh.Uint64()
	if !ok {
		return 0, false
	}
	return int(v), true
}

// Shl returns v shifted left by amt bits, zero-filling from the right and
// keeping v's original width (overflowing bits are dropped).
func Shl(v BitVector, amt int) BitVector {
	w := v.Width()
	r := New(w)
	for i := 0; i < w; i++ {
		if i-amt >= 0 && i-amt < w {
			r.bits[i] = v.bits[i-amt]
		} else {
			r.bits[i] = Q0
		}
	}
	return r
}

// ShlBV shifts v left by the amount named by a bit vector shift operand,
// returning an all-X result if the shift amount itself is not fully defined.
func ShlBV(v, sh BitVector) BitVector {
	amt, ok := shiftAmount(sh)
	if !ok {
		return New(v.Width())
	}
	return Shl(v, amt)
}

// Lshr returns v shifted right by amt bits, zero-filling from the left.
func Lshr(v BitVector, amt int) BitVector {
	w := v.Width()
	r := New(w)
	for i := 0; i < w; i++ {
		if i+amt < w {
			r.bits[i] = v.bits[i+amt]
		} else {
			r.bits[i] = Q0
		}
	}
	return r
}

// LshrBV is the bit-vector-shift-amount form of Lshr.
func LshrBV(v, sh BitVector) BitVector {
	amt, ok := shiftAmount(sh)
	if !ok {
		return New(v.Width())
	}
	return Lshr(v, amt)
}

// Ashr returns v arithmetically shifted right by amt bits, sign-extending
// from the most significant bit.
func Ashr(v BitVector, amt int) BitVector {
	w := v.Width()
	r := New(w)
	sign := v.bits[w-1]
	for i := 0; i < w; i++ {
		if i+amt < w {
			r.bits[i] = v.bits[i+amt]
		} else {
			r.bits[i] = sign
		}
	}
	return r
}

// AshrBV is the bit-vector-shift-amount form of Ashr.
func AshrBV(v, sh BitVector) BitVector {
	amt, ok := shiftAmount(sh)
	if !ok {
		return New(v.Width())
	}
	return Ashr(v, amt)
}

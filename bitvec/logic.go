// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bitvec

// and2 combines two single bits through a four-valued AND: a defined 0 on
// either side forces the result to 0 regardless of the other side; otherwise
// any unknown bit forces the result to X.
func and2(a, b Quad) Quad {
	if a == Q0 || b == Q0 {
		return Q0
	}
	if a == Q1 && b == Q1 {
		return Q1
	}
	return QX
}

func or2(a, b Quad) Quad {
	if a == Q1 || b == Q1 {
		return Q1
	}
	if a == Q0 && b == Q0 {
		return Q0
	}
	return QX
}

func xor2(a, b Quad) Quad {
	if !a.Known() || !b.Known() {
		return QX
	}
	return quadOf(a.AsBool() != b.AsBool())
}

func not1(a Quad) Quad {
	switch a {
	case Q0:
		return Q1
	case Q1:
		return Q0
	default:
		return QX
	}
}

func bitwise(a, b BitVector, f func(Quad, Quad) Quad) BitVector {
	a, b, w := widen(a, b)
	r := New(w)
	for i := 0; i < w; i++ {
		r.bits[i] = f(a.bits[i], b.bits[i])
	}
	return r
}

// And returns the bitwise AND of a and b, as hwlib/gates.go's GateN does for
// plain bool buses, generalized to four-valued logic.
func And(a, b BitVector) BitVector { return bitwise(a, b, and2) }

// Or returns the bitwise OR of a and b.
func Or(a, b BitVector) BitVector { return bitwise(a, b, or2) }

// Xor returns the bitwise XOR of a and b.
func Xor(a, b BitVector) BitVector { return bitwise(a, b, xor2) }

// Not returns the bitwise complement of v.
func Not(v BitVector) BitVector {
	r := New(v.Width())
	for i, q := range v.bits {
		r.bits[i] = not1(q)
	}
	return r
}

// AndReduce returns a single bit that is 1 iff every bit of v is 1, 0 if any
// bit of v is a definite 0 (dominates, per coreir.andr semantics), and X
// otherwise.
func AndReduce(v BitVector) BitVector {
	r := New(1)
	acc := Q1
	for _, q := range v.bits {
		acc = and2(acc, q)
		if acc == Q0 {
			break
		}
	}
	r.bits[0] = acc
	return r
}

// OrReduce returns a single bit that is 1 iff any bit of v is 1, 0 if every
// bit of v is a definite 0, and X otherwise.
func OrReduce(v BitVector) BitVector {
	r := New(1)
	acc := Q0
	for _, q := range v.bits {
		acc = or2(acc, q)
		if acc == Q1 {
			break
		}
	}
	r.bits[0] = acc
	return r
}

// Eq returns a single bit that is 1 iff a and b (zero-extended to a common
// width) represent the same value, 0 if they differ at any position where
// both bits are known, and X otherwise (some position has an unknown bit and
// no known position differs).
func Eq(a, b BitVector) BitVector {
	a, b, w := widen(a, b)
	r := New(1)
	result := Q1
	for i := 0; i < w; i++ {
		qa, qb := a.bits[i], b.bits[i]
		if qa.Known() && qb.Known() {
			if qa != qb {
				result = Q0
				break
			}
			continue
		}
		result = QX
	}
	r.bits[0] = result
	return r
}

// Neq returns the logical complement of Eq.
func Neq(a, b BitVector) BitVector {
	e := Eq(a, b)
	return Not(e)
}

// Ult returns a single bit that is 1 iff the unsigned value of a is less
// than the unsigned value of b, 0 if not, and X if either operand has any
// unknown bit.
func Ult(a, b BitVector) BitVector {
	a, b, w := widen(a, b)
	r := New(1)
	if !a.Defined() || !b.Defined() {
		r.bits[0] = QX
		return r
	}
	lt := false
	for i := w - 1; i >= 0; i-- {
		if a.bits[i] == b.bits[i] {
			continue
		}
		lt = a.bits[i] == Q0 && b.bits[i] == Q1
		break
	}
	r.bits[0] = quadOf(lt)
	return r
}

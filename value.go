// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package eventsim is an event-driven digital-circuit simulator: given a
// netlist.Module, it propagates quad-valued bit changes through a working
// set of "fresh" wires until the circuit reaches a fixed point, rather than
// re-evaluating every component on a fixed schedule.
package eventsim

import (
	"github.com/pkg/errors"

	"github.com/evsim/eventsim/bitvec"
	"github.com/evsim/eventsim/netlist"
)

// WireValue is the runtime value stored for one Wireable: the shape of the
// value tree always mirrors the shape of the netlist.Type tree it was built
// from.
type WireValue interface {
	isWireValue()
}

// BitValue holds a single quad-valued bit.
type BitValue struct {
	Q bitvec.Quad
}

func (*BitValue) isWireValue() {}

// ArrayValue holds the values of a fixed-length array or bus, in the same
// order as the netlist.ArrayType it mirrors.
type ArrayValue struct {
	Elems []WireValue
}

func (*ArrayValue) isWireValue() {}

// RecordValue holds the values of a record's fields, looked up by name.
type RecordValue struct {
	names  []string
	values []WireValue
	index  map[string]int
}

func (*RecordValue) isWireValue() {}

// Field returns the value of the named field.
func (r *RecordValue) Field(name string) WireValue {
	i, ok := r.index[name]
	if !ok {
		panic(errors.Errorf("eventsim: no such record field %q", name))
	}
	return r.values[i]
}

// SetField replaces the value of the named field.
func (r *RecordValue) SetField(name string, v WireValue) {
	i, ok := r.index[name]
	if !ok {
		panic(errors.Errorf("eventsim: no such record field %q", name))
	}
	r.values[i] = v
}

// Names returns the record's field names, in declaration order.
func (r *RecordValue) Names() []string { return r.names }

// NamedValue wraps the value of a netlist.NamedType's underlying shape.
type NamedValue struct {
	Inner WireValue
}

func (*NamedValue) isWireValue() {}

// Default builds a zero-value (all-X for bits) WireValue tree matching t's
// shape.
func Default(t netlist.Type) WireValue {
	switch tt := t.(type) {
	case netlist.BitType:
		return &BitValue{Q: bitvec.QX}
	case netlist.ArrayType:
		elems := make([]WireValue, tt.Len)
		for i := range elems {
			elems[i] = Default(tt.Elem)
		}
		return &ArrayValue{Elems: elems}
	case netlist.RecordType:
		names := make([]string, len(tt.Fields))
		values := make([]WireValue, len(tt.Fields))
		index := make(map[string]int, len(tt.Fields))
		for i, f := range tt.Fields {
			names[i] = f.Name
			values[i] = Default(f.Type)
			index[f.Name] = i
		}
		return &RecordValue{names: names, values: values, index: index}
	case netlist.NamedType:
		return &NamedValue{Inner: Default(tt.Underlying)}
	default:
		panic(errors.Errorf("eventsim: unknown type kind %v", t.Kind()))
	}
}

// unwrapNamed strips any NamedValue wrapper, mirroring netlist's resolve for
// types.
func unwrapNamed(v WireValue) WireValue {
	for {
		nv, ok := v.(*NamedValue)
		if !ok {
			return v
		}
		v = nv.Inner
	}
}

// SelectField descends one path segment into v, mirroring a netlist.Select.
// It panics if v is not a composite or seg does not name a field/index.
func SelectField(v WireValue, seg string) WireValue {
	switch vv := unwrapNamed(v).(type) {
	case *RecordValue:
		return vv.Field(seg)
	case *ArrayValue:
		idx, err := parseIndex(seg)
		if err != nil || idx < 0 || idx >= len(vv.Elems) {
			panic(errors.Errorf("eventsim: invalid array selector %q", seg))
		}
		return vv.Elems[idx]
	default:
		panic(errors.Errorf("eventsim: cannot select %q from a leaf value", seg))
	}
}

func parseIndex(seg string) (int, error) {
	n := 0
	if seg == "" {
		return 0, errors.New("eventsim: empty selector")
	}
	for _, r := range seg {
		if r < '0' || r > '9' {
			return 0, errors.Errorf("eventsim: invalid array selector %q", seg)
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}

// CopyInto copies src's leaf bits into dst, which must already have the same
// shape; a Bit value is copied directly, a Record is matched by field name
// (not position), and an Array element by element.
func CopyInto(dst, src WireValue) {
	dst, src = unwrapNamed(dst), unwrapNamed(src)
	switch d := dst.(type) {
	case *BitValue:
		s, ok := src.(*BitValue)
		if !ok {
			panic(errors.New("eventsim: shape mismatch in CopyInto: bit expected"))
		}
		d.Q = s.Q
	case *ArrayValue:
		s, ok := src.(*ArrayValue)
		if !ok || len(s.Elems) != len(d.Elems) {
			panic(errors.New("eventsim: shape mismatch in CopyInto: array expected"))
		}
		for i := range d.Elems {
			CopyInto(d.Elems[i], s.Elems[i])
		}
	case *RecordValue:
		s, ok := src.(*RecordValue)
		if !ok {
			panic(errors.New("eventsim: shape mismatch in CopyInto: record expected"))
		}
		for _, name := range d.names {
			CopyInto(d.Field(name), s.Field(name))
		}
	default:
		panic(errors.New("eventsim: unsupported value kind in CopyInto"))
	}
}

// ReadBitVector flattens an Array-of-Bit (or Named-wrapped) value into a
// bitvec.BitVector, least-significant element first, matching netlist.Bus's
// element ordering.
func ReadBitVector(v WireValue) bitvec.BitVector {
	arr, ok := unwrapNamed(v).(*ArrayValue)
	if !ok {
		if bv, ok := unwrapNamed(v).(*BitValue); ok {
			return bitvec.FromQuad(bv.Q)
		}
		panic(errors.New("eventsim: ReadBitVector requires a bus or bit value"))
	}
	bv := bitvec.New(len(arr.Elems))
	for i, e := range arr.Elems {
		b, ok := e.(*BitValue)
		if !ok {
			panic(errors.New("eventsim: ReadBitVector requires a bus of bits"))
		}
		bv.Set(i, b.Q)
	}
	return bv
}

// WriteBitVector writes bv's bits into dst, a bus (or single-bit) value,
// least-significant element first.
func WriteBitVector(dst WireValue, bv bitvec.BitVector) {
	switch d := unwrapNamed(dst).(type) {
	case *ArrayValue:
		if len(d.Elems) != bv.Width() {
			panic(errors.Errorf("eventsim: WriteBitVector width mismatch: value has %d elements, vector has %d bits", len(d.Elems), bv.Width()))
		}
		for i := range d.Elems {
			b, ok := d.Elems[i].(*BitValue)
			if !ok {
				panic(errors.New("eventsim: WriteBitVector requires a bus of bits"))
			}
			b.Q = bv.Get(i)
		}
	case *BitValue:
		if bv.Width() != 1 {
			panic(errors.Errorf("eventsim: WriteBitVector width mismatch: single bit destination, vector has %d bits", bv.Width()))
		}
		d.Q = bv.Get(0)
	default:
		panic(errors.New("eventsim: WriteBitVector requires a bus or bit value"))
	}
}

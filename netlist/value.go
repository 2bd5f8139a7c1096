package netlist

import "github.com/evsim/eventsim/bitvec"

// Value is a module or generator argument: an integer (bus widths, slice
// bounds), a bit vector (const values, register reset values), a bool
// (edge polarities) or a string.
type Value interface {
	isValue()
}

// IntValue is an integer-valued argument, e.g. a bus width.
type IntValue int

func (IntValue) isValue() {}

// BitVectorValue is a bit-vector-valued argument, e.g. a const's value or a
// register's reset value.
type BitVectorValue struct{ BV bitvec.BitVector }

func (BitVectorValue) isValue() {}

// BoolValue is a boolean-valued argument, e.g. a register's edge polarity.
type BoolValue bool

func (BoolValue) isValue() {}

// StringValue is a string-valued argument.
type StringValue string

func (StringValue) isValue() {}

// Package netlist is the netlist provider: it builds the typed, connected
// Module/ModuleDef/Instance/Select object graph that the event simulator
// core consumes read-only. It owns the "type-flattening" spec.md assigns to
// the netlist provider: Connect expands whole buses and records down to
// single-bit connections at build time, so the core never has to.
package netlist

import "github.com/pkg/errors"

// Dir is a port direction, as declared on a module's external interface.
type Dir int

// The two port directions.
const (
	In Dir = iota
	Out
)

func (d Dir) String() string {
	if d == In {
		return "in"
	}
	return "out"
}

// Kind identifies which of the four Type variants a Type value is.
type Kind int

// The four type kinds.
const (
	KindBit Kind = iota
	KindArray
	KindRecord
	KindNamed
)

// Type is the closed sum of shapes a wire can have: BitType, ArrayType,
// RecordType or NamedType.
type Type interface {
	Kind() Kind
}

// BitType is a single wire carrying one quad-valued bit, in direction D.
type BitType struct{ D Dir }

// Kind implements Type.
func (BitType) Kind() Kind { return KindBit }

// Bit returns a single-bit type in direction d.
func Bit(d Dir) Type { return BitType{D: d} }

// ArrayType is a fixed-length homogeneous array, most commonly a bus of
// bits.
type ArrayType struct {
	Len  int
	Elem Type
}

// Kind implements Type.
func (ArrayType) Kind() Kind { return KindArray }

// Array returns an n-element array of elem.
func Array(n int, elem Type) Type {
	if n < 1 {
		panic(errors.Errorf("netlist: invalid array length %d", n))
	}
	return ArrayType{Len: n, Elem: elem}
}

// Bus returns an n-bit bus: shorthand for Array(n, Bit(d)).
func Bus(n int, d Dir) Type { return Array(n, Bit(d)) }

// Field is one named member of a RecordType.
type Field struct {
	Name string
	Type Type
}

// F is shorthand for constructing a Field.
func F(name string, t Type) Field { return Field{Name: name, Type: t} }

// RecordType is an ordered, name-unique set of fields. Field order is part
// of the declaration but Record field matching during Connect is always by
// name, never by position.
type RecordType struct {
	Fields []Field
}

// Kind implements Type.
func (RecordType) Kind() Kind { return KindRecord }

// Record returns a record type with the given fields.
func Record(fields ...Field) Type {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name] {
			panic(errors.Errorf("netlist: duplicate field name %q in record", f.Name))
		}
		seen[f.Name] = true
	}
	return RecordType{Fields: fields}
}

func (r RecordType) field(name string) (Type, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// NamedType wraps an underlying type under a user-facing name. Per spec,
// the underlying type is currently constrained to a bit or bit-array.
type NamedType struct {
	Name       string
	Underlying Type
}

// Kind implements Type.
func (NamedType) Kind() Kind { return KindNamed }

// Named returns a named-type wrapper around underlying.
func Named(name string, underlying Type) Type {
	return NamedType{Name: name, Underlying: underlying}
}

// resolve strips any number of NamedType wrappers, exposing the underlying
// Bit/Array/Record shape that selection and connection logic operate on.
func resolve(t Type) Type {
	for {
		nt, ok := t.(NamedType)
		if !ok {
			return t
		}
		t = nt.Underlying
	}
}

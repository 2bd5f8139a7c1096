package netlist

import "github.com/evsim/eventsim/bitvec"

// This file is the netlist provider's cell library: one Primitive
// constructor per coreir/corebit operation named in the simulator's
// evaluator dispatch table. It plays the role hwlib/gates.go and
// hwlib/mux.go play for hwsim's Chip/Part builders, but instead of wiring
// sub-chips of NAND gates it simply declares the typed interface and
// generator arguments a primitive evaluator needs.

func busIface(w int) Type {
	return Record(
		F("in0", Bus(w, In)),
		F("in1", Bus(w, In)),
		F("out", Bus(w, Out)),
	)
}

func unaryBusIface(w int) Type {
	return Record(
		F("in0", Bus(w, In)),
		F("out", Bus(w, Out)),
	)
}

func widthArg(w int) map[string]Value { return map[string]Value{"width": IntValue(w)} }

// And returns a w-bit bitwise AND primitive: coreir.and.
func And(w int) *Module { return Primitive("coreir.and", busIface(w), widthArg(w)) }

// Or returns a w-bit bitwise OR primitive: coreir.or.
func Or(w int) *Module { return Primitive("coreir.or", busIface(w), widthArg(w)) }

// Xor returns a w-bit bitwise XOR primitive: coreir.xor.
func Xor(w int) *Module { return Primitive("coreir.xor", busIface(w), widthArg(w)) }

// Not returns a w-bit bitwise NOT primitive: coreir.not.
func Not(w int) *Module { return Primitive("coreir.not", unaryBusIface(w), widthArg(w)) }

// Add returns a w-bit ripple-carry adder primitive: coreir.add.
func Add(w int) *Module { return Primitive("coreir.add", busIface(w), widthArg(w)) }

// Sub returns a w-bit subtractor primitive: coreir.sub.
func Sub(w int) *Module { return Primitive("coreir.sub", busIface(w), widthArg(w)) }

// Mul returns a w-bit multiplier primitive: coreir.mul.
func Mul(w int) *Module { return Primitive("coreir.mul", busIface(w), widthArg(w)) }

// Shl returns a w-bit logical-left-shift primitive: coreir.shl.
func Shl(w int) *Module { return Primitive("coreir.shl", busIface(w), widthArg(w)) }

// Lshr returns a w-bit logical-right-shift primitive: coreir.lshr.
func Lshr(w int) *Module { return Primitive("coreir.lshr", busIface(w), widthArg(w)) }

// Ashr returns a w-bit arithmetic-right-shift primitive: coreir.ashr.
func Ashr(w int) *Module { return Primitive("coreir.ashr", busIface(w), widthArg(w)) }

// Eq returns a w-bit equality-comparison primitive: coreir.eq. Its out port
// is a single bit.
func Eq(w int) *Module {
	return Primitive("coreir.eq", Record(
		F("in0", Bus(w, In)),
		F("in1", Bus(w, In)),
		F("out", Bit(Out)),
	), widthArg(w))
}

// Neq returns a w-bit inequality-comparison primitive: coreir.neq.
func Neq(w int) *Module {
	return Primitive("coreir.neq", Record(
		F("in0", Bus(w, In)),
		F("in1", Bus(w, In)),
		F("out", Bit(Out)),
	), widthArg(w))
}

// Ult returns a w-bit unsigned-less-than primitive: coreir.ult.
func Ult(w int) *Module {
	return Primitive("coreir.ult", Record(
		F("in0", Bus(w, In)),
		F("in1", Bus(w, In)),
		F("out", Bit(Out)),
	), widthArg(w))
}

// AndR returns a w-bit and-reduce primitive: coreir.andr.
func AndR(w int) *Module {
	return Primitive("coreir.andr", Record(
		F("in0", Bus(w, In)),
		F("out", Bit(Out)),
	), widthArg(w))
}

// OrR returns a w-bit or-reduce primitive: coreir.orr.
func OrR(w int) *Module {
	return Primitive("coreir.orr", Record(
		F("in0", Bus(w, In)),
		F("out", Bit(Out)),
	), widthArg(w))
}

// Slice returns a bit-range extraction primitive, coreir.slice, taking bits
// [lo,hi) of a w-bit input.
func Slice(w, lo, hi int) *Module {
	return Primitive("coreir.slice", Record(
		F("in0", Bus(w, In)),
		F("out", Bus(hi-lo, Out)),
	), map[string]Value{"width": IntValue(w), "lo": IntValue(lo), "hi": IntValue(hi)})
}

// Zext returns a zero-extension primitive, coreir.zext, widening a w-bit
// input to outW bits. A width-1 input is declared as a plain Bit port
// rather than a one-wide bus, so it can be wired directly from a bit-typed
// port (a clock enable, a carry-in) without an intervening wrap.
func Zext(w, outW int) *Module {
	in0 := Bus(w, In)
	if w == 1 {
		in0 = Bit(In)
	}
	return Primitive("coreir.zext", Record(
		F("in0", in0),
		F("out", Bus(outW, Out)),
	), map[string]Value{"width": IntValue(w), "outWidth": IntValue(outW)})
}

// Mux returns a w-bit 2-to-1 multiplexer primitive: coreir.mux.
func Mux(w int) *Module {
	return Primitive("coreir.mux", Record(
		F("in0", Bus(w, In)),
		F("in1", Bus(w, In)),
		F("sel", Bit(In)),
		F("out", Bus(w, Out)),
	), widthArg(w))
}

// Term returns a w-bit terminator primitive, coreir.term, a sink that
// consumes a value and drives nothing.
func Term(w int) *Module {
	return Primitive("coreir.term", Record(F("in0", Bus(w, In))), widthArg(w))
}

// Const returns a w-bit constant-driver primitive, coreir.const, whose out
// port is permanently set to value.
func Const(w int, value bitvec.BitVector) *Module {
	return Primitive("coreir.const", Record(F("out", Bus(w, Out))), map[string]Value{
		"width": IntValue(w),
		"value": BitVectorValue{BV: value},
	})
}

// Reg returns a w-bit edge-triggered register primitive, coreir.reg, with
// the given clock edge polarity. init is stored as the "init" argument, but
// coreir.reg has no reset and its evaluator never reads it: out holds X
// until the first active clock edge.
func Reg(w int, posedge bool, init bitvec.BitVector) *Module {
	return Primitive("coreir.reg", Record(
		F("in0", Bus(w, In)),
		F("clk", Bit(In)),
		F("out", Bus(w, Out)),
	), map[string]Value{
		"width":   IntValue(w),
		"posedge": BoolValue(posedge),
		"init":    BitVectorValue{BV: init},
	})
}

// RegArst returns a w-bit asynchronously-resettable register primitive,
// coreir.reg_arst, with the given clock and reset edge polarities and reset
// value.
func RegArst(w int, posedge, arstPosedge bool, init bitvec.BitVector) *Module {
	return Primitive("coreir.reg_arst", Record(
		F("in0", Bus(w, In)),
		F("clk", Bit(In)),
		F("arst", Bit(In)),
		F("out", Bus(w, Out)),
	), map[string]Value{
		"width":       IntValue(w),
		"posedge":     BoolValue(posedge),
		"arstPosedge": BoolValue(arstPosedge),
		"init":        BitVectorValue{BV: init},
	})
}

// Wrap returns an identity pass-through primitive, coreir.wrap, used to
// adapt a bus to a same-width named type or vice versa.
func Wrap(w int) *Module {
	return Primitive("coreir.wrap", Record(
		F("in0", Bus(w, In)),
		F("out", Bus(w, Out)),
	), widthArg(w))
}

// corebit.* variants mirror their coreir.* bus counterparts at a fixed width
// of 1, exactly as hwlib/gates.go pairs And/And16 style fixed-vs-bus
// constructors: a 1-bit logic network is common enough (control, enables,
// clocks) to warrant its own lighter-weight cell rather than a 1-wide bus.

// CorebitAnd returns a 1-bit AND primitive: corebit.and.
func CorebitAnd() *Module { return Primitive("corebit.and", bitIface(), nil) }

// CorebitOr returns a 1-bit OR primitive: corebit.or.
func CorebitOr() *Module { return Primitive("corebit.or", bitIface(), nil) }

// CorebitXor returns a 1-bit XOR primitive: corebit.xor.
func CorebitXor() *Module { return Primitive("corebit.xor", bitIface(), nil) }

// CorebitNot returns a 1-bit NOT primitive: corebit.not.
func CorebitNot() *Module {
	return Primitive("corebit.not", Record(F("in0", Bit(In)), F("out", Bit(Out))), nil)
}

// CorebitConst returns a 1-bit constant-driver primitive: corebit.const.
func CorebitConst(value bitvec.Quad) *Module {
	return Primitive("corebit.const", Record(F("out", Bit(Out))), map[string]Value{
		"value": BitVectorValue{BV: bitvec.FromQuad(value)},
	})
}

// CorebitTerm returns a 1-bit terminator primitive: corebit.term.
func CorebitTerm() *Module {
	return Primitive("corebit.term", Record(F("in0", Bit(In))), nil)
}

// CorebitReg returns a 1-bit edge-triggered register primitive,
// corebit.reg, the fixed-width counterpart to Reg.
func CorebitReg(posedge bool, init bitvec.BitVector) *Module {
	return Primitive("corebit.reg", Record(
		F("in0", Bit(In)),
		F("clk", Bit(In)),
		F("out", Bit(Out)),
	), map[string]Value{
		"width":   IntValue(1),
		"posedge": BoolValue(posedge),
		"init":    BitVectorValue{BV: init},
	})
}

// CorebitRegArst returns a 1-bit asynchronously-resettable register
// primitive, corebit.reg_arst, the fixed-width counterpart to RegArst.
func CorebitRegArst(posedge, arstPosedge bool, init bitvec.BitVector) *Module {
	return Primitive("corebit.reg_arst", Record(
		F("in0", Bit(In)),
		F("clk", Bit(In)),
		F("arst", Bit(In)),
		F("out", Bit(Out)),
	), map[string]Value{
		"width":       IntValue(1),
		"posedge":     BoolValue(posedge),
		"arstPosedge": BoolValue(arstPosedge),
		"init":        BitVectorValue{BV: init},
	})
}

func bitIface() Type {
	return Record(F("in0", Bit(In)), F("in1", Bit(In)), F("out", Bit(Out)))
}

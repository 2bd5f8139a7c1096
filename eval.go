package eventsim

import (
	"github.com/pkg/errors"

	"github.com/evsim/eventsim/bitvec"
	"github.com/evsim/eventsim/netlist"
)

// evaluator computes a primitive instance's new outputs from its inputs,
// calling updateInputs itself to copy driver values in (registers sample
// their clock before that call). It reports whether any output actually changed (by SameRepresentation), so
// the engine knows whether to enqueue the instance's output selects as
// fresh.
type evaluator func(sim *Simulator, inst *netlist.Instance) bool

// dispatch is the simulator's evaluator table, keyed by
// Instance.QualifiedOpName, mirroring the role hwsim's Chip/PartSpec
// dispatch plays for wired sub-chips, except here each entry computes a
// primitive's transfer function directly instead of recursing into gate
// sub-parts.
var dispatch = map[string]evaluator{
	"coreir.and":      evalAnd,
	"coreir.or":       evalOr,
	"coreir.xor":      evalXor,
	"coreir.not":      evalNot,
	"coreir.add":      evalAdd,
	"coreir.sub":      evalSub,
	"coreir.mul":      evalMul,
	"coreir.shl":      evalShl,
	"coreir.lshr":     evalLshr,
	"coreir.ashr":     evalAshr,
	"coreir.eq":       evalEq,
	"coreir.neq":      evalNeq,
	"coreir.ult":      evalUlt,
	"coreir.andr":     evalAndR,
	"coreir.orr":      evalOrR,
	"coreir.slice":    evalSlice,
	"coreir.zext":     evalZext,
	"coreir.mux":      evalMux,
	"coreir.term":     evalTerm,
	"coreir.const":    evalConst,
	"coreir.reg":      evalReg,
	"coreir.reg_arst": evalRegArst,
	"coreir.wrap":     evalWrap,

	"corebit.and":      evalCorebitAnd,
	"corebit.or":       evalCorebitOr,
	"corebit.xor":      evalCorebitXor,
	"corebit.not":      evalCorebitNot,
	"corebit.const":    evalConst,
	"corebit.term":     evalTerm,
	"corebit.reg":      evalReg,
	"corebit.reg_arst": evalRegArst,
}

// updateInputs copies every driver's current value into w's input leaves,
// per the connections recorded for w's parent module body.
func updateInputs(sim *Simulator, w netlist.Wireable) {
	for _, conn := range sim.def.SourceConnections(w) {
		CopyInto(sim.store.resolve(conn.Receiver), sim.store.resolve(conn.Driver))
	}
}

// field returns the named field's WireValue from w's current store value.
func field(sim *Simulator, w netlist.Wireable, name string) WireValue {
	return SelectField(sim.store.resolve(w), name)
}

func getBV(sim *Simulator, inst *netlist.Instance, name string) bitvec.BitVector {
	return ReadBitVector(field(sim, inst, name))
}

func setBV(sim *Simulator, inst *netlist.Instance, name string, bv bitvec.BitVector) bool {
	out := field(sim, inst, name)
	old := ReadBitVector(out)
	WriteBitVector(out, bv)
	return !bitvec.SameRepresentation(old, bv)
}

func getBit(sim *Simulator, inst *netlist.Instance, name string) bitvec.Quad {
	return field(sim, inst, name).(*BitValue).Q
}

func setBit(sim *Simulator, inst *netlist.Instance, name string, q bitvec.Quad) bool {
	bv := field(sim, inst, name).(*BitValue)
	changed := bv.Q != q
	bv.Q = q
	return changed
}

func intArg(inst *netlist.Instance, name string) int {
	v, ok := inst.Ref.GenArgs()[name].(netlist.IntValue)
	if !ok {
		panic(errors.Errorf("eventsim: %s: missing integer argument %q", inst.QualifiedOpName(), name))
	}
	return int(v)
}

func boolArg(inst *netlist.Instance, name string) bool {
	v, ok := inst.Ref.GenArgs()[name].(netlist.BoolValue)
	if !ok {
		panic(errors.Errorf("eventsim: %s: missing boolean argument %q", inst.QualifiedOpName(), name))
	}
	return bool(v)
}

func bitVectorArg(inst *netlist.Instance, name string) bitvec.BitVector {
	v, ok := inst.Ref.GenArgs()[name].(netlist.BitVectorValue)
	if !ok {
		panic(errors.Errorf("eventsim: %s: missing bit-vector argument %q", inst.QualifiedOpName(), name))
	}
	return v.BV
}

// binOp implements the snapshot-old-out / updateInputs / compute / write /
// compare-via-SameRepresentation pattern common to every two-input
// combinational primitive, grounded on the original simulator's
// updateBinopNode template.
func binOp(sim *Simulator, inst *netlist.Instance, f func(a, b bitvec.BitVector) bitvec.BitVector) bool {
	updateInputs(sim, inst)
	a, b := getBV(sim, inst, "in0"), getBV(sim, inst, "in1")
	return setBV(sim, inst, "out", f(a, b))
}

// unOp is binOp's one-input counterpart, grounded on updateUnopNode.
func unOp(sim *Simulator, inst *netlist.Instance, f func(a bitvec.BitVector) bitvec.BitVector) bool {
	updateInputs(sim, inst)
	a := getBV(sim, inst, "in0")
	return setBV(sim, inst, "out", f(a))
}

// bitResultOp is binOp's form for primitives whose out port is a single bit
// (eq, neq, ult).
func bitResultOp(sim *Simulator, inst *netlist.Instance, f func(a, b bitvec.BitVector) bitvec.BitVector) bool {
	updateInputs(sim, inst)
	a, b := getBV(sim, inst, "in0"), getBV(sim, inst, "in1")
	r := f(a, b)
	return setBit(sim, inst, "out", r.Get(0))
}

func evalAnd(sim *Simulator, inst *netlist.Instance) bool { return binOp(sim, inst, bitvec.And) }
func evalOr(sim *Simulator, inst *netlist.Instance) bool  { return binOp(sim, inst, bitvec.Or) }
func evalXor(sim *Simulator, inst *netlist.Instance) bool { return binOp(sim, inst, bitvec.Xor) }
func evalNot(sim *Simulator, inst *netlist.Instance) bool { return unOp(sim, inst, bitvec.Not) }
func evalAdd(sim *Simulator, inst *netlist.Instance) bool { return binOp(sim, inst, bitvec.Add) }
func evalSub(sim *Simulator, inst *netlist.Instance) bool { return binOp(sim, inst, bitvec.Sub) }
func evalMul(sim *Simulator, inst *netlist.Instance) bool { return binOp(sim, inst, bitvec.Mul) }

func evalShl(sim *Simulator, inst *netlist.Instance) bool {
	return binOp(sim, inst, bitvec.ShlBV)
}
func evalLshr(sim *Simulator, inst *netlist.Instance) bool {
	return binOp(sim, inst, bitvec.LshrBV)
}
func evalAshr(sim *Simulator, inst *netlist.Instance) bool {
	return binOp(sim, inst, bitvec.AshrBV)
}

func evalEq(sim *Simulator, inst *netlist.Instance) bool {
	return bitResultOp(sim, inst, bitvec.Eq)
}
func evalNeq(sim *Simulator, inst *netlist.Instance) bool {
	return bitResultOp(sim, inst, bitvec.Neq)
}
func evalUlt(sim *Simulator, inst *netlist.Instance) bool {
	return bitResultOp(sim, inst, bitvec.Ult)
}

func evalAndR(sim *Simulator, inst *netlist.Instance) bool {
	updateInputs(sim, inst)
	r := bitvec.AndReduce(getBV(sim, inst, "in0"))
	return setBit(sim, inst, "out", r.Get(0))
}

func evalOrR(sim *Simulator, inst *netlist.Instance) bool {
	updateInputs(sim, inst)
	r := bitvec.OrReduce(getBV(sim, inst, "in0"))
	return setBit(sim, inst, "out", r.Get(0))
}

func evalSlice(sim *Simulator, inst *netlist.Instance) bool {
	updateInputs(sim, inst)
	lo, hi := intArg(inst, "lo"), intArg(inst, "hi")
	return setBV(sim, inst, "out", getBV(sim, inst, "in0").Slice(lo, hi))
}

func evalZext(sim *Simulator, inst *netlist.Instance) bool {
	updateInputs(sim, inst)
	outW := intArg(inst, "outWidth")
	return setBV(sim, inst, "out", getBV(sim, inst, "in0").ZeroExtend(outW))
}

func evalCorebitAnd(sim *Simulator, inst *netlist.Instance) bool {
	updateInputs(sim, inst)
	a, b := getBit(sim, inst, "in0"), getBit(sim, inst, "in1")
	return setBit(sim, inst, "out", bitvec.And(bitvec.FromQuad(a), bitvec.FromQuad(b)).Get(0))
}

func evalCorebitOr(sim *Simulator, inst *netlist.Instance) bool {
	updateInputs(sim, inst)
	a, b := getBit(sim, inst, "in0"), getBit(sim, inst, "in1")
	return setBit(sim, inst, "out", bitvec.Or(bitvec.FromQuad(a), bitvec.FromQuad(b)).Get(0))
}

func evalCorebitXor(sim *Simulator, inst *netlist.Instance) bool {
	updateInputs(sim, inst)
	a, b := getBit(sim, inst, "in0"), getBit(sim, inst, "in1")
	return setBit(sim, inst, "out", bitvec.Xor(bitvec.FromQuad(a), bitvec.FromQuad(b)).Get(0))
}

func evalCorebitNot(sim *Simulator, inst *netlist.Instance) bool {
	updateInputs(sim, inst)
	a := getBit(sim, inst, "in0")
	return setBit(sim, inst, "out", bitvec.Not(bitvec.FromQuad(a)).Get(0))
}

package eventsim

import (
	"github.com/evsim/eventsim/bitvec"
	"github.com/evsim/eventsim/netlist"
)

// clockEdge reports whether old->new is an active transition of the given
// polarity. X or Z values never equal Q0/Q1, so a transition through an
// unknown clock state is correctly never detected as an edge.
func clockEdge(old, new_ bitvec.Quad, posedge bool) bool {
	if posedge {
		return old == bitvec.Q0 && new_ == bitvec.Q1
	}
	return old == bitvec.Q1 && new_ == bitvec.Q0
}

// initValue returns a register's configured reset value (its "init"
// argument, or all zeros when that argument is absent), zero-extended or
// truncated to width w if it was declared at a different width: Reg/RegArst
// store init as given, without checking its width.
func initValue(inst *netlist.Instance, w int) bitvec.BitVector {
	v, ok := inst.Ref.GenArgs()["init"].(netlist.BitVectorValue)
	if !ok {
		return bitvec.FromUint64(w, 0)
	}
	bv := v.BV
	if bv.Width() == w {
		return bv
	}
	if bv.Width() > w {
		return bv.Slice(0, w)
	}
	return bv.ZeroExtend(w)
}

// evalReg implements coreir.reg: edge-triggered correctness requires
// sampling clk's state before updateInputs (the value it held coming into
// this step) and comparing it to the value updateInputs just brought in,
// exactly as the original simulator's register handling samples old vs new
// before deciding whether to latch in0 into out.
func evalReg(sim *Simulator, inst *netlist.Instance) bool {
	oldClk := getBit(sim, inst, "clk")
	updateInputs(sim, inst)
	newClk := getBit(sim, inst, "clk")

	if !clockEdge(oldClk, newClk, boolArg(inst, "posedge")) {
		return false
	}
	return setBV(sim, inst, "out", getBV(sim, inst, "in0"))
}

// evalRegArst implements coreir.reg_arst: like evalReg, but an edge on arst
// (sampled the same old-vs-new way) takes priority over a clock edge and
// forces out to the register's configured reset value.
func evalRegArst(sim *Simulator, inst *netlist.Instance) bool {
	oldClk := getBit(sim, inst, "clk")
	oldArst := getBit(sim, inst, "arst")
	updateInputs(sim, inst)
	newClk := getBit(sim, inst, "clk")
	newArst := getBit(sim, inst, "arst")

	width := intArg(inst, "width")

	if clockEdge(oldArst, newArst, boolArg(inst, "arstPosedge")) {
		return setBV(sim, inst, "out", initValue(inst, width))
	}
	if clockEdge(oldClk, newClk, boolArg(inst, "posedge")) {
		return setBV(sim, inst, "out", getBV(sim, inst, "in0"))
	}
	return false
}

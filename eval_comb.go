package eventsim

import (
	"github.com/evsim/eventsim/bitvec"
	"github.com/evsim/eventsim/netlist"
)

// evalMux implements coreir.mux: out = sel ? in1 : in0. An unknown sel
// collapses to in0, rather than producing an all-X output, since spec
// policy treats mux's select line as the one place where X should not
// swamp an otherwise well-defined bus.
func evalMux(sim *Simulator, inst *netlist.Instance) bool {
	updateInputs(sim, inst)
	sel := getBit(sim, inst, "sel")
	in0, in1 := getBV(sim, inst, "in0"), getBV(sim, inst, "in1")
	result := in0
	if sel == bitvec.Q1 {
		result = in1
	}
	return setBV(sim, inst, "out", result)
}

// evalTerm implements coreir.term: a sink with no output port. It still
// pulls in its input so downstream observers (and ComparePorts-style
// assertions against it) see a live value, but it never drives anything and
// so never contributes to the fresh working set.
func evalTerm(sim *Simulator, inst *netlist.Instance) bool {
	updateInputs(sim, inst)
	return false
}

// evalConst implements coreir.const and corebit.const at steady state: the
// value was already written once when the instance's output was seeded
// (see Simulator.initConstants), and a const never has inputs to update, so
// there is nothing further to do.
func evalConst(sim *Simulator, inst *netlist.Instance) bool {
	return false
}

// evalWrap implements coreir.wrap: an identity pass-through, used to adapt
// a plain bus to a same-width named type (or back) without changing bit
// representation.
func evalWrap(sim *Simulator, inst *netlist.Instance) bool {
	return unOp(sim, inst, func(a bitvec.BitVector) bitvec.BitVector { return a })
}

package eventsim_test

import (
	"testing"

	"github.com/evsim/eventsim"
	"github.com/evsim/eventsim/bitvec"
	"github.com/evsim/eventsim/netlist"
)

// buildFullAdder returns a composite one-bit full adder module: sum =
// a^b^cin, cout = (a&b) | (cin&(a^b)), the textbook shape hwlib/arith.go's
// AdderN chains bit by bit.
func buildFullAdder(t *testing.T) *netlist.Module {
	t.Helper()
	b := netlist.NewModule("full_adder", netlist.Record(
		netlist.F("a", netlist.Bit(netlist.In)),
		netlist.F("b", netlist.Bit(netlist.In)),
		netlist.F("cin", netlist.Bit(netlist.In)),
		netlist.F("sum", netlist.Bit(netlist.Out)),
		netlist.F("cout", netlist.Bit(netlist.Out)),
	))
	self := b.Self()

	xor1, err := b.AddInstance("xor1", netlist.CorebitXor(), nil)
	mustNil(t, err)
	xor2, err := b.AddInstance("xor2", netlist.CorebitXor(), nil)
	mustNil(t, err)
	and1, err := b.AddInstance("and1", netlist.CorebitAnd(), nil)
	mustNil(t, err)
	and2, err := b.AddInstance("and2", netlist.CorebitAnd(), nil)
	mustNil(t, err)
	or1, err := b.AddInstance("or1", netlist.CorebitOr(), nil)
	mustNil(t, err)

	selA, _ := self.Sel("a")
	selB, _ := self.Sel("b")
	selCin, _ := self.Sel("cin")
	selSum, _ := self.Sel("sum")
	selCout, _ := self.Sel("cout")

	mustConn(t, b, selA, mustSel(t, xor1, "in0"))
	mustConn(t, b, selB, mustSel(t, xor1, "in1"))
	mustConn(t, b, mustSel(t, xor1, "out"), mustSel(t, xor2, "in0"))
	mustConn(t, b, selCin, mustSel(t, xor2, "in1"))
	mustConn(t, b, mustSel(t, xor2, "out"), selSum)

	mustConn(t, b, selA, mustSel(t, and1, "in0"))
	mustConn(t, b, selB, mustSel(t, and1, "in1"))

	mustConn(t, b, mustSel(t, xor1, "out"), mustSel(t, and2, "in0"))
	mustConn(t, b, selCin, mustSel(t, and2, "in1"))

	mustConn(t, b, mustSel(t, and1, "out"), mustSel(t, or1, "in0"))
	mustConn(t, b, mustSel(t, and2, "out"), mustSel(t, or1, "in1"))
	mustConn(t, b, mustSel(t, or1, "out"), selCout)

	mod, err := b.Build()
	mustNil(t, err)
	return mod
}

// buildRippleAdder2 chains two full-adder instances into a 2-bit ripple
// carry adder, exercising composite-instance recursion (evalHierarchical).
func buildRippleAdder2(t *testing.T) *netlist.Module {
	t.Helper()
	fa := buildFullAdder(t)
	b := netlist.NewModule("ripple2", netlist.Record(
		netlist.F("a", netlist.Bus(2, netlist.In)),
		netlist.F("b", netlist.Bus(2, netlist.In)),
		netlist.F("cin", netlist.Bit(netlist.In)),
		netlist.F("sum", netlist.Bus(2, netlist.Out)),
		netlist.F("cout", netlist.Bit(netlist.Out)),
	))
	self := b.Self()

	fa0, err := b.AddInstance("fa0", fa, nil)
	mustNil(t, err)
	fa1, err := b.AddInstance("fa1", fa, nil)
	mustNil(t, err)

	a, _ := self.Sel("a")
	bb, _ := self.Sel("b")
	sum, _ := self.Sel("sum")

	mustConn(t, b, mustSel(t, a, "0"), mustSel(t, fa0, "a"))
	mustConn(t, b, mustSel(t, bb, "0"), mustSel(t, fa0, "b"))
	mustConn(t, b, mustSel(t, self, "cin"), mustSel(t, fa0, "cin"))
	mustConn(t, b, mustSel(t, fa0, "sum"), mustSel(t, sum, "0"))

	mustConn(t, b, mustSel(t, a, "1"), mustSel(t, fa1, "a"))
	mustConn(t, b, mustSel(t, bb, "1"), mustSel(t, fa1, "b"))
	mustConn(t, b, mustSel(t, fa0, "cout"), mustSel(t, fa1, "cin"))
	mustConn(t, b, mustSel(t, fa1, "sum"), mustSel(t, sum, "1"))
	mustConn(t, b, mustSel(t, fa1, "cout"), mustSel(t, self, "cout"))

	mod, err := b.Build()
	mustNil(t, err)
	return mod
}

func TestRippleAdderRecursesIntoChildSimulators(t *testing.T) {
	mod := buildRippleAdder2(t)
	sim, err := eventsim.NewSimulator(mod)
	mustNil(t, err)

	mustNil(t, sim.SetValueNoUpdate("a", bitvec.FromUint64(2, 3)))
	mustNil(t, sim.SetValueNoUpdate("b", bitvec.FromUint64(2, 2)))
	mustNil(t, sim.SetValue("cin", bitvec.FromUint64(1, 0)))

	sum, err := sim.GetBitVec("sum")
	mustNil(t, err)
	cout, err := sim.GetBitVec("cout")
	mustNil(t, err)

	sv, _ := sum.Uint64()
	cv, _ := cout.Uint64()
	// 3 + 2 = 5 = 0b101: low two bits 01, carry out 1.
	if sv != 1 || cv != 1 {
		t.Fatalf("3+2 via ripple adder = sum %d cout %d, want sum 1 cout 1", sv, cv)
	}
}

func TestRippleAdderSubPathAccess(t *testing.T) {
	mod := buildRippleAdder2(t)
	sim, err := eventsim.NewSimulator(mod)
	mustNil(t, err)

	mustNil(t, sim.SetValueNoUpdate("a", bitvec.FromUint64(2, 1)))
	mustNil(t, sim.SetValueNoUpdate("b", bitvec.FromUint64(2, 1)))
	mustNil(t, sim.SetValue("cin", bitvec.FromUint64(1, 0)))

	// fa0 computes 1+1+0 = sum 0, cout 1: reach into the child simulator by
	// its hierarchical instance path.
	fa0Sum, err := sim.GetBitVec("fa0$sum")
	mustNil(t, err)
	if fa0Sum.Get(0) != bitvec.Q0 {
		t.Fatalf("fa0.sum = %s, want 0", fa0Sum.Get(0))
	}
	fa0Cout, err := sim.GetBitVec("fa0$cout")
	mustNil(t, err)
	if fa0Cout.Get(0) != bitvec.Q1 {
		t.Fatalf("fa0.cout = %s, want 1", fa0Cout.Get(0))
	}
}

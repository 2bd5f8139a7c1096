package eventsim_test

import (
	"testing"

	"github.com/evsim/eventsim"
	"github.com/evsim/eventsim/evtest"
	"github.com/evsim/eventsim/netlist"
)

// buildFlatAdder2 computes the same 2-bit-plus-carry sum as
// buildRippleAdder2, but flattened onto a single width-3 coreir.add chain
// instead of two recursed full-adder instances, giving Testable Property 5
// (hierarchical == flattened) something non-trivial to check.
func buildFlatAdder2(t *testing.T) *netlist.Module {
	t.Helper()
	b := netlist.NewModule("flat2", netlist.Record(
		netlist.F("a", netlist.Bus(2, netlist.In)),
		netlist.F("b", netlist.Bus(2, netlist.In)),
		netlist.F("cin", netlist.Bit(netlist.In)),
		netlist.F("sum", netlist.Bus(2, netlist.Out)),
		netlist.F("cout", netlist.Bit(netlist.Out)),
	))
	self := b.Self()

	za, err := b.AddInstance("za", netlist.Zext(2, 3), nil)
	mustNil(t, err)
	zb, err := b.AddInstance("zb", netlist.Zext(2, 3), nil)
	mustNil(t, err)
	zc, err := b.AddInstance("zc", netlist.Zext(1, 3), nil)
	mustNil(t, err)
	add1, err := b.AddInstance("add1", netlist.Add(3), nil)
	mustNil(t, err)
	add2, err := b.AddInstance("add2", netlist.Add(3), nil)
	mustNil(t, err)
	sumSlice, err := b.AddInstance("sumSlice", netlist.Slice(3, 0, 2), nil)
	mustNil(t, err)
	coutSlice, err := b.AddInstance("coutSlice", netlist.Slice(3, 2, 3), nil)
	mustNil(t, err)

	mustConn(t, b, mustSel(t, self, "a"), mustSel(t, za, "in0"))
	mustConn(t, b, mustSel(t, self, "b"), mustSel(t, zb, "in0"))
	mustConn(t, b, mustSel(t, self, "cin"), mustSel(t, zc, "in0"))

	mustConn(t, b, mustSel(t, za, "out"), mustSel(t, add1, "in0"))
	mustConn(t, b, mustSel(t, zb, "out"), mustSel(t, add1, "in1"))

	mustConn(t, b, mustSel(t, add1, "out"), mustSel(t, add2, "in0"))
	mustConn(t, b, mustSel(t, zc, "out"), mustSel(t, add2, "in1"))

	mustConn(t, b, mustSel(t, add2, "out"), mustSel(t, sumSlice, "in0"))
	mustConn(t, b, mustSel(t, add2, "out"), mustSel(t, coutSlice, "in0"))

	mustConn(t, b, mustSel(t, sumSlice, "out"), mustSel(t, self, "sum"))
	coutBit := mustSel(t, mustSel(t, coutSlice, "out"), "0")
	mustConn(t, b, coutBit, mustSel(t, self, "cout"))

	mod, err := b.Build()
	mustNil(t, err)
	return mod
}

func TestHierarchicalMatchesFlattenedAdder(t *testing.T) {
	hier, err := eventsim.NewSimulator(buildRippleAdder2(t))
	mustNil(t, err)
	flat, err := eventsim.NewSimulator(buildFlatAdder2(t))
	mustNil(t, err)

	ins := []evtest.PortSpec{{Name: "a", Width: 2}, {Name: "b", Width: 2}, {Name: "cin", Width: 1}}
	outs := []evtest.PortSpec{{Name: "sum", Width: 2}, {Name: "cout", Width: 1}}
	evtest.ComparePorts(t, hier, flat, ins, outs)
}

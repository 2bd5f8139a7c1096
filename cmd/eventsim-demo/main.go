// Command eventsim-demo assembles a small hierarchical circuit purely via
// the netlist builder API, drives it with eventsim.NewSimulator and
// SetValue, and logs the results, the same shape as the teacher's
// cmd/main.go xor-gate demo.
package main

import (
	"log"

	"github.com/evsim/eventsim"
	"github.com/evsim/eventsim/bitvec"
	"github.com/evsim/eventsim/netlist"
)

// fullAdder builds a one-bit full adder: sum = a^b^cin, cout = (a&b) |
// (cin&(a^b)), wired from corebit primitives.
func fullAdder() *netlist.Module {
	b := netlist.NewModule("full_adder", netlist.Record(
		netlist.F("a", netlist.Bit(netlist.In)),
		netlist.F("b", netlist.Bit(netlist.In)),
		netlist.F("cin", netlist.Bit(netlist.In)),
		netlist.F("sum", netlist.Bit(netlist.Out)),
		netlist.F("cout", netlist.Bit(netlist.Out)),
	))
	self := b.Self()

	xor1, err := b.AddInstance("xor1", netlist.CorebitXor(), nil)
	check(err)
	xor2, err := b.AddInstance("xor2", netlist.CorebitXor(), nil)
	check(err)
	and1, err := b.AddInstance("and1", netlist.CorebitAnd(), nil)
	check(err)
	and2, err := b.AddInstance("and2", netlist.CorebitAnd(), nil)
	check(err)
	or1, err := b.AddInstance("or1", netlist.CorebitOr(), nil)
	check(err)

	selA, _ := self.Sel("a")
	selB, _ := self.Sel("b")
	selCin, _ := self.Sel("cin")
	selSum, _ := self.Sel("sum")
	selCout, _ := self.Sel("cout")

	conn := func(drv, rcv netlist.Wireable) { check(b.Connect(drv, rcv)) }
	sel := func(w netlist.Wireable, seg string) netlist.Wireable {
		s, err := w.Sel(seg)
		check(err)
		return s
	}

	conn(selA, sel(xor1, "in0"))
	conn(selB, sel(xor1, "in1"))
	conn(sel(xor1, "out"), sel(xor2, "in0"))
	conn(selCin, sel(xor2, "in1"))
	conn(sel(xor2, "out"), selSum)

	conn(selA, sel(and1, "in0"))
	conn(selB, sel(and1, "in1"))
	conn(sel(xor1, "out"), sel(and2, "in0"))
	conn(selCin, sel(and2, "in1"))

	conn(sel(and1, "out"), sel(or1, "in0"))
	conn(sel(and2, "out"), sel(or1, "in1"))
	conn(sel(or1, "out"), selCout)

	mod, err := b.Build()
	check(err)
	return mod
}

// rippleAdder2 chains two full adders into a 2-bit ripple-carry adder, the
// composite instance eventsim's engine recurses into via a child
// simulator.
func rippleAdder2() *netlist.Module {
	fa := fullAdder()
	b := netlist.NewModule("ripple2", netlist.Record(
		netlist.F("a", netlist.Bus(2, netlist.In)),
		netlist.F("b", netlist.Bus(2, netlist.In)),
		netlist.F("cin", netlist.Bit(netlist.In)),
		netlist.F("sum", netlist.Bus(2, netlist.Out)),
		netlist.F("cout", netlist.Bit(netlist.Out)),
	))
	self := b.Self()

	fa0, err := b.AddInstance("fa0", fa, nil)
	check(err)
	fa1, err := b.AddInstance("fa1", fa, nil)
	check(err)

	conn := func(drv, rcv netlist.Wireable) { check(b.Connect(drv, rcv)) }
	sel := func(w netlist.Wireable, seg string) netlist.Wireable {
		s, err := w.Sel(seg)
		check(err)
		return s
	}

	a, b2, sum := sel(self, "a"), sel(self, "b"), sel(self, "sum")

	conn(sel(a, "0"), sel(fa0, "a"))
	conn(sel(b2, "0"), sel(fa0, "b"))
	conn(sel(self, "cin"), sel(fa0, "cin"))
	conn(sel(fa0, "sum"), sel(sum, "0"))

	conn(sel(a, "1"), sel(fa1, "a"))
	conn(sel(b2, "1"), sel(fa1, "b"))
	conn(sel(fa0, "cout"), sel(fa1, "cin"))
	conn(sel(fa1, "sum"), sel(sum, "1"))
	conn(sel(fa1, "cout"), sel(self, "cout"))

	mod, err := b.Build()
	check(err)
	return mod
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func main() {
	sim, err := eventsim.NewSimulator(rippleAdder2())
	check(err)

	for a := uint64(0); a < 4; a++ {
		for b := uint64(0); b < 4; b++ {
			check(sim.SetValueNoUpdate("a", bitvec.FromUint64(2, a)))
			check(sim.SetValueNoUpdate("b", bitvec.FromUint64(2, b)))
			check(sim.SetValue("cin", bitvec.FromUint64(1, 0)))

			sum, err := sim.GetBitVec("sum")
			check(err)
			cout, err := sim.GetBitVec("cout")
			check(err)
			sv, _ := sum.Uint64()
			cv, _ := cout.Uint64()
			log.Printf("%d + %d = sum %d cout %d", a, b, sv, cv)
		}
	}
}

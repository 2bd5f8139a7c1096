package eventsim_test

import (
	"fmt"
	"testing"

	"github.com/evsim/eventsim"
	"github.com/evsim/eventsim/bitvec"
	"github.com/evsim/eventsim/netlist"
)

// buildMuxTreeSelector builds a binary tree of 2-to-1 coreir.mux instances
// selecting one of numData width-wide constants (data[i] = i), padded with
// zero-valued filler constants up to the next power of two so selWidth
// bits of sel address every leaf. The cell library's mux is strictly
// 2-to-1, so a wide n-input mux bus is built from a tree of them, the same
// way the teacher's hwlib composes wider gates from narrower ones.
func buildMuxTreeSelector(t *testing.T, width, selWidth, numData int) *eventsim.Simulator {
	t.Helper()
	b := netlist.NewModule("mux_tree", netlist.Record(
		netlist.F("sel", netlist.Bus(selWidth, netlist.In)),
		netlist.F("out", netlist.Bus(width, netlist.Out)),
	))
	self := b.Self()
	selBus := mustSel(t, self, "sel")

	leafCount := 1 << uint(selWidth)
	if leafCount < numData {
		t.Fatalf("selWidth %d cannot address %d inputs", selWidth, numData)
	}
	nodes := make([]netlist.Wireable, leafCount)
	for i := 0; i < leafCount; i++ {
		v := 0
		if i < numData {
			v = i
		}
		c, err := b.AddInstance(fmt.Sprintf("d%d", i), netlist.Const(width, bitvec.FromUint64(width, uint64(v))), nil)
		mustNil(t, err)
		nodes[i] = mustSel(t, c, "out")
	}

	// Level L selects between each adjacent pair using sel bit L, so the
	// leaf that survives every level is leaf[sel], matching sel's integer
	// value bit for bit (bit 0 least significant, as bitvec.Get indexes).
	for level := 0; len(nodes) > 1; level++ {
		selBit := mustSel(t, selBus, fmt.Sprintf("%d", level))
		next := make([]netlist.Wireable, len(nodes)/2)
		for k := range next {
			m, err := b.AddInstance(fmt.Sprintf("m%d_%d", level, k), netlist.Mux(width), nil)
			mustNil(t, err)
			mustConn(t, b, nodes[2*k], mustSel(t, m, "in0"))
			mustConn(t, b, nodes[2*k+1], mustSel(t, m, "in1"))
			mustConn(t, b, selBit, mustSel(t, m, "sel"))
			next[k] = mustSel(t, m, "out")
		}
		nodes = next
	}

	mustConn(t, b, nodes[0], mustSel(t, self, "out"))
	mod, err := b.Build()
	mustNil(t, err)
	sim, err := eventsim.NewSimulator(mod)
	mustNil(t, err)
	return sim
}

// TestMuxTreeSelectsAmongSeventyOneInputs reproduces spec.md's 71-input mux
// bus scenario directly: data[i] := i for i in 0..70, sel := 18, expect
// out == 18.
func TestMuxTreeSelectsAmongSeventyOneInputs(t *testing.T) {
	const width = 16
	const selWidth = 7
	const numData = 71

	sim := buildMuxTreeSelector(t, width, selWidth, numData)
	sel, err := bitvec.FromBinaryString(selWidth, "0010010")
	mustNil(t, err)
	mustNil(t, sim.SetValue("sel", sel))

	out, err := sim.GetBitVec("out")
	mustNil(t, err)
	v, ok := out.Uint64()
	if !ok || v != 18 {
		t.Fatalf("mux tree selected out = %v (ok=%v), want 18", v, ok)
	}
}

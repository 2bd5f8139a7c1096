package eventsim

import (
	"github.com/evsim/eventsim/bitvec"
	"github.com/evsim/eventsim/netlist"
)

// evalHierarchical drives a composite instance by recursing into its own
// child Simulator: copy the instance's current (just-updated) value into
// the child's self interface, drain the child to a fixed point, then copy
// its self interface back out. Self's direction flip (see netlist's effectiveDir)
// makes this symmetric: what the parent sees as the instance's inputs are
// exactly what the child sees as its self's (flipped) outputs to propagate
// from, and vice versa for outputs.
func evalHierarchical(sim *Simulator, inst *netlist.Instance) bool {
	child := sim.children[inst]

	outSels := netlist.OutputSelects(inst)
	oldOut := make([]bitvec.Quad, len(outSels))
	for i, s := range outSels {
		oldOut[i] = sim.store.resolve(s).(*BitValue).Q
	}

	updateInputs(sim, inst)

	CopyInto(child.store.resolve(child.def.Self()), sim.store.resolve(inst))

	child.seedFresh(netlist.OutputSelects(child.def.Self()))
	child.drain()

	CopyInto(sim.store.resolve(inst), child.store.resolve(child.def.Self()))

	changed := false
	for i, s := range outSels {
		if sim.store.resolve(s).(*BitValue).Q != oldOut[i] {
			changed = true
			break
		}
	}
	return changed
}

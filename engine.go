package eventsim

import (
	"github.com/pkg/errors"

	"github.com/evsim/eventsim/netlist"
)

// Simulator runs one composite module to a fixed point: it owns the value
// store for the module's own wires, a child Simulator per sub-module
// instance, and the working set of "fresh" selects still awaiting
// propagation. This plays the role hwsim.Circuit plays for a wired Chip,
// except stepping is driven by what actually changed rather than by
// re-evaluating every sorted component on a fixed tick.
type Simulator struct {
	mod      *netlist.Module
	def      *netlist.ModuleDef
	store    *ValueStore
	children map[*netlist.Instance]*Simulator
	fresh    map[*netlist.Select]struct{}

	// MaxSteps, if positive, bounds the number of propagation steps a single
	// drain will run before panicking, as a safety valve against a netlist
	// with an unstable combinational feedback loop that never reaches a
	// fixed point.
	MaxSteps int
}

// NewSimulator builds a Simulator for mod, recursively constructing a child
// Simulator for every composite sub-instance, and drives every const
// primitive's output to its configured value before returning.
func NewSimulator(mod *netlist.Module) (*Simulator, error) {
	if !mod.HasDef() {
		return nil, errors.Errorf("eventsim: cannot simulate primitive module %q directly", mod.Name())
	}
	def := mod.Def()
	sim := &Simulator{
		mod:      mod,
		def:      def,
		store:    newValueStore(def),
		children: make(map[*netlist.Instance]*Simulator),
		fresh:    make(map[*netlist.Select]struct{}),
	}
	for _, inst := range def.Instances() {
		if inst.Ref.HasDef() {
			child, err := NewSimulator(inst.Ref)
			if err != nil {
				return nil, errors.Wrapf(err, "eventsim: building child simulator for instance %q", inst.Name)
			}
			sim.children[inst] = child
		}
	}
	sim.initConstants()
	return sim, nil
}

// initConstants seeds every coreir.const/corebit.const instance's out port
// with its configured value and drains the resulting propagation, so a
// freshly built Simulator starts with every constant-driven wire already
// settled.
func (sim *Simulator) initConstants() {
	for _, inst := range sim.def.Instances() {
		switch inst.QualifiedOpName() {
		case "coreir.const", "corebit.const":
			setBV(sim, inst, "out", bitVectorArg(inst, "value"))
			sim.seedFresh(netlist.OutputSelects(inst))
		}
	}
	sim.drain()
}

// seedFresh marks every select in sels as awaiting propagation.
func (sim *Simulator) seedFresh(sels []*netlist.Select) {
	for _, s := range sels {
		sim.fresh[s] = struct{}{}
	}
}

// drain pops fresh selects one at a time, evaluates every distinct
// downstream component they feed, and re-seeds the working set with any
// evaluator's changed outputs, until the module reaches a fixed point.
func (sim *Simulator) drain() {
	steps := 0
	for len(sim.fresh) > 0 {
		var cur *netlist.Select
		for s := range sim.fresh {
			cur = s
			break
		}
		delete(sim.fresh, cur)

		receivers := sim.def.ReceiverSelects(cur)
		if len(receivers) == 0 {
			continue
		}

		seen := make(map[netlist.Wireable]bool, len(receivers))
		for _, r := range receivers {
			top := r.TopParent()
			if seen[top] {
				continue
			}
			seen[top] = true
			sim.evalTop(top)
		}

		steps++
		if sim.MaxSteps > 0 && steps > sim.MaxSteps {
			panic(errors.Errorf("eventsim: exceeded MaxSteps (%d) draining module %q; possible unstable combinational feedback", sim.MaxSteps, sim.mod.Name()))
		}
	}
}

// evalTop evaluates the single component at the root of a Select chain: an
// instance (primitive, dispatched through the evaluator table, or
// composite, recursed into via evalHierarchical), or self, which only pulls
// its newly driven inputs in without being re-enqueued (nothing inside this
// module body consumes self's own output further).
func (sim *Simulator) evalTop(top netlist.Wireable) {
	if top == sim.def.Self() {
		updateInputs(sim, sim.def.Self())
		return
	}
	inst, ok := top.(*netlist.Instance)
	if !ok {
		panic(errors.New("eventsim: unexpected top-level wireable in fresh propagation"))
	}

	var changed bool
	if inst.Ref.HasDef() {
		changed = evalHierarchical(sim, inst)
	} else {
		fn, ok := dispatch[inst.QualifiedOpName()]
		if !ok {
			panic(errors.Errorf("eventsim: no evaluator registered for %q", inst.QualifiedOpName()))
		}
		changed = fn(sim, inst)
	}
	if changed {
		sim.seedFresh(netlist.OutputSelects(inst))
	}
}

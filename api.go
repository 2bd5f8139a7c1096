package eventsim

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/evsim/eventsim/bitvec"
	"github.com/evsim/eventsim/netlist"
)

// locate descends a $-separated hierarchical instance path ("adder$fa0")
// into the child Simulator it names, returning that Simulator and whatever
// dotted field path remains to be resolved within its own module body.
func (sim *Simulator) locate(path string) (*Simulator, string) {
	dollar := strings.IndexByte(path, '$')
	if dollar < 0 {
		return sim, path
	}
	name, rest := path[:dollar], path[dollar+1:]
	inst, ok := sim.def.Instances()[name]
	if !ok {
		panic(errors.Errorf("eventsim: no such instance %q", name))
	}
	child, ok := sim.children[inst]
	if !ok {
		panic(errors.Errorf("eventsim: instance %q is a primitive, has no sub-hierarchy", name))
	}
	return child.locate(rest)
}

// resolveDotted resolves a dot-separated field path ("fa0.out") against a
// module body: the first segment names either a declared port of self or an
// instance, and every subsequent segment descends one Sel further.
func resolveDotted(def *netlist.ModuleDef, path string) (netlist.Wireable, error) {
	segs := strings.Split(path, ".")
	var w netlist.Wireable
	if inst, ok := def.Instances()[segs[0]]; ok {
		w = inst
	} else {
		self, err := def.Sel(segs[0])
		if err != nil {
			return nil, errors.Errorf("eventsim: no such port or instance %q", segs[0])
		}
		w = self
	}
	for _, seg := range segs[1:] {
		next, err := w.Sel(seg)
		if err != nil {
			return nil, err
		}
		w = next
	}
	return w, nil
}

// GetBitVec reads the current value at path (e.g. "out" or "adder$fa0.sum")
// as a bit vector.
func (sim *Simulator) GetBitVec(path string) (bitvec.BitVector, error) {
	s, rest := sim.locate(path)
	w, err := resolveDotted(s.def, rest)
	if err != nil {
		return bitvec.BitVector{}, err
	}
	return ReadBitVector(s.store.resolve(w)), nil
}

// SetValueNoUpdate writes bv at path without draining the resulting
// propagation, for batching several simultaneous input changes (e.g. a full
// register bank plus its clock) before a single Drain call.
func (sim *Simulator) SetValueNoUpdate(path string, bv bitvec.BitVector) error {
	s, rest := sim.locate(path)
	w, err := resolveDotted(s.def, rest)
	if err != nil {
		return err
	}
	WriteBitVector(s.store.resolve(w), bv)
	s.seedFresh(netlist.AllLeafSelects(w))
	return nil
}

// SetValue writes bv at path and drains the resulting propagation to a
// fixed point before returning.
func (sim *Simulator) SetValue(path string, bv bitvec.BitVector) error {
	s, rest := sim.locate(path)
	w, err := resolveDotted(s.def, rest)
	if err != nil {
		return err
	}
	WriteBitVector(s.store.resolve(w), bv)
	s.seedFresh(netlist.AllLeafSelects(w))
	s.drain()
	return nil
}

// Drain runs propagation to a fixed point. Callers that batched several
// SetValueNoUpdate calls (e.g. changing a bus and its clock together) should
// call Drain once afterward.
func (sim *Simulator) Drain() { sim.drain() }

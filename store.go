package eventsim

import (
	"github.com/pkg/errors"

	"github.com/evsim/eventsim/netlist"
)

// ValueStore holds the live WireValue for each top-level Wireable in a
// module body (self and every instance); values for Select paths beneath
// them are not stored directly but resolved on demand by descending the
// already-allocated composite value tree, so that every *netlist.Select
// sharing a canonical path also shares canonical WireValue leaves.
type ValueStore struct {
	vals map[netlist.Wireable]WireValue
}

// newValueStore allocates a default-valued entry for self and every
// instance declared in def.
func newValueStore(def *netlist.ModuleDef) *ValueStore {
	s := &ValueStore{vals: make(map[netlist.Wireable]WireValue)}
	self := def.Self()
	s.vals[self] = Default(self.Type())
	for _, inst := range def.Instances() {
		s.vals[inst] = Default(inst.Type())
	}
	return s
}

// resolve returns the WireValue for w, descending through Select parents as
// needed. It never allocates: the full value tree for every top-level
// Wireable was built up front by newValueStore/Default.
func (s *ValueStore) resolve(w netlist.Wireable) WireValue {
	switch ww := w.(type) {
	case *netlist.Select:
		parent := s.resolve(ww.Parent())
		return SelectField(parent, ww.SelStr())
	default:
		v, ok := s.vals[w]
		if !ok {
			panic(errors.Errorf("eventsim: no stored value for %s", netlist.PathString(w)))
		}
		return v
	}
}

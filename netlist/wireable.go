package netlist

import (
	"strconv"

	"github.com/pkg/errors"
)

// A Wireable is the module's self interface or a named Instance: the root
// of a typed port tree that can be descended with Sel.
type Wireable interface {
	Type() Type
	Sel(seg string) (Wireable, error)
	Selects() map[string]Wireable
}

// childType computes the type of the sub-wire named seg beneath a wireable
// of type t, transparently unwrapping any NamedType wrapper first.
func childType(t Type, seg string) (Type, error) {
	switch tt := resolve(t).(type) {
	case RecordType:
		ft, ok := tt.field(seg)
		if !ok {
			return nil, errors.Errorf("netlist: no field %q in record", seg)
		}
		return ft, nil
	case ArrayType:
		idx, err := strconv.Atoi(seg)
		if err != nil {
			return nil, errors.Errorf("netlist: invalid array selector %q", seg)
		}
		if idx < 0 || idx >= tt.Len {
			return nil, errors.Errorf("netlist: array index %d out of range [0,%d)", idx, tt.Len)
		}
		return tt.Elem, nil
	default:
		return nil, errors.Errorf("netlist: cannot select %q from a bit", seg)
	}
}

// selOf resolves (or creates and caches) the child Select named seg of
// parent, whose own type is t. Caching on the parent's cache map gives every
// logical wire path a single canonical *Select, so the working set and the
// connection indices can use pointer identity.
func selOf(parent Wireable, t Type, seg string, cache *map[string]*Select) (Wireable, error) {
	if *cache == nil {
		*cache = make(map[string]*Select)
	}
	if s, ok := (*cache)[seg]; ok {
		return s, nil
	}
	ct, err := childType(t, seg)
	if err != nil {
		return nil, err
	}
	s := &Select{parent: parent, selStr: seg, typ: ct}
	(*cache)[seg] = s
	return s, nil
}

// fieldNames returns the names selectable directly beneath type t: record
// field names, or array indices as decimal strings.
func fieldNames(t Type) []string {
	switch tt := resolve(t).(type) {
	case RecordType:
		names := make([]string, len(tt.Fields))
		for i, f := range tt.Fields {
			names[i] = f.Name
		}
		return names
	case ArrayType:
		names := make([]string, tt.Len)
		for i := range names {
			names[i] = strconv.Itoa(i)
		}
		return names
	default:
		return nil
	}
}

func portSelects(parent Wireable, t Type, cache *map[string]*Select) map[string]Wireable {
	names := fieldNames(t)
	if names == nil {
		return nil
	}
	out := make(map[string]Wireable, len(names))
	for _, n := range names {
		w, err := selOf(parent, t, n, cache)
		if err != nil {
			panic(err)
		}
		out[n] = w
	}
	return out
}

// Select names a sub-wire by one path segment (a record field name or an
// array index) beneath a parent Wireable, which may itself be another
// Select, chaining into a full path.
type Select struct {
	parent   Wireable
	selStr   string
	typ      Type
	children map[string]*Select
}

// Type implements Wireable.
func (s *Select) Type() Type { return s.typ }

// Sel implements Wireable.
func (s *Select) Sel(seg string) (Wireable, error) { return selOf(s, s.typ, seg, &s.children) }

// Selects implements Wireable.
func (s *Select) Selects() map[string]Wireable { return portSelects(s, s.typ, &s.children) }

// SelStr returns the single path segment this select adds to its parent.
func (s *Select) SelStr() string { return s.selStr }

// Parent returns the wireable this select was taken from, which may itself
// be another Select.
func (s *Select) Parent() Wireable { return s.parent }

// TopParent returns the wireable at the root of this select's path: the
// module's self or a named Instance.
func (s *Select) TopParent() Wireable {
	w := s.parent
	for {
		p, ok := w.(*Select)
		if !ok {
			return w
		}
		w = p.parent
	}
}

// effectiveDir returns the direction a leaf bit-select behaves as from
// inside the module body. Instance ports keep their declared direction;
// self's ports are flipped, since a value driven into self.in from outside
// is, from the body's point of view, a source feeding instance inputs, and
// self.out is a sink fed by instance outputs.
func effectiveDir(w Wireable) Dir {
	bt, ok := resolve(w.Type()).(BitType)
	if !ok {
		panic(errors.Errorf("netlist: direction is only defined for a bit-level select, got %v", w.Type().Kind()))
	}
	top := w
	if s, ok := w.(*Select); ok {
		top = s.TopParent()
	}
	if _, isSelf := top.(*selfWireable); isSelf {
		if bt.D == In {
			return Out
		}
		return In
	}
	return bt.D
}

// PathString renders w as a dotted debug path, for error messages only; it
// is never used as a lookup key (canonical Select identity handles that).
func PathString(w Wireable) string {
	switch t := w.(type) {
	case *Select:
		return PathString(t.parent) + "." + t.selStr
	case *Instance:
		return t.Name
	case *selfWireable:
		return "self"
	default:
		return "?"
	}
}

// walkLeaves calls visit for every Bit-typed leaf select reachable beneath
// w, descending through arrays and records (and transparently through named
// types).
func walkLeaves(w Wireable, visit func(*Select)) {
	switch resolve(w.Type()).(type) {
	case BitType:
		if sel, ok := w.(*Select); ok {
			visit(sel)
		}
	default:
		for _, name := range fieldNames(w.Type()) {
			c, err := w.Sel(name)
			if err != nil {
				continue
			}
			walkLeaves(c, visit)
		}
	}
}

// OutputSelects returns every leaf bit-select beneath w whose effective
// direction (see effectiveDir) is Out.
func OutputSelects(w Wireable) []*Select {
	var out []*Select
	walkLeaves(w, func(s *Select) {
		if effectiveDir(s) == Out {
			out = append(out, s)
		}
	})
	return out
}

// InputSelects returns every leaf bit-select beneath w whose effective
// direction is In.
func InputSelects(w Wireable) []*Select {
	var out []*Select
	walkLeaves(w, func(s *Select) {
		if effectiveDir(s) == In {
			out = append(out, s)
		}
	})
	return out
}

// AllLeafSelects returns every leaf bit-select beneath w, regardless of
// direction.
func AllLeafSelects(w Wireable) []*Select {
	var out []*Select
	walkLeaves(w, func(s *Select) { out = append(out, s) })
	return out
}

// selfWireable is the module definition's own interface, seen from inside
// the body.
type selfWireable struct {
	typ      Type
	children map[string]*Select
}

// Type implements Wireable.
func (w *selfWireable) Type() Type { return w.typ }

// Sel implements Wireable.
func (w *selfWireable) Sel(seg string) (Wireable, error) { return selOf(w, w.typ, seg, &w.children) }

// Selects implements Wireable.
func (w *selfWireable) Selects() map[string]Wireable { return portSelects(w, w.typ, &w.children) }

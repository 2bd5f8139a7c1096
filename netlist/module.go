package netlist

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Module is a named, typed component: either a primitive (no ModuleDef body,
// evaluated directly by the simulator's dispatch table) or a composite
// (backed by a ModuleDef body of instances and connections, evaluated by
// recursing into a child Simulator).
type Module struct {
	name      string
	ifaceType Type
	genArgs   map[string]Value
	def       *ModuleDef
}

// Name returns the module's name. For a primitive this doubles as its
// QualifiedOpName, used to key the simulator's evaluator dispatch table.
func (m *Module) Name() string { return m.name }

// IfaceType returns the module's external interface type.
func (m *Module) IfaceType() Type { return m.ifaceType }

// GenArgs returns the generator arguments a primitive module was created
// with (e.g. bus width, const value, edge polarity).
func (m *Module) GenArgs() map[string]Value { return m.genArgs }

// HasDef reports whether this module is composite, i.e. backed by a body of
// instances and connections rather than being a primitive.
func (m *Module) HasDef() bool { return m.def != nil }

// Def returns the module's body. It panics if called on a primitive; callers
// should check HasDef first.
func (m *Module) Def() *ModuleDef {
	if m.def == nil {
		panic(errors.Errorf("netlist: module %q has no definition (it is a primitive)", m.name))
	}
	return m.def
}

// Primitive returns a body-less Module representing an evaluator-dispatched
// operation: a coreir/corebit cell. Its Name is the dispatch key the
// simulator's evaluator table is keyed on.
func Primitive(name string, ports Type, genArgs map[string]Value) *Module {
	return &Module{name: name, ifaceType: ports, genArgs: genArgs}
}

// Conn is one fully-resolved bit-level connection: a single driver select
// feeding a single receiver select.
type Conn struct {
	Driver   *Select
	Receiver *Select
}

// ModuleDef is a composite module's body: its self interface, its named
// instances, and the bit-level connection graph between them, indexed both
// by receiver (driverOf, for computing inputs) and by driver (receiversOf,
// for propagation fan-out).
type ModuleDef struct {
	mod         *Module
	self        *selfWireable
	instances   map[string]*Instance
	driverOf    map[*Select]*Select
	receiversOf map[*Select][]*Select
}

// Self returns the module's own interface, as seen from inside its body.
func (d *ModuleDef) Self() Wireable { return d.self }

// Sel descends into self by one path segment.
func (d *ModuleDef) Sel(seg string) (Wireable, error) { return d.self.Sel(seg) }

// CanSel reports whether seg names a direct child of self.
func (d *ModuleDef) CanSel(seg string) bool {
	_, err := d.self.Sel(seg)
	return err == nil
}

// Instances returns the named instances of this module's body.
func (d *ModuleDef) Instances() map[string]*Instance { return d.instances }

// SourceConnections returns, for every input leaf beneath w, the Conn
// driving it. A leaf with no driver is omitted; Build validates that this
// cannot happen for a fully wired module.
func (d *ModuleDef) SourceConnections(w Wireable) []Conn {
	ins := InputSelects(w)
	conns := make([]Conn, 0, len(ins))
	for _, recv := range ins {
		if drv, ok := d.driverOf[recv]; ok {
			conns = append(conns, Conn{Driver: drv, Receiver: recv})
		}
	}
	return conns
}

// ReceiverSelects returns every input leaf fed by driver.
func (d *ModuleDef) ReceiverSelects(driver *Select) []*Select {
	return d.receiversOf[driver]
}

// Builder incrementally constructs a composite Module: declare its external
// interface, add instances, connect them, then Build to validate full wiring
// and obtain the finished Module.
type Builder struct {
	mod *Module
	def *ModuleDef
}

// NewModule starts building a composite module named name with external
// interface ports.
func NewModule(name string, ports Type) *Builder {
	mod := &Module{name: name, ifaceType: ports}
	def := &ModuleDef{
		mod:         mod,
		self:        &selfWireable{typ: ports},
		instances:   make(map[string]*Instance),
		driverOf:    make(map[*Select]*Select),
		receiversOf: make(map[*Select][]*Select),
	}
	mod.def = def
	return &Builder{mod: mod, def: def}
}

// Self returns the module-under-construction's own interface.
func (b *Builder) Self() Wireable { return b.def.self }

// AddInstance adds a named instance of ref to the body, with the given
// module/generator arguments, and returns its Wireable interface for use in
// Connect calls.
func (b *Builder) AddInstance(name string, ref *Module, modArgs map[string]Value) (Wireable, error) {
	if _, dup := b.def.instances[name]; dup {
		return nil, errors.Errorf("netlist: duplicate instance name %q in module %q", name, b.mod.name)
	}
	inst := &Instance{Name: name, Ref: ref, Args: modArgs}
	b.def.instances[name] = inst
	return inst, nil
}

// Connect wires driver to receiver, recursively matching their shapes
// (arrays element by element, records field by field, by name) down to
// individual bit connections.
func (b *Builder) Connect(driver, receiver Wireable) error {
	return b.connectShape(driver, receiver)
}

func (b *Builder) connectShape(driver, receiver Wireable) error {
	dt, rt := resolve(driver.Type()), resolve(receiver.Type())
	switch dtt := dt.(type) {
	case BitType:
		_, ok := rt.(BitType)
		if !ok {
			return errors.Errorf("netlist: type mismatch connecting %s to %s", PathString(driver), PathString(receiver))
		}
		return b.addBitConn(driver, receiver)
	case ArrayType:
		rtt, ok := rt.(ArrayType)
		if !ok || rtt.Len != dtt.Len {
			return errors.Errorf("netlist: shape mismatch connecting %s to %s", PathString(driver), PathString(receiver))
		}
		for _, name := range fieldNames(dt) {
			dc, err := driver.Sel(name)
			if err != nil {
				return err
			}
			rc, err := receiver.Sel(name)
			if err != nil {
				return err
			}
			if err := b.connectShape(dc, rc); err != nil {
				return err
			}
		}
		return nil
	case RecordType:
		for _, f := range dtt.Fields {
			dc, err := driver.Sel(f.Name)
			if err != nil {
				return err
			}
			rc, err := receiver.Sel(f.Name)
			if err != nil {
				return errors.Wrapf(err, "netlist: no matching field %q on receiver %s", f.Name, PathString(receiver))
			}
			if err := b.connectShape(dc, rc); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.Errorf("netlist: cannot connect unshaped type at %s", PathString(driver))
	}
}

// addBitConn records a single bit-level connection after validating
// directions and that the receiver is not already driven.
func (b *Builder) addBitConn(driver, receiver Wireable) error {
	dsel, ok := driver.(*Select)
	if !ok {
		return errors.Errorf("netlist: driver %s is not a bit select", PathString(driver))
	}
	rsel, ok := receiver.(*Select)
	if !ok {
		return errors.Errorf("netlist: receiver %s is not a bit select", PathString(receiver))
	}
	if effectiveDir(dsel) != Out {
		return errors.Errorf("netlist: %s is not an output in this context", PathString(dsel))
	}
	if effectiveDir(rsel) != In {
		return errors.Errorf("netlist: %s is not an input in this context", PathString(rsel))
	}
	if prev, driven := b.def.driverOf[rsel]; driven {
		return errors.Errorf("netlist: %s is already driven by %s", PathString(rsel), PathString(prev))
	}
	b.def.driverOf[rsel] = dsel
	b.def.receiversOf[dsel] = append(b.def.receiversOf[dsel], rsel)
	return nil
}

// Build validates that every input of every instance, and every externally
// visible output of self (an input in body terms), has a driver, then
// returns the finished Module.
func (b *Builder) Build() (*Module, error) {
	var unconnected []string
	check := func(w Wireable) {
		for _, in := range InputSelects(w) {
			if _, ok := b.def.driverOf[in]; !ok {
				unconnected = append(unconnected, PathString(in))
			}
		}
	}
	check(b.def.self)
	names := make([]string, 0, len(b.def.instances))
	for name := range b.def.instances {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		check(b.def.instances[name])
	}
	if len(unconnected) > 0 {
		return nil, errors.Errorf("netlist: module %q has unconnected inputs: %s", b.mod.name, strings.Join(unconnected, ", "))
	}
	return b.mod, nil
}

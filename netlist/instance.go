package netlist

// Instance is a named instantiation of a Module (primitive or composite)
// inside a containing ModuleDef's body.
type Instance struct {
	Name     string
	Ref      *Module
	Args     map[string]Value
	children map[string]*Select
}

// ModArgs returns the generator/module arguments this instance was created
// with (bus widths, const values, edge polarities and the like).
func (i *Instance) ModArgs() map[string]Value { return i.Args }

// ModuleRef returns the Module this instance instantiates.
func (i *Instance) ModuleRef() *Module { return i.Ref }

// QualifiedOpName identifies the primitive operation this instance performs,
// for dispatch by the simulator's evaluator table. For a composite instance
// it is still well-defined but unused, since composite instances are
// evaluated by recursing into their own Simulator instead.
func (i *Instance) QualifiedOpName() string { return i.Ref.Name() }

// Type implements Wireable: an instance's external interface type, as seen
// from its containing module's body.
func (i *Instance) Type() Type { return i.Ref.IfaceType() }

// Sel implements Wireable.
func (i *Instance) Sel(seg string) (Wireable, error) {
	return selOf(i, i.Ref.IfaceType(), seg, &i.children)
}

// Selects implements Wireable.
func (i *Instance) Selects() map[string]Wireable {
	return portSelects(i, i.Ref.IfaceType(), &i.children)
}

package ast

import (
	"fmt"
	"strings"
)

// Parameter is a placeholder bound inside a compound frame's namespace.
// Resolving a reference to a parameter outside an instantiation is a type
// error.
type Parameter struct {
	node
	name string
}

func NewParameter(name string) *Parameter {
	return &Parameter{node: newNode(), name: name}
}

func (p *Parameter) Name() string   { return p.name }
func (p *Parameter) String() string { return "$" + p.name }

// CompoundFrame is a parameterized template. Its body does not run when
// the frame is declared; each distinct argument tuple produces one
// instance, built by cloning the body into a fresh entity seeded with
// the arguments.
type CompoundFrame struct {
	*Object
	params    []string
	instances map[string]*Object
	order     []string
}

func NewCompoundFrame(name string, params []string, body []Statement) *CompoundFrame {
	inner := newObjectState(name, false, body)
	inner.permanent = true
	return &CompoundFrame{
		Object:    inner,
		params:    params,
		instances: make(map[string]*Object),
	}
}

func (f *CompoundFrame) Params() []string { return f.params }

func (f *CompoundFrame) SetAlias(alias string) {
	f.Object.alias = alias
	if f.name == "" {
		f.name = alias
		f.ns.name = alias
	}
}

// Execute registers the frame. The body stays dormant; parameters are
// bound so that references inside the body resolve during linking.
func (f *CompoundFrame) Execute() error {
	if err := registerIn(f.owner, f.name, f.Object.alias, f.prefix(), f); err != nil {
		return err
	}
	for _, name := range f.params {
		if err := f.ns.Add(name, NewParameter(name), true); err != nil {
			return err
		}
	}
	return nil
}

// GetInstance resolves the instance for the given arguments, creating it
// on first use. Two calls with identity-equal arguments in the declared
// order yield the same entity.
func (f *CompoundFrame) GetInstance(args Args) (*Object, error) {
	for _, name := range f.params {
		if _, ok := args[name]; !ok {
			return nil, &TypeError{Op: fmt.Sprintf("instantiate %s: missing argument %q", f.name, name)}
		}
	}
	key := f.argsKey(args)
	if inst, ok := f.instances[key]; ok {
		return inst, nil
	}
	inst, err := f.instantiate(args)
	if err != nil {
		return nil, err
	}
	f.instances[key] = inst
	f.order = append(f.order, key)
	return inst, nil
}

// Instances returns all live instances in creation order.
func (f *CompoundFrame) Instances() []*Object {
	ret := make([]*Object, 0, len(f.order))
	for _, key := range f.order {
		ret = append(ret, f.instances[key])
	}
	return ret
}

func (f *CompoundFrame) argsKey(args Args) string {
	parts := make([]string, len(f.params))
	for i, name := range f.params {
		parts[i] = fmt.Sprintf("%d", args[name].ID())
	}
	return strings.Join(parts, ",")
}

func (f *CompoundFrame) instantiate(args Args) (*Object, error) {
	labels := make([]string, len(f.params))
	for i, name := range f.params {
		labels[i] = args[name].name
	}
	inst := newObjectState(
		fmt.Sprintf("%s(%s)", f.name, strings.Join(labels, ",")),
		true,
		cloneBody(f.body),
	)
	// Instances live beside the template, not inside it, so that the
	// template's dormant state never shadows them.
	inst.link(f.owner)
	for _, name := range f.params {
		if err := inst.ns.Add(name, args[name], true); err != nil {
			return nil, err
		}
	}
	if err := registerIn(f.owner, inst.name, "", "instance", inst); err != nil {
		return nil, err
	}
	for _, d := range inst.initialDescriptors {
		target, err := d.Resolve(nil)
		if err != nil {
			return nil, err
		}
		if err := inst.AddDescriptor(target); err != nil {
			return nil, err
		}
	}
	for _, s := range inst.body {
		if err := s.Execute(); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

func (f *CompoundFrame) link(owner *Object) {
	f.Object.link(owner)
}

func (f *CompoundFrame) clone() Statement {
	c := NewCompoundFrame(f.name, f.params, cloneBody(f.body))
	c.Object.alias = f.Object.alias
	return c
}

func (f *CompoundFrame) prefix() string { return "compound" }

func (f *CompoundFrame) String() string {
	return fmt.Sprintf("%s(%s)", f.name, strings.Join(f.params, ","))
}

package ast

import (
	"fmt"
	"strings"
)

// ObjectRef is a by-name reference to an entity defined elsewhere.
// A ref with a parent resolves the name inside the parent's namespace
// (dotted-path access); otherwise the name resolves upward through the
// reference's lexical scope. A refinement turns the target compound frame
// into the memoized instance for the resolved argument tuple.
type ObjectRef struct {
	node
	name       string
	parent     *ObjectRef
	refinement map[string]*ObjectRef
	owner      *Object
}

func NewObjectRef(name string) *ObjectRef {
	return &ObjectRef{node: newNode(), name: name}
}

func NewScopedObjectRef(parent *ObjectRef, name string) *ObjectRef {
	return &ObjectRef{node: newNode(), name: name, parent: parent}
}

func NewRefinedObjectRef(name string, refinement map[string]*ObjectRef) *ObjectRef {
	return &ObjectRef{node: newNode(), name: name, refinement: refinement}
}

func (r *ObjectRef) Name() string { return r.name }

// Resolve finds the referenced entity, searching ctx when given, else the
// reference's lexical scope.
func (r *ObjectRef) Resolve(ctx *Namespace) (*Object, error) {
	var target Node
	var err error

	if r.parent != nil {
		p, perr := r.parent.Resolve(ctx)
		if perr != nil {
			return nil, perr
		}
		target, err = p.ns.Get(r.name, false)
	} else {
		ns := ctx
		if ns == nil {
			if r.owner == nil {
				return nil, &NameError{Name: r.name, Scope: "<unlinked reference>"}
			}
			ns = r.owner.ns
		}
		target, err = ns.Get(r.name, true)
	}
	if err != nil {
		return nil, err
	}

	if r.refinement != nil {
		cf, ok := target.(*CompoundFrame)
		if !ok {
			return nil, &TypeError{Op: fmt.Sprintf("%q is not a compound frame, can't refine", r.name)}
		}
		args := make(Args, len(r.refinement))
		for name, ref := range r.refinement {
			arg, aerr := ref.Resolve(ctx)
			if aerr != nil {
				return nil, aerr
			}
			args[name] = arg
		}
		return cf.GetInstance(args)
	}

	return entityObject(r.name, target)
}

func (r *ObjectRef) link(owner *Object) {
	r.owner = owner
	if r.parent != nil {
		r.parent.link(owner)
	}
	for _, ref := range r.refinement {
		ref.link(owner)
	}
}

func (r *ObjectRef) cloneObjRef() *ObjectRef {
	if r == nil {
		return nil
	}
	c := &ObjectRef{node: newNode(), name: r.name, parent: r.parent.cloneObjRef()}
	if r.refinement != nil {
		c.refinement = make(map[string]*ObjectRef, len(r.refinement))
		for name, ref := range r.refinement {
			c.refinement[name] = ref.cloneObjRef()
		}
	}
	return c
}

func (r *ObjectRef) String() string {
	if r.parent != nil {
		return r.parent.String() + "." + r.name
	}
	return r.name
}

// entityObject unwraps a namespace value into its backing object.
func entityObject(name string, v Node) (*Object, error) {
	switch t := v.(type) {
	case Entity:
		return t.object(), nil
	case *Parameter:
		return nil, &TypeError{Op: fmt.Sprintf("parameter %q has no bound value in this scope", name)}
	default:
		return nil, &TypeError{Op: fmt.Sprintf("%q does not reference an entity", name)}
	}
}

// ActionRef references a named action, optionally with the invoking
// entity (bound as the "holder" argument) and named arguments.
type ActionRef struct {
	node
	name  string
	agent *ObjectRef
	args  map[string]*ObjectRef
	owner *Object
}

func NewActionRef(name string) *ActionRef {
	return &ActionRef{node: newNode(), name: name}
}

func NewAgentActionRef(agent *ObjectRef, name string) *ActionRef {
	return &ActionRef{node: newNode(), name: name, agent: agent}
}

func NewRefinedActionRef(name string, args map[string]*ObjectRef) *ActionRef {
	return &ActionRef{node: newNode(), name: name, args: args}
}

func (a *ActionRef) Name() string { return a.name }

// Args returns the declared argument references, for use as power
// selectors.
func (a *ActionRef) Args() map[string]*ObjectRef { return a.args }

func (a *ActionRef) handler() (*ActionHandler, error) {
	if a.owner == nil || a.owner.reg == nil {
		return nil, &TypeError{Op: fmt.Sprintf("action reference %s is not linked into a program", a.name)}
	}
	return a.owner.reg.Action(a.name), nil
}

// FireIn resolves the declared arguments in ctx, merges the forwarded
// firing args, and fires the action's handler.
func (a *ActionRef) FireIn(ctx *Namespace, args Args) error {
	h, err := a.handler()
	if err != nil {
		return err
	}

	fireArgs := args.clone()
	for name, ref := range a.args {
		v, rerr := ref.Resolve(ctx)
		if rerr != nil {
			return rerr
		}
		fireArgs[name] = v
	}
	if a.agent != nil {
		holder, herr := a.agent.Resolve(ctx)
		if herr != nil {
			return herr
		}
		fireArgs["holder"] = holder
	}

	_, err = h.Fire(fireArgs)
	return err
}

func (a *ActionRef) observe(obs Observer) error {
	h, err := a.handler()
	if err != nil {
		return err
	}
	h.Observe(obs)
	return nil
}

func (a *ActionRef) link(owner *Object) {
	a.owner = owner
	if a.agent != nil {
		a.agent.link(owner)
	}
	for _, ref := range a.args {
		ref.link(owner)
	}
}

func (a *ActionRef) cloneRef() EventRef { return a.cloneActionRef() }

func (a *ActionRef) cloneActionRef() *ActionRef {
	if a == nil {
		return nil
	}
	c := &ActionRef{node: newNode(), name: a.name}
	if a.agent != nil {
		c.agent = a.agent.cloneObjRef()
	}
	if a.args != nil {
		c.args = make(map[string]*ObjectRef, len(a.args))
		for name, ref := range a.args {
			c.args[name] = ref.cloneObjRef()
		}
	}
	return c
}

func (a *ActionRef) String() string {
	if a.agent != nil {
		return fmt.Sprintf("(%s).%s", a.agent, a.name)
	}
	return a.name
}

// ProductionEventRef is an unresolved production event: setting the
// referenced entity's activity to the target state.
type ProductionEventRef struct {
	node
	object *ObjectRef
	state  bool
}

func NewProductionEventRef(object *ObjectRef, state bool) *ProductionEventRef {
	return &ProductionEventRef{node: newNode(), object: object, state: state}
}

func (e *ProductionEventRef) FireIn(ctx *Namespace, _ Args) error {
	o, err := e.object.Resolve(ctx)
	if err != nil {
		return err
	}
	return o.SetActive(e.state)
}

func (e *ProductionEventRef) observe(obs Observer) error {
	o, err := e.object.Resolve(nil)
	if err != nil {
		return err
	}
	if o.reg == nil {
		return &TypeError{Op: fmt.Sprintf("entity %s is not linked into a program", o.FullName())}
	}
	o.reg.Production(o, e.state).Observe(obs)
	return nil
}

// assertValue lets a production event serve as a transformational
// conclusion: the antecedent's truth drives the entity toward the event's
// polarity.
func (e *ProductionEventRef) assertValue(v bool, positive bool) error {
	o, err := e.object.Resolve(nil)
	if err != nil {
		return err
	}
	return o.assertActive(v == e.state, positive)
}

func (e *ProductionEventRef) link(owner *Object) {
	e.object.link(owner)
}

func (e *ProductionEventRef) cloneRef() EventRef {
	return &ProductionEventRef{node: newNode(), object: e.object.cloneObjRef(), state: e.state}
}

func (e *ProductionEventRef) cloneAssert() Assertable {
	return e.cloneRef().(*ProductionEventRef)
}

func (e *ProductionEventRef) String() string {
	return fmt.Sprintf("%s%s", polaritySign(e.state), e.object)
}

// NamingEventRef is an unresolved naming event: the referenced entity
// gaining or losing the referenced descriptor.
type NamingEventRef struct {
	node
	entity     *ObjectRef
	descriptor *ObjectRef
	state      bool
}

func NewNamingEventRef(entity, descriptor *ObjectRef, state bool) *NamingEventRef {
	return &NamingEventRef{node: newNode(), entity: entity, descriptor: descriptor, state: state}
}

func (e *NamingEventRef) FireIn(ctx *Namespace, _ Args) error {
	o, err := e.entity.Resolve(ctx)
	if err != nil {
		return err
	}
	d, err := e.descriptor.Resolve(ctx)
	if err != nil {
		return err
	}
	return o.SetDescriptor(d, e.state)
}

func (e *NamingEventRef) observe(obs Observer) error {
	o, err := e.entity.Resolve(nil)
	if err != nil {
		return err
	}
	d, err := e.descriptor.Resolve(nil)
	if err != nil {
		return err
	}
	if o.reg == nil {
		return &TypeError{Op: fmt.Sprintf("entity %s is not linked into a program", o.FullName())}
	}
	o.reg.Naming(o, d, e.state).Observe(obs)
	return nil
}

func (e *NamingEventRef) assertValue(v bool, positive bool) error {
	o, err := e.entity.Resolve(nil)
	if err != nil {
		return err
	}
	d, err := e.descriptor.Resolve(nil)
	if err != nil {
		return err
	}
	return o.assertNaming(d, v == e.state, positive)
}

func (e *NamingEventRef) link(owner *Object) {
	e.entity.link(owner)
	e.descriptor.link(owner)
}

func (e *NamingEventRef) cloneRef() EventRef {
	return &NamingEventRef{
		node:       newNode(),
		entity:     e.entity.cloneObjRef(),
		descriptor: e.descriptor.cloneObjRef(),
		state:      e.state,
	}
}

func (e *NamingEventRef) cloneAssert() Assertable {
	return e.cloneRef().(*NamingEventRef)
}

func (e *NamingEventRef) String() string {
	gains := "gains"
	if !e.state {
		gains = "loses"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s %s", e.entity, gains, e.descriptor)
	return sb.String()
}

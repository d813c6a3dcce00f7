package ast

import "fmt"

// PowerFrame is an entity representing a conditional permission: it gates
// its action behind descriptor-matching selectors over the action's
// arguments, including the implicit "holder", and fires its consequence
// when the gate opens.
type PowerFrame struct {
	*Object
	position    Position
	action      *ActionRef
	consequence EventRef
	holder      *ObjectRef
	selectors   map[string]*ObjectRef
	selOrder    []string
}

// NewPowerFrame builds a power frame. A nil holder defaults to the
// wildcard selector, leaving the holder argument unrestricted.
func NewPowerFrame(position Position, action *ActionRef, consequence EventRef, holder *ObjectRef) *PowerFrame {
	if holder == nil {
		holder = NewObjectRef("*")
	}
	p := &PowerFrame{
		Object:      newObjectState("", true, nil),
		position:    position,
		action:      action,
		consequence: consequence,
		holder:      holder,
	}
	p.selectors = make(map[string]*ObjectRef, len(action.Args())+1)
	for name, ref := range action.Args() {
		p.selectors[name] = ref
		p.selOrder = append(p.selOrder, name)
	}
	p.selectors["holder"] = holder
	p.selOrder = append(p.selOrder, "holder")
	return p
}

// SetAlias names the frame in its owner's namespace.
func (p *PowerFrame) SetAlias(alias string) {
	p.Object.alias = alias
	if p.name == "" {
		p.name = alias
		p.ns.name = alias
	}
}

func (p *PowerFrame) Position() Position { return p.position }

// Execute registers the frame and subscribes it to its action's handler.
// The registration is permanent for the process.
func (p *PowerFrame) Execute() error {
	if err := registerIn(p.owner, p.name, p.Object.alias, p.prefix(), p); err != nil {
		return err
	}
	h, err := p.action.handler()
	if err != nil {
		return err
	}
	h.AddPower(p)
	return nil
}

// Accepts decides whether a firing of the gated action goes through this
// power: the frame must be active and every declared selector must be
// satisfied by the corresponding actual argument. On a full match the
// consequence fires inside a fresh namespace seeded with the action's
// arguments, and true is returned.
func (p *PowerFrame) Accepts(args Args) (bool, error) {
	if !p.Active() {
		return false, nil
	}

	for _, name := range p.selOrder {
		actual, ok := args[name]
		if !ok {
			return false, nil
		}
		required, err := p.selectors[name].Resolve(p.ns)
		if err != nil {
			return false, err
		}
		if !actual.HasDescriptor(required) {
			return false, nil
		}
	}

	ctx := NewNamespace("", p.ns)
	for name, v := range args {
		if err := ctx.Add(name, v, true); err != nil {
			return false, err
		}
	}
	if err := p.consequence.FireIn(ctx, nil); err != nil {
		return false, err
	}
	return true, nil
}

func (p *PowerFrame) link(owner *Object) {
	p.Object.link(owner)
	p.action.link(p.Object)
	p.consequence.link(p.Object)
	p.holder.link(p.Object)
	for _, ref := range p.selectors {
		ref.link(p.Object)
	}
}

func (p *PowerFrame) clone() Statement {
	action := p.action.cloneActionRef()
	c := NewPowerFrame(p.position, action, p.consequence.cloneRef(), p.holder.cloneObjRef())
	c.name = p.name
	c.ns.name = p.ns.name
	c.Object.alias = p.Object.alias
	return c
}

func (p *PowerFrame) prefix() string { return "power" }

func (p *PowerFrame) String() string {
	return fmt.Sprintf("%s%s: %s(%v) -> %v", polaritySign(p.Active()), p.position, p.action, p.holder, p.consequence)
}

package ast

import "fmt"

// DeonticSpec is a violation, fulfillment or termination specification:
// either a boolean condition (wired through a transformational rule) or an
// event reference (wired through a reactive rule). At most one of the two
// fields is set.
type DeonticSpec struct {
	Condition Condition
	Event     EventRef
}

func (s *DeonticSpec) clone() *DeonticSpec {
	if s == nil {
		return nil
	}
	c := &DeonticSpec{}
	if s.Condition != nil {
		c.Condition = s.Condition.cloneCond()
	}
	if s.Event != nil {
		c.Event = s.Event.cloneRef()
	}
	return c
}

func (s *DeonticSpec) link(owner *Object) {
	if s == nil {
		return
	}
	if s.Condition != nil {
		s.Condition.link(owner)
	}
	if s.Event != nil {
		s.Event.link(owner)
	}
}

// DeonticFrame is an entity representing a duty, prohibition or similar
// position over a governed action. It derives two sub-entities, violated
// and fulfilled, from its declared specifications and from the governed
// action's firings, and an implicit termination of its own activity.
type DeonticFrame struct {
	*Object
	position     Position
	action       *ActionRef
	holder       *ObjectRef
	counterparty *ObjectRef
	violation    *DeonticSpec
	fulfillment  *DeonticSpec
	termination  *DeonticSpec

	violated  *Object
	fulfilled *Object
}

// NewDeonticFrame builds a deontic frame. Nil holder or counterparty
// default to the wildcard.
func NewDeonticFrame(position Position, action *ActionRef, holder, counterparty *ObjectRef, violation, fulfillment, termination *DeonticSpec) *DeonticFrame {
	if holder == nil {
		holder = NewObjectRef("*")
	}
	if counterparty == nil {
		counterparty = NewObjectRef("*")
	}
	violated := newObjectState("violated", false, nil)
	fulfilled := newObjectState("fulfilled", false, nil)
	f := &DeonticFrame{
		Object:       newObjectState("", true, []Statement{violated, fulfilled}),
		position:     position,
		action:       action,
		holder:       holder,
		counterparty: counterparty,
		violation:    violation,
		fulfillment:  fulfillment,
		termination:  termination,
		violated:     violated,
		fulfilled:    fulfilled,
	}
	return f
}

func (f *DeonticFrame) SetAlias(alias string) {
	f.Object.alias = alias
	if f.name == "" {
		f.name = alias
		f.ns.name = alias
	}
}

func (f *DeonticFrame) Position() Position { return f.position }

// Violated is the derived sub-entity tracking violation.
func (f *DeonticFrame) Violated() *Object { return f.violated }

// Fulfilled is the derived sub-entity tracking fulfillment.
func (f *DeonticFrame) Fulfilled() *Object { return f.fulfilled }

// Execute registers the frame and its sub-entities, wires the declared
// specifications onto them, and subscribes the frame to the governed
// action.
func (f *DeonticFrame) Execute() error {
	if err := registerIn(f.owner, f.name, f.Object.alias, f.prefix(), f); err != nil {
		return err
	}
	for _, s := range f.body {
		if err := s.Execute(); err != nil {
			return err
		}
	}

	if err := f.wireSpec(f.violation, f.violated, true); err != nil {
		return err
	}
	if err := f.wireSpec(f.fulfillment, f.fulfilled, true); err != nil {
		return err
	}
	// Termination is wired against the frame's own activity, negated:
	// the condition coming true deactivates the frame.
	if err := f.wireTermination(); err != nil {
		return err
	}

	h, err := f.action.handler()
	if err != nil {
		return err
	}
	h.Observe(f)
	return nil
}

func (f *DeonticFrame) wireSpec(spec *DeonticSpec, target *Object, state bool) error {
	if spec == nil {
		return nil
	}
	if spec.Condition != nil {
		rule := NewTransformationalRule(spec.Condition, newObjectFacet(target, state))
		rule.link(f.Object)
		return rule.Execute()
	}
	rule := NewReactiveRule(spec.Event, newBoundProduction(target, state))
	rule.link(f.Object)
	return rule.Execute()
}

func (f *DeonticFrame) wireTermination() error {
	if f.termination == nil {
		return nil
	}
	if f.termination.Condition != nil {
		rule := NewTransformationalRule(f.termination.Condition, newObjectFacet(f.Object, false))
		rule.link(f.Object)
		return rule.Execute()
	}
	rule := NewReactiveRule(f.termination.Event, newBoundProduction(f.Object, false))
	rule.link(f.Object)
	return rule.Execute()
}

// Notify reacts to the governed action firing. A duty is fulfilled by its
// holder performing the action, a prohibition violated by it; a claim is
// fulfilled by the counterparty's performance. Positions with no reaction
// mapping are reported and ignored.
func (f *DeonticFrame) Notify(args Args) error {
	if !f.Active() {
		return nil
	}

	selector := f.holder
	if f.position == Claim {
		selector = f.counterparty
	}
	if performer, ok := args["holder"]; ok {
		required, err := selector.Resolve(f.ns)
		if err != nil {
			return err
		}
		if !performer.HasDescriptor(required) {
			return nil
		}
	}

	switch f.position {
	case Duty, Claim:
		return f.fulfilled.SetActive(true)
	case Prohibition:
		return f.violated.SetActive(true)
	default:
		if f.reg != nil {
			f.reg.log.Debug("no action reaction for deontic position",
				"position", string(f.position),
				"frame", f.FullName(),
			)
		}
		return nil
	}
}

func (f *DeonticFrame) link(owner *Object) {
	f.Object.link(owner)
	f.action.link(f.Object)
	f.holder.link(f.Object)
	f.counterparty.link(f.Object)
	f.violation.link(f.Object)
	f.fulfillment.link(f.Object)
	f.termination.link(f.Object)
}

func (f *DeonticFrame) clone() Statement {
	c := NewDeonticFrame(
		f.position,
		f.action.cloneActionRef(),
		f.holder.cloneObjRef(),
		f.counterparty.cloneObjRef(),
		f.violation.clone(),
		f.fulfillment.clone(),
		f.termination.clone(),
	)
	c.name = f.name
	c.ns.name = f.ns.name
	c.Object.alias = f.Object.alias
	return c
}

func (f *DeonticFrame) prefix() string { return "deontic" }

func (f *DeonticFrame) String() string {
	return fmt.Sprintf("%s%s: %s(%v)", polaritySign(f.Active()), f.position, f.action, f.holder)
}

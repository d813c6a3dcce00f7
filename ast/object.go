package ast

import (
	"fmt"
	"strings"
)

// Object is the base modeled entity: a named thing that can be active or
// inactive, carry descriptors, own children in a private namespace, and be
// the subject of production and naming events.
//
// Activity cascades downward through lexical nesting: an object's resolved
// activity is true only if its own boolean facet is true and its owner is
// active. Descriptor membership is held directly in symmetric
// descriptor/referent index sets and implied transitively through the
// descriptors' own descriptors.
type Object struct {
	node
	name string
	body []Statement

	owner *Object
	ns    *Namespace
	reg   *Registry

	activity   boolState
	lastActive bool

	// universal marks the wildcard descriptor "*": held by every entity,
	// immutable, without descriptors of its own.
	universal bool
	// permanent pins the activity facet, rejecting any change. Set for
	// compound frames and the wildcard.
	permanent bool

	initialDescriptors []*ObjectRef

	descriptors *objSet
	referents   *objSet
	children    *objSet

	naming     map[ID]*boolState
	lastNaming map[ID]bool
}

// NewObject returns an active entity with the given body.
func NewObject(name string, body ...Statement) *Object {
	return newObjectState(name, true, body)
}

// NewInactiveObject returns an entity that starts inactive.
func NewInactiveObject(name string, body ...Statement) *Object {
	return newObjectState(name, false, body)
}

func newObjectState(name string, active bool, body []Statement) *Object {
	o := &Object{
		node:        newNode(),
		name:        name,
		body:        body,
		ns:          NewNamespace(name, nil),
		descriptors: newObjSet(),
		referents:   newObjSet(),
		children:    newObjSet(),
		naming:      make(map[ID]*boolState),
		lastNaming:  make(map[ID]bool),
	}
	o.activity.set(active)
	o.lastActive = active
	return o
}

func newUniversal() *Object {
	o := newObjectState("*", true, nil)
	o.universal = true
	o.permanent = true
	return o
}

func (o *Object) object() *Object     { return o }
func (o *Object) Name() string        { return o.name }
func (o *Object) Owner() *Object      { return o.owner }
func (o *Object) Namespace() *Namespace { return o.ns }
func (o *Object) Body() []Statement   { return o.body }

// SetInitialDescriptors declares descriptors applied when the object
// executes.
func (o *Object) SetInitialDescriptors(refs ...*ObjectRef) {
	o.initialDescriptors = refs
}

// FullName is the "::"-joined chain from the root to this entity.
func (o *Object) FullName() string {
	return o.ns.FullName()
}

// Active resolves the entity's effective activity: its own boolean facet
// conjoined with its owner chain.
func (o *Object) Active() bool {
	v := o.activity.value()
	if v && o.owner != nil {
		v = o.owner.Active()
	}
	return v
}

// SetActive overwrites the imperative activity value and propagates the
// resulting change, if any.
func (o *Object) SetActive(v bool) error {
	if o.universal {
		return &TypeError{Op: "can't change activity of the wildcard descriptor"}
	}
	if o.permanent {
		return &TypeError{Op: fmt.Sprintf("can't change activity of %s", o.FullName())}
	}
	o.activity.set(v)
	return o.recheckActive()
}

// assertActive drives the activity facet through the declarative channel.
func (o *Object) assertActive(v bool, positive bool) error {
	if o.universal || o.permanent {
		return &TypeError{Op: fmt.Sprintf("can't derive activity of %s", o.FullName())}
	}
	if o.activity.assert(v, positive) {
		return &LogicError{Facet: "activity of " + o.FullName()}
	}
	return o.recheckActive()
}

// recheckActive compares the resolved activity against the last observed
// value and, on an edge, fires the production event and re-checks every
// child, whose effective state depends on this owner.
func (o *Object) recheckActive() error {
	now := o.Active()
	if now == o.lastActive {
		return nil
	}
	o.lastActive = now

	if o.reg != nil {
		if err := o.reg.Production(o, now).fire(nil); err != nil {
			return err
		}
	}
	for _, child := range o.children.snapshot() {
		if err := child.recheckActive(); err != nil {
			return err
		}
	}
	return nil
}

// HasReferent reports whether r carries this object as a descriptor.
// The wildcard answers true for everything.
func (o *Object) HasReferent(r *Object) bool {
	if o.universal {
		return true
	}
	return o.referents.has(r)
}

// HasDescriptor reports whether this entity carries d: every entity is its
// own descriptor, membership delegates to the descriptor's referent set,
// and descriptors of a held descriptor are held transitively.
func (o *Object) HasDescriptor(d *Object) bool {
	return o.hasDescriptor(d, make(map[ID]bool))
}

func (o *Object) hasDescriptor(d *Object, seen map[ID]bool) bool {
	if d == o {
		return true
	}
	if o.universal {
		return false
	}
	if d.HasReferent(o) {
		return true
	}
	if seen[o.id] {
		return false
	}
	seen[o.id] = true
	for _, dd := range o.descriptors.order {
		if dd.hasDescriptor(d, seen) {
			return true
		}
	}
	return false
}

// Descriptors returns the direct descriptor set in insertion order.
func (o *Object) Descriptors() []*Object {
	return o.descriptors.snapshot()
}

// AllDescriptors returns the transitively resolved descriptor set, not
// including the entity itself.
func (o *Object) AllDescriptors() []*Object {
	var ret []*Object
	seen := make(map[ID]bool)
	var walk func(*Object)
	walk = func(e *Object) {
		for _, d := range e.descriptors.order {
			if seen[d.id] {
				continue
			}
			seen[d.id] = true
			ret = append(ret, d)
			walk(d)
		}
	}
	walk(o)
	return ret
}

// AddDescriptor adds d to the entity's direct descriptor set and
// propagates the membership change.
func (o *Object) AddDescriptor(d *Object) error {
	return o.SetDescriptor(d, true)
}

// RemoveDescriptor removes d and propagates the membership change.
func (o *Object) RemoveDescriptor(d *Object) error {
	return o.SetDescriptor(d, false)
}

// SetDescriptor overwrites the imperative membership value of (o, d) and
// propagates the resulting change, if any. Removing the wildcard or the
// entity itself is rejected before any mutation.
func (o *Object) SetDescriptor(d *Object, v bool) error {
	if err := o.checkDescriptorMutable(d, v); err != nil {
		return err
	}
	if d.universal || d == o {
		// Held unconditionally; adding is a no-op.
		return nil
	}
	o.namingState(d).set(v)
	return o.recheckNaming(d)
}

// assertNaming drives the (o, d) membership facet through the declarative
// channel.
func (o *Object) assertNaming(d *Object, v bool, positive bool) error {
	if err := o.checkDescriptorMutable(d, v); err != nil {
		return err
	}
	if d.universal || d == o {
		return &DescriptorError{Op: fmt.Sprintf("can't derive membership of %s in %s", o.FullName(), d.FullName())}
	}
	if o.namingState(d).assert(v, positive) {
		return &LogicError{Facet: fmt.Sprintf("%s in %s", o.FullName(), d.FullName())}
	}
	return o.recheckNaming(d)
}

func (o *Object) checkDescriptorMutable(d *Object, v bool) error {
	if d.universal && !v {
		return &DescriptorError{Op: "can't remove the wildcard descriptor from " + o.FullName()}
	}
	if d == o && !v {
		return &DescriptorError{Op: "can't remove " + o.FullName() + " from its own descriptor set"}
	}
	if o.universal {
		return &DescriptorError{Op: "can't assign descriptors to the wildcard descriptor"}
	}
	return nil
}

func (o *Object) namingState(d *Object) *boolState {
	s, ok := o.naming[d.id]
	if !ok {
		s = &boolState{}
		o.naming[d.id] = s
	}
	return s
}

// resolvedNaming resolves the declared/derived value of "o has d":
// declarative counter first, then the imperative flag, then the direct
// descriptors' consensus.
func (o *Object) resolvedNaming(d *Object) (bool, error) {
	if s, ok := o.naming[d.id]; ok {
		if s.counter != 0 {
			return s.counter > 0, nil
		}
		if s.explicit {
			return s.imperative, nil
		}
	}
	return o.inheritedNaming(d)
}

// inheritedNaming takes the direct descriptors' vote on d. A descriptor
// carrying d votes true; one whose own facet explicitly denies d votes
// false; the rest abstain. Disagreement is contradictory inheritance.
func (o *Object) inheritedNaming(d *Object) (bool, error) {
	var anyTrue, anyFalse bool
	for _, dd := range o.descriptors.order {
		// a direct edge materialized from an earlier derivation is the
		// facet under re-check, not a vote on it
		if dd == d {
			continue
		}
		switch {
		case dd.HasDescriptor(d):
			anyTrue = true
		case dd.naming[d.id] != nil && dd.naming[d.id].deniesExplicitly():
			anyFalse = true
		}
	}
	if anyTrue && anyFalse {
		return false, &LogicError{Facet: fmt.Sprintf("inherited membership of %s in %s", o.FullName(), d.FullName())}
	}
	return anyTrue, nil
}

// recheckNaming re-resolves the (o, d) membership facet and applies the
// propagation steps on an edge: mutate the direct edge, re-check the
// taxonomic consequences through d's own descriptors, fire the naming
// event, and ripple outward through o's referents.
func (o *Object) recheckNaming(d *Object) error {
	now, err := o.resolvedNaming(d)
	if err != nil {
		return err
	}
	old, seen := o.lastNaming[d.id]
	if seen && old == now {
		return nil
	}
	if !seen && !now {
		o.lastNaming[d.id] = false
		return nil
	}
	o.lastNaming[d.id] = now

	if now {
		o.descriptors.add(d)
		d.referents.add(o)
	} else {
		o.descriptors.remove(d)
		d.referents.remove(o)
	}

	for _, dd := range d.descriptors.snapshot() {
		if err := o.recheckNaming(dd); err != nil {
			return err
		}
	}

	if o.reg != nil {
		if err := o.reg.Naming(o, d, now).fire(nil); err != nil {
			return err
		}
	}

	for _, r := range o.referents.snapshot() {
		if err := r.recheckNaming(d); err != nil {
			return err
		}
	}
	return nil
}

// link assigns the lexical owner, wires the private namespace into the
// owner's chain, and recurses over the body. Runs once over the whole
// program after construction, and again over every compound instance.
func (o *Object) link(owner *Object) {
	o.owner = owner
	if owner != nil {
		o.reg = owner.reg
		o.ns.setParent(owner.ns)
		owner.children.add(o)
	}
	o.lastActive = o.Active()
	for _, ref := range o.initialDescriptors {
		ref.link(o)
	}
	for _, s := range o.body {
		s.link(o)
	}
}

// Execute registers the object in its owner's namespace, applies initial
// descriptors, and executes the body in declaration order.
func (o *Object) Execute() error {
	if err := registerIn(o.owner, o.name, o.alias, o.prefix(), o); err != nil {
		return err
	}
	for _, ref := range o.initialDescriptors {
		d, err := ref.Resolve(nil)
		if err != nil {
			return err
		}
		if err := o.AddDescriptor(d); err != nil {
			return err
		}
	}
	for _, s := range o.body {
		if err := s.Execute(); err != nil {
			return err
		}
	}
	return nil
}

// GetAttribute retrieves a child by name. A miss falls back to the
// descriptors' children: the first descriptor defining the name
// contributes a fresh local copy, instantiated under this entity.
func (o *Object) GetAttribute(name string) (Node, error) {
	v, err := o.ns.Get(name, false)
	if err == nil {
		return v, nil
	}
	for _, d := range o.AllDescriptors() {
		tmpl, derr := d.ns.Get(name, false)
		if derr != nil {
			continue
		}
		st, ok := tmpl.(Statement)
		if !ok {
			continue
		}
		local := st.clone()
		local.link(o)
		if eerr := local.Execute(); eerr != nil {
			return nil, eerr
		}
		return o.ns.Get(name, false)
	}
	return nil, err
}

func (o *Object) prefix() string { return "object" }

func (o *Object) clone() Statement {
	c := newObjectState(o.name, o.activity.imperative, cloneBody(o.body))
	c.alias = o.alias
	for _, ref := range o.initialDescriptors {
		c.initialDescriptors = append(c.initialDescriptors, ref.cloneObjRef())
	}
	return c
}

func (o *Object) String() string {
	var tags []string
	for _, d := range o.descriptors.order {
		tags = append(tags, d.name)
	}
	return fmt.Sprintf("%s%s[%s]", polaritySign(o.Active()), o.name, strings.Join(tags, ", "))
}

func cloneBody(body []Statement) []Statement {
	if body == nil {
		return nil
	}
	ret := make([]Statement, len(body))
	for i, s := range body {
		ret[i] = s.clone()
	}
	return ret
}

// registerIn binds a statement into its owner's namespace under its name,
// alias, or a fresh auto-identifier.
func registerIn(owner *Object, name, alias, prefix string, value Node) error {
	if owner == nil {
		return nil
	}
	switch {
	case name != "":
		return owner.ns.Add(name, value, false)
	case alias != "":
		return owner.ns.Add(alias, value, false)
	default:
		return owner.ns.Add(owner.ns.AutoID(prefix), value, false)
	}
}

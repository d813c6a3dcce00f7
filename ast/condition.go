package ast

import "fmt"

// ObjectCondition is the boolean expression "entity is active" (or
// inactive, when expect is false). As an assertable it drives the
// entity's activity facet.
type ObjectCondition struct {
	node
	ref    *ObjectRef
	expect bool
}

func NewObjectCondition(ref *ObjectRef) *ObjectCondition {
	return &ObjectCondition{node: newNode(), ref: ref, expect: true}
}

func NewNegatedObjectCondition(ref *ObjectRef) *ObjectCondition {
	return &ObjectCondition{node: newNode(), ref: ref, expect: false}
}

func (c *ObjectCondition) Value() (bool, error) {
	o, err := c.ref.Resolve(nil)
	if err != nil {
		return false, err
	}
	return o.Active() == c.expect, nil
}

func (c *ObjectCondition) observeChanges(obs Observer) error {
	o, err := c.ref.Resolve(nil)
	if err != nil {
		return err
	}
	if o.reg == nil {
		return &TypeError{Op: fmt.Sprintf("entity %s is not linked into a program", o.FullName())}
	}
	o.reg.Production(o, true).Observe(obs)
	o.reg.Production(o, false).Observe(obs)
	return nil
}

func (c *ObjectCondition) assertValue(v bool, positive bool) error {
	o, err := c.ref.Resolve(nil)
	if err != nil {
		return err
	}
	return o.assertActive(v == c.expect, positive)
}

func (c *ObjectCondition) link(owner *Object) {
	c.ref.link(owner)
}

func (c *ObjectCondition) cloneCond() Condition {
	return &ObjectCondition{node: newNode(), ref: c.ref.cloneObjRef(), expect: c.expect}
}

func (c *ObjectCondition) cloneAssert() Assertable {
	return c.cloneCond().(*ObjectCondition)
}

func (c *ObjectCondition) String() string {
	return fmt.Sprintf("%s%s", polaritySign(c.expect), c.ref)
}

// DescriptorCondition is the boolean expression "entity has descriptor"
// (negated when expect is false). As an assertable it drives the naming
// facet.
type DescriptorCondition struct {
	node
	entity     *ObjectRef
	descriptor *ObjectRef
	expect     bool
}

func NewDescriptorCondition(entity, descriptor *ObjectRef, expect bool) *DescriptorCondition {
	return &DescriptorCondition{node: newNode(), entity: entity, descriptor: descriptor, expect: expect}
}

func (c *DescriptorCondition) Value() (bool, error) {
	o, err := c.entity.Resolve(nil)
	if err != nil {
		return false, err
	}
	d, err := c.descriptor.Resolve(nil)
	if err != nil {
		return false, err
	}
	return o.HasDescriptor(d) == c.expect, nil
}

func (c *DescriptorCondition) observeChanges(obs Observer) error {
	o, err := c.entity.Resolve(nil)
	if err != nil {
		return err
	}
	d, err := c.descriptor.Resolve(nil)
	if err != nil {
		return err
	}
	if o.reg == nil {
		return &TypeError{Op: fmt.Sprintf("entity %s is not linked into a program", o.FullName())}
	}
	o.reg.Naming(o, d, true).Observe(obs)
	o.reg.Naming(o, d, false).Observe(obs)
	return nil
}

func (c *DescriptorCondition) assertValue(v bool, positive bool) error {
	o, err := c.entity.Resolve(nil)
	if err != nil {
		return err
	}
	d, err := c.descriptor.Resolve(nil)
	if err != nil {
		return err
	}
	return o.assertNaming(d, v == c.expect, positive)
}

func (c *DescriptorCondition) link(owner *Object) {
	c.entity.link(owner)
	c.descriptor.link(owner)
}

func (c *DescriptorCondition) cloneCond() Condition {
	return &DescriptorCondition{
		node:       newNode(),
		entity:     c.entity.cloneObjRef(),
		descriptor: c.descriptor.cloneObjRef(),
		expect:     c.expect,
	}
}

func (c *DescriptorCondition) cloneAssert() Assertable {
	return c.cloneCond().(*DescriptorCondition)
}

func (c *DescriptorCondition) String() string {
	if c.expect {
		return fmt.Sprintf("%s has %s", c.entity, c.descriptor)
	}
	return fmt.Sprintf("%s has not %s", c.entity, c.descriptor)
}

// BooleanLiteral is a constant condition.
type BooleanLiteral struct {
	node
	value bool
}

func NewBooleanLiteral(v bool) *BooleanLiteral {
	return &BooleanLiteral{node: newNode(), value: v}
}

func (c *BooleanLiteral) Value() (bool, error) {
	return c.value, nil
}

func (c *BooleanLiteral) observeChanges(Observer) error {
	// Constants never change.
	return nil
}

func (c *BooleanLiteral) link(*Object) {}

func (c *BooleanLiteral) cloneCond() Condition {
	return &BooleanLiteral{node: newNode(), value: c.value}
}

func (c *BooleanLiteral) String() string {
	return fmt.Sprintf("%v", c.value)
}

// objectFacet binds a condition or assertable directly to an entity,
// bypassing name resolution. Deontic frames use it to wire their derived
// sub-entities and their own activity.
type objectFacet struct {
	node
	obj    *Object
	expect bool
}

func newObjectFacet(obj *Object, expect bool) *objectFacet {
	return &objectFacet{node: newNode(), obj: obj, expect: expect}
}

func (f *objectFacet) Value() (bool, error) {
	return f.obj.Active() == f.expect, nil
}

func (f *objectFacet) observeChanges(obs Observer) error {
	if f.obj.reg == nil {
		return &TypeError{Op: fmt.Sprintf("entity %s is not linked into a program", f.obj.FullName())}
	}
	f.obj.reg.Production(f.obj, true).Observe(obs)
	f.obj.reg.Production(f.obj, false).Observe(obs)
	return nil
}

func (f *objectFacet) assertValue(v bool, positive bool) error {
	return f.obj.assertActive(v == f.expect, positive)
}

func (f *objectFacet) link(*Object) {}

func (f *objectFacet) cloneCond() Condition {
	return &objectFacet{node: newNode(), obj: f.obj, expect: f.expect}
}

func (f *objectFacet) cloneAssert() Assertable {
	return f.cloneCond().(*objectFacet)
}

// boundProduction is the event analogue of objectFacet: setting a known
// entity's activity imperatively.
type boundProduction struct {
	node
	obj   *Object
	state bool
}

func newBoundProduction(obj *Object, state bool) *boundProduction {
	return &boundProduction{node: newNode(), obj: obj, state: state}
}

func (e *boundProduction) FireIn(*Namespace, Args) error {
	return e.obj.SetActive(e.state)
}

func (e *boundProduction) observe(obs Observer) error {
	if e.obj.reg == nil {
		return &TypeError{Op: fmt.Sprintf("entity %s is not linked into a program", e.obj.FullName())}
	}
	e.obj.reg.Production(e.obj, e.state).Observe(obs)
	return nil
}

func (e *boundProduction) link(*Object) {}

func (e *boundProduction) cloneRef() EventRef {
	return &boundProduction{node: newNode(), obj: e.obj, state: e.state}
}

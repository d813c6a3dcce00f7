package ast

import "fmt"

// TransformationalRule continuously mirrors its antecedent's truth value
// onto its consequent through the declarative channel. Multiple
// simultaneous derivations of one facet reconcile through the facet's
// signed counter, which detects logical contradiction.
type TransformationalRule struct {
	node
	antecedent Condition
	consequent Assertable
	owner      *Object
}

func NewTransformationalRule(antecedent Condition, consequent Assertable) *TransformationalRule {
	return &TransformationalRule{node: newNode(), antecedent: antecedent, consequent: consequent}
}

// SetAlias names the rule in its owner's namespace instead of an
// auto-identifier.
func (r *TransformationalRule) SetAlias(alias string) {
	r.alias = alias
}

// Execute registers the rule, subscribes it to the antecedent's change
// events, and evaluates once in case the antecedent already holds.
func (r *TransformationalRule) Execute() error {
	if err := registerIn(r.owner, "", r.alias, r.prefix(), r); err != nil {
		return err
	}
	if err := r.antecedent.observeChanges(r); err != nil {
		return err
	}
	v, err := r.antecedent.Value()
	if err != nil {
		return err
	}
	if v {
		return r.consequent.assertValue(true, true)
	}
	return nil
}

// Notify re-evaluates the antecedent and asserts its current value onto
// the consequent. The assertion counts as a positive change exactly when
// the antecedent is currently true; contradiction checking fires only for
// newly true derivations, not for counter-balanced retractions.
func (r *TransformationalRule) Notify(Args) error {
	v, err := r.antecedent.Value()
	if err != nil {
		return err
	}
	return r.consequent.assertValue(v, v)
}

func (r *TransformationalRule) link(owner *Object) {
	r.owner = owner
	r.antecedent.link(owner)
	r.consequent.link(owner)
}

func (r *TransformationalRule) clone() Statement {
	c := &TransformationalRule{
		node:       newNode(),
		antecedent: r.antecedent.cloneCond(),
		consequent: r.consequent.cloneAssert(),
	}
	c.alias = r.alias
	return c
}

func (r *TransformationalRule) prefix() string { return "rule" }

func (r *TransformationalRule) String() string {
	return fmt.Sprintf("%v => %v", r.antecedent, r.consequent)
}

// ReactiveRule forwards one event to another: when the observed event
// fires, the reaction fires with the same arguments.
type ReactiveRule struct {
	node
	event    EventRef
	reaction EventRef
	owner    *Object
}

func NewReactiveRule(event, reaction EventRef) *ReactiveRule {
	return &ReactiveRule{node: newNode(), event: event, reaction: reaction}
}

func (r *ReactiveRule) SetAlias(alias string) {
	r.alias = alias
}

func (r *ReactiveRule) Execute() error {
	if err := registerIn(r.owner, "", r.alias, r.prefix(), r); err != nil {
		return err
	}
	return r.event.observe(r)
}

func (r *ReactiveRule) Notify(args Args) error {
	return r.reaction.FireIn(nil, args)
}

func (r *ReactiveRule) link(owner *Object) {
	r.owner = owner
	r.event.link(owner)
	r.reaction.link(owner)
}

func (r *ReactiveRule) clone() Statement {
	c := &ReactiveRule{
		node:     newNode(),
		event:    r.event.cloneRef(),
		reaction: r.reaction.cloneRef(),
	}
	c.alias = r.alias
	return c
}

func (r *ReactiveRule) prefix() string { return "rule" }

func (r *ReactiveRule) String() string {
	return fmt.Sprintf("%v -> %v", r.event, r.reaction)
}

// Package ast holds the object model and evaluation engine for DPCL
// documents: scoped namespaces, the boolean-state algebra, the descriptor
// graph, event handlers, power and deontic frames, rules, and compound
// frame instantiation.
//
// Evaluation is single threaded. All cascades triggered by a statement run
// depth first and to completion before the statement returns; callers that
// share a Program across goroutines must serialize statement execution.
package ast

import "sync/atomic"

// ID is the stable integer handle of a node. Descriptor, referent and
// observer relations are index sets keyed by ID.
type ID int64

var idGen atomic.Int64

func nextID() ID {
	return ID(idGen.Add(1))
}

type node struct {
	id    ID
	alias string
}

func newNode() node {
	return node{id: nextID()}
}

func (n *node) ID() ID {
	return n.id
}

// Node is any value that can live in a namespace or observe events.
type Node interface {
	ID() ID
}

// Args carries the named arguments of an event firing.
type Args map[string]*Object

func (a Args) clone() Args {
	ret := make(Args, len(a)+1)
	for k, v := range a {
		ret[k] = v
	}
	return ret
}

// Observer is notified when a handler it subscribed to fires.
type Observer interface {
	Node
	Notify(args Args) error
}

// Statement is a node executable in a program or frame body. Execute
// registers the node in its owner's namespace and wires subscriptions;
// it must run after the link pass assigned owners.
type Statement interface {
	Node
	Execute() error
	link(owner *Object)
	clone() Statement
	prefix() string
}

// EventRef is an unresolved event specification: an action reference, or a
// production/naming event on referenced entities. Firing resolves the
// references in ctx (or the owner scope when ctx is nil) and forwards args.
type EventRef interface {
	Node
	FireIn(ctx *Namespace, args Args) error
	observe(obs Observer) error
	link(owner *Object)
	cloneRef() EventRef
}

// Condition is a boolean-valued expression usable as a transformational
// rule antecedent.
type Condition interface {
	Node
	Value() (bool, error)
	observeChanges(obs Observer) error
	link(owner *Object)
	cloneCond() Condition
}

// Assertable is a boolean facet a transformational rule can drive through
// the declarative channel.
type Assertable interface {
	Node
	assertValue(v bool, positive bool) error
	link(owner *Object)
	cloneAssert() Assertable
}

// Entity is implemented by every node backed by an Object: plain objects,
// power and deontic frames, and compound frames.
type Entity interface {
	Node
	object() *Object
}

// EntityObject unwraps the state object behind a node, when it has one.
func EntityObject(n Node) (*Object, bool) {
	if e, ok := n.(Entity); ok {
		return e.object(), true
	}
	return nil, false
}

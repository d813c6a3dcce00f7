package ast

import (
	"fmt"
	"log/slog"
)

// Program is the root of an evaluated document. It owns the event
// registry and the root entity whose namespace anchors all top-level
// declarations, so independent programs never share state.
type Program struct {
	name string
	body []Statement
	root *Object
	reg  *Registry
}

func NewProgram(name string, body ...Statement) *Program {
	p := &Program{
		name: name,
		body: body,
		root: NewObject(name),
		reg:  NewRegistry(nil),
	}
	p.root.reg = p.reg
	p.root.lastActive = true
	if err := p.root.ns.Add("*", newUniversal(), true); err != nil {
		panic(fmt.Sprintf("seed universal descriptor: %v", err))
	}
	return p
}

func (p *Program) Name() string        { return p.name }
func (p *Program) Body() []Statement   { return p.body }
func (p *Program) Root() *Object       { return p.root }
func (p *Program) Registry() *Registry { return p.reg }

// SetLogger routes the program's evaluation reports. Must be called
// before Execute.
func (p *Program) SetLogger(log *slog.Logger) {
	p.reg.log = log
}

// Execute links every top-level statement under the root, then runs them
// in declaration order. The first failing statement aborts evaluation.
func (p *Program) Execute() error {
	for _, s := range p.body {
		s.link(p.root)
	}
	for _, s := range p.body {
		if err := s.Execute(); err != nil {
			return err
		}
	}
	return nil
}

// GetVariable resolves a top-level name declared by the program.
func (p *Program) GetVariable(name string) (Node, error) {
	return p.root.ns.Get(name, false)
}

func (p *Program) String() string {
	return fmt.Sprintf("program %s (%d statements)", p.name, len(p.body))
}

// Batch groups statements declared together in one atomic clause. They
// link and execute as if written in sequence at the batch's position.
type Batch struct {
	node
	statements []Statement
	owner      *Object
}

func NewBatch(statements ...Statement) *Batch {
	return &Batch{node: newNode(), statements: statements}
}

func (b *Batch) Execute() error {
	for _, s := range b.statements {
		if err := s.Execute(); err != nil {
			return err
		}
	}
	return nil
}

func (b *Batch) link(owner *Object) {
	b.owner = owner
	for _, s := range b.statements {
		s.link(owner)
	}
}

func (b *Batch) clone() Statement {
	return NewBatch(cloneBody(b.statements)...)
}

func (b *Batch) prefix() string { return "batch" }

func (b *Batch) String() string {
	return fmt.Sprintf("batch of %d", len(b.statements))
}

package ast

import (
	"io"
	"log/slog"
	"testing"
)

func newTestProgram(t *testing.T, body ...Statement) *Program {
	t.Helper()
	p := NewProgram("test", body...)
	p.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := p.Execute(); err != nil {
		t.Fatal(err)
	}
	return p
}

func getObject(t *testing.T, p *Program, name string) *Object {
	t.Helper()
	v, err := p.GetVariable(name)
	if err != nil {
		t.Fatal(err)
	}
	e, ok := v.(Entity)
	if !ok {
		t.Fatalf("%q is not an entity: %T", name, v)
	}
	return e.object()
}

// countingObserver records notifications for idempotence checks.
type countingObserver struct {
	node
	count int
	last  Args
}

func newCountingObserver() *countingObserver {
	return &countingObserver{node: newNode()}
}

func (o *countingObserver) Notify(args Args) error {
	o.count++
	o.last = args
	return nil
}

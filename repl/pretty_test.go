package repl

import (
	"io"
	"log/slog"
	"testing"

	"github.com/dpcl-lang/dpcl/ast"
)

func buildProgram(t *testing.T, doc []any) *ast.Program {
	t.Helper()
	program, err := ast.FromJSON("club", doc)
	if err != nil {
		t.Fatal(err)
	}
	program.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := program.Execute(); err != nil {
		t.Fatal(err)
	}
	return program
}

func getEntity(t *testing.T, program *ast.Program, name string) *ast.Object {
	t.Helper()
	node, err := program.GetVariable(name)
	if err != nil {
		t.Fatal(err)
	}
	obj, ok := ast.EntityObject(node)
	if !ok {
		t.Fatalf("%s is not an entity", name)
	}
	return obj
}

func TestPretty(t *testing.T) {
	program := buildProgram(t, []any{
		map[string]any{"atomics": []any{"alice", "member"}},
		map[string]any{
			"object": "committee",
			"content": []any{
				map[string]any{"atomics": []any{"chair"}},
			},
		},
	})

	alice := getEntity(t, program, "alice")
	member := getEntity(t, program, "member")
	if err := alice.AddDescriptor(member); err != nil {
		t.Fatal(err)
	}
	expected := `+ club
  + alice [member]
  + member
  + committee
    + chair
`
	if got := Pretty(program.Root()); got != expected {
		t.Fatalf("got:\n%s", got)
	}
}

func TestPrettyInactive(t *testing.T) {
	program := buildProgram(t, []any{
		map[string]any{"atomics": []any{"alice"}},
	})

	alice := getEntity(t, program, "alice")
	if err := alice.SetActive(false); err != nil {
		t.Fatal(err)
	}

	expected := `+ club
  - alice
`
	if got := Pretty(program.Root()); got != expected {
		t.Fatalf("got:\n%s", got)
	}
}

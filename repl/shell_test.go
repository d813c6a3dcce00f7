package repl

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/dpcl-lang/dpcl/ast"
)

func testShell(t *testing.T, program *ast.Program) (*shell, *bytes.Buffer) {
	t.Helper()
	out := new(bytes.Buffer)
	return &shell{
		program: program,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		out:     out,
	}, out
}

func TestShellLs(t *testing.T) {
	program := buildProgram(t, []any{
		map[string]any{"atomics": []any{"alice"}},
	})
	s, out := testShell(t, program)

	if quit := s.Eval(t.Context(), "ls"); quit {
		t.Fatal("should not quit")
	}
	if out.String() != Pretty(program.Root()) {
		t.Fatalf("got:\n%s", out.String())
	}
}

func TestShellShow(t *testing.T) {
	program := buildProgram(t, []any{
		map[string]any{"atomics": []any{"alice"}},
	})
	s, out := testShell(t, program)

	s.Eval(t.Context(), "show alice")
	if !strings.Contains(out.String(), "+ alice") {
		t.Fatalf("got:\n%s", out.String())
	}

	out.Reset()
	s.Eval(t.Context(), "show nobody")
	if out.Len() == 0 {
		t.Fatal("should report an error")
	}
}

func TestShellFire(t *testing.T) {
	program := buildProgram(t, []any{
		map[string]any{"atomics": []any{"alice"}},
		map[string]any{"object": "member", "content": []any{}},
		map[string]any{
			"position": "power",
			"action":   "#join",
			"consequence": map[string]any{
				"entity":     "holder",
				"gains":      true,
				"descriptor": "member",
			},
		},
	})
	s, out := testShell(t, program)

	s.Eval(t.Context(), "fire #join holder=alice")
	if !strings.Contains(out.String(), "fired #join") {
		t.Fatalf("got:\n%s", out.String())
	}

	alice := getEntity(t, program, "alice")
	member := getEntity(t, program, "member")
	if !alice.HasDescriptor(member) {
		t.Fatal("alice should be a member")
	}

	out.Reset()
	s.Eval(t.Context(), "fire #leave holder=alice")
	if !strings.Contains(out.String(), "not enabled") {
		t.Fatalf("got:\n%s", out.String())
	}

	out.Reset()
	s.Eval(t.Context(), "fire #join holder")
	if !strings.Contains(out.String(), "bad argument") {
		t.Fatalf("got:\n%s", out.String())
	}

	out.Reset()
	s.Eval(t.Context(), "fire join")
	if !strings.Contains(out.String(), "usage:") {
		t.Fatalf("got:\n%s", out.String())
	}
}

func TestShellUnknownCommand(t *testing.T) {
	program := buildProgram(t, nil)
	s, out := testShell(t, program)

	s.Eval(t.Context(), "frobnicate")
	if !strings.Contains(out.String(), "unknown command") {
		t.Fatalf("got:\n%s", out.String())
	}
}

func TestShellExit(t *testing.T) {
	program := buildProgram(t, nil)
	s, _ := testShell(t, program)

	if !s.Eval(t.Context(), "exit") {
		t.Fatal("should quit")
	}
	if s.Eval(t.Context(), "") {
		t.Fatal("blank line should not quit")
	}
}

func TestShellReload(t *testing.T) {
	program := buildProgram(t, nil)
	s, out := testShell(t, program)
	s.filePath = "club.json"

	replacement := buildProgram(t, []any{
		map[string]any{"atomics": []any{"bob"}},
	})
	s.load = func(filePath string) (*ast.Program, error) {
		if filePath != "club.json" {
			t.Fatalf("got %q", filePath)
		}
		return replacement, nil
	}
	s.Eval(t.Context(), "reload")
	if s.program != replacement {
		t.Fatal("program should be replaced")
	}
	if !strings.Contains(out.String(), "reloaded") {
		t.Fatalf("got:\n%s", out.String())
	}
}

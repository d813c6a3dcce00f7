package cmds

import "testing"

func TestExecutor_Func(t *testing.T) {
	e := &Executor{commands: make(map[string]*Command)}

	var got string
	e.Define("-name", Func(func(v string) {
		got = v
	}))

	rest, err := e.Execute([]string{"-name", "foo", "doc.json"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "foo" {
		t.Fatalf("expected foo, got %q", got)
	}
	if len(rest) != 1 || rest[0] != "doc.json" {
		t.Fatalf("expected unrecognized args passed through, got %v", rest)
	}
}

func TestExecutor_MissingArgument(t *testing.T) {
	e := &Executor{commands: make(map[string]*Command)}
	e.Define("-n", Func(func(int) {}))

	if _, err := e.Execute([]string{"-n"}); err == nil {
		t.Fatal("expected error for missing argument")
	}
}

func TestExecutor_OptionalPointerArgument(t *testing.T) {
	e := &Executor{commands: make(map[string]*Command)}

	var got *int
	e.Define("-n", Func(func(v *int) {
		got = v
	}))

	if _, err := e.Execute([]string{"-n"}); err != nil {
		t.Fatal(err)
	}
	if got == nil || *got != 0 {
		t.Fatal("optional argument should default to the zero value")
	}
}

func TestExecutor_IntConversion(t *testing.T) {
	e := &Executor{commands: make(map[string]*Command)}

	var got int
	e.Define("-n", Func(func(v int) {
		got = v
	}))

	if _, err := e.Execute([]string{"-n", "42"}); err != nil {
		t.Fatal(err)
	}
	if got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}

	if _, err := e.Execute([]string{"-n", "nope"}); err == nil {
		t.Fatal("expected conversion error")
	}
}

func TestExecutor_Alias(t *testing.T) {
	e := &Executor{commands: make(map[string]*Command)}

	calls := 0
	e.Define("-v", Func(func() {
		calls++
	}).Alias("-verbose"))

	if _, err := e.Execute([]string{"-v", "-verbose"}); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

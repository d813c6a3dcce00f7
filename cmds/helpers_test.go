package cmds

import "testing"

func TestSwitch(t *testing.T) {
	v := Switch("-helpers-test-switch")
	if *v {
		t.Fatal("switch defaults to false")
	}
	if _, err := Execute([]string{"-helpers-test-switch"}); err != nil {
		t.Fatal(err)
	}
	if !*v {
		t.Fatal("switch should be set")
	}
	if _, err := Execute([]string{"!-helpers-test-switch"}); err != nil {
		t.Fatal(err)
	}
	if *v {
		t.Fatal("negated switch should be cleared")
	}
}

func TestVar(t *testing.T) {
	v := Var[string]("-helpers-test-var")
	if _, err := Execute([]string{"-helpers-test-var", "value"}); err != nil {
		t.Fatal(err)
	}
	if *v != "value" {
		t.Fatalf("expected value, got %q", *v)
	}
}

package ast

import (
	"errors"
	"testing"
)

func TestNamespace_GetRecursive(t *testing.T) {
	root := NewNamespace("root", nil)
	child := NewNamespace("child", root)

	obj := NewObject("foo")
	if err := root.Add("foo", obj, false); err != nil {
		t.Fatal(err)
	}

	v, err := child.Get("foo", true)
	if err != nil {
		t.Fatal(err)
	}
	if v != obj {
		t.Fatalf("expected %v, got %v", obj, v)
	}

	if _, err := child.Get("foo", false); err == nil {
		t.Fatal("expected lookup failure without recursion")
	}
}

func TestNamespace_GetFailureNamesScope(t *testing.T) {
	root := NewNamespace("root", nil)
	child := NewNamespace("child", root)

	_, err := child.Get("missing", true)
	var nameErr *NameError
	if !errors.As(err, &nameErr) {
		t.Fatalf("expected NameError, got %v", err)
	}
	if nameErr.Scope != "root::child" {
		t.Fatalf("expected originating scope root::child, got %q", nameErr.Scope)
	}
}

func TestNamespace_AddDuplicate(t *testing.T) {
	ns := NewNamespace("root", nil)
	if err := ns.Add("foo", NewObject("foo"), false); err != nil {
		t.Fatal(err)
	}

	err := ns.Add("foo", NewObject("other"), false)
	var nameErr *NameError
	if !errors.As(err, &nameErr) {
		t.Fatalf("expected NameError, got %v", err)
	}
	if !nameErr.Duplicate {
		t.Fatal("expected duplicate flag")
	}

	if err := ns.Add("foo", NewObject("other"), true); err != nil {
		t.Fatalf("overwrite should succeed, got %v", err)
	}
}

func TestNamespace_AutoID(t *testing.T) {
	ns := NewNamespace("root", nil)
	if id := ns.AutoID("rule"); id != "_rule0" {
		t.Fatalf("expected _rule0, got %q", id)
	}
	if id := ns.AutoID("rule"); id != "_rule1" {
		t.Fatalf("expected _rule1, got %q", id)
	}
	if id := ns.AutoID("object"); id != "_object0" {
		t.Fatalf("expected counters per prefix, got %q", id)
	}
}

func TestNamespace_Entries(t *testing.T) {
	ns := NewNamespace("root", nil)
	for _, name := range []string{"c", "a", "b"} {
		if err := ns.Add(name, NewObject(name), false); err != nil {
			t.Fatal(err)
		}
	}
	entries := ns.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, want := range []string{"c", "a", "b"} {
		if entries[i].Name != want {
			t.Fatalf("expected insertion order, got %v", entries)
		}
	}
}

package ast

import "testing"

func TestBoolState_ImperativeOverwrite(t *testing.T) {
	var s boolState
	if s.value() {
		t.Fatal("zero state should resolve false")
	}
	s.set(true)
	if !s.value() {
		t.Fatal("expected true after set")
	}
	s.set(false)
	if s.value() {
		t.Fatal("expected false after overwrite")
	}
}

func TestBoolState_CounterWinsOverImperative(t *testing.T) {
	var s boolState
	s.set(false)
	if s.assert(true, true) {
		t.Fatal("unexpected contradiction")
	}
	if !s.value() {
		t.Fatal("positive counter should win over imperative false")
	}

	// Retraction returns resolution to the imperative value.
	if s.assert(false, false) {
		t.Fatal("unexpected contradiction on retraction")
	}
	if s.value() {
		t.Fatal("expected imperative false after counter settles to zero")
	}
}

func TestBoolState_Contradiction(t *testing.T) {
	var s boolState
	if s.assert(true, true) {
		t.Fatal("first derivation can't contradict")
	}
	if !s.assert(false, true) {
		t.Fatal("expected contradiction for opposing positive derivations")
	}
}

func TestBoolState_NoContradictionWithoutPositiveChange(t *testing.T) {
	var s boolState
	if s.assert(true, true) {
		t.Fatal("unexpected contradiction")
	}
	// A retraction opposing the counter is counter-balancing, not a
	// freshly true derivation.
	if s.assert(false, false) {
		t.Fatal("retraction must not trip the contradiction check")
	}
}

func TestBoolState_DeniesExplicitly(t *testing.T) {
	var s boolState
	if s.deniesExplicitly() {
		t.Fatal("untouched facet abstains")
	}
	s.set(false)
	if !s.deniesExplicitly() {
		t.Fatal("explicit false should deny")
	}
	s.assert(true, true)
	if s.deniesExplicitly() {
		t.Fatal("positive counter overrides the imperative denial")
	}
}

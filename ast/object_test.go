package ast

import (
	"errors"
	"testing"
)

func TestObject_ActivityCascadesDownward(t *testing.T) {
	child := NewObject("child")
	parent := NewObject("parent", child)
	p := newTestProgram(t, parent)

	if !child.Active() {
		t.Fatal("child should start active")
	}

	if err := parent.SetActive(false); err != nil {
		t.Fatal(err)
	}
	if child.Active() {
		t.Fatal("child must be inactive while its owner is inactive")
	}

	// The child's own facet is untouched; reactivating the parent
	// restores it.
	if err := parent.SetActive(true); err != nil {
		t.Fatal(err)
	}
	if !child.Active() {
		t.Fatal("child should be active again")
	}
	_ = p
}

func TestObject_DeactivationFiresChildProduction(t *testing.T) {
	child := NewObject("child")
	parent := NewObject("parent", child)
	p := newTestProgram(t, parent)

	obs := newCountingObserver()
	p.Registry().Production(child, false).Observe(obs)

	if err := parent.SetActive(false); err != nil {
		t.Fatal(err)
	}
	if obs.count != 1 {
		t.Fatalf("expected one notification, got %d", obs.count)
	}
}

func TestObject_SelfAndWildcardDescriptors(t *testing.T) {
	e := NewObject("e")
	w := newUniversal()

	if !e.HasDescriptor(e) {
		t.Fatal("an entity is always its own descriptor")
	}
	if !e.HasDescriptor(w) {
		t.Fatal("every entity carries the wildcard")
	}
	if w.HasDescriptor(e) {
		t.Fatal("the wildcard carries nothing but itself")
	}
	if !w.HasDescriptor(w) {
		t.Fatal("the wildcard is its own descriptor")
	}
}

func TestObject_WildcardIsImmutable(t *testing.T) {
	e := NewObject("e")
	w := newUniversal()

	var descErr *DescriptorError
	if err := e.RemoveDescriptor(w); !errors.As(err, &descErr) {
		t.Fatalf("expected DescriptorError, got %v", err)
	}
	if err := e.RemoveDescriptor(e); !errors.As(err, &descErr) {
		t.Fatalf("expected DescriptorError removing self, got %v", err)
	}

	var typeErr *TypeError
	if err := w.SetActive(false); !errors.As(err, &typeErr) {
		t.Fatalf("expected TypeError, got %v", err)
	}
}

func TestObject_TransitiveDescriptors(t *testing.T) {
	a := NewObject("a")
	b := NewObject("b")
	c := NewObject("c")

	if err := b.AddDescriptor(c); err != nil {
		t.Fatal(err)
	}
	if err := a.AddDescriptor(b); err != nil {
		t.Fatal(err)
	}

	if !a.HasDescriptor(c) {
		t.Fatal("descriptors must propagate taxonomically")
	}
	if c.HasDescriptor(a) {
		t.Fatal("subsumption must not run backwards")
	}
}

func TestObject_DescriptorRippleThroughReferents(t *testing.T) {
	a := NewObject("a")
	b := NewObject("b")
	c := NewObject("c")

	// a carries b first; b gaining c must ripple to a.
	if err := a.AddDescriptor(b); err != nil {
		t.Fatal(err)
	}
	if err := b.AddDescriptor(c); err != nil {
		t.Fatal(err)
	}
	if !a.HasDescriptor(c) {
		t.Fatal("gaining a descriptor must ripple outward through referents")
	}
}

func TestObject_RemovalRipplesThroughReferents(t *testing.T) {
	a := NewObject("a")
	b := NewObject("b")
	c := NewObject("c")

	if err := a.AddDescriptor(b); err != nil {
		t.Fatal(err)
	}
	if err := b.AddDescriptor(c); err != nil {
		t.Fatal(err)
	}
	if !a.HasDescriptor(c) {
		t.Fatal("gaining a descriptor must ripple outward through referents")
	}

	if err := b.RemoveDescriptor(c); err != nil {
		t.Fatalf("removal must ripple, got %v", err)
	}
	if a.HasDescriptor(c) {
		t.Fatal("losing the intermediate descriptor must retract the inherited membership")
	}
	if c.HasReferent(a) {
		t.Fatal("referent set must stay symmetric after the ripple")
	}
}

func TestObject_RemoveDescriptor(t *testing.T) {
	a := NewObject("a")
	b := NewObject("b")
	if err := a.AddDescriptor(b); err != nil {
		t.Fatal(err)
	}
	if err := a.RemoveDescriptor(b); err != nil {
		t.Fatal(err)
	}
	if a.HasDescriptor(b) {
		t.Fatal("expected membership removed")
	}
	if b.HasReferent(a) {
		t.Fatal("referent set must stay symmetric")
	}
}

func TestObject_ContradictoryInheritance(t *testing.T) {
	a := NewObject("a")
	d1 := NewObject("d1")
	d2 := NewObject("d2")
	x := NewObject("x")

	if err := d1.AddDescriptor(x); err != nil {
		t.Fatal(err)
	}
	if err := d2.SetDescriptor(x, false); err != nil {
		t.Fatal(err)
	}
	if err := a.AddDescriptor(d2); err != nil {
		t.Fatal(err)
	}

	err := a.AddDescriptor(d1)
	var logicErr *LogicError
	if !errors.As(err, &logicErr) {
		t.Fatalf("expected LogicError for contradictory inheritance, got %v", err)
	}
}

func TestObject_NamingEventIdempotence(t *testing.T) {
	alice := NewObject("alice")
	member := NewObject("member")
	p := newTestProgram(t, alice, member)

	obs := newCountingObserver()
	p.Registry().Naming(alice, member, true).Observe(obs)

	if err := alice.AddDescriptor(member); err != nil {
		t.Fatal(err)
	}
	if obs.count != 1 {
		t.Fatalf("expected one notification, got %d", obs.count)
	}

	// Re-asserting the settled value must not re-notify.
	if err := alice.AddDescriptor(member); err != nil {
		t.Fatal(err)
	}
	if obs.count != 1 {
		t.Fatalf("expected no re-notification, got %d", obs.count)
	}
}

func TestObject_ProductionEventIdempotence(t *testing.T) {
	foo := NewObject("foo")
	p := newTestProgram(t, foo)

	obs := newCountingObserver()
	p.Registry().Production(foo, false).Observe(obs)

	if err := foo.SetActive(false); err != nil {
		t.Fatal(err)
	}
	if err := foo.SetActive(false); err != nil {
		t.Fatal(err)
	}
	if obs.count != 1 {
		t.Fatalf("expected one notification, got %d", obs.count)
	}
}

func TestObject_InitialDescriptors(t *testing.T) {
	person := NewObject("person")
	alice := NewObject("alice")
	alice.SetInitialDescriptors(NewObjectRef("person"))
	p := newTestProgram(t, person, alice)

	if !alice.HasDescriptor(person) {
		t.Fatal("initial descriptors must apply on execution")
	}
	_ = p
}

func TestObject_GetAttributeLocalInheritance(t *testing.T) {
	hand := NewObject("hand")
	person := NewObject("person", hand)
	alice := NewObject("alice")
	alice.SetInitialDescriptors(NewObjectRef("person"))
	newTestProgram(t, person, alice)

	v, err := alice.GetAttribute("hand")
	if err != nil {
		t.Fatal(err)
	}
	local, ok := v.(Entity)
	if !ok {
		t.Fatalf("expected an entity, got %T", v)
	}
	if local.object() == hand {
		t.Fatal("attribute lookup must yield a local copy, not the descriptor's child")
	}
	if local.object().Owner() != alice {
		t.Fatal("local copy must be owned by the inheriting entity")
	}

	// A second lookup returns the same local copy.
	again, err := alice.GetAttribute("hand")
	if err != nil {
		t.Fatal(err)
	}
	if again != v {
		t.Fatal("local copy must be stable across lookups")
	}
}

func TestObject_FullName(t *testing.T) {
	inner := NewObject("inner")
	outer := NewObject("outer", inner)
	newTestProgram(t, outer)

	if got := inner.FullName(); got != "test::outer::inner" {
		t.Fatalf("expected test::outer::inner, got %q", got)
	}
}

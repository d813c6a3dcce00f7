package ast

// boolState is one boolean facet: the imperative value set by explicit,
// non-rule assignments, and the signed counter carrying the net effect of
// all transformational rules currently asserting a value.
//
// Resolution order: counter sign if nonzero, then the imperative value if
// one was ever set explicitly. Naming facets fall through to descriptor
// inheritance when neither applies; activity facets default to the
// imperative zero value.
type boolState struct {
	imperative bool
	explicit   bool
	counter    int
}

func (s *boolState) set(v bool) {
	s.imperative = v
	s.explicit = true
}

// assert adjusts the declarative counter by one in the direction of v.
// It reports a contradiction when positive is set and the adjustment
// opposes the counter's current sign: two simultaneously true antecedents
// may not demand opposite values of the same facet. The positive flag is
// the order-sensitive heuristic pinned by the reference behavior: the
// check runs only for assertions caused by an antecedent that is freshly
// true, not for counter-balancing retractions of settled state.
func (s *boolState) assert(v bool, positive bool) (contradiction bool) {
	delta := 1
	if !v {
		delta = -1
	}
	if positive && delta*s.counter < 0 {
		return true
	}
	s.counter += delta
	return false
}

func (s *boolState) value() bool {
	if s.counter != 0 {
		return s.counter > 0
	}
	return s.imperative
}

// deniesExplicitly reports whether this facet is pinned false by its own
// state, ignoring inheritance. Used for contradictory-inheritance votes.
func (s *boolState) deniesExplicitly() bool {
	if s.counter != 0 {
		return s.counter < 0
	}
	return s.explicit && !s.imperative
}

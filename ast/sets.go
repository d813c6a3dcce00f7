package ast

// objSet is an insertion-ordered set of objects keyed by ID. Iteration
// over a snapshot keeps cascades deterministic and safe against observers
// mutating the set they are being notified from.
type objSet struct {
	index map[ID]*Object
	order []*Object
}

func newObjSet() *objSet {
	return &objSet{index: make(map[ID]*Object)}
}

func (s *objSet) add(o *Object) {
	if _, ok := s.index[o.id]; ok {
		return
	}
	s.index[o.id] = o
	s.order = append(s.order, o)
}

func (s *objSet) remove(o *Object) {
	if _, ok := s.index[o.id]; !ok {
		return
	}
	delete(s.index, o.id)
	for i, e := range s.order {
		if e.id == o.id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *objSet) has(o *Object) bool {
	_, ok := s.index[o.id]
	return ok
}

func (s *objSet) len() int {
	return len(s.order)
}

func (s *objSet) snapshot() []*Object {
	ret := make([]*Object, len(s.order))
	copy(ret, s.order)
	return ret
}

// powerSet is an insertion-ordered set of power frames keyed by ID.
type powerSet struct {
	index map[ID]*PowerFrame
	order []*PowerFrame
}

func newPowerSet() *powerSet {
	return &powerSet{index: make(map[ID]*PowerFrame)}
}

func (s *powerSet) add(p *PowerFrame) {
	if _, ok := s.index[p.ID()]; ok {
		return
	}
	s.index[p.ID()] = p
	s.order = append(s.order, p)
}

func (s *powerSet) remove(p *PowerFrame) {
	if _, ok := s.index[p.ID()]; !ok {
		return
	}
	delete(s.index, p.ID())
	for i, e := range s.order {
		if e.ID() == p.ID() {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *powerSet) snapshot() []*PowerFrame {
	ret := make([]*PowerFrame, len(s.order))
	copy(ret, s.order)
	return ret
}

// obsSet is the observer analogue of objSet.
type obsSet struct {
	index map[ID]Observer
	order []Observer
}

func newObsSet() *obsSet {
	return &obsSet{index: make(map[ID]Observer)}
}

func (s *obsSet) add(obs Observer) {
	if _, ok := s.index[obs.ID()]; ok {
		return
	}
	s.index[obs.ID()] = obs
	s.order = append(s.order, obs)
}

func (s *obsSet) remove(obs Observer) {
	if _, ok := s.index[obs.ID()]; !ok {
		return
	}
	delete(s.index, obs.ID())
	for i, e := range s.order {
		if e.ID() == obs.ID() {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *obsSet) snapshot() []Observer {
	ret := make([]Observer, len(s.order))
	copy(ret, s.order)
	return ret
}

package ecs

// SparseSet maps entity slot ids to components. Values live in dense slices
// so iteration skips empty slots; index[id] holds the dense position plus
// one, with 0 meaning absent.
type SparseSet struct {
	ids    []int
	values []any
	index  []int
}

func (s *SparseSet) pos(id int) (int, bool) {
	if s == nil || id <= 0 || id >= len(s.index) {
		return 0, false
	}
	p := s.index[id] - 1
	return p, p >= 0
}

func (s *SparseSet) Has(id int) bool {
	_, ok := s.pos(id)
	return ok
}

// Get returns the component stored for id, or nil.
func (s *SparseSet) Get(id int) any {
	p, ok := s.pos(id)
	if !ok {
		return nil
	}
	return s.values[p]
}

// Set stores v for id, replacing any previous value in place.
func (s *SparseSet) Set(id int, v any) {
	if s == nil || id <= 0 {
		return
	}
	if p, ok := s.pos(id); ok {
		s.values[p] = v
		return
	}
	if id >= len(s.index) {
		s.index = append(s.index, make([]int, id+1-len(s.index))...)
	}
	s.ids = append(s.ids, id)
	s.values = append(s.values, v)
	s.index[id] = len(s.ids)
}

// Remove deletes id by moving the last dense entry into its place.
func (s *SparseSet) Remove(id int) bool {
	p, ok := s.pos(id)
	if !ok {
		return false
	}
	last := len(s.ids) - 1
	if p != last {
		moved := s.ids[last]
		s.ids[p] = moved
		s.values[p] = s.values[last]
		s.index[moved] = p + 1
	}
	s.values[last] = nil
	s.ids = s.ids[:last]
	s.values = s.values[:last]
	s.index[id] = 0
	return true
}

func (s *SparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// Entities returns the stored slot ids in dense order. The slice is shared
// with the set.
func (s *SparseSet) Entities() []int {
	if s == nil {
		return nil
	}
	return s.ids
}

// Values returns the stored components in the same order as Entities.
func (s *SparseSet) Values() []any {
	if s == nil {
		return nil
	}
	return s.values
}

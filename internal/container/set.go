package container

// Set is an insertion-ordered set of comparable values.
type Set[T comparable] struct {
	index  map[T]struct{}
	values []T
}

// NewSet creates a Set seeded with values. Duplicates are ignored.
func NewSet[T comparable](values ...T) *Set[T] {
	s := &Set[T]{index: make(map[T]struct{}, len(values))}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts v and reports whether it was not already present.
func (s *Set[T]) Add(v T) bool {
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = struct{}{}
	s.values = append(s.values, v)
	return true
}

// Has reports whether v is in the set.
func (s *Set[T]) Has(v T) bool {
	_, ok := s.index[v]
	return ok
}

// Len returns the number of values in the set.
func (s *Set[T]) Len() int {
	return len(s.values)
}

// Values returns a copy of the values in insertion order.
func (s *Set[T]) Values() []T {
	out := make([]T, len(s.values))
	copy(out, s.values)
	return out
}

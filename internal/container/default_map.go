// Package container provides the small generic collections the pond is built on.
package container

// Entry is a key/value pair used to seed a DefaultMap.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// DefaultMap is an insertion-ordered map that materializes a default value
// the first time an absent key is accessed through Get.
//
// Keys may be any comparable type, including structs, so composite keys are
// compared field by field and never need a delimited string encoding.
type DefaultMap[K comparable, V any] struct {
	items    map[K]V
	order    []K
	newValue func() V
}

// NewDefaultMap creates a DefaultMap whose missing values are built by
// newValue. Optional entries pre-seed the map in the given order; a repeated
// key keeps its first position and its last value.
func NewDefaultMap[K comparable, V any](newValue func() V, entries ...Entry[K, V]) *DefaultMap[K, V] {
	m := &DefaultMap[K, V]{
		items:    make(map[K]V, len(entries)),
		newValue: newValue,
	}
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return m
}

// Get returns the value stored at key, creating and storing a default value
// if the key is absent.
func (m *DefaultMap[K, V]) Get(key K) V {
	if v, ok := m.items[key]; ok {
		return v
	}
	v := m.newValue()
	m.Set(key, v)
	return v
}

// Lookup returns the value stored at key without materializing a default.
func (m *DefaultMap[K, V]) Lookup(key K) (V, bool) {
	v, ok := m.items[key]
	return v, ok
}

// Set stores value at key, overwriting any previous value.
func (m *DefaultMap[K, V]) Set(key K, value V) {
	if _, ok := m.items[key]; !ok {
		m.order = append(m.order, key)
	}
	m.items[key] = value
}

// Has reports whether key holds a value.
func (m *DefaultMap[K, V]) Has(key K) bool {
	_, ok := m.items[key]
	return ok
}

// Len returns the number of stored keys.
func (m *DefaultMap[K, V]) Len() int {
	return len(m.items)
}

// Keys returns the stored keys in first-insertion order.
func (m *DefaultMap[K, V]) Keys() []K {
	keys := make([]K, len(m.order))
	copy(keys, m.order)
	return keys
}

package manifest

import "iter"

// OrderedMap is a read-only, insertion-ordered mapping keyed by unique name.
// A nil *OrderedMap behaves as an empty map.
type OrderedMap[V any] struct {
	keys  []string
	items map[string]V
}

func newOrderedMap[V any](capacity int) *OrderedMap[V] {
	return &OrderedMap[V]{
		keys:  make([]string, 0, capacity),
		items: make(map[string]V, capacity),
	}
}

// set inserts key when absent and reports whether it did.
func (m *OrderedMap[V]) set(key string, value V) bool {
	if _, exists := m.items[key]; exists {
		return false
	}
	m.keys = append(m.keys, key)
	m.items[key] = value
	return true
}

// Get returns the entry stored under key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	var zero V
	if m == nil {
		return zero, false
	}
	value, ok := m.items[key]
	return value, ok
}

// Len reports the number of entries.
func (m *OrderedMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	if m == nil || len(m.keys) == 0 {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Values returns the entries in insertion order.
func (m *OrderedMap[V]) Values() []V {
	if m == nil || len(m.keys) == 0 {
		return nil
	}
	out := make([]V, 0, len(m.keys))
	for _, key := range m.keys {
		out = append(out, m.items[key])
	}
	return out
}

// All iterates the entries in insertion order.
func (m *OrderedMap[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if m == nil {
			return
		}
		for _, key := range m.keys {
			if !yield(key, m.items[key]) {
				return
			}
		}
	}
}

// Package orderedmap is a map that remembers insertion order. Element
// attributes are kept in one so that they serialize in document order.
package orderedmap

import (
	"errors"
	"iter"
	"slices"
)

var ErrDuplicateEntry = errors.New("duplicate entry")

type Map[K comparable, V any] struct {
	entries []K
	keys    map[K]V
}

func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		entries: make([]K, 0),
		keys:    make(map[K]V),
	}
}

// Set adds a new entry. It fails if key is already present.
func (m *Map[K, V]) Set(key K, value V) error {
	_, exists := m.keys[key]
	if exists {
		return ErrDuplicateEntry
	}
	m.entries = append(m.entries, key)
	m.keys[key] = value
	return nil
}

// Put adds or replaces an entry. A replaced entry keeps its position.
func (m *Map[K, V]) Put(key K, value V) {
	if _, exists := m.keys[key]; !exists {
		m.entries = append(m.entries, key)
	}
	m.keys[key] = value
}

func (m *Map[K, V]) Get(key K) (V, bool) {
	v, ok := m.keys[key]
	return v, ok
}

func (m *Map[K, V]) Delete(key K) bool {
	if _, exists := m.keys[key]; !exists {
		return false
	}
	delete(m.keys, key)
	if i := slices.Index(m.entries, key); i >= 0 {
		m.entries = slices.Delete(m.entries, i, i+1)
	}
	return true
}

func (m *Map[K, V]) Len() int {
	return len(m.entries)
}

func (m *Map[K, V]) Range() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range m.entries {
			v := m.keys[k]
			if !yield(k, v) {
				break
			}
		}
	}
}

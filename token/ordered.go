/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import "iter"

// OrderedMap is a string-keyed map that remembers the position at which each
// key was first set. Overwriting a key keeps its original position.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
	index  map[string]int
}

// NewOrderedMap creates an empty ordered map.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{
		values: make(map[string]V),
		index:  make(map[string]int),
	}
}

// Set stores value under key.
func (m *OrderedMap[V]) Set(key string, value V) {
	if _, ok := m.index[key]; !ok {
		m.index[key] = len(m.keys)
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *OrderedMap[V]) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Index returns the insertion position of key, or -1.
func (m *OrderedMap[V]) Index(key string) int {
	if m == nil {
		return -1
	}
	if i, ok := m.index[key]; ok {
		return i
	}
	return -1
}

// Len returns the number of keys.
func (m *OrderedMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// All iterates over entries in insertion order.
func (m *OrderedMap[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Clone returns a shallow copy.
func (m *OrderedMap[V]) Clone() *OrderedMap[V] {
	c := NewOrderedMap[V]()
	for k, v := range m.All() {
		c.Set(k, v)
	}
	return c
}

// Table maps token keys to CSS values for one category.
type Table = OrderedMap[string]

// NewTable creates an empty token table.
func NewTable() *Table {
	return NewOrderedMap[string]()
}

// TableOf builds a table from alternating key/value pairs.
// It panics on an odd number of arguments; intended for tests and defaults.
func TableOf(pairs ...string) *Table {
	if len(pairs)%2 != 0 {
		panic("token.TableOf: odd number of arguments")
	}
	t := NewTable()
	for i := 0; i < len(pairs); i += 2 {
		t.Set(pairs[i], pairs[i+1])
	}
	return t
}

// MergeTables layers tables base-to-extension. Later tables win on key
// collisions; keys keep the position of their first occurrence.
func MergeTables(tables ...*Table) *Table {
	merged := NewTable()
	for _, t := range tables {
		for k, v := range t.All() {
			merged.Set(k, v)
		}
	}
	return merged
}

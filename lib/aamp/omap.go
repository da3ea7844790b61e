// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

package aamp

import "fmt"

// OrderedMap is an insertion-ordered map from name hash to V. It
// supports positional access (the archive format addresses records by
// position) and order-preserving removal (deleting a record must shift
// later records down, not swap them). The zero value is empty and
// ready to use.
//
// Not safe for concurrent mutation; the consistency engine assumes a
// single mutator per container.
type OrderedMap[V any] struct {
	keys []uint32
	vals []V
	pos  map[uint32]int
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int {
	return len(m.keys)
}

// Get returns the value stored under key.
func (m *OrderedMap[V]) Get(key uint32) (V, bool) {
	i, ok := m.pos[key]
	if !ok {
		var zero V
		return zero, false
	}
	return m.vals[i], true
}

// Has reports whether key is present.
func (m *OrderedMap[V]) Has(key uint32) bool {
	_, ok := m.pos[key]
	return ok
}

// Index returns the position of key, or -1 if absent.
func (m *OrderedMap[V]) Index(key uint32) int {
	i, ok := m.pos[key]
	if !ok {
		return -1
	}
	return i
}

// Put stores value under key: replaces in place if the key exists
// (keeping its position), appends otherwise.
func (m *OrderedMap[V]) Put(key uint32, value V) {
	if i, ok := m.pos[key]; ok {
		m.vals[i] = value
		return
	}
	if m.pos == nil {
		m.pos = make(map[uint32]int)
	}
	m.pos[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, value)
}

// At returns the key and value at position i. Panics if i is out of
// range, matching slice indexing semantics.
func (m *OrderedMap[V]) At(i int) (uint32, V) {
	return m.keys[i], m.vals[i]
}

// KeyAt returns the key at position i.
func (m *OrderedMap[V]) KeyAt(i int) uint32 {
	return m.keys[i]
}

// ValueAt returns the value at position i.
func (m *OrderedMap[V]) ValueAt(i int) V {
	return m.vals[i]
}

// RemoveAt deletes the entry at position i, shifting every later
// entry down by one. Panics if i is out of range.
func (m *OrderedMap[V]) RemoveAt(i int) {
	delete(m.pos, m.keys[i])
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	m.vals = append(m.vals[:i], m.vals[i+1:]...)
	for j := i; j < len(m.keys); j++ {
		m.pos[m.keys[j]] = j
	}
}

// Rekey replaces every key in place, keeping values and their order.
// keyAt returns the new key for position i. Used to renumber the
// synthetic slot names of a segment after insertion or deletion; a
// wholesale rebuild sidesteps transient collisions between old and
// new keys. Panics if keyAt produces a duplicate.
func (m *OrderedMap[V]) Rekey(keyAt func(i int) uint32) {
	m.pos = make(map[uint32]int, len(m.keys))
	for i := range m.keys {
		key := keyAt(i)
		if j, dup := m.pos[key]; dup {
			panic(fmt.Sprintf("aamp: Rekey key 0x%08x assigned to both %d and %d", key, j, i))
		}
		m.keys[i] = key
		m.pos[key] = i
	}
}

// Keys returns the keys in order. The slice is shared with the map;
// callers must not modify it.
func (m *OrderedMap[V]) Keys() []uint32 {
	return m.keys
}

package pns

import "maps"

// Table is a typed side-table associating values with nodes by identity.
// It replaces the open-ended per-node parameter bag found in many PNS
// codebases: each concern (unit costs, production caps, LP rates, ...)
// keeps its own strongly-typed table instead of stuffing values into the
// nodes themselves.
//
// Read operations on a nil *Table behave as on an empty table; mutating a
// nil *Table panics. The zero value is empty and usable.
type Table[V any] struct {
	values map[int64]V
}

// NewTable creates an empty table.
func NewTable[V any]() *Table[V] {
	return &Table[V]{values: make(map[int64]V)}
}

// Set associates v with n, replacing any previous value.
func (t *Table[V]) Set(n Node, v V) {
	if t.values == nil {
		t.values = make(map[int64]V)
	}
	t.values[n.ID()] = v
}

// Get returns the value associated with n.
func (t *Table[V]) Get(n Node) (V, bool) {
	if t == nil {
		var zero V
		return zero, false
	}
	v, ok := t.values[n.ID()]
	return v, ok
}

// GetOr returns the value associated with n, or fallback if none is set.
func (t *Table[V]) GetOr(n Node, fallback V) V {
	if v, ok := t.Get(n); ok {
		return v
	}
	return fallback
}

// Delete removes the value associated with n.
func (t *Table[V]) Delete(n Node) {
	if t == nil {
		return
	}
	delete(t.values, n.ID())
}

// ForEach calls fn for every entry until fn returns false. Entries are
// keyed by node identity; iteration order is unspecified.
func (t *Table[V]) ForEach(fn func(id int64, v V) bool) {
	if t == nil {
		return
	}
	for id, v := range t.values {
		if !fn(id, v) {
			return
		}
	}
}

// Len returns the number of entries.
func (t *Table[V]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.values)
}

// Clone returns an independent copy of t.
func (t *Table[V]) Clone() *Table[V] {
	if t == nil {
		return NewTable[V]()
	}
	return &Table[V]{values: maps.Clone(t.values)}
}

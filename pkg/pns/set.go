package pns

import (
	"cmp"
	"slices"
	"strings"
)

// Set is a collection of nodes keyed by identity. Membership, equality, and
// lookups go through [Node.ID] only, so a set never holds two distinct
// entries claiming the same identity.
//
// The value-returning operations [Set.Union], [Set.Except], and
// [Set.Intersect] build new sets and leave their operands untouched; the
// *With variants mutate the receiver in place. Algorithm boundaries exchange
// copies to avoid aliasing between search states, while hot loops mutate in
// place.
//
// Read operations on a nil *Set behave as on an empty set; mutating a nil
// *Set panics. A zero-valued Set is empty and usable. Sets are not safe for
// concurrent mutation without external synchronization.
type Set[N Node] struct {
	items map[int64]N
}

// NewSet creates a set holding the given nodes.
func NewSet[N Node](items ...N) *Set[N] {
	s := &Set[N]{items: make(map[int64]N, len(items))}
	for _, n := range items {
		s.items[n.ID()] = n
	}
	return s
}

// Add inserts n and reports whether the set changed.
func (s *Set[N]) Add(n N) bool {
	if s.items == nil {
		s.items = make(map[int64]N)
	}
	if _, ok := s.items[n.ID()]; ok {
		return false
	}
	s.items[n.ID()] = n
	return true
}

// Remove deletes n and reports whether the set changed.
func (s *Set[N]) Remove(n N) bool {
	if s == nil || s.items == nil {
		return false
	}
	if _, ok := s.items[n.ID()]; !ok {
		return false
	}
	delete(s.items, n.ID())
	return true
}

// Contains reports whether n is a member.
func (s *Set[N]) Contains(n N) bool {
	if s == nil {
		return false
	}
	_, ok := s.items[n.ID()]
	return ok
}

// ByID returns the member with the given identity.
func (s *Set[N]) ByID(id int64) (N, bool) {
	if s == nil {
		var zero N
		return zero, false
	}
	n, ok := s.items[id]
	return n, ok
}

// ByName returns the member with the given name. When several members share
// the name, the one with the lowest identity wins.
func (s *Set[N]) ByName(name string) (N, bool) {
	var (
		best  N
		found bool
	)
	if s == nil {
		return best, false
	}
	for _, n := range s.items {
		if n.Name() != name {
			continue
		}
		if !found || n.ID() < best.ID() {
			best, found = n, true
		}
	}
	return best, found
}

// Len returns the number of members.
func (s *Set[N]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// IsEmpty reports whether the set has no members.
func (s *Set[N]) IsEmpty() bool { return s.Len() == 0 }

// Union returns a new set holding every member of s and o.
func (s *Set[N]) Union(o *Set[N]) *Set[N] {
	out := s.Clone()
	out.UnionWith(o)
	return out
}

// Except returns a new set holding the members of s that are not in o.
func (s *Set[N]) Except(o *Set[N]) *Set[N] {
	out := s.Clone()
	out.ExceptWith(o)
	return out
}

// Intersect returns a new set holding the members present in both s and o.
func (s *Set[N]) Intersect(o *Set[N]) *Set[N] {
	out := s.Clone()
	out.IntersectWith(o)
	return out
}

// UnionWith adds every member of o to s.
func (s *Set[N]) UnionWith(o *Set[N]) {
	if o == nil {
		return
	}
	if s.items == nil {
		s.items = make(map[int64]N, len(o.items))
	}
	for id, n := range o.items {
		s.items[id] = n
	}
}

// ExceptWith removes every member of o from s.
func (s *Set[N]) ExceptWith(o *Set[N]) {
	if o == nil || s.items == nil {
		return
	}
	for id := range o.items {
		delete(s.items, id)
	}
}

// IntersectWith removes every member of s that is not in o.
func (s *Set[N]) IntersectWith(o *Set[N]) {
	if s.items == nil {
		return
	}
	for id := range s.items {
		if o == nil || !containsID(o, id) {
			delete(s.items, id)
		}
	}
}

func containsID[N Node](s *Set[N], id int64) bool {
	_, ok := s.items[id]
	return ok
}

// SubsetOf reports whether every member of s is also in o.
func (s *Set[N]) SubsetOf(o *Set[N]) bool {
	if s == nil {
		return true
	}
	if s.Len() > o.Len() {
		return false
	}
	for id := range s.items {
		if !containsID(o, id) {
			return false
		}
	}
	return true
}

// Intersects reports whether s and o share at least one member.
func (s *Set[N]) Intersects(o *Set[N]) bool {
	if s == nil || o == nil {
		return false
	}
	small, large := s, o
	if large.Len() < small.Len() {
		small, large = large, small
	}
	for id := range small.items {
		if containsID(large, id) {
			return true
		}
	}
	return false
}

// Equal reports whether s and o hold exactly the same members.
func (s *Set[N]) Equal(o *Set[N]) bool {
	return s.Len() == o.Len() && s.SubsetOf(o)
}

// Clone returns an independent copy of s.
func (s *Set[N]) Clone() *Set[N] {
	out := &Set[N]{items: make(map[int64]N, s.Len())}
	if s != nil {
		for id, n := range s.items {
			out.items[id] = n
		}
	}
	return out
}

// Items returns the members ordered by ascending identity. Listing order is
// therefore deterministic for a given set regardless of insertion history.
func (s *Set[N]) Items() []N {
	if s == nil {
		return nil
	}
	out := make([]N, 0, len(s.items))
	for _, n := range s.items {
		out = append(out, n)
	}
	slices.SortFunc(out, func(a, b N) int { return cmp.Compare(a.ID(), b.ID()) })
	return out
}

// Names returns the member names ordered by ascending identity.
func (s *Set[N]) Names() []string {
	items := s.Items()
	names := make([]string, len(items))
	for i, n := range items {
		names[i] = n.Name()
	}
	return names
}

// String implements fmt.Stringer. Members appear in identity order.
func (s *Set[N]) String() string {
	return "{" + strings.Join(s.Names(), ", ") + "}"
}

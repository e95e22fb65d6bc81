// Package subset enumerates size-bounded subsets of a slice.
//
// The SSG recursion and the material-driven branching strategy both walk
// the subsets of a candidate producer list, capped by the remaining
// parallel-production slack. The enumeration order is deterministic:
// elements are considered left to right, and for each element the
// include branch is explored before the exclude branch.
package subset

// ForEach invokes fn for every subset of items holding between min and max
// elements. The slice passed to fn is reused between invocations; callers
// must copy it if they retain it. Enumeration stops early when fn returns
// false.
//
// ForEach returns the number of subsets visited, including the one that
// stopped the enumeration. A max below min (after clipping max to
// len(items)) visits nothing.
func ForEach[T any](items []T, min, max int, fn func([]T) bool) int {
	if max > len(items) {
		max = len(items)
	}
	if min < 0 {
		min = 0
	}
	if min > max {
		return 0
	}
	e := &enumerator[T]{items: items, min: min, max: max, fn: fn}
	e.walk(0, make([]T, 0, max))
	return e.count
}

// All collects every subset of items holding between min and max elements.
func All[T any](items []T, min, max int) [][]T {
	var out [][]T
	ForEach(items, min, max, func(s []T) bool {
		out = append(out, append([]T(nil), s...))
		return true
	})
	return out
}

type enumerator[T any] struct {
	items    []T
	min, max int
	fn       func([]T) bool
	count    int
	stopped  bool
}

func (e *enumerator[T]) walk(idx int, picked []T) {
	if e.stopped {
		return
	}
	if idx == len(e.items) {
		if len(picked) >= e.min {
			e.count++
			if !e.fn(picked) {
				e.stopped = true
			}
		}
		return
	}
	if len(picked)+len(e.items)-idx < e.min {
		return
	}
	if len(picked) < e.max {
		e.walk(idx+1, append(picked, e.items[idx]))
	}
	e.walk(idx+1, picked)
}

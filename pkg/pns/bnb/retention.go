package bnb

import (
	"slices"
	"sync"
)

// retention keeps the best solutions found so far, ordered ascending by
// the compare function. It is one of the two locks in the engine; the
// lock is never held while branching or bounding.
type retention[S Subproblem, N any] struct {
	mu      sync.Mutex
	compare CompareFunc[N]
	max     int // Unbounded for no cap
	best    []Solution[S, N]
}

func newRetention[S Subproblem, N any](compare CompareFunc[N], max int) *retention[S, N] {
	return &retention[S, N]{compare: compare, max: max}
}

// add inserts a solution at its sorted position, after any equal-valued
// solutions already retained, and evicts the worst entries beyond the
// cap. Earlier finds therefore win ties, which keeps single-threaded
// runs deterministic.
func (r *retention[S, N]) add(sol Solution[S, N]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, _ := slices.BinarySearchFunc(r.best, sol, func(have, new Solution[S, N]) int {
		if c := r.compare(have.Network, new.Network); c != 0 {
			return c
		}
		return -1 // ties sort before the newcomer
	})
	r.best = slices.Insert(r.best, i, sol)

	if r.max != Unbounded && len(r.best) > r.max {
		r.best = slices.Delete(r.best, r.max, len(r.best))
	}
}

// shouldPrune reports whether a subproblem whose bound is the given
// network cannot improve on the retained set: retention is full and the
// bound is no better than the current worst solution.
func (r *retention[S, N]) shouldPrune(bound N) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.max == Unbounded || len(r.best) < r.max {
		return false
	}
	return r.compare(bound, r.best[len(r.best)-1].Network) >= 0
}

// snapshot returns a copy of the retained solutions, best first.
func (r *retention[S, N]) snapshot() []Solution[S, N] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.best)
}

func (r *retention[S, N]) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.best)
}

package bnb

import "github.com/pgraphlab/pgraph/pkg/pns"

// Subproblem is one node of the branch-and-bound search tree. Concrete
// variants carry their own decision state; the engine only needs the two
// predicates that classify a node.
type Subproblem interface {
	// IsLeaf reports whether no decisions remain to be made.
	IsLeaf() bool

	// IsErrorFree reports whether the decisions taken so far are mutually
	// consistent: no unit is both included and excluded, and every
	// parallel-production cap still holds for the included units.
	IsErrorFree() bool
}

// DecisionState is the capability contract shared by subproblem variants
// that record their decisions as included and excluded unit sets. It is
// what lets branching extensions tighten [ABB] and [Binary] subproblems
// uniformly without knowing their concrete layout.
//
// Include and Exclude may drive the state into a contradiction; callers
// detect that through [Subproblem.IsErrorFree] rather than through error
// returns, because contradictions are ordinary prunes.
type DecisionState interface {
	Subproblem

	// Problem returns the problem being searched.
	Problem() *pns.Problem

	// Included returns the units decided into the network so far.
	Included() *pns.Set[*pns.Unit]

	// Excluded returns the units barred from the network so far.
	Excluded() *pns.Set[*pns.Unit]

	// Include adds units to the included set.
	Include(units *pns.Set[*pns.Unit])

	// Exclude adds units to the excluded set.
	Exclude(units *pns.Set[*pns.Unit])
}

// BoundFunc computes the network for a subproblem, the value the search
// orders and retains solutions by. For a leaf it must be the exact
// objective; for an intermediate it must be a bound no descendant leaf can
// beat. Reporting ok=false marks the subproblem infeasible and prunes the
// whole branch. Both outcomes are ordinary and frequent, never errors.
//
// A bounding function that mutates its subproblem (for example to cache
// results for its children) is only safe with a single worker.
type BoundFunc[S Subproblem, N any] func(sub S) (network N, ok bool)

// BranchFunc expands a subproblem into children. Every child must be a
// strict tightening of its parent (more decided, never less); otherwise
// the search is not guaranteed to terminate.
type BranchFunc[S Subproblem] func(sub S) []S

// RootFunc builds the root subproblem for a search restricted to the
// given unit universe, normally the problem's maximal structure.
type RootFunc[S Subproblem] func(p *pns.Problem, universe *pns.Set[*pns.Unit]) S

// CompareFunc is a total order over networks, negative when a sorts
// before b. It drives both best-first frontier ordering and solution
// retention; smaller is better.
type CompareFunc[N any] func(a, b N) int

// Extension tightens a freshly branched subproblem in place and reports
// whether it is still feasible. Extensions run before the engine bounds a
// child; returning false drops the child silently.
type Extension[S Subproblem] func(sub S) bool

// Solution pairs a retained leaf subproblem with the network its bounding
// produced.
type Solution[S Subproblem, N any] struct {
	State   S
	Network N
}

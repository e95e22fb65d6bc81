package bnb

import "github.com/pgraphlab/pgraph/pkg/pns"

// Binary is the elementary subproblem: each branch decides the fate of a
// single unit, in or out. Unlike [ABB] it carries no demand agenda, so a
// leaf merely has every unit decided; whether the included units form a
// solution structure is for the bounding function to verify.
type Binary struct {
	problem  *pns.Problem
	included *pns.Set[*pns.Unit]
	excluded *pns.Set[*pns.Unit]
}

// BinaryRoot builds the root subproblem for a search over the given
// universe: nothing decided, every unit outside the universe locked out.
// It is a [RootFunc].
func BinaryRoot(p *pns.Problem, universe *pns.Set[*pns.Unit]) *Binary {
	return &Binary{
		problem:  p,
		included: pns.NewSet[*pns.Unit](),
		excluded: p.Units().Except(universe),
	}
}

// Problem returns the problem being searched.
func (s *Binary) Problem() *pns.Problem { return s.problem }

// Included returns the units decided into the network. The set is live;
// callers other than extensions must not mutate it.
func (s *Binary) Included() *pns.Set[*pns.Unit] { return s.included }

// Excluded returns the units locked out of the network. The set is live;
// callers other than extensions must not mutate it.
func (s *Binary) Excluded() *pns.Set[*pns.Unit] { return s.excluded }

// Include adds units to the network.
func (s *Binary) Include(units *pns.Set[*pns.Unit]) {
	s.included.UnionWith(units)
}

// Exclude locks units out of the network.
func (s *Binary) Exclude(units *pns.Set[*pns.Unit]) {
	s.excluded.UnionWith(units)
}

// Undecided returns the units not yet decided either way.
func (s *Binary) Undecided() *pns.Set[*pns.Unit] {
	und := s.problem.Units().Except(s.included)
	und.ExceptWith(s.excluded)
	return und
}

// IsLeaf reports whether every unit has been decided.
func (s *Binary) IsLeaf() bool { return s.Undecided().IsEmpty() }

// IsErrorFree reports whether the decisions are consistent: no unit both
// included and excluded, and the included units within every
// parallel-production cap.
func (s *Binary) IsErrorFree() bool {
	return !s.included.Intersects(s.excluded) && s.problem.WithinCaps(s.included)
}

// Branch decides the fate of the lowest-identity undecided unit, yielding
// the include child first. Including a unit locks out its exclusion
// partners. It is a [BranchFunc].
func (s *Binary) Branch() []*Binary {
	und := s.Undecided()
	if und.IsEmpty() {
		return nil
	}
	u := und.Items()[0]

	include := &Binary{
		problem:  s.problem,
		included: s.included.Clone(),
		excluded: s.excluded.Clone(),
	}
	include.included.Add(u)
	include.excluded.UnionWith(s.problem.ExclusiveWith(u))

	exclude := &Binary{
		problem:  s.problem,
		included: s.included.Clone(),
		excluded: s.excluded.Clone(),
	}
	exclude.excluded.Add(u)

	return []*Binary{include, exclude}
}

// NewBinary builds a solver over [Binary] subproblems with the default
// branching extensions. The bounding function must reject leaves whose
// included units are not a solution structure, for example by wrapping
// it in a feasibility check.
func NewBinary[N any](p *pns.Problem, bound BoundFunc[*Binary, N], compare CompareFunc[N], opts Options) (*Solver[*Binary, N], error) {
	return New(Config[*Binary, N]{
		Problem:    p,
		Root:       BinaryRoot,
		Branch:     (*Binary).Branch,
		Bound:      bound,
		Compare:    compare,
		Extensions: DefaultExtensions[*Binary](),
		Options:    opts,
	})
}

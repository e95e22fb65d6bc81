package bnb

import (
	"github.com/pgraphlab/pgraph/pkg/pns"
	"github.com/pgraphlab/pgraph/pkg/pns/subset"
)

// ABB is the accelerated subproblem: it tracks the pending demand agenda
// alongside the unit decisions, so branching works one material at a
// time the way the structure enumeration does. Every leaf is a solution
// structure by construction, which keeps verification out of the
// bounding function.
type ABB struct {
	problem   *pns.Problem
	toProduce *pns.Set[*pns.Material]
	produced  *pns.Set[*pns.Material]
	included  *pns.Set[*pns.Unit]
	excluded  *pns.Set[*pns.Unit]
}

// ABBRoot builds the root subproblem for a search over the given
// universe: all products pending, nothing decided, and every unit
// outside the universe locked out. It is a [RootFunc].
func ABBRoot(p *pns.Problem, universe *pns.Set[*pns.Unit]) *ABB {
	return &ABB{
		problem:   p,
		toProduce: p.Products().Clone(),
		produced:  pns.NewSet[*pns.Material](),
		included:  pns.NewSet[*pns.Unit](),
		excluded:  p.Units().Except(universe),
	}
}

// Problem returns the problem being searched.
func (s *ABB) Problem() *pns.Problem { return s.problem }

// Included returns the units decided into the network. The set is live;
// callers other than extensions must not mutate it.
func (s *ABB) Included() *pns.Set[*pns.Unit] { return s.included }

// Excluded returns the units locked out of the network. The set is live;
// callers other than extensions must not mutate it.
func (s *ABB) Excluded() *pns.Set[*pns.Unit] { return s.excluded }

// ToProduce returns the materials whose producers are still undecided.
func (s *ABB) ToProduce() *pns.Set[*pns.Material] { return s.toProduce }

// Include adds units to the network and puts their unsatisfied inputs on
// the demand agenda.
func (s *ABB) Include(units *pns.Set[*pns.Unit]) {
	for _, u := range units.Items() {
		if !s.included.Add(u) {
			continue
		}
		for _, in := range u.Inputs().Items() {
			if !s.problem.RawMaterials().Contains(in) && !s.produced.Contains(in) {
				s.toProduce.Add(in)
			}
		}
	}
}

// Exclude locks units out of the network.
func (s *ABB) Exclude(units *pns.Set[*pns.Unit]) {
	s.excluded.UnionWith(units)
}

// IsLeaf reports whether the demand agenda is empty. An error-free ABB
// leaf's included units always form a solution structure.
func (s *ABB) IsLeaf() bool { return s.toProduce.IsEmpty() }

// IsErrorFree reports whether the decisions are consistent: no unit both
// included and excluded, and the included units within every
// parallel-production cap.
func (s *ABB) IsErrorFree() bool {
	return !s.included.Intersects(s.excluded) && s.problem.WithinCaps(s.included)
}

// Branch decides the producer set of the next pending material, yielding
// one child per viable choice. Choices are enumerated include-first, the
// same order the structure enumeration uses, so single-threaded runs are
// deterministic. It is a [BranchFunc].
func (s *ABB) Branch() []*ABB {
	if s.toProduce.IsEmpty() {
		return nil
	}

	m := s.toProduce.Items()[0]
	canProduce := s.problem.Producers(m).Except(s.excluded)
	already := canProduce.Intersect(s.included)
	candidates := canProduce.Except(s.included)

	limit := s.problem.MaxParallel(m)
	slack := candidates.Len()
	if limit != pns.Unlimited {
		if already.Len() > limit {
			return nil
		}
		slack = limit - already.Len()
	}

	var children []*ABB
	subset.ForEach(candidates.Items(), 0, slack, func(chosen []*pns.Unit) bool {
		// A material left without any producer is infeasible; the empty
		// choice only stands when a producer is already included.
		if len(chosen) == 0 && already.IsEmpty() {
			return true
		}
		if child := s.decide(m, chosen, already, candidates); child != nil {
			children = append(children, child)
		}
		return true
	})
	return children
}

// decide applies one producer-set choice for material m: the chosen
// candidates join the already-included producers, every rejected
// candidate and every exclusion partner of the choice is locked out, and
// the chosen units' unsatisfied inputs join the agenda. A choice that
// collides with an exclusion yields no child.
func (s *ABB) decide(m *pns.Material, chosen []*pns.Unit, already, candidates *pns.Set[*pns.Unit]) *ABB {
	units := pns.NewSet(chosen...)
	units.UnionWith(already)

	partners := pns.NewSet[*pns.Unit]()
	for _, u := range units.Items() {
		partners.UnionWith(s.problem.ExclusiveWith(u))
	}
	if partners.Intersects(units) || partners.Intersects(s.included) {
		return nil
	}

	child := &ABB{
		problem:   s.problem,
		toProduce: s.toProduce.Clone(),
		produced:  s.produced.Clone(),
		included:  s.included.Union(units),
		excluded:  s.excluded.Union(partners),
	}
	child.excluded.UnionWith(candidates.Except(units))
	child.produced.Add(m)
	child.toProduce.Remove(m)
	for _, u := range units.Items() {
		for _, in := range u.Inputs().Items() {
			if !s.problem.RawMaterials().Contains(in) && !child.produced.Contains(in) {
				child.toProduce.Add(in)
			}
		}
	}
	return child
}

// NewABB builds a solver over [ABB] subproblems with the default
// branching extensions. Bound computes the network and its value for a
// subproblem and compare orders those values, smaller first.
func NewABB[N any](p *pns.Problem, bound BoundFunc[*ABB, N], compare CompareFunc[N], opts Options) (*Solver[*ABB, N], error) {
	return New(Config[*ABB, N]{
		Problem:    p,
		Root:       ABBRoot,
		Branch:     (*ABB).Branch,
		Bound:      bound,
		Compare:    compare,
		Extensions: DefaultABBExtensions(),
		Options:    opts,
	})
}

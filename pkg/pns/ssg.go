package pns

import "github.com/pgraphlab/pgraph/pkg/pns/subset"

// SolutionStructures enumerates every structurally feasible solution
// structure of p: each is the operating-unit set of a sub-network that
// produces the declared products from raw materials with no missing
// inputs, honoring mutual exclusions and parallel-production caps. The
// enumeration is purely combinatorial; objective values play no part.
//
// The maximal structure prefilters the search; when it is empty the result
// is empty. The returned sets are fresh copies owned by the caller.
func SolutionStructures(p *Problem) ([]*Set[*Unit], error) {
	return EnumerateStructures(p, 0)
}

// EnumerateStructures is [SolutionStructures] with an upper bound on the
// number of structures returned. A limit of zero or below enumerates all.
func EnumerateStructures(p *Problem, limit int) ([]*Set[*Unit], error) {
	var out []*Set[*Unit]
	_, err := EnumerateStructuresFunc(p, func(s *Set[*Unit]) bool {
		out = append(out, s)
		return limit <= 0 || len(out) < limit
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// EnumerateStructuresFunc streams solution structures to fn as they are
// found, avoiding the memory cost of materializing the full list. The set
// passed to fn is a fresh copy the callback owns. Enumeration stops early
// when fn returns false.
//
// It returns the number of structures visited, including the one that
// stopped the enumeration.
func EnumerateStructuresFunc(p *Problem, fn func(*Set[*Unit]) bool) (int, error) {
	universe, err := MaximalStructure(p, nil)
	if err != nil {
		return 0, err
	}
	if universe.IsEmpty() {
		return 0, nil
	}
	e := &ssgEnumerator{p: p, fn: fn}
	e.produce(
		p.products.Clone(),
		NewSet[*Material](),
		NewSet[*Unit](),
		p.units.Except(universe),
	)
	return e.count, nil
}

// ssgEnumerator carries the enumeration callback and stop flag through the
// recursion; all decision state travels in the arguments.
type ssgEnumerator struct {
	p       *Problem
	fn      func(*Set[*Unit]) bool
	count   int
	stopped bool
}

// produce decides the producer set of one pending material and recurses.
// Materials are picked in ascending identity order; any deterministic
// choice yields the same structure set.
func (e *ssgEnumerator) produce(toProduce, produced *Set[*Material], included, excluded *Set[*Unit]) {
	if e.stopped || included.Intersects(excluded) {
		return
	}
	if toProduce.IsEmpty() {
		e.count++
		if !e.fn(included.Clone()) {
			e.stopped = true
		}
		return
	}

	m := toProduce.Items()[0]
	canProduce := e.p.producers[m.ID()].Except(excluded)
	already := canProduce.Intersect(included)
	candidates := canProduce.Except(included)

	cap := e.p.MaxParallel(m)
	slack := candidates.Len()
	if cap != Unlimited {
		if already.Len() > cap {
			return
		}
		slack = cap - already.Len()
	}

	subset.ForEach(candidates.Items(), 0, slack, func(chosen []*Unit) bool {
		// A material left without any producer is infeasible; the empty
		// choice only stands when a producer is already included.
		if len(chosen) == 0 && already.IsEmpty() {
			return true
		}
		e.decide(m, chosen, already, candidates, toProduce, produced, included, excluded)
		return !e.stopped
	})
}

// decide applies one producer-set choice for material m: the chosen
// candidates join the already-included producers, every rejected candidate
// and every exclusion partner of the choice is locked out, and the chosen
// units' unsatisfied inputs join the agenda.
func (e *ssgEnumerator) decide(
	m *Material,
	chosen []*Unit,
	already, candidates *Set[*Unit],
	toProduce, produced *Set[*Material],
	included, excluded *Set[*Unit],
) {
	units := NewSet(chosen...)
	units.UnionWith(already)

	partners := NewSet[*Unit]()
	for _, u := range units.Items() {
		partners.UnionWith(e.p.exclusive[u.ID()])
	}
	if partners.Intersects(units) || partners.Intersects(included) {
		return
	}

	nextIncluded := included.Union(units)
	nextExcluded := excluded.Union(partners)
	nextExcluded.UnionWith(candidates.Except(units))

	nextProduced := produced.Clone()
	nextProduced.Add(m)

	nextToProduce := toProduce.Clone()
	nextToProduce.Remove(m)
	for _, u := range units.Items() {
		for _, in := range u.Inputs().Items() {
			if !e.p.raw.Contains(in) && !nextProduced.Contains(in) {
				nextToProduce.Add(in)
			}
		}
	}

	e.produce(nextToProduce, nextProduced, nextIncluded, nextExcluded)
}

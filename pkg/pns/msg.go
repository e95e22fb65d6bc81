package pns

// MaximalStructure computes the maximal structure of p: the largest set of
// operating units that could appear in any feasible path from raw materials
// to the declared products. Every structurally feasible solution is a
// subset of it, which makes it the pruning prefilter for enumeration and
// search.
//
// A non-nil base restricts the computation to base's units (clipped to the
// problem's own); nil means all units. The algorithm ignores mutual
// exclusions and parallel-production caps, since those bind individual
// solutions, not the maximal structure.
//
// "No solution" is reported as an empty set with a nil error, never as an
// error value. Callers must check for emptiness before using the result as
// a universe for further algorithms.
func MaximalStructure(p *Problem, base *Set[*Unit]) (*Set[*Unit], error) {
	if p == nil {
		return nil, ErrNilProblem
	}
	if !p.finalized {
		return nil, ErrNotFinalized
	}

	universe := p.units.Clone()
	if base != nil {
		universe.IntersectWith(base)
	}

	// Reduction: drop units that produce raw materials outright, then
	// repeatedly drop units consuming materials nothing left can produce.
	current := NewSet[*Unit]()
	for _, u := range universe.Items() {
		if !u.Outputs().Intersects(p.raw) {
			current.Add(u)
		}
	}
	for {
		producible := outputsOf(current)
		if !p.products.SubsetOf(producible) {
			return NewSet[*Unit](), nil
		}
		missing := inputsOf(current)
		missing.ExceptWith(p.raw)
		missing.ExceptWith(producible)
		if missing.IsEmpty() {
			break
		}
		for _, u := range current.Items() {
			if u.Inputs().Intersects(missing) {
				current.Remove(u)
			}
		}
	}

	// Composition: walk backwards from the products, pulling in surviving
	// producers and queueing their non-raw inputs.
	result := NewSet[*Unit]()
	toProduce := p.products.Clone()
	produced := NewSet[*Material]()
	for !toProduce.IsEmpty() {
		m := toProduce.Items()[0]
		toProduce.Remove(m)
		produced.Add(m)
		for _, u := range p.producers[m.ID()].Items() {
			if !current.Contains(u) || !result.Add(u) {
				continue
			}
			for _, in := range u.Inputs().Items() {
				if !p.raw.Contains(in) && !produced.Contains(in) {
					toProduce.Add(in)
				}
			}
		}
	}
	return result, nil
}

func outputsOf(units *Set[*Unit]) *Set[*Material] {
	out := NewSet[*Material]()
	for _, u := range units.Items() {
		out.UnionWith(u.Outputs())
	}
	return out
}

func inputsOf(units *Set[*Unit]) *Set[*Material] {
	out := NewSet[*Material]()
	for _, u := range units.Items() {
		out.UnionWith(u.Inputs())
	}
	return out
}

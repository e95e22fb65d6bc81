package pns

// IsSolutionStructure reports whether units forms a structurally feasible
// solution structure of p:
//
//   - every unit belongs to the problem and none produces a raw material
//   - every declared product is produced by some unit in the structure
//   - every input of every unit is raw or produced within the structure
//   - every unit is reachable from the products through the demand chain,
//     so no unit (or cluster of units) is carried along without feeding a
//     product
//   - no two units are mutually exclusive
//   - parallel-production caps hold for every demanded material
//
// This is the membership test behind [SolutionStructures]: the enumeration
// emits exactly the unit sets this function accepts. It also serves
// bounding functions for branching strategies whose leaves are not
// structurally sound by construction.
func IsSolutionStructure(p *Problem, units *Set[*Unit]) bool {
	if p == nil || !p.finalized || units.IsEmpty() || !units.SubsetOf(p.units) {
		return false
	}
	for _, u := range units.Items() {
		if u.Outputs().Intersects(p.raw) {
			return false
		}
		if p.exclusive[u.ID()].Intersects(units) {
			return false
		}
	}

	// Walk demand backwards from the products. Every demanded material
	// needs an in-structure producer within its cap, and every unit must
	// be activated by some demanded material it produces.
	demanded := NewSet[*Material]()
	active := NewSet[*Unit]()
	toProduce := p.products.Clone()
	for !toProduce.IsEmpty() {
		m := toProduce.Items()[0]
		toProduce.Remove(m)
		demanded.Add(m)

		producers := p.producers[m.ID()].Intersect(units)
		if producers.IsEmpty() {
			return false
		}
		if limit := p.MaxParallel(m); limit != Unlimited && producers.Len() > limit {
			return false
		}
		for _, u := range producers.Items() {
			if !active.Add(u) {
				continue
			}
			for _, in := range u.Inputs().Items() {
				if !p.raw.Contains(in) && !demanded.Contains(in) {
					toProduce.Add(in)
				}
			}
		}
	}
	return active.Equal(units)
}

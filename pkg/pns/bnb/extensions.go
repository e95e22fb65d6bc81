package bnb

import "github.com/pgraphlab/pgraph/pkg/pns"

// ReducedStructure recomputes the maximal structure over the units not
// yet excluded and locks out everything that falls outside it. A child
// whose remaining units cannot produce the products at all is dropped.
//
// The reduction never loses solutions: a unit outside the maximal
// structure of the non-excluded units appears in no completion of the
// subproblem. If an included unit falls outside, the contradiction is
// caught by the error-freeness check that follows every extension run.
func ReducedStructure[S DecisionState]() Extension[S] {
	return func(sub S) bool {
		p := sub.Problem()
		base := p.Units().Except(sub.Excluded())
		msg, err := pns.MaximalStructure(p, base)
		if err != nil || msg.IsEmpty() {
			return false
		}
		if drops := base.Except(msg); !drops.IsEmpty() {
			sub.Exclude(drops)
		}
		return true
	}
}

// NeutralExtension applies forced moves until none remain: a demanded
// material with a single producer left makes that producer mandatory,
// and one with no producers left makes the subproblem infeasible.
// Demanded means a product or an input of an included unit; materials
// already covered by an included producer are skipped.
func NeutralExtension[S DecisionState]() Extension[S] {
	return func(sub S) bool {
		p := sub.Problem()
		for {
			need := p.Products().Clone()
			for _, u := range sub.Included().Items() {
				need.UnionWith(u.Inputs())
			}
			need.ExceptWith(p.RawMaterials())

			changed := false
			for _, m := range need.Items() {
				cands := p.Producers(m).Except(sub.Excluded())
				if cands.IsEmpty() {
					return false
				}
				if cands.Intersects(sub.Included()) || cands.Len() != 1 {
					continue
				}
				only := cands.Items()[0]
				sub.Include(pns.NewSet(only))
				sub.Exclude(p.ExclusiveWith(only))
				changed = true
			}
			if !changed {
				return true
			}
		}
	}
}

// ABBNeutral is [NeutralExtension] specialized to [ABB]: it walks the
// demand agenda directly instead of recomputing the demanded set, which
// the agenda already tracks.
func ABBNeutral(sub *ABB) bool {
	p := sub.problem
	for {
		changed := false
		for _, m := range sub.toProduce.Items() {
			cands := p.Producers(m).Except(sub.excluded)
			if cands.IsEmpty() {
				return false
			}
			if cands.Intersects(sub.included) || cands.Len() != 1 {
				continue
			}
			only := cands.Items()[0]
			sub.Include(pns.NewSet(only))
			sub.Exclude(p.ExclusiveWith(only))
			changed = true
		}
		if !changed {
			return true
		}
	}
}

// DefaultExtensions is the standard pipeline for [DecisionState]
// subproblems: forced moves first, then the maximal-structure reduction.
func DefaultExtensions[S DecisionState]() []Extension[S] {
	return []Extension[S]{NeutralExtension[S](), ReducedStructure[S]()}
}

// DefaultABBExtensions is [DefaultExtensions] with the agenda-driven
// forced-move pass.
func DefaultABBExtensions() []Extension[*ABB] {
	return []Extension[*ABB]{ABBNeutral, ReducedStructure[*ABB]()}
}

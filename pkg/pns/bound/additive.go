package bound

import (
	"github.com/pgraphlab/pgraph/pkg/pns"
	"github.com/pgraphlab/pgraph/pkg/pns/bnb"
)

// AdditiveCost bounds a subproblem by the summed fixed costs of its
// included units; units missing from the table cost nothing. Costs must
// not be negative: branching only ever adds units, so with nonnegative
// costs the sum can never shrink toward the leaves, which is what makes
// the bound safe to prune on.
//
// The bound is exact on [bnb.ABB] leaves. For subproblem types whose
// leaves are not solution structures by construction, wrap it in
// [Verified].
func AdditiveCost[S bnb.DecisionState](costs *pns.Table[float64]) bnb.BoundFunc[S, Network] {
	return func(sub S) (Network, bool) {
		var total float64
		for _, u := range sub.Included().Items() {
			total += costs.GetOr(u, 0)
		}
		n := Network{Value: total}
		if sub.IsLeaf() {
			n.Units = sub.Included().Clone()
		}
		return n, true
	}
}

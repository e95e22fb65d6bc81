package bound

import (
	"github.com/pgraphlab/pgraph/pkg/pns"
	"github.com/pgraphlab/pgraph/pkg/pns/bnb"
)

// Verified wraps a bounding function with a leaf feasibility check:
// leaves whose included units are not a solution structure are reported
// infeasible before the inner bound runs. [bnb.Binary] leaves need this;
// [bnb.ABB] leaves do not, as branching keeps them feasible by
// construction.
func Verified[S bnb.DecisionState](inner bnb.BoundFunc[S, Network]) bnb.BoundFunc[S, Network] {
	return func(sub S) (Network, bool) {
		if sub.IsLeaf() && !pns.IsSolutionStructure(sub.Problem(), sub.Included()) {
			return Network{}, false
		}
		return inner(sub)
	}
}

// MinActivity wraps a bounding function to reject leaves where an
// included unit operates below min: a structure that only works with a
// unit idling at a trace level is rarely worth building. The inner bound
// must fill [Network.Activities]; leaves without activities pass
// unfiltered.
func MinActivity[S bnb.DecisionState](inner bnb.BoundFunc[S, Network], min float64) bnb.BoundFunc[S, Network] {
	return func(sub S) (Network, bool) {
		n, ok := inner(sub)
		if !ok || !sub.IsLeaf() || n.Activities == nil {
			return n, ok
		}
		for _, u := range sub.Included().Items() {
			if n.Activities.GetOr(u, 0) < min {
				return Network{}, false
			}
		}
		return n, true
	}
}

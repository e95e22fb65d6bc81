package bound

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/pgraphlab/pgraph/pkg/pns"
	"github.com/pgraphlab/pgraph/pkg/pns/bnb"
)

// FlowCost bounds a subproblem by a linear flow relaxation: each
// available unit gets a nonnegative activity level, every non-raw
// material must be produced at least as much as it is consumed, products
// at least to their demand, and the objective is the activity-weighted
// sum of unit costs. Available means every non-excluded unit, or exactly
// the included units at a leaf, so the feasible region only shrinks
// toward the leaves and the bound never overshoots a descendant.
//
// Units missing from costs cost nothing; products missing from demands
// (or all of them, when demands is nil) default to a demand of one.
// Costs must not be negative, otherwise the relaxation is unbounded.
// A subproblem whose model cannot satisfy the demands is reported
// infeasible; solver breakdowns are treated the same way.
//
// The solved activity levels are returned in [Network.Activities], keyed
// by unit, which is what [MinActivity] filters on.
func FlowCost[S bnb.DecisionState](costs, demands *pns.Table[float64]) bnb.BoundFunc[S, Network] {
	return func(sub S) (Network, bool) {
		p := sub.Problem()

		avail := sub.Included()
		if !sub.IsLeaf() {
			avail = p.Units().Except(sub.Excluded())
		}
		units := avail.Items()
		if len(units) == 0 {
			return Network{}, false
		}

		scope := p.Products().Clone()
		for _, u := range units {
			scope.UnionWith(u.Inputs())
			scope.UnionWith(u.Outputs())
		}
		scope.ExceptWith(p.RawMaterials())
		mats := scope.Items()

		// Standard form: minimize c·x subject to a·x = b with x >= 0.
		// Each requirement row gets a zero-cost slack column turning the
		// surplus inequality into an equality.
		rows, cols := len(mats), len(units)
		a := mat.NewDense(rows, cols+rows, nil)
		b := make([]float64, rows)
		c := make([]float64, cols+rows)

		for j, u := range units {
			c[j] = costs.GetOr(u, 0)
		}
		for i, m := range mats {
			for j, u := range units {
				var rate float64
				if u.Produces(m) {
					rate++
				}
				if u.Consumes(m) {
					rate--
				}
				if rate != 0 {
					a.Set(i, j, -rate)
				}
			}
			a.Set(i, cols+i, 1)
			if p.Products().Contains(m) {
				b[i] = -demands.GetOr(m, 1)
			}
		}

		z, x, err := lp.Simplex(c, a, b, 0, nil)
		if err != nil {
			return Network{}, false
		}

		act := pns.NewTable[float64]()
		for j, u := range units {
			act.Set(u, x[j])
		}
		n := Network{Value: z, Activities: act}
		if sub.IsLeaf() {
			n.Units = sub.Included().Clone()
		}
		return n, true
	}
}

package bound_test

import (
	"testing"

	"github.com/pgraphlab/pgraph/pkg/pns"
	"github.com/pgraphlab/pgraph/pkg/pns/bnb"
	"github.com/pgraphlab/pgraph/pkg/pns/bound"
)

func TestVerifiedRejectsBrokenLeaf(t *testing.T) {
	l := newLine(t)

	// u1 alone produces no product, so the leaf is not a structure.
	state := bnb.BinaryRoot(l.p, l.p.Units())
	state.Include(pns.NewSet(l.u1))
	state.Exclude(pns.NewSet(l.u2))

	called := false
	inner := func(*bnb.Binary) (bound.Network, bool) {
		called = true
		return bound.Network{}, true
	}
	if _, ok := bound.Verified[*bnb.Binary](inner)(state); ok {
		t.Fatal("verification passed a leaf that is not a solution structure")
	}
	if called {
		t.Error("inner bound ran for a rejected leaf")
	}
}

func TestVerifiedPassesStructureLeaf(t *testing.T) {
	l := newLine(t)
	state := bnb.BinaryRoot(l.p, l.p.Units())
	state.Include(pns.NewSet(l.u1, l.u2))

	bounder := bound.Verified(bound.AdditiveCost[*bnb.Binary](nil))
	if _, ok := bounder(state); !ok {
		t.Fatal("verification rejected a genuine solution structure")
	}
}

func TestVerifiedIgnoresInteriors(t *testing.T) {
	l := newLine(t)

	// Interior states are never structures yet; verification must not
	// reject them.
	state := bnb.BinaryRoot(l.p, l.p.Units())
	bounder := bound.Verified(bound.AdditiveCost[*bnb.Binary](nil))
	if _, ok := bounder(state); !ok {
		t.Fatal("verification rejected an interior subproblem")
	}
}

func TestMinActivityFiltersIdleUnits(t *testing.T) {
	pr := newPair(t)
	costs := pns.NewTable[float64]()
	costs.Set(pr.cheap, 1)
	costs.Set(pr.dear, 4)

	// Both producers included: the flow model routes everything through
	// the cheap one, leaving the dear one idle.
	state := bnb.BinaryRoot(pr.p, pr.p.Units())
	state.Include(pns.NewSet(pr.cheap, pr.dear))

	flow := bound.FlowCost[*bnb.Binary](costs, nil)
	if _, ok := flow(state); !ok {
		t.Fatal("flow bound reported a workable leaf infeasible")
	}
	if _, ok := bound.MinActivity(flow, 0.1)(state); ok {
		t.Fatal("activity filter passed a leaf with an idle unit")
	}

	// Alone, the dear producer runs at full tilt and passes.
	alone := bnb.BinaryRoot(pr.p, pr.p.Units())
	alone.Include(pns.NewSet(pr.dear))
	alone.Exclude(pns.NewSet(pr.cheap))
	if _, ok := bound.MinActivity(flow, 0.1)(alone); !ok {
		t.Fatal("activity filter rejected a fully loaded leaf")
	}
}

func TestMinActivitySkipsWithoutActivities(t *testing.T) {
	l := newLine(t)
	state := bnb.BinaryRoot(l.p, l.p.Units())
	state.Include(pns.NewSet(l.u1, l.u2))

	// Additive bounds carry no activities; the filter passes leaves
	// through untouched.
	bounder := bound.MinActivity(bound.AdditiveCost[*bnb.Binary](nil), 0.5)
	if _, ok := bounder(state); !ok {
		t.Fatal("activity filter rejected a leaf without activity data")
	}
}

func TestMinActivityPropagatesInfeasible(t *testing.T) {
	l := newLine(t)
	state := bnb.BinaryRoot(l.p, l.p.Units())

	inner := func(*bnb.Binary) (bound.Network, bool) { return bound.Network{}, false }
	if _, ok := bound.MinActivity[*bnb.Binary](inner, 0.5)(state); ok {
		t.Fatal("activity filter revived an infeasible bound")
	}
}

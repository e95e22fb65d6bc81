package bnb_test

import (
	"slices"
	"testing"

	"github.com/pgraphlab/pgraph/pkg/pns"
)

// plant is the seven-unit example shared by the solver tests: the same
// network the structural algorithms are tested on, plus a fixed cost per
// unit. The two solution structures are {o1, o3, o4, o7} at 185 and
// {o1, o3, o4, o6} at 207.
//
//	o1: b + f     -> a   34      o5: c + d + j -> b   25
//	o2: c + d     -> b   76      o6: k         -> h + c   74
//	o3: e + f     -> b   12      o7: l         -> h + d   52
//	o4: g + h     -> f   87
type plant struct {
	p     *pns.Problem
	costs *pns.Table[float64]

	a, b, c, d, e, f, g, h, j, k, l *pns.Material

	o1, o2, o3, o4, o5, o6, o7 *pns.Unit
}

func newPlant(t *testing.T) *plant {
	t.Helper()

	pl := &plant{
		a: pns.NewMaterial("a"),
		b: pns.NewMaterial("b"),
		c: pns.NewMaterial("c"),
		d: pns.NewMaterial("d"),
		e: pns.NewMaterial("e"),
		f: pns.NewMaterial("f"),
		g: pns.NewMaterial("g"),
		h: pns.NewMaterial("h"),
		j: pns.NewMaterial("j"),
		k: pns.NewMaterial("k"),
		l: pns.NewMaterial("l"),
	}
	pl.o1 = pns.NewUnit("o1", pns.NewSet(pl.b, pl.f), pns.NewSet(pl.a))
	pl.o2 = pns.NewUnit("o2", pns.NewSet(pl.c, pl.d), pns.NewSet(pl.b))
	pl.o3 = pns.NewUnit("o3", pns.NewSet(pl.e, pl.f), pns.NewSet(pl.b))
	pl.o4 = pns.NewUnit("o4", pns.NewSet(pl.g, pl.h), pns.NewSet(pl.f))
	pl.o5 = pns.NewUnit("o5", pns.NewSet(pl.c, pl.d, pl.j), pns.NewSet(pl.b))
	pl.o6 = pns.NewUnit("o6", pns.NewSet(pl.k), pns.NewSet(pl.h, pl.c))
	pl.o7 = pns.NewUnit("o7", pns.NewSet(pl.l), pns.NewSet(pl.h, pl.d))

	pl.p = pns.NewProblem("plant")
	for _, u := range []*pns.Unit{pl.o1, pl.o2, pl.o3, pl.o4, pl.o5, pl.o6, pl.o7} {
		if err := pl.p.AddUnit(u); err != nil {
			t.Fatalf("AddUnit(%s): %v", u, err)
		}
	}
	if err := pl.p.MarkRaw(pl.e, pl.g, pl.j, pl.k, pl.l); err != nil {
		t.Fatalf("MarkRaw: %v", err)
	}
	if err := pl.p.MarkProduct(pl.a); err != nil {
		t.Fatalf("MarkProduct: %v", err)
	}
	if err := pl.p.AddMutuallyExclusive(pl.o6, pl.o7); err != nil {
		t.Fatalf("AddMutuallyExclusive: %v", err)
	}
	if err := pl.p.SetMaxParallel(pl.a, 1); err != nil {
		t.Fatalf("SetMaxParallel: %v", err)
	}
	if err := pl.p.FinalizeData(); err != nil {
		t.Fatalf("FinalizeData: %v", err)
	}

	pl.costs = pns.NewTable[float64]()
	for u, cost := range map[*pns.Unit]float64{
		pl.o1: 34, pl.o2: 76, pl.o3: 12, pl.o4: 87, pl.o5: 25, pl.o6: 74, pl.o7: 52,
	} {
		pl.costs.Set(u, cost)
	}
	return pl
}

// networkNames flattens solution networks into sorted name slices for
// comparison with expectations.
func networkNames(networks []*pns.Set[*pns.Unit]) [][]string {
	out := make([][]string, len(networks))
	for i, n := range networks {
		out[i] = n.Names()
	}
	return out
}

// sortedKeys canonicalizes networks into comparable keys, ignoring
// discovery order.
func sortedKeys(networks []*pns.Set[*pns.Unit]) []string {
	keys := make([]string, len(networks))
	for i, n := range networks {
		keys[i] = n.String()
	}
	slices.Sort(keys)
	return keys
}

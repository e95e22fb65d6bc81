package pns

import "testing"

// plant is the running example shared by the algorithm tests: seven
// candidate units turning five raw materials into a single product, with
// one mutually exclusive pair.
//
//	o1: b + f     -> a      o5: c + d + j -> b
//	o2: c + d     -> b      o6: k         -> h + c
//	o3: e + f     -> b      o7: l         -> h + d
//	o4: g + h     -> f
//
// Raw materials are e, g, j, k, l; the product is a, capped at one
// producer. Units o6 and o7 are mutually exclusive, which dooms o2 and o5:
// each needs both c and d, but no structure can contain the sole producers
// of both. The maximal structure is all seven units; the only solution
// structures are {o1, o3, o4, o6} and {o1, o3, o4, o7}.
type plant struct {
	p *Problem

	a, b, c, d, e, f, g, h, j, k, l *Material

	o1, o2, o3, o4, o5, o6, o7 *Unit
}

func newPlant(t *testing.T) *plant {
	t.Helper()

	pl := &plant{
		a: NewMaterial("a"),
		b: NewMaterial("b"),
		c: NewMaterial("c"),
		d: NewMaterial("d"),
		e: NewMaterial("e"),
		f: NewMaterial("f"),
		g: NewMaterial("g"),
		h: NewMaterial("h"),
		j: NewMaterial("j"),
		k: NewMaterial("k"),
		l: NewMaterial("l"),
	}
	pl.o1 = NewUnit("o1", NewSet(pl.b, pl.f), NewSet(pl.a))
	pl.o2 = NewUnit("o2", NewSet(pl.c, pl.d), NewSet(pl.b))
	pl.o3 = NewUnit("o3", NewSet(pl.e, pl.f), NewSet(pl.b))
	pl.o4 = NewUnit("o4", NewSet(pl.g, pl.h), NewSet(pl.f))
	pl.o5 = NewUnit("o5", NewSet(pl.c, pl.d, pl.j), NewSet(pl.b))
	pl.o6 = NewUnit("o6", NewSet(pl.k), NewSet(pl.h, pl.c))
	pl.o7 = NewUnit("o7", NewSet(pl.l), NewSet(pl.h, pl.d))

	pl.p = NewProblem("plant")
	for _, u := range []*Unit{pl.o1, pl.o2, pl.o3, pl.o4, pl.o5, pl.o6, pl.o7} {
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
	return pl
}

// unitSet is shorthand for building expected unit sets in assertions.
func unitSet(units ...*Unit) *Set[*Unit] { return NewSet(units...) }

// structureNames flattens enumerated structures into name slices for
// comparison with expectations.
func structureNames(structures []*Set[*Unit]) [][]string {
	out := make([][]string, len(structures))
	for i, s := range structures {
		out[i] = s.Names()
	}
	return out
}

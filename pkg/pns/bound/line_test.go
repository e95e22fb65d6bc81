package bound_test

import (
	"testing"

	"github.com/pgraphlab/pgraph/pkg/pns"
)

// line is a two-stage fixture: raw feed, one intermediate, one product.
//
//	feed --u1--> mid --u2--> product
type line struct {
	p *pns.Problem

	feed, mid, product *pns.Material
	u1, u2             *pns.Unit
}

func newLine(t *testing.T) *line {
	t.Helper()

	l := &line{
		feed:    pns.NewMaterial("feed"),
		mid:     pns.NewMaterial("mid"),
		product: pns.NewMaterial("product"),
	}
	l.u1 = pns.NewUnit("u1", pns.NewSet(l.feed), pns.NewSet(l.mid))
	l.u2 = pns.NewUnit("u2", pns.NewSet(l.mid), pns.NewSet(l.product))

	l.p = pns.NewProblem("line")
	for _, u := range []*pns.Unit{l.u1, l.u2} {
		if err := l.p.AddUnit(u); err != nil {
			t.Fatalf("AddUnit(%s): %v", u, err)
		}
	}
	if err := l.p.MarkRaw(l.feed); err != nil {
		t.Fatalf("MarkRaw: %v", err)
	}
	if err := l.p.MarkProduct(l.product); err != nil {
		t.Fatalf("MarkProduct: %v", err)
	}
	if err := l.p.FinalizeData(); err != nil {
		t.Fatalf("FinalizeData: %v", err)
	}
	return l
}

// pair is a one-stage fixture with two alternative producers.
//
//	feed --cheap--> product
//	feed --dear -->
type pair struct {
	p *pns.Problem

	feed, product *pns.Material
	cheap, dear   *pns.Unit
}

func newPair(t *testing.T) *pair {
	t.Helper()

	pr := &pair{
		feed:    pns.NewMaterial("feed"),
		product: pns.NewMaterial("product"),
	}
	pr.cheap = pns.NewUnit("cheap", pns.NewSet(pr.feed), pns.NewSet(pr.product))
	pr.dear = pns.NewUnit("dear", pns.NewSet(pr.feed), pns.NewSet(pr.product))

	pr.p = pns.NewProblem("pair")
	for _, u := range []*pns.Unit{pr.cheap, pr.dear} {
		if err := pr.p.AddUnit(u); err != nil {
			t.Fatalf("AddUnit(%s): %v", u, err)
		}
	}
	if err := pr.p.MarkRaw(pr.feed); err != nil {
		t.Fatalf("MarkRaw: %v", err)
	}
	if err := pr.p.MarkProduct(pr.product); err != nil {
		t.Fatalf("MarkProduct: %v", err)
	}
	if err := pr.p.FinalizeData(); err != nil {
		t.Fatalf("FinalizeData: %v", err)
	}
	return pr
}

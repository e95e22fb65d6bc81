package bound_test

import (
	"fmt"

	"github.com/pgraphlab/pgraph/pkg/pns"
	"github.com/pgraphlab/pgraph/pkg/pns/bnb"
	"github.com/pgraphlab/pgraph/pkg/pns/bound"
)

func ExampleFlowCost() {
	ore := pns.NewMaterial("ore")
	slab := pns.NewMaterial("slab")
	sheet := pns.NewMaterial("sheet")

	caster := pns.NewUnit("caster", pns.NewSet(ore), pns.NewSet(slab))
	roller := pns.NewUnit("roller", pns.NewSet(slab), pns.NewSet(sheet))

	p := pns.NewProblem("rolling-line")
	_ = p.AddUnit(caster)
	_ = p.AddUnit(roller)
	_ = p.MarkRaw(ore)
	_ = p.MarkProduct(sheet)
	if err := p.FinalizeData(); err != nil {
		fmt.Println("finalize:", err)
		return
	}

	costs := pns.NewTable[float64]()
	costs.Set(caster, 2)
	costs.Set(roller, 3)

	// Price the finished network: one unit of sheet demanded.
	state := bnb.BinaryRoot(p, p.Units())
	state.Include(p.Units())

	n, ok := bound.FlowCost[*bnb.Binary](costs, nil)(state)
	if !ok {
		fmt.Println("infeasible")
		return
	}
	fmt.Printf("cost: %.0f\n", n.Value)
	fmt.Printf("caster: %.0f\n", n.Activities.GetOr(caster, 0))
	fmt.Printf("roller: %.0f\n", n.Activities.GetOr(roller, 0))
	// Output:
	// cost: 5
	// caster: 1
	// roller: 1
}

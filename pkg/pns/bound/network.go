package bound

import (
	"cmp"

	"github.com/pgraphlab/pgraph/pkg/pns"
)

// Network is the result the stock bounding functions produce: the value
// the search orders by, and at leaves the priced unit set. Activities
// carries per-unit operating levels when the bound solved a flow model;
// it is nil for purely additive bounds.
type Network struct {
	Units      *pns.Set[*pns.Unit]
	Value      float64
	Activities *pns.Table[float64]
}

// ByValue orders networks by value, smaller first. It is the
// [github.com/pgraphlab/pgraph/pkg/pns/bnb.CompareFunc] matching every
// bounder in this package.
func ByValue(a, b Network) int {
	return cmp.Compare(a.Value, b.Value)
}

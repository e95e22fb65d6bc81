package pns

import (
	"errors"
	"fmt"
)

var (
	// ErrNilProblem is returned by algorithms invoked with a nil problem.
	ErrNilProblem = errors.New("problem must not be nil")

	// ErrNilNode is returned when a nil material or unit is added to a
	// problem or referenced by a constraint.
	ErrNilNode = errors.New("node must not be nil")

	// ErrNotFinalized is returned by [MaximalStructure],
	// [SolutionStructures], and the search engine when the problem's
	// derived indices have not been built (or have been invalidated by a
	// later mutation). Call [Problem.FinalizeData] first.
	ErrNotFinalized = errors.New("problem not finalized")

	// ErrNoProducts is returned by [Problem.FinalizeData] when no product
	// materials are declared. A problem without products has nothing to
	// synthesize.
	ErrNoProducts = errors.New("problem declares no products")

	// ErrRawProductOverlap is returned by [Problem.FinalizeData] when a
	// material is declared both raw and product. Raw materials, products,
	// and intermediates must partition the material set.
	ErrRawProductOverlap = errors.New("material declared both raw material and product")

	// ErrUnknownUnit is returned by [Problem.FinalizeData] when a mutual
	// exclusion group references a unit that was never added to the
	// problem.
	ErrUnknownUnit = errors.New("unit not part of the problem")

	// ErrExclusionGroupSize is returned by
	// [Problem.AddMutuallyExclusive] for groups of fewer than two units.
	ErrExclusionGroupSize = errors.New("mutual exclusion group needs at least two units")

	// ErrInvalidCap is returned by [Problem.SetMaxParallel] for caps that
	// are neither positive nor [Unlimited].
	ErrInvalidCap = errors.New("parallel production cap must be positive or Unlimited")
)

// Unlimited disables a parallel-production cap.
const Unlimited = -1

// Problem is a process-network synthesis problem: the canonical material
// and operating-unit collections, the raw/product declarations, and the
// structural constraints (mutual exclusions, parallel-production caps).
//
// Build a problem by adding nodes and constraints, then call
// [Problem.FinalizeData] to validate it and derive the producer/consumer
// and exclusion indices the algorithms rely on. Any structural mutation
// after that invalidates the derived state: the finalized flag is cleared
// and algorithms refuse to run (ErrNotFinalized) until FinalizeData is
// called again.
//
// A finalized problem is treated as read-only by every algorithm in this
// module and may be shared across goroutines.
type Problem struct {
	name string

	units     *Set[*Unit]
	materials *Set[*Material]
	raw       *Set[*Material]
	products  *Set[*Material]

	exclusionGroups []*Set[*Unit]
	caps            *Table[int]

	finalized     bool
	intermediates *Set[*Material]
	producers     map[int64]*Set[*Unit]
	consumers     map[int64]*Set[*Unit]
	exclusive     map[int64]*Set[*Unit]
}

// NewProblem creates an empty problem with the given display name.
func NewProblem(name string) *Problem {
	return &Problem{
		name:      name,
		units:     NewSet[*Unit](),
		materials: NewSet[*Material](),
		raw:       NewSet[*Material](),
		products:  NewSet[*Material](),
		caps:      NewTable[int](),
	}
}

// Name returns the problem's display name.
func (p *Problem) Name() string { return p.name }

// AddMaterial registers a material. Materials referenced by any unit's
// inputs or outputs are registered automatically during
// [Problem.FinalizeData]; explicit registration is only needed for
// materials no unit touches.
func (p *Problem) AddMaterial(m *Material) error {
	if m == nil {
		return ErrNilNode
	}
	p.materials.Add(m)
	p.finalized = false
	return nil
}

// AddUnit registers an operating unit. Adding the same unit twice is a
// no-op.
func (p *Problem) AddUnit(u *Unit) error {
	if u == nil {
		return ErrNilNode
	}
	p.units.Add(u)
	p.finalized = false
	return nil
}

// MarkRaw declares materials as raw: externally supplied, never to be
// produced by any unit in a solution.
func (p *Problem) MarkRaw(ms ...*Material) error {
	for _, m := range ms {
		if m == nil {
			return ErrNilNode
		}
		p.raw.Add(m)
		p.materials.Add(m)
	}
	p.finalized = false
	return nil
}

// MarkProduct declares materials as desired products.
func (p *Problem) MarkProduct(ms ...*Material) error {
	for _, m := range ms {
		if m == nil {
			return ErrNilNode
		}
		p.products.Add(m)
		p.materials.Add(m)
	}
	p.finalized = false
	return nil
}

// AddMutuallyExclusive declares that at most one of the given units may
// appear in any feasible solution. Units may belong to several groups; the
// per-unit exclusion index derived by [Problem.FinalizeData] is the union
// of all their groups.
func (p *Problem) AddMutuallyExclusive(units ...*Unit) error {
	if len(units) < 2 {
		return ErrExclusionGroupSize
	}
	group := NewSet[*Unit]()
	for _, u := range units {
		if u == nil {
			return ErrNilNode
		}
		group.Add(u)
	}
	if group.Len() < 2 {
		return ErrExclusionGroupSize
	}
	p.exclusionGroups = append(p.exclusionGroups, group)
	p.finalized = false
	return nil
}

// SetMaxParallel caps how many units producing m may be included in one
// solution. Pass [Unlimited] to remove a cap.
func (p *Problem) SetMaxParallel(m *Material, cap int) error {
	if m == nil {
		return ErrNilNode
	}
	if cap != Unlimited && cap < 1 {
		return ErrInvalidCap
	}
	if cap == Unlimited {
		p.caps.Delete(m)
	} else {
		p.caps.Set(m, cap)
	}
	p.finalized = false
	return nil
}

// FinalizeData validates the problem and (re)builds the derived state:
// auto-registered materials, the intermediate partition, the
// producer/consumer indices, and the symmetric per-unit exclusion map.
//
// It must be called after construction and again after any structural
// mutation. Algorithms return [ErrNotFinalized] otherwise.
func (p *Problem) FinalizeData() error {
	if p.products.IsEmpty() {
		return ErrNoProducts
	}
	if overlap := p.raw.Intersect(p.products); !overlap.IsEmpty() {
		return fmt.Errorf("%w: %s", ErrRawProductOverlap, overlap)
	}
	for _, group := range p.exclusionGroups {
		for _, u := range group.Items() {
			if !p.units.Contains(u) {
				return fmt.Errorf("%w: %s", ErrUnknownUnit, u.Name())
			}
		}
	}

	for _, u := range p.units.Items() {
		p.materials.UnionWith(u.Inputs())
		p.materials.UnionWith(u.Outputs())
	}

	p.intermediates = p.materials.Except(p.raw)
	p.intermediates.ExceptWith(p.products)

	p.producers = make(map[int64]*Set[*Unit], p.materials.Len())
	p.consumers = make(map[int64]*Set[*Unit], p.materials.Len())
	for _, m := range p.materials.Items() {
		p.producers[m.ID()] = NewSet[*Unit]()
		p.consumers[m.ID()] = NewSet[*Unit]()
	}
	for _, u := range p.units.Items() {
		for _, m := range u.Outputs().Items() {
			p.producers[m.ID()].Add(u)
		}
		for _, m := range u.Inputs().Items() {
			p.consumers[m.ID()].Add(u)
		}
	}

	p.exclusive = make(map[int64]*Set[*Unit], p.units.Len())
	for _, group := range p.exclusionGroups {
		for _, u := range group.Items() {
			partners, ok := p.exclusive[u.ID()]
			if !ok {
				partners = NewSet[*Unit]()
				p.exclusive[u.ID()] = partners
			}
			partners.UnionWith(group)
			partners.Remove(u)
		}
	}

	p.finalized = true
	return nil
}

// Finalized reports whether the derived indices are current.
func (p *Problem) Finalized() bool { return p.finalized }

// Units returns the canonical operating-unit collection. Read-only.
func (p *Problem) Units() *Set[*Unit] { return p.units }

// Materials returns the canonical material collection. Before
// [Problem.FinalizeData] it may miss materials referenced only by units.
// Read-only.
func (p *Problem) Materials() *Set[*Material] { return p.materials }

// RawMaterials returns the declared raw materials. Read-only.
func (p *Problem) RawMaterials() *Set[*Material] { return p.raw }

// Products returns the declared products. Read-only.
func (p *Problem) Products() *Set[*Material] { return p.products }

// Intermediates returns the materials that are neither raw nor product.
// Derived by [Problem.FinalizeData]; nil before that. Read-only.
func (p *Problem) Intermediates() *Set[*Material] { return p.intermediates }

// Producers returns the units producing m. Derived by
// [Problem.FinalizeData]; nil before that, empty for unknown materials.
// Read-only.
func (p *Problem) Producers(m *Material) *Set[*Unit] {
	if !p.finalized {
		return nil
	}
	return p.producers[m.ID()]
}

// Consumers returns the units consuming m. Derived by
// [Problem.FinalizeData]; nil before that, empty for unknown materials.
// Read-only.
func (p *Problem) Consumers(m *Material) *Set[*Unit] {
	if !p.finalized {
		return nil
	}
	return p.consumers[m.ID()]
}

// ExclusiveWith returns the units mutually exclusive with u across all
// groups. Derived by [Problem.FinalizeData]; nil before that and for units
// in no group. Read-only.
func (p *Problem) ExclusiveWith(u *Unit) *Set[*Unit] {
	if !p.finalized {
		return nil
	}
	return p.exclusive[u.ID()]
}

// ExclusionGroups returns the declared mutual-exclusion groups. Read-only.
func (p *Problem) ExclusionGroups() []*Set[*Unit] { return p.exclusionGroups }

// MaxParallel returns the parallel-production cap for m, or [Unlimited]
// when none is set.
func (p *Problem) MaxParallel(m *Material) int {
	return p.caps.GetOr(m, Unlimited)
}

// WithinCaps reports whether units respects every parallel-production
// cap, counting for each capped material the producers present in units.
// Requires a finalized problem; returns false otherwise.
func (p *Problem) WithinCaps(units *Set[*Unit]) bool {
	if !p.finalized {
		return false
	}
	ok := true
	p.caps.ForEach(func(id int64, limit int) bool {
		if p.producers[id].Intersect(units).Len() > limit {
			ok = false
		}
		return ok
	})
	return ok
}

// Caps returns the parallel-production cap table. Read-only.
func (p *Problem) Caps() *Table[int] { return p.caps }

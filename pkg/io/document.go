package io

import (
	"encoding/json"
	"slices"
	"sort"

	"github.com/pgraphlab/pgraph/pkg/cache"
	"github.com/pgraphlab/pgraph/pkg/errors"
	"github.com/pgraphlab/pgraph/pkg/pns"
)

// Material kinds recognized in problem documents. An empty kind means
// intermediate.
const (
	KindRaw          = "raw"
	KindProduct      = "product"
	KindIntermediate = "intermediate"
)

// Document is the format-neutral form of a problem definition. Every
// [Format] parses into it and exports from it, so converting between
// encodings never loses information.
//
// Materials referenced by units but not declared are treated as
// intermediates. Declared intermediates are only needed to attach a cap.
type Document struct {
	Name       string        `json:"name,omitempty"`
	Materials  []MaterialDef `json:"materials,omitempty"`
	Units      []UnitDef     `json:"units"`
	Exclusions [][]string    `json:"exclusions,omitempty"`
}

// MaterialDef declares a material and its role in the network.
type MaterialDef struct {
	Name string `json:"name"`
	// Kind is "raw", "product", or "intermediate". Empty means intermediate.
	Kind string `json:"kind,omitempty"`
	// Cap limits how many producers of this material a solution may use.
	// Zero means unlimited.
	Cap int `json:"cap,omitempty"`
	// Demand is the required flow for a product under the LP bound.
	// Zero means the default demand of one.
	Demand float64 `json:"demand,omitempty"`
}

// UnitDef declares an operating unit by the names of the materials it
// consumes and produces.
type UnitDef struct {
	Name    string   `json:"name"`
	Inputs  []string `json:"inputs,omitempty"`
	Outputs []string `json:"outputs"`
	Cost    float64  `json:"cost,omitempty"`
}

// Model is a compiled document: a finalized problem plus the numeric
// side tables the bounding functions consume.
type Model struct {
	Problem *pns.Problem
	Costs   *pns.Table[float64]
	Demands *pns.Table[float64]
}

// Validate checks the document for structural mistakes a format decoder
// cannot catch: duplicate or invalid names, dangling references, bad
// kinds, and negative numbers. All errors carry code INVALID_PROBLEM.
func (d *Document) Validate() error {
	materials := make(map[string]*MaterialDef, len(d.Materials))
	for i := range d.Materials {
		m := &d.Materials[i]
		if err := errors.ValidateNodeName(m.Name); err != nil {
			return err
		}
		if _, ok := materials[m.Name]; ok {
			return errors.New(errors.ErrCodeInvalidProblem, "duplicate material %q", m.Name)
		}
		materials[m.Name] = m

		switch m.Kind {
		case "", KindRaw, KindProduct, KindIntermediate:
		default:
			return errors.New(errors.ErrCodeInvalidProblem, "material %q: unknown kind %q", m.Name, m.Kind)
		}
		if m.Cap < 0 {
			return errors.New(errors.ErrCodeInvalidProblem, "material %q: negative cap %d", m.Name, m.Cap)
		}
		if m.Demand < 0 {
			return errors.New(errors.ErrCodeInvalidProblem, "material %q: negative demand %g", m.Name, m.Demand)
		}
		if m.Demand > 0 && m.Kind != KindProduct {
			return errors.New(errors.ErrCodeInvalidProblem, "material %q: demand set on a non-product", m.Name)
		}
	}

	if len(d.Units) == 0 {
		return errors.New(errors.ErrCodeInvalidProblem, "document has no units")
	}
	units := make(map[string]bool, len(d.Units))
	for i := range d.Units {
		u := &d.Units[i]
		if err := errors.ValidateNodeName(u.Name); err != nil {
			return err
		}
		if units[u.Name] {
			return errors.New(errors.ErrCodeInvalidProblem, "duplicate unit %q", u.Name)
		}
		units[u.Name] = true

		if len(u.Outputs) == 0 {
			return errors.New(errors.ErrCodeInvalidProblem, "unit %q has no outputs", u.Name)
		}
		if u.Cost < 0 {
			return errors.New(errors.ErrCodeInvalidProblem, "unit %q: negative cost %g", u.Name, u.Cost)
		}
		for _, name := range append(slices.Clone(u.Inputs), u.Outputs...) {
			if err := errors.ValidateNodeName(name); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidProblem, err, "unit %q", u.Name)
			}
		}
	}

	for _, group := range d.Exclusions {
		if len(group) < 2 {
			return errors.New(errors.ErrCodeInvalidProblem, "exclusion group needs at least two units, got %v", group)
		}
		for _, name := range group {
			if !units[name] {
				return errors.New(errors.ErrCodeInvalidProblem, "exclusion references unknown unit %q", name)
			}
		}
	}
	return nil
}

// Compile validates the document and builds the finalized problem with
// its cost and demand tables.
func (d *Document) Compile() (*Model, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	p := pns.NewProblem(d.Name)
	costs := pns.NewTable[float64]()
	demands := pns.NewTable[float64]()

	byName := make(map[string]*pns.Material)
	material := func(name string) *pns.Material {
		if m, ok := byName[name]; ok {
			return m
		}
		m := pns.NewMaterial(name)
		byName[name] = m
		return m
	}

	for _, def := range d.Materials {
		m := material(def.Name)
		if err := p.AddMaterial(m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidProblem, err, "material %q", def.Name)
		}
		switch def.Kind {
		case KindRaw:
			if err := p.MarkRaw(m); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidProblem, err, "material %q", def.Name)
			}
		case KindProduct:
			if err := p.MarkProduct(m); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidProblem, err, "material %q", def.Name)
			}
			if def.Demand > 0 {
				demands.Set(m, def.Demand)
			}
		}
		if def.Cap > 0 {
			if err := p.SetMaxParallel(m, def.Cap); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidProblem, err, "material %q", def.Name)
			}
		}
	}

	byUnitName := make(map[string]*pns.Unit, len(d.Units))
	for _, def := range d.Units {
		u := pns.NewUnit(def.Name, nil, nil)
		for _, name := range def.Inputs {
			u.AddInput(material(name))
		}
		for _, name := range def.Outputs {
			u.AddOutput(material(name))
		}
		if err := p.AddUnit(u); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidProblem, err, "unit %q", def.Name)
		}
		byUnitName[def.Name] = u
		if def.Cost > 0 {
			costs.Set(u, def.Cost)
		}
	}

	for _, group := range d.Exclusions {
		members := make([]*pns.Unit, len(group))
		for i, name := range group {
			members[i] = byUnitName[name]
		}
		if err := p.AddMutuallyExclusive(members...); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidProblem, err, "exclusion %v", group)
		}
	}

	if err := p.FinalizeData(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProblem, err, "finalize %q", d.Name)
	}
	return &Model{Problem: p, Costs: costs, Demands: demands}, nil
}

// FromModel rebuilds a document from a compiled model, for exporting a
// problem back out in any format. Materials and units are emitted in
// name order so exports are deterministic.
func FromModel(m *Model) *Document {
	p := m.Problem
	doc := &Document{Name: p.Name()}

	for _, mat := range sortedByName(p.Materials().Items()) {
		def := MaterialDef{Name: mat.Name(), Cap: capOf(p, mat)}
		switch {
		case p.RawMaterials().Contains(mat):
			def.Kind = KindRaw
		case p.Products().Contains(mat):
			def.Kind = KindProduct
			if dm, ok := m.Demands.Get(mat); ok {
				def.Demand = dm
			}
		default:
			// Undistinguished intermediates are implied by the units.
			if def.Cap == 0 {
				continue
			}
		}
		doc.Materials = append(doc.Materials, def)
	}

	for _, u := range sortedByName(p.Units().Items()) {
		doc.Units = append(doc.Units, UnitDef{
			Name:    u.Name(),
			Inputs:  sortedNames(u.Inputs()),
			Outputs: sortedNames(u.Outputs()),
			Cost:    m.Costs.GetOr(u, 0),
		})
	}

	for _, group := range p.ExclusionGroups() {
		names := group.Names()
		sort.Strings(names)
		doc.Exclusions = append(doc.Exclusions, names)
	}
	sort.Slice(doc.Exclusions, func(i, j int) bool {
		return slices.Compare(doc.Exclusions[i], doc.Exclusions[j]) < 0
	})
	return doc
}

// Fingerprint returns a stable content hash of the document. Two
// documents describing the same network in a different declaration
// order, or parsed from different encodings, share a fingerprint. It is
// the problem identity used for cache keys and run archives.
func (d *Document) Fingerprint() string {
	n := d.normalized()
	data, err := json.Marshal(n)
	if err != nil {
		// Document contains only plain structs and strings.
		panic(err)
	}
	return cache.Hash(data)
}

// normalized returns a sorted deep copy used for fingerprinting.
// Declared-but-default intermediates hash like undeclared ones, and an
// empty kind hashes like an explicit "intermediate".
func (d *Document) normalized() *Document {
	n := &Document{
		Name:  d.Name,
		Units: make([]UnitDef, len(d.Units)),
	}
	for _, m := range d.Materials {
		if m.Kind == "" {
			m.Kind = KindIntermediate
		}
		if m.Kind == KindIntermediate && m.Cap == 0 && m.Demand == 0 {
			continue
		}
		n.Materials = append(n.Materials, m)
	}
	sort.Slice(n.Materials, func(i, j int) bool { return n.Materials[i].Name < n.Materials[j].Name })

	for i, u := range d.Units {
		nu := UnitDef{
			Name:    u.Name,
			Inputs:  slices.Clone(u.Inputs),
			Outputs: slices.Clone(u.Outputs),
			Cost:    u.Cost,
		}
		sort.Strings(nu.Inputs)
		sort.Strings(nu.Outputs)
		n.Units[i] = nu
	}
	sort.Slice(n.Units, func(i, j int) bool { return n.Units[i].Name < n.Units[j].Name })

	for _, group := range d.Exclusions {
		g := slices.Clone(group)
		sort.Strings(g)
		n.Exclusions = append(n.Exclusions, g)
	}
	sort.Slice(n.Exclusions, func(i, j int) bool {
		return slices.Compare(n.Exclusions[i], n.Exclusions[j]) < 0
	})
	return n
}

func sortedByName[N pns.Node](items []N) []N {
	sorted := slices.Clone(items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name() < sorted[j].Name() })
	return sorted
}

func sortedNames(s *pns.Set[*pns.Material]) []string {
	names := s.Names()
	sort.Strings(names)
	return names
}

func capOf(p *pns.Problem, m *pns.Material) int {
	return p.Caps().GetOr(m, 0)
}

package pns

import "sync/atomic"

// nodeIDs hands out process-wide node identities. IDs increase
// monotonically and are never reused.
var nodeIDs atomic.Int64

func nextNodeID() int64 { return nodeIDs.Add(1) }

// Node is the common contract of material and operating-unit nodes.
// Identity is the numeric ID: two nodes are the same entity iff their IDs
// are equal, regardless of name or content. Names are display labels and
// need not be unique.
type Node interface {
	ID() int64
	Name() string
}

// Material is a substance, energy carrier, or signal flowing through a
// process network. Materials carry no numeric semantics of their own;
// prices, rates, and similar data belong in side-tables (see [Table]).
type Material struct {
	id   int64
	name string
}

// NewMaterial creates a material with a fresh identity.
func NewMaterial(name string) *Material {
	return &Material{id: nextNodeID(), name: name}
}

// ID returns the material's identity.
func (m *Material) ID() int64 { return m.id }

// Name returns the material's display name.
func (m *Material) Name() string { return m.name }

// String implements fmt.Stringer.
func (m *Material) String() string { return m.name }

// Unit is an operating unit: a transformation step that consumes its input
// materials and produces its output materials. Inputs and outputs are fixed
// at construction or appended shortly after via [Unit.AddInput] and
// [Unit.AddOutput] (file loaders rely on this).
type Unit struct {
	id      int64
	name    string
	inputs  *Set[*Material]
	outputs *Set[*Material]
}

// NewUnit creates an operating unit with a fresh identity. The input and
// output sets are copied, so later changes to the arguments do not affect
// the unit. Nil sets are treated as empty.
func NewUnit(name string, inputs, outputs *Set[*Material]) *Unit {
	u := &Unit{
		id:      nextNodeID(),
		name:    name,
		inputs:  NewSet[*Material](),
		outputs: NewSet[*Material](),
	}
	u.inputs.UnionWith(inputs)
	u.outputs.UnionWith(outputs)
	return u
}

// ID returns the unit's identity.
func (u *Unit) ID() int64 { return u.id }

// Name returns the unit's display name.
func (u *Unit) Name() string { return u.name }

// String implements fmt.Stringer.
func (u *Unit) String() string { return u.name }

// Inputs returns the unit's input materials. The returned set is the
// unit's own; callers must treat it as read-only.
func (u *Unit) Inputs() *Set[*Material] { return u.inputs }

// Outputs returns the unit's output materials. The returned set is the
// unit's own; callers must treat it as read-only.
func (u *Unit) Outputs() *Set[*Material] { return u.outputs }

// AddInput appends a material to the unit's inputs.
//
// Appending to a unit that already belongs to a finalized [Problem] leaves
// the problem's derived indices stale; call [Problem.FinalizeData] again
// afterwards.
func (u *Unit) AddInput(m *Material) { u.inputs.Add(m) }

// AddOutput appends a material to the unit's outputs. The same staleness
// caveat as [Unit.AddInput] applies.
func (u *Unit) AddOutput(m *Material) { u.outputs.Add(m) }

// Consumes reports whether m is one of the unit's inputs.
func (u *Unit) Consumes(m *Material) bool { return u.inputs.Contains(m) }

// Produces reports whether m is one of the unit's outputs.
func (u *Unit) Produces(m *Material) bool { return u.outputs.Contains(m) }

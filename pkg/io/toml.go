package io

import (
	"bytes"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/pgraphlab/pgraph/pkg/errors"
)

// tomlFormat encodes documents as TOML, with materials and units as
// named tables:
//
//	name = "plant"
//
//	[materials.steam]
//	kind = "raw"
//
//	[units.boiler]
//	inputs = ["water"]
//	outputs = ["steam"]
//	cost = 12.0
//
// Tables are unordered, so parsed documents list materials and units in
// name order.
type tomlFormat struct{}

func (tomlFormat) Name() string         { return "toml" }
func (tomlFormat) Extensions() []string { return []string{".toml"} }

func (tomlFormat) Parse(data []byte) (*Document, error) {
	var td tomlDoc
	if err := toml.Unmarshal(data, &td); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse toml")
	}

	doc := &Document{Name: td.Name, Exclusions: td.Exclusions}
	for name, m := range td.Materials {
		doc.Materials = append(doc.Materials, MaterialDef{
			Name:   name,
			Kind:   m.Kind,
			Cap:    m.Cap,
			Demand: m.Demand,
		})
	}
	sort.Slice(doc.Materials, func(i, j int) bool { return doc.Materials[i].Name < doc.Materials[j].Name })

	for name, u := range td.Units {
		doc.Units = append(doc.Units, UnitDef{
			Name:    name,
			Inputs:  u.Inputs,
			Outputs: u.Outputs,
			Cost:    u.Cost,
		})
	}
	sort.Slice(doc.Units, func(i, j int) bool { return doc.Units[i].Name < doc.Units[j].Name })

	return doc, nil
}

func (tomlFormat) Export(doc *Document) ([]byte, error) {
	td := tomlDoc{
		Name:       doc.Name,
		Materials:  make(map[string]tomlMaterial, len(doc.Materials)),
		Units:      make(map[string]tomlUnit, len(doc.Units)),
		Exclusions: doc.Exclusions,
	}
	for _, m := range doc.Materials {
		td.Materials[m.Name] = tomlMaterial{Kind: m.Kind, Cap: m.Cap, Demand: m.Demand}
	}
	for _, u := range doc.Units {
		td.Units[u.Name] = tomlUnit{Inputs: u.Inputs, Outputs: u.Outputs, Cost: u.Cost}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(td); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "export toml")
	}
	return buf.Bytes(), nil
}

type tomlDoc struct {
	Name       string                  `toml:"name,omitempty"`
	Materials  map[string]tomlMaterial `toml:"materials,omitempty"`
	Units      map[string]tomlUnit     `toml:"units,omitempty"`
	Exclusions [][]string              `toml:"exclusions,omitempty"`
}

type tomlMaterial struct {
	Kind   string  `toml:"kind,omitempty"`
	Cap    int     `toml:"cap,omitempty"`
	Demand float64 `toml:"demand,omitempty"`
}

type tomlUnit struct {
	Inputs  []string `toml:"inputs,omitempty"`
	Outputs []string `toml:"outputs"`
	Cost    float64  `toml:"cost,omitempty"`
}

package io

import (
	"encoding/xml"

	"github.com/pgraphlab/pgraph/pkg/errors"
)

// xmlFormat encodes documents as XML:
//
//	<process name="plant">
//	  <material name="steam" kind="raw"/>
//	  <unit name="boiler" cost="12">
//	    <input>water</input>
//	    <output>steam</output>
//	  </unit>
//	  <exclusion>
//	    <unit>boiler</unit>
//	    <unit>turbine</unit>
//	  </exclusion>
//	</process>
type xmlFormat struct{}

func (xmlFormat) Name() string         { return "xml" }
func (xmlFormat) Extensions() []string { return []string{".xml"} }

func (xmlFormat) Parse(data []byte) (*Document, error) {
	var xd xmlDoc
	if err := xml.Unmarshal(data, &xd); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse xml")
	}

	doc := &Document{Name: xd.Name}
	for _, m := range xd.Materials {
		doc.Materials = append(doc.Materials, MaterialDef(m))
	}
	for _, u := range xd.Units {
		doc.Units = append(doc.Units, UnitDef{
			Name:    u.Name,
			Inputs:  u.Inputs,
			Outputs: u.Outputs,
			Cost:    u.Cost,
		})
	}
	for _, e := range xd.Exclusions {
		doc.Exclusions = append(doc.Exclusions, e.Units)
	}
	return doc, nil
}

func (xmlFormat) Export(doc *Document) ([]byte, error) {
	xd := xmlDoc{Name: doc.Name}
	for _, m := range doc.Materials {
		xd.Materials = append(xd.Materials, xmlMaterial(m))
	}
	for _, u := range doc.Units {
		xd.Units = append(xd.Units, xmlUnit{
			Name:    u.Name,
			Cost:    u.Cost,
			Inputs:  u.Inputs,
			Outputs: u.Outputs,
		})
	}
	for _, group := range doc.Exclusions {
		xd.Exclusions = append(xd.Exclusions, xmlExclusion{Units: group})
	}

	data, err := xml.MarshalIndent(xd, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "export xml")
	}
	return append([]byte(xml.Header), append(data, '\n')...), nil
}

type xmlDoc struct {
	XMLName    xml.Name       `xml:"process"`
	Name       string         `xml:"name,attr,omitempty"`
	Materials  []xmlMaterial  `xml:"material"`
	Units      []xmlUnit      `xml:"unit"`
	Exclusions []xmlExclusion `xml:"exclusion"`
}

type xmlMaterial struct {
	Name   string  `xml:"name,attr"`
	Kind   string  `xml:"kind,attr,omitempty"`
	Cap    int     `xml:"cap,attr,omitempty"`
	Demand float64 `xml:"demand,attr,omitempty"`
}

type xmlUnit struct {
	Name    string   `xml:"name,attr"`
	Cost    float64  `xml:"cost,attr,omitempty"`
	Inputs  []string `xml:"input"`
	Outputs []string `xml:"output"`
}

type xmlExclusion struct {
	Units []string `xml:"unit"`
}

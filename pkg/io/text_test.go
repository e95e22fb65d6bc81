package io

import (
	"slices"
	"strings"
	"testing"

	"github.com/pgraphlab/pgraph/pkg/errors"
)

func TestTextParse(t *testing.T) {
	input := `
# seven-unit example plant
problem plant

raw e g j k l
product a cap=1 demand=2.5

unit o1 cost=34: b f -> a
unit o6 cost=74: k -> h c   # inline comment
unit source: -> b
exclusive o6 o1
`
	doc, err := Text.Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if doc.Name != "plant" {
		t.Errorf("name = %q, want plant", doc.Name)
	}
	if len(doc.Materials) != 6 {
		t.Fatalf("materials = %d, want 6", len(doc.Materials))
	}
	product := doc.Materials[5]
	if product.Name != "a" || product.Kind != KindProduct || product.Cap != 1 || product.Demand != 2.5 {
		t.Errorf("product a parsed as %+v", product)
	}

	if len(doc.Units) != 3 {
		t.Fatalf("units = %d, want 3", len(doc.Units))
	}
	o1 := doc.Units[0]
	if o1.Name != "o1" || o1.Cost != 34 {
		t.Errorf("o1 parsed as %+v", o1)
	}
	if !slices.Equal(o1.Inputs, []string{"b", "f"}) || !slices.Equal(o1.Outputs, []string{"a"}) {
		t.Errorf("o1 flows parsed as %v -> %v", o1.Inputs, o1.Outputs)
	}
	if src := doc.Units[2]; len(src.Inputs) != 0 || !slices.Equal(src.Outputs, []string{"b"}) {
		t.Errorf("source flows parsed as %v -> %v", src.Inputs, src.Outputs)
	}

	if len(doc.Exclusions) != 1 || !slices.Equal(doc.Exclusions[0], []string{"o6", "o1"}) {
		t.Errorf("exclusions parsed as %v", doc.Exclusions)
	}
}

func TestTextParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  string
	}{
		{"unknown directive", "frobnicate a b", "line 1"},
		{"duplicate problem", "problem a\nproblem b", "line 2"},
		{"missing colon", "unit o1 b -> a", "line 1"},
		{"missing arrow", "unit o1: b a", "line 1"},
		{"bad cost", "unit o1 cost=abc: b -> a", "line 1"},
		{"unknown unit option", "unit o1 speed=3: b -> a", "line 1"},
		{"bad cap", "product a cap=1.5", "line 1"},
		{"unknown material option", "raw e size=2", "line 1"},
		{"empty raw line", "raw cap=2", "line 1"},
		{"name with comma", "raw e,g", "line 1"},
		{"lonely exclusive", "unit o1: b -> a\nexclusive o1", "line 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Text.Parse([]byte(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Fatalf("Parse = %v, want INVALID_FORMAT", err)
			}
			if !strings.Contains(err.Error(), tt.line) {
				t.Errorf("error %q does not name %s", err, tt.line)
			}
		})
	}
}

func TestTextExport(t *testing.T) {
	data, err := Text.Export(plantDoc())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	got := string(data)

	for _, want := range []string{
		"problem plant\n",
		"raw e g j k l\n",
		"product a cap=1\n",
		"unit o1 cost=34: b f -> a\n",
		"unit o6 cost=74: k -> h c\n",
		"exclusive o6 o7\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("export missing %q:\n%s", want, got)
		}
	}
}

func TestTextExportRejectsUnwritableNames(t *testing.T) {
	doc := &Document{
		Units: []UnitDef{{Name: "mixer unit", Outputs: []string{"a"}}},
	}
	if _, err := Text.Export(doc); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Export = %v, want UNSUPPORTED", err)
	}
}

package render

import (
	"context"
	"strings"
	"testing"

	"github.com/pgraphlab/pgraph/pkg/errors"
	"github.com/pgraphlab/pgraph/pkg/pns"
)

// testProblem builds a small two-route power plant: steam comes from a
// boiler or a scrap burner, the turbine needs steam either way.
func testProblem(t *testing.T) (p *pns.Problem, units map[string]*pns.Unit) {
	t.Helper()

	water := pns.NewMaterial("water")
	scrap := pns.NewMaterial("scrap")
	steam := pns.NewMaterial("steam")
	power := pns.NewMaterial("power")

	units = map[string]*pns.Unit{
		"boiler":  pns.NewUnit("boiler", pns.NewSet(water), pns.NewSet(steam)),
		"burner":  pns.NewUnit("burner", pns.NewSet(scrap), pns.NewSet(steam)),
		"turbine": pns.NewUnit("turbine", pns.NewSet(steam), pns.NewSet(power)),
	}

	p = pns.NewProblem("plant")
	for _, u := range units {
		if err := p.AddUnit(u); err != nil {
			t.Fatalf("AddUnit(%s): %v", u, err)
		}
	}
	if err := p.MarkRaw(water, scrap); err != nil {
		t.Fatalf("MarkRaw: %v", err)
	}
	if err := p.MarkProduct(power); err != nil {
		t.Fatalf("MarkProduct: %v", err)
	}
	if err := p.FinalizeData(); err != nil {
		t.Fatalf("FinalizeData: %v", err)
	}
	return p, units
}

func TestToDOT(t *testing.T) {
	p, _ := testProblem(t)
	dot := ToDOT(p, Options{})

	for _, want := range []string{
		`"m:water" [label="water", shape=ellipse, style=filled, fillcolor=lightblue];`,
		`"m:power" [label="power", shape=ellipse, style=filled, fillcolor=palegreen, peripheries=2];`,
		`"m:steam" [label="steam", shape=ellipse, style=filled, fillcolor=white];`,
		`"u:boiler" [label="boiler", shape=box, style="rounded,filled", fillcolor=white];`,
		`"m:water" -> "u:boiler";`,
		`"u:boiler" -> "m:steam";`,
		`"m:steam" -> "u:turbine";`,
		`"u:turbine" -> "m:power";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s:\n%s", want, dot)
		}
	}
}

func TestToDOTHighlight(t *testing.T) {
	p, units := testProblem(t)
	dot := ToDOT(p, Options{
		Highlight: pns.NewSet(units["boiler"], units["turbine"]),
	})

	burnerLine := lineWith(dot, `"u:burner" [`)
	if !strings.Contains(burnerLine, "color=grey") {
		t.Errorf("burner should be dimmed: %s", burnerLine)
	}
	scrapLine := lineWith(dot, `"m:scrap" [`)
	if !strings.Contains(scrapLine, "color=grey") {
		t.Errorf("scrap should be dimmed: %s", scrapLine)
	}
	boilerLine := lineWith(dot, `"u:boiler" [`)
	if strings.Contains(boilerLine, "color=grey") {
		t.Errorf("boiler should not be dimmed: %s", boilerLine)
	}
	if !strings.Contains(dot, `"m:scrap" -> "u:burner" [color=grey];`) {
		t.Errorf("edges of dimmed units should be grey:\n%s", dot)
	}
}

func TestToDOTCosts(t *testing.T) {
	p, units := testProblem(t)
	costs := pns.NewTable[float64]()
	costs.Set(units["boiler"], 12.5)

	dot := ToDOT(p, Options{Costs: costs})
	if !strings.Contains(dot, `cost 12.5`) {
		t.Errorf("boiler label should carry its cost:\n%s", dot)
	}
	turbineLine := lineWith(dot, `"u:turbine" [`)
	if strings.Contains(turbineLine, "cost") {
		t.Errorf("turbine has no cost entry: %s", turbineLine)
	}
}

func TestToDOTRankdir(t *testing.T) {
	p, _ := testProblem(t)
	if dot := ToDOT(p, Options{}); !strings.Contains(dot, "rankdir=TB;") {
		t.Error("default rankdir should be TB")
	}
	if dot := ToDOT(p, Options{Rankdir: "LR"}); !strings.Contains(dot, "rankdir=LR;") {
		t.Error("rankdir option not applied")
	}
}

func TestRenderDispatch(t *testing.T) {
	p, _ := testProblem(t)

	out, err := Render(context.Background(), p, "dot", Options{})
	if err != nil {
		t.Fatalf("Render(dot): %v", err)
	}
	if string(out) != ToDOT(p, Options{}) {
		t.Error("Render(dot) should match ToDOT")
	}

	if _, err := Render(context.Background(), p, "gif", Options{}); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Render(gif) = %v, want UNSUPPORTED", err)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	svg := []byte(`<?xml version="1.0"?>` + "\n" +
		`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg">` +
		`<g></g></svg>`)

	got := string(normalizeViewBox(svg))
	if !strings.Contains(got, `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("viewBox not normalized: %s", got)
	}
	if !strings.Contains(got, `width="100" height="50"`) {
		t.Errorf("dimensions not rewritten: %s", got)
	}

	plain := []byte("<svg><g/></svg>")
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should pass through unchanged")
	}
}

// lineWith returns the first line of s containing substr.
func lineWith(s, substr string) string {
	for _, line := range strings.Split(s, "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	return ""
}

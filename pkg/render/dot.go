package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/pgraphlab/pgraph/pkg/errors"
	"github.com/pgraphlab/pgraph/pkg/pns"
)

// Options configures network diagram rendering.
type Options struct {
	// Highlight marks a solution structure: its units and the materials
	// they touch are drawn solid, everything else is dimmed.
	Highlight *pns.Set[*pns.Unit]
	// Costs labels each unit with its cost.
	Costs *pns.Table[float64]
	// Rankdir sets the layout direction. Empty means "TB".
	Rankdir string
	// Scale multiplies the PNG resolution. Zero means 2.0.
	Scale float64
}

// Render produces a diagram of the problem in the named format: "dot",
// "svg", "png", or "pdf".
func Render(ctx context.Context, p *pns.Problem, format string, opts Options) ([]byte, error) {
	dot := ToDOT(p, opts)
	switch format {
	case "dot":
		return []byte(dot), nil
	case "svg":
		return RenderSVG(ctx, dot)
	case "png":
		scale := opts.Scale
		if scale == 0 {
			scale = 2.0
		}
		return RenderPNG(ctx, dot, scale)
	case "pdf":
		return RenderPDF(ctx, dot)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported,
			"unknown render format %q (available: dot, svg, png, pdf)", format)
	}
}

// ToDOT converts a problem to Graphviz DOT. Materials are ellipses,
// raw materials and products with distinct fills, operating units are
// boxes. Edges run from input materials into units and from units to
// their output materials, so the drawing reads like the process flows.
func ToDOT(p *pns.Problem, opts Options) string {
	rankdir := opts.Rankdir
	if rankdir == "" {
		rankdir = "TB"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.35;\n")
	buf.WriteString("\n")

	touched := touchedMaterials(p, opts.Highlight)
	for _, m := range byName(p.Materials().Items()) {
		dimmed := opts.Highlight != nil && !touched.Contains(m)
		attrs := materialAttrs(p, m, dimmed)
		fmt.Fprintf(&buf, "  %q [%s];\n", materialID(m), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, u := range byName(p.Units().Items()) {
		dimmed := opts.Highlight != nil && !opts.Highlight.Contains(u)
		attrs := unitAttrs(unitLabel(u, opts.Costs), dimmed)
		fmt.Fprintf(&buf, "  %q [%s];\n", unitID(u), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, u := range byName(p.Units().Items()) {
		dimmed := opts.Highlight != nil && !opts.Highlight.Contains(u)
		for _, m := range byName(u.Inputs().Items()) {
			writeEdge(&buf, materialID(m), unitID(u), dimmed)
		}
		for _, m := range byName(u.Outputs().Items()) {
			writeEdge(&buf, unitID(u), materialID(m), dimmed)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// materialID and unitID keep the two node namespaces apart; a material
// and a unit may share a display name.
func materialID(m *pns.Material) string { return "m:" + m.Name() }
func unitID(u *pns.Unit) string         { return "u:" + u.Name() }

func materialAttrs(p *pns.Problem, m *pns.Material, dimmed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", m.Name()), "shape=ellipse", "style=filled"}
	if dimmed {
		return append(attrs, dimAttrs...)
	}
	switch {
	case p.RawMaterials().Contains(m):
		attrs = append(attrs, "fillcolor=lightblue")
	case p.Products().Contains(m):
		attrs = append(attrs, "fillcolor=palegreen", "peripheries=2")
	default:
		attrs = append(attrs, "fillcolor=white")
	}
	return attrs
}

func unitAttrs(label string, dimmed bool) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		"shape=box",
		"style=\"rounded,filled\"",
	}
	if dimmed {
		return append(attrs, dimAttrs...)
	}
	return append(attrs, "fillcolor=white")
}

var dimAttrs = []string{"fillcolor=white", "color=grey", "fontcolor=grey"}

func unitLabel(u *pns.Unit, costs *pns.Table[float64]) string {
	if cost, ok := costs.Get(u); ok {
		return fmt.Sprintf("%s\ncost %g", u.Name(), cost)
	}
	return u.Name()
}

func writeEdge(buf *bytes.Buffer, from, to string, dimmed bool) {
	if dimmed {
		fmt.Fprintf(buf, "  %q -> %q [color=grey];\n", from, to)
		return
	}
	fmt.Fprintf(buf, "  %q -> %q;\n", from, to)
}

// touchedMaterials collects the materials consumed or produced by the
// highlighted units.
func touchedMaterials(p *pns.Problem, highlight *pns.Set[*pns.Unit]) *pns.Set[*pns.Material] {
	touched := pns.NewSet[*pns.Material]()
	if highlight == nil {
		return touched
	}
	for _, u := range highlight.Items() {
		touched.UnionWith(u.Inputs())
		touched.UnionWith(u.Outputs())
	}
	return touched
}

func byName[N pns.Node](items []N) []N {
	sort.Slice(items, func(i, j int) bool { return items[i].Name() < items[j].Name() })
	return items
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [ToPDF] or [ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return ToPNG(svg, scale)
}

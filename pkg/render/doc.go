// Package render draws process networks as diagrams.
//
// # Overview
//
// This package turns a finalized [pns.Problem] into a picture: materials
// as ellipses, operating units as boxes, and edges following the flow
// from input materials through units to their outputs. Raw materials
// and products get distinct fills so the network's boundary is visible
// at a glance, and a solution structure can be highlighted against the
// dimmed rest of the maximal structure.
//
// # Formats
//
// [ToDOT] builds the Graphviz DOT text; [RenderSVG] lays it out with
// the embedded Graphviz engine. The [Render] entry point dispatches on
// a format name:
//
//	svg, err := render.Render(ctx, problem, "svg", render.Options{
//	    Highlight: solution,
//	    Costs:     costs,
//	})
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats
// using the external rsvg-convert tool (from librsvg). DOT and SVG
// rendering have no external requirements.
//
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [pns.Problem]: github.com/pgraphlab/pgraph/pkg/pns.Problem
package render

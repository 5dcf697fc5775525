// Package render holds the output backends for loopchart's diagrams.
//
// # Backends
//
//   - [plotsink]: gonum/plot. Draws both diagrams and encodes PNG, SVG and PDF
//     natively. This is the default.
//   - [nodelink]: Graphviz. Draws the decision loop only, with nodes pinned at
//     their diagram positions.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). The Graphviz backend uses
// them for PDF output.
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [plotsink]: github.com/matzehuels/loopchart/pkg/render/plotsink
// [nodelink]: github.com/matzehuels/loopchart/pkg/render/nodelink
package render

// Package nodelink renders the decision loop through Graphviz.
//
// # Overview
//
// This is the alternative backend to gonum/plot. Nodes become filled boxes at
// their diagram positions and connections carry the computed Bézier
// connectors as explicit edge splines, so Graphviz (layout nop2, the
// equivalent of neato -n2) draws the same geometry as the plot backend
// instead of routing its own curves. Spokes are dotted, headless lines.
//
// # Usage
//
//	lay, _ := diagram.AgenticLoop().Layout()
//	dot := nodelink.ToDOT(lay, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, nodelink.PNGScale)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and PNG
// rendering. PDF conversion requires librsvg (rsvg-convert).
package nodelink

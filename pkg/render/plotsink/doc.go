// Package plotsink draws loopchart's diagrams with gonum/plot.
//
// [RenderLoop] draws a [diagram.LoopLayout]: filled node boxes, dotted spokes
// to the hub, the sampled connector curves and their arrows, and the white
// box labels, on hidden axes spanning the layout's range. [RenderBarChart]
// draws a [diagram.BarChart] as grouped horizontal bars with a nominal
// category axis, value labels and a legend above the plot.
//
// Both encode through [plot.Plot.WriterTo], so PNG, SVG and PDF need no
// external tools:
//
//	lay, _ := diagram.AgenticLoop().Layout()
//	png, err := plotsink.RenderLoop(lay, plotsink.FormatPNG, plotsink.WithSize(600, 600))
//
// Colors are given as hex strings and parsed with go-colorful.
package plotsink

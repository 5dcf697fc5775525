// Package pkg provides the core libraries for loopchart.
//
// # Overview
//
// loopchart draws two fixed illustrations: the Agentic AI Decision Loop, a
// circular process diagram joined by curved Bézier connectors, and a grouped
// horizontal bar chart comparing traditional automation with agentic AI.
//
// The pkg directory is organized as:
//
//  1. [geom] - Points, quadratic Bézier curves and connector geometry
//  2. [diagram] - The diagram data and its layout in diagram units
//  3. [render] - Backends: gonum/plot sinks, graphviz node-link, rsvg conversion
//  4. [pipeline] - Orchestration (validate → render → cache)
//  5. [cache], [observability], [errors], [buildinfo] - Supporting infrastructure
//
// # Architecture
//
//	diagram.AgenticLoop() / diagram.AutomationComparison()
//	         ↓
//	    [diagram] Layout (connectors sampled via [geom])
//	         ↓
//	    [render/plotsink] or [render/nodelink]
//	         ↓
//	    PNG/SVG/PDF/JSON output
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Diagram: diagram.KindLoop,
//	    Formats: []string{"png", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("agentic_ai_loop.png", result.Artifacts["png"], 0o644)
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/loopchart/pkg/geom
// [diagram]: https://pkg.go.dev/github.com/matzehuels/loopchart/pkg/diagram
// [render]: https://pkg.go.dev/github.com/matzehuels/loopchart/pkg/render
// [render/plotsink]: https://pkg.go.dev/github.com/matzehuels/loopchart/pkg/render/plotsink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/loopchart/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/loopchart/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/loopchart/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/loopchart/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/loopchart/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/loopchart/pkg/buildinfo
package pkg

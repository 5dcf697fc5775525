package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/loopchart/pkg/diagram"
	"github.com/matzehuels/loopchart/pkg/errors"
	"github.com/matzehuels/loopchart/pkg/geom"
	"github.com/matzehuels/loopchart/pkg/render/nodelink"
	"github.com/matzehuels/loopchart/pkg/render/plotsink"
)

// Render produces a single artifact without touching the cache.
// opts must have passed ValidateAndSetDefaults.
func Render(ctx context.Context, opts Options, format string) ([]byte, error) {
	switch opts.Diagram {
	case diagram.KindLoop:
		lay, err := diagram.AgenticLoop().Layout(geom.WithSamples(opts.Samples))
		if err != nil {
			return nil, err
		}
		return renderLoop(ctx, lay, opts, format)
	case diagram.KindChart:
		return renderChart(diagram.AutomationComparison(), opts, format)
	}
	return nil, errors.New(errors.ErrCodeInvalidDiagram, "unknown diagram %q", opts.Diagram)
}

// renderLoop dispatches on backend. JSON output is the computed layout and
// does not depend on the backend.
func renderLoop(ctx context.Context, lay diagram.LoopLayout, opts Options, format string) ([]byte, error) {
	if format == FormatJSON {
		return marshal(lay)
	}

	switch opts.Backend {
	case BackendPlot:
		return plotsink.RenderLoop(lay, format, plotsink.WithSize(opts.Width, opts.Height))
	case BackendGraphviz:
		dot := nodelink.ToDOT(lay, nodelink.Options{})
		switch format {
		case FormatSVG:
			return nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			return nodelink.RenderPNG(ctx, dot, nodelink.PNGScale)
		case FormatPDF:
			return nodelink.RenderPDF(ctx, dot)
		}
		return nil, fmt.Errorf("unsupported graphviz format: %s", format)
	}
	return nil, errors.New(errors.ErrCodeInvalidBackend, "unknown backend %q", opts.Backend)
}

func renderChart(c diagram.BarChart, opts Options, format string) ([]byte, error) {
	if format == FormatJSON {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return marshal(c)
	}

	switch opts.Backend {
	case BackendPlot:
		return plotsink.RenderBarChart(c, format, plotsink.WithSize(opts.Width, opts.Height))
	case BackendGraphviz:
		return nil, errors.New(errors.ErrCodeUnsupported, "the graphviz backend only draws the loop diagram")
	}
	return nil, errors.New(errors.ErrCodeInvalidBackend, "unknown backend %q", opts.Backend)
}

func marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize: %w", err)
	}
	return append(data, '\n'), nil
}

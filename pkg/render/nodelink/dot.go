package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/loopchart/pkg/diagram"
	"github.com/matzehuels/loopchart/pkg/geom"
	"github.com/matzehuels/loopchart/pkg/render"
)

// DefaultScale is the number of inches per diagram unit.
const DefaultScale = 0.75

// PNGScale is the resolution multiplier for PNG output.
const PNGScale = 2.0

const pointsPerInch = 72

// Options configures DOT generation.
type Options struct {
	// Scale converts diagram units to Graphviz inches. Zero means [DefaultScale].
	Scale float64
}

// ToDOT converts a loop layout to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// The graph is fully positioned: nodes carry their diagram centers and every
// edge carries its spline, so Graphviz draws it as given (layout nop2) instead
// of routing it. Link splines are the connector curves raised to cubics and
// stopped short of the target by the arrow length; the arrowhead covers the
// rest. Spokes are straight, dotted and headless.
func ToDOT(l diagram.LoopLayout, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	pt := func(p geom.Point) string {
		k := scale * pointsPerInch
		return num((p.X-l.Min)*k) + "," + num((p.Y-l.Min)*k)
	}
	side := num((l.Max - l.Min) * scale * pointsPerInch)
	st := l.Style

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=nop2;\n")
	fmt.Fprintf(&buf, "  bb=\"0,0,%s,%s\";\n", side, side)
	buf.WriteString("  outputorder=edgesfirst;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", hexColor(st.Background))
	fmt.Fprintf(&buf, "  label=%q;\n", l.Title)
	buf.WriteString("  labelloc=t;\n")
	buf.WriteString("  fontsize=20;\n")
	fmt.Fprintf(&buf, "  node [shape=box, style=filled, fixedsize=true, fontcolor=%q, color=%q, penwidth=%s, fontsize=%s];\n",
		hexColor(st.TextColor), hexColor(st.BorderColor), num(st.BorderWidth), num(st.FontSize*1.5))
	buf.WriteString("\n")

	for _, b := range l.Boxes {
		attrs := []string{
			fmt.Sprintf("pos=%q", pt(b.Rect.Center)),
			fmt.Sprintf("width=%s", num(b.Rect.W*scale)),
			fmt.Sprintf("height=%s", num(b.Rect.H*scale)),
			fmt.Sprintf("fillcolor=%q", hexColor(b.Color)),
			"label=" + htmlLabel(b),
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", b.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, s := range l.Spokes {
		line := geom.QuadBez{P0: s.A, P1: geom.Midpoint(s.A, s.B), P2: s.B}.Cubic()
		fmt.Fprintf(&buf, "  %q -> %q [dir=none, style=dotted, color=%q, penwidth=%s, pos=%q];\n",
			s.From, s.To, hexColor(st.SpokeColor), num(st.SpokeWidth), splinePos(line, pt))
	}
	for _, e := range l.Links {
		bez := geom.QuadBez{P0: e.Curve.Start(), P1: e.Curve.Control, P2: e.Curve.End()}
		shaft := bez.TrimEnd(e.Arrow.Tip.Dist(e.Arrow.Tail)).Cubic()
		pos := "e," + pt(e.Arrow.Tip) + " " + splinePos(shaft, pt)
		fmt.Fprintf(&buf, "  %q -> %q [color=%q, penwidth=%s, pos=%q];\n",
			e.From, e.To, hexColor(st.ArrowColor), num(st.ArrowWidth), pos)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// splinePos formats c as the four control points of a Graphviz edge spline.
func splinePos(c geom.CubicBez, pt func(geom.Point) string) string {
	return strings.Join([]string{pt(c.P0), pt(c.P1), pt(c.P2), pt(c.P3)}, " ")
}

func htmlLabel(b diagram.Box) string {
	var sb strings.Builder
	sb.WriteString("<")
	for _, line := range b.Lines {
		text := html.EscapeString(line.Text)
		if line.Bold {
			text = "<B>" + text + "</B>"
		}
		sb.WriteString(text)
		sb.WriteString(`<BR ALIGN="LEFT"/>`)
	}
	sb.WriteString(">")
	return sb.String()
}

// hexColor normalizes s to #rrggbb, falling back to black for unparsable input.
func hexColor(s string) string {
	c, err := colorful.Hex(s)
	if err != nil {
		return "#000000"
	}
	return c.Hex()
}

// num formats f with at most four decimals.
func num(f float64) string {
	return strconv.FormatFloat(math.Round(f*1e4)/1e4, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	buf, err := renderDOT(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(buf), nil
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
// Without librsvg it falls back to Graphviz's built-in rasterizer at 1x.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	if !render.CanConvert() {
		return renderDOT(ctx, dot, graphviz.PNG)
	}
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NOP2)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
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

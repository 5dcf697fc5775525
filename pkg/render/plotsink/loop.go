package plotsink

import (
	"image/color"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/recorder"

	"github.com/matzehuels/loopchart/pkg/diagram"
	"github.com/matzehuels/loopchart/pkg/geom"
)

// Default loop canvas, in points.
const (
	LoopWidth  = 800
	LoopHeight = 800
)

// Arrowhead size in diagram units.
const (
	headLength    = 0.3
	headHalfWidth = 0.15
)

var (
	sansFont = font.Font{Typeface: "Liberation", Variant: "Sans"}
	boldFont = font.Font{Typeface: "Liberation", Variant: "Sans", Weight: xfont.WeightBold}
)

// RenderLoop draws the loop layout and encodes it as format.
func RenderLoop(l diagram.LoopLayout, format string, opts ...Option) ([]byte, error) {
	r := newRenderer(LoopWidth, LoopHeight, opts...)
	p, err := loopPlot(l)
	if err != nil {
		return nil, err
	}
	equalAspect(p, r.width, r.height)
	return r.encode(p, format)
}

// equalAspect widens the x or y range, keeping it centered, so that a diagram
// unit spans the same length on both axes of a w×h canvas. The title and any
// padding are measured against the canvas first.
func equalAspect(p *plot.Plot, w, h vg.Length) {
	da := p.DataCanvas(draw.NewCanvas(&recorder.Canvas{}, w, h))
	dw, dh := float64(da.Max.X-da.Min.X), float64(da.Max.Y-da.Min.Y)
	if dw <= 0 || dh <= 0 {
		return
	}
	xs, ys := p.X.Max-p.X.Min, p.Y.Max-p.Y.Min
	if xs/dw > ys/dh {
		pad := (xs*dh/dw - ys) / 2
		p.Y.Min, p.Y.Max = p.Y.Min-pad, p.Y.Max+pad
	} else {
		pad := (ys*dw/dh - xs) / 2
		p.X.Min, p.X.Max = p.X.Min-pad, p.X.Max+pad
	}
}

// loopPlot adds, bottom to top: boxes, spokes, curves, arrows and labels.
func loopPlot(l diagram.LoopLayout) (*plot.Plot, error) {
	st := l.Style
	bg, err := hexColor(st.Background)
	if err != nil {
		return nil, err
	}
	border, err := hexColor(st.BorderColor)
	if err != nil {
		return nil, err
	}
	arrow, err := hexColor(st.ArrowColor)
	if err != nil {
		return nil, err
	}
	spoke, err := hexColor(st.SpokeColor)
	if err != nil {
		return nil, err
	}
	textColor, err := hexColor(st.TextColor)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = l.Title
	p.Title.TextStyle.Font = font.From(boldFont, 16)
	p.BackgroundColor = bg
	p.HideAxes()

	for _, b := range l.Boxes {
		fill, err := hexColor(b.Color)
		if err != nil {
			return nil, err
		}
		c := b.Rect.Corners()
		poly, err := plotter.NewPolygon(xys(c[:]...))
		if err != nil {
			return nil, err
		}
		poly.Color = fill
		poly.LineStyle = draw.LineStyle{Color: border, Width: vg.Points(st.BorderWidth)}
		p.Add(poly)
	}

	for _, s := range l.Spokes {
		line, err := plotter.NewLine(xys(s.A, s.B))
		if err != nil {
			return nil, err
		}
		line.LineStyle = draw.LineStyle{
			Color:  spoke,
			Width:  vg.Points(st.SpokeWidth),
			Dashes: []vg.Length{vg.Points(1), vg.Points(st.SpokeWidth * 2)},
		}
		p.Add(line)
	}

	for _, link := range l.Links {
		if err := addConnector(p, link.Connector, arrow, vg.Points(st.ArrowWidth)); err != nil {
			return nil, err
		}
	}

	for _, b := range l.Boxes {
		labels, err := boxLabels(b, textColor, font.Length(st.FontSize))
		if err != nil {
			return nil, err
		}
		p.Add(labels)
	}

	p.X.Min, p.X.Max = l.Min, l.Max
	p.Y.Min, p.Y.Max = l.Min, l.Max
	return p, nil
}

func addConnector(p *plot.Plot, c geom.Connector, col color.Color, width vg.Length) error {
	style := draw.LineStyle{Color: col, Width: width}

	curve, err := plotter.NewLine(xys(c.Curve.Samples...))
	if err != nil {
		return err
	}
	curve.LineStyle = style

	shaft, err := plotter.NewLine(xys(c.Arrow.Tail, c.Arrow.Tip))
	if err != nil {
		return err
	}
	shaft.LineStyle = style

	h := c.Arrow.Head(headLength, headHalfWidth)
	head, err := plotter.NewPolygon(xys(h[:]...))
	if err != nil {
		return err
	}
	head.Color = col
	head.LineStyle = draw.LineStyle{Color: col, Width: vg.Points(1)}

	p.Add(curve, shaft, head)
	return nil
}

func boxLabels(b diagram.Box, col color.Color, size font.Length) (*plotter.Labels, error) {
	data := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(b.Lines)),
		Labels: make([]string, len(b.Lines)),
	}
	for i, line := range b.Lines {
		data.XYs[i] = plotter.XY{X: line.At.X, Y: line.At.Y}
		data.Labels[i] = line.Text
	}

	labels, err := plotter.NewLabels(data)
	if err != nil {
		return nil, err
	}
	for i, line := range b.Lines {
		f := sansFont
		if line.Bold {
			f = boldFont
		}
		labels.TextStyle[i].Font = font.From(f, size)
		labels.TextStyle[i].Color = col
		labels.TextStyle[i].XAlign = draw.XLeft
		labels.TextStyle[i].YAlign = draw.YCenter
	}
	return labels, nil
}

func xys(pts ...geom.Point) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		out[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	return out
}

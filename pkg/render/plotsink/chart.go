package plotsink

import (
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/loopchart/pkg/diagram"
)

// Default chart canvas, in points.
const (
	ChartWidth  = 700
	ChartHeight = 420
)

// chartMargin approximates the vertical space taken by title, legend and
// the X axis.
const chartMargin = 110

// RenderBarChart draws c as grouped horizontal bars and encodes it as format.
func RenderBarChart(c diagram.BarChart, format string, opts ...Option) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	r := newRenderer(ChartWidth, ChartHeight, opts...)
	p, err := chartPlot(c, r.barWidth(len(c.Categories), len(c.Series)))
	if err != nil {
		return nil, err
	}
	return r.encode(p, format)
}

// barWidth splits each category slot between the series, leaving one bar
// of spacing between groups.
func (r renderer) barWidth(categories, series int) vg.Length {
	slot := (r.height - chartMargin) / vg.Length(categories)
	return max(slot/vg.Length(series+1), 2)
}

func chartPlot(c diagram.BarChart, width vg.Length) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = c.Title
	p.Title.TextStyle.Font = font.From(boldFont, 14)
	p.Title.Padding = vg.Points(24)
	p.X.Label.Text = c.XTitle

	n := len(c.Series)
	for i, s := range c.Series {
		fill, err := hexColor(s.Color)
		if err != nil {
			return nil, err
		}
		bars, err := plotter.NewBarChart(plotter.Values(s.Values), width)
		if err != nil {
			return nil, err
		}
		bars.Horizontal = true
		bars.Color = fill
		bars.LineStyle.Width = 0
		// first series on top within its group
		bars.Offset = width * vg.Length(float64(n-1)/2-float64(i))
		p.Add(bars)
		p.Legend.Add(s.Name, bars)

		if c.ShowValues {
			labels, err := valueLabels(s, bars.Offset)
			if err != nil {
				return nil, err
			}
			p.Add(labels)
		}
	}

	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.YOffs = vg.Points(22)
	p.NominalY(c.Categories...)

	p.X.Min, p.X.Max = c.Min, c.Max
	p.Y.Min, p.Y.Max = -0.5, float64(len(c.Categories))-0.5
	return p, nil
}

func valueLabels(s diagram.Series, offset vg.Length) (*plotter.Labels, error) {
	data := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(s.Values)),
		Labels: make([]string, len(s.Values)),
	}
	for i, v := range s.Values {
		data.XYs[i] = plotter.XY{X: v, Y: float64(i)}
		data.Labels[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}

	labels, err := plotter.NewLabels(data)
	if err != nil {
		return nil, err
	}
	labels.Offset = vg.Point{X: vg.Points(3), Y: offset}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Font = font.From(sansFont, 9)
		labels.TextStyle[i].XAlign = draw.XLeft
		labels.TextStyle[i].YAlign = draw.YCenter
	}
	return labels, nil
}

package plotsink

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

const (
	FormatPNG = "png"
	FormatSVG = "svg"
	FormatPDF = "pdf"
)

// Formats lists the encodings this backend produces.
func Formats() []string { return []string{FormatPNG, FormatSVG, FormatPDF} }

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	width, height vg.Length
}

// WithSize sets the canvas size in points. Non-positive values keep the
// default for that dimension.
func WithSize(w, h float64) Option {
	return func(r *renderer) {
		if w > 0 {
			r.width = vg.Points(w)
		}
		if h > 0 {
			r.height = vg.Points(h)
		}
	}
}

func newRenderer(w, h float64, opts ...Option) renderer {
	r := renderer{width: vg.Points(w), height: vg.Points(h)}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r renderer) encode(p *plot.Plot, format string) ([]byte, error) {
	switch format {
	case FormatPNG, FormatSVG, FormatPDF:
	default:
		return nil, fmt.Errorf("plotsink: unsupported format %q", format)
	}

	wt, err := p.WriterTo(r.width, r.height, format)
	if err != nil {
		return nil, fmt.Errorf("plotsink: %s canvas: %w", format, err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("plotsink: encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// hexColor parses s, reporting the offending value on failure.
func hexColor(s string) (color.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("plotsink: color %q: %w", s, err)
	}
	return c, nil
}

package diagram

import (
	"github.com/matzehuels/loopchart/pkg/geom"
)

// TextLine is one line of a box label.
type TextLine struct {
	Text string     `json:"text"`
	Bold bool       `json:"bold,omitempty"`
	At   geom.Point `json:"at"` // left end of the baseline-centered line
}

// Box is a positioned, labelled node.
type Box struct {
	ID    string     `json:"id"`
	Rect  geom.Rect  `json:"rect"`
	Color string     `json:"color"`
	Lines []TextLine `json:"lines"`
}

// Link is a drawn connection.
type Link struct {
	From string `json:"from"`
	To   string `json:"to"`
	geom.Connector
}

// Spoke is a dotted line from an outer node to the hub.
type Spoke struct {
	From string     `json:"from"`
	To   string     `json:"to"`
	A    geom.Point `json:"a"`
	B    geom.Point `json:"b"`
}

// LoopLayout is everything a backend needs to draw the loop, in diagram units.
type LoopLayout struct {
	Title  string    `json:"title"`
	Min    float64   `json:"min"`
	Max    float64   `json:"max"`
	Style  LoopStyle `json:"style"`
	Boxes  []Box     `json:"boxes"`
	Links  []Link    `json:"links"`
	Spokes []Spoke   `json:"spokes"`
}

const (
	bullet      = "• "
	textPadding = 0.1
)

// Layout validates the loop and computes its geometry. opts are passed to
// [geom.Connect] for every connection.
func (l Loop) Layout(opts ...geom.Option) (LoopLayout, error) {
	if err := l.Validate(); err != nil {
		return LoopLayout{}, err
	}

	out := LoopLayout{
		Title: l.Title,
		Min:   l.Min,
		Max:   l.Max,
		Style: l.Style,
	}

	for _, c := range l.Connections {
		from, _ := l.Node(c.From)
		to, _ := l.Node(c.To)
		out.Links = append(out.Links, Link{
			From:      c.From,
			To:        c.To,
			Connector: geom.Connect(from.Pos, to.Pos, l.Center, opts...),
		})
	}

	if hub, ok := l.Node(l.Hub); ok {
		for _, n := range l.Nodes {
			if n.ID == hub.ID {
				continue
			}
			out.Spokes = append(out.Spokes, Spoke{From: n.ID, To: hub.ID, A: n.Pos, B: hub.Pos})
		}
	}

	for _, n := range l.Nodes {
		rect := geom.Rect{Center: n.Pos, W: n.W, H: n.H}
		out.Boxes = append(out.Boxes, Box{
			ID:    n.ID,
			Rect:  rect,
			Color: n.Color,
			Lines: labelLines(n, rect, l.Style.LineHeight),
		})
	}
	return out, nil
}

// labelLines stacks the bold title and the bulleted items, vertically centered
// on the box and left aligned inside it.
func labelLines(n Node, r geom.Rect, lh float64) []TextLine {
	texts := make([]string, 0, len(n.Items)+1)
	texts = append(texts, n.Title)
	for _, it := range n.Items {
		texts = append(texts, bullet+it)
	}

	x := r.Min().X + textPadding
	top := r.Center.Y + lh*float64(len(texts)-1)/2

	lines := make([]TextLine, len(texts))
	for i, s := range texts {
		lines[i] = TextLine{
			Text: s,
			Bold: i == 0,
			At:   geom.Pt(x, top-lh*float64(i)),
		}
	}
	return lines
}

package diagram

import (
	"github.com/matzehuels/loopchart/pkg/errors"
	"github.com/matzehuels/loopchart/pkg/geom"
)

// Node is a box on the loop diagram.
type Node struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Items []string   `json:"items"`
	Pos   geom.Point `json:"pos"`
	W     float64    `json:"w"`
	H     float64    `json:"h"`
	Color string     `json:"color"`
}

// Connection is a directed arrow between two nodes.
type Connection struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// LoopStyle holds the drawing constants of the loop diagram.
type LoopStyle struct {
	ArrowColor  string  `json:"arrow_color"`
	ArrowWidth  float64 `json:"arrow_width"`
	SpokeColor  string  `json:"spoke_color"`
	SpokeWidth  float64 `json:"spoke_width"`
	BorderColor string  `json:"border_color"`
	BorderWidth float64 `json:"border_width"`
	TextColor   string  `json:"text_color"`
	FontSize    float64 `json:"font_size"`
	LineHeight  float64 `json:"line_height"` // diagram units
	Background  string  `json:"background"`
}

// Loop is the circular process-flow diagram.
type Loop struct {
	Title       string       `json:"title"`
	Nodes       []Node       `json:"nodes"`
	Connections []Connection `json:"connections"`
	Hub         string       `json:"hub"`
	Center      geom.Point   `json:"center"`
	Min, Max    float64      `json:"-"`
	Style       LoopStyle    `json:"style"`
}

const boxWidth = 2.2

// AgenticLoop returns the Agentic AI Decision Loop.
func AgenticLoop() Loop {
	return Loop{
		Title: "Agentic AI Decision Loop",
		Nodes: []Node{
			node("Perceive", "PERCEIVE/MONITOR", 0, 4.5, 1.4, "#1FB8CD",
				"Collect real-time data", "Monitor production metrics", "Track resource utilization"),
			node("Analyze", "ANALYZE", 5, 0, 1.6, "#2E8B57",
				"Detect anomalies", "Identify bottlenecks", "Pattern recognition", "Root cause analysis"),
			node("Decide", "DECIDE", 0, -4.5, 1.6, "#1FB8CD",
				"Evaluate options", "Assess impact", "Prioritize actions", "Select optimal solution"),
			node("Act", "ACT", -5, 0, 1.4, "#2E8B57",
				"Assign tasks", "Reallocate resources", "Trigger workflows", "Execute actions"),
			node("Learn", "LEARN", 0, 0, 1.2, "#5D878F",
				"Measure outcomes", "Update models", "Improve decisions"),
		},
		Connections: []Connection{
			{"Perceive", "Analyze"},
			{"Analyze", "Decide"},
			{"Decide", "Act"},
			{"Act", "Perceive"},
		},
		Hub:    "Learn",
		Center: geom.Origin,
		Min:    -7,
		Max:    7,
		Style: LoopStyle{
			ArrowColor:  "#333333",
			ArrowWidth:  4,
			SpokeColor:  "#888888",
			SpokeWidth:  3,
			BorderColor: "#FFFFFF",
			BorderWidth: 3,
			TextColor:   "#FFFFFF",
			FontSize:    7,
			LineHeight:  0.21,
			Background:  "#FFFFFF",
		},
	}
}

func node(id, title string, x, y, h float64, color string, items ...string) Node {
	return Node{ID: id, Title: title, Items: items, Pos: geom.Pt(x, y), W: boxWidth, H: h, Color: color}
}

// Kind returns [KindLoop].
func (Loop) Kind() Kind { return KindLoop }

// Node looks up a node by id.
func (l Loop) Node(id string) (Node, bool) {
	for _, n := range l.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Validate checks that ids are unique and that every connection and the hub
// refer to declared nodes.
func (l Loop) Validate() error {
	seen := make(map[string]bool, len(l.Nodes))
	for _, n := range l.Nodes {
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidDiagram, "node with empty id")
		}
		if seen[n.ID] {
			return errors.New(errors.ErrCodeInvalidDiagram, "duplicate node %q", n.ID)
		}
		if n.W <= 0 || n.H <= 0 {
			return errors.New(errors.ErrCodeInvalidDiagram, "node %q has non-positive size", n.ID)
		}
		seen[n.ID] = true
	}
	for _, c := range l.Connections {
		if !seen[c.From] || !seen[c.To] {
			return errors.New(errors.ErrCodeInvalidDiagram, "connection %s->%s references an unknown node", c.From, c.To)
		}
		if c.From == c.To {
			return errors.New(errors.ErrCodeInvalidDiagram, "connection %s->%s is a self loop", c.From, c.To)
		}
	}
	if l.Hub != "" && !seen[l.Hub] {
		return errors.New(errors.ErrCodeInvalidDiagram, "hub %q is not a node", l.Hub)
	}
	if l.Min >= l.Max {
		return errors.New(errors.ErrCodeInvalidDiagram, "empty axis range [%g, %g]", l.Min, l.Max)
	}
	return nil
}

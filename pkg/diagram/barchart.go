package diagram

import (
	"github.com/matzehuels/loopchart/pkg/errors"
)

// Series is one group member of a grouped bar chart.
type Series struct {
	Name   string    `json:"name"`
	Color  string    `json:"color"`
	Values []float64 `json:"values"`
}

// BarChart is a grouped horizontal bar chart. Categories run bottom to top in
// slice order; each series contributes one bar per category.
type BarChart struct {
	Title      string   `json:"title"`
	XTitle     string   `json:"x_title"`
	Categories []string `json:"categories"`
	Series     []Series `json:"series"`
	Min        float64  `json:"min"`
	Max        float64  `json:"max"`
	ShowValues bool     `json:"show_values"`
}

// AutomationComparison returns the Traditional Automation vs Agentic AI chart.
func AutomationComparison() BarChart {
	return BarChart{
		Title:  "Traditional Automation vs Agentic AI",
		XTitle: "Score (0-100)",
		Categories: []string{
			"Autonomy Level",
			"Decision Making",
			"Adaptability",
			"Learning Capability",
			"Scope of Actions",
			"Human Intervention",
		},
		Series: []Series{
			{Name: "Traditional Auto", Color: "#5D878F", Values: []float64{35, 25, 20, 15, 40, 85}},
			{Name: "Agentic AI", Color: "#2E8B57", Values: []float64{85, 90, 88, 92, 87, 25}},
		},
		Min:        0,
		Max:        100,
		ShowValues: true,
	}
}

// Kind returns [KindChart].
func (BarChart) Kind() Kind { return KindChart }

// Validate checks that every series has one value per category, inside
// [Min, Max].
func (c BarChart) Validate() error {
	if len(c.Categories) == 0 {
		return errors.New(errors.ErrCodeInvalidDiagram, "bar chart has no categories")
	}
	if len(c.Series) == 0 {
		return errors.New(errors.ErrCodeInvalidDiagram, "bar chart has no series")
	}
	if c.Min >= c.Max {
		return errors.New(errors.ErrCodeInvalidDiagram, "empty value range [%g, %g]", c.Min, c.Max)
	}
	for _, s := range c.Series {
		if len(s.Values) != len(c.Categories) {
			return errors.New(errors.ErrCodeInvalidDiagram,
				"series %q has %d values for %d categories", s.Name, len(s.Values), len(c.Categories))
		}
		for i, v := range s.Values {
			if v < c.Min || v > c.Max {
				return errors.New(errors.ErrCodeInvalidDiagram,
					"series %q value %g for %q is outside [%g, %g]", s.Name, v, c.Categories[i], c.Min, c.Max)
			}
		}
	}
	return nil
}

// Value returns series s's value for category i.
func (c BarChart) Value(s, i int) float64 {
	return c.Series[s].Values[i]
}

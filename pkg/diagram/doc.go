// Package diagram holds the two built-in illustrations and derives their
// drawable geometry.
//
// [AgenticLoop] is the circular decision loop: four outer stages joined by
// curved arrows, and a LEARN hub joined to each stage by a dotted spoke.
// [Loop.Layout] turns it into boxes, connectors and spokes in diagram units
// using [geom.Connect].
//
// [AutomationComparison] is the grouped horizontal bar chart comparing
// traditional automation with agentic AI across six categories.
//
// Both are fixed; nothing in this package reads external input.
package diagram

import (
	"fmt"
	"strings"

	"github.com/matzehuels/loopchart/pkg/errors"
)

// Kind names a built-in diagram.
type Kind string

const (
	KindLoop  Kind = "loop"
	KindChart Kind = "chart"
)

// Kinds lists the built-in diagrams in render order.
func Kinds() []Kind { return []Kind{KindLoop, KindChart} }

// ParseKind validates a diagram name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidDiagram, "unknown diagram %q (must be 'loop' or 'chart')", s)
}

// Basename returns the default output file name (without extension).
func (k Kind) Basename() string {
	switch k {
	case KindLoop:
		return "agentic_ai_loop"
	case KindChart:
		return "chart"
	}
	return string(k)
}

// Title returns the diagram's display title.
func (k Kind) Title() string {
	switch k {
	case KindLoop:
		return AgenticLoop().Title
	case KindChart:
		return AutomationComparison().Title
	}
	return fmt.Sprint(k)
}

// Diagram is implemented by the built-in [Loop] and [BarChart].
type Diagram interface {
	Kind() Kind
	Validate() error
}

// Lookup returns the built-in diagram for k.
func Lookup(k Kind) (Diagram, error) {
	switch k {
	case KindLoop:
		return AgenticLoop(), nil
	case KindChart:
		return AutomationComparison(), nil
	}
	return nil, errors.New(errors.ErrCodeNotFound, "no diagram named %q", k)
}

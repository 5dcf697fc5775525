package diagram

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/loopchart/pkg/errors"
	"github.com/matzehuels/loopchart/pkg/geom"
)

func TestAgenticLoopValid(t *testing.T) {
	l := AgenticLoop()
	require.NoError(t, l.Validate())

	assert.Len(t, l.Nodes, 5)
	assert.Len(t, l.Connections, 4)
	assert.Equal(t, "Learn", l.Hub)

	perceive, ok := l.Node("Perceive")
	require.True(t, ok)
	assert.Equal(t, geom.Pt(0, 4.5), perceive.Pos)
	assert.Equal(t, 2.2, perceive.W)
	assert.Equal(t, 1.4, perceive.H)
}

func TestLoopValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(l *Loop)
	}{
		{"unknown connection target", func(l *Loop) { l.Connections = append(l.Connections, Connection{"Act", "Nowhere"}) }},
		{"self loop", func(l *Loop) { l.Connections = append(l.Connections, Connection{"Act", "Act"}) }},
		{"duplicate node", func(l *Loop) { l.Nodes = append(l.Nodes, l.Nodes[0]) }},
		{"empty id", func(l *Loop) { l.Nodes[0].ID = "" }},
		{"unknown hub", func(l *Loop) { l.Hub = "Sleep" }},
		{"zero size", func(l *Loop) { l.Nodes[1].H = 0 }},
		{"empty range", func(l *Loop) { l.Min, l.Max = 7, -7 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := AgenticLoop()
			tt.mutate(&l)
			err := l.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidDiagram), "code = %v", errors.GetCode(err))
		})
	}
}

func TestLoopLayout(t *testing.T) {
	l := AgenticLoop()
	lay, err := l.Layout()
	require.NoError(t, err)

	require.Len(t, lay.Links, 4)
	require.Len(t, lay.Spokes, 4)
	require.Len(t, lay.Boxes, 5)

	first := lay.Links[0]
	assert.Equal(t, "Perceive", first.From)
	assert.Equal(t, "Analyze", first.To)
	assert.InDelta(t, 3.25, first.Curve.Control.X, 1e-9)
	assert.InDelta(t, 2.925, first.Curve.Control.Y, 1e-9)

	for _, link := range lay.Links {
		from, _ := l.Node(link.From)
		to, _ := l.Node(link.To)
		assert.Equal(t, from.Pos, link.Curve.Start())
		assert.Equal(t, to.Pos, link.Curve.End())
		assert.Equal(t, to.Pos, link.Arrow.Tip)
		// every cycle edge bows away from the center
		assert.Greater(t, link.Curve.Control.Len(), geom.Midpoint(from.Pos, to.Pos).Len())
	}

	for _, s := range lay.Spokes {
		assert.Equal(t, "Learn", s.To)
		assert.Equal(t, geom.Origin, s.B)
	}
}

func TestLoopLayoutSamples(t *testing.T) {
	lay, err := AgenticLoop().Layout(geom.WithSamples(9))
	require.NoError(t, err)
	for _, link := range lay.Links {
		assert.Len(t, link.Curve.Samples, 9)
	}
}

func TestLoopLayoutInvalid(t *testing.T) {
	l := AgenticLoop()
	l.Hub = "missing"
	_, err := l.Layout()
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidDiagram))
}

func TestLabelLines(t *testing.T) {
	lay, err := AgenticLoop().Layout()
	require.NoError(t, err)

	for _, b := range lay.Boxes {
		n, _ := AgenticLoop().Node(b.ID)
		require.Len(t, b.Lines, len(n.Items)+1, b.ID)
		assert.Equal(t, n.Title, b.Lines[0].Text)
		assert.True(t, b.Lines[0].Bold)
		for i, item := range n.Items {
			assert.Equal(t, "• "+item, b.Lines[i+1].Text)
			assert.False(t, b.Lines[i+1].Bold)
		}

		// lines are centered on the box and stay inside it
		first, last := b.Lines[0].At, b.Lines[len(b.Lines)-1].At
		assert.InDelta(t, b.Rect.Center.Y, (first.Y+last.Y)/2, 1e-9)
		for _, line := range b.Lines {
			assert.True(t, b.Rect.Contains(line.At), "%s line %q at %v outside %v", b.ID, line.Text, line.At, b.Rect)
		}
	}
}

func TestLoopLayoutJSON(t *testing.T) {
	lay, err := AgenticLoop().Layout()
	require.NoError(t, err)

	data, err := json.Marshal(lay)
	require.NoError(t, err)

	var decoded struct {
		Links []struct {
			From  string `json:"from"`
			Curve struct {
				Samples []geom.Point `json:"samples"`
			} `json:"curve"`
			Arrow struct {
				Angle float64 `json:"angle"`
			} `json:"arrow"`
		} `json:"links"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Links, 4)
	assert.Equal(t, "Perceive", decoded.Links[0].From)
	assert.Len(t, decoded.Links[0].Curve.Samples, 3)
	assert.False(t, math.IsNaN(decoded.Links[0].Arrow.Angle))
}

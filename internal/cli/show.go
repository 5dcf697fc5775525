package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/loopchart/pkg/diagram"
	"github.com/matzehuels/loopchart/pkg/geom"
	"github.com/matzehuels/loopchart/pkg/pipeline"
)

// showCommand creates the show command that prints diagram data as tables.
func (c *CLI) showCommand() *cobra.Command {
	var samples int

	cmd := &cobra.Command{
		Use:       "show [loop|chart]",
		Short:     "Print connector geometry or chart data",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(diagram.KindLoop), string(diagram.KindChart)},
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := diagram.ParseKind(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("samples") {
				samples = c.config().Samples
			}
			return showDiagram(cmd.OutOrStdout(), k, samples)
		},
	}

	cmd.Flags().IntVar(&samples, "samples", 0, "points sampled along each connector (min 2)")
	return cmd
}

func showDiagram(w io.Writer, k diagram.Kind, samples int) error {
	switch k {
	case diagram.KindChart:
		chart := diagram.AutomationComparison()
		if err := chart.Validate(); err != nil {
			return err
		}
		fmt.Fprintln(w, StyleTitle.Render(chart.Title))
		fmt.Fprintln(w, chartTable(chart))
	default:
		if err := pipeline.ValidateSamples(samples); err != nil {
			return err
		}
		lay, err := diagram.AgenticLoop().Layout(geom.WithSamples(samples))
		if err != nil {
			return err
		}
		fmt.Fprintln(w, StyleTitle.Render(lay.Title))
		fmt.Fprintln(w, loopTable(lay))
		printDetail(w, "%d boxes, %d connectors, %d samples each", len(lay.Boxes), len(lay.Links), samples)
	}
	return nil
}

// loopTable lists each connector's curve endpoints, control point and arrow.
func loopTable(lay diagram.LoopLayout) string {
	rows := make([][]string, 0, len(lay.Links))
	for _, l := range lay.Links {
		rows = append(rows, []string{
			l.From,
			l.To,
			formatPoint(l.Curve.Start()),
			formatPoint(l.Curve.Control),
			formatPoint(l.Curve.End()),
			formatPoint(l.Arrow.Tail),
			strconv.FormatFloat(l.Arrow.Angle*180/math.Pi, 'f', 1, 64) + "°",
		})
	}
	return newTable(rows, "From", "To", "Start", "Control", "End", "Arrow tail", "Heading")
}

// chartTable lists one row per category with a column per series.
func chartTable(c diagram.BarChart) string {
	headers := []string{"Category"}
	for _, s := range c.Series {
		headers = append(headers, s.Name)
	}
	rows := make([][]string, 0, len(c.Categories))
	for i, cat := range c.Categories {
		row := []string{cat}
		for s := range c.Series {
			row = append(row, strconv.FormatFloat(c.Value(s, i), 'f', -1, 64))
		}
		rows = append(rows, row)
	}
	return newTable(rows, headers...)
}

func newTable(rows [][]string, headers ...string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if col == 0 {
				return cellStyle.Foreground(colorWhite)
			}
			return cellStyle
		})
	return t.Render()
}

func formatPoint(p geom.Point) string {
	return fmt.Sprintf("(%.3f, %.3f)", p.X, p.Y)
}

package summary

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
)

// PlotPNG renders a stacked bar chart with one bar per sample, split by
// lineage abundance. Samples with no abundance at all are left out.
func PlotPNG(w io.Writer, t Table) error {
	bars := make([]chart.StackedBar, 0, len(t.Rows))
	for _, row := range t.Rows {
		values := make([]chart.Value, 0, len(row.Cells))
		for i, cell := range row.Cells {
			if !cell.Valid || cell.Float64 <= 0 {
				continue
			}
			values = append(values, chart.Value{
				Label: t.Lineages[i],
				Value: cell.Float64,
			})
		}
		if len(values) == 0 {
			continue
		}

		bars = append(bars, chart.StackedBar{
			Name:   row.Sample,
			Values: values,
		})
	}

	if len(bars) == 0 {
		return fmt.Errorf("PlotPNG: no sample has a nonzero lineage abundance")
	}

	width := 100 + 80*len(bars)
	if width < 512 {
		width = 512
	}

	graph := chart.StackedBarChart{
		Title:  "Lineage abundance",
		Width:  width,
		Height: 512,
		XAxis:  chart.Shown(),
		YAxis:  chart.Shown(),
		Bars:   bars,
	}

	return graph.Render(chart.PNG, w)
}

package summary

import (
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/montanaflynn/stats"
)

// LineageStats summarizes one lineage column across all samples. Missing
// cells count as zero.
type LineageStats struct {
	Lineage  string
	Detected int
	Mean     float64
	Max      float64
}

// Describe computes LineageStats for every column of t, in column order.
func Describe(t Table) ([]LineageStats, error) {
	out := make([]LineageStats, 0, len(t.Lineages))
	if len(t.Rows) == 0 {
		return out, nil
	}

	for i, name := range t.Lineages {
		data := make(stats.Float64Data, 0, len(t.Rows))
		detected := 0
		for _, row := range t.Rows {
			v := 0.0
			if row.Cells[i].Valid {
				v = row.Cells[i].Float64
			}
			if v > 0 {
				detected++
			}
			data = append(data, v)
		}

		mean, err := data.Mean()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		max, err := data.Max()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		out = append(out, LineageStats{
			Lineage:  name,
			Detected: detected,
			Mean:     mean,
			Max:      max,
		})
	}

	return out, nil
}

// CoverageHistogram prints a text histogram of sample coverage to w.
func CoverageHistogram(w io.Writer, t Table, bins int) error {
	if len(t.Rows) == 0 {
		return nil
	}

	coverage := make(stats.Float64Data, 0, len(t.Rows))
	for _, row := range t.Rows {
		coverage = append(coverage, row.Coverage)
	}

	min, err := coverage.Min()
	if err != nil {
		return err
	}
	max, err := coverage.Max()
	if err != nil {
		return err
	}

	// The histogram needs a nonzero range to place values into bins
	if min == max {
		_, err := fmt.Fprintf(w, "All %d samples have %s%% coverage\n", len(coverage), FormatValue(min))
		return err
	}

	hist := histogram.Hist(bins, coverage)
	return histogram.Fprint(w, hist, histogram.Linear(40))
}

// Package summary reshapes parsed lineage abundances into a wide table with
// one row per sample and one column per lineage, and writes that table out.
package summary

import (
	"sort"
	"strings"

	"github.com/carbocation/freyjasummary/lineage"
	"gopkg.in/guregu/null.v3"
)

const (
	SampleColumn   = "Sample"
	CoverageColumn = "Coverage (%)"
)

// Row is one sample. Cells is parallel to Table.Lineages.
type Row struct {
	Sample   string
	Coverage float64
	Cells    []null.Float
}

// Table is the wide summary. Its schema (Lineages) is fixed when the table
// is created, and every row has exactly one cell per lineage. An invalid
// cell means the sample had no abundance for that lineage.
type Table struct {
	Lineages []string
	Rows     []Row

	column map[string]int
}

func newTable(lineages []string) Table {
	t := Table{
		Lineages: lineages,
		column:   make(map[string]int, len(lineages)),
	}
	for i, l := range lineages {
		t.column[l] = i
	}

	return t
}

// Columns orders lineage names for output: case-insensitively, with names
// that differ only by case kept in byte order.
func Columns(lineages []string) []string {
	out := make([]string, len(lineages))
	copy(out, lineages)

	sort.Strings(out)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})

	return out
}

// Build creates the summary table for res. Lineages a sample has no
// abundance for are set to zero.
func Build(res lineage.Result) Table {
	t := BuildSparse(res)
	t.FillMissing(0)

	return t
}

// BuildSparse is like Build but leaves absent lineages as invalid cells.
//
// If a sample lists the same lineage twice, the later abundance is kept.
func BuildSparse(res lineage.Result) Table {
	t := newTable(Columns(universe(res)))

	rows := make([]Row, 0, len(res.Samples))
	for _, s := range res.Samples {
		row := Row{
			Sample:   s.ID,
			Coverage: s.Coverage,
			Cells:    make([]null.Float, len(t.Lineages)),
		}
		for _, a := range s.Lineages {
			row.Cells[t.column[a.Lineage]] = null.FloatFrom(a.Value)
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Sample < rows[j].Sample
	})
	t.Rows = rows

	return t
}

// universe is res.Lineages plus anything a sample mentions that is missing
// from it, so that hand-built results still get a column for every lineage.
func universe(res lineage.Result) []string {
	seen := make(map[string]struct{}, len(res.Lineages))
	out := make([]string, 0, len(res.Lineages))

	add := func(l string) {
		if _, exists := seen[l]; exists {
			return
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}

	for _, l := range res.Lineages {
		add(l)
	}
	for _, s := range res.Samples {
		for _, a := range s.Lineages {
			add(a.Lineage)
		}
	}

	return out
}

// FillMissing sets every invalid cell to v.
func (t Table) FillMissing(v float64) {
	for _, row := range t.Rows {
		for i := range row.Cells {
			if !row.Cells[i].Valid {
				row.Cells[i] = null.FloatFrom(v)
			}
		}
	}
}

// Header returns the column names in output order.
func (t Table) Header() []string {
	return append([]string{SampleColumn, CoverageColumn}, t.Lineages...)
}

// Row returns the row for sample, if present.
func (t Table) Row(sample string) (Row, bool) {
	for _, row := range t.Rows {
		if row.Sample == sample {
			return row, true
		}
	}

	return Row{}, false
}

// Cell returns the (possibly invalid) cell for sample and lineage. The bool
// reports whether both the row and the column exist.
func (t Table) Cell(sample, lineageName string) (null.Float, bool) {
	row, ok := t.Row(sample)
	if !ok {
		return null.Float{}, false
	}

	i, ok := t.column[lineageName]
	if !ok {
		return null.Float{}, false
	}

	return row.Cells[i], true
}

// Value returns the abundance of lineageName in sample, or zero if the sample
// has none. The bool reports whether both the sample and the lineage are in
// the table.
func (t Table) Value(sample, lineageName string) (float64, bool) {
	cell, ok := t.Cell(sample, lineageName)
	if !cell.Valid {
		return 0, ok
	}

	return cell.Float64, ok
}

// Pairs returns the non-zero abundances of sample in column order.
func (t Table) Pairs(sample string) []lineage.Abundance {
	row, ok := t.Row(sample)
	if !ok {
		return nil
	}

	out := make([]lineage.Abundance, 0)
	for i, cell := range row.Cells {
		if cell.Valid && cell.Float64 != 0 {
			out = append(out, lineage.Abundance{Lineage: t.Lineages[i], Value: cell.Float64})
		}
	}

	return out
}

// Equal reports whether two tables have the same schema, rows and cells.
func Equal(a, b Table) bool {
	if len(a.Lineages) != len(b.Lineages) || len(a.Rows) != len(b.Rows) {
		return false
	}
	for i := range a.Lineages {
		if a.Lineages[i] != b.Lineages[i] {
			return false
		}
	}
	for i := range a.Rows {
		ra, rb := a.Rows[i], b.Rows[i]
		if ra.Sample != rb.Sample || ra.Coverage != rb.Coverage || len(ra.Cells) != len(rb.Cells) {
			return false
		}
		for j := range ra.Cells {
			if ra.Cells[j].Valid != rb.Cells[j].Valid || ra.Cells[j].Float64 != rb.Cells[j].Float64 {
				return false
			}
		}
	}

	return true
}

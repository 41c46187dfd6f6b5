package summary

import (
	"encoding/csv"
	"io"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// LongRow is one (sample, lineage) observation of the tidy layout.
type LongRow struct {
	Sample    string  `csv:"Sample"`
	Coverage  float64 `csv:"Coverage (%)"`
	Lineage   string  `csv:"Lineage"`
	Abundance float64 `csv:"Abundance"`
}

// LongRows flattens t to one row per valid, non-zero cell, in table order.
func LongRows(t Table) []*LongRow {
	out := make([]*LongRow, 0)
	for _, row := range t.Rows {
		for i, cell := range row.Cells {
			if !cell.Valid || cell.Float64 == 0 {
				continue
			}
			out = append(out, &LongRow{
				Sample:    row.Sample,
				Coverage:  row.Coverage,
				Lineage:   t.Lineages[i],
				Abundance: cell.Float64,
			})
		}
	}

	return out
}

// WriteLong writes t in the tidy layout, which suits `bq load` and most
// plotting libraries better than the wide table.
func WriteLong(w io.Writer, t Table, delim rune) error {
	cw := csv.NewWriter(w)
	if delim != 0 {
		cw.Comma = delim
	}

	if err := gocsv.MarshalCSV(LongRows(t), gocsv.NewSafeCSVWriter(cw)); err != nil {
		return pfx.Err(err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

package summary

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/carbocation/freyjasummary"
	"gopkg.in/guregu/null.v3"
)

// ReadTable reads a wide table previously written by WriteDelimited. The
// delimiter is detected from the content. Empty cells become invalid.
func ReadTable(r io.Reader) (Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Table{}, err
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = freyjasummary.DetermineDelimiter(bytes.NewReader(data), ',')

	records, err := cr.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("ReadTable: %w", err)
	}
	if len(records) == 0 {
		return Table{}, fmt.Errorf("ReadTable: no header")
	}

	header := records[0]
	if len(header) < 2 || header[0] != SampleColumn || header[1] != CoverageColumn {
		return Table{}, fmt.Errorf("ReadTable: expected the header to start with %q and %q, found %q", SampleColumn, CoverageColumn, header)
	}

	t := newTable(header[2:])
	t.Rows = make([]Row, 0, len(records)-1)

	for i, record := range records[1:] {
		coverage, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return Table{}, fmt.Errorf("ReadTable: line %d: coverage: %w", i+2, err)
		}

		row := Row{
			Sample:   record[0],
			Coverage: coverage,
			Cells:    make([]null.Float, len(t.Lineages)),
		}
		for j, text := range record[2:] {
			if text == "" {
				continue
			}
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return Table{}, fmt.Errorf("ReadTable: line %d: %s: %w", i+2, t.Lineages[j], err)
			}
			row.Cells[j] = null.FloatFrom(v)
		}

		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

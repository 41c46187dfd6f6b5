package summary

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteOptions controls WriteDelimited.
type WriteOptions struct {
	// Delimiter separates fields. Zero means a comma.
	Delimiter rune

	// Missing is written for invalid cells.
	Missing string
}

// DelimiterForType maps an output file extension to its field delimiter.
func DelimiterForType(ext string) (rune, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "csv":
		return ',', nil
	case "tsv", "tab", "txt":
		return '\t', nil
	}

	return 0, fmt.Errorf("unsupported output type %q: expected csv, tsv, tab or txt", ext)
}

// FormatValue writes v as a plain decimal with no more digits than needed.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Records returns the header followed by one record per row.
func (t Table) Records(missing string) [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, t.Header())

	for _, row := range t.Rows {
		record := make([]string, 0, len(row.Cells)+2)
		record = append(record, row.Sample, FormatValue(row.Coverage))
		for _, cell := range row.Cells {
			if !cell.Valid {
				record = append(record, missing)
				continue
			}
			record = append(record, FormatValue(cell.Float64))
		}
		out = append(out, record)
	}

	return out
}

// WriteDelimited writes the header and every row of t to w.
func WriteDelimited(w io.Writer, t Table, opts WriteOptions) error {
	cw := csv.NewWriter(w)
	if opts.Delimiter != 0 {
		cw.Comma = opts.Delimiter
	}

	if err := cw.WriteAll(t.Records(opts.Missing)); err != nil {
		return fmt.Errorf("WriteDelimited: %w", err)
	}

	return nil
}

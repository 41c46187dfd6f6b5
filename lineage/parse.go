// Package lineage parses the aggregated report produced by `freyja aggregate`
// into per-sample lineage abundances.
//
// Each data line of the report has six tab-separated columns: sample,
// summarized, lineages, abundances, resid and coverage. Only sample, coverage
// and the summarized column are used. The summarized column is a printed list
// of (lineage, abundance) tuples, for example
//
//	[('Omicron', 0.912345678), ('Delta', 0.05432101)]
//
// which is neither JSON nor CSV, so it is taken apart with the rewrite rules
// in NameRules and TruncateAbundance.
package lineage

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

const (
	// NumFields is the number of tab-separated columns in each line.
	NumFields = 6

	colSample     = 0
	colSummarized = 1
	colCoverage   = 5

	// Separates tuples within the summarized column.
	tupleSeparator = "), ("

	// Separates lineage from abundance within one tuple.
	pairSeparator = ", "
)

// Abundance is the simplified abundance of one lineage within a sample.
type Abundance struct {
	Lineage string
	Value   float64
}

// Sample is one parsed line of the aggregated report.
type Sample struct {
	ID       string
	Coverage float64
	Lineages []Abundance
}

// Result holds every sample in the order first seen, and the sorted set of
// every lineage seen in any of them.
type Result struct {
	Samples  []Sample
	Lineages []string
}

// Parse reads the whole aggregated report from r and parses it.
func Parse(r io.Reader) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, err
	}

	return ParseBytes(data)
}

// ParseBytes parses an aggregated report held in memory. The first line is
// a header and is skipped. Parsing stops at the first malformed line; the
// returned error names its 1-based line number and wraps one of the Err*
// values.
//
// If a sample ID appears more than once, the later line replaces the earlier
// one but keeps its position. Lineages from the replaced line stay in
// Result.Lineages.
func ParseBytes(data []byte) (Result, error) {
	lines := strings.Split(string(data), "\n")
	if last := len(lines) - 1; lines[last] == "" {
		lines = lines[:last]
	}

	acc := newAccumulator()
	for i, line := range lines {
		if i == 0 {
			continue
		}

		sample, err := ParseLine(strings.TrimSuffix(line, "\r"))
		if err != nil {
			return Result{}, fmt.Errorf("line %d: %w", i+1, err)
		}
		acc.add(sample)
	}

	return acc.result(), nil
}

// ParseLine parses a single data line.
func ParseLine(line string) (Sample, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != NumFields {
		return Sample{}, fmt.Errorf("%w: expected %d tab-separated fields, found %d", ErrMalformedRow, NumFields, len(fields))
	}

	coverage, err := SimplifyCoverage(fields[colCoverage])
	if err != nil {
		return Sample{}, err
	}

	lineages, err := ParseSummarized(fields[colSummarized])
	if err != nil {
		return Sample{}, err
	}

	return Sample{
		ID:       SampleID(fields[colSample]),
		Coverage: coverage,
		Lineages: lineages,
	}, nil
}

// ParseSummarized splits the summarized column into its tuples and
// simplifies the lineage name and abundance of each.
func ParseSummarized(blob string) ([]Abundance, error) {
	fragments := strings.Split(blob, tupleSeparator)

	out := make([]Abundance, 0, len(fragments))
	for _, fragment := range fragments {
		parts := strings.Split(fragment, pairSeparator)
		if len(parts) != 2 {
			return nil, &FieldError{Kind: ErrMalformedLineageEntry, Text: fragment}
		}

		value, err := SimplifyAbundance(parts[1])
		if err != nil {
			return nil, err
		}

		out = append(out, Abundance{
			Lineage: NormalizeLineage(parts[0]),
			Value:   value,
		})
	}

	return out, nil
}

// accumulator owns the state that builds up while lines are parsed.
type accumulator struct {
	samples  []Sample
	position map[string]int
	lineages map[string]struct{}
}

func newAccumulator() *accumulator {
	return &accumulator{
		position: make(map[string]int),
		lineages: make(map[string]struct{}),
	}
}

func (a *accumulator) add(s Sample) {
	for _, l := range s.Lineages {
		a.lineages[l.Lineage] = struct{}{}
	}

	if i, exists := a.position[s.ID]; exists {
		a.samples[i] = s
		return
	}

	a.position[s.ID] = len(a.samples)
	a.samples = append(a.samples, s)
}

func (a *accumulator) result() Result {
	lineages := make([]string, 0, len(a.lineages))
	for l := range a.lineages {
		lineages = append(lineages, l)
	}
	sort.Strings(lineages)

	return Result{
		Samples:  a.samples,
		Lineages: lineages,
	}
}

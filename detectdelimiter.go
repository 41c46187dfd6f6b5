package freyjasummary

import (
	"bytes"
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// Number of lines handed to the detector.
const delimiterSampleLines = 15

// Delimiters that a summary table may plausibly use, in order of preference.
// The detector also reports characters like '.' that happen to appear on every
// line of a numeric table, so these take priority over its other candidates.
var preferredDelimiters = []rune{'\t', ',', ';', '|'}

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file. If the detector finds no
// candidate, the first preferred delimiter present in the header is used, and
// failing that, fallback.
func DetermineDelimiter(r io.Reader, fallback rune) rune {
	sample := sampleLines(r, delimiterSampleLines)

	d := detector.New()
	delimiters := d.DetectDelimiter(bytes.NewReader(sample), '"')

	seen := make(map[rune]struct{}, len(delimiters))
	for _, delim := range delimiters {
		if delim == "" {
			continue
		}
		seen[[]rune(delim)[0]] = struct{}{}
	}

	for _, preferred := range preferredDelimiters {
		if _, exists := seen[preferred]; exists {
			return preferred
		}
	}

	if len(delimiters) > 0 && delimiters[0] != "" {
		return []rune(delimiters[0])[0]
	}

	header := sample
	if i := bytes.IndexByte(sample, '\n'); i >= 0 {
		header = sample[:i]
	}
	for _, preferred := range preferredDelimiters {
		if bytes.ContainsRune(header, preferred) {
			return preferred
		}
	}

	return fallback
}

// sampleLines returns up to n lines from r, without a trailing newline, so
// that the detector never sees an empty final line.
func sampleLines(r io.Reader, n int) []byte {
	data, _ := io.ReadAll(io.LimitReader(r, 1<<20))

	lines := bytes.SplitN(data, []byte("\n"), n+1)
	if len(lines) > n {
		lines = lines[:n]
	}
	for len(lines) > 0 && len(bytes.TrimSpace(lines[len(lines)-1])) == 0 {
		lines = lines[:len(lines)-1]
	}

	return bytes.Join(lines, []byte("\n"))
}

package lineage

import (
	"regexp"
	"strconv"
	"strings"
)

// NameRule is one rewrite step of lineage name normalization. Every match of
// Pattern is replaced with the empty string.
type NameRule struct {
	Name    string
	Pattern *regexp.Regexp
}

// Apply runs the rule against s.
func (r NameRule) Apply(s string) string {
	return r.Pattern.ReplaceAllString(s, "")
}

// The steps of lineage name normalization. Order matters: StripAfterSpace
// would destroy the annotation that StripAnnotation needs to see.
var (
	StripTupleOpen  = NameRule{"strip leading [('", regexp.MustCompile(`^\[\('`)}
	StripQuoteComma = NameRule{"strip leading ',", regexp.MustCompile(`^',`)}
	StripAnnotation = NameRule{"strip [...)]' annotation", regexp.MustCompile(` \[.*\)\]'`)}
	StripAfterSpace = NameRule{"strip from first space", regexp.MustCompile(` ..*$`)}
	StripLeadQuote  = NameRule{"strip leading quote", regexp.MustCompile(`^'`)}
	StripTrailQuote = NameRule{"strip trailing quote", regexp.MustCompile(`'$`)}
)

// NameRules is the ordered normalization pipeline.
var NameRules = []NameRule{
	StripTupleOpen,
	StripQuoteComma,
	StripAnnotation,
	StripAfterSpace,
	StripLeadQuote,
	StripTrailQuote,
}

// NormalizeLineage reduces the raw lineage text of one summarized tuple, such
// as "[('BA.5'", to its bare name.
func NormalizeLineage(raw string) string {
	for _, rule := range NameRules {
		raw = rule.Apply(raw)
	}

	return raw
}

var (
	abundanceOne   = regexp.MustCompile(`1\.00(\d)+\D*`)
	abundanceTrunc = regexp.MustCompile(`0\.(\d)(\d)(\d)(\d)(\d)+\D*`)
)

// TruncateAbundance rewrites raw abundance text without parsing it: anything
// starting "1.00" and followed by digits becomes "1.00", and a fraction with
// five or more digits keeps only the first four (".9876" from
// "0.987654321"). Trailing non-digits such as the ")]" that closes the last
// tuple are consumed by either rewrite.
func TruncateAbundance(raw string) string {
	raw = abundanceOne.ReplaceAllString(raw, "1.00")
	raw = abundanceTrunc.ReplaceAllString(raw, ".${1}${2}${3}${4}")

	return raw
}

// SimplifyAbundance truncates and parses raw abundance text.
func SimplifyAbundance(raw string) (float64, error) {
	text := strings.TrimSpace(TruncateAbundance(raw))

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, &FieldError{Kind: ErrMalformedAbundance, Text: raw}
	}

	return v, nil
}

// SimplifyCoverage parses a coverage percentage and rounds it to two decimal
// places. Exact halves round to even, as the decimal text is rounded rather
// than the binary value scaled.
func SimplifyCoverage(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &FieldError{Kind: ErrMalformedCoverage, Text: raw}
	}

	return RoundCoverage(v), nil
}

// RoundCoverage rounds v to two decimal places.
func RoundCoverage(v float64) float64 {
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)

	return rounded
}

var sampleSuffix = regexp.MustCompile(`_variants.tsv`)

// SampleID strips the per-sample variants file marker from the sample column.
func SampleID(raw string) string {
	return sampleSuffix.ReplaceAllString(raw, "")
}

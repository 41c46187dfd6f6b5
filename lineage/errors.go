package lineage

import (
	"errors"
	"fmt"
)

// Failure kinds. Parsing stops at the first one encountered.
var (
	ErrMalformedRow          = errors.New("malformed row")
	ErrMalformedCoverage     = errors.New("malformed coverage")
	ErrMalformedLineageEntry = errors.New("malformed lineage entry")
	ErrMalformedAbundance    = errors.New("malformed abundance")
)

// FieldError reports the offending text along with its failure kind.
type FieldError struct {
	Kind error
	Text string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: %q", e.Kind, e.Text)
}

func (e *FieldError) Unwrap() error {
	return e.Kind
}

package dataset

import (
	"fmt"

	"github.com/pkg/errors"
)

// Common errors.
var (
	ErrUnknownFormat = errors.New("unknown dataset format")
	ErrEmpty         = errors.New("dataset has no entries")
	ErrNoTokenizer   = errors.New("tokens format requires a tokenizer")
)

// FormatError reports a malformed dataset line.
type FormatError struct {
	Line    int    // 1-based line number
	Details string // what is wrong with the line
	Err     error  // underlying parse error, if any
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dataset line %d: %s: %v", e.Line, e.Details, e.Err)
	}
	return fmt.Sprintf("dataset line %d: %s", e.Line, e.Details)
}

// Unwrap returns the underlying parse error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

package serialization

import (
	"fmt"

	"github.com/pkg/errors"
)

// Common errors.
var (
	ErrChecksumMismatch = errors.New("checksum mismatch: file may be corrupted")
	ErrBadChecksum      = errors.New("malformed checksum trailer")
	ErrTooManyLayers    = errors.New("too many layers")
	ErrLayerTooLarge    = errors.New("layer too large")
	ErrNonFinite        = errors.New("non-finite weight")
)

// ValidationError provides detailed information about validation failures.
type ValidationError struct {
	Type    string // e.g. "too_many_layers", "non_finite_weight"
	Line    int    // 1-based line of the offending record, 0 when unknown
	Details string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", e.Type, e.Line, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}

// Unwrap returns the sentinel error for errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

package activation

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrUnknown is returned for tokens that name no known activation function.
var ErrUnknown = errors.New("unknown activation function")

// ParseError reports a token that could not be turned into a Func.
type ParseError struct {
	Token string
	Err   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("activation: cannot parse %q: %v", e.Token, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

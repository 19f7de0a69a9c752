package combo

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks missing or malformed request fields.
	ErrValidation = errors.New("invalid combo request")
	// ErrUpstream marks a failed or empty text generation.
	ErrUpstream = errors.New("text generation failed")
	// ErrStore marks a store failure on the reservation path.
	ErrStore = errors.New("purchase store failure")
)

// ValidationError carries a customer-facing message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

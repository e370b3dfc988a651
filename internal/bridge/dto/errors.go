package dto

import "fmt"

// ValidationError indicates bad or disallowed input, caught before any
// external call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ParseError indicates the model response did not contain extractable,
// valid JSON. Raw carries the offending completion text for diagnostics.
type ParseError struct {
	Message string
	Raw     string
}

func (e *ParseError) Error() string { return e.Message }

// ExternalCallError indicates a transport-level failure talking to an
// external system (network error, non-OK API status, failed push step).
// Context is the label surfaced in the error envelope.
type ExternalCallError struct {
	Context string
	Message string
	Err     error
}

func (e *ExternalCallError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Context, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Context, e.Message)
}

func (e *ExternalCallError) Unwrap() error { return e.Err }

// NotImplementedError marks placeholder capabilities that must never
// silently succeed.
type NotImplementedError struct {
	Capability string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%s is not implemented", e.Capability)
}

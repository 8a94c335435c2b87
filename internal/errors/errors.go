// Package apperrors defines the structured error types shared by the
// command-line and server layers, together with the process exit codes they
// map to.
//
// Every wrapping type implements Unwrap so errors.Is and errors.As see the
// underlying cause.
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess          = 0   // Successful execution.
	ExitErrorGeneric     = 1   // Unclassified failure.
	ExitErrorTimeout     = 2   // The -timeout deadline was reached.
	ExitErrorMismatch    = 3   // Exact solvers returned different verdicts.
	ExitErrorConfig      = 4   // Invalid flags or environment.
	ExitErrorExpectation = 5   // The result differs from -expect.
	ExitErrorCanceled    = 130 // Interrupted by a signal.
)

// ConfigError is an invalid flag, environment value or flag combination.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the message.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// SolveError wraps a failure raised while running a solver.
type SolveError struct {
	// Solver is the name of the solver that failed.
	Solver string
	// Cause is the underlying error.
	Cause error
}

// Error prefixes the cause with the solver name when one is set.
func (e SolveError) Error() string {
	if e.Solver == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Solver, e.Cause)
}

// Unwrap returns the cause.
func (e SolveError) Unwrap() error { return e.Cause }

// ServerError represents errors that occur in the HTTP server component.
type ServerError struct {
	// Message is a descriptive message about the server error.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error combines the message and the cause if present.
func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a new ServerError with a message and optional cause.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// ExpectationError reports a verdict that differs from the -expect value.
type ExpectationError struct {
	Want string
	Got  string
}

// Error describes both verdicts.
func (e ExpectationError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Want, e.Got)
}

// WrapError wraps err with a formatted context message. It returns nil if
// err is nil.
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError reports whether err is a cancellation or deadline error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ValidationError represents invalid request or configuration input.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message describes why validation failed.
	Message string
	// Value is the invalid value (optional, may be nil).
	Value any
}

// Error returns the error message for a ValidationError.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string, value any) error {
	return ValidationError{Field: field, Message: message, Value: value}
}

package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of a harness run to the OS.
const (
	ExitSuccess              = 0   // Every case passed.
	ExitErrorGeneric         = 1   // Indicates a generic error.
	ExitErrorTimeout         = 2   // The whole run exceeded its deadline.
	ExitErrorMismatch        = 3   // At least one case did not pass.
	ExitErrorConfig          = 4   // Indicates a configuration error.
	ExitErrorSubjectNotFound = 5   // The subject executable could not be launched.
	ExitErrorCanceled        = 130 // Indicates the run was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the harness cannot start due to incorrect input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
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

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// SubjectNotFoundError reports that the subject executable could not be
// started at all. It is fatal to the whole run: no case can succeed.
type SubjectNotFoundError struct {
	// Path is the executable the harness tried to launch.
	Path string
	// Cause is the underlying launch error.
	Cause error
}

// Error returns a formatted message naming the missing executable.
func (e SubjectNotFoundError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("subject executable not found: %s", e.Path)
	}
	return fmt.Sprintf("subject executable not found: %s: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying launch error.
func (e SubjectNotFoundError) Unwrap() error { return e.Cause }

// CaseError wraps an unexpected fault raised while driving a single test case
// (as opposed to a subject crash or timeout, which are ordinary outcomes).
type CaseError struct {
	// Index is the zero-based position of the case in the run.
	Index int
	// Cause is the fault that interrupted the case.
	Cause error
}

// Error returns the case index and the underlying message.
func (e CaseError) Error() string {
	return fmt.Sprintf("case %d: %v", e.Index, e.Cause)
}

// Unwrap returns the original wrapped error.
func (e CaseError) Unwrap() error { return e.Cause }

// TimeoutError represents an operation that exceeded its time limit.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsSubjectNotFound reports whether err carries a SubjectNotFoundError.
func IsSubjectNotFound(err error) bool {
	var nf SubjectNotFoundError
	return errors.As(err, &nf)
}

// ExitCodeFor maps a run-level error to a process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var cfgErr ConfigError
	var valErr ValidationError
	switch {
	case IsSubjectNotFound(err):
		return ExitErrorSubjectNotFound
	case errors.As(err, &cfgErr), errors.As(err, &valErr):
		return ExitErrorConfig
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	}
	return ExitErrorGeneric
}

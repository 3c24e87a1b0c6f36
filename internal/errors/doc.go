// Package apperrors defines structured error types for the harness, separating
// run-fatal conditions (bad configuration, a missing subject executable) from
// per-case faults that are recorded and survived.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// All error types that carry a cause implement Unwrap() to support errors.Is()
// and errors.As().
package apperrors

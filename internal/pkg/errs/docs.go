// Package errs provides standardized error types for the delivery platform.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows the same shape:
//   - a sentinel error variable (e.g. ErrObjectNotFound)
//   - a struct type carrying the error details
//   - constructor functions with and without cause
//   - Error() for formatting and Unwrap() for errors.Is classification
//
// Handlers and adapters match on the sentinels (errors.Is) to distinguish
// permanent data errors from transient infrastructure failures.
package errs

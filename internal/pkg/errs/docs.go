// Package errs provides standardized error types shared across the order
// coordination service.
//
// The package defines one type per common failure scenario:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value fails domain validation
//   - ValueIsOutOfRangeError: a numeric value falls outside its bounds
//   - ObjectNotFoundError: an object cannot be located by its identifier
//
// Each type follows the same pattern:
//   - a sentinel error variable (e.g. ErrValueIsRequired)
//   - a struct carrying the error details
//   - constructors with and without an underlying cause
//   - Error() for single-line formatting and Unwrap() for errors.Is
//
// Callers classify errors with errors.Is against the sentinels; the typed
// structs carry the parameter names and values needed at the boundary.
package errs

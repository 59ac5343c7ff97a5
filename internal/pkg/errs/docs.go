// Package errs provides standardized error types for the cafeteria application.
// Every domain and storage error in the application is built from one of these
// types, so handlers can map them to responses without string matching.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - VersionIsInvalidError: For optimistic concurrency conflicts on aggregates
//   - InsufficientStockError: For order lines that exceed the stock on hand
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify errors with errors.Is against the sentinels and errors.As
// against the struct types when they need the details.
package errs

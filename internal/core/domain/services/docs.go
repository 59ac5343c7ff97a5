// Package services provides domain services of the cafeteria fulfillment core
// that do not belong to a single aggregate.
//
// The package includes:
//   - CodeGenerator: issues unique human-readable order codes
//   - Messages: the customer-facing texts sent on submission and on every status change
package services

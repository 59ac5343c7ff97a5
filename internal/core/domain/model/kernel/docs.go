// Package kernel provides the value objects shared by the cafeteria domain model.
//
// The package includes:
//   - UUID: order identity, issued by storage on first save
//   - CustomerID and ProductID: references into the user and catalog subsystems
//   - Money: exact, non-negative decimal amounts for prices and totals
//   - OrderCode: the six character human-readable order reference
//
// All types are immutable values and safe for concurrent use.
package kernel

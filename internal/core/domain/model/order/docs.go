// Package order provides the Order aggregate of the cafeteria fulfillment core
// and the state machine that drives it.
//
// The package includes:
//   - Order: the aggregate root holding code, customer, pickup time, status and lines
//   - Line: an immutable order line with the unit price captured at submission
//   - Status: the lifecycle tag (Pending, InPreparation, Ready, Delivered, Cancelled)
//   - StateMachine: the only writer of Order.status
//
// Key business rules:
//   - Orders follow Pending -> InPreparation -> Ready -> Delivered
//   - Pending and InPreparation orders can be cancelled; Ready orders cannot
//   - Delivered and Cancelled are final; orders are never deleted
//   - Order total is always the sum of line subtotals
package order

// Package ports defines the contracts between the fulfillment core and its
// infrastructure: persistence, stock, pricing, code issuance, carts and
// notifications.
package ports

import (
	"context"
	"time"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are always stored and loaded together with their lines.
type OrderRepository interface {
	// Add persists a new order. The repository assigns the identity through
	// order.AssignID.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the status of an existing order. It only succeeds when
	// the stored version equals aggregate.Version(); otherwise it returns
	// errs.VersionIsInvalidError. On success the aggregate version is incremented.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by identity, or errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// FindByCode returns the orders with exactly this code (zero or one).
	FindByCode(ctx context.Context, code kernel.OrderCode) ([]*order.Order, error)

	// FindByStatus returns the orders in status, oldest first.
	FindByStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// FindByDateRange returns orders created in [from, to], oldest first.
	FindByDateRange(ctx context.Context, from, to time.Time) ([]*order.Order, error)

	// FindByCustomer returns the customer's orders, newest first.
	FindByCustomer(ctx context.Context, customerID kernel.CustomerID) ([]*order.Order, error)

	// FindAll returns every order, oldest first.
	FindAll(ctx context.Context) ([]*order.Order, error)
}

package ports

import (
	"context"

	"cafeteria/internal/core/domain/model/kernel"
)

// StockLedger is the catalog's inventory. Its answers are authoritative: the
// fulfillment core never keeps its own stock counts.
//
// Missing and inactive products are reported as errs.ObjectNotFoundError.
type StockLedger interface {
	// Available returns the units on hand.
	Available(ctx context.Context, productID kernel.ProductID) (int, error)

	// CheckAvailable reports whether quantity units can be taken.
	CheckAvailable(ctx context.Context, productID kernel.ProductID, quantity int) (bool, error)

	// Decrement atomically takes quantity units, or fails with
	// errs.InsufficientStockError leaving the stock untouched.
	Decrement(ctx context.Context, productID kernel.ProductID, quantity int) error

	// Increment adds quantity units.
	Increment(ctx context.Context, productID kernel.ProductID, quantity int) error
}

// PriceCatalog resolves current unit prices.
type PriceCatalog interface {
	UnitPrice(ctx context.Context, productID kernel.ProductID) (kernel.Money, error)
}

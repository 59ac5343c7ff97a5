// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, persistence,
// and side effects (cart clearing, notifications) only after a successful commit.
package commands

import (
	"context"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// StockLedgerFactory provides access to the stock ledger within a transaction.
	StockLedgerFactory interface {
		StockLedger() ports.StockLedger
	}

	// PriceCatalogFactory provides access to unit prices within a transaction.
	PriceCatalogFactory interface {
		PriceCatalog() ports.PriceCatalog
	}

	// OrderUoW manages transactions for order-only operations such as
	// advancing or cancelling an order.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// StockUoW manages transactions that only touch inventory.
	StockUoW interface {
		TxManager
		StockLedgerFactory
	}

	// StockUoWFactory creates new stock unit of work instances.
	StockUoWFactory interface {
		Create() StockUoW
	}

	// UoW manages transactions across orders, stock and prices.
	// Used by order submission, where stock consumption and the new order
	// must be committed together or not at all.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   ledger := uow.StockLedger()
	//   orders := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		StockLedgerFactory
		PriceCatalogFactory
	}

	// UoWFactory creates new unit of work instances for submissions.
	UoWFactory interface {
		Create() UoW
	}
)

// CodeGenerator issues unique order codes.
type CodeGenerator interface {
	Generate(ctx context.Context) (kernel.OrderCode, error)
}

// Func factories adapt a single storage factory to the handler-specific
// factory interfaces.
type (
	FuncUoWFactory      func() UoW
	FuncOrderUoWFactory func() OrderUoW
	FuncStockUoWFactory func() StockUoW
)

func (f FuncUoWFactory) Create() UoW {
	return f()
}

func (f FuncOrderUoWFactory) Create() OrderUoW {
	return f()
}

func (f FuncStockUoWFactory) Create() StockUoW {
	return f()
}

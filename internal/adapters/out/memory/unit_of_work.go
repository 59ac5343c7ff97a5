package memory

import (
	"context"
	"errors"

	"cafeteria/internal/core/ports"
)

// ErrNoActiveTransaction is returned by Commit and Rollback outside Begin.
var ErrNoActiveTransaction = errors.New("no active transaction")

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork is a single-use transaction over a Store.
type UnitOfWork struct {
	store  *Store
	active bool
	undo   []func()
}

// Begin takes the store's write lock. A second Begin on an active unit of
// work is a no-op.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.active {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	u.store.mu.Lock()
	u.active = true
	u.undo = u.undo[:0]
	return nil
}

// Commit keeps all changes and releases the lock.
func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}

	u.undo = nil
	u.active = false
	u.store.mu.Unlock()
	return nil
}

// Rollback reverts every change since Begin and releases the lock.
func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}

	for i := len(u.undo) - 1; i >= 0; i-- {
		u.undo[i]()
	}
	u.undo = nil
	u.active = false
	u.store.mu.Unlock()
	return nil
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	if !u.active {
		return NewOrderRepository(u.store)
	}
	return &OrderRepository{store: u.store, tx: u}
}

func (u *UnitOfWork) StockLedger() ports.StockLedger {
	if !u.active {
		return NewStockLedger(u.store)
	}
	return &StockLedger{store: u.store, tx: u}
}

func (u *UnitOfWork) PriceCatalog() ports.PriceCatalog {
	return u.StockLedger().(*StockLedger)
}

func (u *UnitOfWork) record(undo func()) {
	u.undo = append(u.undo, undo)
}

package memory

import (
	"context"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/pkg/errs"
)

// StockLedger implements ports.StockLedger and ports.PriceCatalog over the
// products of a Store.
type StockLedger struct {
	store *Store
	tx    *UnitOfWork
}

func NewStockLedger(store *Store) *StockLedger {
	return &StockLedger{store: store}
}

func (l *StockLedger) Available(_ context.Context, productID kernel.ProductID) (int, error) {
	unlock := l.read()
	defer unlock()

	p, err := l.store.activeProduct(productID)
	if err != nil {
		return 0, err
	}
	return p.Stock, nil
}

func (l *StockLedger) CheckAvailable(ctx context.Context, productID kernel.ProductID, quantity int) (bool, error) {
	available, err := l.Available(ctx, productID)
	if err != nil {
		return false, err
	}
	return quantity <= available, nil
}

func (l *StockLedger) Decrement(_ context.Context, productID kernel.ProductID, quantity int) error {
	unlock := l.write()
	defer unlock()

	p, err := l.store.activeProduct(productID)
	if err != nil {
		return err
	}
	if quantity > p.Stock {
		return errs.NewInsufficientStockError(int64(productID), quantity, p.Stock)
	}

	p.Stock -= quantity
	l.onRollback(func() { p.Stock += quantity })
	return nil
}

func (l *StockLedger) Increment(_ context.Context, productID kernel.ProductID, quantity int) error {
	unlock := l.write()
	defer unlock()

	p, ok := l.store.products[productID]
	if !ok {
		return errs.NewObjectNotFoundError("product", int64(productID))
	}

	p.Stock += quantity
	l.onRollback(func() { p.Stock -= quantity })
	return nil
}

func (l *StockLedger) UnitPrice(_ context.Context, productID kernel.ProductID) (kernel.Money, error) {
	unlock := l.read()
	defer unlock()

	p, err := l.store.activeProduct(productID)
	if err != nil {
		return kernel.Money{}, err
	}
	return p.Price, nil
}

func (l *StockLedger) read() func() {
	if l.tx != nil {
		return func() {}
	}
	l.store.mu.RLock()
	return l.store.mu.RUnlock
}

func (l *StockLedger) write() func() {
	if l.tx != nil {
		return func() {}
	}
	l.store.mu.Lock()
	return l.store.mu.Unlock
}

func (l *StockLedger) onRollback(undo func()) {
	if l.tx != nil {
		l.tx.record(undo)
	}
}

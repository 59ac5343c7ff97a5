// Package memory provides in-process implementations of the fulfillment
// ports. It backs the STORAGE=memory mode and the service-level tests.
//
// All state lives in a Store. A unit of work holds the store's write lock
// from Begin until Commit or Rollback, which serialises submissions and
// status changes the same way row locks and conditional updates do in
// postgres. Changes made inside a unit of work are recorded in an undo log
// and reverted on Rollback.
package memory

import (
	"sync"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/pkg/errs"
)

// Product is a catalog entry as seen by the ledger.
type Product struct {
	ID     kernel.ProductID
	Name   string
	Price  kernel.Money
	Stock  int
	Active bool
}

// Store holds orders and products.
type Store struct {
	mu       sync.RWMutex
	orders   map[kernel.UUID]*order.Order
	sequence []kernel.UUID
	products map[kernel.ProductID]*Product
}

func NewStore() *Store {
	return &Store{
		orders:   make(map[kernel.UUID]*order.Order),
		products: make(map[kernel.ProductID]*Product),
	}
}

// PutProduct inserts or replaces a product.
func (s *Store) PutProduct(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := p
	s.products[p.ID] = &cp
}

// Stock returns the units on hand, ignoring the active flag.
func (s *Store) Stock(id kernel.ProductID) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return 0, false
	}
	return p.Stock, true
}

// OrderCount returns the number of stored orders.
func (s *Store) OrderCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.orders)
}

// activeProduct must be called with mu held.
func (s *Store) activeProduct(id kernel.ProductID) (*Product, error) {
	p, ok := s.products[id]
	if !ok || !p.Active {
		return nil, errs.NewObjectNotFoundError("product", int64(id))
	}
	return p, nil
}

// cloneOrder detaches stored orders from the aggregates handed to callers.
func cloneOrder(o *order.Order) *order.Order {
	c, err := order.RestoreOrder(
		o.ID(),
		o.Code(),
		o.CustomerID(),
		o.DeliveryAt(),
		o.CreatedAt(),
		o.Status(),
		o.Notes(),
		o.PaymentMethod(),
		o.Lines(),
		o.Version(),
	)
	if err != nil {
		// Stored orders were validated on the way in.
		panic(err)
	}
	return c
}

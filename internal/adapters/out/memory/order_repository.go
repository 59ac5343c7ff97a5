package memory

import (
	"context"
	"fmt"
	"slices"
	"time"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/pkg/errs"
)

// OrderRepository implements ports.OrderRepository over a Store. Bound to a
// unit of work it runs under the unit's lock and records undo steps;
// otherwise every call locks the store itself.
type OrderRepository struct {
	store *Store
	tx    *UnitOfWork
}

func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	unlock := r.write()
	defer unlock()

	for _, stored := range r.store.orders {
		if stored.Code().IsEqual(aggregate.Code()) {
			return errs.NewValueIsInvalidErrorWithCause("order code", fmt.Errorf("%s is already used", aggregate.Code()))
		}
	}

	if err := aggregate.AssignID(kernel.NewUUID()); err != nil {
		return err
	}

	id := aggregate.ID()
	r.store.orders[id] = cloneOrder(aggregate)
	r.store.sequence = append(r.store.sequence, id)

	r.onRollback(func() {
		delete(r.store.orders, id)
		r.store.sequence = slices.DeleteFunc(r.store.sequence, func(x kernel.UUID) bool { return x.IsEqual(id) })
	})
	return nil
}

func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	unlock := r.write()
	defer unlock()

	stored, ok := r.store.orders[aggregate.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	if stored.Version() != aggregate.Version() {
		return errs.NewVersionIsInvalidError("order")
	}

	aggregate.IncrementVersion()
	r.store.orders[aggregate.ID()] = cloneOrder(aggregate)

	id := aggregate.ID()
	r.onRollback(func() {
		r.store.orders[id] = stored
	})
	return nil
}

func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	unlock := r.read()
	defer unlock()

	stored, ok := r.store.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return cloneOrder(stored), nil
}

func (r *OrderRepository) FindByCode(_ context.Context, code kernel.OrderCode) ([]*order.Order, error) {
	return r.filter(func(o *order.Order) bool { return o.Code().IsEqual(code) }, false), nil
}

func (r *OrderRepository) FindByStatus(_ context.Context, status order.Status) ([]*order.Order, error) {
	return r.filter(func(o *order.Order) bool { return o.Status() == status }, false), nil
}

func (r *OrderRepository) FindByDateRange(_ context.Context, from, to time.Time) ([]*order.Order, error) {
	return r.filter(func(o *order.Order) bool {
		return !o.CreatedAt().Before(from) && !o.CreatedAt().After(to)
	}, false), nil
}

func (r *OrderRepository) FindByCustomer(_ context.Context, customerID kernel.CustomerID) ([]*order.Order, error) {
	return r.filter(func(o *order.Order) bool { return o.CustomerID() == customerID }, true), nil
}

func (r *OrderRepository) FindAll(_ context.Context) ([]*order.Order, error) {
	return r.filter(func(*order.Order) bool { return true }, false), nil
}

// filter returns matching orders by creation time, oldest first unless
// newestFirst. Insertion order breaks ties.
func (r *OrderRepository) filter(match func(*order.Order) bool, newestFirst bool) []*order.Order {
	unlock := r.read()
	defer unlock()

	result := make([]*order.Order, 0)
	for _, id := range r.store.sequence {
		if o := r.store.orders[id]; match(o) {
			result = append(result, cloneOrder(o))
		}
	}

	slices.SortStableFunc(result, func(a, b *order.Order) int {
		return a.CreatedAt().Compare(b.CreatedAt())
	})
	if newestFirst {
		slices.Reverse(result)
	}
	return result
}

func (r *OrderRepository) read() func() {
	if r.tx != nil {
		return func() {}
	}
	r.store.mu.RLock()
	return r.store.mu.RUnlock
}

func (r *OrderRepository) write() func() {
	if r.tx != nil {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *OrderRepository) onRollback(undo func()) {
	if r.tx != nil {
		r.tx.record(undo)
	}
}

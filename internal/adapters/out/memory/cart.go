package memory

import (
	"context"
	"maps"
	"sync"

	"cafeteria/internal/core/domain/model/kernel"
)

// Carts implements ports.CartService with per-customer product quantities.
type Carts struct {
	mu    sync.Mutex
	items map[kernel.CustomerID]map[kernel.ProductID]int
}

func NewCarts() *Carts {
	return &Carts{items: make(map[kernel.CustomerID]map[kernel.ProductID]int)}
}

// Put sets the quantity of a product in the customer's cart.
func (c *Carts) Put(_ context.Context, customerID kernel.CustomerID, productID kernel.ProductID, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.items[customerID] == nil {
		c.items[customerID] = make(map[kernel.ProductID]int)
	}
	c.items[customerID][productID] = quantity
	return nil
}

// Items returns a copy of the customer's cart.
func (c *Carts) Items(_ context.Context, customerID kernel.CustomerID) (map[kernel.ProductID]int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make(map[kernel.ProductID]int, len(c.items[customerID]))
	maps.Copy(result, c.items[customerID])
	return result, nil
}

func (c *Carts) Clear(_ context.Context, customerID kernel.CustomerID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, customerID)
	return nil
}

package ports

import (
	"context"
	"time"

	"cafeteria/internal/core/domain/model/kernel"
)

// Notifier delivers a message to a user. Delivery is fire-and-forget:
// implementations log their own failures and never block the caller's
// business outcome.
type Notifier interface {
	Notify(ctx context.Context, userID kernel.CustomerID, message string)
}

// Notification is a message kept in a user's inbox.
type Notification struct {
	ID        int64
	UserID    kernel.CustomerID
	Message   string
	CreatedAt time.Time
	Read      bool
}

// NotificationInbox is the read side of the stored notifications.
type NotificationInbox interface {
	// ListForUser returns the user's notifications, newest first.
	ListForUser(ctx context.Context, userID kernel.CustomerID) ([]Notification, error)
	MarkRead(ctx context.Context, userID kernel.CustomerID) error
	DeleteForUser(ctx context.Context, userID kernel.CustomerID) error
}

// CartService is the shopping cart owned by the storefront.
type CartService interface {
	// Put sets the quantity of a product in the customer's cart.
	Put(ctx context.Context, customerID kernel.CustomerID, productID kernel.ProductID, quantity int) error
	// Items returns the cart as product id to quantity.
	Items(ctx context.Context, customerID kernel.CustomerID) (map[kernel.ProductID]int, error)
	// Clear empties the customer's cart.
	Clear(ctx context.Context, customerID kernel.CustomerID) error
}

package fulfillment

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"cafeteria/internal/core/application/usecases/commands"
	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/core/ports"
	"cafeteria/internal/pkg/errs"
)

// CheckoutRequest turns the stored cart into an order.
type CheckoutRequest struct {
	CustomerID    kernel.CustomerID
	DeliveryAt    time.Time
	Notes         string
	PaymentMethod string
}

// PutCartItem sets the quantity of a product in the customer's cart.
// Stock is not checked until checkout.
func (s *Service) PutCartItem(
	ctx context.Context,
	customerID kernel.CustomerID,
	productID kernel.ProductID,
	quantity int,
) error {
	var quantityErr error
	if quantity <= 0 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if err := errors.Join(customerID.Validate(), productID.Validate(), quantityErr); err != nil {
		return err
	}
	return s.h.Carts.Put(ctx, customerID, productID, quantity)
}

// Cart returns the customer's cart as lines sorted by product id.
func (s *Service) Cart(ctx context.Context, customerID kernel.CustomerID) ([]commands.LineItem, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	items, err := s.h.Carts.Items(ctx, customerID)
	if err != nil {
		return nil, err
	}

	lines := make([]commands.LineItem, 0, len(items))
	for productID, quantity := range items {
		lines = append(lines, commands.LineItem{ProductID: productID, Quantity: quantity})
	}
	slices.SortFunc(lines, func(a, b commands.LineItem) int { return cmp.Compare(a.ProductID, b.ProductID) })
	return lines, nil
}

// Checkout submits the customer's cart. The cart is cleared once the order
// is committed; a rejected checkout leaves it untouched.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (*order.Order, error) {
	lines, err := s.Cart(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("cart")
	}

	return s.Submit(ctx, SubmitOrderRequest{
		CustomerID:    req.CustomerID,
		DeliveryAt:    req.DeliveryAt,
		Lines:         lines,
		Notes:         req.Notes,
		PaymentMethod: req.PaymentMethod,
	})
}

// Notifications returns the customer's inbox, newest first.
func (s *Service) Notifications(ctx context.Context, customerID kernel.CustomerID) ([]ports.Notification, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}
	return s.h.Inbox.ListForUser(ctx, customerID)
}

func (s *Service) MarkNotificationsRead(ctx context.Context, customerID kernel.CustomerID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	return s.h.Inbox.MarkRead(ctx, customerID)
}

func (s *Service) DeleteNotifications(ctx context.Context, customerID kernel.CustomerID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	return s.h.Inbox.DeleteForUser(ctx, customerID)
}

package commands

import (
	"errors"
	"fmt"
	"time"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/pkg/errs"
	"cafeteria/internal/pkg/guard"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// LineItem is one cart entry: a product and how many units the customer wants.
type LineItem struct {
	ProductID kernel.ProductID
	Quantity  int
}

// SubmitOrderCommand turns a customer's cart into an order.
// Cart entries for the same product are merged, summing quantities, and
// keep the position of their first occurrence.
//
// Example:
//
//	cmd, err := NewSubmitOrderCommand(customerID, pickupAt, []LineItem{
//	    {ProductID: 1, Quantity: 2},
//	    {ProductID: 2, Quantity: 1},
//	}, "no onions", "cash")
//	if err != nil {
//	    return fmt.Errorf("invalid cart: %w", err)
//	}
//
//	o, err := handler.Handle(ctx, cmd)
type SubmitOrderCommand struct {
	customerID    kernel.CustomerID
	deliveryAt    time.Time
	lines         []LineItem
	notes         string
	paymentMethod string

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand validates the cart. Every problem is reported at once
// through errors.Join.
func NewSubmitOrderCommand(
	customerID kernel.CustomerID,
	deliveryAt time.Time,
	lines []LineItem,
	notes string,
	paymentMethod string,
) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		notes:         notes,
		paymentMethod: paymentMethod,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setDeliveryAt(deliveryAt),
		cmd.setLines(lines),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

func (c SubmitOrderCommand) CustomerID() kernel.CustomerID {
	return c.customerID
}

func (c SubmitOrderCommand) DeliveryAt() time.Time {
	return c.deliveryAt
}

// Lines returns the merged cart entries.
func (c SubmitOrderCommand) Lines() []LineItem {
	lines := make([]LineItem, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c SubmitOrderCommand) Notes() string {
	return c.notes
}

func (c SubmitOrderCommand) PaymentMethod() string {
	return c.paymentMethod
}

func (c *SubmitOrderCommand) setCustomerID(customerID kernel.CustomerID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *SubmitOrderCommand) setDeliveryAt(deliveryAt time.Time) error {
	if deliveryAt.IsZero() {
		return errs.NewValueIsRequiredError("delivery time")
	}
	c.deliveryAt = deliveryAt
	return nil
}

func (c *SubmitOrderCommand) setLines(lines []LineItem) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}

	merged := make([]LineItem, 0, len(lines))
	index := make(map[kernel.ProductID]int, len(lines))

	var lineErrs []error
	for i, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			lineErrs = append(lineErrs, fmt.Errorf("line %d: %w", i, err))
			continue
		}
		if line.Quantity <= 0 {
			lineErrs = append(lineErrs, fmt.Errorf("line %d: %w", i,
				errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", line.Quantity))))
			continue
		}

		if pos, ok := index[line.ProductID]; ok {
			merged[pos].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}

	if len(lineErrs) > 0 {
		return errors.Join(lineErrs...)
	}

	c.lines = merged
	return nil
}

package commands

import (
	"errors"
	"strings"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand withdraws an order that the kitchen has not finished.
// The reason is optional and is trimmed; a blank reason is dropped.
type CancelOrderCommand struct {
	orderID      kernel.UUID
	reason       string
	notifyUserID *kernel.CustomerID

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID kernel.UUID, reason string, notifyUserID *kernel.CustomerID) (CancelOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		orderID:      orderID,
		reason:       strings.TrimSpace(reason),
		notifyUserID: notifyUserID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CancelOrderCommand) Reason() string {
	return c.reason
}

func (c CancelOrderCommand) NotifyUserID() *kernel.CustomerID {
	return c.notifyUserID
}

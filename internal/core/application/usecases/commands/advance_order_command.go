package commands

import (
	"errors"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/pkg/guard"
)

var ErrAdvanceOrderCommandIsNotConstructed = errors.New(
	"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
)

// AdvanceOrderCommand moves an order to the next status of the kitchen flow.
// NotifyUserID, when set, receives the message for the status entered.
//
// Example:
//
//	cmd, err := NewAdvanceOrderCommand(orderID, &customerID)
//	advanced, err := handler.Handle(ctx, cmd)
//	if err == nil && !advanced {
//	    // order is already Delivered or Cancelled
//	}
type AdvanceOrderCommand struct {
	orderID      kernel.UUID
	notifyUserID *kernel.CustomerID

	guard guard.ConstructorGuard
}

func NewAdvanceOrderCommand(orderID kernel.UUID, notifyUserID *kernel.CustomerID) (AdvanceOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return AdvanceOrderCommand{
		orderID:      orderID,
		notifyUserID: notifyUserID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AdvanceOrderCommand) NotifyUserID() *kernel.CustomerID {
	return c.notifyUserID
}

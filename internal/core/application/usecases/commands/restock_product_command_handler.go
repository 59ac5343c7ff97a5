package commands

import (
	"context"
)

// RestockProductCommandHandler increments stock for a product.
type RestockProductCommandHandler struct {
	uowFactory StockUoWFactory
}

func NewRestockProductCommandHandler(uowFactory StockUoWFactory) RestockProductCommandHandler {
	return RestockProductCommandHandler{uowFactory: uowFactory}
}

func (h RestockProductCommandHandler) Handle(ctx context.Context, cmd RestockProductCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.StockLedger().Increment(ctx, cmd.ProductID(), cmd.Quantity()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

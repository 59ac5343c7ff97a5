package queries

import (
	"context"

	"cafeteria/internal/core/domain/model/order"
)

// FindOrdersByCustomerQueryHandler returns the customer's orders, newest
// first, with their lines loaded.
type FindOrdersByCustomerQueryHandler struct {
	reader OrderReader
}

func NewFindOrdersByCustomerQueryHandler(reader OrderReader) FindOrdersByCustomerQueryHandler {
	return FindOrdersByCustomerQueryHandler{reader: reader}
}

func (h FindOrdersByCustomerQueryHandler) Handle(
	ctx context.Context,
	query FindOrdersByCustomerQuery,
) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.reader.FindByCustomer(ctx, query.CustomerID())
}

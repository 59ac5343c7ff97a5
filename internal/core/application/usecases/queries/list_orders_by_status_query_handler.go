package queries

import (
	"context"

	"cafeteria/internal/core/domain/model/order"
)

// ListOrdersByStatusQueryHandler returns orders keyed by status. The result
// always has an entry for each of the five statuses.
type ListOrdersByStatusQueryHandler struct {
	reader OrderReader
}

func NewListOrdersByStatusQueryHandler(reader OrderReader) ListOrdersByStatusQueryHandler {
	return ListOrdersByStatusQueryHandler{reader: reader}
}

func (h ListOrdersByStatusQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersByStatusQuery,
) (map[order.Status][]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		orders []*order.Order
		err    error
	)
	if r := query.DateRange(); r != nil {
		orders, err = h.reader.FindByDateRange(ctx, r.From, r.To)
	} else {
		orders, err = h.reader.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	// One read, so an order changing state mid-listing lands in exactly one group.
	return groupByStatus(orders), nil
}

package queries

import (
	"context"
	"errors"

	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/pkg/guard"
)

var ErrListOrdersInStatusQueryIsNotConstructed = errors.New(
	"ListOrdersInStatusQuery must be created via NewListOrdersInStatusQuery constructor",
)

// ListOrdersInStatusQuery is one column of the kitchen board, oldest first.
type ListOrdersInStatusQuery struct {
	status order.Status

	guard guard.ConstructorGuard
}

func NewListOrdersInStatusQuery(status order.Status) (ListOrdersInStatusQuery, error) {
	if err := status.Validate(); err != nil {
		return ListOrdersInStatusQuery{}, err
	}

	return ListOrdersInStatusQuery{
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersInStatusQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersInStatusQueryIsNotConstructed)
}

func (q ListOrdersInStatusQuery) Status() order.Status {
	return q.status
}

type ListOrdersInStatusQueryHandler struct {
	reader OrderReader
}

func NewListOrdersInStatusQueryHandler(reader OrderReader) ListOrdersInStatusQueryHandler {
	return ListOrdersInStatusQueryHandler{reader: reader}
}

func (h ListOrdersInStatusQueryHandler) Handle(ctx context.Context, query ListOrdersInStatusQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.reader.FindByStatus(ctx, query.Status())
}

package queries

import (
	"context"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
)

// FindOrdersByCodeQueryHandler performs an exact code match. Input that can
// never be a code yields an empty result rather than an error.
type FindOrdersByCodeQueryHandler struct {
	reader OrderReader
}

func NewFindOrdersByCodeQueryHandler(reader OrderReader) FindOrdersByCodeQueryHandler {
	return FindOrdersByCodeQueryHandler{reader: reader}
}

func (h FindOrdersByCodeQueryHandler) Handle(ctx context.Context, query FindOrdersByCodeQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	code, err := kernel.NewOrderCode(query.Code())
	if err != nil {
		return make([]*order.Order, 0), nil
	}

	return h.reader.FindByCode(ctx, code)
}

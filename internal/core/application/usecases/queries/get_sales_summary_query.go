package queries

import (
	"context"
	"errors"
	"time"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/pkg/guard"
)

var ErrGetSalesSummaryQueryIsNotConstructed = errors.New(
	"GetSalesSummaryQuery must be created via NewGetSalesSummaryQuery constructor",
)

// GetSalesSummaryQuery totals delivered orders created within a range of days.
// Cancelled and unfinished orders do not count as sales.
type GetSalesSummaryQuery struct {
	dateRange DateRange

	guard guard.ConstructorGuard
}

func NewGetSalesSummaryQuery(from, to time.Time) (GetSalesSummaryQuery, error) {
	r, err := NewDateRange(from, to)
	if err != nil {
		return GetSalesSummaryQuery{}, err
	}

	return GetSalesSummaryQuery{
		dateRange: r,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSalesSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetSalesSummaryQueryIsNotConstructed)
}

func (q GetSalesSummaryQuery) DateRange() DateRange {
	return q.dateRange
}

// GetSalesSummaryQueryResponse is the sales total for a range.
type GetSalesSummaryQueryResponse struct {
	From            time.Time
	To              time.Time
	DeliveredOrders int
	Revenue         kernel.Money
}

// GetSalesSummaryQueryHandler computes sales from the order store.
type GetSalesSummaryQueryHandler struct {
	reader OrderReader
}

func NewGetSalesSummaryQueryHandler(reader OrderReader) GetSalesSummaryQueryHandler {
	return GetSalesSummaryQueryHandler{reader: reader}
}

func (h GetSalesSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetSalesSummaryQuery,
) (GetSalesSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSalesSummaryQueryResponse{}, err
	}

	r := query.DateRange()
	orders, err := h.reader.FindByDateRange(ctx, r.From, r.To)
	if err != nil {
		return GetSalesSummaryQueryResponse{}, err
	}

	resp := GetSalesSummaryQueryResponse{From: r.From, To: r.To}
	for _, o := range orders {
		if o.Status() != order.Delivered {
			continue
		}
		resp.DeliveredOrders++
		resp.Revenue = resp.Revenue.Add(o.Total())
	}

	return resp, nil
}

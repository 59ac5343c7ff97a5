package queries

import (
	"errors"
	"time"

	"cafeteria/internal/pkg/guard"
)

var ErrListOrdersByStatusQueryIsNotConstructed = errors.New(
	"ListOrdersByStatusQuery must be created via NewListOrdersByStatusQuery constructor",
)

// ListOrdersByStatusQuery groups orders by status for the kitchen board.
// It covers every order, or only those created within a range of days.
//
// Example:
//
//	query, err := NewListOrdersByStatusInRangeQuery(monday, friday)
//	grouped, err := handler.Handle(ctx, query)
//	for _, o := range grouped[order.Ready] {
//	    fmt.Println(o.Code())
//	}
type ListOrdersByStatusQuery struct {
	dateRange *DateRange

	guard guard.ConstructorGuard
}

// NewListOrdersByStatusQuery lists all orders.
func NewListOrdersByStatusQuery() ListOrdersByStatusQuery {
	return ListOrdersByStatusQuery{guard: guard.NewConstructorGuard()}
}

// NewListOrdersByStatusInRangeQuery lists orders created from the start of
// from's day to the end of to's day.
func NewListOrdersByStatusInRangeQuery(from, to time.Time) (ListOrdersByStatusQuery, error) {
	r, err := NewDateRange(from, to)
	if err != nil {
		return ListOrdersByStatusQuery{}, err
	}

	return ListOrdersByStatusQuery{
		dateRange: &r,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
func (q ListOrdersByStatusQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersByStatusQueryIsNotConstructed)
}

// DateRange returns the range filter, or nil when listing every order.
func (q ListOrdersByStatusQuery) DateRange() *DateRange {
	return q.dateRange
}

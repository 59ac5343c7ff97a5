// Package queries contains read-only operations over orders.
// Query handlers never open a transaction; they read committed state through
// an OrderReader.
package queries

import (
	"context"
	"fmt"
	"time"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/pkg/errs"
)

// OrderReader is the read side of ports.OrderRepository.
type OrderReader interface {
	FindByCode(ctx context.Context, code kernel.OrderCode) ([]*order.Order, error)
	FindByStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]*order.Order, error)
	FindByCustomer(ctx context.Context, customerID kernel.CustomerID) ([]*order.Order, error)
	FindAll(ctx context.Context) ([]*order.Order, error)
}

// DateRange is an inclusive range of calendar days. From is the first
// instant of the first day and To the last instant of the last day.
type DateRange struct {
	From time.Time
	To   time.Time
}

// NewDateRange widens [from, to] to whole days in from's location.
func NewDateRange(from, to time.Time) (DateRange, error) {
	if from.IsZero() || to.IsZero() {
		return DateRange{}, errs.NewValueIsRequiredError("date range")
	}

	start := startOfDay(from)
	end := startOfDay(to.In(from.Location())).AddDate(0, 0, 1).Add(-time.Nanosecond)
	if end.Before(start) {
		return DateRange{}, errs.NewValueIsInvalidErrorWithCause("date range",
			fmt.Errorf("end %s is before start %s", to.Format(time.DateOnly), from.Format(time.DateOnly)))
	}

	return DateRange{From: start, To: end}, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// groupByStatus always returns one entry per status, empty groups included.
func groupByStatus(orders []*order.Order) map[order.Status][]*order.Order {
	grouped := make(map[order.Status][]*order.Order, len(order.AllStatuses()))
	for _, s := range order.AllStatuses() {
		grouped[s] = make([]*order.Order, 0)
	}
	for _, o := range orders {
		grouped[o.Status()] = append(grouped[o.Status()], o)
	}
	return grouped
}

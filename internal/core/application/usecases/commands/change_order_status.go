package commands

import (
	"context"
	"errors"
	"log/slog"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/core/domain/services"
	"cafeteria/internal/core/ports"
	"cafeteria/internal/pkg/errs"
)

// maxTransitionAttempts bounds the load-transition-save cycle when another
// request updates the same order concurrently.
const maxTransitionAttempts = 3

// statusChanger applies one state machine transition to a stored order and
// announces it. It is shared by the advance and cancel handlers.
type statusChanger struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	metrics    ports.MetricsRecorder
	logger     *slog.Logger
}

// change loads the order, applies transition and saves it. On a version
// conflict the whole cycle is retried against the fresh state, so each call
// performs at most one transition. A refused transition returns false and
// leaves the order untouched.
func (s statusChanger) change(
	ctx context.Context,
	orderID kernel.UUID,
	transition func(*order.Order) bool,
	notifyUserID *kernel.CustomerID,
	reason string,
) (bool, error) {
	var (
		o       *order.Order
		changed bool
		err     error
	)

	for attempt := 1; ; attempt++ {
		o, changed, err = s.tryChange(ctx, orderID, transition)
		if errors.Is(err, errs.ErrVersionIsInvalid) && attempt < maxTransitionAttempts {
			s.logger.DebugContext(ctx, "order version conflict, retrying",
				"order_id", orderID.String(), "attempt", attempt)
			continue
		}
		break
	}
	if err != nil || !changed {
		return false, err
	}

	s.metrics.OrderTransitioned(o.Status())
	s.logger.InfoContext(ctx, "order status changed",
		"order_id", o.ID().String(),
		"code", o.Code().String(),
		"status", o.Status().String(),
	)

	if notifyUserID != nil {
		if msg, ok := services.StatusMessage(o.Status(), o.Code(), reason); ok {
			s.notifier.Notify(ctx, *notifyUserID, msg)
		}
	}

	return true, nil
}

func (s statusChanger) tryChange(
	ctx context.Context,
	orderID kernel.UUID,
	transition func(*order.Order) bool,
) (*order.Order, bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, false, err
	}

	if !transition(o) {
		return o, false, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}

	return o, true, nil
}

package commands

import (
	"context"
	"log/slog"

	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/core/ports"
)

// AdvanceOrderCommandHandler drives an order one step along
// Pending -> InPreparation -> Ready -> Delivered.
//
// Example:
//
//	handler := NewAdvanceOrderCommandHandler(uowFactory, notifier, metrics, logger)
//	advanced, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown order
//	case err != nil:
//	    // storage failure or persistent version conflict
//	case !advanced:
//	    // final status, nothing changed
//	}
type AdvanceOrderCommandHandler struct {
	changer      statusChanger
	stateMachine order.StateMachine
}

func NewAdvanceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	metrics ports.MetricsRecorder,
	logger *slog.Logger,
) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		changer: statusChanger{
			uowFactory: uowFactory,
			notifier:   notifier,
			metrics:    metrics,
			logger:     logger.With("component", "advance_order_handler"),
		},
		stateMachine: order.NewStateMachine(),
	}
}

// Handle returns true when the order moved to a new status. Final orders
// return false without error.
func (h AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	return h.changer.change(ctx, cmd.OrderID(), h.stateMachine.Advance, cmd.NotifyUserID(), "")
}

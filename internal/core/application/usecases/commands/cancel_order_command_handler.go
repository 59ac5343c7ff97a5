package commands

import (
	"context"
	"log/slog"

	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/core/ports"
)

// CancelOrderCommandHandler cancels Pending and InPreparation orders.
// Ready orders are already at the counter and cannot be cancelled.
// Stock consumed by a cancelled order is not returned to the ledger.
type CancelOrderCommandHandler struct {
	changer      statusChanger
	stateMachine order.StateMachine
}

func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	metrics ports.MetricsRecorder,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		changer: statusChanger{
			uowFactory: uowFactory,
			notifier:   notifier,
			metrics:    metrics,
			logger:     logger.With("component", "cancel_order_handler"),
		},
		stateMachine: order.NewStateMachine(),
	}
}

// Handle returns true when the order was cancelled, false when its status
// does not allow cancellation.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	return h.changer.change(ctx, cmd.OrderID(), h.stateMachine.Cancel, cmd.NotifyUserID(), cmd.Reason())
}

package commands

import (
	"context"
	"errors"
	"log/slog"

	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/core/domain/services"
	"cafeteria/internal/core/ports"
	"cafeteria/internal/pkg/errs"
)

// SubmitOrderCommandHandler turns a validated cart into a Pending order.
//
// Submission is two-phase inside one unit of work: every line is checked
// against the stock ledger before anything is decremented, and the order is
// only persisted after all decrements succeeded. Any failure rolls the whole
// unit of work back, so stock is never partially consumed.
//
// The cart is cleared and the customer notified only after commit; failures
// of either are logged and do not affect the result.
type SubmitOrderCommandHandler struct {
	uowFactory UoWFactory
	codes      CodeGenerator
	cart       ports.CartService
	notifier   ports.Notifier
	metrics    ports.MetricsRecorder
	logger     *slog.Logger
}

func NewSubmitOrderCommandHandler(
	uowFactory UoWFactory,
	codes CodeGenerator,
	cart ports.CartService,
	notifier ports.Notifier,
	metrics ports.MetricsRecorder,
	logger *slog.Logger,
) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		uowFactory: uowFactory,
		codes:      codes,
		cart:       cart,
		notifier:   notifier,
		metrics:    metrics,
		logger:     logger.With("component", "submit_order_handler"),
	}
}

// Handle submits the order and returns it with its storage identity set.
func (h SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := h.submit(ctx, cmd)
	if err != nil {
		h.metrics.SubmissionRejected(rejectionReason(err))
		return nil, err
	}
	h.metrics.OrderSubmitted()

	h.logger.InfoContext(ctx, "order submitted",
		"order_id", o.ID().String(),
		"code", o.Code().String(),
		"customer_id", int64(o.CustomerID()),
		"total", o.Total().String(),
	)

	if err = h.cart.Clear(ctx, cmd.CustomerID()); err != nil {
		h.logger.WarnContext(ctx, "failed to clear cart", "customer_id", int64(cmd.CustomerID()), "error", err)
	}

	h.notifier.Notify(ctx, o.CustomerID(), services.SubmittedMessage(o.Code()))

	return o, nil
}

func (h SubmitOrderCommandHandler) submit(ctx context.Context, cmd SubmitOrderCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ledger := uow.StockLedger()
	catalog := uow.PriceCatalog()
	orderRepo := uow.OrderRepository()

	items := cmd.Lines()

	for _, item := range items {
		ok, err := ledger.CheckAvailable(ctx, item.ProductID, item.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			available, err := ledger.Available(ctx, item.ProductID)
			if err != nil {
				return nil, err
			}
			return nil, errs.NewInsufficientStockError(int64(item.ProductID), item.Quantity, available)
		}
	}

	lines := make([]order.Line, 0, len(items))
	for _, item := range items {
		price, err := catalog.UnitPrice(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}

		line, err := order.NewLine(item.ProductID, item.Quantity, price)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	code, err := h.codes.Generate(ctx)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(code, cmd.CustomerID(), cmd.DeliveryAt(), lines,
		order.WithNotes(cmd.Notes()),
		order.WithPaymentMethod(cmd.PaymentMethod()),
	)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if err = ledger.Decrement(ctx, item.ProductID, item.Quantity); err != nil {
			return nil, err
		}
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, errs.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, services.ErrCodeGenerationExhausted):
		return "code_exhausted"
	case errors.Is(err, errs.ErrObjectNotFound):
		return "not_found"
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		return "invalid"
	default:
		return "error"
	}
}

// Package fulfillment exposes the order fulfillment core as one service.
//
// Service is a thin facade: it turns primitive arguments into commands and
// queries and delegates to their handlers, which own the transactional
// behaviour. Inbound adapters and jobs depend on Service only.
package fulfillment

import (
	"context"
	"time"

	"cafeteria/internal/core/application/usecases/commands"
	"cafeteria/internal/core/application/usecases/queries"
	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/core/ports"
)

// SubmitOrderRequest is a customer's cart at checkout.
type SubmitOrderRequest struct {
	CustomerID    kernel.CustomerID
	DeliveryAt    time.Time
	Lines         []commands.LineItem
	Notes         string
	PaymentMethod string
}

// SalesSummary is the delivered-order total for a range of days.
type SalesSummary = queries.GetSalesSummaryQueryResponse

// CustomerOverview splits a customer's orders into active and completed.
type CustomerOverview = queries.GetCustomerOverviewQueryResponse

// Handlers groups the use case handlers behind the service, plus the
// customer-facing cart and inbox stores.
type Handlers struct {
	Submit           commands.SubmitOrderCommandHandler
	Advance          commands.AdvanceOrderCommandHandler
	Cancel           commands.CancelOrderCommandHandler
	Restock          commands.RestockProductCommandHandler
	ListByStatus     queries.ListOrdersByStatusQueryHandler
	ListInStatus     queries.ListOrdersInStatusQueryHandler
	FindByCode       queries.FindOrdersByCodeQueryHandler
	FindByCustomer   queries.FindOrdersByCustomerQueryHandler
	CustomerOverview queries.GetCustomerOverviewQueryHandler
	SalesSummary     queries.GetSalesSummaryQueryHandler

	Carts ports.CartService
	Inbox ports.NotificationInbox
}

// Service is the fulfillment API used by the HTTP adapter and jobs.
type Service struct {
	h Handlers
}

func NewService(h Handlers) *Service {
	return &Service{h: h}
}

// Submit validates the cart, reserves stock, issues a code and persists a
// Pending order. See commands.SubmitOrderCommandHandler.
func (s *Service) Submit(ctx context.Context, req SubmitOrderRequest) (*order.Order, error) {
	cmd, err := commands.NewSubmitOrderCommand(req.CustomerID, req.DeliveryAt, req.Lines, req.Notes, req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	return s.h.Submit.Handle(ctx, cmd)
}

// AdvanceState moves the order one step forward. notifyUserID may be nil.
func (s *Service) AdvanceState(ctx context.Context, orderID kernel.UUID, notifyUserID *kernel.CustomerID) (bool, error) {
	cmd, err := commands.NewAdvanceOrderCommand(orderID, notifyUserID)
	if err != nil {
		return false, err
	}
	return s.h.Advance.Handle(ctx, cmd)
}

// Cancel cancels a Pending or InPreparation order. notifyUserID may be nil.
func (s *Service) Cancel(
	ctx context.Context,
	orderID kernel.UUID,
	reason string,
	notifyUserID *kernel.CustomerID,
) (bool, error) {
	cmd, err := commands.NewCancelOrderCommand(orderID, reason, notifyUserID)
	if err != nil {
		return false, err
	}
	return s.h.Cancel.Handle(ctx, cmd)
}

// ListByState groups every order by status.
func (s *Service) ListByState(ctx context.Context) (map[order.Status][]*order.Order, error) {
	return s.h.ListByStatus.Handle(ctx, queries.NewListOrdersByStatusQuery())
}

// ListInState returns the orders in one status, oldest first.
func (s *Service) ListInState(ctx context.Context, status order.Status) ([]*order.Order, error) {
	query, err := queries.NewListOrdersInStatusQuery(status)
	if err != nil {
		return nil, err
	}
	return s.h.ListInStatus.Handle(ctx, query)
}

// ListByStateAndDateRange groups orders created between the start of start's
// day and the end of end's day.
func (s *Service) ListByStateAndDateRange(
	ctx context.Context,
	start, end time.Time,
) (map[order.Status][]*order.Order, error) {
	query, err := queries.NewListOrdersByStatusInRangeQuery(start, end)
	if err != nil {
		return nil, err
	}
	return s.h.ListByStatus.Handle(ctx, query)
}

// FindByCode returns the orders whose code matches the trimmed, uppercased input.
func (s *Service) FindByCode(ctx context.Context, code string) ([]*order.Order, error) {
	return s.h.FindByCode.Handle(ctx, queries.NewFindOrdersByCodeQuery(code))
}

// FindByCustomer returns the customer's orders, newest first.
func (s *Service) FindByCustomer(ctx context.Context, customerID kernel.CustomerID) ([]*order.Order, error) {
	query, err := queries.NewFindOrdersByCustomerQuery(customerID)
	if err != nil {
		return nil, err
	}
	return s.h.FindByCustomer.Handle(ctx, query)
}

func (s *Service) CustomerOverview(ctx context.Context, customerID kernel.CustomerID) (CustomerOverview, error) {
	query, err := queries.NewGetCustomerOverviewQuery(customerID)
	if err != nil {
		return CustomerOverview{}, err
	}
	return s.h.CustomerOverview.Handle(ctx, query)
}

func (s *Service) SalesSummary(ctx context.Context, start, end time.Time) (SalesSummary, error) {
	query, err := queries.NewGetSalesSummaryQuery(start, end)
	if err != nil {
		return SalesSummary{}, err
	}
	return s.h.SalesSummary.Handle(ctx, query)
}

// Restock adds units of a product to the stock ledger.
func (s *Service) Restock(ctx context.Context, productID kernel.ProductID, quantity int) error {
	cmd, err := commands.NewRestockProductCommand(productID, quantity)
	if err != nil {
		return err
	}
	return s.h.Restock.Handle(ctx, cmd)
}

package queries

import (
	"context"
	"errors"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/pkg/guard"
)

var ErrGetCustomerOverviewQueryIsNotConstructed = errors.New(
	"GetCustomerOverviewQuery must be created via NewGetCustomerOverviewQuery constructor",
)

// GetCustomerOverviewQuery splits a customer's orders into those still in
// progress and those that reached a final status.
type GetCustomerOverviewQuery struct {
	customerID kernel.CustomerID

	guard guard.ConstructorGuard
}

func NewGetCustomerOverviewQuery(customerID kernel.CustomerID) (GetCustomerOverviewQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetCustomerOverviewQuery{}, err
	}

	return GetCustomerOverviewQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCustomerOverviewQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerOverviewQueryIsNotConstructed)
}

func (q GetCustomerOverviewQuery) CustomerID() kernel.CustomerID {
	return q.customerID
}

// GetCustomerOverviewQueryResponse keeps the newest-first order of the history.
type GetCustomerOverviewQueryResponse struct {
	Active    []*order.Order
	Completed []*order.Order
}

// GetCustomerOverviewQueryHandler builds the overview from the order history.
type GetCustomerOverviewQueryHandler struct {
	reader OrderReader
}

func NewGetCustomerOverviewQueryHandler(reader OrderReader) GetCustomerOverviewQueryHandler {
	return GetCustomerOverviewQueryHandler{reader: reader}
}

func (h GetCustomerOverviewQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerOverviewQuery,
) (GetCustomerOverviewQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCustomerOverviewQueryResponse{}, err
	}

	orders, err := h.reader.FindByCustomer(ctx, query.CustomerID())
	if err != nil {
		return GetCustomerOverviewQueryResponse{}, err
	}

	resp := GetCustomerOverviewQueryResponse{
		Active:    make([]*order.Order, 0),
		Completed: make([]*order.Order, 0),
	}
	for _, o := range orders {
		if o.Status().IsFinal() {
			resp.Completed = append(resp.Completed, o)
		} else {
			resp.Active = append(resp.Active, o)
		}
	}

	return resp, nil
}

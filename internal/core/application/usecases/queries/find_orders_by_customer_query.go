package queries

import (
	"errors"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/pkg/guard"
)

var ErrFindOrdersByCustomerQueryIsNotConstructed = errors.New(
	"FindOrdersByCustomerQuery must be created via NewFindOrdersByCustomerQuery constructor",
)

// FindOrdersByCustomerQuery lists one customer's order history.
type FindOrdersByCustomerQuery struct {
	customerID kernel.CustomerID

	guard guard.ConstructorGuard
}

func NewFindOrdersByCustomerQuery(customerID kernel.CustomerID) (FindOrdersByCustomerQuery, error) {
	if err := customerID.Validate(); err != nil {
		return FindOrdersByCustomerQuery{}, err
	}

	return FindOrdersByCustomerQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q FindOrdersByCustomerQuery) Validate() error {
	return q.guard.Validate(ErrFindOrdersByCustomerQueryIsNotConstructed)
}

func (q FindOrdersByCustomerQuery) CustomerID() kernel.CustomerID {
	return q.customerID
}

package kernel

import (
	"fmt"

	"cafeteria/internal/pkg/errs"
)

// CustomerID references a customer owned by the user administration subsystem.
type CustomerID int64

// Validate rejects non-positive identifiers.
func (id CustomerID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("customer id", fmt.Errorf("%d is not greater than 0", id))
	}
	return nil
}

// ProductID references a catalog product.
type ProductID int64

// Validate rejects non-positive identifiers.
func (id ProductID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("product id", fmt.Errorf("%d is not greater than 0", id))
	}
	return nil
}

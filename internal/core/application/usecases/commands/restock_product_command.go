package commands

import (
	"errors"
	"fmt"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/pkg/errs"
	"cafeteria/internal/pkg/guard"
)

var ErrRestockProductCommandIsNotConstructed = errors.New(
	"RestockProductCommand must be created via NewRestockProductCommand constructor",
)

// RestockProductCommand adds units of a product to the stock ledger.
type RestockProductCommand struct {
	productID kernel.ProductID
	quantity  int

	guard guard.ConstructorGuard
}

func NewRestockProductCommand(productID kernel.ProductID, quantity int) (RestockProductCommand, error) {
	var quantityErr error
	if quantity <= 0 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}

	if err := errors.Join(productID.Validate(), quantityErr); err != nil {
		return RestockProductCommand{}, err
	}

	return RestockProductCommand{
		productID: productID,
		quantity:  quantity,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RestockProductCommand) Validate() error {
	return c.guard.Validate(ErrRestockProductCommandIsNotConstructed)
}

func (c RestockProductCommand) ProductID() kernel.ProductID {
	return c.productID
}

func (c RestockProductCommand) Quantity() int {
	return c.quantity
}

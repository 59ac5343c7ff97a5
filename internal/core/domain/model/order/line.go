package order

import (
	"errors"
	"fmt"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/pkg/errs"
)

// Line is one product of an order. The unit price is a snapshot taken at
// submission, so later catalog price changes never alter existing orders.
// Lines are values and are never mutated after creation.
type Line struct {
	productID kernel.ProductID
	quantity  int
	unitPrice kernel.Money
}

// NewLine validates and creates a line.
func NewLine(productID kernel.ProductID, quantity int, unitPrice kernel.Money) (Line, error) {
	var quantityErr error
	if quantity <= 0 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}

	if err := errors.Join(productID.Validate(), quantityErr); err != nil {
		return Line{}, err
	}

	return Line{
		productID: productID,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

// ProductID returns the referenced product.
func (l Line) ProductID() kernel.ProductID {
	return l.productID
}

// Quantity returns the ordered quantity.
func (l Line) Quantity() int {
	return l.quantity
}

// UnitPrice returns the price captured at submission.
func (l Line) UnitPrice() kernel.Money {
	return l.unitPrice
}

// Subtotal returns UnitPrice × Quantity.
func (l Line) Subtotal() kernel.Money {
	return l.unitPrice.Mul(l.quantity)
}

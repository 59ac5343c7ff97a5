package order

import (
	"errors"
	"fmt"
	"time"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderIDAlreadyAssigned is returned when storage tries to assign an identity
	// to an order that already has one.
	ErrOrderIDAlreadyAssigned = errors.New("order id is already assigned")
)

// Order is the aggregate root of the fulfillment core: a customer's order and
// its lines, persisted and versioned as one unit.
//
// Order follows these invariants:
//   - The code is a valid OrderCode and never changes
//   - There is at least one line, and every line has a positive quantity
//   - Total always equals the sum of the line subtotals
//   - The status only changes through StateMachine
//   - The identity is zero until storage assigns it, and is assigned once
//
// Associations to the customer and products are plain identifiers; nothing
// is loaded lazily.
type Order struct {
	// id is issued by the repository on first save
	id kernel.UUID

	// code is the human-readable reference given to the customer
	code kernel.OrderCode

	customerID kernel.CustomerID

	// deliveryAt is the pickup time requested by the customer
	deliveryAt time.Time

	status    Status
	createdAt time.Time

	notes         string
	paymentMethod string

	lines []Line

	// version is the optimistic concurrency token compared on update
	version int

	isConstructed bool
}

// Option sets optional order attributes in NewOrder.
type Option func(*Order)

// WithNotes attaches free-text instructions for the kitchen.
func WithNotes(notes string) Option {
	return func(o *Order) {
		o.notes = notes
	}
}

// WithPaymentMethod records how the customer intends to pay at the counter.
func WithPaymentMethod(method string) Option {
	return func(o *Order) {
		o.paymentMethod = method
	}
}

// WithCreatedAt overrides the creation timestamp, which otherwise is the
// current UTC time.
func WithCreatedAt(t time.Time) Option {
	return func(o *Order) {
		o.createdAt = t.UTC()
	}
}

// NewOrder creates a Pending order. This is the only way to create a new
// order; all business invariants are validated here.
//
// Parameters:
//   - code: a code issued by the CodeGenerator
//   - customerID: the customer placing the order
//   - deliveryAt: the requested pickup time (must be set)
//   - lines: one or more lines with prices already captured
//
// Example:
//
//	code, _ := generator.Generate(ctx)
//	line, _ := order.NewLine(productID, 2, unitPrice)
//	o, err := order.NewOrder(code, customerID, pickup, []order.Line{line},
//	    order.WithNotes("no onions"))
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	code kernel.OrderCode,
	customerID kernel.CustomerID,
	deliveryAt time.Time,
	lines []Line,
	opts ...Option,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     time.Now().UTC(),
		version:       0,
		isConstructed: true,
	}

	for _, opt := range opts {
		opt(o)
	}

	if err := errors.Join(
		o.setCode(code),
		o.setCustomerID(customerID),
		o.setDeliveryAt(deliveryAt),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds a persisted order. Repositories use it to map
// storage rows back into the aggregate; it validates the same invariants as
// NewOrder plus the identity and status.
func RestoreOrder(
	id kernel.UUID,
	code kernel.OrderCode,
	customerID kernel.CustomerID,
	deliveryAt time.Time,
	createdAt time.Time,
	status Status,
	notes string,
	paymentMethod string,
	lines []Line,
	version int,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt.UTC(),
		notes:         notes,
		paymentMethod: paymentMethod,
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCode(code),
		o.setCustomerID(customerID),
		o.setDeliveryAt(deliveryAt),
		o.setStatus(status),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two persisted orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && !o.id.IsZero() && o.id.IsEqual(other.id)
}

// ID returns the storage-issued identity, or the zero UUID before the first save.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Code returns the order code.
func (o *Order) Code() kernel.OrderCode {
	return o.code
}

// CustomerID returns the customer who placed the order.
func (o *Order) CustomerID() kernel.CustomerID {
	return o.customerID
}

// DeliveryAt returns the requested pickup time.
func (o *Order) DeliveryAt() time.Time {
	return o.deliveryAt
}

// Status returns the current status.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp in UTC.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Notes returns the kitchen notes, if any.
func (o *Order) Notes() string {
	return o.notes
}

// PaymentMethod returns the payment method, if any.
func (o *Order) PaymentMethod() string {
	return o.paymentMethod
}

// Version returns the optimistic concurrency token.
func (o *Order) Version() int {
	return o.version
}

// Lines returns a copy of the order lines in submission order.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// Total returns the sum of the line subtotals.
func (o *Order) Total() kernel.Money {
	var total kernel.Money
	for _, line := range o.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// AssignID sets the identity issued by storage. It is called by repositories
// on first save and fails if the order already has an identity.
func (o *Order) AssignID(id kernel.UUID) error {
	if !o.id.IsZero() {
		return ErrOrderIDAlreadyAssigned
	}
	return o.setID(id)
}

// IncrementVersion records a successful update. It is called by repositories
// after the stored version has been advanced.
func (o *Order) IncrementVersion() {
	o.version++
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCode(code kernel.OrderCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	o.code = code
	return nil
}

func (o *Order) setCustomerID(customerID kernel.CustomerID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setDeliveryAt(deliveryAt time.Time) error {
	if deliveryAt.IsZero() {
		return errs.NewValueIsRequiredError("delivery time")
	}
	o.deliveryAt = deliveryAt
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setLines copies lines so callers cannot mutate the aggregate afterwards.
func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}

	for i, line := range lines {
		if line.quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("lines", fmt.Errorf("line %d is not constructed", i))
		}
	}

	o.lines = make([]Line, len(lines))
	copy(o.lines, lines)
	return nil
}

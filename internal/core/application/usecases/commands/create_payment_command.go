package commands

import (
	"errors"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/pkg/guard"
)

var ErrCreatePaymentCommandIsNotConstructed = errors.New(
	"CreatePaymentCommand must be created via NewCreatePaymentCommand constructor",
)

// CreatePaymentCommand opens a pending payment for a newly created order.
// Driven by order.created events; the order is the natural key, so the same
// event delivered twice creates the payment only once.
type CreatePaymentCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreatePaymentCommand creates a command to open a payment for an order.
func NewCreatePaymentCommand(orderID, customerID kernel.UUID) (CreatePaymentCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		customerID.Validate(),
	); err != nil {
		return CreatePaymentCommand{}, err
	}

	return CreatePaymentCommand{
		orderID:    orderID,
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrCreatePaymentCommandIsNotConstructed)
}

// OrderID returns the order the payment belongs to.
func (c CreatePaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the paying customer.
func (c CreatePaymentCommand) CustomerID() kernel.UUID {
	return c.customerID
}

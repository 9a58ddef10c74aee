package commands

import (
	"errors"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/pkg/guard"
)

var ErrFailPaymentCommandIsNotConstructed = errors.New(
	"FailPaymentCommand must be created via NewFailPaymentCommand constructor",
)

// FailPaymentCommand records a gateway denial for an order's payment.
type FailPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewFailPaymentCommand creates a command to fail the payment for an order.
// The reason may be empty; the domain substitutes a generic one.
func NewFailPaymentCommand(orderID kernel.UUID, reason string) (FailPaymentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return FailPaymentCommand{}, err
	}

	return FailPaymentCommand{
		orderID: orderID,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c FailPaymentCommand) Validate() error {
	return c.guard.Validate(ErrFailPaymentCommandIsNotConstructed)
}

// OrderID returns the order whose payment was denied.
func (c FailPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the gateway's denial reason.
func (c FailPaymentCommand) Reason() string {
	return c.reason
}

package commands

import (
	"errors"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/pkg/guard"
)

var ErrConfirmOrderCommandIsNotConstructed = errors.New(
	"ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor",
)

// ConfirmOrderCommand represents a payment confirmation for an order.
// Carries the gateway transaction reference for the tracking history.
type ConfirmOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	transactionID string

	guard guard.ConstructorGuard
}

// NewConfirmOrderCommand creates a command to confirm an order after its
// payment completed. The transaction identifier may be empty when the
// upstream event did not carry one.
func NewConfirmOrderCommand(orderID kernel.UUID, transactionID string) (ConfirmOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ConfirmOrderCommand{}, err
	}

	return ConfirmOrderCommand{
		orderID:       orderID,
		transactionID: transactionID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to confirm.
func (c ConfirmOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TransactionID returns the payment gateway transaction reference.
func (c ConfirmOrderCommand) TransactionID() string {
	return c.transactionID
}

package commands

import (
	"errors"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/pkg/guard"
)

var ErrFailOrderCommandIsNotConstructed = errors.New(
	"FailOrderCommand must be created via NewFailOrderCommand constructor",
)

// FailOrderCommand marks an order as failed, typically after a payment
// denial or an unrecoverable delivery problem.
type FailOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewFailOrderCommand creates a command to fail an order. An empty reason
// is replaced with a generic one.
func NewFailOrderCommand(orderID kernel.UUID, reason string) (FailOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return FailOrderCommand{}, err
	}

	if reason == "" {
		reason = "Order processing failed"
	}

	return FailOrderCommand{
		orderID: orderID,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c FailOrderCommand) Validate() error {
	return c.guard.Validate(ErrFailOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to fail.
func (c FailOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the failure description recorded in the tracking history.
func (c FailOrderCommand) Reason() string {
	return c.reason
}

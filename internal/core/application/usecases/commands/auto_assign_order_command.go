package commands

import (
	"errors"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/pkg/guard"
)

var ErrAutoAssignOrderCommandIsNotConstructed = errors.New(
	"AutoAssignOrderCommand must be created via NewAutoAssignOrderCommand constructor",
)

// AutoAssignOrderCommand asks the system to pick a courier for a confirmed
// order. Issued a short while after confirmation and again by the periodic
// dispatch sweep for orders the first attempt could not cover.
type AutoAssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAutoAssignOrderCommand creates a command to auto-assign a courier.
func NewAutoAssignOrderCommand(orderID kernel.UUID) (AutoAssignOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AutoAssignOrderCommand{}, err
	}

	return AutoAssignOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AutoAssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAutoAssignOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to assign.
func (c AutoAssignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

package commands

import (
	"errors"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/order"
	"parceldelivery/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents a courier reporting delivery progress:
// pickup, transit milestones, delivery, or a problem on the route.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	courierID  kernel.UUID
	target     order.Status
	note       string
	coordinate *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command for a courier-driven status
// change. The note and coordinate are optional context for the tracking
// history.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	courierID kernel.UUID,
	target order.Status,
	note string,
	coordinate *kernel.GeoPoint,
) (UpdateOrderStatusCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		courierID.Validate(),
		target.Validate(),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return UpdateOrderStatusCommand{
		orderID:    orderID,
		courierID:  courierID,
		target:     target,
		note:       note,
		coordinate: coordinate,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being updated.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the courier reporting the change.
func (c UpdateOrderStatusCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Target returns the status the courier wants the order moved to.
func (c UpdateOrderStatusCommand) Target() order.Status {
	return c.target
}

// Note returns the optional free-form description of the change.
func (c UpdateOrderStatusCommand) Note() string {
	return c.note
}

// Coordinate returns the courier's reported position, if any.
func (c UpdateOrderStatusCommand) Coordinate() *kernel.GeoPoint {
	return c.coordinate
}

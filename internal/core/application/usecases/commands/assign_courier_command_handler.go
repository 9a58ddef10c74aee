package commands

import (
	"context"
	"log/slog"

	"parceldelivery/internal/core/domain/model/assignment"
	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/ports"
)

// AssignCourierCommandHandler performs a manual courier assignment.
// Moves the order to AssignedToCourier, records an Active assignment and
// publishes order.assigned together with order.status.changed.
//
// Example:
//
//	handler := NewAssignCourierCommandHandler(uowFactory, publisher, logger)
//	cmd, _ := NewAssignCourierCommand(orderID, courierID, nil)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("assignment failed: %v", err)
//	}
type AssignCourierCommandHandler struct {
	uowFactory DispatchUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewAssignCourierCommandHandler creates a handler for manual assignment.
func NewAssignCourierCommandHandler(
	uowFactory DispatchUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "AssignCourierCommandHandler"),
	}
}

// Handle assigns the courier within a single transaction covering both the
// order and the assignment record. The domain rejects orders that are not
// Confirmed.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return assignCourierToOrder(
		ctx,
		h.uowFactory,
		h.publisher,
		h.logger,
		cmd.OrderID(),
		cmd.CourierID(),
		cmd.VehicleID(),
		"Courier assigned by dispatcher",
	)
}

// assignCourierToOrder is shared between manual and automatic assignment.
// Both paths differ only in how the courier was chosen and in the note
// recorded in the tracking history.
func assignCourierToOrder(
	ctx context.Context,
	uowFactory DispatchUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
	orderID kernel.UUID,
	courierID kernel.UUID,
	vehicleID *string,
	note string,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	anOrder, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	oldStatus := anOrder.Status()
	if err = anOrder.AssignCourier(courierID, vehicleID, note); err != nil {
		return err
	}

	newAssignment, err := assignment.NewAssignment(kernel.NewUUID(), anOrder.ID(), courierID, vehicleID)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, anOrder); err != nil {
		return err
	}

	if err = uow.AssignmentRepository().Add(ctx, newAssignment); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = publisher.PublishOrderAssigned(ctx, anOrder); err != nil {
		logger.WarnContext(ctx, "failed to publish order.assigned",
			"orderId", anOrder.ID().String(), "error", err)
	}

	if err = publisher.PublishOrderStatusChanged(ctx, anOrder, oldStatus, anOrder.Status()); err != nil {
		logger.WarnContext(ctx, "failed to publish order.status.changed",
			"orderId", anOrder.ID().String(), "error", err)
	}

	return nil
}

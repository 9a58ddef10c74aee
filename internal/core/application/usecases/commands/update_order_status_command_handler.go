package commands

import (
	"context"
	"errors"
	"log/slog"

	"parceldelivery/internal/core/domain/model/order"
	"parceldelivery/internal/core/ports"
	"parceldelivery/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler applies a courier's progress report to an
// order. The domain enforces both the transition graph and that the
// reporting courier is the one assigned, so a hijacked or stale report is
// rejected before any state changes.
//
// When the order reaches Delivered the active assignment completes and
// order.completed is published; Failed and Returned cancel the assignment
// instead.
type UpdateOrderStatusCommandHandler struct {
	uowFactory DispatchUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewUpdateOrderStatusCommandHandler creates a handler for courier status
// reports.
func NewUpdateOrderStatusCommandHandler(
	uowFactory DispatchUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "UpdateOrderStatusCommandHandler"),
	}
}

// Handle advances the order, settles the assignment for terminal outcomes
// and publishes the resulting events.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	anOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	oldStatus := anOrder.Status()
	if err = anOrder.AdvanceByCourier(cmd.CourierID(), cmd.Target(), cmd.Note(), cmd.Coordinate()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, anOrder); err != nil {
		return err
	}

	if err = h.settleAssignment(ctx, uow, cmd); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.publisher.PublishOrderStatusChanged(ctx, anOrder, oldStatus, anOrder.Status()); err != nil {
		h.logger.WarnContext(ctx, "failed to publish order.status.changed",
			"orderId", anOrder.ID().String(), "error", err)
	}

	if anOrder.Status() == order.Delivered {
		if err = h.publisher.PublishOrderCompleted(ctx, anOrder); err != nil {
			h.logger.WarnContext(ctx, "failed to publish order.completed",
				"orderId", anOrder.ID().String(), "error", err)
		}
	}

	return nil
}

func (h UpdateOrderStatusCommandHandler) settleAssignment(
	ctx context.Context,
	uow DispatchUoW,
	cmd UpdateOrderStatusCommand,
) error {
	var settle func() error

	assignmentRepo := uow.AssignmentRepository()
	activeAssignment, err := assignmentRepo.GetActiveByOrderID(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	switch cmd.Target() {
	case order.Delivered:
		settle = activeAssignment.Complete
	case order.Failed, order.Returned:
		settle = activeAssignment.Cancel
	default:
		return nil
	}

	if err = settle(); err != nil {
		return err
	}

	return assignmentRepo.Update(ctx, activeAssignment)
}

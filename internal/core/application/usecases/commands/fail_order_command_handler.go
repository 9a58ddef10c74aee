package commands

import (
	"context"
	"errors"
	"log/slog"

	"parceldelivery/internal/core/ports"
	"parceldelivery/internal/pkg/errs"
)

// FailOrderCommandHandler transitions an order to Failed and cancels its
// active courier assignment if one exists. Orders already in a terminal
// state are left untouched so redelivered payment.failed events no-op.
type FailOrderCommandHandler struct {
	uowFactory DispatchUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewFailOrderCommandHandler creates a handler for order failure operations.
func NewFailOrderCommandHandler(
	uowFactory DispatchUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) FailOrderCommandHandler {
	return FailOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "FailOrderCommandHandler"),
	}
}

// Handle fails the order, releases the courier and publishes
// order.status.changed.
func (h FailOrderCommandHandler) Handle(ctx context.Context, cmd FailOrderCommand) error {
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

	if anOrder.Status().IsTerminal() {
		h.logger.InfoContext(ctx, "order already in terminal status, skipping",
			"orderId", anOrder.ID().String(), "status", anOrder.Status().String())
		return nil
	}

	oldStatus := anOrder.Status()
	if err = anOrder.Fail(cmd.Reason(), nil); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, anOrder); err != nil {
		return err
	}

	assignmentRepo := uow.AssignmentRepository()
	activeAssignment, err := assignmentRepo.GetActiveByOrderID(ctx, anOrder.ID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		// nothing to release
	case err != nil:
		return err
	default:
		if err = activeAssignment.Cancel(); err != nil {
			return err
		}
		if err = assignmentRepo.Update(ctx, activeAssignment); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.publisher.PublishOrderStatusChanged(ctx, anOrder, oldStatus, anOrder.Status()); err != nil {
		h.logger.WarnContext(ctx, "failed to publish order.status.changed",
			"orderId", anOrder.ID().String(), "error", err)
	}

	return nil
}

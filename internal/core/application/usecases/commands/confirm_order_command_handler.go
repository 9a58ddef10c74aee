package commands

import (
	"context"
	"fmt"
	"log/slog"

	"parceldelivery/internal/core/domain/model/order"
	"parceldelivery/internal/core/ports"
)

// ConfirmOrderCommandHandler moves a paid order from Pending to Confirmed.
// Redelivered payment events are tolerated: confirming an order that already
// left Pending is a no-op, which keeps the consumer idempotent.
type ConfirmOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewConfirmOrderCommandHandler creates a handler for order confirmation.
func NewConfirmOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "ConfirmOrderCommandHandler"),
	}
}

// Handle confirms the order and publishes order.status.changed.
// Returns nil without changes when the order is no longer Pending.
func (h ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) error {
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

	if anOrder.Status() != order.Pending {
		h.logger.InfoContext(ctx, "order already confirmed, skipping duplicate",
			"orderId", anOrder.ID().String(), "status", anOrder.Status().String())
		return nil
	}

	oldStatus := anOrder.Status()
	note := "Payment confirmed"
	if cmd.TransactionID() != "" {
		note = fmt.Sprintf("Payment confirmed. Transaction ID: %s", cmd.TransactionID())
	}

	if err = anOrder.Confirm(note); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, anOrder); err != nil {
		return err
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

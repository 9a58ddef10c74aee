package commands

import (
	"context"
	"errors"
	"log/slog"

	"parceldelivery/internal/core/domain/model/order"
	"parceldelivery/internal/core/domain/services"
	"parceldelivery/internal/core/ports"
)

// AutoAssignOrderCommandHandler selects a courier through the configured
// CourierPicker policy and assigns it to the order. The order's status is
// re-read before assigning, so a command scheduled while the order was
// Confirmed quietly declines if the order was cancelled, failed or manually
// assigned in the meantime.
type AutoAssignOrderCommandHandler struct {
	uowFactory DispatchUoWFactory
	picker     services.CourierPicker
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewAutoAssignOrderCommandHandler creates a handler for automatic
// courier assignment.
func NewAutoAssignOrderCommandHandler(
	uowFactory DispatchUoWFactory,
	picker services.CourierPicker,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) AutoAssignOrderCommandHandler {
	return AutoAssignOrderCommandHandler{
		uowFactory: uowFactory,
		picker:     picker,
		publisher:  publisher,
		logger:     logger.With("component", "AutoAssignOrderCommandHandler"),
	}
}

// Handle attempts the assignment and reports whether one happened.
// Returns (false, nil) when the order is not Confirmed anymore or when no
// courier qualifies; the dispatch sweep retries such orders later.
func (h AutoAssignOrderCommandHandler) Handle(ctx context.Context, cmd AutoAssignOrderCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	anOrder, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	_ = uow.Rollback(ctx)
	if err != nil {
		return false, err
	}

	if anOrder.Status() != order.Confirmed {
		h.logger.DebugContext(ctx, "order not eligible for auto-assignment",
			"orderId", anOrder.ID().String(), "status", anOrder.Status().String())
		return false, nil
	}

	courierID, err := h.picker.Pick(ctx)
	if errors.Is(err, services.ErrNoCourierAvailable) {
		h.logger.InfoContext(ctx, "no courier available, order stays queued",
			"orderId", anOrder.ID().String())
		return false, nil
	}
	if err != nil {
		return false, err
	}

	err = assignCourierToOrder(
		ctx,
		h.uowFactory,
		h.publisher,
		h.logger,
		anOrder.ID(),
		courierID,
		nil,
		"Automatically assigned by system",
	)
	if err != nil {
		return false, err
	}

	h.logger.InfoContext(ctx, "courier auto-assigned",
		"orderId", anOrder.ID().String(), "courierId", courierID.String())
	return true, nil
}

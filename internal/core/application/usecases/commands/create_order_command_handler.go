package commands

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"parceldelivery/internal/core/domain/model/order"
	"parceldelivery/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Persists a new order in Pending status and announces it on the bus.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher, logger)
//	cmd, _ := NewCreateOrderCommand(orderID, customerID,
//	    order.PriorityStandard, addresses, parcels, nil)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// Order is now created and awaiting payment confirmation
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence and an
// OrderEventPublisher for the order.created announcement.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "CreateOrderCommandHandler"),
	}
}

// Handle processes the order creation command.
// Generates a human-readable order number, persists the order and publishes
// order.created. A publish failure is logged and swallowed: the committed
// order is the source of truth.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		generateOrderNumber(),
		cmd.CustomerID(),
		cmd.Priority(),
		cmd.Addresses(),
		cmd.Parcels(),
		cmd.EstimatedDeliveryTime(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.publisher.PublishOrderCreated(ctx, newOrder); err != nil {
		h.logger.WarnContext(ctx, "failed to publish order.created",
			"orderId", newOrder.ID().String(), "error", err)
	}

	return nil
}

// generateOrderNumber builds a human-readable tracking number,
// e.g. ORD-1735689600000-042.
func generateOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%03d", time.Now().UnixMilli(), rand.IntN(1000))
}

package queue

import (
	"context"
	"encoding/json"
	"log/slog"

	"parceldelivery/internal/contracts"
	"parceldelivery/internal/core/application/usecases/commands"
	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/ports"
)

type createPaymentHandler interface {
	Handle(ctx context.Context, cmd commands.CreatePaymentCommand) error
}

// OrderEventsConsumer is the payment service's consumer for order.created.
// Each new order lazily gets a PENDING payment; redeliveries are absorbed by
// the handler's natural-key check.
type OrderEventsConsumer struct {
	createPayment createPaymentHandler
	logger        *slog.Logger
}

// NewOrderEventsConsumer creates the consumer.
func NewOrderEventsConsumer(createPayment createPaymentHandler, logger *slog.Logger) *OrderEventsConsumer {
	return &OrderEventsConsumer{
		createPayment: createPayment,
		logger:        logger.With("component", "OrderEventsConsumer"),
	}
}

// Register binds the consumer's queue on the subscriber.
func (c *OrderEventsConsumer) Register(subscriber ports.EventSubscriber) error {
	return subscriber.Subscribe(
		contracts.RoutingKeyOrderCreated, QueuePaymentServiceOrderCreated, c.HandleOrderCreated,
	)
}

// HandleOrderCreated opens the pending payment for the new order.
func (c *OrderEventsConsumer) HandleOrderCreated(ctx context.Context, body []byte) error {
	var event contracts.OrderCreated
	if err := json.Unmarshal(body, &event); err != nil {
		c.logger.ErrorContext(ctx, "dropping malformed order.created", "error", err)
		return nil
	}

	if event.OrderID == "" || event.CustomerID == "" {
		c.logger.ErrorContext(ctx, "dropping order.created without identifiers",
			"orderId", event.OrderID, "customerId", event.CustomerID)
		return nil
	}

	orderID, err := kernel.UUIDFromString(event.OrderID)
	if err != nil {
		c.logger.ErrorContext(ctx, "dropping order.created with invalid orderId",
			"orderId", event.OrderID, "error", err)
		return nil
	}

	customerID, err := kernel.UUIDFromString(event.CustomerID)
	if err != nil {
		c.logger.ErrorContext(ctx, "dropping order.created with invalid customerId",
			"customerId", event.CustomerID, "error", err)
		return nil
	}

	cmd, err := commands.NewCreatePaymentCommand(orderID, customerID)
	if err != nil {
		return err
	}

	return c.createPayment.Handle(ctx, cmd)
}

package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"parceldelivery/internal/contracts"
	"parceldelivery/internal/core/ports"
)

// NotificationConsumer is the notification service's single consumer. It
// listens to order and payment milestones and turns each into a customer
// notification.
//
// Events carry only the customer identifier; contact resolution against the
// user service is not implemented, so the identifier is used as the
// recipient address and the configured Notifier decides how to deliver.
type NotificationConsumer struct {
	notifier ports.Notifier
	logger   *slog.Logger
}

// NewNotificationConsumer creates the consumer.
func NewNotificationConsumer(notifier ports.Notifier, logger *slog.Logger) *NotificationConsumer {
	return &NotificationConsumer{
		notifier: notifier,
		logger:   logger.With("component", "NotificationConsumer"),
	}
}

// Register binds all five notification queues on the subscriber.
func (c *NotificationConsumer) Register(subscriber ports.EventSubscriber) error {
	bindings := []struct {
		routingKey string
		queueName  string
		handler    ports.MessageHandler
	}{
		{contracts.RoutingKeyOrderCreated, QueueNotificationOrderCreated, c.HandleOrderCreated},
		{contracts.RoutingKeyOrderStatusChanged, QueueNotificationOrderStatusChanged, c.HandleOrderStatusChanged},
		{contracts.RoutingKeyOrderCompleted, QueueNotificationOrderCompleted, c.HandleOrderCompleted},
		{contracts.RoutingKeyPaymentCompleted, QueueNotificationPaymentCompleted, c.HandlePaymentCompleted},
		{contracts.RoutingKeyPaymentFailed, QueueNotificationPaymentFailed, c.HandlePaymentFailed},
	}

	for _, b := range bindings {
		if err := subscriber.Subscribe(b.routingKey, b.queueName, b.handler); err != nil {
			return err
		}
	}
	return nil
}

// HandleOrderCreated welcomes the customer with the tracking number.
func (c *NotificationConsumer) HandleOrderCreated(ctx context.Context, body []byte) error {
	var event contracts.OrderCreated
	if err := json.Unmarshal(body, &event); err != nil {
		c.logger.ErrorContext(ctx, "dropping malformed order.created", "error", err)
		return nil
	}
	if event.CustomerID == "" {
		c.logger.ErrorContext(ctx, "dropping order.created without customerId")
		return nil
	}

	return c.notifier.SendEmail(ctx, event.CustomerID,
		"Order received",
		fmt.Sprintf("Your order %s has been received and is awaiting payment.", event.OrderNumber))
}

// HandleOrderStatusChanged informs the customer about delivery progress.
func (c *NotificationConsumer) HandleOrderStatusChanged(ctx context.Context, body []byte) error {
	var event contracts.OrderStatusChanged
	if err := json.Unmarshal(body, &event); err != nil {
		c.logger.ErrorContext(ctx, "dropping malformed order.status.changed", "error", err)
		return nil
	}
	if event.CustomerID == "" {
		c.logger.ErrorContext(ctx, "dropping order.status.changed without customerId")
		return nil
	}

	return c.notifier.SendEmail(ctx, event.CustomerID,
		"Order status updated",
		fmt.Sprintf("Order %s moved from %s to %s.", event.OrderNumber, event.OldStatus, event.NewStatus))
}

// HandleOrderCompleted confirms the delivery.
func (c *NotificationConsumer) HandleOrderCompleted(ctx context.Context, body []byte) error {
	var event contracts.OrderCompleted
	if err := json.Unmarshal(body, &event); err != nil {
		c.logger.ErrorContext(ctx, "dropping malformed order.completed", "error", err)
		return nil
	}
	if event.CustomerID == "" {
		c.logger.ErrorContext(ctx, "dropping order.completed without customerId")
		return nil
	}

	return c.notifier.SendEmail(ctx, event.CustomerID,
		"Order delivered",
		fmt.Sprintf("Order %s was delivered at %s.", event.OrderNumber,
			event.ActualDeliveryTime.Format("2006-01-02 15:04")))
}

// HandlePaymentCompleted confirms the charge.
func (c *NotificationConsumer) HandlePaymentCompleted(ctx context.Context, body []byte) error {
	var event contracts.PaymentCompleted
	if err := json.Unmarshal(body, &event); err != nil {
		c.logger.ErrorContext(ctx, "dropping malformed payment.completed", "error", err)
		return nil
	}
	if event.CustomerID == "" {
		c.logger.ErrorContext(ctx, "dropping payment.completed without customerId")
		return nil
	}

	return c.notifier.SendEmail(ctx, event.CustomerID,
		"Payment confirmed",
		fmt.Sprintf("Payment of %.2f for order %s was confirmed.", event.Amount, event.OrderID))
}

// HandlePaymentFailed alerts the customer about the denial.
func (c *NotificationConsumer) HandlePaymentFailed(ctx context.Context, body []byte) error {
	var event contracts.PaymentFailed
	if err := json.Unmarshal(body, &event); err != nil {
		c.logger.ErrorContext(ctx, "dropping malformed payment.failed", "error", err)
		return nil
	}
	if event.CustomerID == "" {
		c.logger.ErrorContext(ctx, "dropping payment.failed without customerId")
		return nil
	}

	return c.notifier.SendEmail(ctx, event.CustomerID,
		"Payment failed",
		fmt.Sprintf("Payment for order %s failed: %s", event.OrderID, event.Reason))
}

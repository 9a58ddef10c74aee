package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"parceldelivery/internal/contracts"
	"parceldelivery/internal/core/application/usecases/commands"
	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/ports"
	"parceldelivery/internal/pkg/errs"
)

// confirmOrderHandler and friends narrow the command handlers for mocking.
type (
	confirmOrderHandler interface {
		Handle(ctx context.Context, cmd commands.ConfirmOrderCommand) error
	}
	failOrderHandler interface {
		Handle(ctx context.Context, cmd commands.FailOrderCommand) error
	}
	autoAssignHandler interface {
		Handle(ctx context.Context, cmd commands.AutoAssignOrderCommand) (bool, error)
	}
)

// PaymentEventsConsumer is the order service's consumer for payment
// outcomes. A completed payment confirms the order and arms the delayed
// auto-assignment; a failed payment fails the order.
type PaymentEventsConsumer struct {
	confirm       confirmOrderHandler
	fail          failOrderHandler
	autoAssign    autoAssignHandler
	dispatchDelay time.Duration
	logger        *slog.Logger
}

// NewPaymentEventsConsumer creates the consumer. dispatchDelay is the pause
// between order confirmation and the auto-assignment attempt.
func NewPaymentEventsConsumer(
	confirm confirmOrderHandler,
	fail failOrderHandler,
	autoAssign autoAssignHandler,
	dispatchDelay time.Duration,
	logger *slog.Logger,
) *PaymentEventsConsumer {
	return &PaymentEventsConsumer{
		confirm:       confirm,
		fail:          fail,
		autoAssign:    autoAssign,
		dispatchDelay: dispatchDelay,
		logger:        logger.With("component", "PaymentEventsConsumer"),
	}
}

// Register binds the consumer's queues on the subscriber.
func (c *PaymentEventsConsumer) Register(subscriber ports.EventSubscriber) error {
	if err := subscriber.Subscribe(
		contracts.RoutingKeyPaymentCompleted, QueueOrderServicePayment, c.HandlePaymentCompleted,
	); err != nil {
		return err
	}
	return subscriber.Subscribe(
		contracts.RoutingKeyPaymentFailed, QueueOrderServicePaymentFailed, c.HandlePaymentFailed,
	)
}

// HandlePaymentCompleted confirms the order and schedules auto-assignment.
func (c *PaymentEventsConsumer) HandlePaymentCompleted(ctx context.Context, body []byte) error {
	var event contracts.PaymentCompleted
	if err := json.Unmarshal(body, &event); err != nil {
		c.logger.ErrorContext(ctx, "dropping malformed payment.completed", "error", err)
		return nil
	}

	orderID, ok := c.parseOrderID(ctx, "payment.completed", event.OrderID)
	if !ok {
		return nil
	}

	cmd, err := commands.NewConfirmOrderCommand(orderID, event.TransactionID)
	if err != nil {
		return err
	}

	err = c.confirm.Handle(ctx, cmd)
	if errors.Is(err, errs.ErrObjectNotFound) {
		c.logger.WarnContext(ctx, "dropping payment.completed for unknown order",
			"orderId", event.OrderID)
		return nil
	}
	if err != nil {
		return err
	}

	c.scheduleAutoAssign(orderID)
	return nil
}

// HandlePaymentFailed fails the order.
func (c *PaymentEventsConsumer) HandlePaymentFailed(ctx context.Context, body []byte) error {
	var event contracts.PaymentFailed
	if err := json.Unmarshal(body, &event); err != nil {
		c.logger.ErrorContext(ctx, "dropping malformed payment.failed", "error", err)
		return nil
	}

	orderID, ok := c.parseOrderID(ctx, "payment.failed", event.OrderID)
	if !ok {
		return nil
	}

	reason := event.Reason
	if reason == "" {
		reason = "Payment failed"
	}

	cmd, err := commands.NewFailOrderCommand(orderID, reason)
	if err != nil {
		return err
	}

	err = c.fail.Handle(ctx, cmd)
	if errors.Is(err, errs.ErrObjectNotFound) {
		c.logger.WarnContext(ctx, "dropping payment.failed for unknown order",
			"orderId", event.OrderID)
		return nil
	}
	return err
}

func (c *PaymentEventsConsumer) parseOrderID(ctx context.Context, event, raw string) (kernel.UUID, bool) {
	if raw == "" {
		c.logger.ErrorContext(ctx, "dropping event without orderId", "event", event)
		return kernel.UUID{}, false
	}

	orderID, err := kernel.UUIDFromString(raw)
	if err != nil {
		c.logger.ErrorContext(ctx, "dropping event with invalid orderId",
			"event", event, "orderId", raw, "error", err)
		return kernel.UUID{}, false
	}

	return orderID, true
}

// scheduleAutoAssign arms the delayed dispatch. The handler re-reads the
// order before acting, so a trigger firing for an order that left Confirmed
// in the meantime quietly declines. Lost triggers (process restarts) are
// covered by the periodic dispatch sweep.
func (c *PaymentEventsConsumer) scheduleAutoAssign(orderID kernel.UUID) {
	time.AfterFunc(c.dispatchDelay, func() {
		cmd, err := commands.NewAutoAssignOrderCommand(orderID)
		if err != nil {
			c.logger.Error("failed to build auto-assign command",
				"orderId", orderID.String(), "error", err)
			return
		}

		assigned, err := c.autoAssign.Handle(context.Background(), cmd)
		if err != nil {
			c.logger.Error("delayed auto-assignment failed",
				"orderId", orderID.String(), "error", err)
			return
		}
		if !assigned {
			c.logger.Info("delayed auto-assignment declined, sweep will retry",
				"orderId", orderID.String())
		}
	})
}

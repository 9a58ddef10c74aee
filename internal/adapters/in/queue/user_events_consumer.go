package queue

import (
	"context"
	"encoding/json"
	"log/slog"

	"parceldelivery/internal/contracts"
	"parceldelivery/internal/core/ports"
)

// UserEventsConsumer is the order service's consumer for user service
// events. Both bindings are observational today: user profile changes and
// courier availability are logged so the topology and contract stay
// exercised, while reassignment logic does not exist yet.
type UserEventsConsumer struct {
	logger *slog.Logger
}

// NewUserEventsConsumer creates the consumer.
func NewUserEventsConsumer(logger *slog.Logger) *UserEventsConsumer {
	return &UserEventsConsumer{logger: logger.With("component", "UserEventsConsumer")}
}

// Register binds the consumer's queues on the subscriber.
func (c *UserEventsConsumer) Register(subscriber ports.EventSubscriber) error {
	if err := subscriber.Subscribe(
		contracts.RoutingKeyUserUpdated, QueueOrderServiceUser, c.HandleUserUpdated,
	); err != nil {
		return err
	}
	return subscriber.Subscribe(
		contracts.RoutingKeyCourierAvailabilityChanged,
		QueueOrderServiceCourierAvailability,
		c.HandleCourierAvailabilityChanged,
	)
}

// HandleUserUpdated records the profile change.
func (c *UserEventsConsumer) HandleUserUpdated(ctx context.Context, body []byte) error {
	var event contracts.UserUpdated
	if err := json.Unmarshal(body, &event); err != nil {
		c.logger.ErrorContext(ctx, "dropping malformed user.updated", "error", err)
		return nil
	}

	if event.UserID == "" {
		c.logger.ErrorContext(ctx, "dropping user.updated without user_id")
		return nil
	}

	c.logger.InfoContext(ctx, "user profile updated",
		"userId", event.UserID, "email", event.Email, "role", event.Role)
	return nil
}

// HandleCourierAvailabilityChanged records the availability change.
func (c *UserEventsConsumer) HandleCourierAvailabilityChanged(ctx context.Context, body []byte) error {
	var event contracts.CourierAvailabilityChanged
	if err := json.Unmarshal(body, &event); err != nil {
		c.logger.ErrorContext(ctx, "dropping malformed courier.availability.changed", "error", err)
		return nil
	}

	if event.CourierID == "" {
		c.logger.ErrorContext(ctx, "dropping courier.availability.changed without courierId")
		return nil
	}

	c.logger.InfoContext(ctx, "courier availability changed",
		"courierId", event.CourierID, "available", event.IsAvailable, "status", event.Status)
	return nil
}

package ports

import (
	"context"

	"parceldelivery/internal/core/domain/model/order"
	"parceldelivery/internal/core/domain/model/payment"
)

// Publish is best-effort relative to the caller's local commit: the local
// write is the durable source of truth and a publish failure must be logged
// and swallowed, never rolled back against already-committed state.

// OrderEventPublisher emits the order service's domain facts.
type OrderEventPublisher interface {
	// PublishOrderCreated emits order.created for a freshly persisted order.
	PublishOrderCreated(ctx context.Context, o *order.Order) error

	// PublishOrderStatusChanged emits order.status.changed carrying the old
	// and new status and the courier if one is assigned.
	PublishOrderStatusChanged(ctx context.Context, o *order.Order, oldStatus, newStatus order.Status) error

	// PublishOrderAssigned emits order.assigned after a courier was bound.
	PublishOrderAssigned(ctx context.Context, o *order.Order) error

	// PublishOrderCompleted emits order.completed when an order reaches
	// DELIVERED, in addition to the generic status-changed event.
	PublishOrderCompleted(ctx context.Context, o *order.Order) error
}

// PaymentEventPublisher emits the payment service's domain facts.
type PaymentEventPublisher interface {
	// PublishPaymentCompleted emits payment.completed after a capture.
	PublishPaymentCompleted(ctx context.Context, p *payment.Payment) error

	// PublishPaymentFailed emits payment.failed after a denial.
	PublishPaymentFailed(ctx context.Context, p *payment.Payment) error
}

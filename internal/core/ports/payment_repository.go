package ports

import (
	"context"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payment aggregates.
type PaymentRepository interface {
	// Add persists a new payment aggregate.
	Add(ctx context.Context, aggregate *payment.Payment) error

	// Update persists changes to an existing payment aggregate.
	Update(ctx context.Context, aggregate *payment.Payment) error

	// Get retrieves a payment by its unique identifier.
	// Returns errs.ErrObjectNotFound when no such payment exists.
	Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error)

	// GetByOrderID retrieves the payment for an order. This is the natural
	// key consulted by the idempotent creation path for order.created.
	// Returns errs.ErrObjectNotFound when no payment exists for the order.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error)
}

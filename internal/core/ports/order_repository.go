package ports

import (
	"context"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Reads and updates are atomic per aggregate; cross-aggregate consistency
// comes from consumed events, not from transactions spanning services.
type OrderRepository interface {
	// Add persists a new order aggregate, including its addresses, parcels,
	// and initial tracking event.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate and appends any
	// new tracking events.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInConfirmedStatus retrieves orders awaiting courier assignment.
	// Used by the dispatch sweep to converge orders whose delayed
	// auto-assignment trigger was lost.
	GetAllInConfirmedStatus(ctx context.Context) ([]*order.Order, error)

	// GetAllUncompleted retrieves orders not yet in a terminal state.
	GetAllUncompleted(ctx context.Context) ([]*order.Order, error)
}

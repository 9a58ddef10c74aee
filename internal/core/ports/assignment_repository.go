package ports

import (
	"context"

	"parceldelivery/internal/core/domain/model/assignment"
	"parceldelivery/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for courier
// assignment aggregates.
type AssignmentRepository interface {
	// Add persists a new assignment.
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	// Update persists changes to an existing assignment.
	Update(ctx context.Context, aggregate *assignment.Assignment) error

	// GetActiveByOrderID retrieves the order's ACTIVE assignment.
	// Returns errs.ErrObjectNotFound when the order has none; at most one
	// exists per order.
	GetActiveByOrderID(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error)

	// FindExperiencedFreeCourier finds a courier with at least one COMPLETED
	// assignment and no ACTIVE assignment. Returns errs.ErrObjectNotFound
	// when no such courier exists. This backs the placeholder assignment
	// policy; it is not a geospatial match.
	FindExperiencedFreeCourier(ctx context.Context) (kernel.UUID, error)
}

package ports

import "context"

// UnitOfWork coordinates a transaction spanning the order service's
// aggregates. Command handlers depend on narrower slices of this interface;
// the full surface exists for the composition root and integration tests.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	AssignmentRepository() AssignmentRepository
	PaymentRepository() PaymentRepository
}

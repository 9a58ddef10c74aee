// Package services contains domain services that do not belong to a single
// aggregate. Currently: the courier selection policy behind auto-assignment.
package services

import (
	"context"
	"errors"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/ports"
	"parceldelivery/internal/pkg/errs"
)

// ErrNoCourierAvailable is returned when no courier satisfies the selection
// policy. Auto-assignment treats it as a decline, not a failure: the order
// stays CONFIRMED and manual claim remains available.
var ErrNoCourierAvailable = errors.New("no courier available for assignment")

// CourierPicker selects a courier for a confirmed order.
//
// The interface is deliberately narrow so the placeholder policy can be
// swapped for a real matching strategy (or a deterministic one in tests)
// without touching the assignment workflow.
type CourierPicker interface {
	// Pick returns the chosen courier, or ErrNoCourierAvailable when the
	// policy declines.
	Pick(ctx context.Context) (kernel.UUID, error)
}

// ExperiencedCourierPolicy is the default placeholder policy: pick any
// courier who has completed at least one prior assignment and has no ACTIVE
// assignment right now. It performs no geospatial matching.
type ExperiencedCourierPolicy struct {
	assignments ports.AssignmentRepository
}

// NewExperiencedCourierPolicy creates the default policy over the
// assignment history.
func NewExperiencedCourierPolicy(assignments ports.AssignmentRepository) ExperiencedCourierPolicy {
	return ExperiencedCourierPolicy{assignments: assignments}
}

// Pick implements CourierPicker.
func (p ExperiencedCourierPolicy) Pick(ctx context.Context) (kernel.UUID, error) {
	courierID, err := p.assignments.FindExperiencedFreeCourier(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.UUID{}, ErrNoCourierAvailable
	}
	if err != nil {
		return kernel.UUID{}, err
	}
	return courierID, nil
}

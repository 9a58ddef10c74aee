// Package assignment contains the courier assignment aggregate owned by the
// order service. An order accumulates assignment history; at most one
// assignment per order is ACTIVE at a time.
package assignment

import (
	"errors"
	"fmt"
	"time"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/pkg/errs"
)

// ErrAssignmentIsNotConstructed is returned when an Assignment instance was
// not created through NewAssignment or RestoreAssignment.
var ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment or RestoreAssignment")

// Status represents the lifecycle state of a courier assignment.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Active means the courier currently works the order.
	Active

	// Completed means the courier delivered the order.
	Completed

	// Cancelled means the assignment ended without delivery.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Active:    "ACTIVE",
		Completed: "COMPLETED",
		Cancelled: "CANCELLED",
	}
}

// StatusFromString parses the wire representation of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known assignment status", s))
}

// String returns the wire representation of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks that the status is one of the defined states.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid assignment status", s))
	}
	return nil
}

// Assignment binds a courier (and optionally a vehicle) to one order.
type Assignment struct {
	id         kernel.UUID
	orderID    kernel.UUID
	courierID  kernel.UUID
	vehicleID  *string
	status     Status
	assignedAt time.Time

	isConstructed bool
}

// NewAssignment creates an Active assignment stamped with the current time.
func NewAssignment(id, orderID, courierID kernel.UUID, vehicleID *string) (*Assignment, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		courierID.Validate(),
	); err != nil {
		return nil, err
	}

	return &Assignment{
		id:            id,
		orderID:       orderID,
		courierID:     courierID,
		vehicleID:     vehicleID,
		status:        Active,
		assignedAt:    time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreAssignment reconstructs an assignment from persistence.
func RestoreAssignment(
	id, orderID, courierID kernel.UUID,
	vehicleID *string,
	status Status,
	assignedAt time.Time,
) (*Assignment, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		courierID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Assignment{
		id:            id,
		orderID:       orderID,
		courierID:     courierID,
		vehicleID:     vehicleID,
		status:        status,
		assignedAt:    assignedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the assignment was built through a constructor.
func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

// ID returns the assignment's unique identifier.
func (a *Assignment) ID() kernel.UUID { return a.id }

// OrderID returns the assigned order's identifier.
func (a *Assignment) OrderID() kernel.UUID { return a.orderID }

// CourierID returns the assigned courier's identifier.
func (a *Assignment) CourierID() kernel.UUID { return a.courierID }

// VehicleID returns the assigned vehicle's identifier, nil when none.
func (a *Assignment) VehicleID() *string { return a.vehicleID }

// Status returns the assignment's lifecycle status.
func (a *Assignment) Status() Status { return a.status }

// AssignedAt returns when the assignment was created.
func (a *Assignment) AssignedAt() time.Time { return a.assignedAt }

// Complete marks an Active assignment as Completed (order delivered).
func (a *Assignment) Complete() error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.status != Active {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot complete a %s assignment", a.status))
	}
	a.status = Completed
	return nil
}

// Cancel marks an Active assignment as Cancelled (order failed or returned).
func (a *Assignment) Cancel() error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.status != Active {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot cancel a %s assignment", a.status))
	}
	a.status = Cancelled
	return nil
}

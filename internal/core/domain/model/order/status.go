package order

import (
	"fmt"

	"parceldelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery order.
// It implements the state machine driving the cross-service workflow:
//
//	PENDING ──> CONFIRMED ──> ASSIGNED_TO_COURIER ──> PICKED_UP ──> IN_TRANSIT ──> OUT_FOR_DELIVERY ──> DELIVERED
//	   │            │                 │                   │             │                  │
//	   └────────────┴─────────────────┴───────────────────┴─────────────┴──────────────────┴──> FAILED
//
// CANCELLED is reachable until the parcel is picked up; RETURNED once a
// courier is involved. DELIVERED, FAILED, CANCELLED, and RETURNED are
// terminal: no further transitions are allowed out of them.
type Status int

const (
	// Unknown represents an invalid or undefined status. The zero value
	// helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status; the order awaits payment confirmation.
	Pending

	// Confirmed means payment was captured; the order awaits assignment.
	Confirmed

	// AssignedToCourier means a courier has been bound to the order.
	AssignedToCourier

	// PickedUp means the assigned courier collected the parcel.
	PickedUp

	// InTransit means the parcel is moving through the network.
	InTransit

	// OutForDelivery means the parcel is on its final leg.
	OutForDelivery

	// Delivered is the successful terminal state.
	Delivered

	// Failed is the terminal state for payment failures and courier-reported
	// delivery failures.
	Failed

	// Cancelled is the terminal state for orders withdrawn before pickup.
	Cancelled

	// Returned is the terminal state for parcels sent back to the sender.
	Returned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "UNKNOWN",
		Pending:           "PENDING",
		Confirmed:         "CONFIRMED",
		AssignedToCourier: "ASSIGNED_TO_COURIER",
		PickedUp:          "PICKED_UP",
		InTransit:         "IN_TRANSIT",
		OutForDelivery:    "OUT_FOR_DELIVERY",
		Delivered:         "DELIVERED",
		Failed:            "FAILED",
		Cancelled:         "CANCELLED",
		Returned:          "RETURNED",
	}
}

// validTransitions is the full transition graph. A status missing from the
// map is terminal.
func validTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:           {Confirmed, Failed, Cancelled},
		Confirmed:         {AssignedToCourier, Failed, Cancelled},
		AssignedToCourier: {PickedUp, Failed, Cancelled, Returned},
		PickedUp:          {InTransit, Failed, Returned},
		InTransit:         {OutForDelivery, Failed, Returned},
		OutForDelivery:    {Delivered, Failed, Returned},
	}
}

// StatusFromString parses the wire representation of a status
// (e.g. "ASSIGNED_TO_COURIER") as carried by event payloads and HTTP requests.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

// String returns the wire representation of the status.
// Implements fmt.Stringer; safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no transition leads out of the status.
func (s Status) IsTerminal() bool {
	if s.Validate() != nil {
		return false
	}
	_, hasSuccessors := validTransitions()[s]
	return !hasSuccessors
}

// CanTransitionTo reports whether the graph permits moving to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range validTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs a transition along the defined graph.
// Returns the new status, or an error when the edge does not exist.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("transition from %s to %s is not allowed", s, target),
		)
	}
	return target, nil
}

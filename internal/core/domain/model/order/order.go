package order

import (
	"errors"
	"fmt"
	"time"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrCourierMismatch is returned when a courier-issued transition comes
	// from a courier other than the one assigned to the order. This is an
	// authorization failure, rejected synchronously and never published.
	ErrCourierMismatch = errors.New("courier is not assigned to this order")

	// ErrCourierRequired is returned when assignment is attempted without a
	// valid courier identifier.
	ErrCourierRequired = errors.New("courier id is required for assignment")
)

// Priority classifies how urgently an order should be handled.
type Priority string

const (
	PriorityStandard Priority = "STANDARD"
	PriorityExpress  Priority = "EXPRESS"
	PriorityUrgent   Priority = "URGENT"
)

// Validate checks the priority against the known set.
func (p Priority) Validate() error {
	switch p {
	case PriorityStandard, PriorityExpress, PriorityUrgent:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not a known priority", string(p)))
	}
}

// Order is the aggregate root for a delivery order. Its status field is the
// single source of truth for the workflow position; trackingEvents is the
// append-only audit trail of applied transitions.
//
// Invariants:
//   - at least one address and one parcel
//   - status transitions follow the graph defined on Status
//   - courier-issued transitions require the acting courier to match the
//     assigned one
//   - every applied transition appends exactly one tracking event
//   - actualDeliveryTime is set exactly once, when the order is delivered
//
// The order service is the only writer of this aggregate; other services
// influence it solely through consumed events.
type Order struct {
	id             kernel.UUID
	orderNumber    string
	customerID     kernel.UUID
	courierID      *kernel.UUID
	vehicleID      *string
	priority       Priority
	status         Status
	addresses      []Address
	parcels        []Parcel
	trackingEvents []TrackingEvent

	estimatedDeliveryTime *time.Time
	actualDeliveryTime    *time.Time
	createdAt             time.Time

	isConstructed bool
}

// NewOrder creates an order in Pending status with its initial
// ORDER_CREATED tracking event.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	customerID kernel.UUID,
	priority Priority,
	addresses []Address,
	parcels []Parcel,
	estimatedDeliveryTime *time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		priority.Validate(),
	); err != nil {
		return nil, err
	}
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}
	if len(addresses) == 0 {
		return nil, errs.NewValueIsRequiredError("addresses")
	}
	if len(parcels) == 0 {
		return nil, errs.NewValueIsRequiredError("parcels")
	}

	o := &Order{
		id:                    id,
		orderNumber:           orderNumber,
		customerID:            customerID,
		priority:              priority,
		status:                Pending,
		addresses:             addresses,
		parcels:               parcels,
		estimatedDeliveryTime: estimatedDeliveryTime,
		createdAt:             time.Now().UTC(),
		isConstructed:         true,
	}

	if err := o.appendTrackingEvent(EventOrderCreated, nil, "Order created by customer", nil); err != nil {
		return nil, err
	}
	return o, nil
}

// RestoreOrder reconstructs an order from persistence without re-running
// creation side effects.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	customerID kernel.UUID,
	courierID *kernel.UUID,
	vehicleID *string,
	priority Priority,
	status Status,
	addresses []Address,
	parcels []Parcel,
	trackingEvents []TrackingEvent,
	estimatedDeliveryTime *time.Time,
	actualDeliveryTime *time.Time,
	createdAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:                    id,
		orderNumber:           orderNumber,
		customerID:            customerID,
		courierID:             courierID,
		vehicleID:             vehicleID,
		priority:              priority,
		status:                status,
		addresses:             addresses,
		parcels:               parcels,
		trackingEvents:        trackingEvents,
		estimatedDeliveryTime: estimatedDeliveryTime,
		actualDeliveryTime:    actualDeliveryTime,
		createdAt:             createdAt,
		isConstructed:         true,
	}, nil
}

// Validate ensures the order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// OrderNumber returns the human-facing order number.
func (o *Order) OrderNumber() string { return o.orderNumber }

// CustomerID returns the owning customer's identifier.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// Courier returns the assigned courier's identifier, nil when unassigned.
func (o *Order) Courier() *kernel.UUID { return o.courierID }

// Vehicle returns the assigned vehicle's identifier, nil when none.
func (o *Order) Vehicle() *string { return o.vehicleID }

// Priority returns the order's priority class.
func (o *Order) Priority() Priority { return o.priority }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// Addresses returns the order's addresses.
func (o *Order) Addresses() []Address { return o.addresses }

// Parcels returns the order's parcels.
func (o *Order) Parcels() []Parcel { return o.parcels }

// TrackingEvents returns a copy of the append-only audit trail.
func (o *Order) TrackingEvents() []TrackingEvent {
	events := make([]TrackingEvent, len(o.trackingEvents))
	copy(events, o.trackingEvents)
	return events
}

// EstimatedDeliveryTime returns the promised delivery time, nil when unset.
func (o *Order) EstimatedDeliveryTime() *time.Time { return o.estimatedDeliveryTime }

// ActualDeliveryTime returns when the order was delivered, nil before that.
func (o *Order) ActualDeliveryTime() *time.Time { return o.actualDeliveryTime }

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// Confirm moves the order from Pending to Confirmed after payment capture.
// Only the payment.completed consumer drives this transition.
func (o *Order) Confirm(note string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	newStatus, err := o.status.TransitionTo(Confirmed)
	if err != nil {
		return err
	}
	o.status = newStatus
	return o.appendTrackingEvent(EventOrderConfirmed, nil, note, nil)
}

// Fail moves the order to the Failed terminal state. Driven by
// payment.failed or by a courier-reported delivery failure; courierID is nil
// for payment failures.
func (o *Order) Fail(reason string, courierID *kernel.UUID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	newStatus, err := o.status.TransitionTo(Failed)
	if err != nil {
		return err
	}
	o.status = newStatus
	return o.appendTrackingEvent(EventFailed, courierID, reason, nil)
}

// Cancel moves the order to the Cancelled terminal state. Allowed only
// before pickup.
func (o *Order) Cancel(note string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	newStatus, err := o.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}
	o.status = newStatus
	return o.appendTrackingEvent(EventCancelled, nil, note, nil)
}

// AssignCourier binds a courier (and optionally a vehicle) to a Confirmed
// order, moving it to AssignedToCourier.
func (o *Order) AssignCourier(courierID kernel.UUID, vehicleID *string, note string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := courierID.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrCourierRequired, err)
	}
	newStatus, err := o.status.TransitionTo(AssignedToCourier)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	o.vehicleID = vehicleID
	return o.appendTrackingEvent(EventCourierAssigned, &courierID, note, nil)
}

// AdvanceByCourier applies a courier-issued transition (pickup, transit legs,
// delivery, failure, return). The acting courier must be the assigned one;
// a mismatch is rejected before any state is touched, leaving no tracking
// event behind.
//
// Reaching Delivered stamps actualDeliveryTime exactly once.
func (o *Order) AdvanceByCourier(courierID kernel.UUID, target Status, note string, coordinate *kernel.GeoPoint) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.courierID == nil || !o.courierID.IsEqual(courierID) {
		return ErrCourierMismatch
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	if newStatus == Delivered && o.actualDeliveryTime == nil {
		now := time.Now().UTC()
		o.actualDeliveryTime = &now
	}
	return o.appendTrackingEvent(trackingEventTypeFor(newStatus), &courierID, note, coordinate)
}

func (o *Order) appendTrackingEvent(
	eventType TrackingEventType,
	courierID *kernel.UUID,
	notes string,
	coordinate *kernel.GeoPoint,
) error {
	event, err := NewTrackingEvent(eventType, courierID, notes, coordinate)
	if err != nil {
		return err
	}
	o.trackingEvents = append(o.trackingEvents, event)
	return nil
}

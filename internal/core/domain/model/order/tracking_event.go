package order

import (
	"time"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/pkg/errs"
)

// TrackingEventType labels an entry of the order's audit trail.
type TrackingEventType string

const (
	EventOrderCreated    TrackingEventType = "ORDER_CREATED"
	EventOrderConfirmed  TrackingEventType = "ORDER_CONFIRMED"
	EventCourierAssigned TrackingEventType = "COURIER_ASSIGNED"
	EventParcelPickedUp  TrackingEventType = "PARCEL_PICKED_UP"
	EventInTransit       TrackingEventType = "IN_TRANSIT"
	EventOutForDelivery  TrackingEventType = "OUT_FOR_DELIVERY"
	EventDelivered       TrackingEventType = "DELIVERED"
	EventFailed          TrackingEventType = "FAILED"
	EventCancelled       TrackingEventType = "CANCELLED"
	EventReturned        TrackingEventType = "RETURNED"
)

// trackingEventTypeFor maps a target status to the tracking event type
// recorded for the transition into it.
func trackingEventTypeFor(s Status) TrackingEventType {
	switch s {
	case Pending:
		return EventOrderCreated
	case Confirmed:
		return EventOrderConfirmed
	case AssignedToCourier:
		return EventCourierAssigned
	case PickedUp:
		return EventParcelPickedUp
	case InTransit:
		return EventInTransit
	case OutForDelivery:
		return EventOutForDelivery
	case Delivered:
		return EventDelivered
	case Failed:
		return EventFailed
	case Cancelled:
		return EventCancelled
	case Returned:
		return EventReturned
	default:
		return ""
	}
}

// TrackingEvent is one append-only entry of the order's audit trail. The
// trail records every applied status transition; rejected transitions leave
// no trace.
type TrackingEvent struct {
	eventType  TrackingEventType
	timestamp  time.Time
	courierID  *kernel.UUID
	notes      string
	coordinate *kernel.GeoPoint
}

// NewTrackingEvent creates a tracking event stamped with the current time.
func NewTrackingEvent(
	eventType TrackingEventType,
	courierID *kernel.UUID,
	notes string,
	coordinate *kernel.GeoPoint,
) (TrackingEvent, error) {
	if eventType == "" {
		return TrackingEvent{}, errs.NewValueIsRequiredError("eventType")
	}
	return TrackingEvent{
		eventType:  eventType,
		timestamp:  time.Now().UTC(),
		courierID:  courierID,
		notes:      notes,
		coordinate: coordinate,
	}, nil
}

// RestoreTrackingEvent reconstructs a tracking event from persistence.
func RestoreTrackingEvent(
	eventType TrackingEventType,
	timestamp time.Time,
	courierID *kernel.UUID,
	notes string,
	coordinate *kernel.GeoPoint,
) TrackingEvent {
	return TrackingEvent{
		eventType:  eventType,
		timestamp:  timestamp,
		courierID:  courierID,
		notes:      notes,
		coordinate: coordinate,
	}
}

// EventType returns the entry's label.
func (e TrackingEvent) EventType() TrackingEventType { return e.eventType }

// Timestamp returns when the entry was recorded.
func (e TrackingEvent) Timestamp() time.Time { return e.timestamp }

// Courier returns the acting courier, nil for system-originated entries.
func (e TrackingEvent) Courier() *kernel.UUID { return e.courierID }

// Notes returns the free-text annotation of the entry.
func (e TrackingEvent) Notes() string { return e.notes }

// Coordinate returns the reported position, nil when none was supplied.
func (e TrackingEvent) Coordinate() *kernel.GeoPoint { return e.coordinate }

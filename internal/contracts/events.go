// Package contracts defines the wire-level event contracts shared by the
// order, payment, user, and notification services: routing keys and JSON
// payload shapes. Payload field names are part of the cross-service contract
// and must not change independently per service.
package contracts

import "time"

// Exchange is the single durable topic exchange all services publish to.
const Exchange = "delivery_exchange"

// Routing keys. Bindings are exact-match even though the exchange is a topic
// exchange.
const (
	RoutingKeyOrderCreated               = "order.created"
	RoutingKeyOrderStatusChanged         = "order.status.changed"
	RoutingKeyOrderAssigned              = "order.assigned"
	RoutingKeyOrderCompleted             = "order.completed"
	RoutingKeyPaymentCompleted           = "payment.completed"
	RoutingKeyPaymentFailed              = "payment.failed"
	RoutingKeyUserUpdated                = "user.updated"
	RoutingKeyCourierAvailabilityChanged = "courier.availability.changed"
)

// Event is implemented by every payload so the broker client can assign an
// idempotency identifier when the producer did not set one. The identifier is
// stable across retries of the same logical delivery.
type Event interface {
	EventID() string
	SetEventID(id string)
}

// Meta carries the envelope fields common to every event payload.
// Embed it by pointer-receiver convention: events are published as pointers.
type Meta struct {
	ID        string    `json:"eventId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// EventID returns the idempotency identifier, empty if not yet assigned.
func (m *Meta) EventID() string { return m.ID }

// SetEventID assigns the idempotency identifier.
func (m *Meta) SetEventID(id string) { m.ID = id }

// OrderCreated is published by the order service when a customer places an
// order. Consumed by the payment service to lazily create the PENDING payment.
type OrderCreated struct {
	Meta
	OrderID               string     `json:"orderId"`
	OrderNumber           string     `json:"orderNumber"`
	CustomerID            string     `json:"customerId"`
	Status                string     `json:"status"`
	Priority              string     `json:"priority"`
	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
}

// OrderStatusChanged is published on every applied order status transition.
type OrderStatusChanged struct {
	Meta
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	CustomerID  string `json:"customerId"`
	OldStatus   string `json:"oldStatus"`
	NewStatus   string `json:"newStatus"`
	CourierID   string `json:"courierId,omitempty"`
}

// OrderAssigned is published when a courier is bound to an order, whether by
// auto-assignment or manual assignment.
type OrderAssigned struct {
	Meta
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	CustomerID  string `json:"customerId"`
	CourierID   string `json:"courierId"`
	VehicleID   string `json:"vehicleId,omitempty"`
}

// OrderCompleted is published in addition to OrderStatusChanged when an order
// reaches DELIVERED.
type OrderCompleted struct {
	Meta
	OrderID            string    `json:"orderId"`
	OrderNumber        string    `json:"orderNumber"`
	CustomerID         string    `json:"customerId"`
	CourierID          string    `json:"courierId"`
	ActualDeliveryTime time.Time `json:"actualDeliveryTime"`
}

// PaymentCompleted is published by the payment service when the gateway
// confirms a capture. Consumed by the order service (PENDING -> CONFIRMED)
// and the notification service.
type PaymentCompleted struct {
	Meta
	PaymentID     string  `json:"paymentId"`
	OrderID       string  `json:"orderId"`
	CustomerID    string  `json:"customerId"`
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"transactionId"`
	Status        string  `json:"status"`
}

// PaymentFailed is published by the payment service when a capture is denied.
type PaymentFailed struct {
	Meta
	PaymentID  string  `json:"paymentId"`
	OrderID    string  `json:"orderId"`
	CustomerID string  `json:"customerId"`
	Amount     float64 `json:"amount"`
	Reason     string  `json:"reason"`
	Status     string  `json:"status"`
}

// UserUpdated is published by the user service. The order service consumes it
// as a denormalization hook. Field names follow the user service's snake_case
// convention.
type UserUpdated struct {
	Meta
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// CourierAvailabilityChanged is published by the user service. The binding is
// reserved: the order service consumes and logs it, reassignment logic does
// not exist yet.
type CourierAvailabilityChanged struct {
	Meta
	CourierID   string `json:"courierId"`
	IsAvailable bool   `json:"isAvailable"`
	Status      string `json:"status"`
}

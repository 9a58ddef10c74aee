package rabbit

import (
	"context"
	"time"

	"parceldelivery/internal/contracts"
	"parceldelivery/internal/core/domain/model/order"
)

// Bus is the subset of Client the typed producers need. Narrowed for tests.
type Bus interface {
	Publish(ctx context.Context, routingKey string, event contracts.Event) error
}

// OrderProducer publishes the order service's domain events.
// Implements ports.OrderEventPublisher.
type OrderProducer struct {
	bus Bus
}

// NewOrderProducer creates a producer bound to the given broker client.
func NewOrderProducer(bus Bus) *OrderProducer {
	return &OrderProducer{bus: bus}
}

// PublishOrderCreated emits order.created for a freshly persisted order.
func (p *OrderProducer) PublishOrderCreated(ctx context.Context, o *order.Order) error {
	return p.bus.Publish(ctx, contracts.RoutingKeyOrderCreated, &contracts.OrderCreated{
		Meta:                  stamp(),
		OrderID:               o.ID().String(),
		OrderNumber:           o.OrderNumber(),
		CustomerID:            o.CustomerID().String(),
		Status:                o.Status().String(),
		Priority:              string(o.Priority()),
		EstimatedDeliveryTime: o.EstimatedDeliveryTime(),
		CreatedAt:             o.CreatedAt(),
	})
}

// PublishOrderStatusChanged emits order.status.changed for one transition.
func (p *OrderProducer) PublishOrderStatusChanged(
	ctx context.Context,
	o *order.Order,
	oldStatus, newStatus order.Status,
) error {
	event := &contracts.OrderStatusChanged{
		Meta:        stamp(),
		OrderID:     o.ID().String(),
		OrderNumber: o.OrderNumber(),
		CustomerID:  o.CustomerID().String(),
		OldStatus:   oldStatus.String(),
		NewStatus:   newStatus.String(),
	}
	if courier := o.Courier(); courier != nil {
		event.CourierID = courier.String()
	}
	return p.bus.Publish(ctx, contracts.RoutingKeyOrderStatusChanged, event)
}

// PublishOrderAssigned emits order.assigned after a courier was bound.
func (p *OrderProducer) PublishOrderAssigned(ctx context.Context, o *order.Order) error {
	event := &contracts.OrderAssigned{
		Meta:        stamp(),
		OrderID:     o.ID().String(),
		OrderNumber: o.OrderNumber(),
		CustomerID:  o.CustomerID().String(),
	}
	if courier := o.Courier(); courier != nil {
		event.CourierID = courier.String()
	}
	if vehicle := o.Vehicle(); vehicle != nil {
		event.VehicleID = *vehicle
	}
	return p.bus.Publish(ctx, contracts.RoutingKeyOrderAssigned, event)
}

// PublishOrderCompleted emits order.completed when an order was delivered.
func (p *OrderProducer) PublishOrderCompleted(ctx context.Context, o *order.Order) error {
	event := &contracts.OrderCompleted{
		Meta:        stamp(),
		OrderID:     o.ID().String(),
		OrderNumber: o.OrderNumber(),
		CustomerID:  o.CustomerID().String(),
	}
	if courier := o.Courier(); courier != nil {
		event.CourierID = courier.String()
	}
	if delivered := o.ActualDeliveryTime(); delivered != nil {
		event.ActualDeliveryTime = *delivered
	}
	return p.bus.Publish(ctx, contracts.RoutingKeyOrderCompleted, event)
}

func stamp() contracts.Meta {
	return contracts.Meta{Timestamp: time.Now().UTC()}
}

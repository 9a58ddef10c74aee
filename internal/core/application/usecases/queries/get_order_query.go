package queries

import (
	"errors"
	"time"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order with its full tracking history.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to fetch one order by its identifier.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// TrackingEventResponse is one entry of an order's tracking history.
type TrackingEventResponse struct {
	EventType string
	CourierID *kernel.UUID
	Note      string
	Latitude  *float64
	Longitude *float64
	CreatedAt time.Time
}

// GetOrderQueryResponse carries the full read model of one order.
type GetOrderQueryResponse struct {
	ID                    kernel.UUID
	OrderNumber           string
	CustomerID            kernel.UUID
	CourierID             *kernel.UUID
	VehicleID             *string
	Priority              string
	Status                string
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
	CreatedAt             time.Time
	TrackingEvents        []TrackingEventResponse
}

// Package http exposes the REST surfaces of the order and payment services
// on echo. Handlers translate JSON requests into application commands and
// map domain errors onto HTTP status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"parceldelivery/internal/core/application/usecases/queries"
	"parceldelivery/internal/core/domain/model/order"
	"parceldelivery/internal/pkg/errs"
)

// Error is the JSON error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AddressRequest is one address of a new order.
type AddressRequest struct {
	Type          string `json:"type"`
	ContactName   string `json:"contactName"`
	ContactPhone  string `json:"contactPhone"`
	StreetAddress string `json:"streetAddress"`
}

// ParcelRequest is one parcel of a new order.
type ParcelRequest struct {
	ParcelNumber string  `json:"parcelNumber"`
	Description  string  `json:"description"`
	WeightKg     float64 `json:"weightKg"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	CustomerID            string           `json:"customerId"`
	Priority              string           `json:"priority"`
	EstimatedDeliveryTime *time.Time       `json:"estimatedDeliveryTime,omitempty"`
	Addresses             []AddressRequest `json:"addresses"`
	Parcels               []ParcelRequest  `json:"parcels"`
}

// CreateOrderResponse acknowledges a created order.
type CreateOrderResponse struct {
	OrderID string `json:"orderId"`
}

// UpdateOrderStatusRequest is the body of PATCH /api/v1/orders/:id/status.
// Couriers report progress with their own identifier; the domain verifies
// the courier is the assigned one.
type UpdateOrderStatusRequest struct {
	CourierID string   `json:"courierId"`
	Status    string   `json:"status"`
	Note      string   `json:"note,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// AssignCourierRequest is the body of POST /api/v1/orders/:id/assign.
type AssignCourierRequest struct {
	CourierID string  `json:"courierId"`
	VehicleID *string `json:"vehicleId,omitempty"`
}

// OrderSummaryResponse is one row of GET /api/v1/orders/active.
type OrderSummaryResponse struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"orderNumber"`
	CustomerID  string    `json:"customerId"`
	CourierID   *string   `json:"courierId,omitempty"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TrackingEventResponse is one audit trail entry in an order detail.
type TrackingEventResponse struct {
	EventType string    `json:"eventType"`
	CourierID *string   `json:"courierId,omitempty"`
	Note      string    `json:"note,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// OrderDetailResponse is the body of GET /api/v1/orders/:id.
type OrderDetailResponse struct {
	ID                    string                  `json:"id"`
	OrderNumber           string                  `json:"orderNumber"`
	CustomerID            string                  `json:"customerId"`
	CourierID             *string                 `json:"courierId,omitempty"`
	VehicleID             *string                 `json:"vehicleId,omitempty"`
	Priority              string                  `json:"priority"`
	Status                string                  `json:"status"`
	EstimatedDeliveryTime *time.Time              `json:"estimatedDeliveryTime,omitempty"`
	ActualDeliveryTime    *time.Time              `json:"actualDeliveryTime,omitempty"`
	CreatedAt             time.Time               `json:"createdAt"`
	TrackingEvents        []TrackingEventResponse `json:"trackingEvents"`
}

func orderResponseFrom(resp queries.GetOrderQueryResponse) OrderDetailResponse {
	detail := OrderDetailResponse{
		ID:                    resp.ID.String(),
		OrderNumber:           resp.OrderNumber,
		CustomerID:            resp.CustomerID.String(),
		VehicleID:             resp.VehicleID,
		Priority:              resp.Priority,
		Status:                resp.Status,
		EstimatedDeliveryTime: resp.EstimatedDeliveryTime,
		ActualDeliveryTime:    resp.ActualDeliveryTime,
		CreatedAt:             resp.CreatedAt,
		TrackingEvents:        make([]TrackingEventResponse, 0, len(resp.TrackingEvents)),
	}

	if resp.CourierID != nil {
		courier := resp.CourierID.String()
		detail.CourierID = &courier
	}

	for _, event := range resp.TrackingEvents {
		entry := TrackingEventResponse{
			EventType: event.EventType,
			Note:      event.Note,
			Latitude:  event.Latitude,
			Longitude: event.Longitude,
			CreatedAt: event.CreatedAt,
		}
		if event.CourierID != nil {
			courier := event.CourierID.String()
			entry.CourierID = &courier
		}
		detail.TrackingEvents = append(detail.TrackingEvents, entry)
	}

	return detail
}

// ConfirmPaymentRequest is the body of the payment gateway's success
// callback.
type ConfirmPaymentRequest struct {
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"transactionId"`
}

// FailPaymentRequest is the body of the payment gateway's denial callback.
type FailPaymentRequest struct {
	Reason string `json:"reason"`
}

// statusForHandlerError maps errors escaping a command handler onto HTTP
// status codes. Request-shape errors are rejected with 400 before the
// handler runs, so an invalid-value error here is a state conflict (e.g. a
// transition the order's current status forbids).
func statusForHandlerError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrCourierMismatch):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

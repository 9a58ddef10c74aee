package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler loads one order and its tracking history.
// Returns errs.ObjectNotFoundError when the order does not exist.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle fetches the order row and then its tracking events, oldest first.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp, err := h.loadOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	events, err := h.loadTrackingEvents(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.TrackingEvents = events

	return resp, nil
}

func (h GetOrderQueryHandler) loadOrder(ctx context.Context, orderID kernel.UUID) (GetOrderQueryResponse, error) {
	var resp GetOrderQueryResponse
	var id, customerID uuid.UUID
	var courierID uuid.NullUUID
	var vehicleID sql.NullString
	var orderNumber, priority, status sql.NullString
	var estimated, actual sql.NullTime
	var createdAt time.Time

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			customer_id,
			courier_id,
			vehicle_id,
			priority,
			status,
			estimated_delivery_time,
			actual_delivery_time,
			created_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	err := row.Scan(
		&id,
		&orderNumber,
		&customerID,
		&courierID,
		&vehicleID,
		&priority,
		&status,
		&estimated,
		&actual,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderID", orderID)
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	respID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	customer, err := kernel.UUIDFromBytes(customerID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.ID = respID
	resp.CustomerID = customer
	resp.OrderNumber = orderNumber.String
	resp.Priority = priority.String
	resp.Status = status.String
	resp.CreatedAt = createdAt

	if courierID.Valid {
		courier, idErr := kernel.UUIDFromBytes(courierID.UUID[:])
		if idErr != nil {
			return GetOrderQueryResponse{}, idErr
		}
		resp.CourierID = &courier
	}
	if vehicleID.Valid {
		resp.VehicleID = &vehicleID.String
	}
	if estimated.Valid {
		resp.EstimatedDeliveryTime = &estimated.Time
	}
	if actual.Valid {
		resp.ActualDeliveryTime = &actual.Time
	}

	return resp, nil
}

func (h GetOrderQueryHandler) loadTrackingEvents(
	ctx context.Context,
	orderID kernel.UUID,
) ([]TrackingEventResponse, error) {
	events := make([]TrackingEventResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			event_type,
			courier_id,
			note,
			latitude,
			longitude,
			created_at
		FROM tracking_events
		WHERE order_id = ?
		ORDER BY created_at, id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var event TrackingEventResponse
		var eventType, note sql.NullString
		var courierID uuid.NullUUID
		var latitude, longitude sql.NullFloat64
		var createdAt time.Time

		err = rows.Scan(
			&eventType,
			&courierID,
			&note,
			&latitude,
			&longitude,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		event.EventType = eventType.String
		event.Note = note.String
		event.CreatedAt = createdAt
		if courierID.Valid {
			courier, idErr := kernel.UUIDFromBytes(courierID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			event.CourierID = &courier
		}
		if latitude.Valid {
			event.Latitude = &latitude.Float64
		}
		if longitude.Valid {
			event.Longitude = &longitude.Float64
		}

		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

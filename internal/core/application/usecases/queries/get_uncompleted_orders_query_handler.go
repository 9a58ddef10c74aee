package queries

import (
	"context"
	"database/sql"
	"time"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUncompletedOrdersQueryHandler retrieves orders still in flight.
// Terminal orders (delivered, failed, cancelled, returned) are excluded.
type GetUncompletedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUncompletedOrdersQueryHandler creates a handler for active order
// queries. Requires a GORM database connection for query execution.
func NewGetUncompletedOrdersQueryHandler(db *gorm.DB) GetUncompletedOrdersQueryHandler {
	return GetUncompletedOrdersQueryHandler{db: db}
}

// Handle executes the query and returns summary rows sorted by creation
// time, oldest first.
func (h GetUncompletedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUncompletedOrdersQuery,
) ([]GetUncompletedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetUncompletedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			customer_id,
			courier_id,
			priority,
			status,
			created_at
		FROM orders
		WHERE status NOT IN (?, ?, ?, ?)
		ORDER BY created_at
	`, order.Delivered.String(), order.Failed.String(),
		order.Cancelled.String(), order.Returned.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetUncompletedOrdersQueryResponse
		var id, customerID uuid.UUID
		var courierID uuid.NullUUID
		var createdAt time.Time
		var orderNumber, priority, status sql.NullString

		err = rows.Scan(
			&id,
			&orderNumber,
			&customerID,
			&courierID,
			&priority,
			&status,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		customer, idErr := kernel.UUIDFromBytes(customerID[:])
		if idErr != nil {
			return nil, idErr
		}

		orderResp.ID = orderID
		orderResp.CustomerID = customer
		orderResp.OrderNumber = orderNumber.String
		orderResp.Priority = priority.String
		orderResp.Status = status.String
		orderResp.CreatedAt = createdAt

		if courierID.Valid {
			courier, idErr := kernel.UUIDFromBytes(courierID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			orderResp.CourierID = &courier
		}

		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// Package paymentrepo persists payment aggregates with GORM.
package paymentrepo

import (
	"time"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/payment"

	"github.com/google/uuid"
)

// PaymentDTO maps the payment aggregate to the payments table. The order is
// the natural key: one payment per order.
type PaymentDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	CustomerID    uuid.UUID `gorm:"type:uuid;index"`
	Amount        float64
	Status        string
	GatewayRef    string
	FailureReason string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides GORM's default naming convention.
func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(aggregate *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:            aggregate.ID().Bytes(),
		OrderID:       aggregate.OrderID().Bytes(),
		CustomerID:    aggregate.CustomerID().Bytes(),
		Amount:        aggregate.Amount(),
		Status:        aggregate.Status().String(),
		GatewayRef:    aggregate.GatewayReference(),
		FailureReason: aggregate.FailureReason(),
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	status, err := payment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(id, orderID, customerID, dto.Amount, status, dto.GatewayRef, dto.FailureReason)
}

// Package assignmentrepo persists courier assignment aggregates with GORM
// and backs the experience-based courier picking query.
package assignmentrepo

import (
	"time"

	"parceldelivery/internal/core/domain/model/assignment"
	"parceldelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO maps the assignment aggregate to the assignments table.
type AssignmentDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	CourierID  uuid.UUID `gorm:"type:uuid;index"`
	VehicleID  *string
	Status     string `gorm:"index"`
	AssignedAt time.Time
}

// TableName overrides GORM's default naming convention.
func (AssignmentDTO) TableName() string {
	return "assignments"
}

func fromDomain(aggregate *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:         aggregate.ID().Bytes(),
		OrderID:    aggregate.OrderID().Bytes(),
		CourierID:  aggregate.CourierID().Bytes(),
		VehicleID:  aggregate.VehicleID(),
		Status:     aggregate.Status().String(),
		AssignedAt: aggregate.AssignedAt(),
	}
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	status, err := assignment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(id, orderID, courierID, dto.VehicleID, status, dto.AssignedAt)
}

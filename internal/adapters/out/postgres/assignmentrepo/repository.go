package assignmentrepo

import (
	"context"
	"database/sql"
	"errors"

	"parceldelivery/internal/core/domain/model/assignment"
	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAssignmentRepository implements ports.AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssignmentRepository creates a new GORM assignment repository.
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Add saves a new assignment.
func (r *GormAssignmentRepository) Add(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing assignment.
func (r *GormAssignmentRepository) Update(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("id = ?", dto.ID).
		Select("Status").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("assignment", aggregate.ID().String())
	}

	return nil
}

// GetActiveByOrderID retrieves the order's ACTIVE assignment.
func (r *GormAssignmentRepository) GetActiveByOrderID(
	ctx context.Context,
	orderID kernel.UUID,
) (*assignment.Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND status = ?", orderID.Bytes(), assignment.Active.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("orderID", orderID.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// FindExperiencedFreeCourier picks a courier with at least one completed
// assignment and no active one. Couriers that never delivered do not
// qualify; couriers currently on a delivery are skipped.
func (r *GormAssignmentRepository) FindExperiencedFreeCourier(ctx context.Context) (kernel.UUID, error) {
	var courierID uuid.UUID

	row := r.db.WithContext(ctx).Raw(`
		SELECT courier_id
		FROM assignments
		GROUP BY courier_id
		HAVING COUNT(*) FILTER (WHERE status = ?) >= 1
		   AND COUNT(*) FILTER (WHERE status = ?) = 0
		ORDER BY MAX(assigned_at)
		LIMIT 1
	`, assignment.Completed.String(), assignment.Active.String()).Row()

	err := row.Scan(&courierID)
	if errors.Is(err, sql.ErrNoRows) {
		return kernel.UUID{}, errs.NewObjectNotFoundError("courier", "experienced and free")
	}
	if err != nil {
		return kernel.UUID{}, err
	}

	return kernel.UUIDFromBytes(courierID[:])
}

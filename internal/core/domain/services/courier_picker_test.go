package services_test

import (
	"context"
	"errors"
	"testing"

	"parceldelivery/internal/core/domain/model/assignment"
	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/services"
	"parceldelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPickerAssignmentRepository struct{ mock.Mock }

func (m *MockPickerAssignmentRepository) Add(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockPickerAssignmentRepository) Update(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockPickerAssignmentRepository) GetActiveByOrderID(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockPickerAssignmentRepository) FindExperiencedFreeCourier(ctx context.Context) (kernel.UUID, error) {
	args := m.Called(ctx)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

func TestExperiencedCourierPolicy_Pick(t *testing.T) {
	ctx := t.Context()

	t.Run("should return the courier found by the repository", func(t *testing.T) {
		courierID := kernel.NewUUID()
		repo := new(MockPickerAssignmentRepository)
		repo.On("FindExperiencedFreeCourier", ctx).Return(courierID, nil).Once()

		policy := services.NewExperiencedCourierPolicy(repo)
		picked, err := policy.Pick(ctx)

		require.NoError(t, err)
		assert.True(t, picked.IsEqual(courierID))
		repo.AssertExpectations(t)
	})

	t.Run("should decline when no courier qualifies", func(t *testing.T) {
		repo := new(MockPickerAssignmentRepository)
		repo.On("FindExperiencedFreeCourier", ctx).
			Return(kernel.UUID{}, errs.NewObjectNotFoundError("courier", "experienced and free")).Once()

		policy := services.NewExperiencedCourierPolicy(repo)
		_, err := policy.Pick(ctx)

		require.ErrorIs(t, err, services.ErrNoCourierAvailable)
	})

	t.Run("should propagate repository errors", func(t *testing.T) {
		dbErr := errors.New("connection reset")
		repo := new(MockPickerAssignmentRepository)
		repo.On("FindExperiencedFreeCourier", ctx).Return(kernel.UUID{}, dbErr).Once()

		policy := services.NewExperiencedCourierPolicy(repo)
		_, err := policy.Pick(ctx)

		require.ErrorIs(t, err, dbErr)
	})
}

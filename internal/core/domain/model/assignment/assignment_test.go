package assignment_test

import (
	"testing"
	"time"

	"parceldelivery/internal/core/domain/model/assignment"
	"parceldelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignment(t *testing.T) {
	t.Run("should create active assignment", func(t *testing.T) {
		id := kernel.NewUUID()
		orderID := kernel.NewUUID()
		courierID := kernel.NewUUID()
		vehicleID := "VAN-3"

		a, err := assignment.NewAssignment(id, orderID, courierID, &vehicleID)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.True(t, a.OrderID().IsEqual(orderID))
		assert.True(t, a.CourierID().IsEqual(courierID))
		require.NotNil(t, a.VehicleID())
		assert.Equal(t, "VAN-3", *a.VehicleID())
		assert.Equal(t, assignment.Active, a.Status())
		assert.False(t, a.AssignedAt().IsZero())
	})

	t.Run("should allow nil vehicle", func(t *testing.T) {
		a, err := assignment.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil)

		require.NoError(t, err)
		assert.Nil(t, a.VehicleID())
	})

	t.Run("should fail with zero courier id", func(t *testing.T) {
		var zeroID kernel.UUID

		a, err := assignment.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), zeroID, nil)

		require.Error(t, err)
		assert.Nil(t, a)
	})
}

func TestAssignmentComplete(t *testing.T) {
	t.Run("should complete active assignment", func(t *testing.T) {
		a, err := assignment.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil)
		require.NoError(t, err)

		err = a.Complete()

		require.NoError(t, err)
		assert.Equal(t, assignment.Completed, a.Status())
	})

	t.Run("should reject completing cancelled assignment", func(t *testing.T) {
		a, err := assignment.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil)
		require.NoError(t, err)
		require.NoError(t, a.Cancel())

		err = a.Complete()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot complete a CANCELLED assignment")
	})
}

func TestAssignmentCancel(t *testing.T) {
	t.Run("should cancel active assignment", func(t *testing.T) {
		a, err := assignment.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil)
		require.NoError(t, err)

		err = a.Cancel()

		require.NoError(t, err)
		assert.Equal(t, assignment.Cancelled, a.Status())
	})

	t.Run("should reject cancelling completed assignment", func(t *testing.T) {
		a, err := assignment.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil)
		require.NoError(t, err)
		require.NoError(t, a.Complete())

		err = a.Cancel()

		require.Error(t, err)
		assert.Equal(t, assignment.Completed, a.Status())
	})
}

func TestRestoreAssignment(t *testing.T) {
	t.Run("should restore persisted assignment", func(t *testing.T) {
		assignedAt := time.Now().Add(-2 * time.Hour).UTC()

		a, err := assignment.RestoreAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			nil, assignment.Completed, assignedAt)

		require.NoError(t, err)
		assert.Equal(t, assignment.Completed, a.Status())
		assert.Equal(t, assignedAt, a.AssignedAt())
	})

	t.Run("should fail with invalid status", func(t *testing.T) {
		a, err := assignment.RestoreAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			nil, assignment.Unknown, time.Now())

		require.Error(t, err)
		assert.Nil(t, a)
	})
}

func TestAssignmentStatusFromString(t *testing.T) {
	for _, s := range []assignment.Status{assignment.Active, assignment.Completed, assignment.Cancelled} {
		parsed, err := assignment.StatusFromString(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := assignment.StatusFromString("PAUSED")
	require.Error(t, err)
}

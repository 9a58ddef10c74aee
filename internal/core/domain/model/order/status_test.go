package order_test

import (
	"testing"

	"parceldelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status   order.Status
		expected string
	}{
		{order.Pending, "PENDING"},
		{order.Confirmed, "CONFIRMED"},
		{order.AssignedToCourier, "ASSIGNED_TO_COURIER"},
		{order.PickedUp, "PICKED_UP"},
		{order.InTransit, "IN_TRANSIT"},
		{order.OutForDelivery, "OUT_FOR_DELIVERY"},
		{order.Delivered, "DELIVERED"},
		{order.Failed, "FAILED"},
		{order.Cancelled, "CANCELLED"},
		{order.Returned, "RETURNED"},
		{order.Unknown, "UNKNOWN"},
		{order.Status(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

func TestStatusFromString(t *testing.T) {
	t.Run("should parse every wire representation", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Pending, order.Confirmed, order.AssignedToCourier,
			order.PickedUp, order.InTransit, order.OutForDelivery,
			order.Delivered, order.Failed, order.Cancelled, order.Returned,
		} {
			parsed, err := order.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("should fail on unknown string", func(t *testing.T) {
		_, err := order.StatusFromString("SHIPPED")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "SHIPPED")
	})

	t.Run("should not accept UNKNOWN", func(t *testing.T) {
		_, err := order.StatusFromString("UNKNOWN")

		require.Error(t, err)
	})
}

func TestStatusValidate(t *testing.T) {
	t.Run("should accept defined statuses", func(t *testing.T) {
		assert.NoError(t, order.Pending.Validate())
		assert.NoError(t, order.Returned.Validate())
	})

	t.Run("should reject Unknown and out of range values", func(t *testing.T) {
		assert.Error(t, order.Unknown.Validate())
		assert.Error(t, order.Status(42).Validate())
	})
}

func TestStatusIsTerminal(t *testing.T) {
	terminal := []order.Status{order.Delivered, order.Failed, order.Cancelled, order.Returned}
	for _, s := range terminal {
		assert.True(t, s.IsTerminal(), "%s should be terminal", s)
	}

	nonTerminal := []order.Status{
		order.Pending, order.Confirmed, order.AssignedToCourier,
		order.PickedUp, order.InTransit, order.OutForDelivery,
	}
	for _, s := range nonTerminal {
		assert.False(t, s.IsTerminal(), "%s should not be terminal", s)
	}

	assert.False(t, order.Unknown.IsTerminal())
}

func TestStatusTransitionTo(t *testing.T) {
	allowed := []struct {
		from, to order.Status
	}{
		{order.Pending, order.Confirmed},
		{order.Pending, order.Failed},
		{order.Pending, order.Cancelled},
		{order.Confirmed, order.AssignedToCourier},
		{order.Confirmed, order.Failed},
		{order.Confirmed, order.Cancelled},
		{order.AssignedToCourier, order.PickedUp},
		{order.AssignedToCourier, order.Cancelled},
		{order.AssignedToCourier, order.Returned},
		{order.PickedUp, order.InTransit},
		{order.PickedUp, order.Returned},
		{order.InTransit, order.OutForDelivery},
		{order.OutForDelivery, order.Delivered},
		{order.OutForDelivery, order.Failed},
		{order.OutForDelivery, order.Returned},
	}

	for _, tt := range allowed {
		t.Run(tt.from.String()+"_to_"+tt.to.String(), func(t *testing.T) {
			newStatus, err := tt.from.TransitionTo(tt.to)

			require.NoError(t, err)
			assert.Equal(t, tt.to, newStatus)
			assert.True(t, tt.from.CanTransitionTo(tt.to))
		})
	}

	forbidden := []struct {
		from, to order.Status
	}{
		{order.Pending, order.AssignedToCourier},
		{order.Pending, order.Delivered},
		{order.Confirmed, order.PickedUp},
		{order.PickedUp, order.Cancelled},
		{order.InTransit, order.Delivered},
		{order.Delivered, order.Failed},
		{order.Failed, order.Pending},
		{order.Cancelled, order.Confirmed},
		{order.Returned, order.InTransit},
	}

	for _, tt := range forbidden {
		t.Run("rejects_"+tt.from.String()+"_to_"+tt.to.String(), func(t *testing.T) {
			newStatus, err := tt.from.TransitionTo(tt.to)

			require.Error(t, err)
			assert.Equal(t, order.Unknown, newStatus)
			assert.Contains(t, err.Error(), "is not allowed")
			assert.False(t, tt.from.CanTransitionTo(tt.to))
		})
	}

	t.Run("should reject invalid target", func(t *testing.T) {
		_, err := order.Pending.TransitionTo(order.Unknown)

		require.Error(t, err)
	})
}

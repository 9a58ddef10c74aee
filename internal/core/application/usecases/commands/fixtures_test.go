package commands_test

import (
	"testing"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

// pendingOrder builds a minimal valid order in Pending status.
func pendingOrder(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()

	address, err := order.NewAddress(order.AddressDelivery, "Bob Receiver", "+15550101", "2 Home Street")
	require.NoError(t, err)
	parcel, err := order.NewParcel("PCL-001", "Books", 2.5)
	require.NoError(t, err)

	o, err := order.NewOrder(id, "ORD-TEST", kernel.NewUUID(), order.PriorityStandard,
		[]order.Address{address}, []order.Parcel{parcel}, nil)
	require.NoError(t, err)
	return o
}

func confirmedOrder(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()

	o := pendingOrder(t, id)
	require.NoError(t, o.Confirm("paid"))
	return o
}

func assignedOrder(t *testing.T, id, courierID kernel.UUID) *order.Order {
	t.Helper()

	o := confirmedOrder(t, id)
	require.NoError(t, o.AssignCourier(courierID, nil, "assigned"))
	return o
}

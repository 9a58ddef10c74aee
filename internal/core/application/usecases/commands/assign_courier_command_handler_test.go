package commands_test

import (
	"testing"

	"parceldelivery/internal/core/application/usecases/commands"
	"parceldelivery/internal/core/domain/model/assignment"
	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssignCourierCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	vehicleID := "VAN-1"
	testOrder := confirmedOrder(t, orderID)

	cmd, err := commands.NewAssignCourierCommand(orderID, courierID, &vehicleID)
	require.NoError(t, err)

	var added *assignment.Assignment
	orderRepo := new(MockOrderRepository)
	assignmentRepo := new(MockAssignmentRepository)
	uow := new(MockDispatchUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("AssignmentRepository").Return(assignmentRepo).Once(),
		assignmentRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).
			Run(func(args mock.Arguments) {
				added = args.Get(1).(*assignment.Assignment)
			}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockOrderEventPublisher)
	publisher.On("PublishOrderAssigned", ctx, testOrder).Return(nil).Once()
	publisher.On("PublishOrderStatusChanged", ctx, testOrder, order.Confirmed, order.AssignedToCourier).
		Return(nil).Once()

	handler := commands.NewAssignCourierCommandHandler(factory, publisher, testLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.AssignedToCourier, testOrder.Status())
	require.NotNil(t, added)
	assert.True(t, added.CourierID().IsEqual(courierID))
	assert.True(t, added.OrderID().IsEqual(orderID))
	assert.Equal(t, assignment.Active, added.Status())
	require.NotNil(t, added.VehicleID())
	assert.Equal(t, "VAN-1", *added.VehicleID())
	publisher.AssertExpectations(t)
}

func TestAssignCourierCommandHandler_Handle_RejectsPendingOrder(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	testOrder := pendingOrder(t, orderID)

	cmd, err := commands.NewAssignCourierCommand(orderID, kernel.NewUUID(), nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockDispatchUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockOrderEventPublisher)

	handler := commands.NewAssignCourierCommandHandler(factory, publisher, testLogger())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Equal(t, order.Pending, testOrder.Status())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	publisher.AssertNotCalled(t, "PublishOrderAssigned", mock.Anything, mock.Anything)
}

func TestNewAssignCourierCommand(t *testing.T) {
	t.Run("should reject zero courier id", func(t *testing.T) {
		var zeroID kernel.UUID

		_, err := commands.NewAssignCourierCommand(kernel.NewUUID(), zeroID, nil)

		require.Error(t, err)
	})

	t.Run("should keep vehicle id", func(t *testing.T) {
		vehicleID := "BIKE-2"

		cmd, err := commands.NewAssignCourierCommand(kernel.NewUUID(), kernel.NewUUID(), &vehicleID)

		require.NoError(t, err)
		require.NotNil(t, cmd.VehicleID())
		assert.Equal(t, "BIKE-2", *cmd.VehicleID())
	})
}

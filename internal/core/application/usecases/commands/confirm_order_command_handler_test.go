package commands_test

import (
	"errors"
	"testing"

	"parceldelivery/internal/core/application/usecases/commands"
	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/order"
	"parceldelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfirmOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	testOrder := pendingOrder(t, orderID)

	cmd, err := commands.NewConfirmOrderCommand(orderID, "tx-123")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockOrderEventPublisher)
	publisher.On("PublishOrderStatusChanged", ctx, testOrder, order.Pending, order.Confirmed).
		Return(nil).Once()

	handler := commands.NewConfirmOrderCommandHandler(factory, publisher, testLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Confirmed, testOrder.Status())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestConfirmOrderCommandHandler_Handle_DuplicateIsNoOp(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	testOrder := confirmedOrder(t, orderID)

	cmd, err := commands.NewConfirmOrderCommand(orderID, "tx-123")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockOrderEventPublisher)

	handler := commands.NewConfirmOrderCommandHandler(factory, publisher, testLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	publisher.AssertNotCalled(t, "PublishOrderStatusChanged",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	cmd, err := commands.NewConfirmOrderCommand(orderID, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).
			Return(nil, errs.NewObjectNotFoundError("orderID", orderID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewConfirmOrderCommandHandler(factory, new(MockOrderEventPublisher), testLogger())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestConfirmOrderCommandHandler_Handle_PublishFailureIsSwallowed(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	testOrder := pendingOrder(t, orderID)

	cmd, err := commands.NewConfirmOrderCommand(orderID, "tx-9")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockOrderEventPublisher)
	publisher.On("PublishOrderStatusChanged", ctx, testOrder, order.Pending, order.Confirmed).
		Return(errors.New("broker unavailable")).Once()

	handler := commands.NewConfirmOrderCommandHandler(factory, publisher, testLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestConfirmOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ConfirmOrderCommand{}

	factory := new(MockOrderUoWFactory)
	handler := commands.NewConfirmOrderCommandHandler(factory, new(MockOrderEventPublisher), testLogger())
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrConfirmOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestNewConfirmOrderCommand(t *testing.T) {
	t.Run("should accept empty transaction id", func(t *testing.T) {
		cmd, err := commands.NewConfirmOrderCommand(kernel.NewUUID(), "")

		require.NoError(t, err)
		assert.Empty(t, cmd.TransactionID())
	})

	t.Run("should reject zero order id", func(t *testing.T) {
		var zeroID kernel.UUID

		_, err := commands.NewConfirmOrderCommand(zeroID, "tx-1")

		require.Error(t, err)
	})
}

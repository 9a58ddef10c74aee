package commands

import (
	"context"
	"errors"
	"log/slog"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/payment"
	"parceldelivery/internal/pkg/errs"
)

// CreatePaymentCommandHandler opens a Pending payment for an order.
// A payment already recorded for the order makes the command a no-op,
// which keeps the order.created consumer safe under redelivery.
type CreatePaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
	logger     *slog.Logger
}

// NewCreatePaymentCommandHandler creates a handler for payment creation.
func NewCreatePaymentCommandHandler(uowFactory PaymentUoWFactory, logger *slog.Logger) CreatePaymentCommandHandler {
	return CreatePaymentCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "CreatePaymentCommandHandler"),
	}
}

// Handle records the pending payment unless one already exists for the order.
func (h CreatePaymentCommandHandler) Handle(ctx context.Context, cmd CreatePaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	paymentRepo := uow.PaymentRepository()
	_, err := paymentRepo.GetByOrderID(ctx, cmd.OrderID())
	if err == nil {
		h.logger.InfoContext(ctx, "payment already exists for order, skipping duplicate",
			"orderId", cmd.OrderID().String())
		return nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	newPayment, err := payment.NewPayment(kernel.NewUUID(), cmd.OrderID(), cmd.CustomerID())
	if err != nil {
		return err
	}

	if err = paymentRepo.Add(ctx, newPayment); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

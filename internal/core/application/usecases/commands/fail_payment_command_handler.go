package commands

import (
	"context"
	"log/slog"

	"parceldelivery/internal/core/ports"
)

// FailPaymentCommandHandler marks a pending payment as failed and announces
// payment.failed so the order service can fail the order in turn.
type FailPaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
	publisher  ports.PaymentEventPublisher
	logger     *slog.Logger
}

// NewFailPaymentCommandHandler creates a handler for payment denial.
func NewFailPaymentCommandHandler(
	uowFactory PaymentUoWFactory,
	publisher ports.PaymentEventPublisher,
	logger *slog.Logger,
) FailPaymentCommandHandler {
	return FailPaymentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "FailPaymentCommandHandler"),
	}
}

// Handle fails the payment and publishes payment.failed.
func (h FailPaymentCommandHandler) Handle(ctx context.Context, cmd FailPaymentCommand) error {
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
	aPayment, err := paymentRepo.GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aPayment.Fail(cmd.Reason()); err != nil {
		return err
	}

	if err = paymentRepo.Update(ctx, aPayment); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.publisher.PublishPaymentFailed(ctx, aPayment); err != nil {
		h.logger.WarnContext(ctx, "failed to publish payment.failed",
			"orderId", aPayment.OrderID().String(), "error", err)
	}

	return nil
}

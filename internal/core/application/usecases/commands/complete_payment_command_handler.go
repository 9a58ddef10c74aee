package commands

import (
	"context"
	"log/slog"

	"parceldelivery/internal/core/ports"
)

// CompletePaymentCommandHandler captures a pending payment and announces
// payment.completed. Capturing an already settled payment is a domain error
// surfaced to the caller, the gateway callback is synchronous and should
// learn about the conflict.
type CompletePaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
	publisher  ports.PaymentEventPublisher
	logger     *slog.Logger
}

// NewCompletePaymentCommandHandler creates a handler for payment capture.
func NewCompletePaymentCommandHandler(
	uowFactory PaymentUoWFactory,
	publisher ports.PaymentEventPublisher,
	logger *slog.Logger,
) CompletePaymentCommandHandler {
	return CompletePaymentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "CompletePaymentCommandHandler"),
	}
}

// Handle captures the payment and publishes payment.completed.
func (h CompletePaymentCommandHandler) Handle(ctx context.Context, cmd CompletePaymentCommand) error {
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

	if err = aPayment.Capture(cmd.Amount(), cmd.TransactionID()); err != nil {
		return err
	}

	if err = paymentRepo.Update(ctx, aPayment); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.publisher.PublishPaymentCompleted(ctx, aPayment); err != nil {
		h.logger.WarnContext(ctx, "failed to publish payment.completed",
			"orderId", aPayment.OrderID().String(), "error", err)
	}

	return nil
}

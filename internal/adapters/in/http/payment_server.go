package http

import (
	"net/http"

	"parceldelivery/internal/core/application/usecases/commands"
	"parceldelivery/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// PaymentServer handles the payment service's REST API: the synchronous
// callbacks of the payment gateway. Capturing a payment that already
// settled responds 409, so the gateway learns about replayed callbacks.
type PaymentServer struct {
	completePaymentHandler commands.CompletePaymentCommandHandler
	failPaymentHandler     commands.FailPaymentCommandHandler
}

// NewPaymentServer creates the payment API server.
func NewPaymentServer(
	completePaymentHandler commands.CompletePaymentCommandHandler,
	failPaymentHandler commands.FailPaymentCommandHandler,
) *PaymentServer {
	return &PaymentServer{
		completePaymentHandler: completePaymentHandler,
		failPaymentHandler:     failPaymentHandler,
	}
}

// RegisterRoutes mounts the payment API on the echo instance.
func (s *PaymentServer) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/payments/:orderId/confirm", s.ConfirmPayment)
	api.POST("/payments/:orderId/fail", s.FailPayment)
}

// ConfirmPayment handles POST /api/v1/payments/:orderId/confirm.
func (s *PaymentServer) ConfirmPayment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req ConfirmPaymentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCompletePaymentCommand(orderID, req.Amount, req.TransactionID)
	if err != nil {
		return badRequest(ctx, "Invalid payment confirmation: "+err.Error())
	}

	if err = s.completePaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, statusForHandlerError(err), err.Error())
	}

	return ctx.NoContent(http.StatusNoContent)
}

// FailPayment handles POST /api/v1/payments/:orderId/fail.
func (s *PaymentServer) FailPayment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req FailPaymentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewFailPaymentCommand(orderID, req.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid payment failure: "+err.Error())
	}

	if err = s.failPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, statusForHandlerError(err), err.Error())
	}

	return ctx.NoContent(http.StatusNoContent)
}

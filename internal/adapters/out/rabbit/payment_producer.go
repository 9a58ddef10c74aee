package rabbit

import (
	"context"

	"parceldelivery/internal/contracts"
	"parceldelivery/internal/core/domain/model/payment"
)

// PaymentProducer publishes the payment service's domain events.
// Implements ports.PaymentEventPublisher.
type PaymentProducer struct {
	bus Bus
}

// NewPaymentProducer creates a producer bound to the given broker client.
func NewPaymentProducer(bus Bus) *PaymentProducer {
	return &PaymentProducer{bus: bus}
}

// PublishPaymentCompleted emits payment.completed after a capture.
func (p *PaymentProducer) PublishPaymentCompleted(ctx context.Context, pay *payment.Payment) error {
	return p.bus.Publish(ctx, contracts.RoutingKeyPaymentCompleted, &contracts.PaymentCompleted{
		Meta:          stamp(),
		PaymentID:     pay.ID().String(),
		OrderID:       pay.OrderID().String(),
		CustomerID:    pay.CustomerID().String(),
		Amount:        pay.Amount(),
		TransactionID: pay.GatewayReference(),
		Status:        pay.Status().String(),
	})
}

// PublishPaymentFailed emits payment.failed after a denial.
func (p *PaymentProducer) PublishPaymentFailed(ctx context.Context, pay *payment.Payment) error {
	return p.bus.Publish(ctx, contracts.RoutingKeyPaymentFailed, &contracts.PaymentFailed{
		Meta:       stamp(),
		PaymentID:  pay.ID().String(),
		OrderID:    pay.OrderID().String(),
		CustomerID: pay.CustomerID().String(),
		Amount:     pay.Amount(),
		Reason:     pay.FailureReason(),
		Status:     pay.Status().String(),
	})
}

// Package payment contains the payment aggregate owned by the payment
// service. A payment is created lazily and idempotently when order.created is
// consumed, and terminates CAPTURED or FAILED when the external gateway
// reports the outcome.
package payment

import (
	"errors"
	"fmt"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/pkg/errs"
)

// ErrPaymentIsNotConstructed is returned when a Payment instance was not
// created through NewPayment or RestorePayment.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment or RestorePayment")

// Payment is the aggregate tracking the charge for one order. Expected 1:1
// with the order by orderID; the uniqueness is enforced by the idempotent
// creation path, not by a cross-service constraint.
type Payment struct {
	id            kernel.UUID
	orderID       kernel.UUID
	customerID    kernel.UUID
	amount        float64
	status        Status
	gatewayRef    string
	failureReason string

	isConstructed bool
}

// NewPayment creates a Pending payment with amount 0. The amount is settled
// later, when the gateway reports the capture.
func NewPayment(id, orderID, customerID kernel.UUID) (*Payment, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		customerID.Validate(),
	); err != nil {
		return nil, err
	}

	return &Payment{
		id:            id,
		orderID:       orderID,
		customerID:    customerID,
		amount:        0,
		status:        Pending,
		isConstructed: true,
	}, nil
}

// RestorePayment reconstructs a payment from persistence.
func RestorePayment(
	id, orderID, customerID kernel.UUID,
	amount float64,
	status Status,
	gatewayRef, failureReason string,
) (*Payment, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Payment{
		id:            id,
		orderID:       orderID,
		customerID:    customerID,
		amount:        amount,
		status:        status,
		gatewayRef:    gatewayRef,
		failureReason: failureReason,
		isConstructed: true,
	}, nil
}

// Validate ensures the payment was built through a constructor.
func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

// ID returns the payment's unique identifier.
func (p *Payment) ID() kernel.UUID { return p.id }

// OrderID returns the paid order's identifier.
func (p *Payment) OrderID() kernel.UUID { return p.orderID }

// CustomerID returns the paying customer's identifier.
func (p *Payment) CustomerID() kernel.UUID { return p.customerID }

// Amount returns the captured amount, 0 while pending.
func (p *Payment) Amount() float64 { return p.amount }

// Status returns the payment's lifecycle status.
func (p *Payment) Status() Status { return p.status }

// GatewayReference returns the gateway's transaction identifier, empty
// until the gateway reports.
func (p *Payment) GatewayReference() string { return p.gatewayRef }

// FailureReason returns why the payment failed, empty otherwise.
func (p *Payment) FailureReason() string { return p.failureReason }

// Capture settles the payment with the amount and transaction reference
// reported by the gateway. Only a Pending payment can be captured.
func (p *Payment) Capture(amount float64, gatewayRef string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.status != Pending {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot capture a %s payment", p.status))
	}
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%g is negative", amount))
	}
	if gatewayRef == "" {
		return errs.NewValueIsRequiredError("gatewayRef")
	}

	p.status = Captured
	p.amount = amount
	p.gatewayRef = gatewayRef
	return nil
}

// Fail marks the payment as denied by the gateway. Only a Pending payment
// can fail.
func (p *Payment) Fail(reason string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.status != Pending {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot fail a %s payment", p.status))
	}
	if reason == "" {
		reason = "Payment processing failed"
	}

	p.status = Failed
	p.failureReason = reason
	return nil
}

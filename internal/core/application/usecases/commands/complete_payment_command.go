package commands

import (
	"errors"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/pkg/errs"
	"parceldelivery/internal/pkg/guard"
)

var ErrCompletePaymentCommandIsNotConstructed = errors.New(
	"CompletePaymentCommand must be created via NewCompletePaymentCommand constructor",
)

// CompletePaymentCommand captures a payment after the gateway approved it.
type CompletePaymentCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	amount        float64
	transactionID string

	guard guard.ConstructorGuard
}

// NewCompletePaymentCommand creates a command to capture the payment for
// an order. Amount must be positive and the gateway transaction reference
// is required.
func NewCompletePaymentCommand(orderID kernel.UUID, amount float64, transactionID string) (CompletePaymentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CompletePaymentCommand{}, err
	}
	if amount <= 0 {
		return CompletePaymentCommand{}, errs.NewValueIsInvalidError("amount must be greater than 0")
	}
	if transactionID == "" {
		return CompletePaymentCommand{}, errs.NewValueIsRequiredError("transactionID")
	}

	return CompletePaymentCommand{
		orderID:       orderID,
		amount:        amount,
		transactionID: transactionID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompletePaymentCommand) Validate() error {
	return c.guard.Validate(ErrCompletePaymentCommandIsNotConstructed)
}

// OrderID returns the order whose payment was approved.
func (c CompletePaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Amount returns the captured amount.
func (c CompletePaymentCommand) Amount() float64 {
	return c.amount
}

// TransactionID returns the gateway transaction reference.
func (c CompletePaymentCommand) TransactionID() string {
	return c.transactionID
}

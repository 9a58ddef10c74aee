package order

import (
	"fmt"

	"parceldelivery/internal/pkg/errs"
)

// Parcel is a value object describing one physical item of an order.
// An order carries at least one parcel.
type Parcel struct {
	parcelNumber string
	description  string
	weightKg     float64
}

// NewParcel creates a validated parcel. Weight must be positive.
func NewParcel(parcelNumber, description string, weightKg float64) (Parcel, error) {
	if parcelNumber == "" {
		return Parcel{}, errs.NewValueIsRequiredError("parcelNumber")
	}
	if weightKg <= 0 {
		return Parcel{}, errs.NewValueIsInvalidErrorWithCause("weightKg",
			fmt.Errorf("%g is not greater than 0", weightKg))
	}
	return Parcel{
		parcelNumber: parcelNumber,
		description:  description,
		weightKg:     weightKg,
	}, nil
}

// ParcelNumber returns the human-facing parcel identifier.
func (p Parcel) ParcelNumber() string { return p.parcelNumber }

// Description returns the free-text description of the parcel.
func (p Parcel) Description() string { return p.description }

// WeightKg returns the declared weight in kilograms.
func (p Parcel) WeightKg() float64 { return p.weightKg }

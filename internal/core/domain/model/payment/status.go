package payment

import (
	"fmt"

	"parceldelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of a payment.
//
//	PENDING ──> CAPTURED
//	   └──────> FAILED
//
// CAPTURED and FAILED are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status, set when the payment aggregate is
	// lazily created on consuming order.created.
	Pending

	// Captured means the gateway confirmed the charge.
	Captured

	// Failed means the gateway denied the charge.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "UNKNOWN",
		Pending:  "PENDING",
		Captured: "CAPTURED",
		Failed:   "FAILED",
	}
}

// StatusFromString parses the wire representation of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known payment status", s))
}

// String returns the wire representation of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks that the status is one of the defined states.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// IsTerminal reports whether the payment can change no further.
func (s Status) IsTerminal() bool {
	return s == Captured || s == Failed
}

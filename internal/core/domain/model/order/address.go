package order

import (
	"parceldelivery/internal/pkg/errs"
)

// AddressType distinguishes pickup from delivery addresses on an order.
type AddressType string

const (
	AddressPickup   AddressType = "PICKUP"
	AddressDelivery AddressType = "DELIVERY"
)

// Address is a value object holding one contact point of an order.
// An order carries at least one address.
type Address struct {
	addressType   AddressType
	contactName   string
	contactPhone  string
	streetAddress string
}

// NewAddress creates a validated address.
func NewAddress(addressType AddressType, contactName, contactPhone, streetAddress string) (Address, error) {
	if addressType != AddressPickup && addressType != AddressDelivery {
		return Address{}, errs.NewValueIsInvalidError("addressType")
	}
	if contactName == "" {
		return Address{}, errs.NewValueIsRequiredError("contactName")
	}
	if streetAddress == "" {
		return Address{}, errs.NewValueIsRequiredError("streetAddress")
	}
	return Address{
		addressType:   addressType,
		contactName:   contactName,
		contactPhone:  contactPhone,
		streetAddress: streetAddress,
	}, nil
}

// Type returns whether this is the pickup or the delivery address.
func (a Address) Type() AddressType { return a.addressType }

// ContactName returns the contact person at the address.
func (a Address) ContactName() string { return a.contactName }

// ContactPhone returns the contact phone number, possibly empty.
func (a Address) ContactPhone() string { return a.contactPhone }

// StreetAddress returns the street line of the address.
func (a Address) StreetAddress() string { return a.streetAddress }

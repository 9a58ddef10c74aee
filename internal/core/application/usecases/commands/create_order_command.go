package commands

import (
	"errors"
	"time"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/order"
	"parceldelivery/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrAddressesAreRequired = errors.New("at least one address is required")
	ErrParcelsAreRequired   = errors.New("at least one parcel is required")
)

// CreateOrderCommand represents a request to register a new delivery order.
// Encapsulates the customer, priority, addresses and parcels of the order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), customerID,
//	    order.PriorityExpress, addresses, parcels, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher, logger)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID               kernel.UUID
	customerID            kernel.UUID
	priority              order.Priority
	addresses             []order.Address
	parcels               []order.Parcel
	estimatedDeliveryTime *time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// Validates identifiers, priority, and that at least one address and parcel
// are provided. Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	priority order.Priority,
	addresses []order.Address,
	parcels []order.Parcel,
	estimatedDeliveryTime *time.Time,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		estimatedDeliveryTime: estimatedDeliveryTime,
		guard:                 guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomerID(customerID),
		orderCommand.setPriority(priority),
		orderCommand.setAddresses(addresses),
		orderCommand.setParcels(parcels),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the identifier of the customer placing the order.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Priority returns the requested delivery priority.
func (c CreateOrderCommand) Priority() order.Priority {
	return c.priority
}

// Addresses returns the pickup and delivery addresses of the order.
func (c CreateOrderCommand) Addresses() []order.Address {
	return c.addresses
}

// Parcels returns the parcels included in the order.
func (c CreateOrderCommand) Parcels() []order.Parcel {
	return c.parcels
}

// EstimatedDeliveryTime returns the requested delivery estimate, if any.
func (c CreateOrderCommand) EstimatedDeliveryTime() *time.Time {
	return c.estimatedDeliveryTime
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setPriority(priority order.Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}

	c.priority = priority
	return nil
}

func (c *CreateOrderCommand) setAddresses(addresses []order.Address) error {
	if len(addresses) == 0 {
		return ErrAddressesAreRequired
	}

	c.addresses = addresses
	return nil
}

func (c *CreateOrderCommand) setParcels(parcels []order.Parcel) error {
	if len(parcels) == 0 {
		return ErrParcelsAreRequired
	}

	c.parcels = parcels
	return nil
}

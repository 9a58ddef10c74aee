// Package orderrepo persists order aggregates with GORM: the orders row
// plus its child addresses, parcels and tracking events.
package orderrepo

import (
	"time"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO maps the order aggregate root to the orders table.
type OrderDTO struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber           string     `gorm:"uniqueIndex"`
	CustomerID            uuid.UUID  `gorm:"type:uuid;index"`
	CourierID             *uuid.UUID `gorm:"type:uuid;index"`
	VehicleID             *string
	Priority              string
	Status                string `gorm:"index"`
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
	CreatedAt             time.Time

	Addresses      []AddressDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Parcels        []ParcelDTO        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TrackingEvents []TrackingEventDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming convention.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO maps one address of an order. Addresses are written once with
// the order and never updated.
type AddressDTO struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	OrderID       uuid.UUID `gorm:"type:uuid;index"`
	AddressType   string
	ContactName   string
	ContactPhone  string
	StreetAddress string
}

// TableName overrides GORM's default naming convention.
func (AddressDTO) TableName() string {
	return "addresses"
}

// ParcelDTO maps one parcel of an order. Parcels are written once with the
// order and never updated.
type ParcelDTO struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	OrderID      uuid.UUID `gorm:"type:uuid;index"`
	ParcelNumber string
	Description  string
	WeightKg     float64
}

// TableName overrides GORM's default naming convention.
func (ParcelDTO) TableName() string {
	return "parcels"
}

// TrackingEventDTO maps one entry of the order's audit trail.
type TrackingEventDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	EventType string
	CourierID *uuid.UUID `gorm:"type:uuid"`
	Note      string
	Latitude  *float64
	Longitude *float64
	CreatedAt time.Time
}

// TableName overrides GORM's default naming convention.
func (TrackingEventDTO) TableName() string {
	return "tracking_events"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:                    aggregate.ID().Bytes(),
		OrderNumber:           aggregate.OrderNumber(),
		CustomerID:            aggregate.CustomerID().Bytes(),
		VehicleID:             aggregate.Vehicle(),
		Priority:              string(aggregate.Priority()),
		Status:                aggregate.Status().String(),
		EstimatedDeliveryTime: aggregate.EstimatedDeliveryTime(),
		ActualDeliveryTime:    aggregate.ActualDeliveryTime(),
		CreatedAt:             aggregate.CreatedAt(),
	}

	if courier := aggregate.Courier(); courier != nil {
		raw := courier.Bytes()
		dto.CourierID = &raw
	}

	for _, address := range aggregate.Addresses() {
		dto.Addresses = append(dto.Addresses, AddressDTO{
			OrderID:       dto.ID,
			AddressType:   string(address.Type()),
			ContactName:   address.ContactName(),
			ContactPhone:  address.ContactPhone(),
			StreetAddress: address.StreetAddress(),
		})
	}

	for _, parcel := range aggregate.Parcels() {
		dto.Parcels = append(dto.Parcels, ParcelDTO{
			OrderID:      dto.ID,
			ParcelNumber: parcel.ParcelNumber(),
			Description:  parcel.Description(),
			WeightKg:     parcel.WeightKg(),
		})
	}

	for _, event := range aggregate.TrackingEvents() {
		dto.TrackingEvents = append(dto.TrackingEvents, trackingEventFromDomain(dto.ID, event))
	}

	return dto
}

func trackingEventFromDomain(orderID uuid.UUID, event order.TrackingEvent) TrackingEventDTO {
	eventDTO := TrackingEventDTO{
		OrderID:   orderID,
		EventType: string(event.EventType()),
		Note:      event.Notes(),
		CreatedAt: event.Timestamp(),
	}

	if courier := event.Courier(); courier != nil {
		raw := courier.Bytes()
		eventDTO.CourierID = &raw
	}

	if coordinate := event.Coordinate(); coordinate != nil {
		lat, lng := coordinate.Latitude(), coordinate.Longitude()
		eventDTO.Latitude = &lat
		eventDTO.Longitude = &lng
	}

	return eventDTO
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	addresses := make([]order.Address, 0, len(dto.Addresses))
	for _, addressDTO := range dto.Addresses {
		address, addrErr := order.NewAddress(
			order.AddressType(addressDTO.AddressType),
			addressDTO.ContactName,
			addressDTO.ContactPhone,
			addressDTO.StreetAddress,
		)
		if addrErr != nil {
			return nil, addrErr
		}
		addresses = append(addresses, address)
	}

	parcels := make([]order.Parcel, 0, len(dto.Parcels))
	for _, parcelDTO := range dto.Parcels {
		parcel, parcelErr := order.NewParcel(parcelDTO.ParcelNumber, parcelDTO.Description, parcelDTO.WeightKg)
		if parcelErr != nil {
			return nil, parcelErr
		}
		parcels = append(parcels, parcel)
	}

	events := make([]order.TrackingEvent, 0, len(dto.TrackingEvents))
	for _, eventDTO := range dto.TrackingEvents {
		event, eventErr := trackingEventToDomain(eventDTO)
		if eventErr != nil {
			return nil, eventErr
		}
		events = append(events, event)
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		customerID,
		courierID,
		dto.VehicleID,
		order.Priority(dto.Priority),
		status,
		addresses,
		parcels,
		events,
		dto.EstimatedDeliveryTime,
		dto.ActualDeliveryTime,
		dto.CreatedAt,
	)
}

func trackingEventToDomain(dto TrackingEventDTO) (order.TrackingEvent, error) {
	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, err := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if err != nil {
			return order.TrackingEvent{}, err
		}
		courierID = &cID
	}

	var coordinate *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, err := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if err != nil {
			return order.TrackingEvent{}, err
		}
		coordinate = &point
	}

	return order.RestoreTrackingEvent(
		order.TrackingEventType(dto.EventType),
		dto.CreatedAt,
		courierID,
		dto.Note,
		coordinate,
	), nil
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// ShipmentStatus describes courier handling progress. Only SHIPPED and
// DELIVERED cascade onto the owning order; the remaining states are
// informational tracking updates.
type ShipmentStatus string

const (
	ShipmentStatusPending   ShipmentStatus = "PENDING"
	ShipmentStatusPacked    ShipmentStatus = "PACKED"
	ShipmentStatusConfirmed ShipmentStatus = "CONFIRMED"
	ShipmentStatusPickedUp  ShipmentStatus = "PICKED_UP"
	ShipmentStatusShipped   ShipmentStatus = "SHIPPED"
	ShipmentStatusInTransit ShipmentStatus = "IN_TRANSIT"
	ShipmentStatusDelivered ShipmentStatus = "DELIVERED"
	ShipmentStatusReturned  ShipmentStatus = "RETURNED"
	ShipmentStatusCancelled ShipmentStatus = "CANCELLED"
)

// Valid reports whether s is a known shipment status.
func (s ShipmentStatus) Valid() bool {
	switch s {
	case ShipmentStatusPending, ShipmentStatusPacked, ShipmentStatusConfirmed,
		ShipmentStatusPickedUp, ShipmentStatusShipped, ShipmentStatusInTransit,
		ShipmentStatusDelivered, ShipmentStatusReturned, ShipmentStatusCancelled:
		return true
	}
	return false
}

// Shipment is the single delivery record of a paid order. Courier* fields hold
// identifiers issued by the external courier aggregator when the shipment was
// booked through it.
type Shipment struct {
	ID             uuid.UUID
	OrderID        uuid.UUID
	Courier        string
	Service        string
	Waybill        string
	CourierOrderID string
	TrackingID     string
	TrackingURL    string
	Status         ShipmentStatus
	Cost           float64
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

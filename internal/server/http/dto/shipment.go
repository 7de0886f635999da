package dto

import "time"

// CreateShipmentRequest describes a manual shipment record payload.
type CreateShipmentRequest struct {
	OrderID string  `json:"order_id" binding:"required"`
	Courier string  `json:"courier" binding:"required"`
	Service string  `json:"service"`
	Cost    float64 `json:"cost"`
}

// BookShipmentRequest describes a courier-aggregator booking payload.
type BookShipmentRequest struct {
	OrderID        string `json:"order_id" binding:"required"`
	CourierCompany string `json:"courier_company" binding:"required"`
	CourierType    string `json:"courier_type" binding:"required"`

	OriginName       string `json:"origin_name"`
	OriginPhone      string `json:"origin_phone"`
	OriginAddress    string `json:"origin_address"`
	OriginAreaID     string `json:"origin_area_id"`
	OriginPostalCode string `json:"origin_postal_code"`
}

// RateItemRequest is one parcel line of a rate check.
type RateItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Value    float64 `json:"value"`
	Weight   float64 `json:"weight"`
	Quantity int     `json:"quantity" binding:"required"`
}

// CheckRatesRequest describes the shipping-rate query payload.
type CheckRatesRequest struct {
	OriginAreaID          string            `json:"origin_area_id"`
	DestinationAreaID     string            `json:"destination_area_id"`
	OriginPostalCode      string            `json:"origin_postal_code"`
	DestinationPostalCode string            `json:"destination_postal_code"`
	Couriers              string            `json:"couriers"`
	Items                 []RateItemRequest `json:"items" binding:"required"`
}

// ShipmentStatusRequest describes a shipment transition payload.
type ShipmentStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Waybill string `json:"waybill"`
}

// WaybillRequest describes a waybill-only update payload.
type WaybillRequest struct {
	Waybill string `json:"waybill" binding:"required"`
}

// ShipmentResponse is the shipment view.
type ShipmentResponse struct {
	ID          string     `json:"id"`
	OrderID     string     `json:"order_id"`
	Courier     string     `json:"courier"`
	Service     string     `json:"service,omitempty"`
	Waybill     string     `json:"waybill,omitempty"`
	TrackingURL string     `json:"tracking_url,omitempty"`
	Status      string     `json:"status"`
	Cost        float64    `json:"cost"`
	ShippedAt   *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
}

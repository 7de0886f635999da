package dto

import "time"

// OrderItemRequest is one requested checkout line.
type OrderItemRequest struct {
	VariantID string `json:"variant_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// ShippingAddressRequest is the destination block of a checkout.
type ShippingAddressRequest struct {
	Recipient  string `json:"recipient" binding:"required"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
}

// CreateOrderRequest describes the checkout payload.
type CreateOrderRequest struct {
	Type         string                 `json:"type"`
	Items        []OrderItemRequest     `json:"items" binding:"required"`
	Address      ShippingAddressRequest `json:"address" binding:"required"`
	ShippingCost float64                `json:"shipping_cost"`
	Note         string                 `json:"note"`
}

// OrderItemResponse is one immutable order line.
type OrderItemResponse struct {
	ProductName string  `json:"product_name"`
	SKU         string  `json:"sku"`
	Size        string  `json:"size,omitempty"`
	Color       string  `json:"color,omitempty"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

// OrderResponse is the order view.
type OrderResponse struct {
	ID           string              `json:"id"`
	Number       string              `json:"number"`
	Type         string              `json:"type"`
	Status       string              `json:"status"`
	Subtotal     float64             `json:"subtotal"`
	ShippingCost float64             `json:"shipping_cost"`
	Total        float64             `json:"total"`
	Note         string              `json:"note,omitempty"`
	Items        []OrderItemResponse `json:"items,omitempty"`
	PaidAt       *time.Time          `json:"paid_at,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

// OrderListResponse is an order page with pagination metadata.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Total int             `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// OrderStatusRequest describes a lifecycle transition payload.
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

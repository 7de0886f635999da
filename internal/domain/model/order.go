package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus describes the order lifecycle.
type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "PENDING_PAYMENT"
	OrderStatusPaid           OrderStatus = "PAID"
	OrderStatusProcessing     OrderStatus = "PROCESSING"
	OrderStatusShipped        OrderStatus = "SHIPPED"
	OrderStatusCompleted      OrderStatus = "COMPLETED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

// Terminal reports whether no further status transitions are allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// OrderType distinguishes retail checkout from wholesale orders.
type OrderType string

const (
	OrderTypeRetail    OrderType = "RETAIL"
	OrderTypeWholesale OrderType = "WHOLESALE"
)

// ShippingAddress is the denormalized destination snapshot stored on the order.
type ShippingAddress struct {
	Recipient  string
	Phone      string
	Line1      string
	Line2      string
	City       string
	Province   string
	PostalCode string
}

// Order is a checkout result. Items carry immutable price snapshots so later
// catalog changes never affect historical orders.
type Order struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Number       string
	Type         OrderType
	Status       OrderStatus
	Subtotal     float64
	ShippingCost float64
	Total        float64
	Note         string
	Address      ShippingAddress
	PaidAt       *time.Time
	CompletedAt  *time.Time
	CancelledAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Items []OrderItem
}

// OrderItem snapshots product and variant identity plus price at order time.
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	VariantID   uuid.UUID
	ProductName string
	SKU         string
	Size        string
	Color       string
	UnitPrice   float64
	Quantity    int
	Subtotal    float64
}

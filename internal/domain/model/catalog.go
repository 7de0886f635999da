package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductStatus describes stock readiness of a product.
type ProductStatus string

const (
	ProductStatusReady    ProductStatus = "READY"
	ProductStatusPreorder ProductStatus = "PREORDER"
)

// Category is a node of the self-referencing catalog tree.
type Category struct {
	ID        uuid.UUID
	ParentID  *uuid.UUID
	Name      string
	Slug      string
	CreatedAt time.Time

	Children []Category
}

// Product is a catalog item. Dimensions and weight feed shipping-rate checks.
type Product struct {
	ID          uuid.UUID
	CategoryID  uuid.UUID
	Name        string
	Slug        string
	Description string
	BasePrice   float64
	Weight      float64
	Length      float64
	Width       float64
	Height      float64
	Status      ProductStatus
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Variants []Variant
}

// Variant is a purchasable SKU of a product with its own stock count.
// PriceOverride, when set, takes precedence over the product base price.
type Variant struct {
	ID            uuid.UUID
	ProductID     uuid.UUID
	SKU           string
	Size          string
	Color         string
	PriceOverride *float64
	Stock         int
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// UnitPrice resolves the effective price of the variant given its product.
func (v Variant) UnitPrice(basePrice float64) float64 {
	if v.PriceOverride != nil {
		return *v.PriceOverride
	}
	return basePrice
}

package dto

// CategoryRequest describes the category creation payload.
type CategoryRequest struct {
	Name     string  `json:"name" binding:"required"`
	ParentID *string `json:"parent_id"`
}

// CategoryResponse is one node of the category tree.
type CategoryResponse struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Slug     string             `json:"slug"`
	Children []CategoryResponse `json:"children,omitempty"`
}

// ProductRequest describes create/update product payloads.
type ProductRequest struct {
	CategoryID  string  `json:"category_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"base_price" binding:"required"`
	Weight      float64 `json:"weight"`
	Length      float64 `json:"length"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Status      string  `json:"status"`
}

// VariantRequest describes create/update variant payloads.
type VariantRequest struct {
	SKU           string   `json:"sku"`
	Size          string   `json:"size"`
	Color         string   `json:"color"`
	PriceOverride *float64 `json:"price_override"`
	Stock         int      `json:"stock"`
	Active        *bool    `json:"active"`
}

// VariantResponse is the purchasable SKU view.
type VariantResponse struct {
	ID            string   `json:"id"`
	SKU           string   `json:"sku"`
	Size          string   `json:"size,omitempty"`
	Color         string   `json:"color,omitempty"`
	PriceOverride *float64 `json:"price_override,omitempty"`
	Stock         int      `json:"stock"`
	Active        bool     `json:"active"`
}

// ProductResponse is the catalog item view.
type ProductResponse struct {
	ID          string            `json:"id"`
	CategoryID  string            `json:"category_id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description,omitempty"`
	BasePrice   float64           `json:"base_price"`
	Weight      float64           `json:"weight,omitempty"`
	Status      string            `json:"status"`
	Active      bool              `json:"active"`
	Variants    []VariantResponse `json:"variants,omitempty"`
}

// ProductListResponse is a product page with pagination metadata.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

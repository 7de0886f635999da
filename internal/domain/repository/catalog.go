package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/mymedina/commerce/internal/domain/model"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	Page       int
	Limit      int
	Search     string
	CategoryID *uuid.UUID
	Status     *model.ProductStatus
	Active     *bool
}

// CategoryRepository persists the catalog category tree.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) (*model.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
}

// ProductRepository describes persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]model.Product, int, error)
	Update(ctx context.Context, product *model.Product) error
}

// VariantRepository describes persistence operations for product variants.
// Stock mutations during checkout and cancellation go through OrderRepository
// so they stay inside the order transaction.
type VariantRepository interface {
	Create(ctx context.Context, variant *model.Variant) (*model.Variant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Variant, error)
	// GetWithProduct resolves a variant together with its owning product.
	GetWithProduct(ctx context.Context, id uuid.UUID) (*model.Variant, *model.Product, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Variant, error)
	Update(ctx context.Context, variant *model.Variant) error
}

package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/mymedina/commerce/internal/domain/errors"
	"github.com/mymedina/commerce/internal/domain/model"
	"github.com/mymedina/commerce/internal/domain/repository"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a display name.
func Slugify(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	return strings.Trim(slug, "-")
}

// CatalogUseCase manages categories, products and variants.
type CatalogUseCase struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	variants   repository.VariantRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(categories repository.CategoryRepository, products repository.ProductRepository, variants repository.VariantRepository) *CatalogUseCase {
	return &CatalogUseCase{categories: categories, products: products, variants: variants}
}

// CreateCategory adds a category node, optionally under a parent.
func (u *CatalogUseCase) CreateCategory(ctx context.Context, name string, parentID *uuid.UUID) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainErrors.NewValidation("category name is required")
	}
	if parentID != nil {
		if _, err := u.categories.GetByID(ctx, *parentID); err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil, domainErrors.NewValidation("parent category does not exist")
			}
			return nil, err
		}
	}
	return u.categories.Create(ctx, &model.Category{
		Name:     name,
		Slug:     Slugify(name),
		ParentID: parentID,
	})
}

// ListCategories returns root categories with their children attached.
func (u *CatalogUseCase) ListCategories(ctx context.Context) ([]model.Category, error) {
	all, err := u.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	byParent := make(map[uuid.UUID][]model.Category)
	var roots []model.Category
	for _, c := range all {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		byParent[*c.ParentID] = append(byParent[*c.ParentID], c)
	}
	for i := range roots {
		roots[i].Children = byParent[roots[i].ID]
	}
	return roots, nil
}

// ProductInput carries the writable product fields.
type ProductInput struct {
	CategoryID  uuid.UUID
	Name        string
	Description string
	BasePrice   float64
	Weight      float64
	Length      float64
	Width       float64
	Height      float64
	Status      model.ProductStatus
}

// CreateProduct validates the category and adds a product with a derived slug.
func (u *CatalogUseCase) CreateProduct(ctx context.Context, in ProductInput) (*model.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domainErrors.NewValidation("product name is required")
	}
	if in.BasePrice <= 0 {
		return nil, domainErrors.NewValidation("base price must be positive")
	}
	if _, err := u.categories.GetByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.NewValidation("category does not exist")
		}
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = model.ProductStatusReady
	}

	return u.products.Create(ctx, &model.Product{
		CategoryID:  in.CategoryID,
		Name:        strings.TrimSpace(in.Name),
		Slug:        Slugify(in.Name),
		Description: in.Description,
		BasePrice:   in.BasePrice,
		Weight:      in.Weight,
		Length:      in.Length,
		Width:       in.Width,
		Height:      in.Height,
		Status:      status,
		Active:      true,
	})
}

// ListProducts returns a filtered product page with the total match count.
func (u *CatalogUseCase) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]model.Product, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return u.products.List(ctx, filter)
}

// GetProduct fetches a product with its variants.
func (u *CatalogUseCase) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := u.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	variants, err := u.variants.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Variants = variants
	return product, nil
}

// GetProductBySlug fetches a product by its URL slug with variants.
func (u *CatalogUseCase) GetProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	product, err := u.products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	variants, err := u.variants.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	product.Variants = variants
	return product, nil
}

// UpdateProduct overwrites the writable fields of an existing product.
func (u *CatalogUseCase) UpdateProduct(ctx context.Context, id uuid.UUID, in ProductInput) (*model.Product, error) {
	product, err := u.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domainErrors.NewValidation("product name is required")
	}
	if in.BasePrice <= 0 {
		return nil, domainErrors.NewValidation("base price must be positive")
	}

	product.CategoryID = in.CategoryID
	product.Name = strings.TrimSpace(in.Name)
	product.Slug = Slugify(in.Name)
	product.Description = in.Description
	product.BasePrice = in.BasePrice
	product.Weight = in.Weight
	product.Length = in.Length
	product.Width = in.Width
	product.Height = in.Height
	if in.Status != "" {
		product.Status = in.Status
	}

	if err := u.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeactivateProduct hides a product from the storefront without deleting it.
func (u *CatalogUseCase) DeactivateProduct(ctx context.Context, id uuid.UUID) error {
	product, err := u.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	product.Active = false
	return u.products.Update(ctx, product)
}

// VariantInput carries the writable variant fields.
type VariantInput struct {
	SKU           string
	Size          string
	Color         string
	PriceOverride *float64
	Stock         int
}

// CreateVariant adds a purchasable SKU under a product.
func (u *CatalogUseCase) CreateVariant(ctx context.Context, productID uuid.UUID, in VariantInput) (*model.Variant, error) {
	if strings.TrimSpace(in.SKU) == "" {
		return nil, domainErrors.NewValidation("sku is required")
	}
	if in.Stock < 0 {
		return nil, domainErrors.NewValidation("stock cannot be negative")
	}
	if in.PriceOverride != nil && *in.PriceOverride <= 0 {
		return nil, domainErrors.NewValidation("price override must be positive")
	}
	if _, err := u.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	return u.variants.Create(ctx, &model.Variant{
		ProductID:     productID,
		SKU:           strings.TrimSpace(in.SKU),
		Size:          in.Size,
		Color:         in.Color,
		PriceOverride: in.PriceOverride,
		Stock:         in.Stock,
		Active:        true,
	})
}

// UpdateVariant overwrites stock, price override and activity of a variant.
func (u *CatalogUseCase) UpdateVariant(ctx context.Context, id uuid.UUID, in VariantInput, active bool) (*model.Variant, error) {
	variant, err := u.variants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Stock < 0 {
		return nil, domainErrors.NewValidation("stock cannot be negative")
	}
	if in.PriceOverride != nil && *in.PriceOverride <= 0 {
		return nil, domainErrors.NewValidation("price override must be positive")
	}

	if in.SKU != "" {
		variant.SKU = strings.TrimSpace(in.SKU)
	}
	variant.Size = in.Size
	variant.Color = in.Color
	variant.PriceOverride = in.PriceOverride
	variant.Stock = in.Stock
	variant.Active = active

	if err := u.variants.Update(ctx, variant); err != nil {
		return nil, err
	}
	return variant, nil
}

// ListVariants returns the variants of a product.
func (u *CatalogUseCase) ListVariants(ctx context.Context, productID uuid.UUID) ([]model.Variant, error) {
	return u.variants.ListByProduct(ctx, productID)
}

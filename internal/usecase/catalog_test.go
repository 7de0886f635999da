package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	domainErrors "github.com/mymedina/commerce/internal/domain/errors"
	"github.com/mymedina/commerce/internal/domain/model"
	"github.com/mymedina/commerce/internal/domain/repository"
	"github.com/mymedina/commerce/internal/test"
)

func newCatalogFixture() (*CatalogUseCase, *test.CategoryRepositoryStub, *test.ProductRepositoryStub, *test.VariantRepositoryStub) {
	categories := &test.CategoryRepositoryStub{}
	products := &test.ProductRepositoryStub{}
	variants := test.NewVariantRepositoryStub()
	return NewCatalogUseCase(categories, products, variants), categories, products, variants
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Gamis Basic":          "gamis-basic",
		"  Hijab & Voal 110 ":  "hijab-voal-110",
		"Koko / Kurta (Pria)!": "koko-kurta-pria",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCreateCategoryWithParent(t *testing.T) {
	uc, categories, _, _ := newCatalogFixture()

	root, err := uc.CreateCategory(context.Background(), "Gamis", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	child, err := uc.CreateCategory(context.Background(), "Gamis Syari", &root.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if child.ParentID == nil || *child.ParentID != root.ID {
		t.Fatalf("child must reference parent")
	}
	if len(categories.Items) != 2 {
		t.Fatalf("expected 2 stored categories")
	}

	ghost := uuid.New()
	var validation *domainErrors.ValidationError
	if _, err := uc.CreateCategory(context.Background(), "Orphan", &ghost); !errors.As(err, &validation) {
		t.Fatalf("expected validation error for missing parent, got %v", err)
	}
}

func TestListCategoriesBuildsTree(t *testing.T) {
	uc, categories, _, _ := newCatalogFixture()

	rootID := uuid.New()
	categories.Items = []model.Category{
		{ID: rootID, Name: "Gamis", Slug: "gamis"},
		{ID: uuid.New(), ParentID: &rootID, Name: "Gamis Syari", Slug: "gamis-syari"},
		{ID: uuid.New(), ParentID: &rootID, Name: "Gamis Basic", Slug: "gamis-basic"},
	}

	roots, err := uc.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}
	if len(roots[0].Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(roots[0].Children))
	}
}

func TestCreateProductValidation(t *testing.T) {
	uc, _, _, _ := newCatalogFixture()
	category, _ := uc.CreateCategory(context.Background(), "Gamis", nil)

	cases := []ProductInput{
		{CategoryID: category.ID, Name: "", BasePrice: 100000},
		{CategoryID: category.ID, Name: "Gamis Basic", BasePrice: 0},
		{CategoryID: uuid.New(), Name: "Gamis Basic", BasePrice: 100000},
	}
	for i, in := range cases {
		var validation *domainErrors.ValidationError
		if _, err := uc.CreateProduct(context.Background(), in); !errors.As(err, &validation) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}

	product, err := uc.CreateProduct(context.Background(), ProductInput{
		CategoryID: category.ID,
		Name:       "Gamis Basic",
		BasePrice:  185000,
		Weight:     500,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.Slug != "gamis-basic" {
		t.Fatalf("expected derived slug, got %q", product.Slug)
	}
	if !product.Active || product.Status != model.ProductStatusReady {
		t.Fatalf("new product must be active and READY")
	}
}

func TestCreateProductDuplicateSlug(t *testing.T) {
	uc, _, _, _ := newCatalogFixture()
	category, _ := uc.CreateCategory(context.Background(), "Gamis", nil)

	in := ProductInput{CategoryID: category.ID, Name: "Gamis Basic", BasePrice: 185000}
	if _, err := uc.CreateProduct(context.Background(), in); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := uc.CreateProduct(context.Background(), in); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGetProductAttachesVariants(t *testing.T) {
	uc, _, products, variants := newCatalogFixture()

	product := model.Product{ID: uuid.New(), Name: "Gamis Basic", Slug: "gamis-basic", BasePrice: 185000, Active: true}
	products.Items = append(products.Items, product)
	variants.Items = append(variants.Items,
		model.Variant{ID: uuid.New(), ProductID: product.ID, SKU: "GMS-M"},
		model.Variant{ID: uuid.New(), ProductID: product.ID, SKU: "GMS-L"},
	)

	got, err := uc.GetProduct(context.Background(), product.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(got.Variants))
	}

	bySlug, err := uc.GetProductBySlug(context.Background(), "gamis-basic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bySlug.Variants) != 2 {
		t.Fatalf("expected 2 variants via slug, got %d", len(bySlug.Variants))
	}
}

func TestDeactivateProduct(t *testing.T) {
	uc, _, products, _ := newCatalogFixture()
	product := model.Product{ID: uuid.New(), Name: "Gamis Basic", BasePrice: 185000, Active: true}
	products.Items = append(products.Items, product)

	if err := uc.DeactivateProduct(context.Background(), product.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if products.Items[0].Active {
		t.Fatalf("product must be deactivated")
	}
}

func TestCreateVariantValidation(t *testing.T) {
	uc, _, products, _ := newCatalogFixture()
	product := model.Product{ID: uuid.New(), Name: "Gamis Basic", BasePrice: 185000, Active: true}
	products.Items = append(products.Items, product)
	negative := -1.0

	cases := []VariantInput{
		{SKU: "", Stock: 1},
		{SKU: "GMS-M", Stock: -1},
		{SKU: "GMS-M", Stock: 1, PriceOverride: &negative},
	}
	for i, in := range cases {
		var validation *domainErrors.ValidationError
		if _, err := uc.CreateVariant(context.Background(), product.ID, in); !errors.As(err, &validation) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}

	variant, err := uc.CreateVariant(context.Background(), product.ID, VariantInput{SKU: "GMS-M", Size: "M", Stock: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !variant.Active {
		t.Fatalf("new variant must be active")
	}

	if _, err := uc.CreateVariant(context.Background(), uuid.New(), VariantInput{SKU: "GMS-L", Stock: 1}); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown product, got %v", err)
	}
}

func TestListProductsClampsPagination(t *testing.T) {
	uc, _, products, _ := newCatalogFixture()

	var captured repository.ProductFilter
	products.ListFn = func(ctx context.Context, filter repository.ProductFilter) ([]model.Product, int, error) {
		captured = filter
		return nil, 0, nil
	}

	if _, _, err := uc.ListProducts(context.Background(), repository.ProductFilter{Page: -3, Limit: 1000}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Page != 1 || captured.Limit != 20 {
		t.Fatalf("expected clamped pagination, got page=%d limit=%d", captured.Page, captured.Limit)
	}
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/mymedina/commerce/internal/domain/errors"
	"github.com/mymedina/commerce/internal/domain/model"
	"github.com/mymedina/commerce/internal/domain/repository"
)

type categoryRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

type variantRepository struct {
	storage *Storage
}

// --- CategoryRepository implementation ---

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	const query = `INSERT INTO categories (id, parent_id, name, slug) VALUES ($1, $2, $3, $4) RETURNING created_at`
	created := *category
	created.ID = uuid.New()
	err := r.storage.pool.QueryRow(ctx, query, created.ID, created.ParentID, created.Name, created.Slug).Scan(&created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	const query = `SELECT id, parent_id, name, slug, created_at FROM categories WHERE id=$1`
	var c model.Category
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.ParentID, &c.Name, &c.Slug, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	const query = `SELECT id, parent_id, name, slug, created_at FROM categories ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.ParentID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- ProductRepository implementation ---

const productColumns = `id, category_id, name, slug, description, base_price, weight, length, width, height, status, active, created_at, updated_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.BasePrice,
		&p.Weight, &p.Length, &p.Width, &p.Height, &p.Status, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	const query = `INSERT INTO products (id, category_id, name, slug, description, base_price, weight, length, width, height, status, active)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
                   RETURNING created_at, updated_at`
	created := *product
	created.ID = uuid.New()
	err := r.storage.pool.QueryRow(ctx, query,
		created.ID, created.CategoryID, created.Name, created.Slug, created.Description,
		created.BasePrice, created.Weight, created.Length, created.Width, created.Height,
		created.Status, created.Active,
	).Scan(&created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	return scanProduct(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE slug=$1`
	return scanProduct(r.storage.pool.QueryRow(ctx, query, slug))
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, int, error) {
	conditions := []string{"TRUE"}
	args := []any{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM products WHERE ` + where
	if err := r.storage.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)
	listQuery := fmt.Sprintf(`SELECT %s FROM products WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		productColumns, where, len(args)-1, len(args))

	rows, err := r.storage.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.BasePrice,
			&p.Weight, &p.Length, &p.Width, &p.Height, &p.Status, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	const query = `UPDATE products
                   SET category_id=$2, name=$3, slug=$4, description=$5, base_price=$6,
                       weight=$7, length=$8, width=$9, height=$10, status=$11, active=$12,
                       updated_at=NOW()
                   WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query,
		product.ID, product.CategoryID, product.Name, product.Slug, product.Description,
		product.BasePrice, product.Weight, product.Length, product.Width, product.Height,
		product.Status, product.Active)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- VariantRepository implementation ---

const variantColumns = `id, product_id, sku, size, color, price_override, stock, active, created_at, updated_at`

func scanVariant(row pgx.Row) (*model.Variant, error) {
	var v model.Variant
	err := row.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Size, &v.Color, &v.PriceOverride,
		&v.Stock, &v.Active, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *variantRepository) Create(ctx context.Context, variant *model.Variant) (*model.Variant, error) {
	const query = `INSERT INTO variants (id, product_id, sku, size, color, price_override, stock, active)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                   RETURNING created_at, updated_at`
	created := *variant
	created.ID = uuid.New()
	err := r.storage.pool.QueryRow(ctx, query,
		created.ID, created.ProductID, created.SKU, created.Size, created.Color,
		created.PriceOverride, created.Stock, created.Active,
	).Scan(&created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *variantRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Variant, error) {
	const query = `SELECT ` + variantColumns + ` FROM variants WHERE id=$1`
	return scanVariant(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *variantRepository) GetWithProduct(ctx context.Context, id uuid.UUID) (*model.Variant, *model.Product, error) {
	const query = `SELECT v.id, v.product_id, v.sku, v.size, v.color, v.price_override, v.stock, v.active, v.created_at, v.updated_at,
                          p.id, p.category_id, p.name, p.slug, p.description, p.base_price, p.weight, p.length, p.width, p.height, p.status, p.active, p.created_at, p.updated_at
                   FROM variants v
                   JOIN products p ON p.id = v.product_id
                   WHERE v.id=$1`
	var v model.Variant
	var p model.Product
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.ProductID, &v.SKU, &v.Size, &v.Color, &v.PriceOverride, &v.Stock, &v.Active, &v.CreatedAt, &v.UpdatedAt,
		&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.BasePrice, &p.Weight, &p.Length, &p.Width, &p.Height, &p.Status, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, domainErrors.ErrNotFound
		}
		return nil, nil, err
	}
	return &v, &p, nil
}

func (r *variantRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Variant, error) {
	const query = `SELECT ` + variantColumns + ` FROM variants WHERE product_id=$1 ORDER BY sku`
	rows, err := r.storage.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Variant
	for rows.Next() {
		var v model.Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Size, &v.Color, &v.PriceOverride,
			&v.Stock, &v.Active, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *variantRepository) Update(ctx context.Context, variant *model.Variant) error {
	const query = `UPDATE variants
                   SET sku=$2, size=$3, color=$4, price_override=$5, stock=$6, active=$7, updated_at=NOW()
                   WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query,
		variant.ID, variant.SKU, variant.Size, variant.Color, variant.PriceOverride,
		variant.Stock, variant.Active)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

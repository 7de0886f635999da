package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mymedina/commerce/internal/domain/repository"
)

// uniqueViolation is the Postgres error code for unique constraint failures.
const uniqueViolation = "23505"

// Pool is the subset of pgxpool.Pool the storage relies on. Tests substitute a
// pgxmock pool through it.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository           { return &userRepository{storage: s} }
func (s *Storage) Addresses() repository.AddressRepository    { return &addressRepository{storage: s} }
func (s *Storage) Categories() repository.CategoryRepository  { return &categoryRepository{storage: s} }
func (s *Storage) Products() repository.ProductRepository     { return &productRepository{storage: s} }
func (s *Storage) Variants() repository.VariantRepository     { return &variantRepository{storage: s} }
func (s *Storage) Orders() repository.OrderRepository         { return &orderRepository{storage: s} }
func (s *Storage) Payments() repository.PaymentRepository     { return &paymentRepository{storage: s} }
func (s *Storage) Shipments() repository.ShipmentRepository   { return &shipmentRepository{storage: s} }
func (s *Storage) Reports() repository.ReportRepository       { return &reportRepository{storage: s} }

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id UUID PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            name TEXT NOT NULL,
            phone TEXT NOT NULL DEFAULT '',
            role TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS addresses (
            id UUID PRIMARY KEY,
            user_id UUID NOT NULL REFERENCES users(id),
            label TEXT NOT NULL DEFAULT '',
            recipient TEXT NOT NULL,
            phone TEXT NOT NULL,
            line1 TEXT NOT NULL,
            line2 TEXT NOT NULL DEFAULT '',
            city TEXT NOT NULL,
            province TEXT NOT NULL,
            postal_code TEXT NOT NULL,
            is_default BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS categories (
            id UUID PRIMARY KEY,
            parent_id UUID REFERENCES categories(id),
            name TEXT NOT NULL,
            slug TEXT UNIQUE NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id UUID PRIMARY KEY,
            category_id UUID NOT NULL REFERENCES categories(id),
            name TEXT NOT NULL,
            slug TEXT UNIQUE NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            base_price DOUBLE PRECISION NOT NULL,
            weight DOUBLE PRECISION NOT NULL DEFAULT 0,
            length DOUBLE PRECISION NOT NULL DEFAULT 0,
            width DOUBLE PRECISION NOT NULL DEFAULT 0,
            height DOUBLE PRECISION NOT NULL DEFAULT 0,
            status TEXT NOT NULL,
            active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS variants (
            id UUID PRIMARY KEY,
            product_id UUID NOT NULL REFERENCES products(id),
            sku TEXT UNIQUE NOT NULL,
            size TEXT NOT NULL DEFAULT '',
            color TEXT NOT NULL DEFAULT '',
            price_override DOUBLE PRECISION,
            stock INTEGER NOT NULL DEFAULT 0,
            active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY,
            user_id UUID NOT NULL REFERENCES users(id),
            number TEXT UNIQUE NOT NULL,
            type TEXT NOT NULL,
            status TEXT NOT NULL,
            subtotal DOUBLE PRECISION NOT NULL,
            shipping_cost DOUBLE PRECISION NOT NULL,
            total DOUBLE PRECISION NOT NULL,
            note TEXT NOT NULL DEFAULT '',
            recipient TEXT NOT NULL,
            recipient_phone TEXT NOT NULL,
            address_line1 TEXT NOT NULL,
            address_line2 TEXT NOT NULL DEFAULT '',
            city TEXT NOT NULL,
            province TEXT NOT NULL,
            postal_code TEXT NOT NULL,
            paid_at TIMESTAMPTZ,
            completed_at TIMESTAMPTZ,
            cancelled_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id UUID PRIMARY KEY,
            order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            product_id UUID NOT NULL,
            variant_id UUID NOT NULL,
            product_name TEXT NOT NULL,
            sku TEXT NOT NULL,
            size TEXT NOT NULL DEFAULT '',
            color TEXT NOT NULL DEFAULT '',
            unit_price DOUBLE PRECISION NOT NULL,
            quantity INTEGER NOT NULL,
            subtotal DOUBLE PRECISION NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS payments (
            id UUID PRIMARY KEY,
            order_id UUID NOT NULL REFERENCES orders(id),
            transaction_id TEXT UNIQUE NOT NULL,
            method TEXT NOT NULL,
            status TEXT NOT NULL,
            amount DOUBLE PRECISION NOT NULL,
            redirect_url TEXT NOT NULL DEFAULT '',
            expires_at TIMESTAMPTZ,
            webhook_payload TEXT NOT NULL DEFAULT '',
            signature_key TEXT NOT NULL DEFAULT '',
            initiated_at TIMESTAMPTZ,
            settled_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS shipments (
            id UUID PRIMARY KEY,
            order_id UUID UNIQUE NOT NULL REFERENCES orders(id),
            courier TEXT NOT NULL,
            service TEXT NOT NULL DEFAULT '',
            waybill TEXT NOT NULL DEFAULT '',
            courier_order_id TEXT NOT NULL DEFAULT '',
            tracking_id TEXT NOT NULL DEFAULT '',
            tracking_url TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            cost DOUBLE PRECISION NOT NULL DEFAULT 0,
            shipped_at TIMESTAMPTZ,
            delivered_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS daily_sequences (
            scope TEXT NOT NULL,
            day TEXT NOT NULL,
            value INTEGER NOT NULL,
            PRIMARY KEY (scope, day)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_order ON payments(order_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_variants_product ON variants(product_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// nextSequence atomically bumps the date-scoped counter for number generation.
// The upsert removes the count-and-increment race of naive sequence schemes.
func nextSequence(ctx context.Context, tx pgx.Tx, scope, day string) (int, error) {
	const query = `INSERT INTO daily_sequences (scope, day, value) VALUES ($1, $2, 1)
                   ON CONFLICT (scope, day) DO UPDATE SET value = daily_sequences.value + 1
                   RETURNING value`
	var value int
	if err := tx.QueryRow(ctx, query, scope, day).Scan(&value); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return value, nil
}

// formatSequenceNumber renders identifiers such as ORD-20250101-00001.
func formatSequenceNumber(prefix, day string, value int) string {
	return fmt.Sprintf("%s-%s-%05d", prefix, day, value)
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}

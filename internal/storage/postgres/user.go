package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/mymedina/commerce/internal/domain/errors"
	"github.com/mymedina/commerce/internal/domain/model"
)

type userRepository struct {
	storage *Storage
}

type addressRepository struct {
	storage *Storage
}

const userColumns = `id, email, password_hash, name, phone, role, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Phone, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, email, passwordHash, name, phone string, role model.Role) (*model.User, error) {
	const query = `INSERT INTO users (id, email, password_hash, name, phone, role)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING created_at`
	u := model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Phone:        phone,
		Role:         role,
	}
	err := r.storage.pool.QueryRow(ctx, query, u.ID, email, passwordHash, name, phone, role).Scan(&u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *addressRepository) Create(ctx context.Context, address *model.Address) (*model.Address, error) {
	created := *address
	created.ID = uuid.New()

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if created.IsDefault {
			const clear = `UPDATE addresses SET is_default=FALSE WHERE user_id=$1`
			if _, err := tx.Exec(ctx, clear, created.UserID); err != nil {
				return err
			}
		}
		const query = `INSERT INTO addresses (id, user_id, label, recipient, phone, line1, line2, city, province, postal_code, is_default)
                       VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
                       RETURNING created_at`
		return tx.QueryRow(ctx, query,
			created.ID, created.UserID, created.Label, created.Recipient, created.Phone,
			created.Line1, created.Line2, created.City, created.Province, created.PostalCode,
			created.IsDefault,
		).Scan(&created.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *addressRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	const query = `SELECT id, user_id, label, recipient, phone, line1, line2, city, province, postal_code, is_default, created_at
                   FROM addresses WHERE user_id=$1 ORDER BY is_default DESC, created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Address
	for rows.Next() {
		var a model.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.Label, &a.Recipient, &a.Phone, &a.Line1, &a.Line2,
			&a.City, &a.Province, &a.PostalCode, &a.IsDefault, &a.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *addressRepository) SetDefault(ctx context.Context, userID, addressID uuid.UUID) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const clear = `UPDATE addresses SET is_default=FALSE WHERE user_id=$1`
		if _, err := tx.Exec(ctx, clear, userID); err != nil {
			return err
		}
		const set = `UPDATE addresses SET is_default=TRUE WHERE id=$1 AND user_id=$2`
		tag, err := tx.Exec(ctx, set, addressID, userID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		return nil
	})
}

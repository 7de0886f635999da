package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/mymedina/commerce/internal/domain/model"
)

// UserRepository describes persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, email, passwordHash, name, phone string, role model.Role) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// AddressRepository manages the saved-address book of a user.
type AddressRepository interface {
	Create(ctx context.Context, address *model.Address) (*model.Address, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Address, error)
	// SetDefault flags one address as default and clears the flag on the rest.
	SetDefault(ctx context.Context, userID, addressID uuid.UUID) error
}

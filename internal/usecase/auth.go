package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/mymedina/commerce/internal/domain/errors"
	"github.com/mymedina/commerce/internal/domain/model"
	"github.com/mymedina/commerce/internal/domain/repository"
	pkgAuth "github.com/mymedina/commerce/internal/pkg/auth"
)

// AuthUseCase handles account lifecycle, token management and the saved
// address book.
type AuthUseCase struct {
	users     repository.UserRepository
	addresses repository.AddressRepository
	hasher    pkgAuth.PasswordHasher
	tokens    pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, addresses repository.AddressRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, addresses: addresses, hasher: hasher, tokens: strategy}
}

// RegisterInput carries the fields of a signup request.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

// Register creates a customer account and returns an auth token.
func (u *AuthUseCase) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return nil, "", domainErrors.NewValidation("valid email is required")
	}
	if len(in.Password) < 8 {
		return nil, "", domainErrors.NewValidation("password must be at least 8 characters")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, "", domainErrors.NewValidation("name is required")
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, in.Email, hash, strings.TrimSpace(in.Name), strings.TrimSpace(in.Phone), model.RoleCustomer)
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID, usr.Role)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns an auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID, usr.Role)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts identity claims from the provided token.
func (u *AuthUseCase) ParseToken(token string) (pkgAuth.Claims, error) {
	if token == "" {
		return pkgAuth.Claims{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches a user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// AddAddress stores a new saved address for the user.
func (u *AuthUseCase) AddAddress(ctx context.Context, userID uuid.UUID, address model.Address) (*model.Address, error) {
	if strings.TrimSpace(address.Recipient) == "" {
		return nil, domainErrors.NewValidation("recipient is required")
	}
	if strings.TrimSpace(address.Line1) == "" {
		return nil, domainErrors.NewValidation("address line is required")
	}
	if strings.TrimSpace(address.PostalCode) == "" {
		return nil, domainErrors.NewValidation("postal code is required")
	}

	address.UserID = userID
	return u.addresses.Create(ctx, &address)
}

// ListAddresses returns the saved addresses of the user.
func (u *AuthUseCase) ListAddresses(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	return u.addresses.ListByUser(ctx, userID)
}

// SetDefaultAddress marks one saved address as the default.
func (u *AuthUseCase) SetDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	return u.addresses.SetDefault(ctx, userID, addressID)
}

package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	domainErrors "github.com/mymedina/commerce/internal/domain/errors"
	"github.com/mymedina/commerce/internal/domain/model"
	"github.com/mymedina/commerce/internal/test"
)

func newAuthUseCase(users *test.UserRepositoryStub, addresses *test.AddressRepositoryStub) *AuthUseCase {
	return NewAuthUseCase(users, addresses, test.HasherStub{}, test.StrategyStub{})
}

func TestRegisterSuccess(t *testing.T) {
	users := test.NewUserRepositoryStub()
	uc := newAuthUseCase(users, &test.AddressRepositoryStub{})

	user, token, err := uc.Register(context.Background(), RegisterInput{
		Email:    "Buyer@Example.com",
		Password: "secret-password",
		Name:     "Siti",
		Phone:    "+628123456789",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token to be issued")
	}
	if user.Email != "buyer@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Role != model.RoleCustomer {
		t.Fatalf("expected customer role, got %q", user.Role)
	}
	if user.PasswordHash == "secret-password" {
		t.Fatalf("password must not be stored in plain text")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := test.NewUserRepositoryStub()
	uc := newAuthUseCase(users, &test.AddressRepositoryStub{})

	in := RegisterInput{Email: "buyer@example.com", Password: "secret-password", Name: "Siti"}
	if _, _, err := uc.Register(context.Background(), in); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, _, err := uc.Register(context.Background(), in); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	uc := newAuthUseCase(test.NewUserRepositoryStub(), &test.AddressRepositoryStub{})

	cases := []RegisterInput{
		{Email: "", Password: "secret-password", Name: "Siti"},
		{Email: "not-an-email", Password: "secret-password", Name: "Siti"},
		{Email: "buyer@example.com", Password: "short", Name: "Siti"},
		{Email: "buyer@example.com", Password: "secret-password", Name: "  "},
	}
	for _, in := range cases {
		var validation *domainErrors.ValidationError
		if _, _, err := uc.Register(context.Background(), in); !errors.As(err, &validation) {
			t.Fatalf("expected validation error for %+v, got %v", in, err)
		}
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	users := test.NewUserRepositoryStub()
	uc := newAuthUseCase(users, &test.AddressRepositoryStub{})

	if _, _, err := uc.Register(context.Background(), RegisterInput{
		Email: "buyer@example.com", Password: "secret-password", Name: "Siti",
	}); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	if _, _, err := uc.Authenticate(context.Background(), "buyer@example.com", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := uc.Authenticate(context.Background(), "ghost@example.com", "secret-password"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestAuthenticateSuccess(t *testing.T) {
	users := test.NewUserRepositoryStub()
	uc := newAuthUseCase(users, &test.AddressRepositoryStub{})

	if _, _, err := uc.Register(context.Background(), RegisterInput{
		Email: "buyer@example.com", Password: "secret-password", Name: "Siti",
	}); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	user, token, err := uc.Authenticate(context.Background(), " Buyer@Example.com ", "secret-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" || user == nil {
		t.Fatalf("expected user and token")
	}
}

func TestAddressBook(t *testing.T) {
	addresses := &test.AddressRepositoryStub{}
	uc := newAuthUseCase(test.NewUserRepositoryStub(), addresses)
	userID := uuid.New()

	if _, err := uc.AddAddress(context.Background(), userID, model.Address{Recipient: "Siti"}); err == nil {
		t.Fatalf("expected validation error for missing address line")
	}

	created, err := uc.AddAddress(context.Background(), userID, model.Address{
		Recipient:  "Siti",
		Line1:      "Jl. Kemang Raya 12",
		City:       "Jakarta Selatan",
		PostalCode: "12560",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != userID {
		t.Fatalf("address must belong to the caller")
	}

	list, err := uc.ListAddresses(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 address, got %d", len(list))
	}

	if err := uc.SetDefaultAddress(context.Background(), userID, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(addresses.DefaultCalls) != 1 {
		t.Fatalf("expected SetDefault to be called once")
	}
}

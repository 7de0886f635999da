package model

import (
	"time"

	"github.com/google/uuid"
)

// Role defines access level of an account.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
	RoleOwner    Role = "OWNER"
)

// IsStaff reports whether the role may perform administrative operations.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleOwner
}

// User represents a registered account of the store.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Phone        string
	Role         Role
	CreatedAt    time.Time
}

// Address is a saved shipping address belonging to a user.
type Address struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Label      string
	Recipient  string
	Phone      string
	Line1      string
	Line2      string
	City       string
	Province   string
	PostalCode string
	IsDefault  bool
	CreatedAt  time.Time
}

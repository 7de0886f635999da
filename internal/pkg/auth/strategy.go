package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/mymedina/commerce/internal/domain/model"
)

// Claims are the authenticated identity carried by a token.
type Claims struct {
	UserID uuid.UUID
	Role   model.Role
}

// Strategy issues and validates auth tokens.
type Strategy interface {
	IssueToken(userID uuid.UUID, role model.Role) (string, error)
	ParseToken(token string) (Claims, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}

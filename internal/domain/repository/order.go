package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/mymedina/commerce/internal/domain/model"
)

// OrderFilter narrows admin order listings.
type OrderFilter struct {
	Page   int
	Limit  int
	Status *model.OrderStatus
}

// OrderRepository describes persistence operations for orders.
//
// Create assigns the date-scoped order number and decrements each referenced
// variant's stock inside one transaction; a variant falling short fails the
// whole order. UpdateStatus performs the terminal-state guard and the stock
// restore on cancellation inside the same transaction.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]model.Order, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error)
}

package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/mymedina/commerce/internal/domain/model"
)

// PaymentRepository describes persistence operations for payment attempts.
//
// NextTransactionID reserves a date-scoped transaction id so the gateway can
// be called before any payment row exists. ApplyStatus stores the new status
// with the raw webhook payload and, when the status is SETTLEMENT, advances
// the owning order to PAID within the same transaction.
type PaymentRepository interface {
	NextTransactionID(ctx context.Context) (string, error)
	Create(ctx context.Context, payment *model.Payment) (*model.Payment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Payment, error)
	GetPendingByOrder(ctx context.Context, orderID uuid.UUID) (*model.Payment, error)
	ApplyStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus, webhookPayload, signatureKey string) (*model.Payment, error)
}

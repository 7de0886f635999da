package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus mirrors the gateway transaction outcome set. A failed or
// expired attempt is never transitioned back to PENDING; callers create a new
// Payment row instead.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusSettlement PaymentStatus = "SETTLEMENT"
	PaymentStatusExpire     PaymentStatus = "EXPIRE"
	PaymentStatusCancel     PaymentStatus = "CANCEL"
	PaymentStatusDeny       PaymentStatus = "DENY"
	PaymentStatusRefund     PaymentStatus = "REFUND"
)

// PaymentMethod enumerates supported gateway payment channels.
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodQRIS         PaymentMethod = "QRIS"
	PaymentMethodEWallet      PaymentMethod = "E_WALLET"
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
)

// Payment is one attempt to pay an order through the external gateway.
type Payment struct {
	ID             uuid.UUID
	OrderID        uuid.UUID
	TransactionID  string
	Method         PaymentMethod
	Status         PaymentStatus
	Amount         float64
	RedirectURL    string
	ExpiresAt      *time.Time
	WebhookPayload string
	SignatureKey   string
	InitiatedAt    *time.Time
	SettledAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

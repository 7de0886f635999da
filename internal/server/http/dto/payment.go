package dto

import "time"

// CreatePaymentRequest describes the payment initiation payload.
type CreatePaymentRequest struct {
	Method string `json:"method" binding:"required"`
}

// PaymentResponse is the payment attempt view.
type PaymentResponse struct {
	ID            string     `json:"id"`
	OrderID       string     `json:"order_id"`
	TransactionID string     `json:"transaction_id"`
	Method        string     `json:"method"`
	Status        string     `json:"status"`
	Amount        float64    `json:"amount"`
	RedirectURL   string     `json:"redirect_url,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	SettledAt     *time.Time `json:"settled_at,omitempty"`
}

// PaymentWebhookRequest is the gateway status notification body.
type PaymentWebhookRequest struct {
	OrderID           string `json:"order_id" binding:"required"`
	TransactionStatus string `json:"transaction_status" binding:"required"`
	FraudStatus       string `json:"fraud_status"`
	StatusCode        string `json:"status_code" binding:"required"`
	GrossAmount       string `json:"gross_amount" binding:"required"`
	SignatureKey      string `json:"signature_key" binding:"required"`
}

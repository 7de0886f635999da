package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mymedina/commerce/internal/domain/model"
	"github.com/mymedina/commerce/internal/server/http/dto"
	"github.com/mymedina/commerce/internal/usecase"
)

// PaymentHandler manages payment attempts and the gateway webhook.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Create handles POST /api/orders/:id/payments.
func (h *PaymentHandler) Create(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "malformed request body"})
		return
	}

	payment, err := h.facade.CreatePayment(c.Request.Context(), orderID, CurrentUserID(c), CurrentRole(c), model.PaymentMethod(req.Method))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPaymentResponse(*payment))
}

// Get handles GET /api/payments/:id.
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	payment, err := h.facade.GetPayment(c.Request.Context(), id, CurrentUserID(c), CurrentRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponse(*payment))
}

// ListByOrder handles GET /api/orders/:id/payments.
func (h *PaymentHandler) ListByOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	payments, err := h.facade.OrderPayments(c.Request.Context(), orderID, CurrentUserID(c), CurrentRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		response = append(response, toPaymentResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

// Webhook handles POST /api/payments/webhook. The endpoint is unauthenticated;
// the HMAC signature inside the body is the sole authenticity check. The raw
// body is preserved verbatim for the audit trail.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "malformed request body"})
		return
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))

	var req dto.PaymentWebhookRequest
	if err := json.Unmarshal(raw, &req); err != nil || req.OrderID == "" || req.SignatureKey == "" {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "malformed request body"})
		return
	}

	payment, err := h.facade.HandlePaymentWebhook(c.Request.Context(), usecase.WebhookNotification{
		TransactionID:     req.OrderID,
		TransactionStatus: req.TransactionStatus,
		FraudStatus:       req.FraudStatus,
		StatusCode:        req.StatusCode,
		GrossAmount:       req.GrossAmount,
		SignatureKey:      req.SignatureKey,
		RawPayload:        string(raw),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponse(*payment))
}

func toPaymentResponse(payment model.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:            payment.ID.String(),
		OrderID:       payment.OrderID.String(),
		TransactionID: payment.TransactionID,
		Method:        string(payment.Method),
		Status:        string(payment.Status),
		Amount:        payment.Amount,
		RedirectURL:   payment.RedirectURL,
		ExpiresAt:     payment.ExpiresAt,
		SettledAt:     payment.SettledAt,
	}
}

package midtrans

import (
	"bytes"
	"context"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainErrors "github.com/mymedina/commerce/internal/domain/errors"
)

// Address is the billing/shipping address block of a Snap transaction.
type Address struct {
	FirstName   string `json:"first_name"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
	CountryCode string `json:"country_code"`
}

// CustomerDetails identifies the paying customer to the gateway.
type CustomerDetails struct {
	FirstName       string   `json:"first_name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	BillingAddress  *Address `json:"billing_address,omitempty"`
	ShippingAddress *Address `json:"shipping_address,omitempty"`
}

// ItemDetail is one gateway line item. Shipping cost travels as a synthetic
// line item so the item total matches the gross amount.
type ItemDetail struct {
	ID       string `json:"id"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
}

// TransactionDetails carries the externally-visible transaction reference.
type TransactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
}

// Expiry bounds the validity window of the payment page.
type Expiry struct {
	StartTime string `json:"start_time"`
	Unit      string `json:"unit"`
	Duration  int    `json:"duration"`
}

// SnapRequest is the Snap API create-transaction payload.
type SnapRequest struct {
	TransactionDetails TransactionDetails `json:"transaction_details"`
	CustomerDetails    CustomerDetails    `json:"customer_details"`
	ItemDetails        []ItemDetail       `json:"item_details"`
	Expiry             *Expiry            `json:"expiry,omitempty"`
}

// SnapTransaction is the gateway response to a created transaction.
type SnapTransaction struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// Client exposes the payment gateway operations the payment lifecycle needs.
type Client interface {
	CreateTransaction(ctx context.Context, req SnapRequest) (*SnapTransaction, error)
}

// HTTPClient implements Client against the Midtrans Snap API.
type HTTPClient struct {
	baseURL    *url.URL
	serverKey  string
	httpClient *http.Client
	logger     *slog.Logger
}

type errorResponse struct {
	ErrorMessages []string `json:"error_messages"`
}

// NewHTTPClient creates a Snap client with default timeout.
func NewHTTPClient(baseURL, serverKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse midtrans url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("midtrans url must be absolute")
	}
	return &HTTPClient{
		baseURL:   parsed,
		serverKey: serverKey,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

// CreateTransaction submits a Snap transaction and returns the hosted payment
// page reference.
func (c *HTTPClient) CreateTransaction(ctx context.Context, snapReq SnapRequest) (*SnapTransaction, error) {
	body, err := json.Marshal(snapReq)
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL.JoinPath("/snap/v1/transactions")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.serverKey, "")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domainErrors.GatewayError{Gateway: "midtrans", Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errResp errorResponse
		message := resp.Status
		if err := json.Unmarshal(raw, &errResp); err == nil && len(errResp.ErrorMessages) > 0 {
			message = strings.Join(errResp.ErrorMessages, "; ")
		}
		c.logger.Error("midtrans transaction failed",
			slog.Int("status", resp.StatusCode),
			slog.String("order_id", snapReq.TransactionDetails.OrderID),
			slog.String("message", message),
		)
		return nil, &domainErrors.GatewayError{Gateway: "midtrans", Message: message}
	}

	var tx SnapTransaction
	if err := json.Unmarshal(raw, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// FormatExpiryStart renders the start_time format the Snap expiry block expects.
func FormatExpiryStart(t time.Time) string {
	return t.Format("2006-01-02 15:04:05 -0700")
}

// VerifySignature checks a webhook notification signature:
// sha512(order_id + status_code + gross_amount + server_key).
func VerifySignature(orderID, statusCode, grossAmount, serverKey, signature string) bool {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:]) == signature
}

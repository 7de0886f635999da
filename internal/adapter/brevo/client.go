package brevo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mymedina/commerce/internal/domain/model"
)

// Mailer sends transactional notifications. Delivery is best-effort: callers
// log failures and continue.
type Mailer interface {
	SendWaybillNotification(ctx context.Context, recipientEmail, recipientName string, order *model.Order, courier, waybill string) error
}

// HTTPClient implements Mailer against the Brevo transactional email API.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	fromEmail  string
	fromName   string
	httpClient *http.Client
	logger     *slog.Logger
}

type party struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendRequest struct {
	Sender      party   `json:"sender"`
	To          []party `json:"to"`
	Subject     string  `json:"subject"`
	HTMLContent string  `json:"htmlContent"`
}

// NewHTTPClient creates a Brevo client. An empty API key disables sending;
// calls become logged no-ops so development environments work without one.
func NewHTTPClient(baseURL, apiKey, fromEmail, fromName string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse brevo url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("brevo url must be absolute")
	}
	if apiKey == "" {
		logger.Warn("brevo api key not configured, email notifications disabled")
	}
	return &HTTPClient{
		baseURL:   parsed,
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// SendWaybillNotification emails the customer their courier tracking number.
func (c *HTTPClient) SendWaybillNotification(ctx context.Context, recipientEmail, recipientName string, order *model.Order, courier, waybill string) error {
	if c.apiKey == "" {
		c.logger.Warn("skipping waybill notification, brevo api key not configured",
			slog.String("order", order.Number))
		return nil
	}

	subject := fmt.Sprintf("Pesanan %s telah dikirim", order.Number)
	html := fmt.Sprintf(
		`<html><body><p>Halo %s,</p>`+
			`<p>Pesanan <strong>%s</strong> telah diserahkan ke kurir <strong>%s</strong>.</p>`+
			`<p>Nomor resi: <strong>%s</strong></p>`+
			`<p>Terima kasih telah berbelanja di %s.</p></body></html>`,
		recipientName, order.Number, courier, waybill, c.fromName)

	body, err := json.Marshal(sendRequest{
		Sender:      party{Email: c.fromEmail, Name: c.fromName},
		To:          []party{{Email: recipientEmail, Name: recipientName}},
		Subject:     subject,
		HTMLContent: html,
	})
	if err != nil {
		return err
	}

	endpoint := c.baseURL.JoinPath("/v3/smtp/email")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("brevo send failed: %s: %s", resp.Status, string(raw))
	}

	c.logger.Info("waybill notification sent",
		slog.String("order", order.Number),
		slog.String("recipient", recipientEmail))
	return nil
}

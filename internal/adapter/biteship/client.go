package biteship

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

	domainErrors "github.com/mymedina/commerce/internal/domain/errors"
)

// Item describes one parcel line for rate checks and bookings.
type Item struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Value       float64 `json:"value"`
	Length      float64 `json:"length"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Weight      float64 `json:"weight"`
	Quantity    int     `json:"quantity"`
}

// RatesRequest asks for courier pricing between two areas. Either the area-id
// pair or the postal-code pair must be set.
type RatesRequest struct {
	OriginAreaID          string `json:"origin_area_id,omitempty"`
	DestinationAreaID     string `json:"destination_area_id,omitempty"`
	OriginPostalCode      string `json:"origin_postal_code,omitempty"`
	DestinationPostalCode string `json:"destination_postal_code,omitempty"`
	Couriers              string `json:"couriers"`
	Items                 []Item `json:"items"`
}

// Pricing is one courier service quote.
type Pricing struct {
	CourierCode        string  `json:"courier_code"`
	CourierName        string  `json:"courier_name"`
	CourierServiceCode string  `json:"courier_service_code"`
	CourierServiceName string  `json:"courier_service_name"`
	Price              float64 `json:"price"`
	Duration           string  `json:"duration"`
}

// Contact is an origin or destination party of a booking.
type Contact struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email,omitempty"`
	Address    string `json:"address"`
	AreaID     string `json:"area_id,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Note       string `json:"note,omitempty"`
}

// OrderRequest books a shipment with a courier.
type OrderRequest struct {
	Origin         Contact `json:"origin"`
	Destination    Contact `json:"destination"`
	CourierCompany string  `json:"courier_company"`
	CourierType    string  `json:"courier_type"`
	DeliveryType   string  `json:"delivery_type"`
	Items          []Item  `json:"items"`
	ReferenceID    string  `json:"reference_id,omitempty"`
}

// CourierOrder is the booking result.
type CourierOrder struct {
	OrderID     string
	TrackingID  string
	WaybillID   string
	TrackingURL string
	Price       float64
}

// TrackingEvent is one point of a shipment's status history.
type TrackingEvent struct {
	Note      string `json:"note"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updated_at"`
}

// Tracking is the courier-side view of a shipment.
type Tracking struct {
	WaybillID string          `json:"waybill_id"`
	Status    string          `json:"status"`
	Link      string          `json:"link"`
	History   []TrackingEvent `json:"history"`
}

// Area is a searchable origin/destination location.
type Area struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PostalCode int    `json:"postal_code"`
}

// Client exposes the courier aggregator operations the shipment lifecycle needs.
type Client interface {
	Rates(ctx context.Context, req RatesRequest) ([]Pricing, error)
	CreateOrder(ctx context.Context, req OrderRequest) (*CourierOrder, error)
	Track(ctx context.Context, trackingID string) (*Tracking, error)
	SearchAreas(ctx context.Context, input string) ([]Area, error)
}

// HTTPClient implements Client against the Biteship REST API.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates a Biteship client with default timeout.
func NewHTTPClient(baseURL, apiKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse biteship url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("biteship url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, query url.Values, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	endpoint := c.baseURL.JoinPath(path)
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domainErrors.GatewayError{Gateway: "biteship", Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var errResp struct {
			Error string `json:"error"`
		}
		message := resp.Status
		if err := json.Unmarshal(raw, &errResp); err == nil && errResp.Error != "" {
			message = errResp.Error
		}
		c.logger.Error("biteship request failed",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("message", message),
		)
		return &domainErrors.GatewayError{Gateway: "biteship", Message: message}
	}

	return json.Unmarshal(raw, out)
}

// Rates returns courier pricing options for the given parcel.
func (c *HTTPClient) Rates(ctx context.Context, ratesReq RatesRequest) ([]Pricing, error) {
	var resp struct {
		Pricing []Pricing `json:"pricing"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/rates/couriers", ratesReq, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Pricing, nil
}

// CreateOrder books a shipment and returns the courier order identifiers.
func (c *HTTPClient) CreateOrder(ctx context.Context, orderReq OrderRequest) (*CourierOrder, error) {
	var resp struct {
		ID      string  `json:"id"`
		Price   float64 `json:"price"`
		Courier struct {
			TrackingID string `json:"tracking_id"`
			WaybillID  string `json:"waybill_id"`
			Link       string `json:"link"`
		} `json:"courier"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/orders", orderReq, nil, &resp); err != nil {
		return nil, err
	}
	return &CourierOrder{
		OrderID:     resp.ID,
		TrackingID:  resp.Courier.TrackingID,
		WaybillID:   resp.Courier.WaybillID,
		TrackingURL: resp.Courier.Link,
		Price:       resp.Price,
	}, nil
}

// Track fetches the courier-side status history of a shipment.
func (c *HTTPClient) Track(ctx context.Context, trackingID string) (*Tracking, error) {
	var tracking Tracking
	if err := c.do(ctx, http.MethodGet, "/v1/trackings/"+trackingID, nil, nil, &tracking); err != nil {
		return nil, err
	}
	return &tracking, nil
}

// SearchAreas resolves free-text locations to area identifiers.
func (c *HTTPClient) SearchAreas(ctx context.Context, input string) ([]Area, error) {
	query := url.Values{}
	query.Set("countries", "ID")
	query.Set("input", input)
	query.Set("type", "single")

	var resp struct {
		Areas []Area `json:"areas"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/maps/areas", nil, query, &resp); err != nil {
		return nil, err
	}
	return resp.Areas, nil
}

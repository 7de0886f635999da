package test

import (
	"context"
	"sync"

	"github.com/mymedina/commerce/internal/adapter/biteship"
	"github.com/mymedina/commerce/internal/adapter/midtrans"
	"github.com/mymedina/commerce/internal/domain/model"
)

// GatewayStub simulates the payment gateway client.
type GatewayStub struct {
	CreateFn func(context.Context, midtrans.SnapRequest) (*midtrans.SnapTransaction, error)
	Requests []midtrans.SnapRequest
	Err      error
}

// CreateTransaction records the request and returns a canned transaction.
func (s *GatewayStub) CreateTransaction(ctx context.Context, req midtrans.SnapRequest) (*midtrans.SnapTransaction, error) {
	s.Requests = append(s.Requests, req)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return &midtrans.SnapTransaction{
		Token:       "snap-token",
		RedirectURL: "https://app.sandbox.midtrans.com/snap/v4/redirection/snap-token",
	}, nil
}

// CourierStub simulates the courier aggregator client.
type CourierStub struct {
	RatesFn       func(context.Context, biteship.RatesRequest) ([]biteship.Pricing, error)
	CreateOrderFn func(context.Context, biteship.OrderRequest) (*biteship.CourierOrder, error)
	TrackFn       func(context.Context, string) (*biteship.Tracking, error)
	SearchFn      func(context.Context, string) ([]biteship.Area, error)

	Bookings []biteship.OrderRequest
	Err      error
}

// Rates returns canned pricing or the configured override.
func (s *CourierStub) Rates(ctx context.Context, req biteship.RatesRequest) ([]biteship.Pricing, error) {
	if s.RatesFn != nil {
		return s.RatesFn(ctx, req)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return []biteship.Pricing{{CourierCode: "jne", CourierServiceCode: "reg", Price: 15000}}, nil
}

// CreateOrder records the booking and returns canned identifiers.
func (s *CourierStub) CreateOrder(ctx context.Context, req biteship.OrderRequest) (*biteship.CourierOrder, error) {
	s.Bookings = append(s.Bookings, req)
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, req)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return &biteship.CourierOrder{
		OrderID:     "biteship-order-1",
		TrackingID:  "trk-1",
		WaybillID:   "JNE123456",
		TrackingURL: "https://biteship.com/track/trk-1",
		Price:       15000,
	}, nil
}

// Track returns canned tracking history.
func (s *CourierStub) Track(ctx context.Context, trackingID string) (*biteship.Tracking, error) {
	if s.TrackFn != nil {
		return s.TrackFn(ctx, trackingID)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return &biteship.Tracking{WaybillID: "JNE123456", Status: "on_process"}, nil
}

// SearchAreas returns canned areas.
func (s *CourierStub) SearchAreas(ctx context.Context, input string) ([]biteship.Area, error) {
	if s.SearchFn != nil {
		return s.SearchFn(ctx, input)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return []biteship.Area{{ID: "IDNP6IDNC148", Name: "Jakarta Selatan", PostalCode: 12560}}, nil
}

// MailerStub records sent notifications.
type MailerStub struct {
	mu   sync.Mutex
	Sent []MailCall
	Err  error
}

// MailCall captures one notification request.
type MailCall struct {
	Recipient string
	Order     string
	Waybill   string
}

// SendWaybillNotification records the invocation.
func (s *MailerStub) SendWaybillNotification(ctx context.Context, recipientEmail, recipientName string, order *model.Order, courier, waybill string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, MailCall{Recipient: recipientEmail, Order: order.Number, Waybill: waybill})
	return s.Err
}

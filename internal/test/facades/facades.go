// Package facades holds hand-written stubs for the handler-facing facade
// interfaces. It lives apart from the repository stubs because these stubs
// reference usecase input types, which the in-package usecase tests must not
// pull back in through their own helpers.
package facades

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mymedina/commerce/internal/adapter/biteship"
	"github.com/mymedina/commerce/internal/domain/model"
	"github.com/mymedina/commerce/internal/domain/repository"
	pkgAuth "github.com/mymedina/commerce/internal/pkg/auth"
	"github.com/mymedina/commerce/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	Claims pkgAuth.Claims

	RegisterFn     func(context.Context, usecase.RegisterInput) (*model.User, string, error)
	AuthenticateFn func(context.Context, string, string) (*model.User, string, error)
	ParseFn        func(string) (pkgAuth.Claims, error)
	GetUserFn      func(context.Context, uuid.UUID) (*model.User, error)
	AddAddressFn   func(context.Context, uuid.UUID, model.Address) (*model.Address, error)
}

// Register returns a new customer account for successful registrations.
func (s AuthFacadeStub) Register(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, in)
	}
	return &model.User{ID: uuid.New(), Email: in.Email, Name: in.Name, Role: model.RoleCustomer}, "token", nil
}

// Authenticate returns a user and token for successful logins.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &model.User{ID: uuid.New(), Email: email, Role: model.RoleCustomer}, "token", nil
}

// ParseToken returns the stored claims for any token.
func (s AuthFacadeStub) ParseToken(token string) (pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return s.Claims, nil
}

// GetUser returns the configured user or a customer with the given id.
func (s AuthFacadeStub) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if s.GetUserFn != nil {
		return s.GetUserFn(ctx, id)
	}
	return &model.User{ID: id, Email: "user@example.com", Role: model.RoleCustomer}, nil
}

// AddAddress echoes the given address with an assigned id.
func (s AuthFacadeStub) AddAddress(ctx context.Context, userID uuid.UUID, address model.Address) (*model.Address, error) {
	if s.AddAddressFn != nil {
		return s.AddAddressFn(ctx, userID, address)
	}
	address.ID = uuid.New()
	address.UserID = userID
	return &address, nil
}

// ListAddresses returns a single saved address.
func (s AuthFacadeStub) ListAddresses(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	return []model.Address{{ID: uuid.New(), UserID: userID, Recipient: "Siti", Line1: "Jl. Merdeka 1"}}, nil
}

// SetDefaultAddress accepts any address as the new default.
func (s AuthFacadeStub) SetDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	return nil
}

// CatalogFacadeStub simulates catalog facade interactions.
type CatalogFacadeStub struct {
	CreateCategoryFn func(context.Context, string, *uuid.UUID) (*model.Category, error)
	ListProductsFn   func(context.Context, repository.ProductFilter) ([]model.Product, int, error)
	GetProductFn     func(context.Context, uuid.UUID) (*model.Product, error)
}

// CreateCategory returns a category with an assigned id.
func (s CatalogFacadeStub) CreateCategory(ctx context.Context, name string, parentID *uuid.UUID) (*model.Category, error) {
	if s.CreateCategoryFn != nil {
		return s.CreateCategoryFn(ctx, name, parentID)
	}
	return &model.Category{ID: uuid.New(), ParentID: parentID, Name: name, Slug: usecase.Slugify(name)}, nil
}

// ListCategories returns a single root category.
func (s CatalogFacadeStub) ListCategories(ctx context.Context) ([]model.Category, error) {
	return []model.Category{{ID: uuid.New(), Name: "Hijab", Slug: "hijab"}}, nil
}

// CreateProduct echoes the input as a stored product.
func (s CatalogFacadeStub) CreateProduct(ctx context.Context, in usecase.ProductInput) (*model.Product, error) {
	return &model.Product{ID: uuid.New(), CategoryID: in.CategoryID, Name: in.Name, Slug: usecase.Slugify(in.Name), BasePrice: in.BasePrice, Active: true}, nil
}

// ListProducts returns one active product.
func (s CatalogFacadeStub) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]model.Product, int, error) {
	if s.ListProductsFn != nil {
		return s.ListProductsFn(ctx, filter)
	}
	return []model.Product{{ID: uuid.New(), Name: "Voal Premium", Slug: "voal-premium", BasePrice: 85000, Active: true}}, 1, nil
}

// GetProduct returns a product with the requested id.
func (s CatalogFacadeStub) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	if s.GetProductFn != nil {
		return s.GetProductFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "Voal Premium", Slug: "voal-premium", BasePrice: 85000, Active: true}, nil
}

// GetProductBySlug returns a product with the requested slug.
func (s CatalogFacadeStub) GetProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return &model.Product{ID: uuid.New(), Name: "Voal Premium", Slug: slug, BasePrice: 85000, Active: true}, nil
}

// UpdateProduct echoes the input as the updated product.
func (s CatalogFacadeStub) UpdateProduct(ctx context.Context, id uuid.UUID, in usecase.ProductInput) (*model.Product, error) {
	return &model.Product{ID: id, CategoryID: in.CategoryID, Name: in.Name, Slug: usecase.Slugify(in.Name), BasePrice: in.BasePrice, Active: true}, nil
}

// DeactivateProduct accepts any product id.
func (s CatalogFacadeStub) DeactivateProduct(ctx context.Context, id uuid.UUID) error {
	return nil
}

// CreateVariant returns a variant with an assigned id.
func (s CatalogFacadeStub) CreateVariant(ctx context.Context, productID uuid.UUID, in usecase.VariantInput) (*model.Variant, error) {
	return &model.Variant{ID: uuid.New(), ProductID: productID, SKU: in.SKU, Stock: in.Stock, Active: true}, nil
}

// UpdateVariant echoes the input as the updated variant.
func (s CatalogFacadeStub) UpdateVariant(ctx context.Context, id uuid.UUID, in usecase.VariantInput, active bool) (*model.Variant, error) {
	return &model.Variant{ID: id, SKU: in.SKU, Stock: in.Stock, Active: active}, nil
}

// ListVariants returns a single variant of the product.
func (s CatalogFacadeStub) ListVariants(ctx context.Context, productID uuid.UUID) ([]model.Variant, error) {
	return []model.Variant{{ID: uuid.New(), ProductID: productID, SKU: "VP-110-BLK", Stock: 10, Active: true}}, nil
}

// OrderFacadeStub simulates order facade interactions.
type OrderFacadeStub struct {
	CreateFn       func(context.Context, uuid.UUID, usecase.CreateOrderInput) (*model.Order, error)
	GetFn          func(context.Context, uuid.UUID, uuid.UUID, model.Role) (*model.Order, error)
	MyOrdersFn     func(context.Context, uuid.UUID) ([]model.Order, error)
	ListFn         func(context.Context, repository.OrderFilter) ([]model.Order, int, error)
	UpdateStatusFn func(context.Context, uuid.UUID, model.OrderStatus) (*model.Order, error)
	CancelFn       func(context.Context, uuid.UUID, uuid.UUID, model.Role) (*model.Order, error)
}

// CreateOrder returns a pending order with an assigned number.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, userID uuid.UUID, in usecase.CreateOrderInput) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, in)
	}
	return &model.Order{ID: uuid.New(), UserID: userID, Number: "ORD-20250101-00001", Status: model.OrderStatusPendingPayment, Address: in.Address}, nil
}

// GetOrder returns an order with the requested id.
func (s OrderFacadeStub) GetOrder(ctx context.Context, id, requesterID uuid.UUID, role model.Role) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id, requesterID, role)
	}
	return &model.Order{ID: id, UserID: requesterID, Number: "ORD-20250101-00001", Status: model.OrderStatusPendingPayment}, nil
}

// MyOrders returns one pending order for the user.
func (s OrderFacadeStub) MyOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	if s.MyOrdersFn != nil {
		return s.MyOrdersFn(ctx, userID)
	}
	return []model.Order{{ID: uuid.New(), UserID: userID, Number: "ORD-20250101-00001", Status: model.OrderStatusPendingPayment}}, nil
}

// ListOrders returns one order page.
func (s OrderFacadeStub) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, int, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return []model.Order{{ID: uuid.New(), Number: "ORD-20250101-00001", Status: model.OrderStatusPaid}}, 1, nil
}

// UpdateOrderStatus echoes the requested transition.
func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	return &model.Order{ID: id, Number: "ORD-20250101-00001", Status: status}, nil
}

// CancelOrder returns the order as cancelled.
func (s OrderFacadeStub) CancelOrder(ctx context.Context, id, requesterID uuid.UUID, role model.Role) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, id, requesterID, role)
	}
	return &model.Order{ID: id, UserID: requesterID, Number: "ORD-20250101-00001", Status: model.OrderStatusCancelled}, nil
}

// PaymentFacadeStub simulates payment facade interactions.
type PaymentFacadeStub struct {
	CreateFn  func(context.Context, uuid.UUID, uuid.UUID, model.Role, model.PaymentMethod) (*model.Payment, error)
	WebhookFn func(context.Context, usecase.WebhookNotification) (*model.Payment, error)
}

// CreatePayment returns a pending payment with a gateway redirect.
func (s PaymentFacadeStub) CreatePayment(ctx context.Context, orderID, requesterID uuid.UUID, role model.Role, method model.PaymentMethod) (*model.Payment, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, orderID, requesterID, role, method)
	}
	return &model.Payment{ID: uuid.New(), OrderID: orderID, TransactionID: "TRX-20250101-00001", Method: method, Status: model.PaymentStatusPending, RedirectURL: "https://app.sandbox.midtrans.com/snap/v2/vtweb/abc"}, nil
}

// GetPayment returns a payment with the requested id.
func (s PaymentFacadeStub) GetPayment(ctx context.Context, id, requesterID uuid.UUID, role model.Role) (*model.Payment, error) {
	return &model.Payment{ID: id, TransactionID: "TRX-20250101-00001", Status: model.PaymentStatusPending}, nil
}

// OrderPayments returns one payment attempt for the order.
func (s PaymentFacadeStub) OrderPayments(ctx context.Context, orderID, requesterID uuid.UUID, role model.Role) ([]model.Payment, error) {
	return []model.Payment{{ID: uuid.New(), OrderID: orderID, TransactionID: "TRX-20250101-00001", Status: model.PaymentStatusPending}}, nil
}

// HandlePaymentWebhook returns the payment as settled.
func (s PaymentFacadeStub) HandlePaymentWebhook(ctx context.Context, n usecase.WebhookNotification) (*model.Payment, error) {
	if s.WebhookFn != nil {
		return s.WebhookFn(ctx, n)
	}
	return &model.Payment{ID: uuid.New(), TransactionID: n.TransactionID, Status: model.PaymentStatusSettlement}, nil
}

// ShipmentFacadeStub simulates shipment facade interactions.
type ShipmentFacadeStub struct {
	CreateFn func(context.Context, usecase.CreateShipmentInput) (*model.Shipment, error)
	BookFn   func(context.Context, usecase.BookCourierInput) (*model.Shipment, error)
	RatesFn  func(context.Context, biteship.RatesRequest) ([]biteship.Pricing, error)
	TrackFn  func(context.Context, uuid.UUID, uuid.UUID, model.Role) (*biteship.Tracking, error)
}

// CreateShipment returns a pending manual shipment.
func (s ShipmentFacadeStub) CreateShipment(ctx context.Context, in usecase.CreateShipmentInput) (*model.Shipment, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, in)
	}
	return &model.Shipment{ID: uuid.New(), OrderID: in.OrderID, Courier: in.Courier, Service: in.Service, Status: model.ShipmentStatusPending, Cost: in.Cost}, nil
}

// BookCourierShipment returns a confirmed booking with a waybill.
func (s ShipmentFacadeStub) BookCourierShipment(ctx context.Context, in usecase.BookCourierInput) (*model.Shipment, error) {
	if s.BookFn != nil {
		return s.BookFn(ctx, in)
	}
	return &model.Shipment{ID: uuid.New(), OrderID: in.OrderID, Courier: in.CourierCompany, Service: in.CourierType, Waybill: "JNE123456", Status: model.ShipmentStatusConfirmed}, nil
}

// CheckRates returns one courier quote.
func (s ShipmentFacadeStub) CheckRates(ctx context.Context, req biteship.RatesRequest) ([]biteship.Pricing, error) {
	if s.RatesFn != nil {
		return s.RatesFn(ctx, req)
	}
	return []biteship.Pricing{{CourierCode: "jne", CourierServiceCode: "reg", Price: 15000, Duration: "2-3 days"}}, nil
}

// SearchAreas returns one matched area.
func (s ShipmentFacadeStub) SearchAreas(ctx context.Context, input string) ([]biteship.Area, error) {
	return []biteship.Area{{ID: "IDNP6IDNC148", Name: "Jakarta Selatan", PostalCode: 12110}}, nil
}

// UpdateShipmentStatus echoes the requested transition.
func (s ShipmentFacadeStub) UpdateShipmentStatus(ctx context.Context, id uuid.UUID, status model.ShipmentStatus, waybill string) (*model.Shipment, error) {
	return &model.Shipment{ID: id, Status: status, Waybill: waybill}, nil
}

// SetShipmentWaybill echoes the assigned waybill.
func (s ShipmentFacadeStub) SetShipmentWaybill(ctx context.Context, id uuid.UUID, waybill string) (*model.Shipment, error) {
	return &model.Shipment{ID: id, Waybill: waybill, Status: model.ShipmentStatusConfirmed}, nil
}

// OrderShipment returns the shipment of the order.
func (s ShipmentFacadeStub) OrderShipment(ctx context.Context, orderID, requesterID uuid.UUID, role model.Role) (*model.Shipment, error) {
	return &model.Shipment{ID: uuid.New(), OrderID: orderID, Courier: "jne", Status: model.ShipmentStatusShipped}, nil
}

// TrackOrderShipment returns courier-side tracking for the order.
func (s ShipmentFacadeStub) TrackOrderShipment(ctx context.Context, orderID, requesterID uuid.UUID, role model.Role) (*biteship.Tracking, error) {
	if s.TrackFn != nil {
		return s.TrackFn(ctx, orderID, requesterID, role)
	}
	return &biteship.Tracking{WaybillID: "JNE123456", Status: "on_process"}, nil
}

// ReportFacadeStub simulates reporting facade interactions.
type ReportFacadeStub struct {
	SalesFn func(context.Context, time.Time, time.Time) (*model.SalesReport, error)
}

// SalesReport returns a one-day report over the requested range.
func (s ReportFacadeStub) SalesReport(ctx context.Context, from, to time.Time) (*model.SalesReport, error) {
	if s.SalesFn != nil {
		return s.SalesFn(ctx, from, to)
	}
	return &model.SalesReport{
		From:       from,
		To:         to,
		Summary:    model.SalesSummary{TotalTransactions: 1, TotalRevenue: 100000},
		DailySales: []model.DailySales{{Date: "2025-01-01", Count: 1, Total: 100000}},
	}, nil
}

// RenderSalesCSV renders a fixed CSV body.
func (s ReportFacadeStub) RenderSalesCSV(report *model.SalesReport) ([]byte, error) {
	return []byte("Metric,Value\nTotal Transactions,1\n"), nil
}

// CommerceFacadeStub aggregates facade dependencies for HTTP layer tests.
type CommerceFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	OrderFacadeStub
	PaymentFacadeStub
	ShipmentFacadeStub
	ReportFacadeStub
}

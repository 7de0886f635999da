package handlers

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

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (pkgAuth.Claims, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	AddAddress(ctx context.Context, userID uuid.UUID, address model.Address) (*model.Address, error)
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]model.Address, error)
	SetDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) error
}

// CatalogFacade exposes category, product and variant operations.
type CatalogFacade interface {
	CreateCategory(ctx context.Context, name string, parentID *uuid.UUID) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateProduct(ctx context.Context, in usecase.ProductInput) (*model.Product, error)
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]model.Product, int, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, in usecase.ProductInput) (*model.Product, error)
	DeactivateProduct(ctx context.Context, id uuid.UUID) error
	CreateVariant(ctx context.Context, productID uuid.UUID, in usecase.VariantInput) (*model.Variant, error)
	UpdateVariant(ctx context.Context, id uuid.UUID, in usecase.VariantInput, active bool) (*model.Variant, error)
	ListVariants(ctx context.Context, productID uuid.UUID) ([]model.Variant, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, in usecase.CreateOrderInput) (*model.Order, error)
	GetOrder(ctx context.Context, id, requesterID uuid.UUID, role model.Role) (*model.Order, error)
	MyOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	ListOrders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error)
	CancelOrder(ctx context.Context, id, requesterID uuid.UUID, role model.Role) (*model.Order, error)
}

// PaymentFacade exposes payment attempts and the gateway webhook.
type PaymentFacade interface {
	CreatePayment(ctx context.Context, orderID, requesterID uuid.UUID, role model.Role, method model.PaymentMethod) (*model.Payment, error)
	GetPayment(ctx context.Context, id, requesterID uuid.UUID, role model.Role) (*model.Payment, error)
	OrderPayments(ctx context.Context, orderID, requesterID uuid.UUID, role model.Role) ([]model.Payment, error)
	HandlePaymentWebhook(ctx context.Context, n usecase.WebhookNotification) (*model.Payment, error)
}

// ShipmentFacade exposes shipment booking, tracking and rate checks.
type ShipmentFacade interface {
	CreateShipment(ctx context.Context, in usecase.CreateShipmentInput) (*model.Shipment, error)
	BookCourierShipment(ctx context.Context, in usecase.BookCourierInput) (*model.Shipment, error)
	CheckRates(ctx context.Context, req biteship.RatesRequest) ([]biteship.Pricing, error)
	SearchAreas(ctx context.Context, input string) ([]biteship.Area, error)
	UpdateShipmentStatus(ctx context.Context, id uuid.UUID, status model.ShipmentStatus, waybill string) (*model.Shipment, error)
	SetShipmentWaybill(ctx context.Context, id uuid.UUID, waybill string) (*model.Shipment, error)
	OrderShipment(ctx context.Context, orderID, requesterID uuid.UUID, role model.Role) (*model.Shipment, error)
	TrackOrderShipment(ctx context.Context, orderID, requesterID uuid.UUID, role model.Role) (*biteship.Tracking, error)
}

// ReportFacade exposes owner-facing sales reporting.
type ReportFacade interface {
	SalesReport(ctx context.Context, from, to time.Time) (*model.SalesReport, error)
	RenderSalesCSV(report *model.SalesReport) ([]byte, error)
}

// CommerceFacade aggregates the full set of operations used across handlers.
type CommerceFacade interface {
	AuthFacade
	CatalogFacade
	OrderFacade
	PaymentFacade
	ShipmentFacade
	ReportFacade
}

package app

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

// CommerceFacade is the single entry point the HTTP layer talks to. It hides
// the individual use cases behind one surface.
type CommerceFacade struct {
	auth      *usecase.AuthUseCase
	catalog   *usecase.CatalogUseCase
	orders    *usecase.OrderUseCase
	payments  *usecase.PaymentUseCase
	shipments *usecase.ShipmentUseCase
	reports   *usecase.ReportUseCase
}

// NewCommerceFacade constructs CommerceFacade.
func NewCommerceFacade(
	auth *usecase.AuthUseCase,
	catalog *usecase.CatalogUseCase,
	orders *usecase.OrderUseCase,
	payments *usecase.PaymentUseCase,
	shipments *usecase.ShipmentUseCase,
	reports *usecase.ReportUseCase,
) *CommerceFacade {
	return &CommerceFacade{
		auth:      auth,
		catalog:   catalog,
		orders:    orders,
		payments:  payments,
		shipments: shipments,
		reports:   reports,
	}
}

func (f *CommerceFacade) Register(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error) {
	return f.auth.Register(ctx, in)
}

func (f *CommerceFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *CommerceFacade) ParseToken(token string) (pkgAuth.Claims, error) {
	return f.auth.ParseToken(token)
}

func (f *CommerceFacade) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return f.auth.GetByID(ctx, id)
}

func (f *CommerceFacade) AddAddress(ctx context.Context, userID uuid.UUID, address model.Address) (*model.Address, error) {
	return f.auth.AddAddress(ctx, userID, address)
}

func (f *CommerceFacade) ListAddresses(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	return f.auth.ListAddresses(ctx, userID)
}

func (f *CommerceFacade) SetDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	return f.auth.SetDefaultAddress(ctx, userID, addressID)
}

func (f *CommerceFacade) CreateCategory(ctx context.Context, name string, parentID *uuid.UUID) (*model.Category, error) {
	return f.catalog.CreateCategory(ctx, name, parentID)
}

func (f *CommerceFacade) ListCategories(ctx context.Context) ([]model.Category, error) {
	return f.catalog.ListCategories(ctx)
}

func (f *CommerceFacade) CreateProduct(ctx context.Context, in usecase.ProductInput) (*model.Product, error) {
	return f.catalog.CreateProduct(ctx, in)
}

func (f *CommerceFacade) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]model.Product, int, error) {
	return f.catalog.ListProducts(ctx, filter)
}

func (f *CommerceFacade) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return f.catalog.GetProduct(ctx, id)
}

func (f *CommerceFacade) GetProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return f.catalog.GetProductBySlug(ctx, slug)
}

func (f *CommerceFacade) UpdateProduct(ctx context.Context, id uuid.UUID, in usecase.ProductInput) (*model.Product, error) {
	return f.catalog.UpdateProduct(ctx, id, in)
}

func (f *CommerceFacade) DeactivateProduct(ctx context.Context, id uuid.UUID) error {
	return f.catalog.DeactivateProduct(ctx, id)
}

func (f *CommerceFacade) CreateVariant(ctx context.Context, productID uuid.UUID, in usecase.VariantInput) (*model.Variant, error) {
	return f.catalog.CreateVariant(ctx, productID, in)
}

func (f *CommerceFacade) UpdateVariant(ctx context.Context, id uuid.UUID, in usecase.VariantInput, active bool) (*model.Variant, error) {
	return f.catalog.UpdateVariant(ctx, id, in, active)
}

func (f *CommerceFacade) ListVariants(ctx context.Context, productID uuid.UUID) ([]model.Variant, error) {
	return f.catalog.ListVariants(ctx, productID)
}

func (f *CommerceFacade) CreateOrder(ctx context.Context, userID uuid.UUID, in usecase.CreateOrderInput) (*model.Order, error) {
	return f.orders.Create(ctx, userID, in)
}

func (f *CommerceFacade) GetOrder(ctx context.Context, id, requesterID uuid.UUID, role model.Role) (*model.Order, error) {
	return f.orders.GetByID(ctx, id, requesterID, role)
}

func (f *CommerceFacade) MyOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *CommerceFacade) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, int, error) {
	return f.orders.ListAll(ctx, filter)
}

func (f *CommerceFacade) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, id, status)
}

func (f *CommerceFacade) CancelOrder(ctx context.Context, id, requesterID uuid.UUID, role model.Role) (*model.Order, error) {
	return f.orders.Cancel(ctx, id, requesterID, role)
}

func (f *CommerceFacade) CreatePayment(ctx context.Context, orderID, requesterID uuid.UUID, role model.Role, method model.PaymentMethod) (*model.Payment, error) {
	return f.payments.Create(ctx, orderID, requesterID, role, method)
}

func (f *CommerceFacade) GetPayment(ctx context.Context, id, requesterID uuid.UUID, role model.Role) (*model.Payment, error) {
	return f.payments.GetByID(ctx, id, requesterID, role)
}

func (f *CommerceFacade) OrderPayments(ctx context.Context, orderID, requesterID uuid.UUID, role model.Role) ([]model.Payment, error) {
	return f.payments.ListByOrder(ctx, orderID, requesterID, role)
}

func (f *CommerceFacade) HandlePaymentWebhook(ctx context.Context, n usecase.WebhookNotification) (*model.Payment, error) {
	return f.payments.HandleWebhook(ctx, n)
}

func (f *CommerceFacade) CreateShipment(ctx context.Context, in usecase.CreateShipmentInput) (*model.Shipment, error) {
	return f.shipments.Create(ctx, in)
}

func (f *CommerceFacade) BookCourierShipment(ctx context.Context, in usecase.BookCourierInput) (*model.Shipment, error) {
	return f.shipments.CreateWithCourier(ctx, in)
}

func (f *CommerceFacade) CheckRates(ctx context.Context, req biteship.RatesRequest) ([]biteship.Pricing, error) {
	return f.shipments.CheckRates(ctx, req)
}

func (f *CommerceFacade) SearchAreas(ctx context.Context, input string) ([]biteship.Area, error) {
	return f.shipments.SearchAreas(ctx, input)
}

func (f *CommerceFacade) UpdateShipmentStatus(ctx context.Context, id uuid.UUID, status model.ShipmentStatus, waybill string) (*model.Shipment, error) {
	return f.shipments.UpdateStatus(ctx, id, status, waybill)
}

func (f *CommerceFacade) SetShipmentWaybill(ctx context.Context, id uuid.UUID, waybill string) (*model.Shipment, error) {
	return f.shipments.SetWaybill(ctx, id, waybill)
}

func (f *CommerceFacade) OrderShipment(ctx context.Context, orderID, requesterID uuid.UUID, role model.Role) (*model.Shipment, error) {
	return f.shipments.GetByOrderID(ctx, orderID, requesterID, role)
}

func (f *CommerceFacade) TrackOrderShipment(ctx context.Context, orderID, requesterID uuid.UUID, role model.Role) (*biteship.Tracking, error) {
	return f.shipments.TrackByOrderID(ctx, orderID, requesterID, role)
}

func (f *CommerceFacade) SalesReport(ctx context.Context, from, to time.Time) (*model.SalesReport, error) {
	return f.reports.SalesReport(ctx, from, to)
}

func (f *CommerceFacade) RenderSalesCSV(report *model.SalesReport) ([]byte, error) {
	return f.reports.RenderCSV(report)
}

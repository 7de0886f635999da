package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mymedina/commerce/internal/adapter/biteship"
	"github.com/mymedina/commerce/internal/adapter/brevo"
	domainErrors "github.com/mymedina/commerce/internal/domain/errors"
	"github.com/mymedina/commerce/internal/domain/model"
	"github.com/mymedina/commerce/internal/domain/repository"
)

// ShipmentUseCase drives shipment bookings, tracking and status updates.
type ShipmentUseCase struct {
	shipments repository.ShipmentRepository
	orders    repository.OrderRepository
	users     repository.UserRepository
	variants  repository.VariantRepository
	courier   biteship.Client
	mailer    brevo.Mailer
	logger    *slog.Logger
}

// NewShipmentUseCase constructs ShipmentUseCase.
func NewShipmentUseCase(
	shipments repository.ShipmentRepository,
	orders repository.OrderRepository,
	users repository.UserRepository,
	variants repository.VariantRepository,
	courier biteship.Client,
	mailer brevo.Mailer,
	logger *slog.Logger,
) *ShipmentUseCase {
	return &ShipmentUseCase{
		shipments: shipments,
		orders:    orders,
		users:     users,
		variants:  variants,
		courier:   courier,
		mailer:    mailer,
		logger:    logger,
	}
}

// CreateShipmentInput carries a manual shipment record.
type CreateShipmentInput struct {
	OrderID uuid.UUID
	Courier string
	Service string
	Cost    float64
}

// Create records a shipment for a paid order. The repository enforces the
// one-shipment-per-order rule and advances a PAID order to PROCESSING.
func (u *ShipmentUseCase) Create(ctx context.Context, in CreateShipmentInput) (*model.Shipment, error) {
	if strings.TrimSpace(in.Courier) == "" {
		return nil, domainErrors.NewValidation("courier is required")
	}
	if in.Cost < 0 {
		return nil, domainErrors.NewValidation("shipping cost cannot be negative")
	}

	return u.shipments.Create(ctx, &model.Shipment{
		OrderID: in.OrderID,
		Courier: strings.TrimSpace(in.Courier),
		Service: in.Service,
		Status:  model.ShipmentStatusPending,
		Cost:    in.Cost,
	})
}

// BookCourierInput carries a courier-aggregator booking request.
type BookCourierInput struct {
	OrderID        uuid.UUID
	CourierCompany string
	CourierType    string
	Origin         biteship.Contact
}

// CreateWithCourier books the shipment through the courier aggregator, stores
// the returned identifiers and emails the waybill to the customer. The email
// is best-effort: a delivery failure is logged and the booking still succeeds.
func (u *ShipmentUseCase) CreateWithCourier(ctx context.Context, in BookCourierInput) (*model.Shipment, error) {
	if strings.TrimSpace(in.CourierCompany) == "" || strings.TrimSpace(in.CourierType) == "" {
		return nil, domainErrors.NewValidation("courier company and type are required")
	}

	order, err := u.orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status != model.OrderStatusPaid && order.Status != model.OrderStatusProcessing {
		return nil, &domainErrors.InvalidStateError{
			Entity: "order",
			State:  string(order.Status),
			Reason: "shipment requires a paid order",
		}
	}

	// The uniqueness check must run before the aggregator call; a duplicate
	// request would otherwise place a real courier booking that is never
	// recorded.
	if _, err := u.shipments.GetByOrderID(ctx, in.OrderID); err == nil {
		return nil, domainErrors.ErrAlreadyExists
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	items := make([]biteship.Item, 0, len(order.Items))
	for _, item := range order.Items {
		parcel := biteship.Item{
			Name:     item.ProductName,
			Value:    item.UnitPrice,
			Quantity: item.Quantity,
		}
		if _, product, err := u.variants.GetWithProduct(ctx, item.VariantID); err == nil {
			parcel.Weight = product.Weight
			parcel.Length = product.Length
			parcel.Width = product.Width
			parcel.Height = product.Height
		}
		items = append(items, parcel)
	}

	booking, err := u.courier.CreateOrder(ctx, biteship.OrderRequest{
		Origin: in.Origin,
		Destination: biteship.Contact{
			Name:       order.Address.Recipient,
			Phone:      order.Address.Phone,
			Address:    shippingAddressLine(order.Address),
			PostalCode: order.Address.PostalCode,
		},
		CourierCompany: in.CourierCompany,
		CourierType:    in.CourierType,
		DeliveryType:   "now",
		Items:          items,
		ReferenceID:    order.Number,
	})
	if err != nil {
		return nil, err
	}

	shipment, err := u.shipments.Create(ctx, &model.Shipment{
		OrderID:        in.OrderID,
		Courier:        in.CourierCompany,
		Service:        in.CourierType,
		Waybill:        booking.WaybillID,
		CourierOrderID: booking.OrderID,
		TrackingID:     booking.TrackingID,
		TrackingURL:    booking.TrackingURL,
		Status:         model.ShipmentStatusConfirmed,
		Cost:           booking.Price,
	})
	if err != nil {
		return nil, err
	}

	if booking.WaybillID != "" {
		u.notifyWaybill(ctx, order, in.CourierCompany, booking.WaybillID)
	}
	return shipment, nil
}

func (u *ShipmentUseCase) notifyWaybill(ctx context.Context, order *model.Order, courier, waybill string) {
	owner, err := u.users.GetByID(ctx, order.UserID)
	if err != nil {
		u.logger.Warn("waybill notification skipped, owner lookup failed",
			slog.String("order", order.Number), slog.String("error", err.Error()))
		return
	}
	if err := u.mailer.SendWaybillNotification(ctx, owner.Email, owner.Name, order, courier, waybill); err != nil {
		u.logger.Warn("waybill notification failed",
			slog.String("order", order.Number), slog.String("error", err.Error()))
	}
}

func shippingAddressLine(a model.ShippingAddress) string {
	parts := []string{a.Line1}
	if a.Line2 != "" {
		parts = append(parts, a.Line2)
	}
	if a.City != "" {
		parts = append(parts, a.City)
	}
	if a.Province != "" {
		parts = append(parts, a.Province)
	}
	return strings.Join(parts, ", ")
}

// CheckRates validates the rate query and fetches courier quotes. Either the
// area-id pair or the postal-code pair must be present, plus at least one item.
func (u *ShipmentUseCase) CheckRates(ctx context.Context, req biteship.RatesRequest) ([]biteship.Pricing, error) {
	hasAreas := req.OriginAreaID != "" && req.DestinationAreaID != ""
	hasPostal := req.OriginPostalCode != "" && req.DestinationPostalCode != ""
	if !hasAreas && !hasPostal {
		return nil, domainErrors.NewValidation("origin and destination must both be set, as area ids or postal codes")
	}
	if len(req.Items) == 0 {
		return nil, domainErrors.NewValidation("at least one item is required for a rate check")
	}
	if req.Couriers == "" {
		req.Couriers = "jne,jnt,sicepat"
	}
	return u.courier.Rates(ctx, req)
}

// SearchAreas looks up origin/destination areas by free-text input.
func (u *ShipmentUseCase) SearchAreas(ctx context.Context, input string) ([]biteship.Area, error) {
	if strings.TrimSpace(input) == "" {
		return nil, domainErrors.NewValidation("search input is required")
	}
	return u.courier.SearchAreas(ctx, input)
}

// UpdateStatus moves a shipment through its lifecycle. SHIPPED and DELIVERED
// cascade onto the owning order inside the repository transaction.
func (u *ShipmentUseCase) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ShipmentStatus, waybill string) (*model.Shipment, error) {
	if !status.Valid() {
		return nil, domainErrors.NewValidation("unknown shipment status %q", status)
	}
	return u.shipments.UpdateStatus(ctx, id, status, waybill)
}

// SetWaybill records or corrects the courier waybill number without touching
// the shipment status.
func (u *ShipmentUseCase) SetWaybill(ctx context.Context, id uuid.UUID, waybill string) (*model.Shipment, error) {
	if strings.TrimSpace(waybill) == "" {
		return nil, domainErrors.NewValidation("waybill is required")
	}
	return u.shipments.UpdateWaybill(ctx, id, strings.TrimSpace(waybill))
}

// GetByOrderID fetches the shipment of an order. Customers may only read
// shipments of their own orders.
func (u *ShipmentUseCase) GetByOrderID(ctx context.Context, orderID uuid.UUID, requesterID uuid.UUID, role model.Role) (*model.Shipment, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != requesterID && !role.IsStaff() {
		return nil, domainErrors.ErrForbidden
	}
	return u.shipments.GetByOrderID(ctx, orderID)
}

// TrackByOrderID resolves the shipment of an order and queries the courier
// aggregator for live tracking history.
func (u *ShipmentUseCase) TrackByOrderID(ctx context.Context, orderID uuid.UUID, requesterID uuid.UUID, role model.Role) (*biteship.Tracking, error) {
	shipment, err := u.GetByOrderID(ctx, orderID, requesterID, role)
	if err != nil {
		return nil, err
	}
	if shipment.TrackingID == "" {
		return nil, &domainErrors.InvalidStateError{
			Entity: "shipment",
			State:  string(shipment.Status),
			Reason: "shipment was not booked through the courier aggregator",
		}
	}
	return u.courier.Track(ctx, shipment.TrackingID)
}

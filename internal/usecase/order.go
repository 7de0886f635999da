package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/mymedina/commerce/internal/domain/errors"
	"github.com/mymedina/commerce/internal/domain/model"
	"github.com/mymedina/commerce/internal/domain/repository"
)

// OrderUseCase encapsulates checkout and order lifecycle logic.
type OrderUseCase struct {
	orders   repository.OrderRepository
	variants repository.VariantRepository
	users    repository.UserRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, variants repository.VariantRepository, users repository.UserRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, variants: variants, users: users}
}

// OrderItemInput is one requested line of a checkout.
type OrderItemInput struct {
	VariantID uuid.UUID
	Quantity  int
}

// CreateOrderInput carries a checkout request.
type CreateOrderInput struct {
	Type         model.OrderType
	Items        []OrderItemInput
	Address      model.ShippingAddress
	ShippingCost float64
	Note         string
}

// Create validates the cart, snapshots prices and persists the order. Stock is
// decremented inside the repository transaction so a shortage on any line
// fails the whole order.
func (u *OrderUseCase) Create(ctx context.Context, userID uuid.UUID, in CreateOrderInput) (*model.Order, error) {
	if len(in.Items) == 0 {
		return nil, domainErrors.NewValidation("order must contain at least one item")
	}
	if strings.TrimSpace(in.Address.Recipient) == "" || strings.TrimSpace(in.Address.Line1) == "" {
		return nil, domainErrors.NewValidation("shipping address is incomplete")
	}
	if in.ShippingCost < 0 {
		return nil, domainErrors.NewValidation("shipping cost cannot be negative")
	}
	orderType := in.Type
	if orderType == "" {
		orderType = model.OrderTypeRetail
	}
	if _, err := u.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	var subtotal float64
	items := make([]model.OrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		if line.Quantity <= 0 {
			return nil, domainErrors.NewValidation("item quantity must be positive")
		}

		variant, product, err := u.variants.GetWithProduct(ctx, line.VariantID)
		if err != nil {
			return nil, err
		}
		if !variant.Active || !product.Active {
			return nil, domainErrors.NewValidation("variant %s is not available", variant.SKU)
		}
		if variant.Stock < line.Quantity {
			return nil, &domainErrors.InsufficientStockError{
				ProductName: product.Name,
				SKU:         variant.SKU,
				Requested:   line.Quantity,
				Available:   variant.Stock,
			}
		}

		unitPrice := variant.UnitPrice(product.BasePrice)
		lineSubtotal := unitPrice * float64(line.Quantity)
		subtotal += lineSubtotal
		items = append(items, model.OrderItem{
			ProductID:   product.ID,
			VariantID:   variant.ID,
			ProductName: product.Name,
			SKU:         variant.SKU,
			Size:        variant.Size,
			Color:       variant.Color,
			UnitPrice:   unitPrice,
			Quantity:    line.Quantity,
			Subtotal:    lineSubtotal,
		})
	}

	return u.orders.Create(ctx, &model.Order{
		UserID:       userID,
		Type:         orderType,
		Status:       model.OrderStatusPendingPayment,
		Subtotal:     subtotal,
		ShippingCost: in.ShippingCost,
		Total:        subtotal + in.ShippingCost,
		Note:         in.Note,
		Address:      in.Address,
		Items:        items,
	})
}

// GetByID fetches an order. Customers may only read their own orders; staff
// may read any.
func (u *OrderUseCase) GetByID(ctx context.Context, id uuid.UUID, requesterID uuid.UUID, role model.Role) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != requesterID && !role.IsStaff() {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

// ListByUser returns the caller's orders, newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// ListAll returns a filtered order page for staff with the total match count.
func (u *OrderUseCase) ListAll(ctx context.Context, filter repository.OrderFilter) ([]model.Order, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return u.orders.List(ctx, filter)
}

// UpdateStatus moves an order through its lifecycle. The repository rejects
// transitions out of terminal states and restores stock on cancellation.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	switch status {
	case model.OrderStatusPendingPayment, model.OrderStatusPaid, model.OrderStatusProcessing,
		model.OrderStatusShipped, model.OrderStatusCompleted, model.OrderStatusCancelled:
	default:
		return nil, domainErrors.NewValidation("unknown order status %q", status)
	}
	return u.orders.UpdateStatus(ctx, id, status)
}

// Cancel cancels an order on behalf of its owner. Only unpaid orders may be
// cancelled by the customer.
func (u *OrderUseCase) Cancel(ctx context.Context, id uuid.UUID, requesterID uuid.UUID, role model.Role) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != requesterID && !role.IsStaff() {
		return nil, domainErrors.ErrForbidden
	}
	if !role.IsStaff() && order.Status != model.OrderStatusPendingPayment {
		return nil, &domainErrors.InvalidStateError{
			Entity: "order",
			State:  string(order.Status),
			Reason: "only unpaid orders can be cancelled",
		}
	}
	return u.orders.UpdateStatus(ctx, id, model.OrderStatusCancelled)
}

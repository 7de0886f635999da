package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	domainErrors "github.com/mymedina/commerce/internal/domain/errors"
	"github.com/mymedina/commerce/internal/domain/model"
	"github.com/mymedina/commerce/internal/domain/repository"
	"github.com/mymedina/commerce/internal/test"
)

func seedVariant(variants *test.VariantRepositoryStub, basePrice float64, override *float64, stock int) model.Variant {
	product := &model.Product{
		ID:        uuid.New(),
		Name:      "Gamis Basic",
		BasePrice: basePrice,
		Active:    true,
	}
	variant := model.Variant{
		ID:            uuid.New(),
		ProductID:     product.ID,
		SKU:           "GMS-" + uuid.NewString()[:8],
		Size:          "M",
		Color:         "Navy",
		PriceOverride: override,
		Stock:         stock,
		Active:        true,
	}
	variants.AddWithProduct(variant, product)
	return variant
}

func seedCustomer(users *test.UserRepositoryStub) uuid.UUID {
	customer := &model.User{ID: uuid.New(), Email: "customer@example.com", Name: "Siti", Role: model.RoleCustomer}
	users.Add(customer)
	return customer.ID
}

func validAddress() model.ShippingAddress {
	return model.ShippingAddress{
		Recipient:  "Siti",
		Phone:      "+628123456789",
		Line1:      "Jl. Kemang Raya 12",
		City:       "Jakarta Selatan",
		PostalCode: "12560",
	}
}

func TestCreateOrderTotals(t *testing.T) {
	variants := test.NewVariantRepositoryStub()
	override := 120000.0
	v1 := seedVariant(variants, 100000, nil, 10)
	v2 := seedVariant(variants, 100000, &override, 10)
	orders := &test.OrderRepositoryStub{}
	users := test.NewUserRepositoryStub()
	userID := seedCustomer(users)
	uc := NewOrderUseCase(orders, variants, users)

	order, err := uc.Create(context.Background(), userID, CreateOrderInput{
		Items: []OrderItemInput{
			{VariantID: v1.ID, Quantity: 2},
			{VariantID: v2.ID, Quantity: 1},
		},
		Address:      validAddress(),
		ShippingCost: 15000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.Subtotal != 2*100000+120000 {
		t.Fatalf("unexpected subtotal %v", order.Subtotal)
	}
	if order.Total != order.Subtotal+15000 {
		t.Fatalf("total must equal subtotal plus shipping, got %v", order.Total)
	}
	if order.Status != model.OrderStatusPendingPayment {
		t.Fatalf("new order must be PENDING_PAYMENT, got %q", order.Status)
	}
	if order.Type != model.OrderTypeRetail {
		t.Fatalf("order type must default to RETAIL, got %q", order.Type)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(order.Items))
	}
	// price override takes precedence over base price
	if order.Items[1].UnitPrice != 120000 {
		t.Fatalf("expected override price on second line, got %v", order.Items[1].UnitPrice)
	}
	if order.Items[0].Subtotal != 200000 {
		t.Fatalf("line subtotal must be unit price times quantity, got %v", order.Items[0].Subtotal)
	}
	if order.Items[0].ProductName != "Gamis Basic" || order.Items[0].SKU == "" {
		t.Fatalf("item must snapshot product identity")
	}
}

func TestCreateOrderUnknownUser(t *testing.T) {
	variants := test.NewVariantRepositoryStub()
	v := seedVariant(variants, 100000, nil, 10)
	uc := NewOrderUseCase(&test.OrderRepositoryStub{}, variants, test.NewUserRepositoryStub())

	_, err := uc.Create(context.Background(), uuid.New(), CreateOrderInput{
		Items:   []OrderItemInput{{VariantID: v.ID, Quantity: 1}},
		Address: validAddress(),
	})
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for dangling user id, got %v", err)
	}
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	variants := test.NewVariantRepositoryStub()
	v := seedVariant(variants, 100000, nil, 1)
	users := test.NewUserRepositoryStub()
	uc := NewOrderUseCase(&test.OrderRepositoryStub{}, variants, users)

	_, err := uc.Create(context.Background(), seedCustomer(users), CreateOrderInput{
		Items:   []OrderItemInput{{VariantID: v.ID, Quantity: 3}},
		Address: validAddress(),
	})
	var stockErr *domainErrors.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.Requested != 3 || stockErr.Available != 1 {
		t.Fatalf("unexpected stock error details: %+v", stockErr)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	variants := test.NewVariantRepositoryStub()
	v := seedVariant(variants, 100000, nil, 10)
	users := test.NewUserRepositoryStub()
	uc := NewOrderUseCase(&test.OrderRepositoryStub{}, variants, users)
	userID := seedCustomer(users)

	cases := []CreateOrderInput{
		{Address: validAddress()},
		{Items: []OrderItemInput{{VariantID: v.ID, Quantity: 0}}, Address: validAddress()},
		{Items: []OrderItemInput{{VariantID: v.ID, Quantity: 1}}},
		{Items: []OrderItemInput{{VariantID: v.ID, Quantity: 1}}, Address: validAddress(), ShippingCost: -1},
	}
	for i, in := range cases {
		var validation *domainErrors.ValidationError
		if _, err := uc.Create(context.Background(), userID, in); !errors.As(err, &validation) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestCreateOrderInactiveVariant(t *testing.T) {
	variants := test.NewVariantRepositoryStub()
	product := &model.Product{ID: uuid.New(), Name: "Hidden", BasePrice: 100000, Active: false}
	variant := model.Variant{ID: uuid.New(), ProductID: product.ID, SKU: "HID-1", Stock: 5, Active: true}
	variants.AddWithProduct(variant, product)
	users := test.NewUserRepositoryStub()
	uc := NewOrderUseCase(&test.OrderRepositoryStub{}, variants, users)

	var validation *domainErrors.ValidationError
	_, err := uc.Create(context.Background(), seedCustomer(users), CreateOrderInput{
		Items:   []OrderItemInput{{VariantID: variant.ID, Quantity: 1}},
		Address: validAddress(),
	})
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error for inactive product, got %v", err)
	}
}

func TestGetOrderOwnership(t *testing.T) {
	owner := uuid.New()
	orderID := uuid.New()
	orders := &test.OrderRepositoryStub{Orders: []model.Order{{ID: orderID, UserID: owner}}}
	uc := NewOrderUseCase(orders, test.NewVariantRepositoryStub(), test.NewUserRepositoryStub())

	if _, err := uc.GetByID(context.Background(), orderID, owner, model.RoleCustomer); err != nil {
		t.Fatalf("owner must read own order: %v", err)
	}
	if _, err := uc.GetByID(context.Background(), orderID, uuid.New(), model.RoleCustomer); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for stranger, got %v", err)
	}
	if _, err := uc.GetByID(context.Background(), orderID, uuid.New(), model.RoleAdmin); err != nil {
		t.Fatalf("admin must read any order: %v", err)
	}
}

func TestUpdateStatusUnknownValue(t *testing.T) {
	uc := NewOrderUseCase(&test.OrderRepositoryStub{}, test.NewVariantRepositoryStub(), test.NewUserRepositoryStub())

	var validation *domainErrors.ValidationError
	if _, err := uc.UpdateStatus(context.Background(), uuid.New(), "DISPATCHED"); !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusTerminalRejected(t *testing.T) {
	orderID := uuid.New()
	orders := &test.OrderRepositoryStub{Orders: []model.Order{
		{ID: orderID, Status: model.OrderStatusCancelled},
	}}
	uc := NewOrderUseCase(orders, test.NewVariantRepositoryStub(), test.NewUserRepositoryStub())

	if _, err := uc.UpdateStatus(context.Background(), orderID, model.OrderStatusPaid); !errors.Is(err, domainErrors.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestCancelByOwner(t *testing.T) {
	owner := uuid.New()
	orderID := uuid.New()
	orders := &test.OrderRepositoryStub{Orders: []model.Order{
		{ID: orderID, UserID: owner, Status: model.OrderStatusPendingPayment},
	}}
	uc := NewOrderUseCase(orders, test.NewVariantRepositoryStub(), test.NewUserRepositoryStub())

	order, err := uc.Cancel(context.Background(), orderID, owner, model.RoleCustomer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != model.OrderStatusCancelled {
		t.Fatalf("expected CANCELLED, got %q", order.Status)
	}
}

func TestCancelPaidOrderByCustomerRejected(t *testing.T) {
	owner := uuid.New()
	orderID := uuid.New()
	orders := &test.OrderRepositoryStub{Orders: []model.Order{
		{ID: orderID, UserID: owner, Status: model.OrderStatusPaid},
	}}
	uc := NewOrderUseCase(orders, test.NewVariantRepositoryStub(), test.NewUserRepositoryStub())

	if _, err := uc.Cancel(context.Background(), orderID, owner, model.RoleCustomer); !errors.Is(err, domainErrors.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}

	// staff may still cancel a paid order
	if _, err := uc.Cancel(context.Background(), orderID, uuid.New(), model.RoleAdmin); err != nil {
		t.Fatalf("unexpected error for admin cancel: %v", err)
	}
}

func TestListAllClampsPagination(t *testing.T) {
	orders := &test.OrderRepositoryStub{}
	uc := NewOrderUseCase(orders, test.NewVariantRepositoryStub(), test.NewUserRepositoryStub())

	captured := repository.OrderFilter{}
	orders.ListFn = func(ctx context.Context, filter repository.OrderFilter) ([]model.Order, int, error) {
		captured.Page = filter.Page
		captured.Limit = filter.Limit
		return nil, 0, nil
	}

	if _, _, err := uc.ListAll(context.Background(), repository.OrderFilter{Page: 0, Limit: 500}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Page != 1 || captured.Limit != 20 {
		t.Fatalf("expected clamped pagination, got page=%d limit=%d", captured.Page, captured.Limit)
	}
}

package test

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/mymedina/commerce/internal/domain/errors"
	"github.com/mymedina/commerce/internal/domain/model"
	"github.com/mymedina/commerce/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	ByEmail map[string]*model.User
	ByID    map[uuid.UUID]*model.User
	Err     error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByEmail: make(map[string]*model.User),
		ByID:    make(map[uuid.UUID]*model.User),
	}
}

// Add seeds a user into the stub.
func (s *UserRepositoryStub) Add(user *model.User) {
	s.ByEmail[user.Email] = user
	s.ByID[user.ID] = user
}

// Create registers a user unless the email is taken.
func (s *UserRepositoryStub) Create(ctx context.Context, email, passwordHash, name, phone string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByEmail[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Phone:        phone,
		Role:         role,
	}
	s.Add(user)
	return user, nil
}

// GetByEmail fetches a user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByEmail[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches a user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// AddressRepositoryStub stores addresses in-memory for tests.
type AddressRepositoryStub struct {
	Items        []model.Address
	DefaultCalls []uuid.UUID
	Err          error
}

// Create appends the address with a fresh identifier.
func (s *AddressRepositoryStub) Create(ctx context.Context, address *model.Address) (*model.Address, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	created := *address
	created.ID = uuid.New()
	s.Items = append(s.Items, created)
	return &created, nil
}

// ListByUser returns addresses belonging to the user.
func (s *AddressRepositoryStub) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Address
	for _, a := range s.Items {
		if a.UserID == userID {
			result = append(result, a)
		}
	}
	return result, nil
}

// SetDefault records the invocation and flips the flags in-memory.
func (s *AddressRepositoryStub) SetDefault(ctx context.Context, userID, addressID uuid.UUID) error {
	if s.Err != nil {
		return s.Err
	}
	s.DefaultCalls = append(s.DefaultCalls, addressID)
	found := false
	for i := range s.Items {
		if s.Items[i].UserID != userID {
			continue
		}
		s.Items[i].IsDefault = s.Items[i].ID == addressID
		if s.Items[i].IsDefault {
			found = true
		}
	}
	if !found {
		return domainErrors.ErrNotFound
	}
	return nil
}

// CategoryRepositoryStub stores categories in-memory for tests.
type CategoryRepositoryStub struct {
	Items []model.Category
	Err   error
}

// Create appends the category with a fresh identifier.
func (s *CategoryRepositoryStub) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	created := *category
	created.ID = uuid.New()
	s.Items = append(s.Items, created)
	return &created, nil
}

// GetByID fetches a category or returns not found.
func (s *CategoryRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Items {
		if s.Items[i].ID == id {
			return &s.Items[i], nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns all stored categories.
func (s *CategoryRepositoryStub) List(ctx context.Context) ([]model.Category, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Items, nil
}

// ProductRepositoryStub stores products in-memory for tests.
type ProductRepositoryStub struct {
	Items  []model.Product
	ListFn func(context.Context, repository.ProductFilter) ([]model.Product, int, error)
	Err    error
}

// Create appends the product with a fresh identifier.
func (s *ProductRepositoryStub) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, p := range s.Items {
		if p.Slug == product.Slug {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	created := *product
	created.ID = uuid.New()
	s.Items = append(s.Items, created)
	return &created, nil
}

// GetByID fetches a product or returns not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Items {
		if s.Items[i].ID == id {
			product := s.Items[i]
			return &product, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetBySlug fetches a product by slug or returns not found.
func (s *ProductRepositoryStub) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Items {
		if s.Items[i].Slug == slug {
			product := s.Items[i]
			return &product, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns stored products via override or as-is.
func (s *ProductRepositoryStub) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, int, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	if s.Err != nil {
		return nil, 0, s.Err
	}
	return s.Items, len(s.Items), nil
}

// Update overwrites the stored product.
func (s *ProductRepositoryStub) Update(ctx context.Context, product *model.Product) error {
	if s.Err != nil {
		return s.Err
	}
	for i := range s.Items {
		if s.Items[i].ID == product.ID {
			s.Items[i] = *product
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// VariantRepositoryStub stores variants in-memory for tests. Products maps a
// variant to its owning product for GetWithProduct.
type VariantRepositoryStub struct {
	Items    []model.Variant
	Products map[uuid.UUID]*model.Product
	Err      error
}

// NewVariantRepositoryStub constructs the stub with initialized maps.
func NewVariantRepositoryStub() *VariantRepositoryStub {
	return &VariantRepositoryStub{Products: make(map[uuid.UUID]*model.Product)}
}

// AddWithProduct seeds a variant together with its owning product.
func (s *VariantRepositoryStub) AddWithProduct(variant model.Variant, product *model.Product) {
	s.Items = append(s.Items, variant)
	s.Products[variant.ID] = product
}

// Create appends the variant with a fresh identifier.
func (s *VariantRepositoryStub) Create(ctx context.Context, variant *model.Variant) (*model.Variant, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, v := range s.Items {
		if v.SKU == variant.SKU {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	created := *variant
	created.ID = uuid.New()
	s.Items = append(s.Items, created)
	return &created, nil
}

// GetByID fetches a variant or returns not found.
func (s *VariantRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.Variant, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Items {
		if s.Items[i].ID == id {
			variant := s.Items[i]
			return &variant, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetWithProduct resolves a variant together with its seeded product.
func (s *VariantRepositoryStub) GetWithProduct(ctx context.Context, id uuid.UUID) (*model.Variant, *model.Product, error) {
	variant, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	product, ok := s.Products[id]
	if !ok {
		return nil, nil, domainErrors.ErrNotFound
	}
	return variant, product, nil
}

// ListByProduct returns variants belonging to the product.
func (s *VariantRepositoryStub) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Variant, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Variant
	for _, v := range s.Items {
		if v.ProductID == productID {
			result = append(result, v)
		}
	}
	return result, nil
}

// Update overwrites the stored variant.
func (s *VariantRepositoryStub) Update(ctx context.Context, variant *model.Variant) error {
	if s.Err != nil {
		return s.Err
	}
	for i := range s.Items {
		if s.Items[i].ID == variant.ID {
			s.Items[i] = *variant
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// OrderStatusCall stores information about UpdateStatus invocations.
type OrderStatusCall struct {
	OrderID uuid.UUID
	Status  model.OrderStatus
}

// OrderRepositoryStub allows tests to customize order behaviour.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, *model.Order) (*model.Order, error)
	GetByIDFn      func(context.Context, uuid.UUID) (*model.Order, error)
	ListByUserFn   func(context.Context, uuid.UUID) ([]model.Order, error)
	ListFn         func(context.Context, repository.OrderFilter) ([]model.Order, int, error)
	UpdateStatusFn func(context.Context, uuid.UUID, model.OrderStatus) (*model.Order, error)

	Created     []model.Order
	Orders      []model.Order
	StatusCalls []OrderStatusCall
}

// Create tracks invocations and returns the order with generated fields set.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	created := *order
	created.ID = uuid.New()
	created.Number = "ORD-20250101-00001"
	created.CreatedAt = time.Now()
	s.Created = append(s.Created, created)
	return &created, nil
}

// GetByID returns a matched order via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			order := s.Orders[i]
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns orders from the configured slice.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	var result []model.Order
	for _, o := range s.Orders {
		if o.UserID == userID {
			result = append(result, o)
		}
	}
	return result, nil
}

// List returns the configured slice with its length as total.
func (s *OrderRepositoryStub) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, int, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return s.Orders, len(s.Orders), nil
}

// UpdateStatus records invocations and mutates the stored order.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	s.StatusCalls = append(s.StatusCalls, OrderStatusCall{OrderID: id, Status: status})
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			if s.Orders[i].Status.Terminal() {
				return nil, &domainErrors.InvalidStateError{
					Entity: "order",
					State:  string(s.Orders[i].Status),
					Reason: "status is terminal",
				}
			}
			s.Orders[i].Status = status
			order := s.Orders[i]
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// PaymentRepositoryStub allows tests to customize payment behaviour.
type PaymentRepositoryStub struct {
	NextTransactionIDFn func(context.Context) (string, error)
	CreateFn            func(context.Context, *model.Payment) (*model.Payment, error)
	GetPendingByOrderFn func(context.Context, uuid.UUID) (*model.Payment, error)
	ApplyStatusFn       func(context.Context, uuid.UUID, model.PaymentStatus, string, string) (*model.Payment, error)

	Payments []model.Payment
	Sequence int
}

// NextTransactionID hands out sequential fake transaction ids.
func (s *PaymentRepositoryStub) NextTransactionID(ctx context.Context) (string, error) {
	if s.NextTransactionIDFn != nil {
		return s.NextTransactionIDFn(ctx)
	}
	s.Sequence++
	return fmt.Sprintf("TRX-20250101-%05d", s.Sequence), nil
}

// Create tracks the payment and assigns generated fields.
func (s *PaymentRepositoryStub) Create(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, payment)
	}
	created := *payment
	created.ID = uuid.New()
	if created.TransactionID == "" {
		created.TransactionID = "TRX-20250101-00001"
	}
	s.Payments = append(s.Payments, created)
	return &created, nil
}

// GetByID fetches a payment or returns not found.
func (s *PaymentRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	for i := range s.Payments {
		if s.Payments[i].ID == id {
			payment := s.Payments[i]
			return &payment, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByTransactionID fetches a payment by gateway reference.
func (s *PaymentRepositoryStub) GetByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error) {
	for i := range s.Payments {
		if s.Payments[i].TransactionID == transactionID {
			payment := s.Payments[i]
			return &payment, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByOrder returns payments belonging to the order.
func (s *PaymentRepositoryStub) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Payment, error) {
	var result []model.Payment
	for _, p := range s.Payments {
		if p.OrderID == orderID {
			result = append(result, p)
		}
	}
	return result, nil
}

// GetPendingByOrder returns the PENDING payment of the order, if any.
func (s *PaymentRepositoryStub) GetPendingByOrder(ctx context.Context, orderID uuid.UUID) (*model.Payment, error) {
	if s.GetPendingByOrderFn != nil {
		return s.GetPendingByOrderFn(ctx, orderID)
	}
	for i := range s.Payments {
		if s.Payments[i].OrderID == orderID && s.Payments[i].Status == model.PaymentStatusPending {
			payment := s.Payments[i]
			return &payment, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ApplyStatus records the status change and mimics the settlement cascade.
func (s *PaymentRepositoryStub) ApplyStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus, webhookPayload, signatureKey string) (*model.Payment, error) {
	if s.ApplyStatusFn != nil {
		return s.ApplyStatusFn(ctx, id, status, webhookPayload, signatureKey)
	}
	for i := range s.Payments {
		if s.Payments[i].ID == id {
			s.Payments[i].Status = status
			s.Payments[i].WebhookPayload = webhookPayload
			s.Payments[i].SignatureKey = signatureKey
			payment := s.Payments[i]
			return &payment, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ShipmentStatusCall stores information about shipment UpdateStatus invocations.
type ShipmentStatusCall struct {
	ShipmentID uuid.UUID
	Status     model.ShipmentStatus
	Waybill    string
}

// ShipmentRepositoryStub allows tests to customize shipment behaviour.
type ShipmentRepositoryStub struct {
	CreateFn       func(context.Context, *model.Shipment) (*model.Shipment, error)
	UpdateStatusFn func(context.Context, uuid.UUID, model.ShipmentStatus, string) (*model.Shipment, error)

	Shipments   []model.Shipment
	StatusCalls []ShipmentStatusCall
}

// Create tracks the shipment and enforces the one-per-order rule.
func (s *ShipmentRepositoryStub) Create(ctx context.Context, shipment *model.Shipment) (*model.Shipment, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, shipment)
	}
	for _, existing := range s.Shipments {
		if existing.OrderID == shipment.OrderID {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	created := *shipment
	created.ID = uuid.New()
	s.Shipments = append(s.Shipments, created)
	return &created, nil
}

// GetByID fetches a shipment or returns not found.
func (s *ShipmentRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.Shipment, error) {
	for i := range s.Shipments {
		if s.Shipments[i].ID == id {
			shipment := s.Shipments[i]
			return &shipment, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByOrderID fetches the shipment of an order.
func (s *ShipmentRepositoryStub) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*model.Shipment, error) {
	for i := range s.Shipments {
		if s.Shipments[i].OrderID == orderID {
			shipment := s.Shipments[i]
			return &shipment, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateStatus records the invocation and mutates the stored shipment.
func (s *ShipmentRepositoryStub) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ShipmentStatus, waybill string) (*model.Shipment, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status, waybill)
	}
	s.StatusCalls = append(s.StatusCalls, ShipmentStatusCall{ShipmentID: id, Status: status, Waybill: waybill})
	for i := range s.Shipments {
		if s.Shipments[i].ID == id {
			s.Shipments[i].Status = status
			if waybill != "" {
				s.Shipments[i].Waybill = waybill
			}
			shipment := s.Shipments[i]
			return &shipment, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateWaybill overwrites the waybill of the stored shipment.
func (s *ShipmentRepositoryStub) UpdateWaybill(ctx context.Context, id uuid.UUID, waybill string) (*model.Shipment, error) {
	for i := range s.Shipments {
		if s.Shipments[i].ID == id {
			s.Shipments[i].Waybill = waybill
			shipment := s.Shipments[i]
			return &shipment, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ReportRepositoryStub returns a configured sales report.
type ReportRepositoryStub struct {
	Report *model.SalesReport
	Err    error
}

// SalesReport returns the configured report stamped with the requested range.
func (s *ReportRepositoryStub) SalesReport(ctx context.Context, from, to time.Time) (*model.SalesReport, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Report == nil {
		return &model.SalesReport{From: from, To: to}, nil
	}
	report := *s.Report
	report.From = from
	report.To = to
	return &report, nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/mymedina/commerce/internal/adapter/midtrans"
	domainErrors "github.com/mymedina/commerce/internal/domain/errors"
	"github.com/mymedina/commerce/internal/domain/model"
	"github.com/mymedina/commerce/internal/domain/repository"
)

// PaymentUseCase drives payment attempts through the external gateway.
type PaymentUseCase struct {
	payments  repository.PaymentRepository
	orders    repository.OrderRepository
	users     repository.UserRepository
	gateway   midtrans.Client
	serverKey string
	expiry    time.Duration
	logger    *slog.Logger
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(
	payments repository.PaymentRepository,
	orders repository.OrderRepository,
	users repository.UserRepository,
	gateway midtrans.Client,
	serverKey string,
	expiry time.Duration,
	logger *slog.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		payments:  payments,
		orders:    orders,
		users:     users,
		gateway:   gateway,
		serverKey: serverKey,
		expiry:    expiry,
		logger:    logger,
	}
}

// Create initiates a payment attempt for an unpaid order. An order may carry
// at most one PENDING payment at a time. The row is persisted only after the
// gateway accepts the transaction, so a failed gateway call leaves nothing
// behind and the caller can simply retry.
func (u *PaymentUseCase) Create(ctx context.Context, orderID uuid.UUID, requesterID uuid.UUID, role model.Role, method model.PaymentMethod) (*model.Payment, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != requesterID && !role.IsStaff() {
		return nil, domainErrors.ErrForbidden
	}
	if order.Status != model.OrderStatusPendingPayment {
		return nil, &domainErrors.InvalidStateError{
			Entity: "order",
			State:  string(order.Status),
			Reason: "payment can only be created for unpaid orders",
		}
	}

	pending, err := u.payments.GetPendingByOrder(ctx, orderID)
	if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}
	if pending != nil {
		return nil, &domainErrors.InvalidStateError{
			Entity: "payment",
			State:  string(pending.Status),
			Reason: "order already has a pending payment",
		}
	}

	owner, err := u.users.GetByID(ctx, order.UserID)
	if err != nil {
		return nil, err
	}

	transactionID, err := u.payments.NextTransactionID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expiresAt := now.Add(u.expiry)
	payment := &model.Payment{
		OrderID:       orderID,
		TransactionID: transactionID,
		Method:        method,
		Status:        model.PaymentStatusPending,
		Amount:        order.Total,
		ExpiresAt:     &expiresAt,
		InitiatedAt:   &now,
	}

	tx, err := u.gateway.CreateTransaction(ctx, u.buildSnapRequest(payment, order, owner, now))
	if err != nil {
		return nil, err
	}

	payment.RedirectURL = tx.RedirectURL
	return u.payments.Create(ctx, payment)
}

func (u *PaymentUseCase) buildSnapRequest(payment *model.Payment, order *model.Order, owner *model.User, start time.Time) midtrans.SnapRequest {
	items := make([]midtrans.ItemDetail, 0, len(order.Items)+1)
	for _, item := range order.Items {
		items = append(items, midtrans.ItemDetail{
			ID:       item.SKU,
			Price:    int64(math.Round(item.UnitPrice)),
			Quantity: item.Quantity,
			Name:     item.ProductName,
		})
	}
	if order.ShippingCost > 0 {
		items = append(items, midtrans.ItemDetail{
			ID:       "SHIPPING",
			Price:    int64(math.Round(order.ShippingCost)),
			Quantity: 1,
			Name:     "Shipping cost",
		})
	}

	address := &midtrans.Address{
		FirstName:   order.Address.Recipient,
		Phone:       order.Address.Phone,
		Address:     order.Address.Line1,
		City:        order.Address.City,
		PostalCode:  order.Address.PostalCode,
		CountryCode: "IDN",
	}

	return midtrans.SnapRequest{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:     payment.TransactionID,
			GrossAmount: int64(math.Round(order.Total)),
		},
		CustomerDetails: midtrans.CustomerDetails{
			FirstName:       owner.Name,
			Email:           owner.Email,
			Phone:           owner.Phone,
			BillingAddress:  address,
			ShippingAddress: address,
		},
		ItemDetails: items,
		Expiry: &midtrans.Expiry{
			StartTime: midtrans.FormatExpiryStart(start),
			Unit:      "hour",
			Duration:  int(u.expiry.Hours()),
		},
	}
}

// GetByID fetches a payment, enforcing ownership through the parent order.
func (u *PaymentUseCase) GetByID(ctx context.Context, id uuid.UUID, requesterID uuid.UUID, role model.Role) (*model.Payment, error) {
	payment, err := u.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.authorize(ctx, payment.OrderID, requesterID, role); err != nil {
		return nil, err
	}
	return payment, nil
}

// ListByOrder returns all payment attempts of an order.
func (u *PaymentUseCase) ListByOrder(ctx context.Context, orderID uuid.UUID, requesterID uuid.UUID, role model.Role) ([]model.Payment, error) {
	if err := u.authorize(ctx, orderID, requesterID, role); err != nil {
		return nil, err
	}
	return u.payments.ListByOrder(ctx, orderID)
}

// WebhookNotification is the gateway status notification body.
type WebhookNotification struct {
	TransactionID     string
	TransactionStatus string
	FraudStatus       string
	StatusCode        string
	GrossAmount       string
	SignatureKey      string
	RawPayload        string
}

// HandleWebhook verifies the notification signature and applies the reported
// status. A SETTLEMENT advances the owning order to PAID inside the repository
// transaction; replays of a settled payment are no-ops.
func (u *PaymentUseCase) HandleWebhook(ctx context.Context, n WebhookNotification) (*model.Payment, error) {
	if !midtrans.VerifySignature(n.TransactionID, n.StatusCode, n.GrossAmount, u.serverKey, n.SignatureKey) {
		return nil, domainErrors.NewValidation("invalid webhook signature")
	}

	payment, err := u.payments.GetByTransactionID(ctx, n.TransactionID)
	if err != nil {
		return nil, err
	}

	status, err := mapGatewayStatus(n.TransactionStatus, n.FraudStatus)
	if err != nil {
		return nil, err
	}

	u.logger.Info("payment webhook",
		slog.String("transaction_id", n.TransactionID),
		slog.String("status", string(status)),
	)
	return u.payments.ApplyStatus(ctx, payment.ID, status, n.RawPayload, n.SignatureKey)
}

func mapGatewayStatus(transactionStatus, fraudStatus string) (model.PaymentStatus, error) {
	switch transactionStatus {
	case "capture":
		if fraudStatus == "accept" {
			return model.PaymentStatusSettlement, nil
		}
		return model.PaymentStatusDeny, nil
	case "settlement":
		return model.PaymentStatusSettlement, nil
	case "pending":
		return model.PaymentStatusPending, nil
	case "expire":
		return model.PaymentStatusExpire, nil
	case "cancel":
		return model.PaymentStatusCancel, nil
	case "deny":
		return model.PaymentStatusDeny, nil
	case "refund", "partial_refund":
		return model.PaymentStatusRefund, nil
	}
	return "", fmt.Errorf("unknown transaction status %q", transactionStatus)
}

func (u *PaymentUseCase) authorize(ctx context.Context, orderID uuid.UUID, requesterID uuid.UUID, role model.Role) error {
	if role.IsStaff() {
		return nil
	}
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.UserID != requesterID {
		return domainErrors.ErrForbidden
	}
	return nil
}

package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/mymedina/commerce/internal/adapter/midtrans"
	"github.com/mymedina/commerce/internal/config"
	"github.com/mymedina/commerce/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewCatalogUseCase,
	NewOrderUseCase,
	newPaymentUseCase,
	NewShipmentUseCase,
	NewReportUseCase,
)

type paymentParams struct {
	fx.In

	Payments repository.PaymentRepository
	Orders   repository.OrderRepository
	Users    repository.UserRepository
	Gateway  midtrans.Client
	Config   *config.Config
	Logger   *slog.Logger
}

func newPaymentUseCase(p paymentParams) *PaymentUseCase {
	return NewPaymentUseCase(p.Payments, p.Orders, p.Users, p.Gateway,
		p.Config.MidtransServerKey, p.Config.PaymentExpiry, p.Logger)
}

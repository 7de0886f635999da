package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/mymedina/commerce/internal/adapter/biteship"
	"github.com/mymedina/commerce/internal/adapter/brevo"
	"github.com/mymedina/commerce/internal/adapter/midtrans"
	"github.com/mymedina/commerce/internal/app"
	"github.com/mymedina/commerce/internal/config"
	"github.com/mymedina/commerce/internal/domain/repository"
	"github.com/mymedina/commerce/internal/storage/postgres"
	"github.com/mymedina/commerce/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:        ":0",
		DatabaseURI:       "postgres://stub",
		JWTSecret:         "secret",
		AllowedOrigins:    "*",
		MidtransServerKey: "SB-Mid-server-key",
		ShutdownTimeout:   time.Millisecond,
		PaymentExpiry:     time.Hour,
	}

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	var facade *app.CommerceFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(fx.Annotate(test.NewUserRepositoryStub(), fx.As(new(repository.UserRepository)))),
			fx.Replace(fx.Annotate(&test.AddressRepositoryStub{}, fx.As(new(repository.AddressRepository)))),
			fx.Replace(fx.Annotate(&test.CategoryRepositoryStub{}, fx.As(new(repository.CategoryRepository)))),
			fx.Replace(fx.Annotate(&test.ProductRepositoryStub{}, fx.As(new(repository.ProductRepository)))),
			fx.Replace(fx.Annotate(test.NewVariantRepositoryStub(), fx.As(new(repository.VariantRepository)))),
			fx.Replace(fx.Annotate(&test.OrderRepositoryStub{}, fx.As(new(repository.OrderRepository)))),
			fx.Replace(fx.Annotate(&test.PaymentRepositoryStub{}, fx.As(new(repository.PaymentRepository)))),
			fx.Replace(fx.Annotate(&test.ShipmentRepositoryStub{}, fx.As(new(repository.ShipmentRepository)))),
			fx.Replace(fx.Annotate(&test.ReportRepositoryStub{}, fx.As(new(repository.ReportRepository)))),
			fx.Replace(fx.Annotate(&test.GatewayStub{}, fx.As(new(midtrans.Client)))),
			fx.Replace(fx.Annotate(&test.CourierStub{}, fx.As(new(biteship.Client)))),
			fx.Replace(fx.Annotate(&test.MailerStub{}, fx.As(new(brevo.Mailer)))),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected commerce facade instance")
	}
}

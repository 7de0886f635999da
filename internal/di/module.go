package di

import (
	"go.uber.org/fx"

	"github.com/mymedina/commerce/internal/adapter/biteship"
	"github.com/mymedina/commerce/internal/adapter/brevo"
	"github.com/mymedina/commerce/internal/adapter/midtrans"
	"github.com/mymedina/commerce/internal/app"
	"github.com/mymedina/commerce/internal/config"
	"github.com/mymedina/commerce/internal/logger"
	"github.com/mymedina/commerce/internal/pkg/auth"
	"github.com/mymedina/commerce/internal/server/http/handlers"
	"github.com/mymedina/commerce/internal/server/http/router"
	"github.com/mymedina/commerce/internal/storage/postgres"
	"github.com/mymedina/commerce/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		midtrans.Module,
		biteship.Module,
		brevo.Module,
		usecase.Module,
		fx.Provide(func(f *app.CommerceFacade) handlers.CommerceFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

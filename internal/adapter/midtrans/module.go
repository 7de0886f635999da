package midtrans

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/mymedina/commerce/internal/config"
)

// Module exposes the Midtrans Snap client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.MidtransBaseURL, p.Config.MidtransServerKey, p.Logger)
}

package biteship

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/mymedina/commerce/internal/config"
)

// Module exposes the Biteship client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.BiteshipBaseURL, p.Config.BiteshipAPIKey, p.Logger)
}

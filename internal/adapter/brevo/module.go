package brevo

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/mymedina/commerce/internal/config"
)

// Module exposes the Brevo mailer to the fx graph.
var Module = fx.Provide(newMailer)

type mailerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newMailer(p mailerParams) (Mailer, error) {
	return NewHTTPClient(p.Config.BrevoBaseURL, p.Config.BrevoAPIKey, p.Config.EmailFrom, p.Config.EmailFromName, p.Logger)
}

package blocktank

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/chanorders/internal/config"
)

// Module exposes the blocktank client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.BlocktankAddress, p.Config.RequestTimeout, p.Logger)
}

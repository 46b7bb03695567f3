package store

import (
	"context"

	"go.uber.org/fx"

	"github.com/polkiloo/chanorders/internal/config"
	"github.com/polkiloo/chanorders/internal/domain/model"
)

// Module provides one session store per application and closes it on shutdown.
var Module = fx.Options(
	fx.Provide(newStore),
	fx.Invoke(registerLifecycle),
)

func newStore(cfg *config.Config) *Store {
	return New(model.FiatCurrency(cfg.DefaultCurrency))
}

func registerLifecycle(lc fx.Lifecycle, st *Store) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			st.Close()
			return nil
		},
	})
}

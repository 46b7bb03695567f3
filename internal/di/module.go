package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/chanorders/internal/adapter/blocktank"
	"github.com/polkiloo/chanorders/internal/app"
	"github.com/polkiloo/chanorders/internal/config"
	"github.com/polkiloo/chanorders/internal/logger"
	"github.com/polkiloo/chanorders/internal/metrics"
	"github.com/polkiloo/chanorders/internal/server/http/router"
	"github.com/polkiloo/chanorders/internal/store"
	"github.com/polkiloo/chanorders/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		store.Module,
		metrics.Module,
		blocktank.Module,
		usecase.Module,
		fx.Provide(func(client blocktank.Client) usecase.Remote { return client }),
		fx.Provide(func(r *metrics.Registry) usecase.RefreshObserver { return r }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

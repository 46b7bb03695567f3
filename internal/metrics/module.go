package metrics

import (
	"context"

	"go.uber.org/fx"

	"github.com/polkiloo/chanorders/internal/store"
)

// Module provides the metrics registry and keeps it subscribed to the session store.
var Module = fx.Options(
	fx.Provide(NewRegistry),
	fx.Invoke(registerLifecycle),
)

func registerLifecycle(lc fx.Lifecycle, r *Registry, st *store.Store) {
	var stop func()
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			stop = r.Watch(st)
			return nil
		},
		OnStop: func(context.Context) error {
			if stop != nil {
				stop()
			}
			return nil
		},
	})
}

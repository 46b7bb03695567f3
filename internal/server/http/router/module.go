package router

import (
	"go.uber.org/fx"

	"github.com/polkiloo/chanorders/internal/app"
	"github.com/polkiloo/chanorders/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Options(
	fx.Provide(func(f *app.OrdersFacade) handlers.ChannelOrdersFacade { return f }),
	fx.Provide(Setup),
)

package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/chanorders/internal/metrics"
	"github.com/polkiloo/chanorders/internal/server/http/handlers"
	"github.com/polkiloo/chanorders/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.ChannelOrdersFacade, registry *metrics.Registry, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	orderHandler := handlers.NewOrderHandler(facade)
	serviceHandler := handlers.NewServiceHandler(facade)

	api := engine.Group("/api")

	orders := api.Group("/orders")
	orders.GET("", orderHandler.List)
	orders.POST("", orderHandler.Place)
	orders.POST("/refresh", orderHandler.RefreshAll)
	orders.GET("/:id", orderHandler.Get)
	orders.DELETE("/:id", orderHandler.Remove)
	orders.POST("/:id/refresh", orderHandler.Refresh)

	api.GET("/info", serviceHandler.Info)
	api.POST("/info/refresh", serviceHandler.RefreshInfo)
	api.GET("/rates", serviceHandler.Rates)
	api.POST("/rates/refresh", serviceHandler.RefreshRates)
	api.GET("/state", serviceHandler.State)
	api.PUT("/settings/currency", serviceHandler.SetCurrency)

	engine.GET("/metrics", gin.WrapH(registry.Handler()))

	return engine
}

package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/chanorders/internal/app"
	"github.com/polkiloo/chanorders/internal/domain/model"
)

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	Orders() []app.OrderView
	Order(id string) (app.OrderView, error)
	RemoveOrder(id string) error
	RefreshOrder(ctx context.Context, id string) error
	RefreshOrders(ctx context.Context) error
	PlaceOrder(ctx context.Context, req model.BuyChannelRequest) (model.BuyChannelResponse, error)
	FiatValue(sats int64) (decimal.Decimal, error)
	Currency() model.FiatCurrency
}

// ServiceFacade provides node info, rates and session settings.
type ServiceFacade interface {
	Info() model.Info
	RefreshInfo(ctx context.Context) error
	ExchangeRates() model.ExchangeRates
	RefreshExchangeRates(ctx context.Context) error
	Currency() model.FiatCurrency
	SetCurrency(currency model.FiatCurrency) error
	CurrentOrderID() string
	States() app.ResourceStates
}

// ChannelOrdersFacade aggregates the full set of operations used across handlers.
type ChannelOrdersFacade interface {
	OrderFacade
	ServiceFacade
}

var _ ChannelOrdersFacade = (*app.OrdersFacade)(nil)

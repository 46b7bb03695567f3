package app

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/chanorders/internal/classifier"
	domainErrors "github.com/polkiloo/chanorders/internal/domain/errors"
	"github.com/polkiloo/chanorders/internal/domain/model"
	"github.com/polkiloo/chanorders/internal/store"
	"github.com/polkiloo/chanorders/internal/usecase"
)

// OrderView is a cached order together with its presentation.
type OrderView struct {
	Record         model.OrderRecord
	Classification classifier.Classification
}

// ResourceStates is a snapshot of every per-class request state.
type ResourceStates struct {
	Orders        model.RequestState
	Info          model.RequestState
	ExchangeRates model.RequestState
	Version       uint64
}

// OrdersFacade is the consumer-facing entry point over the session store and the refresh coordinator.
type OrdersFacade struct {
	store       *store.Store
	coordinator *usecase.RefreshCoordinator
}

func NewOrdersFacade(st *store.Store, coordinator *usecase.RefreshCoordinator) *OrdersFacade {
	return &OrdersFacade{store: st, coordinator: coordinator}
}

func (f *OrdersFacade) Orders() []OrderView {
	records := f.store.Orders().ListAll()
	views := make([]OrderView, 0, len(records))
	for _, r := range records {
		views = append(views, viewOf(r))
	}
	return views
}

func (f *OrdersFacade) Order(id string) (OrderView, error) {
	r, ok := f.store.Orders().Get(id)
	if !ok {
		return OrderView{}, domainErrors.ErrNotFound
	}
	return viewOf(r), nil
}

func (f *OrdersFacade) CachedOrderIDs() []string {
	records := f.store.Orders().ListAll()
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	return ids
}

// RemoveOrder drops an order from the cache when its status allows it.
// Removing an order that is not cached is a no-op.
func (f *OrdersFacade) RemoveOrder(id string) error {
	found, removed := f.store.Orders().RemoveIf(id, func(r model.OrderRecord) bool {
		return classifier.Removable(r.StatusCode)
	})
	if found && !removed {
		return fmt.Errorf("remove order %s: %w", id, domainErrors.ErrNotRemovable)
	}
	return nil
}

func (f *OrdersFacade) RefreshOrder(ctx context.Context, id string) error {
	return f.coordinator.RefreshOrder(ctx, id)
}

func (f *OrdersFacade) RefreshOrders(ctx context.Context) error {
	return f.coordinator.RefreshOrders(ctx)
}

func (f *OrdersFacade) RefreshInfo(ctx context.Context) error {
	return f.coordinator.RefreshInfo(ctx)
}

func (f *OrdersFacade) RefreshExchangeRates(ctx context.Context) error {
	return f.coordinator.RefreshExchangeRates(ctx)
}

func (f *OrdersFacade) PlaceOrder(ctx context.Context, req model.BuyChannelRequest) (model.BuyChannelResponse, error) {
	return f.coordinator.PlaceOrder(ctx, req)
}

func (f *OrdersFacade) CurrentOrderID() string {
	return f.store.CurrentOrderID()
}

func (f *OrdersFacade) Info() model.Info {
	return f.store.Info()
}

func (f *OrdersFacade) ExchangeRates() model.ExchangeRates {
	return f.store.ExchangeRates()
}

func (f *OrdersFacade) Currency() model.FiatCurrency {
	return f.store.Currency()
}

func (f *OrdersFacade) SetCurrency(currency model.FiatCurrency) error {
	return f.store.SetCurrency(currency)
}

// FiatValue converts an amount of satoshis using the selected currency.
func (f *OrdersFacade) FiatValue(sats int64) (decimal.Decimal, error) {
	return f.store.ConvertSats(sats)
}

func (f *OrdersFacade) States() ResourceStates {
	return ResourceStates{
		Orders:        f.store.ResourceState(model.ResourceOrders),
		Info:          f.store.ResourceState(model.ResourceInfo),
		ExchangeRates: f.store.ResourceState(model.ResourceExchangeRates),
		Version:       f.store.Version(),
	}
}

func viewOf(r model.OrderRecord) OrderView {
	return OrderView{Record: r, Classification: classifier.Classify(r.StatusCode)}
}

package test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/chanorders/internal/domain/model"
)

// RemoteStub implements the remote authority contract via function overrides.
type RemoteStub struct {
	FetchOrderFn         func(context.Context, string) (model.OrderRecord, error)
	FetchOrderListFn     func(context.Context) ([]model.OrderRecord, error)
	FetchInfoFn          func(context.Context) (model.Info, error)
	FetchExchangeRatesFn func(context.Context) (model.ExchangeRates, error)
	BuyChannelFn         func(context.Context, model.BuyChannelRequest) (model.BuyChannelResponse, error)
}

// FetchOrder delegates to override or returns an order awaiting payment.
func (s RemoteStub) FetchOrder(ctx context.Context, id string) (model.OrderRecord, error) {
	if s.FetchOrderFn != nil {
		return s.FetchOrderFn(ctx, id)
	}
	return model.OrderRecord{ID: id, StatusCode: model.StatusAwaitingPayment, StatusMessage: "Awaiting payment", CreatedAt: 1}, nil
}

// FetchOrderList delegates to override or returns no orders.
func (s RemoteStub) FetchOrderList(ctx context.Context) ([]model.OrderRecord, error) {
	if s.FetchOrderListFn != nil {
		return s.FetchOrderListFn(ctx)
	}
	return nil, nil
}

// FetchInfo delegates to override or returns minimal node info.
func (s RemoteStub) FetchInfo(ctx context.Context) (model.Info, error) {
	if s.FetchInfoFn != nil {
		return s.FetchInfoFn(ctx)
	}
	return model.Info{NodeInfo: model.NodeInfo{Alias: "stub"}}, nil
}

// FetchExchangeRates delegates to override or returns a single USD rate.
func (s RemoteStub) FetchExchangeRates(ctx context.Context) (model.ExchangeRates, error) {
	if s.FetchExchangeRatesFn != nil {
		return s.FetchExchangeRatesFn(ctx)
	}
	return model.ExchangeRates{"USD": decimal.NewFromInt(50000)}, nil
}

// BuyChannel delegates to override or accepts the purchase.
func (s RemoteStub) BuyChannel(ctx context.Context, req model.BuyChannelRequest) (model.BuyChannelResponse, error) {
	if s.BuyChannelFn != nil {
		return s.BuyChannelFn(ctx, req)
	}
	return model.BuyChannelResponse{OrderID: "new-order", PriceSats: 1000, TotalAmount: 1000}, nil
}

// OrderReply is the settled outcome of a gated fetch.
type OrderReply struct {
	Record model.OrderRecord
	Err    error
}

// GatedOrders lets tests decide when each FetchOrder call settles.
// Every call publishes its reply channel on Calls in issue order.
type GatedOrders struct {
	Calls chan chan OrderReply
}

// NewGatedOrders creates gate with room for n pending calls.
func NewGatedOrders(n int) *GatedOrders {
	return &GatedOrders{Calls: make(chan chan OrderReply, n)}
}

// FetchOrder blocks until the test replies on the published channel.
func (g *GatedOrders) FetchOrder(ctx context.Context, id string) (model.OrderRecord, error) {
	reply := make(chan OrderReply, 1)
	g.Calls <- reply
	select {
	case r := <-reply:
		return r.Record, r.Err
	case <-ctx.Done():
		return model.OrderRecord{}, ctx.Err()
	}
}

// Next waits for the next issued call.
func (g *GatedOrders) Next(timeout time.Duration) (chan OrderReply, bool) {
	select {
	case c := <-g.Calls:
		return c, true
	case <-time.After(timeout):
		return nil, false
	}
}

// RefreshCall stores information about an observed refresh.
type RefreshCall struct {
	Class   model.ResourceClass
	Err     error
	Elapsed time.Duration
}

// ObserverStub records refresh observations.
type ObserverStub struct {
	mu    sync.Mutex
	Calls []RefreshCall
}

// ObserveRefresh appends observation.
func (o *ObserverStub) ObserveRefresh(class model.ResourceClass, err error, elapsed time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Calls = append(o.Calls, RefreshCall{Class: class, Err: err, Elapsed: elapsed})
}

// Snapshot returns recorded observations.
func (o *ObserverStub) Snapshot() []RefreshCall {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]RefreshCall, len(o.Calls))
	copy(out, o.Calls)
	return out
}

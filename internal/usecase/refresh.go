package usecase

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/polkiloo/chanorders/internal/domain/errors"
	"github.com/polkiloo/chanorders/internal/domain/model"
	"github.com/polkiloo/chanorders/internal/store"
)

// Remote is the remote authority owning order state.
type Remote interface {
	FetchOrder(ctx context.Context, id string) (model.OrderRecord, error)
	FetchOrderList(ctx context.Context) ([]model.OrderRecord, error)
	FetchInfo(ctx context.Context) (model.Info, error)
	FetchExchangeRates(ctx context.Context) (model.ExchangeRates, error)
	BuyChannel(ctx context.Context, req model.BuyChannelRequest) (model.BuyChannelResponse, error)
}

// RefreshObserver records the outcome of every settled refresh.
type RefreshObserver interface {
	ObserveRefresh(class model.ResourceClass, err error, elapsed time.Duration)
}

// RefreshCoordinator pulls resources from the remote authority into the session store.
//
// Every call is an independent attempt: concurrent calls are neither coalesced nor ordered,
// and the last one to settle decides both the cached value and the resource state.
type RefreshCoordinator struct {
	remote   Remote
	store    *store.Store
	observer RefreshObserver
}

// NewRefreshCoordinator constructs RefreshCoordinator.
func NewRefreshCoordinator(remote Remote, st *store.Store, observer RefreshObserver) *RefreshCoordinator {
	return &RefreshCoordinator{remote: remote, store: st, observer: observer}
}

// RefreshOrder fetches one order and merges it into the cache.
// On failure, a malformed id included, the cached record is left untouched and the orders flag
// becomes error.
func (c *RefreshCoordinator) RefreshOrder(ctx context.Context, id string) error {
	err := c.run(ctx, model.ResourceOrders, func(ctx context.Context) error {
		if !ValidateOrderID(id) {
			return domainErrors.ErrInvalidRequest
		}
		record, err := c.remote.FetchOrder(ctx, id)
		if err != nil {
			return err
		}
		c.store.Orders().Upsert(record)
		return nil
	})
	if err != nil {
		return fmt.Errorf("refresh order %q: %w", id, err)
	}
	return nil
}

// RefreshOrders fetches the full order list and merges every record into the cache.
func (c *RefreshCoordinator) RefreshOrders(ctx context.Context) error {
	err := c.run(ctx, model.ResourceOrders, func(ctx context.Context) error {
		records, err := c.remote.FetchOrderList(ctx)
		if err != nil {
			return err
		}
		for _, r := range records {
			c.store.Orders().Upsert(r)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("refresh orders: %w", err)
	}
	return nil
}

// RefreshInfo replaces the cached service info.
func (c *RefreshCoordinator) RefreshInfo(ctx context.Context) error {
	err := c.run(ctx, model.ResourceInfo, func(ctx context.Context) error {
		info, err := c.remote.FetchInfo(ctx)
		if err != nil {
			return err
		}
		c.store.SetInfo(info)
		return nil
	})
	if err != nil {
		return fmt.Errorf("refresh info: %w", err)
	}
	return nil
}

// RefreshExchangeRates replaces the cached exchange rate table.
func (c *RefreshCoordinator) RefreshExchangeRates(ctx context.Context) error {
	err := c.run(ctx, model.ResourceExchangeRates, func(ctx context.Context) error {
		rates, err := c.remote.FetchExchangeRates(ctx)
		if err != nil {
			return err
		}
		c.store.SetExchangeRates(rates)
		return nil
	})
	if err != nil {
		return fmt.Errorf("refresh exchange rates: %w", err)
	}
	return nil
}

// PlaceOrder submits a purchase, makes the new order current and pulls it into the cache.
// A non-empty response is returned even when the follow-up refresh fails.
func (c *RefreshCoordinator) PlaceOrder(ctx context.Context, req model.BuyChannelRequest) (model.BuyChannelResponse, error) {
	if !ValidateBuyChannelRequest(req) {
		return model.BuyChannelResponse{}, domainErrors.ErrInvalidRequest
	}

	resp, err := c.remote.BuyChannel(ctx, req)
	if err != nil {
		return model.BuyChannelResponse{}, fmt.Errorf("place order: %w", err)
	}

	c.store.SetCurrentOrderID(resp.OrderID)
	if err := c.RefreshOrder(ctx, resp.OrderID); err != nil {
		return resp, err
	}
	return resp, nil
}

func (c *RefreshCoordinator) run(ctx context.Context, class model.ResourceClass, fetch func(context.Context) error) error {
	c.store.SetResourceState(class, model.RequestLoading)

	start := time.Now()
	err := fetch(ctx)
	if c.observer != nil {
		c.observer.ObserveRefresh(class, err, time.Since(start))
	}

	if err != nil {
		c.store.SetResourceState(class, model.RequestError)
		return err
	}
	c.store.SetResourceState(class, model.RequestIdle)
	return nil
}

package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/polkiloo/chanorders/internal/adapter/blocktank"
	domainErrors "github.com/polkiloo/chanorders/internal/domain/errors"
)

// RefreshFacade exposes the subset of application functionality required by the worker.
type RefreshFacade interface {
	CachedOrderIDs() []string
	RefreshOrder(ctx context.Context, id string) error
	RefreshOrders(ctx context.Context) error
	RefreshInfo(ctx context.Context) error
	RefreshExchangeRates(ctx context.Context) error
}

// OrderRefresher periodically re-fetches every cached order using a pool of workers.
type OrderRefresher struct {
	facade   RefreshFacade
	interval time.Duration
	workers  int
	logger   *slog.Logger

	jobs        chan string
	wg          sync.WaitGroup
	cancel      context.CancelFunc
	mu          sync.Mutex
	pausedUntil time.Time
}

// NewOrderRefresher constructs order refresher worker pool.
func NewOrderRefresher(facade RefreshFacade, interval time.Duration, workers int, logger *slog.Logger) *OrderRefresher {
	if workers <= 0 {
		workers = 1
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &OrderRefresher{
		facade:   facade,
		interval: interval,
		workers:  workers,
		logger:   logger,
	}
}

// Start launches background refreshing. Calling Start on a running refresher is a no-op.
func (r *OrderRefresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	r.cancel = cancel
	r.jobs = make(chan string, r.workers)

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx, r.jobs)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx, r.jobs)
}

// Stop cancels refreshing and waits for all workers to finish.
func (r *OrderRefresher) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

// Bootstrap pulls the order list and service info concurrently.
// A failure of one does not cancel the other; the first error is returned.
func (r *OrderRefresher) Bootstrap(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return r.facade.RefreshOrders(ctx) })
	g.Go(func() error { return r.facade.RefreshInfo(ctx) })
	return g.Wait()
}

func (r *OrderRefresher) dispatch(ctx context.Context, jobs chan<- string) {
	defer r.wg.Done()
	defer close(jobs)

	if err := r.Bootstrap(ctx); err != nil {
		r.report("initial refresh failed", "", err)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.tick(ctx, jobs)
		}
	}
}

func (r *OrderRefresher) tick(ctx context.Context, jobs chan<- string) {
	if r.paused() {
		return
	}

	if err := r.facade.RefreshExchangeRates(ctx); err != nil {
		r.report("exchange rates refresh failed", "", err)
	}

	for _, id := range r.facade.CachedOrderIDs() {
		select {
		case <-ctx.Done():
			return
		case jobs <- id:
		}
	}
}

func (r *OrderRefresher) worker(ctx context.Context, jobs <-chan string) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case id, ok := <-jobs:
			if !ok {
				return
			}
			if r.paused() {
				continue
			}
			if err := r.facade.RefreshOrder(ctx, id); err != nil {
				r.report("order refresh failed", id, err)
			}
		}
	}
}

func (r *OrderRefresher) paused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Now().Before(r.pausedUntil)
}

func (r *OrderRefresher) report(msg, orderID string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}

	attrs := []any{slog.String("error", err.Error())}
	if orderID != "" {
		attrs = append(attrs, slog.String("order", orderID))
	}

	var transportErr *blocktank.TransportError
	if errors.As(err, &transportErr) && transportErr.RetryAfter > 0 {
		r.mu.Lock()
		r.pausedUntil = time.Now().Add(transportErr.RetryAfter)
		r.mu.Unlock()
		r.logger.Warn("blocktank rate limited", append(attrs, slog.Duration("retry_after", transportErr.RetryAfter))...)
		return
	}

	if errors.Is(err, domainErrors.ErrNotFound) {
		r.logger.Warn(msg, attrs...)
		return
	}
	r.logger.Error(msg, attrs...)
}

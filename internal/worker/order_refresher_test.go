package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/polkiloo/chanorders/internal/adapter/blocktank"
	testhelpers "github.com/polkiloo/chanorders/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.After(timeout)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for condition")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestNewOrderRefresherDefaults(t *testing.T) {
	r := NewOrderRefresher(&testhelpers.WorkerFacadeStub{}, 0, 0, discardLogger())
	if r.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", r.workers)
	}
	if r.interval != time.Second {
		t.Fatalf("expected interval default to 1s, got %v", r.interval)
	}
}

func TestOrderRefresherBootstrapsAndRefreshesCachedOrders(t *testing.T) {
	facade := &testhelpers.WorkerFacadeStub{IDs: []string{"a", "b", "c"}}
	r := NewOrderRefresher(facade, 10*time.Millisecond, 2, discardLogger())

	r.Start(context.Background())
	waitFor(t, time.Second, func() bool {
		facade.Lock()
		defer facade.Unlock()
		return len(facade.Refreshed) >= 3 && facade.RatesCalls > 0
	})
	r.Stop()

	facade.Lock()
	defer facade.Unlock()
	if facade.BulkCalls != 1 || facade.InfoCalls != 1 {
		t.Fatalf("expected one bootstrap of orders and info, got %d/%d", facade.BulkCalls, facade.InfoCalls)
	}
	seen := map[string]bool{}
	for _, id := range facade.Refreshed {
		seen[id] = true
	}
	for _, id := range []string{"a", "b", "c"} {
		if !seen[id] {
			t.Fatalf("expected order %s to be refreshed, got %v", id, facade.Refreshed)
		}
	}
}

func TestOrderRefresherKeepsRunningAfterErrors(t *testing.T) {
	calls := int32(0)
	facade := &testhelpers.WorkerFacadeStub{
		IDs:      []string{"a"},
		BulkErr:  errors.New("boom"),
		RatesErr: errors.New("boom"),
		RefreshOrderFn: func(context.Context, string) error {
			atomic.AddInt32(&calls, 1)
			return errors.New("boom")
		},
	}
	r := NewOrderRefresher(facade, 5*time.Millisecond, 1, discardLogger())

	r.Start(context.Background())
	waitFor(t, time.Second, func() bool { return atomic.LoadInt32(&calls) >= 2 })
	r.Stop()
}

func TestOrderRefresherPausesWhenRateLimited(t *testing.T) {
	calls := int32(0)
	facade := &testhelpers.WorkerFacadeStub{
		IDs: []string{"a"},
		RefreshOrderFn: func(context.Context, string) error {
			if atomic.AddInt32(&calls, 1) == 1 {
				return &blocktank.TransportError{Op: "fetch order", StatusCode: 429, RetryAfter: time.Hour}
			}
			return nil
		},
	}
	r := NewOrderRefresher(facade, 5*time.Millisecond, 1, discardLogger())

	r.Start(context.Background())
	waitFor(t, time.Second, func() bool { return atomic.LoadInt32(&calls) >= 1 })
	time.Sleep(50 * time.Millisecond)
	r.Stop()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected refreshing to pause after rate limit, got %d calls", got)
	}
}

func TestOrderRefresherStartStopIdempotent(t *testing.T) {
	facade := &testhelpers.WorkerFacadeStub{}
	r := NewOrderRefresher(facade, time.Hour, 1, discardLogger())

	r.Start(context.Background())
	r.Start(context.Background())
	waitFor(t, time.Second, func() bool {
		facade.Lock()
		defer facade.Unlock()
		return facade.BulkCalls > 0
	})
	r.Stop()
	r.Stop()

	facade.Lock()
	defer facade.Unlock()
	if facade.BulkCalls != 1 {
		t.Fatalf("expected a single bootstrap, got %d", facade.BulkCalls)
	}
}

func TestOrderRefresherOutlivesStartContext(t *testing.T) {
	facade := &testhelpers.WorkerFacadeStub{IDs: []string{"a"}}
	r := NewOrderRefresher(facade, 5*time.Millisecond, 1, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)
	cancel()

	waitFor(t, time.Second, func() bool {
		facade.Lock()
		defer facade.Unlock()
		return len(facade.Refreshed) > 0
	})
	r.Stop()
}

func TestBootstrapRunsBothRefreshesOnFailure(t *testing.T) {
	facade := &testhelpers.WorkerFacadeStub{BulkErr: errors.New("boom")}
	r := NewOrderRefresher(facade, time.Hour, 1, discardLogger())

	if err := r.Bootstrap(context.Background()); err == nil {
		t.Fatal("expected bootstrap error")
	}

	facade.Lock()
	defer facade.Unlock()
	if facade.BulkCalls != 1 || facade.InfoCalls != 1 {
		t.Fatalf("expected both refreshes to run, got %d/%d", facade.BulkCalls, facade.InfoCalls)
	}
}

package test

import (
	"context"
	"sync"
)

// WorkerFacadeStub implements the refresher facade for worker tests.
type WorkerFacadeStub struct {
	sync.Mutex

	IDs            []string
	RefreshOrderFn func(ctx context.Context, id string) error
	BulkErr        error
	InfoErr        error
	RatesErr       error

	Refreshed  []string
	BulkCalls  int
	InfoCalls  int
	RatesCalls int
}

// CachedOrderIDs returns configured ids.
func (s *WorkerFacadeStub) CachedOrderIDs() []string {
	s.Lock()
	defer s.Unlock()
	return append([]string(nil), s.IDs...)
}

// RefreshOrder records the id and delegates to override when set.
func (s *WorkerFacadeStub) RefreshOrder(ctx context.Context, id string) error {
	s.Lock()
	s.Refreshed = append(s.Refreshed, id)
	fn := s.RefreshOrderFn
	s.Unlock()
	if fn != nil {
		return fn(ctx, id)
	}
	return nil
}

// RefreshOrders counts bulk refreshes.
func (s *WorkerFacadeStub) RefreshOrders(context.Context) error {
	s.Lock()
	defer s.Unlock()
	s.BulkCalls++
	return s.BulkErr
}

// RefreshInfo counts info refreshes.
func (s *WorkerFacadeStub) RefreshInfo(context.Context) error {
	s.Lock()
	defer s.Unlock()
	s.InfoCalls++
	return s.InfoErr
}

// RefreshExchangeRates counts rate refreshes.
func (s *WorkerFacadeStub) RefreshExchangeRates(context.Context) error {
	s.Lock()
	defer s.Unlock()
	s.RatesCalls++
	return s.RatesErr
}

package store

import (
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/chanorders/internal/domain/errors"
	"github.com/polkiloo/chanorders/internal/domain/model"
)

// Store is the state container of one application session.
type Store struct {
	orders *OrderCache

	mu             sync.Mutex
	states         map[model.ResourceClass]model.RequestState
	info           model.Info
	rates          model.ExchangeRates
	currency       model.FiatCurrency
	currentOrderID string
	version        uint64
	listeners      listeners
	closed         bool
}

// New creates a store with every resource class idle. Unsupported currencies fall back to USD.
func New(currency model.FiatCurrency) *Store {
	if !currency.Valid() {
		currency = model.CurrencyUSD
	}
	s := &Store{
		orders:   NewOrderCache(),
		states:   make(map[model.ResourceClass]model.RequestState, len(model.ResourceClasses)),
		rates:    model.ExchangeRates{},
		currency: currency,
	}
	for _, c := range model.ResourceClasses {
		s.states[c] = model.RequestIdle
	}
	s.orders.Subscribe(s.forward)
	return s
}

// Orders exposes the order cache.
func (s *Store) Orders() *OrderCache {
	return s.orders
}

// ResourceState returns the state of the last settled request for class.
func (s *Store) ResourceState(class model.ResourceClass) model.RequestState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[class]; ok {
		return st
	}
	return model.RequestIdle
}

// SetResourceState overwrites the flag of class. The last writer wins.
func (s *Store) SetResourceState(class model.ResourceClass, state model.RequestState) {
	s.mutate(Change{Kind: ChangeResourceState, Class: class}, func() bool {
		if s.states[class] == state {
			return false
		}
		s.states[class] = state
		return true
	})
}

// Info returns a copy of the cached service info.
func (s *Store) Info() model.Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneInfo(s.info)
}

// SetInfo replaces the cached service info wholesale.
func (s *Store) SetInfo(info model.Info) {
	s.mutate(Change{Kind: ChangeInfo, Class: model.ResourceInfo}, func() bool {
		s.info = cloneInfo(info)
		return true
	})
}

// ExchangeRates returns a copy of the cached rate table.
func (s *Store) ExchangeRates() model.ExchangeRates {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rates.Clone()
}

// SetExchangeRates replaces the cached rate table wholesale.
func (s *Store) SetExchangeRates(rates model.ExchangeRates) {
	s.mutate(Change{Kind: ChangeExchangeRates, Class: model.ResourceExchangeRates}, func() bool {
		s.rates = rates.Clone()
		return true
	})
}

// Currency returns the selected display currency.
func (s *Store) Currency() model.FiatCurrency {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currency
}

// SetCurrency selects the display currency.
func (s *Store) SetCurrency(currency model.FiatCurrency) error {
	if !currency.Valid() {
		return domainErrors.ErrUnsupportedCurrency
	}
	s.mutate(Change{Kind: ChangeSettings}, func() bool {
		if s.currency == currency {
			return false
		}
		s.currency = currency
		return true
	})
	return nil
}

// CurrentOrderID returns the order the user is looking at, if any.
func (s *Store) CurrentOrderID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentOrderID
}

// SetCurrentOrderID records the order the user navigated to.
func (s *Store) SetCurrentOrderID(id string) {
	s.mutate(Change{Kind: ChangeNavigation, OrderID: id}, func() bool {
		if s.currentOrderID == id {
			return false
		}
		s.currentOrderID = id
		return true
	})
}

// ConvertSats converts an amount in satoshis into the selected currency.
func (s *Store) ConvertSats(sats int64) (decimal.Decimal, error) {
	s.mu.Lock()
	rate, ok := s.rates[string(s.currency)]
	s.mu.Unlock()
	if !ok {
		return decimal.Zero, domainErrors.ErrRateUnavailable
	}
	return decimal.New(sats, -8).Mul(rate).Round(2), nil
}

// Version increases with every change of the store, order cache included.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Subscribe registers fn for every change in the store, order cache included.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.listeners.add(fn)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners.items, id)
			s.mu.Unlock()
		})
	}
}

// Close detaches all subscribers. The store stays readable afterwards.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.listeners = listeners{}
	s.mu.Unlock()
}

func (s *Store) mutate(ch Change, apply func() bool) {
	s.mu.Lock()
	if !apply() {
		s.mu.Unlock()
		return
	}
	s.version++
	ch.Version = s.version
	fns := s.listeners.snapshot()
	s.mu.Unlock()

	notify(fns, ch)
}

func (s *Store) forward(ch Change) {
	s.mu.Lock()
	s.version++
	ch.Version = s.version
	fns := s.listeners.snapshot()
	s.mu.Unlock()
	notify(fns, ch)
}

func cloneInfo(info model.Info) model.Info {
	info.Services = slices.Clone(info.Services)
	info.NodeInfo.URIs = slices.Clone(info.NodeInfo.URIs)
	return info
}

package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/chanorders/internal/domain/errors"
	"github.com/polkiloo/chanorders/internal/domain/model"
)

func TestNewStoreDefaults(t *testing.T) {
	s := New("")
	for _, c := range model.ResourceClasses {
		require.Equal(t, model.RequestIdle, s.ResourceState(c))
	}
	require.Equal(t, model.CurrencyUSD, s.Currency())
	require.Empty(t, s.Orders().ListAll())
	require.Empty(t, s.Info().Services)
	require.Empty(t, s.ExchangeRates())
	require.Equal(t, model.RequestIdle, s.ResourceState("unknown"))
}

func TestResourceStateLastWriteWins(t *testing.T) {
	s := New(model.CurrencyEUR)
	s.SetResourceState(model.ResourceOrders, model.RequestLoading)
	s.SetResourceState(model.ResourceOrders, model.RequestLoading)
	s.SetResourceState(model.ResourceOrders, model.RequestIdle)
	s.SetResourceState(model.ResourceOrders, model.RequestError)

	require.Equal(t, model.RequestError, s.ResourceState(model.ResourceOrders))
	require.Equal(t, model.RequestIdle, s.ResourceState(model.ResourceInfo))
	require.Equal(t, uint64(3), s.Version())
}

func TestInfoIsCopied(t *testing.T) {
	s := New(model.CurrencyUSD)
	info := model.Info{
		Capacity: model.Capacity{LocalBalance: 10, RemoteBalance: 20},
		Services: []model.Service{{ProductID: "p1", Available: true}},
		NodeInfo: model.NodeInfo{Alias: "node", URIs: []string{"uri"}},
	}
	s.SetInfo(info)
	info.Services[0].ProductID = "mutated"

	got := s.Info()
	require.Equal(t, "p1", got.Services[0].ProductID)
	got.NodeInfo.URIs[0] = "mutated"
	require.Equal(t, "uri", s.Info().NodeInfo.URIs[0])
}

func TestSetCurrency(t *testing.T) {
	s := New(model.CurrencyUSD)
	require.NoError(t, s.SetCurrency(model.CurrencyGBP))
	require.Equal(t, model.CurrencyGBP, s.Currency())
	require.ErrorIs(t, s.SetCurrency("DOGE"), domainErrors.ErrUnsupportedCurrency)
	require.Equal(t, model.CurrencyGBP, s.Currency())
}

func TestConvertSats(t *testing.T) {
	s := New(model.CurrencyUSD)
	_, err := s.ConvertSats(1000)
	require.ErrorIs(t, err, domainErrors.ErrRateUnavailable)

	s.SetExchangeRates(model.ExchangeRates{"USD": decimal.NewFromInt(50000)})
	got, err := s.ConvertSats(150000)
	require.NoError(t, err)
	require.True(t, got.Equal(decimal.RequireFromString("75")), "got %s", got)

	require.NoError(t, s.SetCurrency(model.CurrencyEUR))
	_, err = s.ConvertSats(1)
	require.ErrorIs(t, err, domainErrors.ErrRateUnavailable)
}

func TestStoreForwardsOrderChanges(t *testing.T) {
	s := New(model.CurrencyUSD)
	var kinds []ChangeKind
	s.Subscribe(func(ch Change) { kinds = append(kinds, ch.Kind) })

	s.Orders().Upsert(model.OrderRecord{ID: "o1", CreatedAt: 1})
	s.SetResourceState(model.ResourceInfo, model.RequestLoading)
	s.SetCurrentOrderID("o1")
	s.Orders().Remove("o1")

	require.Equal(t, []ChangeKind{ChangeOrderUpserted, ChangeResourceState, ChangeNavigation, ChangeOrderRemoved}, kinds)
	require.Equal(t, "o1", s.CurrentOrderID())
}

func TestCloseDetachesListeners(t *testing.T) {
	s := New(model.CurrencyUSD)
	calls := 0
	s.Subscribe(func(Change) { calls++ })

	s.Close()
	s.Close()
	s.Orders().Upsert(model.OrderRecord{ID: "o1"})
	s.SetInfo(model.Info{})

	require.Zero(t, calls)
	require.Equal(t, 1, s.Orders().Len())
}

func TestVersionTracksOrderChanges(t *testing.T) {
	s := New(model.CurrencyUSD)
	var versions []uint64
	s.Subscribe(func(ch Change) { versions = append(versions, ch.Version) })

	s.Orders().Upsert(model.OrderRecord{ID: "o1", CreatedAt: 1})
	afterUpsert := s.Version()
	s.Orders().Remove("o1")

	require.Equal(t, uint64(1), afterUpsert)
	require.Equal(t, uint64(2), s.Version())
	require.Equal(t, []uint64{1, 2}, versions)

	s.Close()
	s.Orders().Upsert(model.OrderRecord{ID: "o2", CreatedAt: 2})
	require.Equal(t, uint64(3), s.Version())
}

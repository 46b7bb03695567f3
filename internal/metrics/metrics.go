// Package metrics exposes Prometheus instrumentation for the refresh pipeline.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	domainErrors "github.com/polkiloo/chanorders/internal/domain/errors"
	"github.com/polkiloo/chanorders/internal/domain/model"
	"github.com/polkiloo/chanorders/internal/store"
)

const (
	OutcomeSuccess   = "success"
	OutcomeNotFound  = "not_found"
	OutcomeTransport = "transport_error"
	OutcomeOther     = "error"
)

type Registry struct {
	reg             *prometheus.Registry
	RefreshTotal    *prometheus.CounterVec
	RefreshDuration *prometheus.HistogramVec
	ResourceState   *prometheus.GaugeVec
	CachedOrders    prometheus.Gauge
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	refreshTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chanorders_refresh_total",
		Help: "Settled refresh attempts by resource class and outcome",
	}, []string{"class", "outcome"})
	refreshDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chanorders_refresh_duration_seconds",
		Help:    "Duration of refresh attempts against the remote authority",
		Buckets: prometheus.DefBuckets,
	}, []string{"class"})
	resourceState := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "chanorders_resource_state",
		Help: "1 for the current request state of each resource class",
	}, []string{"class", "state"})
	cachedOrders := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "chanorders_cached_orders",
		Help: "Number of orders held in the local cache",
	})

	r.MustRegister(refreshTotal, refreshDuration, resourceState, cachedOrders)
	return &Registry{
		reg:             r,
		RefreshTotal:    refreshTotal,
		RefreshDuration: refreshDuration,
		ResourceState:   resourceState,
		CachedOrders:    cachedOrders,
	}
}

// ObserveRefresh records a settled refresh attempt.
func (r *Registry) ObserveRefresh(class model.ResourceClass, err error, elapsed time.Duration) {
	r.RefreshTotal.WithLabelValues(string(class), outcome(err)).Inc()
	r.RefreshDuration.WithLabelValues(string(class)).Observe(elapsed.Seconds())
}

// Watch mirrors resource states and cache size of st until the returned function is called.
func (r *Registry) Watch(st *store.Store) func() {
	for _, c := range model.ResourceClasses {
		r.setState(c, st.ResourceState(c))
	}
	r.CachedOrders.Set(float64(st.Orders().Len()))

	return st.Subscribe(func(ch store.Change) {
		switch ch.Kind {
		case store.ChangeResourceState:
			r.setState(ch.Class, st.ResourceState(ch.Class))
		case store.ChangeOrderUpserted, store.ChangeOrderRemoved:
			r.CachedOrders.Set(float64(st.Orders().Len()))
		}
	})
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

func (r *Registry) setState(class model.ResourceClass, current model.RequestState) {
	for _, s := range []model.RequestState{model.RequestIdle, model.RequestLoading, model.RequestError} {
		v := 0.0
		if s == current {
			v = 1
		}
		r.ResourceState.WithLabelValues(string(class), string(s)).Set(v)
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, domainErrors.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, domainErrors.ErrTransport):
		return OutcomeTransport
	default:
		return OutcomeOther
	}
}

// Package metrics defines the Prometheus collectors of the market finder.
// Each Metrics owns its registry so tests and multiple servers never share
// global state. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "marketfinder"

// Metrics groups the collectors recorded by services and HTTP middleware.
type Metrics struct {
	registry *prometheus.Registry

	Lookups           *prometheus.CounterVec
	LookupResults     prometheus.Histogram
	SelectionRejected *prometheus.CounterVec
	SelectionApplied  *prometheus.CounterVec
	CacheEvents       *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	RateLimited       prometheus.Counter
}

// New registers all collectors on a fresh registry, along with the Go and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Carrier lookups by presentation stage.",
		}, []string{"stage"}),
		LookupResults: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lookup_result_carriers",
			Help:      "Number of carriers returned by complete lookups.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20},
		}),
		SelectionRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selection_rejections_total",
			Help:      "Selection commands ignored because the value was not valid.",
		}, []string{"field"}),
		SelectionApplied: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selection_commands_total",
			Help:      "Selection commands applied.",
		}, []string{"field"}),
		CacheEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Lookup cache hits, misses and errors.",
		}, []string{"event"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "status"}),
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests refused by the rate limiter.",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveLookup(stage string, carriers int, complete bool) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(stage).Inc()
	if complete {
		m.LookupResults.Observe(float64(carriers))
	}
}

func (m *Metrics) ObserveSelection(field string, applied bool) {
	if m == nil {
		return
	}
	if applied {
		m.SelectionApplied.WithLabelValues(field).Inc()
		return
	}
	m.SelectionRejected.WithLabelValues(field).Inc()
}

func (m *Metrics) ObserveCache(event string) {
	if m == nil {
		return
	}
	m.CacheEvents.WithLabelValues(event).Inc()
}

func (m *Metrics) ObserveRequest(route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveRateLimited() {
	if m == nil {
		return
	}
	m.RateLimited.Inc()
}

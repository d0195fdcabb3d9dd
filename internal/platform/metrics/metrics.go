package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/equity_management_app/internal/apperrors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "equity_backend"

// Valuation cache lookup outcomes.
const (
	CacheHit     = "hit"
	CacheMiss    = "miss"
	CacheBypass  = "bypass"
	CacheError   = "error"
	outcomeOK    = "OK"
	minObserved  = time.Microsecond
	labelUnknown = "unknown"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	equityOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "equity",
			Name:      "operations_total",
			Help:      "Equity mutations by operation and outcome (OK or error kind).",
		},
		[]string{"operation", "outcome"},
	)

	equityDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "equity",
			Name:      "operation_duration_seconds",
			Help:      "Duration of equity mutations including the store transaction.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"operation"},
	)

	valuationCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "valuation",
			Name:      "cache_lookups_total",
			Help:      "Valuation cache lookups by result.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		equityOperations,
		equityDuration,
		valuationCache,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// TrackInFlight increments the in-flight gauge and returns the matching decrement.
func TrackInFlight() func() {
	httpInFlight.Inc()
	return httpInFlight.Dec
}

// ObserveHTTPRequest records one completed request. route should be the matched route template.
func ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = labelUnknown
	}
	method = strings.ToUpper(method)
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordEquityOperation counts an equity mutation, labelling failures with their error kind.
func RecordEquityOperation(operation string, err error, duration time.Duration) {
	if duration <= 0 {
		duration = minObserved
	}
	outcome := outcomeOK
	if err != nil {
		outcome = apperrors.Kind(err)
	}
	equityOperations.WithLabelValues(operation, outcome).Inc()
	equityDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordValuationCache counts a cache lookup result (CacheHit, CacheMiss, CacheBypass, CacheError).
func RecordValuationCache(result string) {
	valuationCache.WithLabelValues(result).Inc()
}

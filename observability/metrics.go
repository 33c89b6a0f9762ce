package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Ledger metrics
	LedgerOpsTotal    *prometheus.CounterVec
	LedgerOpDuration  *prometheus.HistogramVec
	LedgerErrorsTotal *prometheus.CounterVec

	// Summary metrics
	SummaryComputationsTotal prometheus.Counter
	SummaryDuration          prometheus.Histogram
	SummaryFallbacksTotal    *prometheus.CounterVec

	// External API metrics
	ExternalAPIRequestsTotal *prometheus.CounterVec
	ExternalAPIErrorsTotal   *prometheus.CounterVec
	ExternalAPIDuration      *prometheus.HistogramVec

	// Price cache metrics
	PriceCacheHitsTotal   prometheus.Counter
	PriceCacheMissesTotal prometheus.Counter

	// Scanner metrics
	ScannerRunsTotal     prometheus.Counter
	ScannerDuration      prometheus.Histogram
	ScannerMatches       prometheus.Histogram
	ScannerSkippedTotal  *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Circuit breaker metrics
	CircuitBreakerState *prometheus.GaugeVec
	CircuitBreakerTrips *prometheus.CounterVec
}

// defaultBuckets are the default histogram buckets for duration metrics (in seconds)
var defaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// matchBuckets are histogram buckets for scanner match counts
var matchBuckets = []float64{0, 1, 2, 5, 10, 20, 50, 100}

// globalMetrics is the global metrics instance
var globalMetrics *Metrics

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	m := &Metrics{
		LedgerOpsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stockfolio",
				Subsystem: "ledger",
				Name:      "operations_total",
				Help:      "Total number of ledger operations",
			},
			[]string{"operation"},
		),
		LedgerOpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stockfolio",
				Subsystem: "ledger",
				Name:      "operation_duration_seconds",
				Help:      "Duration of ledger operations in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"operation"},
		),
		LedgerErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stockfolio",
				Subsystem: "ledger",
				Name:      "errors_total",
				Help:      "Total number of ledger operation errors",
			},
			[]string{"operation"},
		),

		SummaryComputationsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "stockfolio",
				Subsystem: "summary",
				Name:      "computations_total",
				Help:      "Total number of portfolio summary computations",
			},
		),
		SummaryDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "stockfolio",
				Subsystem: "summary",
				Name:      "duration_seconds",
				Help:      "Duration of portfolio summary computations in seconds",
				Buckets:   defaultBuckets,
			},
		),
		SummaryFallbacksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stockfolio",
				Subsystem: "summary",
				Name:      "price_fallbacks_total",
				Help:      "Summary computations that used the purchase price because no live quote was available",
			},
			[]string{"ticker"},
		),

		ExternalAPIRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stockfolio",
				Subsystem: "external_api",
				Name:      "requests_total",
				Help:      "Total number of external API requests",
			},
			[]string{"service", "operation"},
		),
		ExternalAPIErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stockfolio",
				Subsystem: "external_api",
				Name:      "errors_total",
				Help:      "Total number of external API errors",
			},
			[]string{"service", "operation"},
		),
		ExternalAPIDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stockfolio",
				Subsystem: "external_api",
				Name:      "duration_seconds",
				Help:      "Duration of external API calls in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"service", "operation"},
		),

		PriceCacheHitsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "stockfolio",
				Subsystem: "price_cache",
				Name:      "hits_total",
				Help:      "Total number of price cache hits",
			},
		),
		PriceCacheMissesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "stockfolio",
				Subsystem: "price_cache",
				Name:      "misses_total",
				Help:      "Total number of price cache misses",
			},
		),

		ScannerRunsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "stockfolio",
				Subsystem: "scanner",
				Name:      "runs_total",
				Help:      "Total number of scanner runs",
			},
		),
		ScannerDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "stockfolio",
				Subsystem: "scanner",
				Name:      "duration_seconds",
				Help:      "Duration of scanner runs in seconds",
				Buckets:   defaultBuckets,
			},
		),
		ScannerMatches: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "stockfolio",
				Subsystem: "scanner",
				Name:      "matches",
				Help:      "Distribution of match counts per scanner run",
				Buckets:   matchBuckets,
			},
		),
		ScannerSkippedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stockfolio",
				Subsystem: "scanner",
				Name:      "skipped_total",
				Help:      "Tickers excluded from scanner results because their lookup failed",
			},
			[]string{"ticker"},
		),

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stockfolio",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stockfolio",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"method", "path"},
		),

		CircuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "stockfolio",
				Subsystem: "circuit_breaker",
				Name:      "state",
				Help:      "Current state of circuit breakers (0=closed, 1=half-open, 2=open)",
			},
			[]string{"service"},
		),
		CircuitBreakerTrips: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stockfolio",
				Subsystem: "circuit_breaker",
				Name:      "trips_total",
				Help:      "Total number of circuit breaker trips",
			},
			[]string{"service"},
		),
	}

	return m
}

// InitMetrics initializes the global metrics instance
func InitMetrics() *Metrics {
	globalMetrics = NewMetrics(nil)
	return globalMetrics
}

// GetMetrics returns the global metrics instance
func GetMetrics() *Metrics {
	if globalMetrics == nil {
		return InitMetrics()
	}
	return globalMetrics
}

// RecordLedgerOp records a ledger operation and its duration
func (m *Metrics) RecordLedgerOp(operation string, duration time.Duration) {
	m.LedgerOpsTotal.WithLabelValues(operation).Inc()
	m.LedgerOpDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordLedgerError records a ledger operation error
func (m *Metrics) RecordLedgerError(operation string) {
	m.LedgerErrorsTotal.WithLabelValues(operation).Inc()
}

// RecordSummary records a summary computation
func (m *Metrics) RecordSummary(duration time.Duration) {
	m.SummaryComputationsTotal.Inc()
	m.SummaryDuration.Observe(duration.Seconds())
}

// RecordSummaryFallback records a purchase-price fallback during a summary
func (m *Metrics) RecordSummaryFallback(ticker string) {
	m.SummaryFallbacksTotal.WithLabelValues(ticker).Inc()
}

// RecordExternalAPIRequest records an external API request
func (m *Metrics) RecordExternalAPIRequest(service, operation string) {
	m.ExternalAPIRequestsTotal.WithLabelValues(service, operation).Inc()
}

// RecordExternalAPIError records an external API error
func (m *Metrics) RecordExternalAPIError(service, operation string) {
	m.ExternalAPIErrorsTotal.WithLabelValues(service, operation).Inc()
}

// RecordExternalAPIDuration records the duration of an external API call
func (m *Metrics) RecordExternalAPIDuration(service, operation string, duration time.Duration) {
	m.ExternalAPIDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

// RecordPriceCacheHit records a price cache hit
func (m *Metrics) RecordPriceCacheHit() {
	m.PriceCacheHitsTotal.Inc()
}

// RecordPriceCacheMiss records a price cache miss
func (m *Metrics) RecordPriceCacheMiss() {
	m.PriceCacheMissesTotal.Inc()
}

// RecordScannerRun records a completed scanner run
func (m *Metrics) RecordScannerRun(duration time.Duration, matches int) {
	m.ScannerRunsTotal.Inc()
	m.ScannerDuration.Observe(duration.Seconds())
	m.ScannerMatches.Observe(float64(matches))
}

// RecordScannerSkip records a ticker excluded by a failed lookup
func (m *Metrics) RecordScannerSkip(ticker string) {
	m.ScannerSkippedTotal.WithLabelValues(ticker).Inc()
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// SetCircuitBreakerState sets the current state of a circuit breaker
func (m *Metrics) SetCircuitBreakerState(service string, state int) {
	m.CircuitBreakerState.WithLabelValues(service).Set(float64(state))
}

// RecordCircuitBreakerTrip records a circuit breaker trip
func (m *Metrics) RecordCircuitBreakerTrip(service string) {
	m.CircuitBreakerTrips.WithLabelValues(service).Inc()
}

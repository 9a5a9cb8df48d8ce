package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "airtime"

type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPRequestsInFlight  prometheus.Gauge
	HTTPResponseSizeBytes *prometheus.HistogramVec

	// Business Metrics
	SessionsIssued        prometheus.Counter
	SessionIssueErrors    *prometheus.CounterVec
	TopUpsTotal           *prometheus.CounterVec
	TopUpAmountTotal      prometheus.Counter
	ProviderCallDuration  *prometheus.HistogramVec
	AuditEntriesPublished prometheus.Counter
	AuditPublishErrors    prometheus.Counter

	// Database Metrics
	DBConnectionsInUse prometheus.Gauge
	DBConnectionsIdle  prometheus.Gauge
	DBQueryDuration    *prometheus.HistogramVec
	DBQueriesTotal     *prometheus.CounterVec
	DBConnectionErrors prometheus.Counter

	// System Metrics
	ServiceUptime    prometheus.Gauge
	ServiceVersion   *prometheus.GaugeVec
	Goroutines       prometheus.Gauge
	MemoryUsageBytes *prometheus.GaugeVec

	// Validation Metrics
	ValidationErrors   *prometheus.CounterVec
	ValidationDuration *prometheus.HistogramVec
}

// NewMetrics registers every collector on reg. Binaries pass
// prometheus.DefaultRegisterer; tests pass a fresh registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Number of HTTP requests currently being served",
			},
		),
		HTTPResponseSizeBytes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_response_size_bytes",
				Help:      "Size of HTTP responses in bytes",
				Buckets:   []float64{100, 1000, 10_000, 100_000, 1_000_000},
			},
			[]string{"method", "path", "status_code"},
		),

		SessionsIssued: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions_issued_total",
				Help:      "Total number of customer sessions issued",
			},
		),
		SessionIssueErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "session_issue_errors_total",
				Help:      "Total number of failed session issuances",
			},
			[]string{"reason"},
		),
		TopUpsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "topups_total",
				Help:      "Total number of top-up requests by outcome",
			},
			[]string{"outcome"},
		),
		TopUpAmountTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "topup_amount_total",
				Help:      "Sum of successfully topped-up amounts in the smallest currency unit",
			},
		),
		ProviderCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "provider_call_duration_seconds",
				Help:      "Duration of calls to the airtime provider",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"operation", "result"},
		),
		AuditEntriesPublished: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "audit_entries_published_total",
				Help:      "Total number of audit entries published to the broker",
			},
		),
		AuditPublishErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "audit_publish_errors_total",
				Help:      "Total number of audit entries that failed to publish",
			},
		),

		DBConnectionsInUse: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_connections_in_use",
				Help:      "Number of database connections currently in use",
			},
		),
		DBConnectionsIdle: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_connections_idle",
				Help:      "Number of idle database connections",
			},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "db_query_duration_seconds",
				Help:      "Duration of database queries in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"operation", "table"},
		),
		DBQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "db_queries_total",
				Help:      "Total number of database queries",
			},
			[]string{"operation", "table", "status"},
		),
		DBConnectionErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "db_connection_errors_total",
				Help:      "Total number of database connection errors",
			},
		),

		ServiceUptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "service_uptime_seconds",
				Help:      "Service uptime in seconds",
			},
		),
		ServiceVersion: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "service_version_info",
				Help:      "Service version information (labels: version, commit, build_date)",
			},
			[]string{"version", "commit", "build_date"},
		),
		Goroutines: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "goroutines",
				Help:      "Number of goroutines currently running",
			},
		),
		MemoryUsageBytes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "memory_usage_bytes",
				Help:      "Memory usage in bytes",
			},
			[]string{"type"},
		),

		ValidationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_errors_total",
				Help:      "Total number of validation errors",
			},
			[]string{"field", "tag"},
		),
		ValidationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "validation_duration_seconds",
				Help:      "Duration of validation operations in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"endpoint"},
		),
	}
}

// --- Recording Methods ---
// All recorders accept a nil receiver so callers that run without metrics
// (workers, tests) need no guards.

func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration, responseSize int) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration.Seconds())
	m.HTTPResponseSizeBytes.WithLabelValues(method, path, statusCode).Observe(float64(responseSize))
}

func (m *Metrics) RecordSessionIssued() {
	if m == nil {
		return
	}
	m.SessionsIssued.Inc()
}

func (m *Metrics) RecordSessionIssueError(reason string) {
	if m == nil {
		return
	}
	m.SessionIssueErrors.WithLabelValues(reason).Inc()
}

func (m *Metrics) RecordTopUp(outcome string, amount int64) {
	if m == nil {
		return
	}
	m.TopUpsTotal.WithLabelValues(outcome).Inc()
	if outcome == "SUCCEEDED" {
		m.TopUpAmountTotal.Add(float64(amount))
	}
}

func (m *Metrics) RecordProviderCall(operation, result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.ProviderCallDuration.WithLabelValues(operation, result).Observe(duration.Seconds())
}

func (m *Metrics) RecordAuditPublished() {
	if m == nil {
		return
	}
	m.AuditEntriesPublished.Inc()
}

func (m *Metrics) RecordAuditPublishError() {
	if m == nil {
		return
	}
	m.AuditPublishErrors.Inc()
}

func (m *Metrics) RecordDBQuery(operation, table, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.DBQueriesTotal.WithLabelValues(operation, table, status).Inc()
	m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

func (m *Metrics) RecordDBConnectionError() {
	if m == nil {
		return
	}
	m.DBConnectionErrors.Inc()
}

func (m *Metrics) RecordValidationError(field, tag string) {
	if m == nil {
		return
	}
	m.ValidationErrors.WithLabelValues(field, tag).Inc()
}

func (m *Metrics) RecordValidationDuration(endpoint string, duration time.Duration) {
	if m == nil {
		return
	}
	m.ValidationDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// UpdateSystemMetrics updates system-level metrics (goroutines, uptime, memory).
func (m *Metrics) UpdateSystemMetrics(uptime time.Duration, memStats *runtime.MemStats) {
	m.ServiceUptime.Set(uptime.Seconds())
	m.Goroutines.Set(float64(runtime.NumGoroutine()))

	m.MemoryUsageBytes.WithLabelValues("alloc").Set(float64(memStats.Alloc))
	m.MemoryUsageBytes.WithLabelValues("sys").Set(float64(memStats.Sys))
	m.MemoryUsageBytes.WithLabelValues("heap_alloc").Set(float64(memStats.HeapAlloc))
	m.MemoryUsageBytes.WithLabelValues("heap_inuse").Set(float64(memStats.HeapInuse))
}

// SetServiceVersion sets the service version information (only once per start).
func (m *Metrics) SetServiceVersion(version, commit, buildDate string) {
	m.ServiceVersion.WithLabelValues(version, commit, buildDate).Set(1)
}

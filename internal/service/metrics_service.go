package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/enrollplus-admin/internal/models"
)

// Mutation outcomes recorded by the table services.
const (
	OutcomeSuccess  = "success"
	OutcomeInvalid  = "invalid"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
	OutcomeNoop     = "noop"
	OutcomePending  = "pending"
)

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots for API consumption.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	listViews       *prometheus.CounterVec
	listResultSize  *prometheus.HistogramVec
	mutations       *prometheus.CounterVec
	confirmations   *prometheus.CounterVec
	sessions        prometheus.Gauge

	requestCount         uint64
	requestDurationTotal uint64
	listViewCount        uint64
	mutationCount        uint64
	confirmationCount    uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	listViews := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "list_views_total",
		Help: "Total number of list view recomputations",
	}, []string{"table"})

	listResultSize := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "list_filtered_items",
		Help:    "Number of records matching the active search and filters",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
	}, []string{"table"})

	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "list_mutations_total",
		Help: "Total number of record mutations by outcome",
	}, []string{"table", "kind", "outcome"})

	confirmations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "confirmations_total",
		Help: "Total number of resolved confirmations by kind and status",
	}, []string{"kind", "status"})

	sessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "admin_sessions_active",
		Help: "Number of initialised admin sessions",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, listViews, listResultSize, mutations, confirmations, sessions, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		listViews:       listViews,
		listResultSize:  listResultSize,
		mutations:       mutations,
		confirmations:   confirmations,
		sessions:        sessions,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveListView records one recomputation and the size of its filtered set.
func (m *MetricsService) ObserveListView(table string, matched int) {
	if m == nil {
		return
	}
	m.listViews.WithLabelValues(table).Inc()
	m.listResultSize.WithLabelValues(table).Observe(float64(matched))
	atomic.AddUint64(&m.listViewCount, 1)
}

// RecordMutation counts an add, update, toggle, close or delete attempt.
func (m *MetricsService) RecordMutation(table, kind, outcome string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(table, kind, outcome).Inc()
	atomic.AddUint64(&m.mutationCount, 1)
}

// RecordConfirmation counts a confirmation leaving the pending state.
func (m *MetricsService) RecordConfirmation(kind models.ConfirmationKind, status models.ConfirmationStatus) {
	if m == nil {
		return
	}
	m.confirmations.WithLabelValues(string(kind), string(status)).Inc()
	atomic.AddUint64(&m.confirmationCount, 1)
}

// SetActiveSessions updates the session gauge.
func (m *MetricsService) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.sessions.Set(float64(n))
}

// Snapshot returns aggregated metrics suitable for JSON endpoints.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	return models.SystemMetrics{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		ListViewsTotal:           atomic.LoadUint64(&m.listViewCount),
		MutationsTotal:           atomic.LoadUint64(&m.mutationCount),
		ConfirmationsResolved:    atomic.LoadUint64(&m.confirmationCount),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}

package metrics

import (
	"sync"
	"time"

	"github.com/Pyons/cypht/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ensure Metrics implements Recorder interface at compile time
var _ core.Recorder = (*Metrics)(nil)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	AuthAttemptsTotal       *prometheus.CounterVec
	AuthDuration            *prometheus.HistogramVec
	BackendUnreachableTotal *prometheus.CounterVec
	AccountOperationsTotal  *prometheus.CounterVec
	SessionExportsTotal     *prometheus.CounterVec
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Init initializes metrics based on enabled flag
// If enabled=true, returns Prometheus-based Metrics
// If enabled=false, returns NoopMetrics (zero overhead)
// Uses sync.Once to ensure Prometheus metrics are only registered once
func Init(enabled bool) core.Recorder {
	if !enabled {
		return NewNoopMetrics()
	}

	once.Do(func() {
		defaultMetrics = initMetrics()
	})
	return defaultMetrics
}

func initMetrics() *Metrics {
	return &Metrics{
		AuthAttemptsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cypht_auth_attempts_total",
				Help: "Total number of credential verification attempts",
			},
			[]string{"backend", "result"}, // result: success, failure
		),
		AuthDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cypht_auth_duration_seconds",
				Help:    "Time taken to verify credentials",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"backend"},
		),
		BackendUnreachableTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cypht_auth_backend_unreachable_total",
				Help: "Total number of attempts that failed to reach the backend server",
			},
			[]string{"backend"},
		),
		AccountOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cypht_account_operations_total",
				Help: "Total number of local account management operations",
			},
			[]string{"operation", "result"}, // operation: create, delete, change_password
		),
		SessionExportsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cypht_auth_session_exports_total",
				Help: "Total number of connection settings records exported to sessions",
			},
			[]string{"backend"},
		),
	}
}

func (m *Metrics) RecordAuthAttempt(backend string, success bool, duration time.Duration) {
	m.AuthAttemptsTotal.WithLabelValues(backend, resultLabel(success)).Inc()
	m.AuthDuration.WithLabelValues(backend).Observe(duration.Seconds())
}

func (m *Metrics) RecordBackendUnreachable(backend string) {
	m.BackendUnreachableTotal.WithLabelValues(backend).Inc()
}

func (m *Metrics) RecordAccountOperation(operation string, success bool) {
	m.AccountOperationsTotal.WithLabelValues(operation, resultLabel(success)).Inc()
}

func (m *Metrics) RecordSessionExport(backend string) {
	m.SessionExportsTotal.WithLabelValues(backend).Inc()
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

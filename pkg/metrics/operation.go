package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wandermart"

// OperationMetrics records latency and outcome for every facade call.
type OperationMetrics struct {
	duration *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
}

// NewOperationMetrics registers the operation metrics on the provided registerer.
func NewOperationMetrics(reg prometheus.Registerer) *OperationMetrics {
	if reg == nil {
		return &OperationMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "operation_duration_seconds",
		Help:      "Duration of marketplace operations in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operation_total",
		Help:      "Marketplace operations by result code.",
	}, []string{"operation", "code"})
	reg.MustRegister(duration, outcomes)
	return &OperationMetrics{duration: duration, outcomes: outcomes}
}

// Observe records one call. code is "ok" for successful calls.
func (m *OperationMetrics) Observe(operation string, elapsed time.Duration, code string) {
	if m == nil || m.duration == nil {
		return
	}
	operation = normalizeLabel(operation)
	m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
	m.outcomes.WithLabelValues(operation, normalizeLabel(code)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

// collectionLabel strips per-record suffixes ("session:<id>") to keep
// label cardinality bounded.
func collectionLabel(key string) string {
	if idx := strings.IndexByte(key, ':'); idx >= 0 {
		key = key[:idx]
	}
	return normalizeLabel(key)
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

// NotificationMetrics counts dispatched notifications per severity.
type NotificationMetrics struct {
	dispatched *prometheus.CounterVec
	failed     prometheus.Counter
}

func NewNotificationMetrics(reg prometheus.Registerer) *NotificationMetrics {
	if reg == nil {
		return &NotificationMetrics{}
	}
	dispatched := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dispatched_total",
		Help:      "Notifications appended to recipient inboxes.",
	}, []string{"severity"})
	failed := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_failed_total",
		Help:      "Notifications that could not be persisted.",
	})
	reg.MustRegister(dispatched, failed)
	return &NotificationMetrics{dispatched: dispatched, failed: failed}
}

func (n *NotificationMetrics) IncDispatched(severity string) {
	if n == nil || n.dispatched == nil {
		return
	}
	n.dispatched.WithLabelValues(normalizeLabel(severity)).Inc()
}

func (n *NotificationMetrics) IncFailed() {
	if n == nil || n.failed == nil {
		return
	}
	n.failed.Inc()
}

// Dispatched exposes the per-severity counter for assertions.
func (n *NotificationMetrics) Dispatched(severity string) prometheus.Counter {
	return n.dispatched.WithLabelValues(normalizeLabel(severity))
}

func (n *NotificationMetrics) Failed() prometheus.Counter {
	return n.failed
}

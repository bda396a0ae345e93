package metrics

import "github.com/prometheus/client_golang/prometheus"

// StoreMetrics tracks key-value store traffic and optimistic write conflicts.
type StoreMetrics struct {
	ops       *prometheus.CounterVec
	conflicts *prometheus.CounterVec
}

func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_operations_total",
		Help:      "Key-value store calls by operation and result.",
	}, []string{"op", "collection", "result"})
	conflicts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_revision_conflicts_total",
		Help:      "Conditional writes rejected because the revision moved.",
	}, []string{"collection"})
	reg.MustRegister(ops, conflicts)
	return &StoreMetrics{ops: ops, conflicts: conflicts}
}

func (s *StoreMetrics) RecordOp(op, key, result string) {
	if s == nil || s.ops == nil {
		return
	}
	s.ops.WithLabelValues(normalizeLabel(op), collectionLabel(key), normalizeLabel(result)).Inc()
}

func (s *StoreMetrics) IncConflict(key string) {
	if s == nil || s.conflicts == nil {
		return
	}
	s.conflicts.WithLabelValues(collectionLabel(key)).Inc()
}

package kv

import (
	"context"
	"errors"

	"github.com/angelmondragon/wandermart-backend/pkg/metrics"
)

type instrumented struct {
	next    Store
	metrics *metrics.StoreMetrics
}

// Instrument wraps a store so every call is counted.
func Instrument(next Store, m *metrics.StoreMetrics) Store {
	if m == nil {
		return next
	}
	return &instrumented{next: next, metrics: m}
}

func (s *instrumented) Get(ctx context.Context, key string) (Entry, error) {
	entry, err := s.next.Get(ctx, key)
	s.metrics.RecordOp("get", key, result(err))
	return entry, err
}

func (s *instrumented) Put(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	rev, err := s.next.Put(ctx, key, value, expected)
	if errors.Is(err, ErrRevisionConflict) {
		s.metrics.IncConflict(key)
	}
	s.metrics.RecordOp("put", key, result(err))
	return rev, err
}

func (s *instrumented) Delete(ctx context.Context, key string) error {
	err := s.next.Delete(ctx, key)
	s.metrics.RecordOp("delete", key, result(err))
	return err
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrRevisionConflict):
		return "conflict"
	default:
		return "error"
	}
}

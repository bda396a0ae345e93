package kv

import (
	"context"
	"encoding/json"
	"errors"

	pkgerrors "github.com/angelmondragon/wandermart-backend/pkg/errors"
)

// ErrNoChange may be returned from an Update callback to skip the write
// while still reporting success.
var ErrNoChange = errors.New("kv: no change")

// Read decodes the document stored at key. Absent keys and payloads that no
// longer decode into T yield def. The returned revision is the one to pass
// back to Put.
func Read[T any](ctx context.Context, s Store, key string, def T) (T, int64, error) {
	entry, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return def, 0, nil
	}
	if err != nil {
		return def, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read "+key)
	}
	var out T
	if err := json.Unmarshal(entry.Value, &out); err != nil {
		return def, entry.Revision, nil
	}
	return out, entry.Revision, nil
}

// Write stores v at key regardless of what is there.
func Write[T any](ctx context.Context, s Store, key string, v T, attempts int) error {
	_, err := Update(ctx, s, key, v, attempts, func(T) (T, error) { return v, nil })
	return err
}

// Update runs an optimistic read-modify-write. fn may be invoked more than
// once and must not have side effects outside its return value. When every
// attempt loses the race a REVISION_CONFLICT error is returned.
func Update[T any](ctx context.Context, s Store, key string, def T, attempts int, fn func(T) (T, error)) (T, error) {
	if attempts <= 0 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return def, err
		}
		current, rev, err := Read(ctx, s, key, def)
		if err != nil {
			return def, err
		}
		next, err := fn(current)
		if errors.Is(err, ErrNoChange) {
			return current, nil
		}
		if err != nil {
			return current, err
		}
		payload, err := json.Marshal(next)
		if err != nil {
			return current, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode "+key)
		}
		if _, err := s.Put(ctx, key, payload, rev); err != nil {
			if errors.Is(err, ErrRevisionConflict) {
				continue
			}
			return current, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write "+key)
		}
		return next, nil
	}
	return def, pkgerrors.Newf(pkgerrors.CodeRevisionConflict, "%s kept changing, gave up after %d attempts", key, attempts)
}

// Slot binds a key to a document type so repositories do not repeat the
// key, default and retry budget at every call site.
type Slot[T any] struct {
	store    Store
	key      string
	attempts int
}

func NewSlot[T any](store Store, key string, attempts int) *Slot[T] {
	return &Slot[T]{store: store, key: key, attempts: attempts}
}

func (s *Slot[T]) Key() string { return s.key }

// Load returns the current document, or the zero value of T when absent.
func (s *Slot[T]) Load(ctx context.Context) (T, error) {
	var zero T
	v, _, err := Read(ctx, s.store, s.key, zero)
	return v, err
}

// Mutate applies fn under optimistic concurrency and returns the stored result.
func (s *Slot[T]) Mutate(ctx context.Context, fn func(T) (T, error)) (T, error) {
	var zero T
	return Update(ctx, s.store, s.key, zero, s.attempts, fn)
}

// Save overwrites the document.
func (s *Slot[T]) Save(ctx context.Context, v T) error {
	return Write(ctx, s.store, s.key, v, s.attempts)
}

// Exists reports whether anything has been written to the slot yet.
func (s *Slot[T]) Exists(ctx context.Context) (bool, error) {
	_, err := s.store.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read "+s.key)
	}
	return true, nil
}

func (s *Slot[T]) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.key); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete "+s.key)
	}
	return nil
}

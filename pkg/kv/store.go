// Package kv is the durable key-value layer every repository persists
// through. Each key holds one JSON document plus a revision counter; writes
// are conditional on the revision the caller last observed.
package kv

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when the key has never been written.
	ErrNotFound = errors.New("kv: key not found")
	// ErrRevisionConflict is returned by Put when the stored revision no
	// longer matches the expected one.
	ErrRevisionConflict = errors.New("kv: revision conflict")
)

// Entry is a stored document and the revision it was read at.
type Entry struct {
	Value    []byte
	Revision int64
}

// Store is implemented by every backend.
//
// Put with expected == 0 creates the key and fails with ErrRevisionConflict
// when it already exists. Put with expected > 0 replaces the value only when
// the stored revision equals expected. The new revision is returned.
type Store interface {
	Get(ctx context.Context, key string) (Entry, error)
	Put(ctx context.Context, key string, value []byte, expected int64) (int64, error)
	Delete(ctx context.Context, key string) error
}

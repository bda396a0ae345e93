// Package api is the public facade of the marketplace. Every operation
// returns a types.Envelope and never panics on domain failures.
package api

import (
	"context"
	"time"

	"github.com/angelmondragon/wandermart-backend/api/responses"
	"github.com/angelmondragon/wandermart-backend/internal/bootstrap"
	"github.com/angelmondragon/wandermart-backend/pkg/auth/session"
	pkgerrors "github.com/angelmondragon/wandermart-backend/pkg/errors"
	"github.com/angelmondragon/wandermart-backend/pkg/logger"
	"github.com/angelmondragon/wandermart-backend/pkg/metrics"
	"github.com/angelmondragon/wandermart-backend/pkg/types"
)

// Backend exposes the marketplace operations over a wired application.
// The caller identifies itself by attaching the token returned from
// Login or Register with WithToken.
type Backend struct {
	app     *bootstrap.App
	logg    *logger.Logger
	metrics *metrics.OperationMetrics
}

func New(app *bootstrap.App) *Backend {
	logg := app.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Backend{app: app, logg: logg, metrics: app.Metrics}
}

// App returns the wired application behind the facade.
func (b *Backend) App() *bootstrap.App {
	return b.app
}

// WithToken attaches a session token to ctx for subsequent calls.
func WithToken(ctx context.Context, token string) context.Context {
	return session.WithToken(ctx, token)
}

func call[T any](ctx context.Context, b *Backend, op string, fn func(context.Context) (T, error)) types.Envelope[T] {
	start := time.Now()
	ctx = b.logg.WithOperation(ctx, op)
	ctx = b.withCaller(ctx)

	data, err := fn(ctx)
	code := "ok"
	if err != nil {
		code = string(pkgerrors.CodeOf(err))
	}
	elapsed := time.Since(start)
	b.metrics.Observe(op, elapsed, code)

	if err != nil {
		return responses.Failure[T](ctx, b.logg, err)
	}
	b.logg.Debug(b.logg.WithField(ctx, "duration_ms", elapsed.Milliseconds()), "operation completed")
	return responses.Success(data)
}

// withCaller tags log entries with the session owner. Lookup failures are
// left to the guard inside the operation.
func (b *Backend) withCaller(ctx context.Context) context.Context {
	if b.app.Sessions == nil {
		return ctx
	}
	sess, err := b.app.Sessions.Current(ctx)
	if err != nil || sess == nil {
		return ctx
	}
	ctx = b.logg.WithUserID(ctx, sess.User.UserID)
	return b.logg.WithActorRole(ctx, string(sess.User.Role))
}

func exec(ctx context.Context, b *Backend, op string, fn func(context.Context) error) types.Envelope[types.Empty] {
	return call(ctx, b, op, func(ctx context.Context) (types.Empty, error) {
		return types.Empty{}, fn(ctx)
	})
}

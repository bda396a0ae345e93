// Package bootstrap opens the configured store and wires every repository
// and service on top of it.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/angelmondragon/wandermart-backend/internal/attractions"
	"github.com/angelmondragon/wandermart-backend/internal/authz"
	"github.com/angelmondragon/wandermart-backend/internal/media"
	"github.com/angelmondragon/wandermart-backend/internal/notifications"
	"github.com/angelmondragon/wandermart-backend/internal/orders"
	"github.com/angelmondragon/wandermart-backend/internal/posts"
	"github.com/angelmondragon/wandermart-backend/internal/products"
	"github.com/angelmondragon/wandermart-backend/internal/seed"
	"github.com/angelmondragon/wandermart-backend/internal/users"
	"github.com/angelmondragon/wandermart-backend/pkg/auth/session"
	"github.com/angelmondragon/wandermart-backend/pkg/config"
	"github.com/angelmondragon/wandermart-backend/pkg/db"
	"github.com/angelmondragon/wandermart-backend/pkg/kv"
	"github.com/angelmondragon/wandermart-backend/pkg/logger"
	"github.com/angelmondragon/wandermart-backend/pkg/metrics"
	"github.com/angelmondragon/wandermart-backend/pkg/migrate"
	"github.com/angelmondragon/wandermart-backend/pkg/redis"
	"github.com/angelmondragon/wandermart-backend/pkg/security"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
)

// Repositories groups the collection owners.
type Repositories struct {
	Users         *users.Repository
	Attractions   *attractions.Repository
	Posts         *posts.Repository
	Products      *products.Repository
	Orders        *orders.Repository
	Notifications *notifications.Repository
}

// App is a fully wired backend.
type App struct {
	Config   *config.Config
	Logger   *logger.Logger
	Store    kv.Store
	Registry *prometheus.Registry
	Metrics  *metrics.OperationMetrics

	Repos      Repositories
	Sessions   *session.Manager
	Guard      *authz.Guard
	Dispatcher *notifications.Dispatcher

	Users         *users.Service
	Attractions   *attractions.Service
	Posts         *posts.Service
	Products      *products.Service
	Orders        *orders.Service
	Notifications *notifications.Service
	Media         *media.Encoder
	Seeder        *seed.Seeder

	closers []func() error
}

// Open connects to the configured backend, applies migrations for SQL
// backends and wires the application.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*App, error) {
	if logg == nil {
		logg = logger.Nop()
	}
	var (
		store   kv.Store
		closers []func() error
	)
	switch {
	case cfg.Store.UsesSQL():
		client, err := db.New(ctx, cfg.Store.Backend, cfg.DB, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap database: %w", err)
		}
		closers = append(closers, client.Close)
		if err := migrate.MaybeRun(ctx, cfg, logg, client); err != nil {
			return nil, multierr.Append(fmt.Errorf("run migrations: %w", err), client.Close())
		}
		store = kv.NewGormStore(client.DB())
	case cfg.Store.Backend == config.StoreBackendRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap redis: %w", err)
		}
		closers = append(closers, client.Close)
		store = kv.NewRedisStore(client)
	default:
		return nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
	}

	app, err := Build(cfg, store, logg, prometheus.NewRegistry())
	if err != nil {
		for _, c := range closers {
			err = multierr.Append(err, c())
		}
		return nil, err
	}
	app.closers = closers
	return app, nil
}

// Build wires repositories and services over an already opened store.
func Build(cfg *config.Config, store kv.Store, logg *logger.Logger, reg *prometheus.Registry) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	store = kv.Instrument(store, metrics.NewStoreMetrics(reg))
	attempts := cfg.Store.MaxAttempts

	repos := Repositories{
		Users:         users.NewRepository(store, attempts),
		Attractions:   attractions.NewRepository(store, attempts),
		Posts:         posts.NewRepository(store, attempts),
		Products:      products.NewRepository(store, attempts),
		Orders:        orders.NewRepository(store, attempts),
		Notifications: notifications.NewRepository(store, attempts),
	}

	sessions, err := session.NewManager(store, cfg.JWT, attempts)
	if err != nil {
		return nil, fmt.Errorf("session manager: %w", err)
	}
	guard, err := authz.NewGuard(sessions, repos.Users)
	if err != nil {
		return nil, fmt.Errorf("guard: %w", err)
	}
	dispatcher, err := notifications.NewDispatcher(repos.Notifications, repos.Users, metrics.NewNotificationMetrics(reg), logg)
	if err != nil {
		return nil, fmt.Errorf("notification dispatcher: %w", err)
	}
	hasher := security.NewHasher(cfg.Password)

	app := &App{
		Config:     cfg,
		Logger:     logg,
		Store:      store,
		Registry:   reg,
		Metrics:    metrics.NewOperationMetrics(reg),
		Repos:      repos,
		Sessions:   sessions,
		Guard:      guard,
		Dispatcher: dispatcher,
		Media:      media.NewEncoder(cfg.Media),
	}

	if app.Users, err = users.NewService(users.ServiceParams{
		Repo:       repos.Users,
		Sessions:   sessions,
		Guard:      guard,
		Hasher:     hasher,
		Notifier:   dispatcher,
		Sellers:    repos.Products,
		Recipients: repos.Orders,
		Catalog:    cfg.Catalog,
		Logger:     logg,
	}); err != nil {
		return nil, fmt.Errorf("users service: %w", err)
	}
	if app.Attractions, err = attractions.NewService(attractions.ServiceParams{
		Repo:     repos.Attractions,
		Reviews:  repos.Posts,
		Products: repos.Products,
		Guard:    guard,
		Notifier: dispatcher,
		Catalog:  cfg.Catalog,
		Logger:   logg,
	}); err != nil {
		return nil, fmt.Errorf("attractions service: %w", err)
	}
	if app.Posts, err = posts.NewService(posts.ServiceParams{
		Repo:        repos.Posts,
		Attractions: app.Attractions,
		Guard:       guard,
		Notifier:    dispatcher,
		Logger:      logg,
	}); err != nil {
		return nil, fmt.Errorf("posts service: %w", err)
	}
	if app.Products, err = products.NewService(products.ServiceParams{
		Repo:        repos.Products,
		Attractions: repos.Attractions,
		Sellers:     repos.Users,
		Guard:       guard,
		Catalog:     cfg.Catalog,
	}); err != nil {
		return nil, fmt.Errorf("products service: %w", err)
	}
	if app.Orders, err = orders.NewService(orders.ServiceParams{
		Repo:     repos.Orders,
		Products: repos.Products,
		Buyers:   repos.Users,
		Guard:    guard,
		Notifier: dispatcher,
		Config:   cfg.Orders,
		Logger:   logg,
	}); err != nil {
		return nil, fmt.Errorf("orders service: %w", err)
	}
	if app.Notifications, err = notifications.NewService(repos.Notifications, guard); err != nil {
		return nil, fmt.Errorf("notifications service: %w", err)
	}
	if app.Seeder, err = seed.New(seed.Params{
		Users:       repos.Users,
		Attractions: repos.Attractions,
		Posts:       repos.Posts,
		Products:    repos.Products,
		Hasher:      hasher,
		Seed:        cfg.Seed,
		Logger:      logg,
	}); err != nil {
		return nil, fmt.Errorf("seeder: %w", err)
	}
	return app, nil
}

// SeedIfEnabled runs the seeder when configured to.
func (a *App) SeedIfEnabled(ctx context.Context) (seed.Report, error) {
	if !a.Config.Seed.Enabled {
		return seed.Report{}, nil
	}
	return a.Seeder.Run(ctx)
}

// Close releases the underlying connections.
func (a *App) Close() error {
	var err error
	for i := len(a.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, a.closers[i]())
	}
	a.closers = nil
	return err
}

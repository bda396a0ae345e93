// Package testenv builds a fully wired application over an in-memory
// sqlite store for package tests.
package testenv

import (
	"context"
	"testing"

	"github.com/angelmondragon/wandermart-backend/internal/bootstrap"
	"github.com/angelmondragon/wandermart-backend/internal/seed"
	"github.com/angelmondragon/wandermart-backend/internal/users"
	"github.com/angelmondragon/wandermart-backend/pkg/auth/session"
	"github.com/angelmondragon/wandermart-backend/pkg/config"
	"github.com/angelmondragon/wandermart-backend/pkg/kv/kvtest"
	"github.com/angelmondragon/wandermart-backend/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const (
	Password = "password123"

	AdminEmail    = "admin@test.com"
	MerchantEmail = "merchant@test.com"
	TravelerEmail = "user@test.com"
)

// Config returns settings tuned for fast tests.
func Config() *config.Config {
	return &config.Config{
		App:   config.AppConfig{Env: config.AppEnvDev, ServiceName: "wandermart-test"},
		Store: config.StoreConfig{Backend: config.StoreBackendSQLite, MaxAttempts: 50},
		JWT:   config.JWTConfig{Secret: "test-secret", Issuer: "wandermart", SessionTTLMinutes: 60},
		Password: config.PasswordConfig{
			ArgonMemoryKB:    64,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		},
		Catalog: config.CatalogConfig{
			MinReviewsForRating:    5,
			DefaultAttractionImage: "https://img.test/attraction.jpg",
			DefaultProductImage:    "https://img.test/product.jpg",
			DefaultAvatarBase:      "https://avatar.test/?u=",
			DefaultStoreName:       "My Store",
		},
		Orders: config.OrdersConfig{IDPrefix: "WM", IDMaxAttempts: 10},
		Media:  config.MediaConfig{MaxUploadMB: 1},
		Seed:   config.SeedConfig{Enabled: true, DefaultPassword: Password},
	}
}

// Env is a wired application plus helpers to act as the demo users.
type Env struct {
	App *bootstrap.App
}

// New returns a seeded environment.
func New(t testing.TB) *Env {
	t.Helper()
	env := NewEmpty(t)
	_, err := env.App.Seeder.Run(context.Background())
	require.NoError(t, err)
	return env
}

// NewEmpty returns an environment with no data at all.
func NewEmpty(t testing.TB) *Env {
	t.Helper()
	app, err := bootstrap.Build(Config(), kvtest.NewSQLite(t), logger.Nop(), prometheus.NewRegistry())
	require.NoError(t, err)
	return &Env{App: app}
}

// Login authenticates and returns a context carrying the session token.
func (e *Env) Login(t testing.TB, email string) context.Context {
	t.Helper()
	ctx := context.Background()
	res, err := e.App.Users.Login(ctx, users.LoginRequest{Email: email, Password: Password})
	require.NoError(t, err)
	return session.WithToken(ctx, res.Token)
}

// Register creates an account with the shared password and returns its
// session context and id.
func (e *Env) Register(t testing.TB, req users.RegisterRequest) (context.Context, string) {
	t.Helper()
	if req.Password == "" {
		req.Password = Password
	}
	res, err := e.App.Users.Register(context.Background(), req)
	require.NoError(t, err)
	return session.WithToken(context.Background(), res.Token), res.User.ID
}

func (e *Env) Admin(t testing.TB) context.Context    { return e.Login(t, AdminEmail) }
func (e *Env) Merchant(t testing.TB) context.Context { return e.Login(t, MerchantEmail) }
func (e *Env) Traveler(t testing.TB) context.Context { return e.Login(t, TravelerEmail) }

// IDs of the seeded accounts.
const (
	AdminID    = seed.AdminID
	MerchantID = seed.MerchantID
	TravelerID = seed.TravelerID
)

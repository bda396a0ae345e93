// Package seed loads the demo catalogue into empty collections.
package seed

import (
	"context"
	"time"

	"github.com/angelmondragon/wandermart-backend/internal/attractions"
	"github.com/angelmondragon/wandermart-backend/internal/posts"
	"github.com/angelmondragon/wandermart-backend/internal/products"
	"github.com/angelmondragon/wandermart-backend/internal/users"
	"github.com/angelmondragon/wandermart-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/wandermart-backend/pkg/errors"
	"github.com/angelmondragon/wandermart-backend/pkg/logger"
)

type passwordHasher interface {
	Hash(password string) (string, error)
}

type Params struct {
	Users       *users.Repository
	Attractions *attractions.Repository
	Posts       *posts.Repository
	Products    *products.Repository
	Hasher      passwordHasher
	Seed        config.SeedConfig
	Logger      *logger.Logger
}

// Report says which collections were written by a run.
type Report struct {
	Users       bool `json:"users"`
	Attractions bool `json:"attractions"`
	Posts       bool `json:"posts"`
	Products    bool `json:"products"`
}

// Any reports whether anything was written.
func (r Report) Any() bool {
	return r.Users || r.Attractions || r.Posts || r.Products
}

type Seeder struct {
	params Params
	logg   *logger.Logger
	now    func() time.Time
}

func New(params Params) (*Seeder, error) {
	switch {
	case params.Users == nil, params.Attractions == nil, params.Posts == nil, params.Products == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "seed repositories required")
	case params.Hasher == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "password hasher required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Seeder{params: params, logg: logg, now: time.Now}, nil
}

// Run seeds every collection that has never been written. Collections that
// already exist, even empty ones, are left untouched so running it twice is
// harmless.
func (s *Seeder) Run(ctx context.Context) (Report, error) {
	var report Report
	now := s.now().UTC()

	password := s.params.Seed.DefaultPassword
	if password == "" {
		password = "password123"
	}
	hash, err := s.params.Hasher.Hash(password)
	if err != nil {
		return report, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash seed password")
	}
	if report.Users, err = s.params.Users.SeedIfEmpty(ctx, demoUsers(now, hash)); err != nil {
		return report, err
	}
	if report.Attractions, err = s.params.Attractions.SeedIfEmpty(ctx, demoAttractions(now)); err != nil {
		return report, err
	}
	if report.Posts, err = s.params.Posts.SeedIfEmpty(ctx, demoPosts(now)); err != nil {
		return report, err
	}

	if report.Products, err = s.params.Products.SeedIfEmpty(ctx, demoProducts(now, DemoStoreName)); err != nil {
		return report, err
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"users":       report.Users,
		"attractions": report.Attractions,
		"posts":       report.Posts,
		"products":    report.Products,
	}), "seed.completed")
	return report, nil
}

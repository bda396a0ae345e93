package main

import (
	"context"
	"os"

	"github.com/angelmondragon/wandermart-backend/internal/bootstrap"
	"github.com/angelmondragon/wandermart-backend/pkg/config"
	"github.com/angelmondragon/wandermart-backend/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"backend": cfg.Store.Backend,
	})

	app, err := bootstrap.Open(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap store", err)
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logg.Error(ctx, "error closing store", err)
		}
	}()

	report, err := app.Seeder.Run(ctx)
	if err != nil {
		logg.Error(ctx, "seeding failed", err)
		os.Exit(1)
	}
	if !report.Any() {
		logg.Info(ctx, "store already seeded")
	}
}

// Command wandermart is a small operator tool over the marketplace store.
//
//	wandermart attractions [-province P] [-city C] [-county C] [-tag T] [-q text]
//	wandermart pending -email admin@test.com -password ...
//	wandermart notifications -email user@test.com -password ...
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/angelmondragon/wandermart-backend/api"
	"github.com/angelmondragon/wandermart-backend/internal/attractions"
	"github.com/angelmondragon/wandermart-backend/internal/bootstrap"
	"github.com/angelmondragon/wandermart-backend/pkg/config"
	"github.com/angelmondragon/wandermart-backend/pkg/logger"
	"github.com/angelmondragon/wandermart-backend/pkg/types"
	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	logg := logger.New(logger.Options{ServiceName: "wandermart", Output: os.Stderr})
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}
	logg = logger.New(logger.Options{
		ServiceName: "wandermart",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Output:      os.Stderr,
	})
	ctx := logg.WithField(context.Background(), "env", cfg.App.Env)

	app, err := bootstrap.Open(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap store", err)
		os.Exit(1)
	}
	defer app.Close()

	if _, err := app.SeedIfEnabled(ctx); err != nil {
		logg.Error(ctx, "seeding failed", err)
		os.Exit(1)
	}

	backend := api.New(app)
	code := run(ctx, backend, os.Args[1], os.Args[2:], os.Stdout)
	if code != 0 {
		_ = app.Close()
		os.Exit(code)
	}
}

func run(ctx context.Context, backend *api.Backend, command string, args []string, out io.Writer) int {
	switch command {
	case "attractions":
		fs := flag.NewFlagSet("attractions", flag.ExitOnError)
		var f attractions.Filter
		fs.StringVar(&f.Province, "province", "", "province")
		fs.StringVar(&f.City, "city", "", "city")
		fs.StringVar(&f.County, "county", "", "county")
		fs.StringVar(&f.Tag, "tag", "", "exact tag")
		fs.StringVar(&f.Query, "q", "", "free text search")
		_ = fs.Parse(args)
		return emit(out, backend.GetAttractions(ctx, f))

	case "pending":
		fs := flag.NewFlagSet("pending", flag.ExitOnError)
		email := fs.String("email", "", "admin email")
		password := fs.String("password", "", "admin password")
		_ = fs.Parse(args)
		authed, code := login(ctx, backend, *email, *password, out)
		if code != 0 {
			return code
		}
		if code := emit(out, backend.GetPendingMerchants(authed)); code != 0 {
			return code
		}
		if code := emit(out, backend.GetPendingAttractions(authed)); code != 0 {
			return code
		}
		return emit(out, backend.GetReportedContent(authed))

	case "notifications":
		fs := flag.NewFlagSet("notifications", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		_ = fs.Parse(args)
		authed, code := login(ctx, backend, *email, *password, out)
		if code != 0 {
			return code
		}
		return emit(out, backend.GetMessages(authed))

	default:
		usage()
		return 2
	}
}

func login(ctx context.Context, backend *api.Backend, email, password string, out io.Writer) (context.Context, int) {
	res := backend.Login(ctx, email, password)
	if !res.Success {
		return ctx, emit(out, res)
	}
	return api.WithToken(ctx, res.Data.Token), 0
}

func emit[T any](out io.Writer, env types.Envelope[T]) int {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		fmt.Fprintf(os.Stderr, "encode output: %v\n", err)
		return 1
	}
	if !env.Success {
		return 1
	}
	return 0
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: wandermart attractions|pending|notifications [flags]")
}

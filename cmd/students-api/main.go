// students-api is the record service: a JSON CRUD API over the Student
// collection.
//
// Startup:
//  1. Load configuration (.env, then YAML, then environment overrides)
//  2. Initialise the logger
//  3. Open the configured storage backend
//  4. Register routes, middleware and /metrics
//  5. Serve until SIGINT/SIGTERM, then shut down gracefully
//
// Running:
//
//	go run ./cmd/students-api --config=config/local.yaml
//
// or
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/students-api
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/joho/godotenv/autoload"

	"github.com/aanand-mishra/students-app/internal/config"
	"github.com/aanand-mishra/students-app/internal/http/handlers/student"
	"github.com/aanand-mishra/students-app/internal/http/middleware"
	"github.com/aanand-mishra/students-app/internal/http/server"
	"github.com/aanand-mishra/students-app/internal/logger"
	"github.com/aanand-mishra/students-app/internal/storage"
	"github.com/aanand-mishra/students-app/internal/storage/memory"
	"github.com/aanand-mishra/students-app/internal/storage/postgres"
	"github.com/aanand-mishra/students-app/internal/storage/sqlite"
)

const version = "1.0.0"

func main() {
	// ── 1. Config ─────────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Logger ─────────────────────────────────────────────────────────
	log := logger.Setup(cfg.Env)
	log.Info("starting students-api",
		slog.String("env", cfg.Env),
		slog.String("version", version),
	)

	if err := cfg.ValidateStorage(); err != nil {
		log.Error("invalid storage config", logger.Err(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── 3. Storage ────────────────────────────────────────────────────────
	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Error("failed to initialise storage", logger.Err(err))
		os.Exit(1)
	}
	defer store.Close()

	log.Info("storage initialised", slog.String("driver", cfg.Storage.Driver))

	// ── 4. Routes ─────────────────────────────────────────────────────────
	metrics := middleware.NewMetrics("api")

	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logging(log))
	router.Use(metrics.Instrument)

	student.Register(router, store)
	router.Method("GET", "/metrics", metrics.Handler())

	// ── 5. Serve ──────────────────────────────────────────────────────────
	if err := server.Run(ctx, log, server.New(cfg.HTTPServer.Addr, router)); err != nil {
		log.Error("server encountered an error", logger.Err(err))
		os.Exit(1)
	}
}

// openStorage returns the backend named by cfg.Storage.Driver. Handlers
// only ever see the storage.Storage interface.
func openStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		return sqlite.New(cfg)
	case config.DriverPostgres:
		return postgres.New(ctx, cfg)
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// students-web is the browser front end. It renders HTML and forwards
// every action to students-api at student_api.base_url.
//
//	CONFIG_PATH=config/web.yaml go run ./cmd/students-web
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/joho/godotenv/autoload"

	"github.com/aanand-mishra/students-app/internal/client/studentapi"
	"github.com/aanand-mishra/students-app/internal/config"
	"github.com/aanand-mishra/students-app/internal/http/handlers/web"
	"github.com/aanand-mishra/students-app/internal/http/middleware"
	"github.com/aanand-mishra/students-app/internal/http/server"
	"github.com/aanand-mishra/students-app/internal/logger"
)

const version = "1.0.0"

func main() {
	cfg := config.MustLoad()

	log := logger.Setup(cfg.Env)
	log.Info("starting students-web",
		slog.String("env", cfg.Env),
		slog.String("version", version),
	)

	if err := cfg.ValidateStudentAPI(); err != nil {
		log.Error("invalid student_api config", logger.Err(err))
		os.Exit(1)
	}

	metrics := middleware.NewMetrics("web")

	client, err := studentapi.New(studentapi.Config{
		BaseURL:   cfg.StudentAPI.BaseURL,
		Timeout:   cfg.StudentAPI.Timeout,
		Transport: metrics.InstrumentTransport(nil),
	})
	if err != nil {
		log.Error("failed to create student api client", logger.Err(err))
		os.Exit(1)
	}

	handler, err := web.New(client)
	if err != nil {
		log.Error("failed to load views", logger.Err(err))
		os.Exit(1)
	}

	log.Info("record service configured", slog.String("base_url", cfg.StudentAPI.BaseURL))

	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logging(log))
	router.Use(metrics.Instrument)

	web.Register(router, handler)
	router.Method("GET", "/metrics", metrics.Handler())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, log, server.New(cfg.HTTPServer.Addr, router)); err != nil {
		log.Error("server encountered an error", logger.Err(err))
		os.Exit(1)
	}
}

// Package logger builds the slog.Logger shared by both binaries.
package logger

import (
	"io"
	"log/slog"
	"os"
)

const (
	envProd    = "prod"
	envStaging = "staging"
)

// Setup returns a logger for env writing to stdout and installs it as the
// slog default, so package-level slog calls in handlers use it too.
//
// dev (and anything unrecognised): text at DEBUG.
// staging: JSON at DEBUG.
// prod: JSON at INFO.
func Setup(env string) *slog.Logger {
	log := New(os.Stdout, env)
	slog.SetDefault(log)
	return log
}

// New builds the logger for env without touching the slog default.
func New(w io.Writer, env string) *slog.Logger {
	switch env {
	case envProd:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case envStaging:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

// Err is shorthand for the error attribute every failure log carries.
func Err(err error) slog.Attr {
	return slog.String("error", err.Error())
}

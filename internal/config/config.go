// Package config handles loading and parsing application configuration.
// The config file is located through (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// Both binaries (students-api and students-web) share this Config; each
// one checks only the sections it uses.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Storage drivers understood by students-api.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file and can be overridden by the
// corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity: "dev", "staging" or "prod".
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	HTTPServer `yaml:"http_server"`
	Storage    Storage    `yaml:"storage"`
	StudentAPI StudentAPI `yaml:"student_api"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-required:"true"`
}

// Storage selects and configures the persistence backend of students-api.
type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"sqlite"`
	// Path is the filesystem path to the SQLite .db file.
	Path string `yaml:"path" env:"STORAGE_PATH"`
	// DSN is the Postgres connection string.
	DSN string `yaml:"dsn" env:"STORAGE_DSN"`
}

// StudentAPI tells students-web where the record service lives.
type StudentAPI struct {
	BaseURL string        `yaml:"base_url" env:"STUDENT_API_BASE_URL" env-default:"http://localhost:8082/"`
	Timeout time.Duration `yaml:"timeout" env:"STUDENT_API_TIMEOUT" env-default:"10s"`
}

// Load reads the YAML file at path, applies environment overrides and
// defaults, and checks env-required fields.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	return &cfg, nil
}

// ValidateStorage reports whether the storage section is usable by
// students-api.
func (c *Config) ValidateStorage() error {
	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.Path == "" {
			return errors.New("storage.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return errors.New("storage.dsn is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}

// ValidateStudentAPI reports whether students-web can reach the record
// service with this configuration.
func (c *Config) ValidateStudentAPI() error {
	if c.StudentAPI.BaseURL == "" {
		return errors.New("student_api.base_url is required")
	}
	if c.StudentAPI.Timeout <= 0 {
		return errors.New("student_api.timeout must be positive")
	}
	return nil
}

// MustLoad resolves the config path, loads it and exits the process on
// any failure. If it returns, the config has been read successfully.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	return cfg
}

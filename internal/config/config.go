package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/lmittmann/tint"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	AppEnv            string `env:"APP_ENV"            envDefault:"dev"`
	DBPath            string `env:"DB_PATH"            envDefault:"./dev.db"`
	Port              string `env:"PORT"               envDefault:"8080"`
	LogLevel          string `env:"LOG_LEVEL"          envDefault:"info"`
	DefaultIterations int    `env:"DEFAULT_ITERATIONS" envDefault:"1000"`
	MaxIterations     int    `env:"MAX_ITERATIONS"     envDefault:"10000"`
}

// Load reads a local .env file if present, then the environment.
func Load() (Config, error) {
	// Best-effort: production injects real env vars.
	_ = loadDotEnv(".env")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MaxIterations <= 0 {
		return Config{}, fmt.Errorf("MAX_ITERATIONS must be positive, got %d", cfg.MaxIterations)
	}
	if cfg.DefaultIterations <= 0 || cfg.DefaultIterations > cfg.MaxIterations {
		return Config{}, fmt.Errorf("DEFAULT_ITERATIONS must be in 1..%d, got %d", cfg.MaxIterations, cfg.DefaultIterations)
	}
	return cfg, nil
}

// IsDev reports whether the app runs in local development mode.
func (c Config) IsDev() bool {
	return c.AppEnv == "" || strings.EqualFold(c.AppEnv, "dev")
}

// Iterations returns the simulation size to use for a requested count:
// the default for n <= 0, otherwise n capped at MaxIterations.
func (c Config) Iterations(n int) int {
	if n <= 0 {
		return c.DefaultIterations
	}
	if n > c.MaxIterations {
		return c.MaxIterations
	}
	return n
}

// Level parses LogLevel, falling back to info.
func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// NewLogger returns a colored console logger in dev and JSON otherwise.
func (c Config) NewLogger() *slog.Logger {
	if c.IsDev() {
		return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      c.Level(),
			TimeFormat: "15:04:05",
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: c.Level()}))
}

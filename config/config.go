/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads storekit configuration from YAML with optional
// .env overlays.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the top-level storekit configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig configures the storage backend.
type DatabaseConfig struct {
	// Driver selects the backend implementation: "sqlite" or "memory".
	Driver string `yaml:"driver"`
	// Path is the database file path for file-backed drivers.
	// Environment variables in the form ${VAR} are expanded.
	Path string `yaml:"path"`
	// BusyTimeout is the SQLite busy timeout.
	BusyTimeout time.Duration `yaml:"busy_timeout"`
	// BusBuffer overrides the notification bus per-subscription buffer.
	BusBuffer int `yaml:"bus_buffer"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Database: DatabaseConfig{
			Driver:      "sqlite",
			Path:        "storekit.db",
			BusyTimeout: 5 * time.Second,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the YAML configuration at path, after overlaying the process
// environment with a .env file when one exists in the working directory.
// Missing fields keep their defaults.
func Load(path string) (Config, error) {
	// Overlay only: godotenv never overrides variables already set.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Database.Path = os.ExpandEnv(cfg.Database.Path)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "memory":
	default:
		return fmt.Errorf("config: unknown database driver %q", c.Database.Driver)
	}
	if c.Database.Driver == "sqlite" && c.Database.Path == "" {
		return fmt.Errorf("config: sqlite driver requires database.path")
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	return nil
}

// SlogLevel maps the configured level onto slog.Level.
func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

// Package config loads gookins-admin settings with Koanf v2.
//
// Sources, lowest priority first:
//
//  1. Built-in defaults (structs provider)
//  2. YAML file: --config flag, CONFIG_PATH, or the first of DefaultConfigPaths
//  3. Environment variables (see envMappings)
//  4. Explicit overrides passed by the CLI flags
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the complete client configuration.
type Config struct {
	API     APIConfig     `koanf:"api"`
	Store   StoreConfig   `koanf:"store"`
	Console ConsoleConfig `koanf:"console"`
	Logging LoggingConfig `koanf:"logging"`
}

// APIConfig describes the task-management backend.
type APIConfig struct {
	// BaseURL is prefixed to every API path, e.g. http://192.168.165.88:8084.
	BaseURL string `koanf:"base_url" validate:"required,http_url"`

	// Timeout bounds a whole call, connect to last body byte. A call that
	// exceeds it fails as a transport error.
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`

	UserAgent string `koanf:"user_agent"`
}

// StoreConfig controls where the session token is persisted.
type StoreConfig struct {
	// Path is the BadgerDB directory holding the "token" key.
	Path string `koanf:"path"`

	// Ephemeral keeps the token in memory only; nothing survives exit.
	Ephemeral bool `koanf:"ephemeral"`

	// GCInterval is how often "serve" reclaims BadgerDB value log space.
	// Zero disables collection.
	GCInterval time.Duration `koanf:"gc_interval" validate:"gte=0"`

	// LockWait bounds how long one operation waits for another gookins-admin
	// process to release the BadgerDB directory.
	LockWait time.Duration `koanf:"lock_wait" validate:"gte=0"`
}

// ConsoleConfig configures the local HTTP console started by "serve".
type ConsoleConfig struct {
	Listen          string        `koanf:"listen" validate:"required,hostname_port"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	LoginRateLimit  int           `koanf:"login_rate_limit" validate:"gte=0"`
	LoginRateWindow time.Duration `koanf:"login_rate_window" validate:"gte=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gte=0"`
}

// LoggingConfig is handed to logging.Init.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// defaultStorePath returns $XDG_CONFIG_HOME/gookins-admin/session or a
// relative fallback when no config dir can be determined.
func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return filepath.Join(".gookins-admin", "session")
	}
	return filepath.Join(dir, "gookins-admin", "session")
}

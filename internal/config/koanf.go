// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when no path is given.
var DefaultConfigPaths = []string{
	"gookins-admin.yaml",
	"gookins-admin.yml",
	"/etc/gookins-admin/config.yaml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "http://127.0.0.1:8084",
			Timeout:   50 * time.Second,
			UserAgent: "gookins-admin",
		},
		Store: StoreConfig{
			Path:       defaultStorePath(),
			Ephemeral:  false,
			GCInterval: 10 * time.Minute,
			LockWait:   5 * time.Second,
		},
		Console: ConsoleConfig{
			Listen:          "127.0.0.1:8085",
			CORSOrigins:     []string{"http://localhost:5173"},
			LoginRateLimit:  5,
			LoginRateWindow: time.Minute,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Caller: false,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (or the
// discovered one), the environment, and finally overrides. Override keys use
// koanf paths such as "api.base_url".
func Load(path string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configPath, err := findConfigFile(path)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	for key, value := range overrides {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to apply override %s: %w", key, err)
		}
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile resolves the file to load. An explicit path must exist; the
// env var and default locations are optional.
func findConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

var sliceConfigPaths = []string{
	"console.cors_origins",
}

// processSliceFields splits comma-separated env values into string slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	"gookins_api_url":         "api.base_url",
	"gookins_api_timeout":     "api.timeout",
	"gookins_user_agent":      "api.user_agent",
	"gookins_store_path":      "store.path",
	"gookins_store_ephemeral": "store.ephemeral",
	"gookins_store_gc":        "store.gc_interval",
	"gookins_store_lock_wait": "store.lock_wait",

	"gookins_console_listen":    "console.listen",
	"gookins_cors_origins":      "console.cors_origins",
	"gookins_login_rate_limit":  "console.login_rate_limit",
	"gookins_login_rate_window": "console.login_rate_window",
	"gookins_shutdown_timeout":  "console.shutdown_timeout",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps known env vars to koanf keys; unknown ones are dropped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

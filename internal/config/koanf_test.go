// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/gookins-admin/internal/validation"
)

// isolateEnv clears every variable the loader reads so the host environment
// cannot leak into a test.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, "")
	for key := range envMappings {
		name := strings.ToUpper(key)
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gookins-admin.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	cfg := defaultConfig()

	if cfg.API.BaseURL != "http://127.0.0.1:8084" {
		t.Errorf("API.BaseURL = %q, want http://127.0.0.1:8084", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 50*time.Second {
		t.Errorf("API.Timeout = %v, want 50s", cfg.API.Timeout)
	}
	if cfg.Store.Ephemeral {
		t.Error("Store.Ephemeral should be false by default")
	}
	if cfg.Store.Path == "" {
		t.Error("Store.Path should have a default")
	}
	if cfg.Store.GCInterval != 10*time.Minute {
		t.Errorf("Store.GCInterval = %v, want 10m", cfg.Store.GCInterval)
	}
	if cfg.Store.LockWait != 5*time.Second {
		t.Errorf("Store.LockWait = %v, want 5s", cfg.Store.LockWait)
	}
	if cfg.Console.Listen != "127.0.0.1:8085" {
		t.Errorf("Console.Listen = %q, want 127.0.0.1:8085", cfg.Console.Listen)
	}
	if cfg.Console.LoginRateLimit != 5 {
		t.Errorf("Console.LoginRateLimit = %d, want 5", cfg.Console.LoginRateLimit)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Errorf("Logging = %+v, want info/console", cfg.Logging)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected string
	}{
		{"GOOKINS_API_URL", "api.base_url"},
		{"GOOKINS_API_TIMEOUT", "api.timeout"},
		{"GOOKINS_STORE_PATH", "store.path"},
		{"GOOKINS_STORE_EPHEMERAL", "store.ephemeral"},
		{"GOOKINS_STORE_GC", "store.gc_interval"},
		{"GOOKINS_STORE_LOCK_WAIT", "store.lock_wait"},
		{"GOOKINS_CONSOLE_LISTEN", "console.listen"},
		{"GOOKINS_CORS_ORIGINS", "console.cors_origins"},
		{"GOOKINS_LOGIN_RATE_LIMIT", "console.login_rate_limit"},
		{"LOG_LEVEL", "logging.level"},
		{"LOG_FORMAT", "logging.format"},
		{"LOG_CALLER", "logging.caller"},
		{"log_level", "logging.level"},
		{"HOME", ""},
		{"PATH", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.input); got != tt.expected {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFindConfigFile(t *testing.T) {
	isolateEnv(t)

	t.Run("no file found", func(t *testing.T) {
		path, err := findConfigFile("")
		if err != nil {
			t.Fatalf("findConfigFile() error = %v", err)
		}
		if path != "" {
			t.Errorf("findConfigFile() = %q, want empty", path)
		}
	})

	t.Run("explicit path", func(t *testing.T) {
		want := writeConfig(t, "api:\n  timeout: 1s\n")
		got, err := findConfigFile(want)
		if err != nil {
			t.Fatalf("findConfigFile() error = %v", err)
		}
		if got != want {
			t.Errorf("findConfigFile() = %q, want %q", got, want)
		}
	})

	t.Run("explicit path missing", func(t *testing.T) {
		if _, err := findConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})

	t.Run("env path", func(t *testing.T) {
		want := writeConfig(t, "api:\n  timeout: 1s\n")
		t.Setenv(ConfigPathEnvVar, want)
		got, err := findConfigFile("")
		if err != nil {
			t.Fatalf("findConfigFile() error = %v", err)
		}
		if got != want {
			t.Errorf("findConfigFile() = %q, want %q", got, want)
		}
	})
}

func TestLoadEnvVars(t *testing.T) {
	isolateEnv(t)
	t.Setenv("GOOKINS_API_URL", "http://192.168.165.88:8084/")
	t.Setenv("GOOKINS_API_TIMEOUT", "5s")
	t.Setenv("GOOKINS_STORE_EPHEMERAL", "true")
	t.Setenv("GOOKINS_CORS_ORIGINS", "http://a.local, http://b.local,")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "http://192.168.165.88:8084" {
		t.Errorf("API.BaseURL = %q, want trailing slash trimmed", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("API.Timeout = %v, want 5s", cfg.API.Timeout)
	}
	if !cfg.Store.Ephemeral {
		t.Error("Store.Ephemeral should be true")
	}
	want := []string{"http://a.local", "http://b.local"}
	if !reflect.DeepEqual(cfg.Console.CORSOrigins, want) {
		t.Errorf("Console.CORSOrigins = %v, want %v", cfg.Console.CORSOrigins, want)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Console.Listen != "127.0.0.1:8085" {
		t.Errorf("Console.Listen = %q, want default", cfg.Console.Listen)
	}
}

func TestLoadConfigFile(t *testing.T) {
	isolateEnv(t)
	path := writeConfig(t, `
api:
  base_url: http://tasks.internal:9000
  timeout: 10s
console:
  listen: 0.0.0.0:9999
  cors_origins:
    - http://console.internal
logging:
  format: json
`)

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != "http://tasks.internal:9000" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("API.Timeout = %v, want 10s", cfg.API.Timeout)
	}
	if cfg.Console.Listen != "0.0.0.0:9999" {
		t.Errorf("Console.Listen = %q", cfg.Console.Listen)
	}
	if len(cfg.Console.CORSOrigins) != 1 || cfg.Console.CORSOrigins[0] != "http://console.internal" {
		t.Errorf("Console.CORSOrigins = %v", cfg.Console.CORSOrigins)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
}

func TestLoadPrecedence(t *testing.T) {
	isolateEnv(t)
	path := writeConfig(t, "api:\n  base_url: http://file.local:1\n  timeout: 10s\n")
	t.Setenv("GOOKINS_API_URL", "http://env.local:2")

	cfg, err := Load(path, map[string]any{"api.timeout": "3s"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != "http://env.local:2" {
		t.Errorf("env should override file, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Errorf("override should win, got %v", cfg.API.Timeout)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
		wantKey   string
	}{
		{"bad base url", map[string]any{"api.base_url": "not a url"}, "api.base_url"},
		{"zero timeout", map[string]any{"api.timeout": "0s"}, "api.timeout"},
		{"bad listen", map[string]any{"console.listen": "nowhere"}, "console.listen"},
		{"bad format", map[string]any{"logging.format": "xml"}, "logging.format"},
		{"negative gc interval", map[string]any{"store.gc_interval": "-1m"}, "store.gc_interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			_, err := Load("", tt.overrides)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var verrs validation.Errors
			if !errors.As(err, &verrs) {
				t.Fatalf("error = %v, want validation.Errors", err)
			}
			found := false
			for _, fe := range verrs {
				if fe.Key == tt.wantKey {
					found = true
				}
			}
			if !found {
				t.Errorf("errors %v do not mention %s", verrs, tt.wantKey)
			}
		})
	}
}

func TestValidateCrossField(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"query in base url", func(c *Config) { c.API.BaseURL = "http://x.local:1/?a=b" }, true},
		{"no store path", func(c *Config) { c.Store.Path = "" }, true},
		{"no store path but ephemeral", func(c *Config) { c.Store.Path = ""; c.Store.Ephemeral = true }, false},
		{"unknown level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"disabled level", func(c *Config) { c.Logging.Level = "disabled" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

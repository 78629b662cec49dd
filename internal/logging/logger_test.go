// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got '%s'", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected default format 'console', got '%s'", cfg.Format)
	}
	if cfg.Output == nil {
		t.Error("expected default output to be set")
	}
}

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Info().Str("path", "/task/list").Msg("request sent")

	output := buf.String()
	if !strings.Contains(output, "request sent") {
		t.Errorf("expected output to contain message, got: %s", output)
	}
	if !strings.Contains(output, `"level":"info"`) {
		t.Errorf("expected output to contain level, got: %s", output)
	}
	if !strings.Contains(output, `"path":"/task/list"`) {
		t.Errorf("expected output to contain field, got: %s", output)
	}
}

func TestInitLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Info().Msg("hidden")
	Warn().Msg("shown")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("info event should be filtered at warn level: %s", output)
	}
	if !strings.Contains(output, "shown") {
		t.Errorf("warn event missing: %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"disabled", zerolog.Disabled},
		{"off", zerolog.Disabled},
		{"DEBUG", zerolog.DebugLevel},
		{" warn ", zerolog.WarnLevel},
		{"invalid", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidLevel(t *testing.T) {
	t.Parallel()

	for _, l := range []string{"trace", "debug", "info", "WARN", "error", "disabled"} {
		if !ValidLevel(l) {
			t.Errorf("ValidLevel(%q) = false, want true", l)
		}
	}
	for _, l := range []string{"", "verbose", "panic!"} {
		if ValidLevel(l) {
			t.Errorf("ValidLevel(%q) = true, want false", l)
		}
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	SetLogger(NewTestLogger(&buf))
	defer Init(DefaultConfig())

	l := WithComponent("pipeline")
	l.Info().Msg("hello")

	if !strings.Contains(buf.String(), `"component":"pipeline"`) {
		t.Errorf("expected component field, got: %s", buf.String())
	}
}

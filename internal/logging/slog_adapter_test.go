// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSlogHandlerWritesThroughZerolog(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer Init(DefaultConfig())

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandlerWithLogger(NewTestLogger(&buf)))

	logger.Warn("service restarted", "service", "console-http", "backoff", 2*time.Second)

	out := buf.String()
	for _, want := range []string{`"level":"warn"`, `"service":"console-http"`, "service restarted"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestSlogHandlerGroupsAndAttrs(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer Init(DefaultConfig())

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandlerWithLogger(NewTestLogger(&buf))).
		With("tree", "root").
		WithGroup("supervisor")

	logger.Info("event", "failures", 3)

	out := buf.String()
	if !strings.Contains(out, `"supervisor.tree":"root"`) && !strings.Contains(out, `"tree":"root"`) {
		t.Errorf("missing pre-set attr: %s", out)
	}
	if !strings.Contains(out, `"supervisor.failures":3`) {
		t.Errorf("missing grouped attr: %s", out)
	}
}

func TestSlogHandlerEnabled(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer Init(DefaultConfig())

	h := NewSlogHandlerWithLogger(NewTestLogger(&bytes.Buffer{}).Level(zerolog.WarnLevel))
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled on a warn logger")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled on a warn logger")
	}
}

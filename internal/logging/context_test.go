// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestGenerateRequestID(t *testing.T) {
	t.Parallel()

	id1 := GenerateRequestID()
	id2 := GenerateRequestID()
	if len(id1) != 36 {
		t.Errorf("expected 36-character request ID, got %d", len(id1))
	}
	if id1 == id2 {
		t.Error("expected unique request IDs")
	}
}

func TestRequestIDContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if id := RequestIDFromContext(ctx); id != "" {
		t.Errorf("expected empty request ID, got %s", id)
	}

	ctx = ContextWithRequestID(ctx, "req-1")
	if id := RequestIDFromContext(ctx); id != "req-1" {
		t.Errorf("RequestIDFromContext() = %q, want req-1", id)
	}
}

func TestNavigationContext(t *testing.T) {
	t.Parallel()

	ctx := ContextWithNavigation(context.Background(), "/task")
	if p := NavigationFromContext(ctx); p != "/task" {
		t.Errorf("NavigationFromContext() = %q, want /task", p)
	}
}

func TestCtxAddsFields(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	SetLogger(NewTestLogger(&buf))
	defer Init(DefaultConfig())

	ctx := ContextWithRequestID(context.Background(), "req-42")
	ctx = ContextWithNavigation(ctx, "/user")
	Ctx(ctx).Info().Msg("loaded")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-42"`) {
		t.Errorf("missing request_id: %s", out)
	}
	if !strings.Contains(out, `"view":"/user"`) {
		t.Errorf("missing view: %s", out)
	}
}

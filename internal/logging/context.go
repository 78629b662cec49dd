// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	requestIDKey  contextKey = "request_id"
	navigationKey contextKey = "navigation"
)

// GenerateRequestID returns a fresh UUID v4.
func GenerateRequestID() string {
	return uuid.New().String()
}

// ContextWithRequestID tags ctx with the id of an outbound or inbound request.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request id or "".
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithNavigation tags ctx with the view path being navigated to.
func ContextWithNavigation(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, navigationKey, path)
}

// NavigationFromContext returns the view path or "".
func NavigationFromContext(ctx context.Context) string {
	if p, ok := ctx.Value(navigationKey).(string); ok {
		return p
	}
	return ""
}

// Ctx returns the global logger enriched with the request id and view path
// found in ctx.
//
//	logging.Ctx(ctx).Info().Msg("Task list loaded")
func Ctx(ctx context.Context) *zerolog.Logger {
	logCtx := Logger().With()
	if id := RequestIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("request_id", id)
	}
	if p := NavigationFromContext(ctx); p != "" {
		logCtx = logCtx.Str("view", p)
	}
	l := logCtx.Logger()
	return &l
}

// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

// Package notify delivers short user-facing messages such as "session
// expired" or a failed call's server message.
package notify

import (
	"context"
	"time"
)

// Level is the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// DefaultDuration is how long a notification stays visible.
const DefaultDuration = 5 * time.Second

// Notification is one message for the user.
type Notification struct {
	Level    Level         `json:"level"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"duration"`
}

// Error builds an error-level notification with the default duration.
func Error(msg string) Notification {
	return Notification{Level: LevelError, Message: msg, Duration: DefaultDuration}
}

// Warning builds a warning-level notification with the default duration.
func Warning(msg string) Notification {
	return Notification{Level: LevelWarning, Message: msg, Duration: DefaultDuration}
}

// Success builds a success-level notification with the default duration.
func Success(msg string) Notification {
	return Notification{Level: LevelSuccess, Message: msg, Duration: DefaultDuration}
}

// Notifier shows notifications to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Func adapts a function to Notifier.
type Func func(ctx context.Context, n Notification)

func (f Func) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// Discard drops every notification.
var Discard Notifier = Func(func(context.Context, Notification) {})

type multi []Notifier

// Multi fans a notification out to every non-nil notifier in order.
func Multi(notifiers ...Notifier) Notifier {
	out := make(multi, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (m multi) Notify(ctx context.Context, n Notification) {
	for _, notifier := range m {
		notifier.Notify(ctx, n)
	}
}

type contextKey struct{}

// WithNotifier routes notifications raised while serving ctx to n.
func WithNotifier(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, contextKey{}, n)
}

// FromContext returns the notifier stored by WithNotifier, or fallback.
func FromContext(ctx context.Context, fallback Notifier) Notifier {
	if n, ok := ctx.Value(contextKey{}).(Notifier); ok && n != nil {
		return n
	}
	if fallback == nil {
		return Discard
	}
	return fallback
}

// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package notify

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gookins-admin/internal/logging"
)

// LogNotifier writes notifications to the structured log.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, n Notification) {
	l := logging.Ctx(ctx)
	var event *zerolog.Event
	switch n.Level {
	case LevelError:
		event = l.Error()
	case LevelWarning:
		event = l.Warn()
	default:
		event = l.Info()
	}
	event.Str("component", "notify").
		Str("level_hint", string(n.Level)).
		Dur("duration", n.Duration).
		Msg(n.Message)
}

// WriterNotifier prints one line per notification, for terminals.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterNotifier returns a WriterNotifier printing to w.
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (wn *WriterNotifier) Notify(_ context.Context, n Notification) {
	wn.mu.Lock()
	defer wn.mu.Unlock()
	fmt.Fprintf(wn.w, "[%s] %s\n", strings.ToUpper(string(n.Level)), n.Message)
}

// Recorder keeps every notification it receives.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// Notifications returns a copy of what was recorded, oldest first.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Len reports how many notifications were recorded.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

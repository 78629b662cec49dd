// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package pipeline

import (
	"github.com/tomtom215/gookins-admin/internal/metrics"
	"github.com/tomtom215/gookins-admin/internal/notify"
)

// DefaultStages returns the standard stage order. A nil m leaves out the
// metrics stage.
func DefaultStages(tokens TokenStore, notifier notify.Notifier, m *metrics.Metrics) []Stage {
	stages := []Stage{
		RequestID(),
		Authorization(tokens),
		Logging(),
	}
	if m != nil {
		stages = append(stages, Metrics(m))
	}
	return append(stages, Classify(tokens, notifier))
}

// Default builds a Client with DefaultStages.
func Default(cfg Config, tokens TokenStore, notifier notify.Notifier, m *metrics.Metrics) (*Client, error) {
	return New(cfg, DefaultStages(tokens, notifier, m)...)
}

// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/tomtom215/gookins-admin/internal/api"
	"github.com/tomtom215/gookins-admin/internal/config"
	"github.com/tomtom215/gookins-admin/internal/logging"
	"github.com/tomtom215/gookins-admin/internal/metrics"
	"github.com/tomtom215/gookins-admin/internal/notify"
	"github.com/tomtom215/gookins-admin/internal/pipeline"
	"github.com/tomtom215/gookins-admin/internal/router"
	"github.com/tomtom215/gookins-admin/internal/session"
)

// app wires one token store into the pipeline, the API client and the
// router. It lives for a single command.
type app struct {
	cfg *config.Config

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	output string

	storage session.Storage
	badger  *session.BadgerStorage

	tokens   *session.Store
	metrics  *metrics.Metrics
	notifier notify.Notifier
	pipeline *pipeline.Client
	api      *api.Client
	session  *api.Session
	router   *router.Router

	unsubscribe func()
}

func newApp(cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) (*app, error) {
	a := &app{
		cfg:     cfg,
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
		output:  "text",
		metrics: metrics.Default,
	}

	if cfg.Store.Ephemeral {
		a.storage = session.NewMemoryStorage()
	} else {
		// Shared mode lets one-shot commands run next to "serve".
		b, err := session.OpenBadgerShared(cfg.Store.Path, cfg.Store.LockWait)
		if err != nil {
			return nil, storeError(cfg.Store.Path, err)
		}
		a.storage, a.badger = b, b
	}

	tokens, err := session.NewStore(a.storage)
	if session.IsLocked(err) {
		a.Close()
		return nil, storeError(cfg.Store.Path, err)
	}
	if err != nil {
		logging.Warn().Err(err).Str("path", cfg.Store.Path).Msg("Stored session token unreadable, starting logged out")
	}
	a.tokens = tokens
	a.metrics.RecordTokenChange(tokens.Token())
	a.unsubscribe = tokens.Subscribe(a.metrics.RecordTokenChange)

	a.notifier = notify.Multi(notify.NewWriterNotifier(stderr), a.countNotifications())

	a.pipeline, err = pipeline.Default(pipeline.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: cfg.API.UserAgent,
	}, tokens, a.notifier, a.metrics)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("build request pipeline: %w", err)
	}

	a.api = api.New(a.pipeline)
	a.session = api.NewSession(a.api.Users, tokens)
	a.router = router.NewDefault(tokens, router.WithMetrics(a.metrics))

	logging.Debug().
		Str("api", cfg.API.BaseURL).
		Bool("ephemeral", cfg.Store.Ephemeral).
		Bool("logged_in", tokens.HasToken()).
		Msg("Configuration loaded")
	return a, nil
}

// storeError explains a token directory another process will not release.
func storeError(path string, err error) error {
	if session.IsLocked(err) {
		return fmt.Errorf("session store %s is held by another process; "+
			"stop it or use -store or -ephemeral: %w", path, err)
	}
	return err
}

// countNotifications feeds the notification counter.
func (a *app) countNotifications() notify.Notifier {
	return notify.Func(func(_ context.Context, n notify.Notification) {
		a.metrics.RecordNotification(string(n.Level))
	})
}

// exec opens cmd's view through the router, then runs it.
func (a *app) exec(ctx context.Context, cmd command, args []string) error {
	if cmd.view != "" {
		res, err := a.router.Push(ctx, cmd.view)
		if err != nil {
			return fmt.Errorf("open %s: %w", cmd.view, err)
		}
		if res.Redirected {
			a.notifier.Notify(ctx, notify.Warning(`Not logged in, run "gookins-admin login" first`))
			return errRedirected
		}
		ctx = logging.ContextWithNavigation(ctx, res.Match.Path)
	}
	return cmd.run(ctx, a, args)
}

// Close releases the token store.
func (a *app) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	if a.badger != nil {
		if err := a.badger.Close(); err != nil {
			logging.Err(err).Msg("Error closing session store")
		}
	}
}

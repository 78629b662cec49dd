// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/gookins-admin/internal/console"
	"github.com/tomtom215/gookins-admin/internal/logging"
	"github.com/tomtom215/gookins-admin/internal/notify"
	"github.com/tomtom215/gookins-admin/internal/supervisor"
	"github.com/tomtom215/gookins-admin/internal/supervisor/services"
)

func cmdServe(ctx context.Context, a *app, args []string) error {
	fs := commandFlags(a, "serve")
	listen := fs.String("listen", a.cfg.Console.Listen, "console listen address")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	consoleCfg := a.cfg.Console
	consoleCfg.Listen = *listen

	srv := console.New(console.Deps{
		Config:   consoleCfg,
		API:      a.api,
		Tokens:   a.tokens,
		Router:   a.router,
		Metrics:  a.metrics,
		Notifier: notify.Multi(notify.LogNotifier{}, a.countNotifications()),
	})

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: consoleCfg.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	httpServer := srv.NewHTTPServer()
	tree.AddConsoleService(services.NewHTTPServerService(httpServer, consoleCfg.ShutdownTimeout))
	logging.Info().Str("addr", httpServer.Addr).Str("api", a.cfg.API.BaseURL).Msg("Console service added")

	if a.badger != nil && a.cfg.Store.GCInterval > 0 {
		tree.AddStorageService(services.NewStorageGCService(a.badger, a.cfg.Store.GCInterval))
		logging.Debug().Dur("interval", a.cfg.Store.GCInterval).Msg("Storage GC service added")
	}

	// The channel yields exactly one result and is never closed.
	errCh := tree.ServeBackground(ctx)
	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) && !errors.Is(serveErr, context.DeadlineExceeded) {
		return fmt.Errorf("supervisor tree: %w", serveErr)
	}
	logging.Info().Msg("Console stopped")
	return nil
}

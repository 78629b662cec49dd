// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

// Command gookins-admin administers a gookins task backend.
//
// Every command that touches the backend goes through one request pipeline:
// the stored session token is attached verbatim as the Authorization
// header, responses are classified by their envelope code, and problems
// are reported as notifications on stderr. Commands that open a protected
// view are refused with exit status 4 until "login" has stored a token.
//
//	gookins-admin login -name admin -password-stdin < pw.txt
//	gookins-admin task list
//	gookins-admin task run -name nightly -pipeline-file nightly.yaml
//	gookins-admin task state nightly
//	gookins-admin serve
//
// Configuration is layered: built-in defaults, then gookins-admin.yaml (see
// -config and CONFIG_PATH), then GOOKINS_* environment variables, then
// global flags.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/gookins-admin/internal/logging"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tomtom215/gookins-admin/internal/config"
	"github.com/tomtom215/gookins-admin/internal/logging"
	"github.com/tomtom215/gookins-admin/internal/pipeline"
)

// Exit statuses.
const (
	exitOK = 0
	// exitFailure covers rejected calls and local errors.
	exitFailure = 1
	exitUsage   = 2
	// exitAppError means the backend answered with a non-success code.
	exitAppError = 3
	// exitRedirect means the route guard refused the command's view.
	exitRedirect = 4
)

var (
	errApplication = errors.New("backend reported an application error")
	errRedirected  = errors.New("not logged in")
)

// usageError is a bad command line.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// globalFlags override configuration when set.
type globalFlags struct {
	configPath string
	apiURL     string
	timeout    time.Duration
	storePath  string
	ephemeral  bool
	logLevel   string
	logFormat  string
	output     string
}

func (g *globalFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&g.configPath, "config", "", "config file (default: $"+config.ConfigPathEnvVar+" or "+strings.Join(config.DefaultConfigPaths, ", ")+")")
	fs.StringVar(&g.apiURL, "api-url", "", "backend base URL")
	fs.DurationVar(&g.timeout, "timeout", 0, "per-call timeout")
	fs.StringVar(&g.storePath, "store", "", "session token directory")
	fs.BoolVar(&g.ephemeral, "ephemeral", false, "keep the session token in memory only")
	fs.StringVar(&g.logLevel, "log-level", "", "trace, debug, info, warn, error or disabled")
	fs.StringVar(&g.logFormat, "log-format", "", "console or json")
	fs.StringVar(&g.output, "o", "text", "output format: text or json")
}

func (g *globalFlags) overrides() map[string]any {
	o := make(map[string]any)
	if g.apiURL != "" {
		o["api.base_url"] = g.apiURL
	}
	if g.timeout > 0 {
		o["api.timeout"] = g.timeout.String()
	}
	if g.storePath != "" {
		o["store.path"] = g.storePath
	}
	if g.ephemeral {
		o["store.ephemeral"] = true
	}
	if g.logLevel != "" {
		o["logging.level"] = g.logLevel
	}
	if g.logFormat != "" {
		o["logging.format"] = g.logFormat
	}
	return o
}

// run executes one command line and returns the process exit status.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var g globalFlags
	fs := flag.NewFlagSet("gookins-admin", flag.ContinueOnError)
	fs.SetOutput(stderr)
	g.register(fs)
	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if g.output != "text" && g.output != "json" {
		fmt.Fprintf(stderr, "gookins-admin: -o must be text or json, got %q\n", g.output)
		return exitUsage
	}

	cmd, rest, ok := lookupCommand(fs.Args())
	if !ok {
		fs.Usage()
		return exitUsage
	}
	if cmd.name == "version" {
		printVersion(stdout)
		return exitOK
	}
	if cmd.name == "help" {
		printUsage(stdout, fs)
		return exitOK
	}

	cfg, err := config.Load(g.configPath, g.overrides())
	if err != nil {
		fmt.Fprintf(stderr, "gookins-admin: %v\n", err)
		return exitFailure
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
		Output: stderr,
	})

	a, err := newApp(cfg, stdin, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "gookins-admin: %v\n", err)
		return exitFailure
	}
	defer a.Close()
	a.output = g.output

	return exitCode(stderr, cmd, a.exec(ctx, cmd, rest))
}

// exitCode reports err and maps it to an exit status. Pipeline rejections
// were already shown as notifications, so only their detail is logged.
func exitCode(stderr io.Writer, cmd command, err error) int {
	var usage *usageError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &usage):
		fmt.Fprintf(stderr, "gookins-admin %s: %v\nusage: gookins-admin %s %s\n", cmd.name, err, cmd.name, cmd.usage)
		return exitUsage
	case errors.Is(err, errApplication):
		return exitAppError
	case errors.Is(err, errRedirected):
		return exitRedirect
	case notified(err):
		logging.Debug().Err(err).Str("command", cmd.name).Msg("Command rejected")
		return exitFailure
	default:
		fmt.Fprintf(stderr, "gookins-admin %s: %v\n", cmd.name, err)
		return exitFailure
	}
}

func notified(err error) bool {
	return pipeline.IsTransport(err) || pipeline.IsUnauthorized(err)
}

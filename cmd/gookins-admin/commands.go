// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/tomtom215/gookins-admin/internal/router"
)

// command is one CLI verb. view is the route it opens before running;
// commands without a view bypass the guard.
type command struct {
	name    string
	usage   string
	summary string
	view    string
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = []command{
	{name: "login", usage: "-name NAME [-password PW | -password-stdin]", summary: "authenticate and store the session token", view: router.PathLogin, run: cmdLogin},
	{name: "logout", summary: "forget the stored session token", run: cmdLogout},
	{name: "whoami", summary: "show the stored session", view: router.PathHome, run: cmdWhoami},

	{name: "user list", summary: "list users", view: router.PathUser, run: cmdUserList},
	{name: "user add", usage: "-name NAME -password PW [-avatar URL]", summary: "create a user", view: router.PathUser, run: cmdUserAdd},
	{name: "user update", usage: "-id ID -name NAME -password PW [-avatar URL]", summary: "update a user", view: router.PathUser, run: cmdUserUpdate},
	{name: "user delete", usage: "ID", summary: "delete a user", view: router.PathUser, run: cmdUserDelete},

	{name: "task list", summary: "list tasks", view: router.PathTask, run: cmdTaskList},
	{name: "task add", usage: "-name NAME [-description TEXT] (-pipeline YAML | -pipeline-file PATH)", summary: "create a task", view: router.PathTask, run: cmdTaskAdd},
	{name: "task update", usage: "-id ID -name NAME [-description TEXT] (-pipeline YAML | -pipeline-file PATH)", summary: "update a task", view: router.PathTask, run: cmdTaskUpdate},
	{name: "task delete", usage: "ID", summary: "delete a task", view: router.PathTask, run: cmdTaskDelete},
	{name: "task run", usage: "-name NAME [-description TEXT] (-pipeline YAML | -pipeline-file PATH)", summary: "run a task", view: router.PathTask, run: cmdTaskRun},
	{name: "task cancel", usage: "NAME", summary: "cancel a running task", view: router.PathTask, run: cmdTaskCancel},
	{name: "task state", usage: "NAME", summary: "show a task's execution state", view: router.PathTask, run: cmdTaskState},
	{name: "task toggle", usage: "NAME", summary: "enable or disable a task", view: router.PathTask, run: cmdTaskToggle},

	{name: "serve", summary: "serve the admin console over HTTP", run: cmdServe},
	{name: "version", summary: "print the version"},
	{name: "help", summary: "show this help"},
}

// lookupCommand matches the longest command name prefix of args.
func lookupCommand(args []string) (command, []string, bool) {
	if len(args) >= 2 {
		name := args[0] + " " + args[1]
		for _, c := range commands {
			if c.name == name {
				return c, args[2:], true
			}
		}
	}
	if len(args) >= 1 {
		for _, c := range commands {
			if c.name == args[0] {
				return c, args[1:], true
			}
		}
	}
	return command{}, nil, false
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "usage: gookins-admin [flags] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range commands {
		fmt.Fprintf(tw, "  %s\t%s\n", c.name, c.summary)
	}
	_ = tw.Flush()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "flags:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

// commandFlags returns a flag set for a subcommand's own flags.
func commandFlags(a *app, name string) *flag.FlagSet {
	fs := flag.NewFlagSet("gookins-admin "+name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}
	if fs.NArg() > 0 {
		return usagef("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return nil
}

// oneArg returns the single positional argument of a command.
func oneArg(args []string, what string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return "", usagef("expected exactly one %s", what)
	}
	return args[0], nil
}

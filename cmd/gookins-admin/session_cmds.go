// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tomtom215/gookins-admin/internal/api"
	"github.com/tomtom215/gookins-admin/internal/notify"
)

// passwordEnvVar supplies the login password when no flag does.
const passwordEnvVar = "GOOKINS_PASSWORD"

func cmdLogin(ctx context.Context, a *app, args []string) error {
	var (
		form      api.LoginForm
		fromStdin bool
	)
	fs := commandFlags(a, "login")
	fs.StringVar(&form.Name, "name", "", "user name")
	fs.StringVar(&form.Password, "password", "", "password (prefer -password-stdin or $"+passwordEnvVar+")")
	fs.BoolVar(&fromStdin, "password-stdin", false, "read the password from the first line of stdin")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if form.Name == "" {
		return usagef("-name is required")
	}

	switch {
	case fromStdin && form.Password != "":
		return usagef("-password and -password-stdin are mutually exclusive")
	case fromStdin:
		pw, err := readLine(a)
		if err != nil {
			return err
		}
		form.Password = pw
	case form.Password == "":
		form.Password = os.Getenv(passwordEnvVar)
	}

	reply, err := a.session.Login(ctx, form)
	if err != nil || !reply.OK() {
		return report(a, reply, err, nil)
	}
	a.notifier.Notify(ctx, notify.Success("Logged in as "+form.Name))
	if a.output == "json" {
		return a.printJSON(a.sessionInfo())
	}
	return nil
}

func readLine(a *app) (string, error) {
	sc := bufio.NewScanner(a.stdin)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return "", usagef("no password on stdin")
	}
	return strings.TrimRight(sc.Text(), "\r"), nil
}

func cmdLogout(ctx context.Context, a *app, args []string) error {
	if err := parseFlags(commandFlags(a, "logout"), args); err != nil {
		return err
	}
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.notifier.Notify(ctx, notify.Success("Logged out"))
	return nil
}

// sessionView is what whoami reports.
type sessionView struct {
	LoggedIn bool           `json:"logged_in"`
	Token    *api.TokenInfo `json:"token,omitempty"`
}

func (a *app) sessionInfo() sessionView {
	v := sessionView{LoggedIn: a.tokens.HasToken()}
	if info, err := api.InspectToken(a.tokens.Token(), time.Now()); err == nil {
		v.Token = &info
	}
	return v
}

func cmdWhoami(_ context.Context, a *app, args []string) error {
	if err := parseFlags(commandFlags(a, "whoami"), args); err != nil {
		return err
	}
	v := a.sessionInfo()
	if a.output == "json" {
		return a.printJSON(v)
	}

	if v.Token == nil {
		fmt.Fprintln(a.stdout, "logged in (opaque token)")
		return nil
	}
	fmt.Fprintf(a.stdout, "logged in as %s\n", v.Token.Username)
	if !v.Token.ExpiresAt.IsZero() {
		state := "expires"
		if v.Token.Expired {
			state = "expired"
		}
		fmt.Fprintf(a.stdout, "token %s %s\n", state, formatTime(v.Token.ExpiresAt))
	}
	return nil
}

// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/gookins-admin/internal/api"
	"github.com/tomtom215/gookins-admin/internal/notify"
)

func (a *app) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintf(a.stdout, "%s\n", data)
	return err
}

// report prints a resolved reply. An application error prints the whole
// envelope, since the caller may still need its shape, and returns
// errApplication. A nil text prints the payload as JSON in either mode.
func report[T any](a *app, reply api.Reply[T], err error, text func(w io.Writer, data T)) error {
	if err != nil {
		return err
	}
	if !reply.OK() {
		if err := a.printJSON(reply.Envelope); err != nil {
			return err
		}
		return errApplication
	}
	if a.output == "json" || text == nil {
		return a.printJSON(reply.Data)
	}
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	text(tw, reply.Data)
	return tw.Flush()
}

// done reports a call with no payload: a success notification in text
// mode, {} in json mode.
func done(ctx context.Context, a *app, reply api.Reply[api.Empty], err error, msg string) error {
	if err == nil && reply.OK() && a.output == "text" {
		a.notifier.Notify(ctx, notify.Success(msg))
		return nil
	}
	return report(a, reply, err, nil)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}

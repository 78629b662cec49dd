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

	"github.com/tomtom215/gookins-admin/internal/api"
)

func cmdUserList(ctx context.Context, a *app, args []string) error {
	if err := parseFlags(commandFlags(a, "user list"), args); err != nil {
		return err
	}
	reply, err := a.api.Users.List(ctx)
	return report(a, reply, err, func(w io.Writer, users []api.User) {
		fmt.Fprintln(w, "ID\tNAME\tAVATAR\tCREATED")
		for _, u := range users {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Name, u.Avatar, formatTime(u.CreatedAt))
		}
	})
}

func userFlags(fs *flag.FlagSet, form *api.UserForm, withID bool) {
	if withID {
		fs.StringVar(&form.ID, "id", "", "user id")
	}
	fs.StringVar(&form.Name, "name", "", "user name")
	fs.StringVar(&form.Password, "password", "", "password")
	fs.StringVar(&form.Avatar, "avatar", "", "avatar URL")
}

func cmdUserAdd(ctx context.Context, a *app, args []string) error {
	var form api.UserForm
	fs := commandFlags(a, "user add")
	userFlags(fs, &form, false)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if form.Name == "" {
		return usagef("-name is required")
	}
	reply, err := a.api.Users.Add(ctx, form)
	return done(ctx, a, reply, err, "User "+form.Name+" created")
}

func cmdUserUpdate(ctx context.Context, a *app, args []string) error {
	var form api.UserForm
	fs := commandFlags(a, "user update")
	userFlags(fs, &form, true)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if form.ID == "" {
		return usagef("-id is required")
	}
	reply, err := a.api.Users.Update(ctx, form)
	return done(ctx, a, reply, err, "User "+form.ID+" updated")
}

func cmdUserDelete(ctx context.Context, a *app, args []string) error {
	id, err := oneArg(args, "user id")
	if err != nil {
		return err
	}
	reply, err := a.api.Users.Delete(ctx, id)
	return done(ctx, a, reply, err, "User "+id+" deleted")
}

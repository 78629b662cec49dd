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
	"os"

	"github.com/tomtom215/gookins-admin/internal/api"
)

func cmdTaskList(ctx context.Context, a *app, args []string) error {
	if err := parseFlags(commandFlags(a, "task list"), args); err != nil {
		return err
	}
	reply, err := a.api.Tasks.List(ctx)
	return report(a, reply, err, func(w io.Writer, tasks []api.Task) {
		fmt.Fprintln(w, "ID\tNAME\tENABLED\tUPDATED\tDESCRIPTION")
		for _, t := range tasks {
			fmt.Fprintf(w, "%d\t%s\t%t\t%s\t%s\n", t.ID, t.Name, !t.Disabled, formatTime(t.UpdatedAt), t.Description)
		}
	})
}

// taskFlags binds a TaskForm. The pipeline comes inline or from a file,
// never both.
type taskFlags struct {
	form         api.TaskForm
	pipelineFile string
}

func (f *taskFlags) register(fs *flag.FlagSet, withID bool) {
	if withID {
		fs.StringVar(&f.form.ID, "id", "", "task id")
	}
	fs.StringVar(&f.form.Name, "name", "", "task name")
	fs.StringVar(&f.form.Description, "description", "", "task description")
	fs.StringVar(&f.form.PipeLine, "pipeline", "", "pipeline definition (YAML)")
	fs.StringVar(&f.pipelineFile, "pipeline-file", "", "read the pipeline definition from a file")
}

func (f *taskFlags) parse(a *app, name string, args []string, withID bool) (api.TaskForm, error) {
	fs := commandFlags(a, name)
	f.register(fs, withID)
	if err := parseFlags(fs, args); err != nil {
		return api.TaskForm{}, err
	}
	if withID && f.form.ID == "" {
		return api.TaskForm{}, usagef("-id is required")
	}
	if f.form.Name == "" {
		return api.TaskForm{}, usagef("-name is required")
	}
	if f.pipelineFile != "" {
		if f.form.PipeLine != "" {
			return api.TaskForm{}, usagef("-pipeline and -pipeline-file are mutually exclusive")
		}
		data, err := os.ReadFile(f.pipelineFile)
		if err != nil {
			return api.TaskForm{}, fmt.Errorf("read pipeline: %w", err)
		}
		f.form.PipeLine = string(data)
	}
	return f.form, nil
}

func cmdTaskAdd(ctx context.Context, a *app, args []string) error {
	var f taskFlags
	form, err := f.parse(a, "task add", args, false)
	if err != nil {
		return err
	}
	reply, err := a.api.Tasks.Add(ctx, form)
	return done(ctx, a, reply, err, "Task "+form.Name+" created")
}

func cmdTaskUpdate(ctx context.Context, a *app, args []string) error {
	var f taskFlags
	form, err := f.parse(a, "task update", args, true)
	if err != nil {
		return err
	}
	reply, err := a.api.Tasks.Update(ctx, form)
	return done(ctx, a, reply, err, "Task "+form.Name+" updated")
}

func cmdTaskRun(ctx context.Context, a *app, args []string) error {
	var f taskFlags
	form, err := f.parse(a, "task run", args, false)
	if err != nil {
		return err
	}
	reply, err := a.api.Tasks.Run(ctx, form)
	return done(ctx, a, reply, err, "Task "+form.Name+" started")
}

func cmdTaskDelete(ctx context.Context, a *app, args []string) error {
	id, err := oneArg(args, "task id")
	if err != nil {
		return err
	}
	reply, err := a.api.Tasks.Delete(ctx, id)
	return done(ctx, a, reply, err, "Task "+id+" deleted")
}

func cmdTaskCancel(ctx context.Context, a *app, args []string) error {
	name, err := oneArg(args, "task name")
	if err != nil {
		return err
	}
	reply, err := a.api.Tasks.Cancel(ctx, name)
	return done(ctx, a, reply, err, "Task "+name+" canceled")
}

func cmdTaskState(ctx context.Context, a *app, args []string) error {
	name, err := oneArg(args, "task name")
	if err != nil {
		return err
	}
	reply, err := a.api.Tasks.State(ctx, name)
	return report(a, reply, err, func(w io.Writer, state api.TaskState) {
		fmt.Fprintf(w, "%s\t%s\n", name, state)
	})
}

func cmdTaskToggle(ctx context.Context, a *app, args []string) error {
	name, err := oneArg(args, "task name")
	if err != nil {
		return err
	}
	reply, err := a.api.Tasks.ToggleDisabled(ctx, name)
	return done(ctx, a, reply, err, "Task "+name+" toggled")
}

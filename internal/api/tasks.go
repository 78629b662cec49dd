// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package api

import (
	"context"
	"fmt"
	"net/http"
)

// TaskService covers /task/*.
type TaskService struct {
	sender Sender
}

// Add creates a task definition.
func (s *TaskService) Add(ctx context.Context, form TaskForm) (Reply[Empty], error) {
	return call[Empty](ctx, s.sender, http.MethodPost, RouteTaskAdd, RouteTaskAdd, form)
}

// Delete removes the task with id.
func (s *TaskService) Delete(ctx context.Context, id string) (Reply[Empty], error) {
	if err := required(id); err != nil {
		return Reply[Empty]{}, fmt.Errorf("task id: %w", err)
	}
	return call[Empty](ctx, s.sender, http.MethodDelete, RouteTaskDelete, expand(RouteTaskDelete, id), nil)
}

// Update changes the task identified by form.ID.
func (s *TaskService) Update(ctx context.Context, form TaskForm) (Reply[Empty], error) {
	return call[Empty](ctx, s.sender, http.MethodPut, RouteTaskUpdate, RouteTaskUpdate, form)
}

// List returns every task definition.
func (s *TaskService) List(ctx context.Context) (Reply[[]Task], error) {
	return call[[]Task](ctx, s.sender, http.MethodGet, RouteTaskList, RouteTaskList, nil)
}

// Run queues the task on the backend pool.
func (s *TaskService) Run(ctx context.Context, form TaskForm) (Reply[Empty], error) {
	return call[Empty](ctx, s.sender, http.MethodPost, RouteTaskRun, RouteTaskRun, form)
}

// Cancel stops a running task. The backend keys running tasks by name, so
// id is usually the task name.
func (s *TaskService) Cancel(ctx context.Context, id string) (Reply[Empty], error) {
	if err := required(id); err != nil {
		return Reply[Empty]{}, fmt.Errorf("task id: %w", err)
	}
	return call[Empty](ctx, s.sender, http.MethodPost, RouteTaskCancel, expand(RouteTaskCancel, id), nil)
}

// State returns the execution state of the named task.
func (s *TaskService) State(ctx context.Context, name string) (Reply[TaskState], error) {
	if err := required(name); err != nil {
		return Reply[TaskState]{}, fmt.Errorf("task name: %w", err)
	}
	return call[TaskState](ctx, s.sender, http.MethodGet, RouteTaskState, expand(RouteTaskState, name), nil)
}

// ToggleDisabled flips the disabled flag of the named task.
func (s *TaskService) ToggleDisabled(ctx context.Context, name string) (Reply[Empty], error) {
	if err := required(name); err != nil {
		return Reply[Empty]{}, fmt.Errorf("task name: %w", err)
	}
	return call[Empty](ctx, s.sender, http.MethodPost, RouteTaskDisable, expand(RouteTaskDisable, name), nil)
}

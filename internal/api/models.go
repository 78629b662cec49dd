// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package api

import (
	"errors"
	"strings"
	"time"
)

// ErrEmptyArgument is returned before sending when a required id or name is
// blank.
var ErrEmptyArgument = errors.New("argument must not be empty")

// User is a backend user record. The backend serializes its model without
// json tags, so keys are the Go field names.
type User struct {
	ID        uint       `json:"ID"`
	CreatedAt time.Time  `json:"CreatedAt"`
	UpdatedAt time.Time  `json:"UpdatedAt"`
	DeletedAt *time.Time `json:"DeletedAt,omitempty"`
	Name      string     `json:"Name"`
	Password  string     `json:"Password,omitempty"`
	Avatar    string     `json:"Avatar"`
}

// UserForm creates or updates a user. ID is empty on create.
type UserForm struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Avatar   string `json:"avatar,omitempty"`
}

// LoginForm is the body of POST /login.
type LoginForm struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Task is a backend task definition. PipeLine holds the YAML pipeline.
type Task struct {
	ID          uint       `json:"ID"`
	CreatedAt   time.Time  `json:"CreatedAt"`
	UpdatedAt   time.Time  `json:"UpdatedAt"`
	DeletedAt   *time.Time `json:"DeletedAt,omitempty"`
	Name        string     `json:"Name"`
	Description string     `json:"Description"`
	PipeLine    string     `json:"PipeLine"`
	Disabled    bool       `json:"Disabled"`
}

// TaskForm creates, updates or runs a task.
type TaskForm struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PipeLine    string `json:"pipeline"`
}

// TaskState is the execution state the task pool reports.
type TaskState string

const (
	TaskPending   TaskState = "pending"
	TaskRunning   TaskState = "running"
	TaskFailure   TaskState = "failure"
	TaskCancelled TaskState = "cancelled"
	TaskCompleted TaskState = "completed"
)

// Known reports whether s is one of the states the backend emits.
func (s TaskState) Known() bool {
	switch s {
	case TaskPending, TaskRunning, TaskFailure, TaskCancelled, TaskCompleted:
		return true
	}
	return false
}

// Finished reports whether the task will not change state on its own.
func (s TaskState) Finished() bool {
	return s == TaskFailure || s == TaskCancelled || s == TaskCompleted
}

func required(v string) error {
	if strings.TrimSpace(v) == "" {
		return ErrEmptyArgument
	}
	return nil
}

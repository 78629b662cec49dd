// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package api

import (
	"context"

	"github.com/tomtom215/gookins-admin/internal/pipeline"
)

// Sender sends one call. *pipeline.Client satisfies it.
type Sender interface {
	Send(ctx context.Context, d pipeline.Descriptor) (pipeline.Result, error)
}

// Client groups the backend services.
type Client struct {
	Users *UserService
	Tasks *TaskService
}

// New returns a Client sending through s.
func New(s Sender) *Client {
	return &Client{
		Users: &UserService{sender: s},
		Tasks: &TaskService{sender: s},
	}
}

// Empty stands in for calls whose success payload carries nothing.
type Empty struct{}

func call[T any](ctx context.Context, s Sender, method, route, path string, body any) (Reply[T], error) {
	res, err := s.Send(ctx, pipeline.Descriptor{
		Method: method,
		Path:   path,
		Route:  route,
		Body:   body,
	})
	if err != nil {
		return Reply[T]{}, err
	}
	return replyFrom[T](res)
}

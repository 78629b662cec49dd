// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
)

// UserService covers /login and /user/*.
type UserService struct {
	sender Sender
}

// Login authenticates and returns the session token. The token is read from
// data, either as a string or as {"token": ...}.
func (s *UserService) Login(ctx context.Context, form LoginForm) (Reply[string], error) {
	raw, err := call[json.RawMessage](ctx, s.sender, http.MethodPost, RouteLogin, RouteLogin, form)
	if err != nil || !raw.OK() {
		return Reply[string]{Envelope: raw.Envelope}, err
	}

	token, err := tokenFromPayload(raw.Data)
	if err != nil {
		return Reply[string]{}, err
	}
	return Reply[string]{Data: token}, nil
}

func tokenFromPayload(data json.RawMessage) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("login response carries no token")
	}
	var token string
	if err := json.Unmarshal(data, &token); err == nil {
		return token, nil
	}
	var wrapped struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return "", fmt.Errorf("decode login token: %w", err)
	}
	if wrapped.Token == "" {
		return "", fmt.Errorf("login response carries no token")
	}
	return wrapped.Token, nil
}

// List returns every user.
func (s *UserService) List(ctx context.Context) (Reply[[]User], error) {
	return call[[]User](ctx, s.sender, http.MethodGet, RouteUserList, RouteUserList, nil)
}

// Add creates a user.
func (s *UserService) Add(ctx context.Context, form UserForm) (Reply[Empty], error) {
	return call[Empty](ctx, s.sender, http.MethodPost, RouteUserAdd, RouteUserAdd, form)
}

// Update changes the user identified by form.ID.
func (s *UserService) Update(ctx context.Context, form UserForm) (Reply[Empty], error) {
	return call[Empty](ctx, s.sender, http.MethodPut, RouteUserUpdate, RouteUserUpdate, form)
}

// Delete removes the user with id.
func (s *UserService) Delete(ctx context.Context, id string) (Reply[Empty], error) {
	if err := required(id); err != nil {
		return Reply[Empty]{}, fmt.Errorf("user id: %w", err)
	}
	return call[Empty](ctx, s.sender, http.MethodDelete, RouteUserDelete, expand(RouteUserDelete, id), nil)
}

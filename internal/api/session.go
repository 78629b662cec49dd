// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package api

import (
	"context"
	"fmt"

	"github.com/tomtom215/gookins-admin/internal/logging"
)

// TokenWriter is the part of the session store login and logout change.
type TokenWriter interface {
	SetToken(token string) error
	CleanToken() error
}

// Session logs in and out, keeping the token store in step.
type Session struct {
	users  *UserService
	tokens TokenWriter
}

// NewSession returns a Session using users for /login and tokens for
// storage.
func NewSession(users *UserService, tokens TokenWriter) *Session {
	return &Session{users: users, tokens: tokens}
}

// Login calls /login and, on success, stores the returned token. An
// application error leaves the stored token as it was.
func (s *Session) Login(ctx context.Context, form LoginForm) (Reply[string], error) {
	reply, err := s.users.Login(ctx, form)
	if err != nil || !reply.OK() {
		return reply, err
	}
	if err := s.tokens.SetToken(reply.Data); err != nil {
		return reply, fmt.Errorf("store session token: %w", err)
	}
	logging.Ctx(ctx).Info().Str("user", form.Name).Msg("Logged in")
	return reply, nil
}

// Logout forgets the session token. The backend keeps no session state, so
// nothing is sent.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.tokens.CleanToken(); err != nil {
		return fmt.Errorf("clean session token: %w", err)
	}
	logging.Ctx(ctx).Info().Msg("Logged out")
	return nil
}

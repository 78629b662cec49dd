// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package pipeline

import (
	"context"
	"errors"

	"github.com/tomtom215/gookins-admin/internal/logging"
	"github.com/tomtom215/gookins-admin/internal/notify"
)

// Notification texts.
const (
	MsgRequestFailure    = "Request Failure"
	MsgResponseDataError = "Response Data Error"
	MsgResponseError     = "Response Error"
	MsgSessionExpired    = "Session expired, please log in again"
)

// TokenStore is the part of the session store the pipeline needs.
type TokenStore interface {
	TokenSource
	CleanToken() error
}

// Classify applies the outcome rules to every call:
//
//   - envelope code 401: clean the token, warn, reject with UnauthorizedError
//   - other non-200 code: notify the server message, keep the application
//     error result
//   - HTTP 401: clean the token, warn, reject with UnauthorizedError
//   - request failure: notify "Request Failure", reject
//   - other transport failure: notify its message, reject
//
// Notifications go to the notifier on ctx, or to fallback.
func Classify(tokens TokenStore, fallback notify.Notifier) Stage {
	expire := func(ctx context.Context) {
		if err := tokens.CleanToken(); err != nil {
			logging.Ctx(ctx).Error().Err(err).Str("component", "pipeline").Msg("Failed to clean expired session token")
		}
		notify.FromContext(ctx, fallback).Notify(ctx, notify.Warning(MsgSessionExpired))
	}

	return Stage{
		Name: "classify",
		Response: func(ctx context.Context, ex *Exchange) error {
			env := ex.Envelope
			switch env.Code {
			case CodeSuccess:
				return nil
			case CodeUnauthorized:
				expire(ctx)
				return &UnauthorizedError{Source: SourceEnvelope, Envelope: env}
			default:
				msg := env.Message
				if msg == "" {
					msg = MsgResponseDataError
				}
				notify.FromContext(ctx, fallback).Notify(ctx, notify.Error(msg))
				return nil
			}
		},
		Failure: func(ctx context.Context, ex *Exchange, err error) error {
			if IsUnauthorized(err) {
				return nil
			}
			var se *StatusError
			if errors.As(err, &se) && se.StatusCode == CodeUnauthorized {
				expire(ctx)
				return &UnauthorizedError{Source: SourceTransport, Envelope: se.Envelope, Err: err}
			}
			notify.FromContext(ctx, fallback).Notify(ctx, notify.Error(userMessage(err)))
			return nil
		},
	}
}

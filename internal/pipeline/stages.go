// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package pipeline

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gookins-admin/internal/logging"
	"github.com/tomtom215/gookins-admin/internal/metrics"
)

// RequestIDHeader carries the per-call correlation id.
const RequestIDHeader = "X-Request-ID"

// TokenSource yields the current session token, empty when logged out.
type TokenSource interface {
	Token() string
}

// RequestID tags each call with a uuid, reusing one already on ctx.
func RequestID() Stage {
	return Stage{
		Name: "request_id",
		Request: func(ctx context.Context, ex *Exchange) error {
			id := logging.RequestIDFromContext(ctx)
			if id == "" {
				id = logging.GenerateRequestID()
			}
			ex.RequestID = id
			ex.Request.Header.Set(RequestIDHeader, id)
			return nil
		},
	}
}

// Authorization attaches the raw token, without a scheme prefix, when one is
// held.
func Authorization(tokens TokenSource) Stage {
	return Stage{
		Name: "authorization",
		Request: func(_ context.Context, ex *Exchange) error {
			if tok := tokens.Token(); tok != "" {
				ex.Request.Header.Set("Authorization", tok)
			} else {
				ex.Request.Header.Del("Authorization")
			}
			return nil
		},
	}
}

func exchangeLogger(ctx context.Context, ex *Exchange) zerolog.Logger {
	return logging.Ctx(ctx).With().
		Str("component", "pipeline").
		Str("request_id", ex.RequestID).
		Str("method", ex.Descriptor.Method).
		Str("path", ex.Descriptor.Path).
		Logger()
}

// Logging writes one debug line per request and one line per outcome.
func Logging() Stage {
	return Stage{
		Name: "logging",
		Request: func(ctx context.Context, ex *Exchange) error {
			l := exchangeLogger(ctx, ex)
			l.Debug().Msg("Sending API request")
			return nil
		},
		Done: func(ctx context.Context, ex *Exchange) {
			l := exchangeLogger(ctx, ex)
			if ex.Err != nil {
				l.Warn().
					Err(ex.Err).
					Int("status", ex.StatusCode()).
					Dur("duration", ex.Duration).
					Msg("API request rejected")
				return
			}
			event := l.Debug()
			if ex.Result.Kind == KindApplicationError {
				event = l.Info()
			}
			event.
				Int("status", ex.StatusCode()).
				Int("code", ex.Envelope.Code).
				Str("result", ex.Result.Kind.String()).
				Dur("duration", ex.Duration).
				Msg("API request completed")
		},
	}
}

type inFlightKey struct{}

// Metrics records latency, outcome and in-flight count on m.
func Metrics(m *metrics.Metrics) Stage {
	return Stage{
		Name: "metrics",
		Request: func(_ context.Context, ex *Exchange) error {
			m.TrackInFlight(true)
			ex.SetValue(inFlightKey{}, true)
			return nil
		},
		Done: func(_ context.Context, ex *Exchange) {
			if tracked, _ := ex.Value(inFlightKey{}).(bool); tracked {
				m.TrackInFlight(false)
			}
			m.RecordAPICall(ex.Descriptor.Method, ex.Descriptor.route(), Outcome(ex), ex.Duration)
		},
	}
}

// Outcome names how a finished call ended, using the metrics outcome labels.
func Outcome(ex *Exchange) string {
	if ex.Err == nil {
		if ex.Result.Kind == KindApplicationError {
			return metrics.OutcomeApplicationError
		}
		return metrics.OutcomePayload
	}

	var te *TransportError
	switch {
	case IsUnauthorized(ex.Err):
		return metrics.OutcomeUnauthorized
	case errors.As(ex.Err, &te) && te.Kind == TransportRequest:
		return metrics.OutcomeRequestError
	case errors.As(ex.Err, new(*StatusError)):
		return metrics.OutcomeStatusError
	default:
		return metrics.OutcomeTransportError
	}
}

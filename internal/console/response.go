// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/gookins-admin/internal/api"
	"github.com/tomtom215/gookins-admin/internal/logging"
	"github.com/tomtom215/gookins-admin/internal/notify"
	"github.com/tomtom215/gookins-admin/internal/pipeline"
)

// maxRequestBody caps console request bodies.
const maxRequestBody = 1 << 20

// response is the JSON shape of every console answer.
type response struct {
	OK       bool                  `json:"ok"`
	View     string                `json:"view,omitempty"`
	Data     any                   `json:"data,omitempty"`
	Envelope *pipeline.Envelope    `json:"envelope,omitempty"`
	Error    string                `json:"error,omitempty"`
	Messages []notify.Notification `json:"messages"`
}

type recorderKey struct{}

// withRecorder routes notifications raised while serving the request into a
// per-request Recorder, and still to the server notifier.
func (s *Server) withRecorder(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &notify.Recorder{}
		ctx := context.WithValue(r.Context(), recorderKey{}, rec)
		ctx = notify.WithNotifier(ctx, notify.Multi(rec, s.notifier))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func recorderFrom(ctx context.Context) *notify.Recorder {
	rec, _ := ctx.Value(recorderKey{}).(*notify.Recorder)
	return rec
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body response) {
	if rec := recorderFrom(r.Context()); rec != nil {
		body.Messages = rec.Notifications()
	}
	if body.Messages == nil {
		body.Messages = []notify.Notification{}
	}
	if body.View == "" {
		body.View = logging.NavigationFromContext(r.Context())
	}

	data, err := json.Marshal(body)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode console response")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeReply answers a resolved backend call. An application error is
// still a 200 carrying the full envelope; the caller decides what it means.
func writeReply[T any](w http.ResponseWriter, r *http.Request, reply api.Reply[T], err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !reply.OK() {
		writeJSON(w, r, http.StatusOK, response{OK: false, Envelope: reply.Envelope})
		return
	}
	writeJSON(w, r, http.StatusOK, response{OK: true, Data: reply.Data})
}

// writeError maps a rejected call onto an HTTP status.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := pipeline.HTTPStatus(err)
	var bad *badRequestError
	switch {
	case errors.As(err, &bad), errors.Is(err, api.ErrEmptyArgument):
		status = http.StatusBadRequest
	case status == http.StatusInternalServerError:
		logging.Ctx(r.Context()).Error().Err(err).Str("component", "console").Msg("Console request failed")
	}
	writeJSON(w, r, status, response{OK: false, Error: err.Error()})
}

type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string { return e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

// decodeBody reads a JSON body into v.
func decodeBody(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody+1))
	if err != nil {
		return &badRequestError{fmt.Errorf("read body: %w", err)}
	}
	if len(body) > maxRequestBody {
		return &badRequestError{fmt.Errorf("body exceeds %d bytes", maxRequestBody)}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &badRequestError{fmt.Errorf("invalid JSON body: %w", err)}
	}
	return nil
}

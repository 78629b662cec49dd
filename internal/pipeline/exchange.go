// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package pipeline

import (
	"context"
	"net/http"
	"time"
)

// Descriptor is one API call.
type Descriptor struct {
	Method string
	// Path is appended to the base URL, e.g. "/task/del/42".
	Path string
	// Route is the unexpanded path, e.g. "/task/del/{id}". It labels metrics
	// and defaults to Path.
	Route string
	// Body is JSON-encoded when non-nil.
	Body any
}

func (d Descriptor) route() string {
	if d.Route != "" {
		return d.Route
	}
	return d.Path
}

// Exchange is the per-call state every stage sees.
type Exchange struct {
	Descriptor Descriptor
	RequestID  string

	// Request is set before request hooks run, unless building it failed.
	Request *http.Request
	// Response has its body already drained into Body and closed.
	Response *http.Response
	Body     []byte
	Envelope *Envelope

	Result Result
	Err    error

	Start    time.Time
	Duration time.Duration

	values map[any]any
}

// StatusCode is the HTTP status, or 0 when no response arrived.
func (ex *Exchange) StatusCode() int {
	if ex.Response == nil {
		return 0
	}
	return ex.Response.StatusCode
}

// SetValue stores per-call data for a stage.
func (ex *Exchange) SetValue(key, value any) {
	if ex.values == nil {
		ex.values = make(map[any]any)
	}
	ex.values[key] = value
}

// Value returns what SetValue stored under key.
func (ex *Exchange) Value(key any) any {
	return ex.values[key]
}

// Stage is one step of the pipeline. Any hook may be nil.
type Stage struct {
	Name string

	// Request runs in order before transmission. An error aborts the call
	// as a request failure.
	Request func(ctx context.Context, ex *Exchange) error

	// Response runs in order once an envelope has been received. An error
	// rejects the call.
	Response func(ctx context.Context, ex *Exchange) error

	// Failure runs in order for a rejected call. A non-nil return replaces
	// the error; a rejected call is never turned into a success.
	Failure func(ctx context.Context, ex *Exchange, err error) error

	// Done runs in reverse order after every call.
	Done func(ctx context.Context, ex *Exchange)
}

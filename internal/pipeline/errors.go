// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package pipeline

import (
	"errors"
	"fmt"
	"net/http"
)

// TransportKind classifies a TransportError.
type TransportKind string

const (
	// TransportRequest means the request could not be built or a request
	// stage refused it. Nothing was sent.
	TransportRequest  TransportKind = "request"
	TransportNetwork  TransportKind = "network"
	TransportTimeout  TransportKind = "timeout"
	TransportCanceled TransportKind = "canceled"
	// TransportBody means a response arrived but its body was cut short or
	// exceeded the size limit.
	TransportBody TransportKind = "body"
)

// TransportError is a call that never produced a usable response.
type TransportError struct {
	Kind   TransportKind
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Method, e.Path, e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UserMessage is the short text shown to the user.
func (e *TransportError) UserMessage() string {
	switch e.Kind {
	case TransportRequest:
		return MsgRequestFailure
	case TransportTimeout:
		return "Request timed out"
	case TransportNetwork:
		return "Network Error"
	case TransportCanceled:
		return "Request canceled"
	case TransportBody:
		return MsgResponseError
	default:
		return MsgResponseError
	}
}

// StatusError is a non-2xx HTTP response that did not carry an envelope,
// or any HTTP 401.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	// Envelope is set when the body decoded as one.
	Envelope *Envelope
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s request failed with status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s request failed with status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// UserMessage is the short text shown to the user.
func (e *StatusError) UserMessage() string {
	return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
}

// Source tells where an UnauthorizedError was detected.
type Source string

const (
	SourceEnvelope  Source = "envelope"
	SourceTransport Source = "transport"
)

// UnauthorizedError means the session expired. The token has been cleaned
// by the time a caller sees it.
type UnauthorizedError struct {
	Source   Source
	Envelope *Envelope
	Err      error
}

func (e *UnauthorizedError) Error() string {
	if e.Envelope != nil && e.Envelope.Message != "" {
		return fmt.Sprintf("session expired (%s): %s", e.Source, e.Envelope.Message)
	}
	return fmt.Sprintf("session expired (%s)", e.Source)
}

func (e *UnauthorizedError) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err is, or wraps, an UnauthorizedError.
func IsUnauthorized(err error) bool {
	var ue *UnauthorizedError
	return errors.As(err, &ue)
}

// IsTransport reports whether err is, or wraps, a TransportError or a
// StatusError.
func IsTransport(err error) bool {
	var te *TransportError
	var se *StatusError
	return errors.As(err, &te) || errors.As(err, &se)
}

// HTTPStatus maps a rejected call onto the status a proxying HTTP handler
// should answer with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsUnauthorized(err):
		return http.StatusUnauthorized
	case IsTransport(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// userMessage picks the notification text for a rejected call.
func userMessage(err error) string {
	var te *TransportError
	if errors.As(err, &te) {
		return te.UserMessage()
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.UserMessage()
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return MsgResponseError
}

// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package pipeline

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// Kind tells which variant a Result holds.
type Kind int

const (
	// KindNone is the zero Result returned alongside a rejection.
	KindNone Kind = iota
	// KindPayload is a success: only the data field is kept.
	KindPayload
	// KindApplicationError is a non-success code: the full envelope is kept.
	KindApplicationError
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindPayload:
		return "payload"
	case KindApplicationError:
		return "application_error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var (
	// ErrNotPayload is returned by Result.Decode on an application error.
	ErrNotPayload = errors.New("result is an application error, not a payload")
	// ErrNoResult is returned by Result.Decode on the zero Result of a
	// rejected call.
	ErrNoResult = errors.New("call was rejected and has no result")
)

// Result is what a resolved call yields. Exactly one of Payload and
// Envelope is meaningful, selected by Kind.
type Result struct {
	Kind     Kind
	Payload  json.RawMessage
	Envelope *Envelope
}

// resultFromEnvelope applies the envelope/payload split.
func resultFromEnvelope(env *Envelope) Result {
	if env.Code == CodeSuccess {
		return Result{Kind: KindPayload, Payload: env.Data}
	}
	return Result{Kind: KindApplicationError, Envelope: env}
}

// IsPayload reports whether the call succeeded.
func (r Result) IsPayload() bool {
	return r.Kind == KindPayload
}

// Decode unmarshals the payload into v. It returns ErrNotPayload for an
// application error; use Envelope.DecodeData for that shape.
func (r Result) Decode(v any) error {
	switch r.Kind {
	case KindPayload:
	case KindNone:
		return ErrNoResult
	default:
		return ErrNotPayload
	}
	if err := decodeRaw(r.Payload, v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

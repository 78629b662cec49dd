// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package api

import (
	"fmt"

	"github.com/tomtom215/gookins-admin/internal/pipeline"
)

// Reply is the typed outcome of a resolved call. On success Data holds the
// decoded payload and Envelope is nil; on an application error Envelope
// holds the full server response and Data is the zero value.
type Reply[T any] struct {
	Data     T
	Envelope *pipeline.Envelope
}

// OK reports whether the call succeeded.
func (r Reply[T]) OK() bool {
	return r.Envelope == nil
}

// Message is the server message of an application error, empty on success.
func (r Reply[T]) Message() string {
	if r.Envelope == nil {
		return ""
	}
	return r.Envelope.Message
}

func replyFrom[T any](res pipeline.Result) (Reply[T], error) {
	var reply Reply[T]
	if res.Kind == pipeline.KindNone {
		return reply, pipeline.ErrNoResult
	}
	if !res.IsPayload() {
		reply.Envelope = res.Envelope
		return reply, nil
	}
	if err := res.Decode(&reply.Data); err != nil {
		return reply, fmt.Errorf("decode reply: %w", err)
	}
	return reply, nil
}

// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package pipeline

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Application-level status codes carried in the envelope.
const (
	CodeSuccess      = 200
	CodeUnauthorized = 401
)

// Envelope is the {code, message, data} wrapper of every backend response.
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// DecodeData unmarshals the data field into v. Absent or null data leaves v
// untouched.
func (e *Envelope) DecodeData(v any) error {
	return decodeRaw(e.Data, v)
}

// wireEnvelope accepts the legacy login shape, which carries the token at
// the top level instead of inside data.
type wireEnvelope struct {
	Code    *int            `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Token   *string         `json:"token"`
}

// decodeEnvelope parses body. ok is false when body is not a JSON object with
// a code field.
func decodeEnvelope(body []byte) (env *Envelope, ok bool) {
	var w wireEnvelope
	if err := json.Unmarshal(body, &w); err != nil || w.Code == nil {
		return nil, false
	}

	env = &Envelope{Code: *w.Code, Message: w.Message, Data: w.Data}
	if isNull(env.Data) && w.Token != nil {
		data, err := json.Marshal(map[string]string{"token": *w.Token})
		if err == nil {
			env.Data = data
		}
	}
	if isNull(env.Data) {
		env.Data = nil
	}
	return env, true
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decodeRaw(raw json.RawMessage, v any) error {
	if isNull(raw) {
		return nil
	}
	return json.Unmarshal(raw, v)
}

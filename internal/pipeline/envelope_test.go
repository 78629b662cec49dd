// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package pipeline

import "testing"

func TestDecodeEnvelope(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		body     string
		wantOK   bool
		wantCode int
		wantData string
	}{
		{"success", `{"code":200,"message":"ok","data":[1,2]}`, true, 200, "[1,2]"},
		{"null data", `{"code":200,"data":null}`, true, 200, ""},
		{"legacy token", `{"code":200,"token":"t"}`, true, 200, `{"token":"t"}`},
		{"data wins over token", `{"code":200,"data":"d","token":"t"}`, true, 200, `"d"`},
		{"error code", `{"code":500,"message":"boom"}`, true, 500, ""},
		{"no code", `{"data":1}`, false, 0, ""},
		{"not json", `<html>`, false, 0, ""},
		{"array", `[1]`, false, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env, ok := decodeEnvelope([]byte(tt.body))
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if env.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", env.Code, tt.wantCode)
			}
			if string(env.Data) != tt.wantData {
				t.Errorf("Data = %s, want %s", env.Data, tt.wantData)
			}
		})
	}
}

func TestResultFromEnvelope(t *testing.T) {
	t.Parallel()
	ok := resultFromEnvelope(&Envelope{Code: 200, Data: []byte(`"x"`)})
	if !ok.IsPayload() || ok.Envelope != nil || string(ok.Payload) != `"x"` {
		t.Errorf("success result = %+v", ok)
	}
	var s string
	if err := ok.Decode(&s); err != nil || s != "x" {
		t.Errorf("Decode() = %q, %v", s, err)
	}

	bad := resultFromEnvelope(&Envelope{Code: 500, Message: "boom"})
	if bad.IsPayload() || bad.Envelope == nil || bad.Envelope.Message != "boom" {
		t.Errorf("error result = %+v", bad)
	}
	if bad.Kind.String() != "application_error" {
		t.Errorf("Kind.String() = %q", bad.Kind.String())
	}
}

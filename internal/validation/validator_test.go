// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package validation

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type sampleSection struct {
	BaseURL string        `koanf:"base_url" validate:"required,http_url"`
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
	Format  string        `koanf:"format" validate:"oneof=json console"`
}

type sampleConfig struct {
	API sampleSection `koanf:"api"`
}

func TestGetValidatorSingleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStructValid(t *testing.T) {
	cfg := sampleConfig{API: sampleSection{
		BaseURL: "http://127.0.0.1:8084",
		Timeout: time.Second,
		Format:  "json",
	}}
	if err := ValidateStruct(&cfg); err != nil {
		t.Fatalf("ValidateStruct() error = %v", err)
	}
}

func TestValidateStructUsesKoanfKeys(t *testing.T) {
	tests := []struct {
		name    string
		section sampleSection
		wantKey string
		wantMsg string
	}{
		{
			name:    "missing base url",
			section: sampleSection{Timeout: time.Second, Format: "json"},
			wantKey: "api.base_url",
			wantMsg: "api.base_url is required",
		},
		{
			name:    "non http url",
			section: sampleSection{BaseURL: "ftp://x", Timeout: time.Second, Format: "json"},
			wantKey: "api.base_url",
			wantMsg: "api.base_url must be an http(s) URL",
		},
		{
			name:    "zero timeout",
			section: sampleSection{BaseURL: "http://x", Format: "json"},
			wantKey: "api.timeout",
			wantMsg: "api.timeout must be greater than 0",
		},
		{
			name:    "unknown format",
			section: sampleSection{BaseURL: "http://x", Timeout: time.Second, Format: "xml"},
			wantKey: "api.format",
			wantMsg: "api.format must be one of: json console",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&sampleConfig{API: tt.section})
			var verrs Errors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected validation.Errors, got %T (%v)", err, err)
			}
			if len(verrs) != 1 {
				t.Fatalf("expected 1 field error, got %d: %v", len(verrs), verrs)
			}
			if verrs[0].Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", verrs[0].Key, tt.wantKey)
			}
			if verrs[0].Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", verrs[0].Message, tt.wantMsg)
			}
		})
	}
}

func TestErrorsJoinMessages(t *testing.T) {
	err := ValidateStruct(&sampleConfig{})
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "api.base_url is required") || !strings.Contains(msg, "; ") {
		t.Errorf("unexpected joined message %q", msg)
	}
}

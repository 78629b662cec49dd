// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

// Package validation wraps go-playground/validator v10 for configuration
// structs. Field names in messages are the koanf keys (api.base_url), so an
// error points at the line of the YAML file or the env var to fix.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single failed rule.
type FieldError struct {
	Key     string
	Tag     string
	Param   string
	Message string
}

// Error implements error.
func (e FieldError) Error() string {
	return e.Message
}

// Errors is returned by ValidateStruct when at least one rule fails.
type Errors []FieldError

// Error joins every field message.
func (ve Errors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(ve))
	for i, fe := range ve {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// GetValidator returns the shared validator. Struct metadata is cached by
// the validator, so one instance is reused.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("koanf"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// ValidateStruct runs the validate tags of s. It returns nil or Errors.
func ValidateStruct(s any) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	out := make(Errors, len(verrs))
	for i, fe := range verrs {
		key := keyFromNamespace(fe.Namespace())
		out[i] = FieldError{
			Key:     key,
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: translate(key, fe),
		}
	}
	return out
}

// keyFromNamespace drops the root struct name: "Config.api.base_url" -> "api.base_url".
func keyFromNamespace(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

var messages = map[string]string{
	"required":      "%s is required",
	"url":           "%s must be an absolute URL",
	"http_url":      "%s must be an http(s) URL",
	"hostname_port": "%s must be host:port",
}

var messagesWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lte":   "%s must be less than or equal to %s",
	"min":   "%s must be at least %s",
	"max":   "%s must be at most %s",
}

func translate(key string, fe validator.FieldError) string {
	if tmpl, ok := messages[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, key)
	}
	if tmpl, ok := messagesWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, key, fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", key, fe.Tag())
}

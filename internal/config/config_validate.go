// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package config

import (
	"fmt"
	"net/url"

	"github.com/tomtom215/gookins-admin/internal/logging"
	"github.com/tomtom215/gookins-admin/internal/validation"
)

// Validate checks tag rules first, then the cross-field rules tags cannot
// express.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateAPI() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("api.base_url must not carry a query or fragment")
	}
	return nil
}

func (c *Config) validateStore() error {
	if !c.Store.Ephemeral && c.Store.Path == "" {
		return fmt.Errorf("store.path is required unless store.ephemeral is set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level %q is not a known level", c.Logging.Level)
	}
	return nil
}

// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package console

import (
	"net/http"
	"time"
)

// NewHTTPServer wraps the console handler in an http.Server listening on
// the configured address.
func (s *Server) NewHTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Longer than the backend call timeout so a slow call can still answer.
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

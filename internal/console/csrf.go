// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package console

import (
	"errors"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/tomtom215/gookins-admin/internal/logging"
)

// Cross-site request errors
var (
	// ErrOriginNotAllowed indicates a browser Origin outside the trusted list.
	ErrOriginNotAllowed = errors.New("origin not allowed")

	// ErrNotJSON indicates a state-changing request without a JSON content type.
	ErrNotJSON = errors.New("content type must be application/json")
)

// safeMethods never change backend state and skip the content type check.
var safeMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodOptions: true,
	http.MethodTrace:   true,
}

// crossSiteGuard refuses requests a foreign web page could forge with the
// console's stored token. A request carrying an untrusted Origin is
// rejected outright. A state-changing request must declare
// application/json, which browsers only send cross-site after a CORS
// preflight the cors middleware denies.
func (s *Server) crossSiteGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		if origin := r.Header.Get("Origin"); origin != "" && !s.trustedOrigin(origin, r.Host) {
			s.refuse(w, r, http.StatusForbidden, ErrOriginNotAllowed, origin)
			return
		}
		if !safeMethods[r.Method] && !isJSON(r.Header.Get("Content-Type")) {
			s.refuse(w, r, http.StatusUnsupportedMediaType, ErrNotJSON, r.Header.Get("Origin"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// trustedOrigin accepts the configured CORS origins and the console's own
// host.
func (s *Server) trustedOrigin(origin, host string) bool {
	for _, allowed := range s.cfg.CORSOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host != "" && strings.EqualFold(u.Host, host)
}

func (s *Server) refuse(w http.ResponseWriter, r *http.Request, status int, err error, origin string) {
	logging.Ctx(r.Context()).Warn().
		Str("component", "console").
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("origin", origin).
		Err(err).
		Msg("Refused cross-site request")
	writeJSON(w, r, status, response{OK: false, Error: err.Error()})
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}

// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package router

import (
	"errors"
	"net/http"

	"github.com/tomtom215/gookins-admin/internal/logging"
)

// Middleware guards an HTTP view mapped to viewPath. A redirect answers 302
// with the redirect target; otherwise the request proceeds with the view
// path recorded on its context.
func (r *Router) Middleware(viewPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			res, err := r.Check(req.Context(), viewPath)
			switch {
			case errors.Is(err, ErrNotFound):
				http.NotFound(w, req)
				return
			case err != nil:
				logging.Ctx(req.Context()).Error().Err(err).Str("component", "router").Msg("Navigation failed")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			case res.Redirected:
				http.Redirect(w, req, res.Match.Path, http.StatusFound)
				return
			}

			ctx := logging.ContextWithNavigation(req.Context(), res.Match.Path)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

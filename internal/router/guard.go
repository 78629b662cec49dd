// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package router

// TokenSource yields the current session token.
type TokenSource interface {
	Token() string
}

// RequireAuth redirects to loginPath when the target, or any route above
// it, requires a session and no token is held. Only presence is checked;
// the token is never validated here.
func RequireAuth(tokens TokenSource, loginPath string) Guard {
	return func(nav Navigation) Decision {
		if nav.To.RequiresAuth() && tokens.Token() == "" {
			return RedirectTo(loginPath)
		}
		return Proceed()
	}
}

// NewDefault returns a Router over DefaultRoutes guarded by RequireAuth.
func NewDefault(tokens TokenSource, opts ...Option) *Router {
	r := New(DefaultRoutes(), opts...)
	r.BeforeEach(RequireAuth(tokens, PathLogin))
	return r
}

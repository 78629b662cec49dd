// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package router

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tomtom215/gookins-admin/internal/logging"
	"github.com/tomtom215/gookins-admin/internal/metrics"
)

// maxRedirects bounds redirect chains so misconfigured guards cannot loop.
const maxRedirects = 5

var (
	// ErrNotFound is returned for a path no route matches.
	ErrNotFound = errors.New("route not found")
	// ErrRedirectLoop is returned when guards keep redirecting.
	ErrRedirectLoop = errors.New("too many navigation redirects")
)

// Navigation is what a guard sees.
type Navigation struct {
	To   Match
	From Match
}

// Decision is a guard result: proceed when Redirect is empty.
type Decision struct {
	Redirect string
}

// Proceed lets navigation continue.
func Proceed() Decision { return Decision{} }

// RedirectTo sends navigation to path instead.
func RedirectTo(path string) Decision { return Decision{Redirect: path} }

// Guard decides whether a navigation may enter its target.
type Guard func(nav Navigation) Decision

// Result is the outcome of Push.
type Result struct {
	Match Match
	// Requested is the path originally asked for.
	Requested string
	// Redirected is true when a guard changed the destination.
	Redirected bool
}

// Router holds a route table, its guards and the current location.
type Router struct {
	routes  []Route
	metrics *metrics.Metrics

	mu      sync.RWMutex
	guards  []Guard
	current Match
}

// Option configures a Router.
type Option func(*Router)

// WithMetrics records every navigation decision on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Router) { r.metrics = m }
}

// New returns a Router over routes.
func New(routes []Route, opts ...Option) *Router {
	r := &Router{routes: routes}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Routes returns the route table.
func (r *Router) Routes() []Route {
	return r.routes
}

// BeforeEach registers a guard. Guards run in registration order and the
// first redirect wins.
func (r *Router) BeforeEach(g Guard) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guards = append(r.guards, g)
}

// Resolve matches p against the route table.
func (r *Router) Resolve(p string) (Match, bool) {
	target := cleanPath(p)
	chain, ok := resolve(r.routes, "/", target, nil)
	if !ok {
		return Match{}, false
	}
	return Match{Path: target, Matched: chain}, true
}

// Current is the last location Push arrived at.
func (r *Router) Current() Match {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Push navigates to p. Guards run once per attempt; a redirect starts a new
// attempt at the redirect target.
func (r *Router) Push(ctx context.Context, p string) (Result, error) {
	res, err := r.navigate(ctx, p)
	if err != nil {
		return res, err
	}
	r.mu.Lock()
	r.current = res.Match
	r.mu.Unlock()
	return res, nil
}

// Check runs the same navigation as Push without moving the current
// location. The console uses it per request.
func (r *Router) Check(ctx context.Context, p string) (Result, error) {
	return r.navigate(ctx, p)
}

func (r *Router) navigate(ctx context.Context, p string) (Result, error) {
	r.mu.RLock()
	guards := append([]Guard(nil), r.guards...)
	from := r.current
	r.mu.RUnlock()

	res := Result{Requested: cleanPath(p)}
	target := p
	for hop := 0; hop <= maxRedirects; hop++ {
		to, ok := r.Resolve(target)
		if !ok {
			return res, fmt.Errorf("%w: %s", ErrNotFound, cleanPath(target))
		}

		decision := runGuards(guards, Navigation{To: to, From: from})
		if r.metrics != nil {
			r.metrics.RecordNavigation(to.Path, decision.Redirect != "")
		}
		if decision.Redirect == "" {
			res.Match = to
			return res, nil
		}

		logging.Ctx(ctx).Debug().
			Str("component", "router").
			Str("from", to.Path).
			Str("to", decision.Redirect).
			Msg("Navigation redirected")
		res.Redirected = true
		target = decision.Redirect
	}
	return res, fmt.Errorf("%w: last target %s", ErrRedirectLoop, cleanPath(target))
}

func runGuards(guards []Guard, nav Navigation) Decision {
	for _, g := range guards {
		if d := g(nav); d.Redirect != "" {
			return d
		}
	}
	return Proceed()
}

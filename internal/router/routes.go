// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

// Package router resolves view paths against a route table and runs
// navigation guards before a view is entered. The CLI navigates before each
// command and the console wraps its views in Router.Middleware.
package router

import (
	"path"
	"strings"
)

// Meta is per-route metadata.
type Meta struct {
	Title        string `json:"title,omitempty"`
	Icon         string `json:"icon,omitempty"`
	RequiresAuth bool   `json:"requires_auth"`
}

// Route is one entry of the route table. A child Path without a leading
// slash is relative to its parent.
type Route struct {
	Path     string  `json:"path"`
	Name     string  `json:"name"`
	Meta     Meta    `json:"meta"`
	Children []Route `json:"children,omitempty"`
}

// View paths of the default table.
const (
	PathLogin = "/login"
	PathRoot  = "/"
	PathHome  = "/home"
	PathUser  = "/user"
	PathTask  = "/task"
)

// DefaultRoutes is the console route table: a public login view and a
// layout whose children all require a session.
func DefaultRoutes() []Route {
	return []Route{
		{
			Path: PathLogin,
			Name: "Login",
		},
		{
			Path: PathRoot,
			Name: "Layout",
			Children: []Route{
				{Path: PathHome, Name: "Home", Meta: Meta{Title: "Home", Icon: "HomeFilled", RequiresAuth: true}},
				{Path: "user", Name: "User", Meta: Meta{Title: "User Management", Icon: "Avatar", RequiresAuth: true}},
				{Path: "task", Name: "Task", Meta: Meta{Title: "Task Management", Icon: "Grid", RequiresAuth: true}},
			},
		},
	}
}

// Match is a resolved navigation target.
type Match struct {
	Path string
	// Matched is the route chain, parent first, target last.
	Matched []Route
}

// Route returns the target route, the last of the chain.
func (m Match) Route() Route {
	if len(m.Matched) == 0 {
		return Route{}
	}
	return m.Matched[len(m.Matched)-1]
}

// RequiresAuth reports whether any route in the chain requires a session.
func (m Match) RequiresAuth() bool {
	for _, r := range m.Matched {
		if r.Meta.RequiresAuth {
			return true
		}
	}
	return false
}

// cleanPath normalizes p to an absolute path without a trailing slash.
func cleanPath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

func joinPath(parent, child string) string {
	if strings.HasPrefix(child, "/") {
		return cleanPath(child)
	}
	return cleanPath(parent + "/" + child)
}

// resolve finds the chain for target in routes. Children are preferred so a
// layout only matches its own path when no child does.
func resolve(routes []Route, base, target string, chain []Route) ([]Route, bool) {
	for _, r := range routes {
		full := joinPath(base, r.Path)
		next := append(append([]Route(nil), chain...), r)
		if found, ok := resolve(r.Children, full, target, next); ok {
			return found, true
		}
		if full == target {
			return next, true
		}
	}
	return nil, false
}

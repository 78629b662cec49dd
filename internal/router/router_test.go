// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/gookins-admin/internal/logging"
	"github.com/tomtom215/gookins-admin/internal/metrics"
	"github.com/tomtom215/gookins-admin/internal/session"
)

func newTokens(t *testing.T, token string) *session.Store {
	t.Helper()
	s, err := session.NewStore(session.NewMemoryStorage())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	if token != "" {
		if err := s.SetToken(token); err != nil {
			t.Fatalf("SetToken() error = %v", err)
		}
	}
	return s
}

func TestResolve(t *testing.T) {
	t.Parallel()
	r := New(DefaultRoutes())

	tests := []struct {
		path      string
		wantOK    bool
		wantChain []string
		wantAuth  bool
	}{
		{"/login", true, []string{"Login"}, false},
		{"/", true, []string{"Layout"}, false},
		{"/home", true, []string{"Layout", "Home"}, true},
		{"/user", true, []string{"Layout", "User"}, true},
		{"/task/", true, []string{"Layout", "Task"}, true},
		{"task?tab=running", true, []string{"Layout", "Task"}, true},
		{"/nowhere", false, nil, false},
		{"/user/extra", false, nil, false},
	}

	for _, tt := range tests {
		m, ok := r.Resolve(tt.path)
		if ok != tt.wantOK {
			t.Errorf("Resolve(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if len(m.Matched) != len(tt.wantChain) {
			t.Errorf("Resolve(%q) chain = %v, want %v", tt.path, m.Matched, tt.wantChain)
			continue
		}
		for i, name := range tt.wantChain {
			if m.Matched[i].Name != name {
				t.Errorf("Resolve(%q) chain[%d] = %s, want %s", tt.path, i, m.Matched[i].Name, name)
			}
		}
		if m.RequiresAuth() != tt.wantAuth {
			t.Errorf("Resolve(%q) RequiresAuth = %v, want %v", tt.path, m.RequiresAuth(), tt.wantAuth)
		}
	}
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		token          string
		target         string
		wantPath       string
		wantRedirected bool
	}{
		{"protected without token", "", "/user", PathLogin, true},
		{"protected with token", "abc", "/user", PathUser, false},
		{"home without token", "", "/home", PathLogin, true},
		{"task with token", "abc", "/task", PathTask, false},
		{"login without token", "", "/login", PathLogin, false},
		{"layout without token", "", "/", PathRoot, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := NewDefault(newTokens(t, tt.token))
			res, err := r.Push(context.Background(), tt.target)
			if err != nil {
				t.Fatalf("Push() error = %v", err)
			}
			if res.Match.Path != tt.wantPath || res.Redirected != tt.wantRedirected {
				t.Errorf("Push(%q) = %s (redirected %v), want %s (redirected %v)",
					tt.target, res.Match.Path, res.Redirected, tt.wantPath, tt.wantRedirected)
			}
			if res.Requested != tt.target {
				t.Errorf("Requested = %q, want %q", res.Requested, tt.target)
			}
			if r.Current().Path != tt.wantPath {
				t.Errorf("Current() = %q, want %q", r.Current().Path, tt.wantPath)
			}
		})
	}
}

func TestGuardSeesTokenChanges(t *testing.T) {
	t.Parallel()
	tokens := newTokens(t, "")
	r := NewDefault(tokens)
	ctx := context.Background()

	if res, _ := r.Push(ctx, "/task"); !res.Redirected {
		t.Fatal("expected redirect while logged out")
	}
	_ = tokens.SetToken("abc")
	if res, _ := r.Push(ctx, "/task"); res.Redirected {
		t.Fatal("expected to proceed after login")
	}
	_ = tokens.CleanToken()
	if res, _ := r.Push(ctx, "/task"); !res.Redirected {
		t.Fatal("expected redirect after logout")
	}
}

func TestGuardsRunOncePerAttempt(t *testing.T) {
	t.Parallel()
	r := New(DefaultRoutes())
	calls := 0
	r.BeforeEach(func(nav Navigation) Decision {
		calls++
		return Proceed()
	})

	if _, err := r.Push(context.Background(), "/home"); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("guard ran %d times, want 1", calls)
	}
}

func TestFirstRedirectWins(t *testing.T) {
	t.Parallel()
	r := New(DefaultRoutes())
	var second bool
	r.BeforeEach(func(nav Navigation) Decision {
		if nav.To.Path == PathUser {
			return RedirectTo(PathHome)
		}
		return Proceed()
	})
	r.BeforeEach(func(nav Navigation) Decision {
		if nav.To.Path == PathUser {
			second = true
		}
		return Proceed()
	})

	res, err := r.Push(context.Background(), "/user")
	if err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if res.Match.Path != PathHome || second {
		t.Errorf("Push() = %s, second guard ran = %v", res.Match.Path, second)
	}
}

func TestPushErrors(t *testing.T) {
	t.Parallel()
	r := New(DefaultRoutes())
	if _, err := r.Push(context.Background(), "/missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Push(/missing) error = %v, want ErrNotFound", err)
	}

	r.BeforeEach(func(nav Navigation) Decision {
		if nav.To.Path == PathHome {
			return RedirectTo(PathTask)
		}
		return RedirectTo(PathHome)
	})
	if _, err := r.Push(context.Background(), "/home"); !errors.Is(err, ErrRedirectLoop) {
		t.Errorf("looping guards error = %v, want ErrRedirectLoop", err)
	}
	if r.Current().Path != "" {
		t.Errorf("failed navigation moved Current() to %q", r.Current().Path)
	}
}

func TestNavigationMetrics(t *testing.T) {
	t.Parallel()
	m := metrics.New(prometheus.NewRegistry())
	r := NewDefault(newTokens(t, ""), WithMetrics(m))

	_, _ = r.Push(context.Background(), "/user")

	if got := testutil.ToFloat64(m.NavigationsTotal.WithLabelValues(PathUser, "redirect")); got != 1 {
		t.Errorf("redirects to /user = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.NavigationsTotal.WithLabelValues(PathLogin, "proceed")); got != 1 {
		t.Errorf("proceeds to /login = %v, want 1", got)
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		token        string
		view         string
		wantStatus   int
		wantLocation string
	}{
		{"protected without token", "", PathTask, http.StatusFound, PathLogin},
		{"protected with token", "abc", PathTask, http.StatusOK, ""},
		{"public view", "", PathLogin, http.StatusOK, ""},
		{"unknown view", "abc", "/nope", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := NewDefault(newTokens(t, tt.token))
			var view string
			next := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				view = logging.NavigationFromContext(req.Context())
				w.WriteHeader(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			r.Middleware(tt.view)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.view, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if loc := rec.Header().Get("Location"); loc != tt.wantLocation {
				t.Errorf("Location = %q, want %q", loc, tt.wantLocation)
			}
			if tt.wantStatus == http.StatusOK && view != tt.view {
				t.Errorf("view on context = %q, want %q", view, tt.view)
			}
			if r.Current().Path != "" {
				t.Error("middleware must not move the router location")
			}
		})
	}
}

// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

// Package console serves the admin views as JSON over a local HTTP port.
// Every protected view passes the same route guard the CLI uses, and every
// backend call goes through the shared request pipeline. Notifications
// raised while serving a request are returned in its "messages" field.
package console

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/gookins-admin/internal/api"
	"github.com/tomtom215/gookins-admin/internal/config"
	"github.com/tomtom215/gookins-admin/internal/metrics"
	"github.com/tomtom215/gookins-admin/internal/middleware"
	"github.com/tomtom215/gookins-admin/internal/notify"
	"github.com/tomtom215/gookins-admin/internal/router"
	"github.com/tomtom215/gookins-admin/internal/session"
)

// Deps are the collaborators a Server needs.
type Deps struct {
	Config   config.ConsoleConfig
	API      *api.Client
	Tokens   *session.Store
	Router   *router.Router
	Metrics  *metrics.Metrics
	Notifier notify.Notifier
	// Gatherer backs /metrics. Defaults to the global registry.
	Gatherer prometheus.Gatherer
	// Now is the clock used for token inspection. Defaults to time.Now.
	Now func() time.Time
}

// Server holds the console handlers.
type Server struct {
	cfg      config.ConsoleConfig
	api      *api.Client
	session  *api.Session
	tokens   *session.Store
	router   *router.Router
	metrics  *metrics.Metrics
	notifier notify.Notifier
	gatherer prometheus.Gatherer
	now      func() time.Time
}

// New returns a Server for deps.
func New(deps Deps) *Server {
	s := &Server{
		cfg:      deps.Config,
		api:      deps.API,
		session:  api.NewSession(deps.API.Users, deps.Tokens),
		tokens:   deps.Tokens,
		router:   deps.Router,
		metrics:  deps.Metrics,
		notifier: deps.Notifier,
		gatherer: deps.Gatherer,
		now:      deps.Now,
	}
	if s.notifier == nil {
		s.notifier = notify.LogNotifier{}
	}
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.AccessLog)
	if s.metrics != nil {
		r.Use(middleware.PrometheusMetrics(s.metrics))
	}
	r.Use(s.cors())
	r.Use(s.crossSiteGuard)
	r.Use(s.withRecorder)

	r.Get("/healthz", s.health)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Get(router.PathLogin, s.loginView)
	r.With(s.loginRateLimit()).Post(router.PathLogin, s.login)
	r.Post("/logout", s.logout)

	r.With(s.router.Middleware(router.PathHome)).Get(router.PathHome, s.home)

	r.Route(router.PathUser, func(r chi.Router) {
		r.Use(s.router.Middleware(router.PathUser))
		r.Get("/", s.listUsers)
		r.Post("/", s.addUser)
		r.Put("/", s.updateUser)
		r.Delete("/{ref}", s.deleteUser)
	})

	r.Route(router.PathTask, func(r chi.Router) {
		r.Use(s.router.Middleware(router.PathTask))
		r.Get("/", s.listTasks)
		r.Post("/", s.addTask)
		r.Put("/", s.updateTask)
		r.Post("/run", s.runTask)
		r.Delete("/{ref}", s.deleteTask)
		r.Post("/{ref}/cancel", s.cancelTask)
		r.Get("/{ref}/state", s.taskState)
		r.Post("/{ref}/disable", s.toggleTask)
	})

	return r
}

func (s *Server) cors() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// loginRateLimit limits login attempts per client IP. A zero limit disables
// it.
func (s *Server) loginRateLimit() func(http.Handler) http.Handler {
	if s.cfg.LoginRateLimit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	window := s.cfg.LoginRateWindow
	if window <= 0 {
		window = time.Minute
	}
	return httprate.Limit(
		s.cfg.LoginRateLimit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, r, http.StatusTooManyRequests, response{Error: "too many login attempts"})
		}),
	)
}

// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

// Package metrics holds the Prometheus collectors for backend calls, route
// navigation, token changes and the local console.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gookins_admin"

// Outcome labels for backend calls.
const (
	OutcomePayload          = "payload"
	OutcomeApplicationError = "application_error"
	OutcomeUnauthorized     = "unauthorized"
	OutcomeTransportError   = "transport_error"
	OutcomeStatusError      = "status_error"
	OutcomeRequestError     = "request_error"
)

// Metrics is one set of collectors registered on a single registry.
type Metrics struct {
	// Backend API calls
	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec
	APIInFlight        prometheus.Gauge

	// Route guard
	NavigationsTotal *prometheus.CounterVec

	// Token store
	TokenChangesTotal *prometheus.CounterVec
	TokenPresent      prometheus.Gauge

	// User notifications
	NotificationsTotal *prometheus.CounterVec

	// Local console
	ConsoleRequestsTotal   *prometheus.CounterVec
	ConsoleRequestDuration *prometheus.HistogramVec
}

// New creates and registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		APIRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of backend API calls by outcome",
			},
			[]string{"method", "route", "outcome"},
		),
		APIRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "Duration of backend API calls in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"method", "route"},
		),
		APIInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "api_requests_in_flight",
				Help:      "Backend API calls currently awaiting a response",
			},
		),
		NavigationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "navigations_total",
				Help:      "Route navigations by target view and guard decision",
			},
			[]string{"view", "decision"}, // "proceed", "redirect"
		),
		TokenChangesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "token_changes_total",
				Help:      "Session token changes",
			},
			[]string{"action"}, // "set", "clean"
		),
		TokenPresent: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "token_present",
				Help:      "1 when a session token is held, 0 otherwise",
			},
		),
		NotificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "notifications_total",
				Help:      "User notifications raised, by level",
			},
			[]string{"level"},
		),
		ConsoleRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "console_requests_total",
				Help:      "Local console HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		ConsoleRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "console_request_duration_seconds",
				Help:      "Local console HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// Default is registered on the global Prometheus registry, which is what
// promhttp.Handler serves.
var Default = New(prometheus.DefaultRegisterer)

// RecordAPICall records one finished backend call.
func (m *Metrics) RecordAPICall(method, route, outcome string, duration time.Duration) {
	m.APIRequestsTotal.WithLabelValues(method, route, outcome).Inc()
	m.APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackInFlight increments or decrements the in-flight gauge.
func (m *Metrics) TrackInFlight(inc bool) {
	if inc {
		m.APIInFlight.Inc()
	} else {
		m.APIInFlight.Dec()
	}
}

// RecordNavigation records a guard decision for view.
func (m *Metrics) RecordNavigation(view string, redirected bool) {
	decision := "proceed"
	if redirected {
		decision = "redirect"
	}
	m.NavigationsTotal.WithLabelValues(view, decision).Inc()
}

// RecordTokenChange is meant to be subscribed to the token store.
func (m *Metrics) RecordTokenChange(token string) {
	if token == "" {
		m.TokenChangesTotal.WithLabelValues("clean").Inc()
		m.TokenPresent.Set(0)
		return
	}
	m.TokenChangesTotal.WithLabelValues("set").Inc()
	m.TokenPresent.Set(1)
}

// RecordNotification counts a notification raised at level.
func (m *Metrics) RecordNotification(level string) {
	m.NotificationsTotal.WithLabelValues(level).Inc()
}

// RecordConsoleRequest records one served console request.
func (m *Metrics) RecordConsoleRequest(method, route string, status int, duration time.Duration) {
	m.ConsoleRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.ConsoleRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

// Package pipeline sends envelope-wrapped calls to the task backend.
//
// A Client owns one http.Client configured with the base URL and timeout.
// Every call runs through an ordered list of Stages: request hooks before
// transmission, response hooks once an envelope arrives, failure hooks when
// the call is rejected, and done hooks afterwards. The Classify stage turns
// envelopes into the three outcomes callers see:
//
//   - code 200: Result with only the payload
//   - code 401 or HTTP 401: *UnauthorizedError, token cleaned
//   - any other code: Result carrying the full Envelope
//
// Transport failures are rejected with *TransportError or *StatusError.
// Nothing is retried.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// DefaultTimeout bounds a call when Config.Timeout is zero.
const DefaultTimeout = 50 * time.Second

// maxBodySize caps how much of a response body is read.
const maxBodySize = 10 << 20

// maxErrorBodySize caps the body excerpt kept in a StatusError.
const maxErrorBodySize = 512

// Config configures a Client.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// HTTPClient replaces the default client. Its Timeout is left as is.
	HTTPClient *http.Client
}

// Client sends Descriptors through its stages.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	stages    []Stage
}

// New returns a Client for cfg running stages in the given order.
func New(cfg Config, stages ...Stage) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must be http or https", cfg.BaseURL)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:   base,
		userAgent: cfg.UserAgent,
		http:      hc,
		stages:    append([]Stage(nil), stages...),
	}, nil
}

// BaseURL returns the normalized base address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Stages returns the stage names in run order.
func (c *Client) Stages() []string {
	names := make([]string, len(c.stages))
	for i, s := range c.stages {
		names[i] = s.Name
	}
	return names
}

// Send performs one call. It returns a Result for a received envelope
// (payload or application error) and an error for a rejected call.
func (c *Client) Send(ctx context.Context, d Descriptor) (Result, error) {
	ex := &Exchange{Descriptor: d, Start: time.Now()}
	defer c.runDone(ctx, ex)

	if err := c.transmit(ctx, ex); err != nil {
		ex.Err = err
		for _, s := range c.stages {
			if s.Failure == nil {
				continue
			}
			if replaced := s.Failure(ctx, ex, ex.Err); replaced != nil {
				ex.Err = replaced
			}
		}
		ex.Result = Result{}
		ex.Duration = time.Since(ex.Start)
		return Result{}, ex.Err
	}

	ex.Duration = time.Since(ex.Start)
	return ex.Result, nil
}

func (c *Client) runDone(ctx context.Context, ex *Exchange) {
	for i := len(c.stages) - 1; i >= 0; i-- {
		if done := c.stages[i].Done; done != nil {
			done(ctx, ex)
		}
	}
}

// transmit builds, sends and decodes the call. A nil return means
// ex.Envelope and ex.Result are set.
func (c *Client) transmit(ctx context.Context, ex *Exchange) error {
	d := ex.Descriptor

	req, err := c.buildRequest(ctx, d)
	if err != nil {
		return &TransportError{Kind: TransportRequest, Method: d.Method, Path: d.Path, Err: err}
	}
	ex.Request = req

	for _, s := range c.stages {
		if s.Request == nil {
			continue
		}
		if err := s.Request(ctx, ex); err != nil {
			if isPipelineError(err) {
				return err
			}
			return &TransportError{
				Kind:   TransportRequest,
				Method: d.Method,
				Path:   d.Path,
				Err:    fmt.Errorf("stage %s: %w", s.Name, err),
			}
		}
	}

	resp, err := c.http.Do(ex.Request)
	if err != nil {
		return &TransportError{Kind: transportKind(ctx, err), Method: d.Method, Path: d.Path, Err: err}
	}
	ex.Response = resp

	body, err := readBody(resp.Body)
	resp.Body.Close()
	if err != nil {
		kind := transportKind(ctx, err)
		if kind == TransportNetwork {
			kind = TransportBody
		}
		return &TransportError{Kind: kind, Method: d.Method, Path: d.Path, Err: err}
	}
	ex.Body = body

	env, ok := decodeEnvelope(body)
	success := resp.StatusCode >= 200 && resp.StatusCode < 300

	if resp.StatusCode == http.StatusUnauthorized || (!success && !ok) {
		return &StatusError{
			Method:     d.Method,
			Path:       d.Path,
			StatusCode: resp.StatusCode,
			Body:       excerpt(body),
			Envelope:   env,
		}
	}
	if !ok {
		// A 2xx body without a code is an application error with no message.
		env = &Envelope{}
		if json.Valid(body) {
			env.Data = json.RawMessage(body)
		}
	}
	ex.Envelope = env
	ex.Result = resultFromEnvelope(env)

	for _, s := range c.stages {
		if s.Response == nil {
			continue
		}
		if err := s.Response(ctx, ex); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) buildRequest(ctx context.Context, d Descriptor) (*http.Request, error) {
	if d.Method == "" {
		d.Method = http.MethodGet
	}
	if !strings.HasPrefix(d.Path, "/") {
		return nil, fmt.Errorf("path %q must start with /", d.Path)
	}

	var body io.Reader
	if d.Body != nil {
		data, err := json.Marshal(d.Body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, d.Method, c.baseURL+d.Path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return req, nil
}

func readBody(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxBodySize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxBodySize {
		return nil, fmt.Errorf("response body exceeds %d bytes", maxBodySize)
	}
	return body, nil
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBodySize {
		return s[:maxErrorBodySize] + "... (truncated)"
	}
	return s
}

func transportKind(ctx context.Context, err error) TransportKind {
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return TransportCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return TransportTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return TransportTimeout
	}
	return TransportNetwork
}

func isPipelineError(err error) bool {
	var te *TransportError
	var se *StatusError
	var ue *UnauthorizedError
	return errors.As(err, &te) || errors.As(err, &se) || errors.As(err, &ue)
}

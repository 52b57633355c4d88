// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package apiclient is the access layer for the external PharmaConnect REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/olegiv/pharmaconnect-go/internal/session"
)

// MaxResponseLen caps the bytes read from any API response.
const MaxResponseLen = 1 << 20

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	RetryMax   int
	Logger     *slog.Logger
	UserAgent  string
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client issues JSON requests against the API on behalf of the session bound
// to each request context.
type Client struct {
	baseURL *url.URL
	http    *retryablehttp.Client
	store   session.Store
	logger  *slog.Logger
	agent   string
}

// New creates a client. store supplies the bearer token.
func New(opts Options, store session.Store) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing API base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("API base URL must be http or https, got %q", opts.BaseURL)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "pharmaconnect-admin"
	}
	if opts.RetryMax < 0 {
		opts.RetryMax = 0
	}

	rc := retryablehttp.NewClient()
	if opts.HTTPClient != nil {
		rc.HTTPClient = opts.HTTPClient
	}
	rc.HTTPClient.Timeout = opts.Timeout
	rc.RetryMax = opts.RetryMax
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Logger = opts.Logger.With("component", "apiclient")
	// Return the last response instead of a generic error so status codes
	// can be classified.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{baseURL: base, http: rc, store: store, logger: opts.Logger, agent: opts.UserAgent}, nil
}

// IsAuthenticated reports whether the session holds a real API token.
// Demo sessions never do.
func (c *Client) IsAuthenticated(ctx context.Context) bool {
	s := c.store.Get(ctx)
	return s.APIToken != "" && !s.IsDemoMode
}

// Request sends body (JSON encoded, may be nil) to path and decodes the JSON
// response into out (may be nil).
func (c *Client) Request(ctx context.Context, method, path string, body, out any) error {
	s := c.store.Get(ctx)
	token := ""
	if !s.IsDemoMode {
		token = s.APIToken
	}
	return c.do(ctx, method, path, token, body, out)
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
	}

	var reqBody any
	if raw != nil {
		reqBody = raw
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.endpoint(path), reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.agent)
	if raw != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseLen))
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil || len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding %s %s response: %w", method, path, err)
		}
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode >= 500:
		c.logger.Warn("api server error", "category", "system", "method", method, "path", path, "status", resp.StatusCode)
		return fmt.Errorf("%w: HTTP %d", ErrUnavailable, resp.StatusCode)
	default:
		return &APIError{Status: resp.StatusCode, Message: errorMessage(data)}
	}
}

func (c *Client) endpoint(path string) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + strings.TrimLeft(path, "/")
	return u.String()
}

// errorMessage extracts "message" or "error" from a JSON error body.
func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return sanitize(body.Message)
	}
	return sanitize(body.Error)
}

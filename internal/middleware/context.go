// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides the HTTP middleware of the admin server:
// security headers, CSRF, language detection, and login protection.
package middleware

import (
	"context"
	"net"
	"net/http"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys set by this package.
const (
	ContextKeyRequestPath ContextKey = "request_path"
	ContextKeyLanguage    ContextKey = "language"
)

// RequestPath stores the request path in the context so log records
// written deeper in the stack can include it.
func RequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ContextKeyRequestPath, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestPath retrieves the request path from the context.
func GetRequestPath(ctx context.Context) string {
	if path, ok := ctx.Value(ContextKeyRequestPath).(string); ok {
		return path
	}
	return ""
}

// ClientIP returns the host part of RemoteAddr. Proxy headers are not read
// here; chi's RealIP middleware has already applied them to RemoteAddr.
func ClientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

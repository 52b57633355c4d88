// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized is returned for 401 and 403 responses.
	ErrUnauthorized = errors.New("api: unauthorized")

	// ErrUnavailable is returned for network failures and 5xx responses
	// once retries are exhausted.
	ErrUnavailable = errors.New("api: unavailable")
)

// APIError is any other non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: HTTP %d: %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: HTTP %d: %s", e.Status, e.Message)
}

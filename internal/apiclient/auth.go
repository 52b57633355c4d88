// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

import (
	"bytes"
	"context"
	"errors"
	"html"
	"net/http"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy strips every tag from profile strings returned by the API.
var strictPolicy = bluemonday.StrictPolicy()

// Profile is the user profile returned at login.
type Profile struct {
	ID             string
	Username       string
	Email          string
	Role           string
	Organization   string
	HealthFacility string
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Token   string
	Profile Profile
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
	User        struct {
		ID             flexibleID `json:"id"`
		Username       string     `json:"username"`
		Email          string     `json:"email"`
		Role           string     `json:"role"`
		Organization   string     `json:"organization"`
		HealthFacility string     `json:"healthFacility"`
	} `json:"user"`
}

// flexibleID accepts both numeric and string identifiers.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	*f = flexibleID(strings.Trim(string(b), `"`))
	return nil
}

// ErrNoToken is returned when the login response carries no token.
var ErrNoToken = errors.New("api: login response has no token")

// Login exchanges credentials for a token and profile. Profile strings are
// reduced to plain text.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", "", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return LoginResult{}, err
	}

	token := resp.Token
	if token == "" {
		token = resp.AccessToken
	}
	if token == "" {
		return LoginResult{}, ErrNoToken
	}

	return LoginResult{
		Token: token,
		Profile: Profile{
			ID:             sanitize(string(resp.User.ID)),
			Username:       sanitize(resp.User.Username),
			Email:          sanitize(resp.User.Email),
			Role:           sanitize(resp.User.Role),
			Organization:   sanitize(resp.User.Organization),
			HealthFacility: sanitize(resp.User.HealthFacility),
		},
	}, nil
}

// sanitize strips markup and decodes the entities bluemonday escapes.
func sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

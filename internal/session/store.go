// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"strings"

	"github.com/olegiv/pharmaconnect-go/internal/access"
)

// Storage keys. Flags are stored as "true"/"false" strings.
const (
	KeyIsAuthenticated = "isAuthenticated"
	KeyIsDemoMode      = "isDemoMode"
	KeyUserRole        = "userRole"
	KeyUsername        = "username"
	KeyOrganization    = "organization"
	KeyHealthFacility  = "healthFacility"
	KeyUserID          = "userId"
	KeyUserEmail       = "userEmail"
	KeyAPIToken        = "apiToken"
	KeyLang            = "lang"
	KeyMenuExpanded    = "menuExpanded"
)

// Session is a snapshot of the actor state for one browser session.
type Session struct {
	IsAuthenticated bool
	IsDemoMode      bool
	Role            string
	Username        string
	Organization    string
	HealthFacility  string
	UserID          string
	UserEmail       string
	APIToken        string
	Lang            string
	ExpandedMenu    []string
}

// Credentials returns the fields needed for actor resolution.
func (s Session) Credentials() access.Credentials {
	return access.Credentials{
		IsAuthenticated: s.IsAuthenticated,
		IsDemoMode:      s.IsDemoMode,
		Role:            s.Role,
	}
}

// Actor resolves the session into an access.Actor.
func (s Session) Actor() access.Actor {
	return access.ResolveActor(s.Credentials())
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	IsAuthenticated *bool
	IsDemoMode      *bool
	Role            *string
	Username        *string
	Organization    *string
	HealthFacility  *string
	UserID          *string
	UserEmail       *string
	APIToken        *string
	Lang            *string
	ExpandedMenu    *[]string
}

// Ptr returns a pointer to v, for building patches inline.
func Ptr[T any](v T) *T { return &v }

// Store reads and writes session state for the request bound to ctx.
// Every field is written independently; there is no multi-field transaction.
type Store interface {
	Get(ctx context.Context) Session
	Set(ctx context.Context, p Patch)
	Clear(ctx context.Context) error
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func parseBool(s string) bool {
	return strings.TrimSpace(s) == "true"
}

// apply writes every non-nil patch field through put.
func (p Patch) apply(put func(key, value string)) {
	if p.IsAuthenticated != nil {
		put(KeyIsAuthenticated, formatBool(*p.IsAuthenticated))
	}
	if p.IsDemoMode != nil {
		put(KeyIsDemoMode, formatBool(*p.IsDemoMode))
	}
	if p.Role != nil {
		put(KeyUserRole, *p.Role)
	}
	if p.Username != nil {
		put(KeyUsername, *p.Username)
	}
	if p.Organization != nil {
		put(KeyOrganization, *p.Organization)
	}
	if p.HealthFacility != nil {
		put(KeyHealthFacility, *p.HealthFacility)
	}
	if p.UserID != nil {
		put(KeyUserID, *p.UserID)
	}
	if p.UserEmail != nil {
		put(KeyUserEmail, *p.UserEmail)
	}
	if p.APIToken != nil {
		put(KeyAPIToken, *p.APIToken)
	}
	if p.Lang != nil {
		put(KeyLang, *p.Lang)
	}
	if p.ExpandedMenu != nil {
		put(KeyMenuExpanded, strings.Join(*p.ExpandedMenu, ","))
	}
}

// decode builds a Session from a key lookup.
func decode(get func(key string) string) Session {
	s := Session{
		IsAuthenticated: parseBool(get(KeyIsAuthenticated)),
		IsDemoMode:      parseBool(get(KeyIsDemoMode)),
		Role:            get(KeyUserRole),
		Username:        get(KeyUsername),
		Organization:    get(KeyOrganization),
		HealthFacility:  get(KeyHealthFacility),
		UserID:          get(KeyUserID),
		UserEmail:       get(KeyUserEmail),
		APIToken:        get(KeyAPIToken),
		Lang:            get(KeyLang),
	}
	if raw := get(KeyMenuExpanded); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				s.ExpandedMenu = append(s.ExpandedMenu, id)
			}
		}
	}
	return s
}

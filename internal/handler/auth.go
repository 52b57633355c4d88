// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/olegiv/pharmaconnect-go/internal/access"
	"github.com/olegiv/pharmaconnect-go/internal/apiclient"
	"github.com/olegiv/pharmaconnect-go/internal/i18n"
	"github.com/olegiv/pharmaconnect-go/internal/logging"
	"github.com/olegiv/pharmaconnect-go/internal/middleware"
	"github.com/olegiv/pharmaconnect-go/internal/render"
	"github.com/olegiv/pharmaconnect-go/internal/service"
	"github.com/olegiv/pharmaconnect-go/internal/session"
)

// Authenticator exchanges credentials for an API token and profile.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (apiclient.LoginResult, error)
}

// SessionStore is a session.Store that can rotate its token, which every
// privilege change must do.
type SessionStore interface {
	session.Store
	RenewToken(ctx context.Context) error
}

// AuthHandler handles the landing page, login, demo entry, and logout.
type AuthHandler struct {
	auth            Authenticator
	store           SessionStore
	renderer        *render.Renderer
	events          *service.EventService
	loginProtection *middleware.LoginProtection
	demoEnabled     bool
	newID           func() string
}

// NewAuthHandler creates a new AuthHandler. events and lp may be nil.
func NewAuthHandler(auth Authenticator, store SessionStore, renderer *render.Renderer, events *service.EventService, lp *middleware.LoginProtection, demoEnabled bool) *AuthHandler {
	return &AuthHandler{
		auth:            auth,
		store:           store,
		renderer:        renderer,
		events:          events,
		loginProtection: lp,
		demoEnabled:     demoEnabled,
		newID:           func() string { return uuid.NewString() },
	}
}

// Landing renders the public landing page. Signed-in actors go straight to
// their dashboard.
// GET /
func (h *AuthHandler) Landing(w http.ResponseWriter, r *http.Request) {
	if !h.store.Get(r.Context()).Actor().IsAnonymous() {
		http.Redirect(w, r, redirectDashboard, http.StatusSeeOther)
		return
	}
	h.renderPublic(w, r, templateLanding, "", h.demoEnabled)
}

// LoginForm renders the login page.
// GET /login
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.store.Get(r.Context()).Actor().Kind == access.Real {
		http.Redirect(w, r, redirectDashboard, http.StatusSeeOther)
		return
	}
	h.renderPublic(w, r, templateLogin, "auth.login", "")
}

// Login handles the login form submission.
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := middleware.GetLanguage(ctx)

	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, redirectLogin, i18n.T(lang, "auth.missing_fields"))
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		flashError(w, r, h.renderer, redirectLogin, i18n.T(lang, "auth.missing_fields"))
		return
	}

	clientIP := middleware.ClientIP(r)
	meta := service.ClientMeta(r.UserAgent())
	meta["email"] = email

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
			h.logAuthEvent(ctx, logging.EventLevelWarning, "login attempt on locked account", "", clientIP, meta)
			flashError(w, r, h.renderer, redirectLogin, i18n.T(lang, "auth.account_locked", formatDuration(remaining)))
			return
		}
	}

	result, err := h.auth.Login(ctx, email, password)
	if err != nil {
		h.loginFailed(w, r, email, clientIP, meta, err)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(email)
	}

	if err := h.store.RenewToken(ctx); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}

	p := result.Profile
	role := p.Role
	if parsed, ok := access.ParseRole(role); ok {
		role = parsed.String()
	}
	username := p.Username
	if username == "" {
		username = p.Email
	}
	h.store.Set(ctx, session.Patch{
		IsAuthenticated: session.Ptr(true),
		IsDemoMode:      session.Ptr(false),
		Role:            session.Ptr(role),
		Username:        session.Ptr(username),
		Organization:    session.Ptr(p.Organization),
		HealthFacility:  session.Ptr(p.HealthFacility),
		UserID:          session.Ptr(p.ID),
		UserEmail:       session.Ptr(p.Email),
		APIToken:        session.Ptr(result.Token),
		ExpandedMenu:    session.Ptr([]string(nil)),
	})

	meta["role"] = role
	slog.Info("user logged in", "category", logging.EventCategoryAuth, "user_id", p.ID, "role", role)
	h.logAuthEvent(ctx, logging.EventLevelInfo, "user logged in", p.ID, clientIP, meta)

	flashAndRedirect(w, r, h.renderer, redirectDashboard, i18n.T(lang, "auth.welcome", username), render.FlashSuccess)
}

// loginFailed maps an API login error to a flash message and records the
// attempt against the account.
func (h *AuthHandler) loginFailed(w http.ResponseWriter, r *http.Request, email, clientIP string, meta map[string]any, err error) {
	ctx := r.Context()
	lang := middleware.GetLanguage(ctx)

	var apiErr *apiclient.APIError
	rejected := errors.Is(err, apiclient.ErrUnauthorized) ||
		(errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError)
	if !rejected {
		slog.Error("login api call failed", "category", logging.EventCategoryAPI, "error", err)
		h.logAuthEvent(ctx, logging.EventLevelError, "login failed: api unavailable", "", clientIP, meta)
		flashError(w, r, h.renderer, redirectLogin, i18n.T(lang, "auth.api_unavailable"))
		return
	}

	h.logAuthEvent(ctx, logging.EventLevelWarning, "login failed: invalid credentials", "", clientIP, meta)
	if h.loginProtection != nil {
		if locked, lockDuration := h.loginProtection.RecordFailedAttempt(email); locked {
			lockMeta := maps.Clone(meta)
			lockMeta["duration"] = lockDuration.String()
			h.logAuthEvent(ctx, logging.EventLevelWarning, "account locked after failed attempts", "", clientIP, lockMeta)
			flashError(w, r, h.renderer, redirectLogin, i18n.T(lang, "auth.account_locked", formatDuration(lockDuration)))
			return
		}
	}
	flashError(w, r, h.renderer, redirectLogin, i18n.T(lang, "auth.invalid_credentials"))
}

// Demo enters demo mode.
// POST /demo
func (h *AuthHandler) Demo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := middleware.GetLanguage(ctx)

	if !h.demoEnabled {
		flashError(w, r, h.renderer, redirectLanding, i18n.T(lang, "auth.demo_disabled"))
		return
	}

	if err := h.store.RenewToken(ctx); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}

	userID := demoUserIDPrefix + h.newID()
	h.store.Set(ctx, session.Patch{
		IsDemoMode: session.Ptr(true),
		Username:   session.Ptr(demoUsername),
		UserID:     session.Ptr(userID),
		APIToken:   session.Ptr(""),
	})

	slog.Info("demo session started", "category", logging.EventCategoryAuth, "user_id", userID)
	h.logAuthEvent(ctx, logging.EventLevelInfo, "demo session started", userID, middleware.ClientIP(r), service.ClientMeta(r.UserAgent()))

	flashAndRedirect(w, r, h.renderer, redirectDashboard, i18n.T(lang, "auth.demo_started"), render.FlashInfo)
}

// Logout clears the session and returns to the landing page.
// POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := middleware.GetLanguage(ctx)
	s := h.store.Get(ctx)

	if !s.Actor().IsAnonymous() {
		h.logAuthEvent(ctx, logging.EventLevelInfo, "user logged out", s.UserID, middleware.ClientIP(r), service.ClientMeta(r.UserAgent()))
	}

	if err := h.store.Clear(ctx); err != nil {
		slog.Error("session clear error", "category", logging.EventCategorySession, "error", err)
	}
	if s.Lang != "" {
		h.store.Set(ctx, session.Patch{Lang: session.Ptr(s.Lang)})
	}

	slog.Info("user logged out", "category", logging.EventCategoryAuth, "user_id", s.UserID)
	flashAndRedirect(w, r, h.renderer, redirectLanding, i18n.T(lang, "auth.logged_out"), render.FlashInfo)
}

func (h *AuthHandler) renderPublic(w http.ResponseWriter, r *http.Request, name, title string, data any) {
	err := h.renderer.Render(w, r, name, render.TemplateData{
		Title: title,
		Lang:  middleware.GetLanguage(r.Context()),
		Path:  r.URL.Path,
		Data:  data,
	})
	if err != nil {
		logAndInternalError(w, "failed to render page", "template", name, "error", err)
	}
}

func (h *AuthHandler) logAuthEvent(ctx context.Context, level, message, userID, ip string, meta map[string]any) {
	if h.events == nil {
		return
	}
	_ = h.events.LogAuthEvent(ctx, level, message, userID, ip, meta)
}

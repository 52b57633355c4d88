// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/pharmaconnect-go/internal/access"
	"github.com/olegiv/pharmaconnect-go/internal/cache"
	"github.com/olegiv/pharmaconnect-go/internal/gate"
	"github.com/olegiv/pharmaconnect-go/internal/menu"
	"github.com/olegiv/pharmaconnect-go/internal/render"
	"github.com/olegiv/pharmaconnect-go/internal/session"
	"github.com/olegiv/pharmaconnect-go/internal/testutil"
	"github.com/olegiv/pharmaconnect-go/web"
)

func newTestMenus(t *testing.T) *menu.Cached {
	t.Helper()
	c := cache.NewMemoryCache(cache.MemoryOptions{DefaultTTL: time.Minute, MaxSize: 100})
	t.Cleanup(func() { _ = c.Close() })
	return menu.NewCached(menu.NewProjector(), c, time.Minute)
}

// newGatedRouter wires the pages handler behind the gate the way the server
// does, with flashes disabled.
func newGatedRouter(t *testing.T, store session.Store) http.Handler {
	t.Helper()
	templates, err := fs.Sub(web.Templates, "templates")
	require.NoError(t, err)
	renderer, err := render.New(render.Config{TemplatesFS: templates, IsDev: true})
	require.NoError(t, err)

	pages, err := NewPagesHandler(renderer, newTestMenus(t), store, web.Help, testutil.TestLoggerSilent())
	require.NoError(t, err)

	return gate.New(gate.NewTable(gate.DefaultRoutes), store, nil, pages, testutil.TestLoggerSilent()).Handler()
}

func serve(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestPages_DashboardPerRole(t *testing.T) {
	tests := []struct {
		name  string
		store session.Store
		class string
	}{
		{"super admin", testutil.SessionFor(access.RoleSuperAdmin), "dashboard-super-admin"},
		{"org admin", testutil.SessionFor(access.RoleOrgAdmin), "dashboard-org-admin"},
		{"project manager", testutil.SessionFor(access.RoleProjectManager), "dashboard-project-manager"},
		{"site user", testutil.SessionFor(access.RoleSiteUser), "dashboard-site-user"},
		{"demo", testutil.DemoSession(), "dashboard-demo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newGatedRouter(t, tt.store), "/dashboard")

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.class)
		})
	}
}

func TestPages_AnonymousRedirectedToLanding(t *testing.T) {
	rec := serve(newGatedRouter(t, testutil.AnonymousSession()), "/stock/current")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestPages_ForbiddenRouteRedirectsToDashboard(t *testing.T) {
	rec := serve(newGatedRouter(t, testutil.SessionFor(access.RoleSiteUser)), "/admin/users")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestPages_PlaceholderWithSidebar(t *testing.T) {
	rec := serve(newGatedRouter(t, testutil.SessionFor(access.RoleSiteUser)), "/stock/current")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `href="/stock/current" aria-current="page"`)
	assert.NotContains(t, body, `href="/admin/users"`)
	assert.Contains(t, body, "stock_current")
	assert.Contains(t, body, `<nav class="breadcrumbs"`)
}

func TestPages_SettingsTemplate(t *testing.T) {
	rec := serve(newGatedRouter(t, testutil.SessionFor(access.RoleOrgAdmin)), "/settings/user")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test@example.org")
}

func TestPages_HelpRendersMarkdown(t *testing.T) {
	rec := serve(newGatedRouter(t, testutil.DemoSession()), "/help")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Aide PharmaConnect</h1>")
}

func TestPages_NotFound(t *testing.T) {
	t.Run("signed in goes back to dashboard", func(t *testing.T) {
		rec := serve(newGatedRouter(t, testutil.SessionFor(access.RoleSiteUser)), "/nope")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `href="/dashboard"`)
	})

	t.Run("anonymous goes back to landing", func(t *testing.T) {
		rec := serve(newGatedRouter(t, testutil.AnonymousSession()), "/nope")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `js-back" href="/"`)
	})
}

func TestNewPagesHandler_HelpFallsBackToDefaultLanguage(t *testing.T) {
	helpFS := fstest.MapFS{"help/fr.md": {Data: []byte("# Bonjour\n")}}

	h, err := NewPagesHandler(nil, nil, testutil.AnonymousSession(), helpFS, nil)
	require.NoError(t, err)

	assert.Contains(t, string(h.helpFor("en")), "Bonjour")
	assert.Contains(t, string(h.helpFor("fr")), "Bonjour")
}

func TestQuickLinks_SkipsDashboardAndGroups(t *testing.T) {
	items := menu.NewProjector().Tree(access.RoleSiteUser, "en", "/dashboard", nil)

	links := quickLinks(items)
	require.NotEmpty(t, links)
	for _, l := range links {
		assert.NotEqual(t, gate.PathDashboard, l.Path)
		assert.False(t, l.HasChildren())
		assert.NotEmpty(t, l.Path)
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/alexedwards/scs/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/pharmaconnect-go/internal/access"
	"github.com/olegiv/pharmaconnect-go/internal/i18n"
	"github.com/olegiv/pharmaconnect-go/internal/menu"
	"github.com/olegiv/pharmaconnect-go/internal/testutil"
	"github.com/olegiv/pharmaconnect-go/web"
)

func TestMain(m *testing.M) {
	if err := i18n.Init(testutil.TestLoggerSilent()); err != nil {
		fmt.Fprintf(os.Stderr, "i18n init: %v\n", err)
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func newTestRenderer(t *testing.T, sm *scs.SessionManager) *Renderer {
	t.Helper()
	templates, err := fs.Sub(web.Templates, "templates")
	require.NoError(t, err)

	r, err := New(Config{TemplatesFS: templates, SessionManager: sm, IsDev: true})
	require.NoError(t, err)
	return r
}

// loadedRequest returns a request whose context carries a loaded scs session.
func loadedRequest(t *testing.T, sm *scs.SessionManager, target string) *http.Request {
	t.Helper()
	ctx, err := sm.Load(context.Background(), "")
	require.NoError(t, err)
	return httptest.NewRequest(http.MethodGet, target, nil).WithContext(ctx)
}

func TestNew_ParsesEmbeddedTemplates(t *testing.T) {
	r := newTestRenderer(t, nil)

	for _, name := range []string{
		"public/landing", "public/login", "public/not_found",
		"pages/page", "pages/help", "pages/settings_user",
		"pages/dashboard_real", "pages/dashboard_super_admin", "pages/dashboard_org_admin",
		"pages/dashboard_project_manager", "pages/dashboard_site_user", "pages/dashboard_demo",
	} {
		assert.True(t, r.Has(name), "missing template %s", name)
	}
	assert.False(t, r.Has("pages/unknown"))
}

func TestRender_FrameWithSidebar(t *testing.T) {
	r := newTestRenderer(t, nil)
	items := menu.NewProjector().Tree(access.RoleSiteUser, "en", "/stock/current", nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stock/current", nil)
	err := r.Render(rec, req, "pages/page", TemplateData{
		Title: "menu.stock.current",
		Lang:  "en",
		Path:  "/stock/current",
		User:  User{Name: "Awa", Role: access.RoleSiteUser.String()},
		Menu:  items,
		Data:  "stock_current",
	})
	require.NoError(t, err)

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, "<title>Current stock · PharmaConnect</title>")
	assert.Contains(t, body, "Utilisateur Site")
	assert.Contains(t, body, `href="/stock/current" aria-current="page"`)
	assert.Contains(t, body, `action="/menu/stock/toggle"`)
	assert.NotContains(t, body, "/admin/users", "site users never see administration links")
	assert.Contains(t, body, "stock_current")
}

func TestRender_DemoBadge(t *testing.T) {
	r := newTestRenderer(t, nil)

	rec := httptest.NewRecorder()
	err := r.Render(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil), "pages/dashboard_demo", TemplateData{
		Lang: "fr",
		User: User{Name: "Démo", IsDemo: true},
	})
	require.NoError(t, err)

	body := rec.Body.String()
	assert.Contains(t, body, `<html lang="fr">`)
	assert.Contains(t, body, "badge-demo")
	assert.Contains(t, body, "Connecté en tant que Démo.")
}

func TestRender_NotificationsBadge(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  string
	}{
		{"unread", 3, `<span class="badge badge-count">3</span>`},
		{"none", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRenderer(t, nil)

			rec := httptest.NewRecorder()
			err := r.Render(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil), "pages/dashboard_demo", TemplateData{
				Lang:          "en",
				User:          User{Name: "Demo", IsDemo: true},
				Notifications: tt.count,
			})
			require.NoError(t, err)

			body := rec.Body.String()
			assert.Contains(t, body, `href="/notifications"`)
			if tt.want == "" {
				assert.NotContains(t, body, "badge-count")
				return
			}
			assert.Contains(t, body, tt.want)
		})
	}
}

func TestRenderStatus_NotFound(t *testing.T) {
	r := newTestRenderer(t, nil)

	rec := httptest.NewRecorder()
	err := r.RenderStatus(rec, httptest.NewRequest(http.MethodGet, "/nope", nil), http.StatusNotFound, "public/not_found", TemplateData{
		Lang: "en",
		Data: "/",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
	assert.Contains(t, rec.Body.String(), `class="button js-back" href="/"`)
}

func TestRender_UnknownTemplate(t *testing.T) {
	r := newTestRenderer(t, nil)

	rec := httptest.NewRecorder()
	err := r.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), "pages/missing", TemplateData{})

	require.Error(t, err)
	assert.Equal(t, 0, rec.Body.Len(), "nothing is written on error")
}

func TestFlash_ShownOnce(t *testing.T) {
	sm := scs.New()
	r := newTestRenderer(t, sm)
	req := loadedRequest(t, sm, "/login")

	r.SetFlash(req.Context(), "Invalid credentials", FlashError)

	rec := httptest.NewRecorder()
	require.NoError(t, r.Render(rec, req, "public/login", TemplateData{Lang: "en"}))
	assert.Contains(t, rec.Body.String(), `<div class="flash flash-error" role="status">Invalid credentials</div>`)

	rec = httptest.NewRecorder()
	require.NoError(t, r.Render(rec, req, "public/login", TemplateData{Lang: "en"}))
	assert.NotContains(t, rec.Body.String(), "Invalid credentials")
}

func TestNew_TemplateError(t *testing.T) {
	fsys := fstest.MapFS{
		"layouts/base.html": {Data: []byte(`{{define "base"}}{{template "body" .}}{{end}}`)},
		"public/bad.html":   {Data: []byte(`{{define "body"}}{{.Broken`)},
	}

	_, err := New(Config{TemplatesFS: fsys})

	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "public/bad"))
}

func TestNew_MissingDirectoriesAreEmpty(t *testing.T) {
	r, err := New(Config{TemplatesFS: fstest.MapFS{}})

	require.NoError(t, err)
	assert.False(t, r.Has("public/landing"))
}

func TestMarkdown(t *testing.T) {
	out, err := Markdown([]byte("# Help\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n<script>alert(1)</script>\n"))
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, `<h1 id="help">Help</h1>`)
	assert.Contains(t, html, "<table>")
	assert.NotContains(t, html, "<script>")
}

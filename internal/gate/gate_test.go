// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package gate

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/pharmaconnect-go/internal/access"
	"github.com/olegiv/pharmaconnect-go/internal/session"
)

type fakeAPI struct{ authenticated bool }

func (f fakeAPI) IsAuthenticated(context.Context) bool { return f.authenticated }

type recordingPages struct {
	mounted  []View
	notFound int
}

func (p *recordingPages) Mount(w http.ResponseWriter, r *http.Request, v View) {
	p.mounted = append(p.mounted, v)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "page:"+v.Decision.Route.Page+" role:"+EffectiveRole(r.Context()).Code())
}

func (p *recordingPages) NotFound(w http.ResponseWriter, _ *http.Request) {
	p.notFound++
	w.WriteHeader(http.StatusNotFound)
	_, _ = io.WriteString(w, "not found")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestGate(s session.Session, api APISession) (*Gate, *recordingPages) {
	pages := &recordingPages{}
	g := New(NewTable(DefaultRoutes), session.NewMemoryStore(s), api, pages, discardLogger())
	return g, pages
}

func realSession(role access.Role) session.Session {
	return session.Session{IsAuthenticated: true, Role: role.String()}
}

func sessionFor(role access.Role) session.Session {
	if role == access.RoleDemoFieldCoordinator {
		return session.Session{IsDemoMode: true}
	}
	return realSession(role)
}

// samplePath turns a route pattern into a concrete request path.
func samplePath(pattern string) string {
	return strings.ReplaceAll(pattern, "{id}", "42")
}

func TestEvaluate_DeniedRolesRedirectToDashboard(t *testing.T) {
	g, _ := newTestGate(session.Session{}, nil)

	for _, rt := range DefaultRoutes {
		allowed, restricted := rt.AllowedRoles()
		if !restricted || rt.Path == PathDashboard {
			continue
		}
		for _, role := range access.AllRoles {
			if containsRole(allowed, role) {
				continue
			}
			t.Run(rt.Path+"/"+role.Code(), func(t *testing.T) {
				d := g.Evaluate(context.Background(), samplePath(rt.Path), sessionFor(role))
				assert.Equal(t, RedirectDashboard, d.Outcome)
				assert.Equal(t, PathDashboard, d.Target)
			})
		}
	}
}

func TestEvaluate_AllowedRolesRender(t *testing.T) {
	g, _ := newTestGate(session.Session{}, nil)

	for _, rt := range DefaultRoutes {
		allowed, restricted := rt.AllowedRoles()
		if !restricted {
			allowed = access.AllRoles
		}
		for _, role := range allowed {
			t.Run(rt.Path+"/"+role.Code(), func(t *testing.T) {
				d := g.Evaluate(context.Background(), samplePath(rt.Path), sessionFor(role))
				assert.Equal(t, Render, d.Outcome)
				assert.Equal(t, rt.Path, d.Route.Path)
				assert.Equal(t, role, d.Actor.EffectiveRole())
			})
		}
	}
}

func TestEvaluate_AnonymousRedirectsToLanding(t *testing.T) {
	g, _ := newTestGate(session.Session{}, nil)

	for _, rt := range DefaultRoutes {
		d := g.Evaluate(context.Background(), samplePath(rt.Path), session.Session{})
		assert.Equal(t, RedirectLogin, d.Outcome, rt.Path)
		assert.Equal(t, PathLanding, d.Target, rt.Path)
	}
}

func TestEvaluate_DemoOverridesStoredRole(t *testing.T) {
	g, _ := newTestGate(session.Session{}, fakeAPI{authenticated: true})
	s := session.Session{IsDemoMode: true, Role: "Super Admin", IsAuthenticated: true, APIToken: "stale"}

	d := g.Evaluate(context.Background(), "/dashboard", s)
	require.Equal(t, Render, d.Outcome)
	assert.Equal(t, DashboardDemo, d.Dashboard)
	assert.Equal(t, access.RoleDemoFieldCoordinator, d.Actor.EffectiveRole())

	d = g.Evaluate(context.Background(), "/admin/users", s)
	assert.Equal(t, RedirectDashboard, d.Outcome)
}

func TestEvaluate_DashboardSelection(t *testing.T) {
	tests := []struct {
		name string
		s    session.Session
		api  APISession
		want Dashboard
	}{
		{"super admin", realSession(access.RoleSuperAdmin), nil, DashboardSuperAdmin},
		{"org admin", realSession(access.RoleOrgAdmin), nil, DashboardOrgAdmin},
		{"project manager", realSession(access.RoleProjectManager), nil, DashboardProjectManager},
		{"site user", realSession(access.RoleSiteUser), nil, DashboardSiteUser},
		{"unknown role falls back", session.Session{IsAuthenticated: true, Role: "Stagiaire"}, nil, DashboardDemo},
		{"demo", session.Session{IsDemoMode: true}, nil, DashboardDemo},
		{"real api session", realSession(access.RoleSiteUser), fakeAPI{authenticated: true}, DashboardReal},
		{"api without session token", realSession(access.RoleOrgAdmin), fakeAPI{}, DashboardOrgAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGate(session.Session{}, tt.api)
			d := g.Evaluate(context.Background(), "/dashboard", tt.s)
			require.Equal(t, Render, d.Outcome)
			assert.Equal(t, tt.want, d.Dashboard)
		})
	}
}

func TestEvaluate_ProjectManagerScenario(t *testing.T) {
	g, _ := newTestGate(session.Session{}, nil)
	s := realSession(access.RoleProjectManager)

	d := g.Evaluate(context.Background(), "/medication-categories", s)
	assert.Equal(t, Render, d.Outcome)

	d = g.Evaluate(context.Background(), "/admin/users", s)
	assert.Equal(t, RedirectDashboard, d.Outcome)
	assert.Equal(t, "/dashboard", d.Target)
}

func TestEvaluate_UnknownPathIsNotFound(t *testing.T) {
	g, _ := newTestGate(session.Session{}, nil)
	sessions := []session.Session{
		{},
		{IsDemoMode: true},
		realSession(access.RoleSuperAdmin),
		realSession(access.RoleSiteUser),
		{IsAuthenticated: true},
	}

	for _, s := range sessions {
		d := g.Evaluate(context.Background(), "/does-not-exist", s)
		assert.Equal(t, NotFound, d.Outcome)
	}
}

func TestEvaluate_AuthenticatedWithoutRole(t *testing.T) {
	g, _ := newTestGate(session.Session{}, nil)
	s := session.Session{IsAuthenticated: true}

	assert.Equal(t, Render, g.Evaluate(context.Background(), "/medications", s).Outcome)
	assert.Equal(t, RedirectDashboard, g.Evaluate(context.Background(), "/projects", s).Outcome)

	d := g.Evaluate(context.Background(), "/dashboard", s)
	assert.Equal(t, DashboardDemo, d.Dashboard)
}

func TestEvaluate_ParameterisedRoutes(t *testing.T) {
	g, _ := newTestGate(session.Session{}, nil)

	d := g.Evaluate(context.Background(), "/medications/abc-123", realSession(access.RoleSiteUser))
	assert.Equal(t, Render, d.Outcome)
	assert.Equal(t, "/medications/{id}", d.Route.Path)

	d = g.Evaluate(context.Background(), "/projects/7", realSession(access.RoleSiteUser))
	assert.Equal(t, RedirectDashboard, d.Outcome)
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name       string
		s          session.Session
		path       string
		wantStatus int
		wantLoc    string
		wantBody   string
	}{
		{"anonymous", session.Session{}, "/stock/current", http.StatusSeeOther, "/", ""},
		{"denied", realSession(access.RoleSiteUser), "/admin/sites", http.StatusSeeOther, "/dashboard", ""},
		{"render", realSession(access.RoleOrgAdmin), "/admin/sites", http.StatusOK, "", "page:admin_sites role:admin_ong"},
		{"demo render", session.Session{IsDemoMode: true}, "/mapping", http.StatusOK, "", "page:mapping role:demo"},
		{"unknown", realSession(access.RoleSuperAdmin), "/nope", http.StatusNotFound, "", "not found"},
		{"unknown anonymous", session.Session{}, "/nope", http.StatusNotFound, "", "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGate(tt.s, nil)
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			g.Handler().ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantLoc != "" {
				assert.Equal(t, tt.wantLoc, w.Header().Get("Location"))
			}
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestHandler_ReadsSessionPerRequest(t *testing.T) {
	store := session.NewMemoryStore(realSession(access.RoleSuperAdmin))
	pages := &recordingPages{}
	h := New(NewTable(DefaultRoutes), store, nil, pages, discardLogger()).Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/users", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	store.Set(context.Background(), session.Patch{Role: session.Ptr("Utilisateur Site")})

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/users", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Len(t, pages.mounted, 1)
}

func TestHandler_DoesNotWriteSession(t *testing.T) {
	store := session.NewMemoryStore(session.Session{IsDemoMode: true, Role: "Admin ONG"})
	before := store.Get(context.Background())
	g := New(NewTable(DefaultRoutes), store, nil, &recordingPages{}, discardLogger())

	for _, p := range []string{"/dashboard", "/admin/users", "/nope"} {
		g.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}
	assert.Equal(t, before, store.Get(context.Background()))
}

func containsRole(roles []access.Role, r access.Role) bool {
	for _, x := range roles {
		if x == r {
			return true
		}
	}
	return false
}

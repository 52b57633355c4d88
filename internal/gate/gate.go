// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package gate decides, for every navigation to a protected path, whether the
// page renders or the actor is redirected to the landing page or dashboard.
package gate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/pharmaconnect-go/internal/access"
	"github.com/olegiv/pharmaconnect-go/internal/session"
)

// Outcome is the result of evaluating a navigation.
type Outcome int

// Navigation outcomes.
const (
	Render Outcome = iota
	RedirectLogin
	RedirectDashboard
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Render:
		return "render"
	case RedirectLogin:
		return "redirect_login"
	case RedirectDashboard:
		return "redirect_dashboard"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Decision is the gate's verdict for one navigation.
type Decision struct {
	Outcome Outcome
	// Target is the redirect location for redirect outcomes.
	Target string
	Route  Route
	Actor  access.Actor
	// Dashboard is set when the route is /dashboard and the outcome is Render.
	Dashboard Dashboard
}

// APISession reports whether the request holds a real API session.
type APISession interface {
	IsAuthenticated(ctx context.Context) bool
}

// View is what a page renderer receives for a Render decision.
type View struct {
	Decision Decision
	Session  session.Session
}

// PageMounter renders pages inside the authenticated frame.
type PageMounter interface {
	Mount(w http.ResponseWriter, r *http.Request, v View)
	NotFound(w http.ResponseWriter, r *http.Request)
}

// Gate evaluates navigations against a route table.
type Gate struct {
	table  *Table
	store  session.Store
	api    APISession
	pages  PageMounter
	logger *slog.Logger
}

// New creates a gate. api may be nil, in which case no actor is treated as
// holding a real API session.
func New(table *Table, store session.Store, api APISession, pages PageMounter, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{table: table, store: store, api: api, pages: pages, logger: logger}
}

// Table returns the gate's route table.
func (g *Gate) Table() *Table { return g.table }

// Evaluate decides the outcome of navigating to path with session s.
// It performs no writes; ctx is only passed to the API session query.
func (g *Gate) Evaluate(ctx context.Context, path string, s session.Session) Decision {
	actor := s.Actor()

	rt, ok := g.table.Lookup(path)
	if !ok {
		return Decision{Outcome: NotFound, Actor: actor}
	}

	if actor.IsAnonymous() {
		return Decision{Outcome: RedirectLogin, Target: PathLanding, Route: rt, Actor: actor}
	}

	if rt.Path == PathDashboard {
		d := DashboardFor(actor.EffectiveRole())
		if actor.Kind == access.Real && g.api != nil && g.api.IsAuthenticated(ctx) {
			d = DashboardReal
		}
		return Decision{Outcome: Render, Route: rt, Actor: actor, Dashboard: d}
	}

	if access.Restricted(rt.Feature) && !access.Allows(rt.Feature, actor.EffectiveRole()) {
		return Decision{Outcome: RedirectDashboard, Target: PathDashboard, Route: rt, Actor: actor}
	}

	return Decision{Outcome: Render, Route: rt, Actor: actor}
}

// Routes registers every route of the table on r behind the gate.
func (g *Gate) Routes(r chi.Router) {
	for _, rt := range g.table.Routes() {
		r.Get(rt.Path, g.serve)
	}
}

// Handler returns a standalone router serving the gated routes, with the
// not-found page for every other path.
func (g *Gate) Handler() http.Handler {
	r := chi.NewRouter()
	g.Routes(r)
	r.NotFound(g.pages.NotFound)
	return r
}

func (g *Gate) serve(w http.ResponseWriter, r *http.Request) {
	s := g.store.Get(r.Context())
	d := g.Evaluate(r.Context(), r.URL.Path, s)

	switch d.Outcome {
	case RedirectLogin:
		g.logger.Debug("navigation requires login", "path", r.URL.Path)
		http.Redirect(w, r, d.Target, http.StatusSeeOther)
	case RedirectDashboard:
		g.logger.Warn("navigation denied",
			"category", "auth",
			"path", r.URL.Path,
			"feature", string(d.Route.Feature),
			"role", d.Actor.EffectiveRole().Code(),
			"user_id", s.UserID,
		)
		http.Redirect(w, r, d.Target, http.StatusSeeOther)
	case NotFound:
		g.pages.NotFound(w, r)
	default:
		ctx := WithDecision(r.Context(), d)
		g.pages.Mount(w, r.WithContext(ctx), View{Decision: d, Session: s})
	}
}

// LogRoutes writes the route table with each route's allow-list at debug level.
func (g *Gate) LogRoutes() {
	for _, rt := range g.table.Routes() {
		roles, restricted := rt.AllowedRoles()
		names := make([]string, 0, len(roles))
		for _, role := range roles {
			names = append(names, role.Code())
		}
		g.logger.Debug("route registered",
			"path", rt.Path,
			"page", rt.Page,
			"feature", string(rt.Feature),
			"restricted", restricted,
			"roles", names,
		)
	}
}

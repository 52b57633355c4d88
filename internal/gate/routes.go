// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package gate

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/pharmaconnect-go/internal/access"
)

// PathDashboard and PathLanding are the two redirect targets of the gate.
const (
	PathLanding   = "/"
	PathDashboard = "/dashboard"
)

// Route declares a protected path, the page template it renders, and the
// feature whose capability entry decides who may reach it.
type Route struct {
	Path    string
	Page    string
	Feature access.Feature
	Title   string
}

// AllowedRoles returns the route's allow-list. The second result is false
// when any authenticated or demo actor may reach the route.
func (r Route) AllowedRoles() ([]access.Role, bool) {
	return access.AllowedRoles(r.Feature)
}

// DefaultRoutes is the protected route table of the admin UI.
var DefaultRoutes = []Route{
	{Path: "/dashboard", Page: "dashboard", Feature: access.FeatureDashboard, Title: "menu.dashboard"},
	{Path: "/notifications", Page: "notifications", Feature: access.FeatureNotifications, Title: "menu.notifications"},

	{Path: "/medications", Page: "medications_list", Feature: access.FeatureMedications, Title: "menu.medications.list"},
	{Path: "/medications/new", Page: "medications_form", Feature: access.FeatureMedications, Title: "menu.medications.new"},
	{Path: "/medications/{id}", Page: "medications_detail", Feature: access.FeatureMedications, Title: "menu.medications.detail"},
	{Path: "/medication-categories", Page: "medication_categories", Feature: access.FeatureMedicationCategories, Title: "menu.medications.categories"},

	{Path: "/stock/current", Page: "stock_current", Feature: access.FeatureStock, Title: "menu.stock.current"},
	{Path: "/stock/movements", Page: "stock_movements", Feature: access.FeatureStock, Title: "menu.stock.movements"},
	{Path: "/stock/inventory", Page: "stock_inventory", Feature: access.FeatureStock, Title: "menu.stock.inventory"},
	{Path: "/stock/alerts", Page: "stock_alerts", Feature: access.FeatureStockAlerts, Title: "menu.stock.alerts"},

	{Path: "/dispensation/new", Page: "dispensation_new", Feature: access.FeatureDispensation, Title: "menu.dispensation.new"},
	{Path: "/dispensation/history", Page: "dispensation_history", Feature: access.FeatureDispensation, Title: "menu.dispensation.history"},

	{Path: "/analytics/pharmacoepi", Page: "analytics_pharmacoepi", Feature: access.FeatureAnalytics, Title: "menu.analytics.pharmacoepi"},
	{Path: "/analytics/consumption", Page: "analytics_consumption", Feature: access.FeatureAnalytics, Title: "menu.analytics.consumption"},
	{Path: "/analytics/reports", Page: "analytics_reports", Feature: access.FeatureAnalytics, Title: "menu.analytics.reports"},

	{Path: "/mapping", Page: "mapping", Feature: access.FeatureMapping, Title: "menu.mapping"},

	{Path: "/projects", Page: "projects_list", Feature: access.FeatureProjects, Title: "menu.projects.list"},
	{Path: "/projects/new", Page: "projects_form", Feature: access.FeatureProjects, Title: "menu.projects.new"},
	{Path: "/projects/{id}", Page: "projects_detail", Feature: access.FeatureProjects, Title: "menu.projects.detail"},

	{Path: "/admin/organizations", Page: "admin_organizations", Feature: access.FeatureOrganizations, Title: "menu.admin.organizations"},
	{Path: "/admin/users", Page: "admin_users", Feature: access.FeatureUsers, Title: "menu.admin.users"},
	{Path: "/admin/sites", Page: "admin_sites", Feature: access.FeatureSites, Title: "menu.admin.sites"},

	{Path: "/import-export", Page: "import_export", Feature: access.FeatureImportExport, Title: "menu.import_export"},

	{Path: "/settings/user", Page: "settings_user", Feature: access.FeatureUserSettings, Title: "menu.settings.user"},
	{Path: "/settings/system", Page: "settings_system", Feature: access.FeatureSystemSettings, Title: "menu.settings.system"},

	{Path: "/help", Page: "help", Feature: access.FeatureHelp, Title: "menu.help"},
}

// Table is an immutable route table with chi pattern matching.
type Table struct {
	routes    []Route
	byPattern map[string]Route
	mux       *chi.Mux
}

// NewTable builds a table from routes. Later duplicates of a path are ignored.
func NewTable(routes []Route) *Table {
	t := &Table{
		byPattern: make(map[string]Route, len(routes)),
		mux:       chi.NewRouter(),
	}
	noop := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	for _, rt := range routes {
		if _, dup := t.byPattern[rt.Path]; dup {
			continue
		}
		t.byPattern[rt.Path] = rt
		t.routes = append(t.routes, rt)
		t.mux.Get(rt.Path, noop)
	}
	return t
}

// Lookup finds the route matching a request path.
func (t *Table) Lookup(path string) (Route, bool) {
	rctx := chi.NewRouteContext()
	if !t.mux.Match(rctx, http.MethodGet, path) {
		return Route{}, false
	}
	rt, ok := t.byPattern[rctx.RoutePattern()]
	return rt, ok
}

// Routes returns a copy of the table in declaration order.
func (t *Table) Routes() []Route {
	return slices.Clone(t.routes)
}

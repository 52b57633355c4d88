// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package menu projects the static sidebar tree onto the entries a role may see.
package menu

import "github.com/olegiv/pharmaconnect-go/internal/access"

// Entry is a node of the static sidebar tree. Group entries have no Path.
type Entry struct {
	ID       string         `json:"id"`
	LabelKey string         `json:"label_key"`
	Icon     string         `json:"icon"`
	Path     string         `json:"path,omitempty"`
	Feature  access.Feature `json:"feature"`
	Children []Entry        `json:"children,omitempty"`
}

// IsGroup reports whether e only groups children.
func (e Entry) IsGroup() bool {
	return e.Path == ""
}

func (e Entry) clone() Entry {
	out := e
	if e.Children != nil {
		out.Children = make([]Entry, len(e.Children))
		for i, c := range e.Children {
			out.Children[i] = c.clone()
		}
	}
	return out
}

// Group names one of the role-selectable entry groups.
type Group string

// Entry groups, listed in display order by GroupOrder.
const (
	GroupAdministration Group = "administration"
	GroupProjects       Group = "projects"
	GroupMedications    Group = "medications"
	GroupStock          Group = "stock"
	GroupDispensation   Group = "dispensation"
	GroupAnalytics      Group = "analytics"
	GroupMapping        Group = "mapping"
	GroupImportExport   Group = "import_export"
	GroupSettings       Group = "settings"
)

// GroupOrder is the fixed display order of groups.
var GroupOrder = []Group{
	GroupAdministration,
	GroupProjects,
	GroupMedications,
	GroupStock,
	GroupDispensation,
	GroupAnalytics,
	GroupMapping,
	GroupImportExport,
	GroupSettings,
}

// BaseEntries are shown to every authenticated or demo actor.
var BaseEntries = []Entry{
	{ID: "dashboard", LabelKey: "menu.dashboard", Icon: "home", Path: "/dashboard", Feature: access.FeatureDashboard},
	{ID: "notifications", LabelKey: "menu.notifications", Icon: "bell", Path: "/notifications", Feature: access.FeatureNotifications},
}

// GroupEntries holds the entries contributed by each group.
var GroupEntries = map[Group][]Entry{
	GroupAdministration: {{
		ID: "administration", LabelKey: "menu.group.administration", Icon: "shield", Feature: access.GroupAdministration,
		Children: []Entry{
			{ID: "organizations", LabelKey: "menu.admin.organizations", Icon: "building", Path: "/admin/organizations", Feature: access.FeatureOrganizations},
			{ID: "users", LabelKey: "menu.admin.users", Icon: "users", Path: "/admin/users", Feature: access.FeatureUsers},
			{ID: "sites", LabelKey: "menu.admin.sites", Icon: "map-pin", Path: "/admin/sites", Feature: access.FeatureSites},
		},
	}},
	GroupProjects: {{
		ID: "projects", LabelKey: "menu.group.projects", Icon: "folder", Feature: access.GroupProjects,
		Children: []Entry{
			{ID: "projects-list", LabelKey: "menu.projects.list", Icon: "list", Path: "/projects", Feature: access.FeatureProjects},
			{ID: "projects-new", LabelKey: "menu.projects.new", Icon: "plus", Path: "/projects/new", Feature: access.FeatureProjects},
		},
	}},
	GroupMedications: {{
		ID: "medications", LabelKey: "menu.group.medications", Icon: "pill", Feature: access.GroupMedications,
		Children: []Entry{
			{ID: "medications-list", LabelKey: "menu.medications.list", Icon: "list", Path: "/medications", Feature: access.FeatureMedications},
			{ID: "medications-new", LabelKey: "menu.medications.new", Icon: "plus", Path: "/medications/new", Feature: access.FeatureMedications},
			{ID: "medication-categories", LabelKey: "menu.medications.categories", Icon: "tag", Path: "/medication-categories", Feature: access.FeatureMedicationCategories},
		},
	}},
	GroupStock: {{
		ID: "stock", LabelKey: "menu.group.stock", Icon: "package", Feature: access.GroupStock,
		Children: []Entry{
			{ID: "stock-current", LabelKey: "menu.stock.current", Icon: "box", Path: "/stock/current", Feature: access.FeatureStock},
			{ID: "stock-movements", LabelKey: "menu.stock.movements", Icon: "repeat", Path: "/stock/movements", Feature: access.FeatureStock},
			{ID: "stock-inventory", LabelKey: "menu.stock.inventory", Icon: "clipboard", Path: "/stock/inventory", Feature: access.FeatureStock},
			{ID: "stock-alerts", LabelKey: "menu.stock.alerts", Icon: "alert-triangle", Path: "/stock/alerts", Feature: access.FeatureStockAlerts},
		},
	}},
	GroupDispensation: {{
		ID: "dispensation", LabelKey: "menu.group.dispensation", Icon: "activity", Feature: access.GroupDispensation,
		Children: []Entry{
			{ID: "dispensation-new", LabelKey: "menu.dispensation.new", Icon: "plus", Path: "/dispensation/new", Feature: access.FeatureDispensation},
			{ID: "dispensation-history", LabelKey: "menu.dispensation.history", Icon: "clock", Path: "/dispensation/history", Feature: access.FeatureDispensation},
		},
	}},
	GroupAnalytics: {{
		ID: "analytics", LabelKey: "menu.group.analytics", Icon: "bar-chart", Feature: access.GroupAnalytics,
		Children: []Entry{
			{ID: "analytics-pharmacoepi", LabelKey: "menu.analytics.pharmacoepi", Icon: "trending-up", Path: "/analytics/pharmacoepi", Feature: access.FeatureAnalytics},
			{ID: "analytics-consumption", LabelKey: "menu.analytics.consumption", Icon: "pie-chart", Path: "/analytics/consumption", Feature: access.FeatureAnalytics},
			{ID: "analytics-reports", LabelKey: "menu.analytics.reports", Icon: "file-text", Path: "/analytics/reports", Feature: access.FeatureAnalytics},
		},
	}},
	GroupMapping: {
		{ID: "mapping", LabelKey: "menu.mapping", Icon: "map", Path: "/mapping", Feature: access.FeatureMapping},
	},
	GroupImportExport: {
		{ID: "import-export", LabelKey: "menu.import_export", Icon: "upload", Path: "/import-export", Feature: access.FeatureImportExport},
	},
	GroupSettings: {{
		ID: "settings", LabelKey: "menu.group.settings", Icon: "settings", Feature: access.GroupSettings,
		Children: []Entry{
			{ID: "settings-user", LabelKey: "menu.settings.user", Icon: "user", Path: "/settings/user", Feature: access.FeatureUserSettings},
			{ID: "settings-system", LabelKey: "menu.settings.system", Icon: "sliders", Path: "/settings/system", Feature: access.FeatureSystemSettings},
			{ID: "help", LabelKey: "menu.help", Icon: "help-circle", Path: "/help", Feature: access.FeatureHelp},
		},
	}},
}

// RoleGroups is the explicit list of groups each role receives.
// Roles missing from the map get the base entries only.
var RoleGroups = map[access.Role][]Group{
	access.RoleSuperAdmin: GroupOrder,
	access.RoleOrgAdmin:   GroupOrder,
	access.RoleProjectManager: {
		GroupProjects, GroupMedications, GroupStock, GroupDispensation, GroupAnalytics, GroupSettings,
	},
	access.RoleSiteUser: {
		GroupMedications, GroupStock, GroupDispensation, GroupSettings,
	},
	access.RoleDemoFieldCoordinator: {
		GroupProjects, GroupMedications, GroupStock, GroupDispensation, GroupAnalytics, GroupMapping, GroupSettings,
	},
}

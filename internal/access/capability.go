// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package access

import "slices"

// Feature is a logical capability identifier shared by routes and menu entries.
type Feature string

// Page features.
const (
	FeatureDashboard            Feature = "dashboard"
	FeatureNotifications        Feature = "notifications"
	FeatureMedications          Feature = "medications"
	FeatureMedicationCategories Feature = "medication_categories"
	FeatureStock                Feature = "stock"
	FeatureStockAlerts          Feature = "stock_alerts"
	FeatureDispensation         Feature = "dispensation"
	FeatureAnalytics            Feature = "analytics"
	FeatureMapping              Feature = "mapping"
	FeatureProjects             Feature = "projects"
	FeatureOrganizations        Feature = "organizations"
	FeatureUsers                Feature = "users"
	FeatureSites                Feature = "sites"
	FeatureImportExport         Feature = "import_export"
	FeatureUserSettings         Feature = "user_settings"
	FeatureSystemSettings       Feature = "system_settings"
	FeatureHelp                 Feature = "help"
)

// Menu group features.
const (
	GroupAdministration Feature = "group_administration"
	GroupProjects       Feature = "group_projects"
	GroupMedications    Feature = "group_medications"
	GroupStock          Feature = "group_stock"
	GroupDispensation   Feature = "group_dispensation"
	GroupAnalytics      Feature = "group_analytics"
	GroupSettings       Feature = "group_settings"
)

var (
	managers      = []Role{RoleSuperAdmin, RoleOrgAdmin, RoleProjectManager}
	managersDemo  = []Role{RoleSuperAdmin, RoleOrgAdmin, RoleProjectManager, RoleDemoFieldCoordinator}
	adminsDemo    = []Role{RoleSuperAdmin, RoleOrgAdmin, RoleDemoFieldCoordinator}
	admins        = []Role{RoleSuperAdmin, RoleOrgAdmin}
	superAdminOne = []Role{RoleSuperAdmin}
)

// Capabilities maps every feature to the roles allowed to use it.
// A nil slice means any authenticated or demo actor.
var Capabilities = map[Feature][]Role{
	FeatureDashboard:            nil,
	FeatureNotifications:        nil,
	FeatureMedications:          nil,
	FeatureMedicationCategories: managers,
	FeatureStock:                nil,
	FeatureStockAlerts:          managersDemo,
	FeatureDispensation:         nil,
	FeatureAnalytics:            managersDemo,
	FeatureMapping:              adminsDemo,
	FeatureProjects:             managersDemo,
	FeatureOrganizations:        superAdminOne,
	FeatureUsers:                superAdminOne,
	FeatureSites:                admins,
	FeatureImportExport:         admins,
	FeatureUserSettings:         nil,
	FeatureSystemSettings:       superAdminOne,
	FeatureHelp:                 nil,

	GroupAdministration: admins,
	GroupProjects:       managersDemo,
	GroupMedications:    nil,
	GroupStock:          nil,
	GroupDispensation:   nil,
	GroupAnalytics:      managersDemo,
	GroupSettings:       nil,
}

// AllowedRoles returns a copy of the allow-list for f.
// The second result is false when f has no allow-list (any actor) or is unknown.
func AllowedRoles(f Feature) ([]Role, bool) {
	roles, ok := Capabilities[f]
	if !ok || roles == nil {
		return nil, false
	}
	return slices.Clone(roles), true
}

// Restricted reports whether f carries an explicit allow-list.
func Restricted(f Feature) bool {
	_, ok := AllowedRoles(f)
	return ok
}

// Allows reports whether role r may use feature f.
// Unknown features are denied.
func Allows(f Feature, r Role) bool {
	roles, ok := Capabilities[f]
	if !ok {
		return false
	}
	if roles == nil {
		return true
	}
	return slices.Contains(roles, r)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package gate

import "github.com/olegiv/pharmaconnect-go/internal/access"

// Dashboard names a dashboard composition template.
type Dashboard string

// Dashboard compositions.
const (
	DashboardReal           Dashboard = "real"
	DashboardSuperAdmin     Dashboard = "super_admin"
	DashboardOrgAdmin       Dashboard = "org_admin"
	DashboardProjectManager Dashboard = "project_manager"
	DashboardSiteUser       Dashboard = "site_user"
	DashboardDemo           Dashboard = "demo"
)

// DefaultDashboard is selected for any role missing from RoleDashboards.
const DefaultDashboard = DashboardDemo

// RoleDashboards maps roles to their dashboard composition.
var RoleDashboards = map[access.Role]Dashboard{
	access.RoleSuperAdmin:     DashboardSuperAdmin,
	access.RoleOrgAdmin:       DashboardOrgAdmin,
	access.RoleProjectManager: DashboardProjectManager,
	access.RoleSiteUser:       DashboardSiteUser,
}

// DashboardFor returns the composition for role r.
func DashboardFor(r access.Role) Dashboard {
	if d, ok := RoleDashboards[r]; ok {
		return d
	}
	return DefaultDashboard
}

// Template returns the page template name of the composition.
func (d Dashboard) Template() string {
	return "dashboard_" + string(d)
}

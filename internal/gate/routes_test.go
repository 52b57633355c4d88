// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/olegiv/pharmaconnect-go/internal/access"
)

func TestTableLookup(t *testing.T) {
	table := NewTable(DefaultRoutes)

	tests := []struct {
		path    string
		want    string
		matched bool
	}{
		{"/dashboard", "/dashboard", true},
		{"/medications", "/medications", true},
		{"/medications/new", "/medications/new", true},
		{"/medications/paracetamol", "/medications/{id}", true},
		{"/projects/12", "/projects/{id}", true},
		{"/admin/users", "/admin/users", true},
		{"/admin", "", false},
		{"/", "", false},
		{"/medications/1/edit", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rt, ok := table.Lookup(tt.path)
			assert.Equal(t, tt.matched, ok)
			assert.Equal(t, tt.want, rt.Path)
		})
	}
}

func TestTableIgnoresDuplicates(t *testing.T) {
	table := NewTable([]Route{
		{Path: "/a", Page: "first", Feature: access.FeatureHelp},
		{Path: "/a", Page: "second", Feature: access.FeatureHelp},
	})

	assert.Len(t, table.Routes(), 1)
	rt, ok := table.Lookup("/a")
	assert.True(t, ok)
	assert.Equal(t, "first", rt.Page)
}

func TestEveryRouteFeatureIsDeclared(t *testing.T) {
	for _, rt := range DefaultRoutes {
		_, ok := access.Capabilities[rt.Feature]
		assert.True(t, ok, "route %s uses undeclared feature %s", rt.Path, rt.Feature)
	}
}

func TestRouteAllowLists(t *testing.T) {
	table := NewTable(DefaultRoutes)

	rt, _ := table.Lookup("/medication-categories")
	roles, restricted := rt.AllowedRoles()
	assert.True(t, restricted)
	assert.Equal(t, []access.Role{access.RoleSuperAdmin, access.RoleOrgAdmin, access.RoleProjectManager}, roles)

	rt, _ = table.Lookup("/admin/users")
	roles, _ = rt.AllowedRoles()
	assert.Equal(t, []access.Role{access.RoleSuperAdmin}, roles)

	rt, _ = table.Lookup("/stock/current")
	_, restricted = rt.AllowedRoles()
	assert.False(t, restricted)
}

func TestDashboardFor(t *testing.T) {
	assert.Equal(t, DashboardSuperAdmin, DashboardFor(access.RoleSuperAdmin))
	assert.Equal(t, DashboardSiteUser, DashboardFor(access.RoleSiteUser))
	assert.Equal(t, DashboardDemo, DashboardFor(access.RoleDemoFieldCoordinator))
	assert.Equal(t, DashboardDemo, DashboardFor(access.RoleNone))
	assert.Equal(t, "dashboard_org_admin", DashboardOrgAdmin.Template())
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package access defines the roles, actors, and the capability table that
// both the route gate and the sidebar menu derive their permissions from.
package access

import "strings"

// Role is one of the fixed PharmaConnect roles.
// The zero value RoleNone means "no usable role".
type Role int

// Known roles. The order is the display order used in role listings.
const (
	RoleNone Role = iota
	RoleSuperAdmin
	RoleOrgAdmin
	RoleProjectManager
	RoleSiteUser
	RoleDemoFieldCoordinator
)

// AllRoles lists every assignable role in display order.
var AllRoles = []Role{
	RoleSuperAdmin,
	RoleOrgAdmin,
	RoleProjectManager,
	RoleSiteUser,
	RoleDemoFieldCoordinator,
}

var roleNames = map[Role]string{
	RoleSuperAdmin:           "Super Admin",
	RoleOrgAdmin:             "Admin ONG",
	RoleProjectManager:       "Gestionnaire Projet",
	RoleSiteUser:             "Utilisateur Site",
	RoleDemoFieldCoordinator: "Coordinateur Terrain (Démo)",
}

var roleCodes = map[Role]string{
	RoleSuperAdmin:           "super_admin",
	RoleOrgAdmin:             "admin_ong",
	RoleProjectManager:       "gestionnaire_projet",
	RoleSiteUser:             "utilisateur_site",
	RoleDemoFieldCoordinator: "demo",
}

// String returns the display name stored in sessions ("Super Admin", ...).
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return ""
}

// Code returns the snake_case identifier used by the API and in cache keys.
func (r Role) Code() string {
	if code, ok := roleCodes[r]; ok {
		return code
	}
	return "none"
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// ParseRole maps a stored role value to a Role.
// It accepts display names and API codes; the demo role is never parsed from
// storage because demo actors are identified by the demo flag alone.
func ParseRole(s string) (Role, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RoleNone, false
	}
	for _, r := range AllRoles {
		if r == RoleDemoFieldCoordinator {
			continue
		}
		if s == roleNames[r] || s == roleCodes[r] {
			return r, true
		}
	}
	return RoleNone, false
}

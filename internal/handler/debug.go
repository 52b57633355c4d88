// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/pharmaconnect-go/internal/gate"
	"github.com/olegiv/pharmaconnect-go/internal/scheduler"
)

// RouteInfo describes one gated route for the debug listing.
type RouteInfo struct {
	Path       string   `json:"path"`
	Page       string   `json:"page"`
	Feature    string   `json:"feature"`
	Restricted bool     `json:"restricted"`
	Roles      []string `json:"roles,omitempty"`
}

// JobLister lists scheduled jobs.
type JobLister interface {
	Jobs() []scheduler.JobInfo
}

// DebugHandler serves development-only introspection endpoints.
type DebugHandler struct {
	table *gate.Table
	jobs  JobLister
}

// NewDebugHandler creates a DebugHandler. jobs may be nil.
func NewDebugHandler(table *gate.Table, jobs JobLister) *DebugHandler {
	return &DebugHandler{table: table, jobs: jobs}
}

// Routes lists the route table with each route's allowed roles.
// GET /debug/routes
func (h *DebugHandler) Routes(w http.ResponseWriter, _ *http.Request) {
	routes := h.table.Routes()
	infos := make([]RouteInfo, 0, len(routes))
	for _, rt := range routes {
		roles, restricted := rt.AllowedRoles()
		info := RouteInfo{
			Path:       rt.Path,
			Page:       rt.Page,
			Feature:    string(rt.Feature),
			Restricted: restricted,
		}
		for _, role := range roles {
			info.Roles = append(info.Roles, role.Code())
		}
		infos = append(infos, info)
	}

	resp := map[string]any{"routes": infos}
	if h.jobs != nil {
		resp["jobs"] = h.jobs.Jobs()
	}
	writeJSON(w, http.StatusOK, resp)
}

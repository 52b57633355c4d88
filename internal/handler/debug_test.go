// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/pharmaconnect-go/internal/gate"
	"github.com/olegiv/pharmaconnect-go/internal/scheduler"
)

type staticJobs []scheduler.JobInfo

func (j staticJobs) Jobs() []scheduler.JobInfo { return j }

func TestDebugRoutes(t *testing.T) {
	h := NewDebugHandler(gate.NewTable(gate.DefaultRoutes), staticJobs{{Name: "event_retention", Schedule: scheduler.RetentionSchedule}})

	rec := httptest.NewRecorder()
	h.Routes(rec, httptest.NewRequest(http.MethodGet, "/debug/routes", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Routes []RouteInfo          `json:"routes"`
		Jobs   []scheduler.JobInfo `json:"jobs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Routes, len(gate.DefaultRoutes))
	require.Len(t, resp.Jobs, 1)
	assert.Equal(t, "event_retention", resp.Jobs[0].Name)

	byPath := make(map[string]RouteInfo, len(resp.Routes))
	for _, r := range resp.Routes {
		byPath[r.Path] = r
	}
	assert.False(t, byPath["/dashboard"].Restricted)
	assert.True(t, byPath["/admin/users"].Restricted)
	assert.Equal(t, []string{"super_admin"}, byPath["/admin/users"].Roles)
}

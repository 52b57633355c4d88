// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"net/http"
	"runtime"
	"time"

	"github.com/olegiv/pharmaconnect-go/internal/access"
	"github.com/olegiv/pharmaconnect-go/internal/cache"
	"github.com/olegiv/pharmaconnect-go/internal/session"
)

// Health check statuses.
const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDegraded  = "degraded"
)

// checkTimeout bounds each dependency probe.
const checkTimeout = 2 * time.Second

// pinger is implemented by cache backends with a remote connection.
type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	db        *sql.DB
	cache     cache.Cache
	store     session.Store
	version   string
	startTime time.Time
}

// NewHealthHandler creates a new health handler. c and store may be nil.
func NewHealthHandler(db *sql.DB, c cache.Cache, store session.Store, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		cache:     c,
		store:     store,
		version:   version,
		startTime: time.Now(),
	}
}

// HealthStatusPublic is the minimal response for callers without a super
// admin session.
type HealthStatusPublic struct {
	Status string `json:"status"`
}

// HealthStatus is the detailed response.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
	Cache     *cache.Stats     `json:"cache,omitempty"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// Check is a single dependency probe result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo contains runtime metrics.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	NumCPU       int    `json:"num_cpus"`
	MemAllocMB   uint64 `json:"mem_alloc_mb"`
	MemSysMB     uint64 `json:"mem_sys_mb"`
}

// Health handles GET /health. The database is required; a failing cache
// only degrades the service because menus are projected without it.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]Check{"database": h.checkDatabase(r.Context())}
	if h.cache != nil {
		checks["cache"] = h.checkCache(r.Context())
	}

	overall := statusHealthy
	code := http.StatusOK
	switch {
	case checks["database"].Status != statusHealthy:
		overall = statusUnhealthy
		code = http.StatusServiceUnavailable
	case h.cache != nil && checks["cache"].Status != statusHealthy:
		overall = statusDegraded
	}

	if !h.isSuperAdmin(r) {
		writeJSON(w, code, HealthStatusPublic{Status: overall})
		return
	}

	status := HealthStatus{
		Status:    overall,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    checks,
	}
	if sp, ok := h.cache.(cache.StatsProvider); ok {
		stats := sp.Stats()
		status.Cache = &stats
	}
	if r.URL.Query().Get("verbose") == "true" {
		status.System = systemInfo()
	}
	writeJSON(w, code, status)
}

// Liveness handles GET /health/live.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness handles GET /health/ready.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	db := h.checkDatabase(r.Context())
	if db.Status == statusHealthy {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
		return
	}

	resp := map[string]string{"status": "not_ready"}
	if h.isSuperAdmin(r) {
		resp["message"] = db.Message
	}
	writeJSON(w, http.StatusServiceUnavailable, resp)
}

// isSuperAdmin reports whether the request carries a super admin session.
// scs panics when the session was not loaded into the context, which is
// treated as anonymous.
func (h *HealthHandler) isSuperAdmin(r *http.Request) (ok bool) {
	if h.store == nil {
		return false
	}
	defer func() {
		if rec := recover(); rec != nil {
			ok = false
		}
	}()
	return h.store.Get(r.Context()).Actor().EffectiveRole() == access.RoleSuperAdmin
}

func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)
	latency := time.Since(start)
	if err != nil {
		return Check{Status: statusUnhealthy, Message: err.Error(), Latency: latency.String()}
	}
	return Check{Status: statusHealthy, Message: "Connected", Latency: latency.String()}
}

func (h *HealthHandler) checkCache(ctx context.Context) Check {
	p, ok := h.cache.(pinger)
	if !ok {
		return Check{Status: statusHealthy, Message: "in-memory"}
	}

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	latency := time.Since(start)
	if err != nil {
		return Check{Status: statusUnhealthy, Message: err.Error(), Latency: latency.String()}
	}
	return Check{Status: statusHealthy, Message: "Connected", Latency: latency.String()}
}

func systemInfo() *SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAllocMB:   m.Alloc / 1024 / 1024,
		MemSysMB:     m.Sys / 1024 / 1024,
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/pharmaconnect-go/internal/gate"
	"github.com/olegiv/pharmaconnect-go/internal/seo"
)

// Robots returns a handler serving robots.txt. Every console route is kept
// out of indexes; development servers block crawlers entirely.
// GET /robots.txt
func Robots(table *gate.Table, isDev bool) http.HandlerFunc {
	paths := []string{RouteLogin, RouteLogout, RouteDemo, RouteMenuToggle, RouteLanguage, RouteHealth, RouteDebugRoutes}
	for _, rt := range table.Routes() {
		paths = append(paths, rt.Path)
	}
	content := []byte(seo.NewRobotsBuilder(seo.RobotsConfig{
		DisallowAll:   isDev,
		DisallowPaths: paths,
	}).Build())

	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		_, _ = w.Write(content)
	}
}

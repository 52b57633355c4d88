// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	RouteRoot        = "/"
	RouteLogin       = "/login"
	RouteLogout      = "/logout"
	RouteDemo        = "/demo"
	RouteMenuToggle  = "/menu/{id}/toggle"
	RouteLanguage    = "/settings/language"
	RouteHealth      = "/health"
	RouteHealthLive  = "/health/live"
	RouteHealthReady = "/health/ready"
	RouteDebugRoutes = "/debug/routes"
	RouteStatic      = "/static/*"
	RouteRobots      = "/robots.txt"
)

// Redirect targets.
const (
	redirectLanding   = "/"
	redirectLogin     = "/login"
	redirectDashboard = "/dashboard"
)

// Template names.
const (
	templateLanding  = "public/landing"
	templateLogin    = "public/login"
	templateNotFound = "public/not_found"
	templatePage     = "pages/page"
	templateHelp     = "pages/help"
)

// pageHelp is the route page rendered from the embedded guides.
const pageHelp = "help"

// Demo session identity.
const (
	demoUsername     = "Démo"
	demoUserIDPrefix = "demo-"
)

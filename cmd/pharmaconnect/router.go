// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"io/fs"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/pharmaconnect-go/internal/gate"
	"github.com/olegiv/pharmaconnect-go/internal/handler"
	"github.com/olegiv/pharmaconnect-go/internal/middleware"
	"github.com/olegiv/pharmaconnect-go/internal/session"
)

// routerDeps holds everything newRouter mounts.
type routerDeps struct {
	SessionManager  *scs.SessionManager
	Sessions        session.Store
	Navigation      *gate.Gate
	Pages           *handler.PagesHandler
	Auth            *handler.AuthHandler
	Session         *handler.SessionHandler
	Health          *handler.HealthHandler
	LoginProtection *middleware.LoginProtection
	Jobs            handler.JobLister
	StaticFS        fs.FS
	CSRFKey         []byte
	ServerAddr      string
	IsDev           bool
}

// newRouter builds the HTTP routing tree of the admin server.
func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(d.IsDev)))
	r.Use(middleware.RequestPath)

	// Unmatched paths only reach the root mux, so the not-found page gets its
	// session and language here.
	withSession := func(h http.HandlerFunc) http.HandlerFunc {
		return d.SessionManager.LoadAndSave(middleware.Language(d.Sessions)(h)).ServeHTTP
	}
	r.NotFound(withSession(d.Pages.NotFound))

	// Health probes bypass sessions.
	r.Get(handler.RouteHealthLive, d.Health.Liveness)
	r.Get(handler.RouteHealthReady, d.Health.Readiness)
	r.Handle(handler.RouteStatic, http.StripPrefix("/static/", http.FileServerFS(d.StaticFS)))
	r.Get(handler.RouteRobots, handler.Robots(d.Navigation.Table(), d.IsDev))

	r.Group(func(r chi.Router) {
		r.Use(d.SessionManager.LoadAndSave)
		r.Use(middleware.Language(d.Sessions))

		r.Get(handler.RouteHealth, d.Health.Health)

		r.Group(func(r chi.Router) {
			r.Use(middleware.CSRF(middleware.DefaultCSRFConfig(d.CSRFKey, d.ServerAddr, d.IsDev)))

			r.Get(handler.RouteRoot, d.Auth.Landing)
			r.With(d.LoginProtection.Middleware()).Get(handler.RouteLogin, d.Auth.LoginForm)
			r.With(d.LoginProtection.Middleware()).Post(handler.RouteLogin, d.Auth.Login)
			r.Post(handler.RouteDemo, d.Auth.Demo)
			r.Post(handler.RouteLogout, d.Auth.Logout)
			r.Post(handler.RouteMenuToggle, d.Session.ToggleMenu)
			r.Post(handler.RouteLanguage, d.Session.SetLanguage)

			if d.IsDev && d.Jobs != nil {
				r.Get(handler.RouteDebugRoutes, handler.NewDebugHandler(d.Navigation.Table(), d.Jobs).Routes)
			}

			d.Navigation.Routes(r)
		})
	})

	return r
}

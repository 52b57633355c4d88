// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/pharmaconnect-go/internal/access"
	"github.com/olegiv/pharmaconnect-go/internal/i18n"
	"github.com/olegiv/pharmaconnect-go/internal/menu"
	"github.com/olegiv/pharmaconnect-go/internal/render"
	"github.com/olegiv/pharmaconnect-go/internal/session"
)

// MenuProjector returns the entries visible to a role.
type MenuProjector interface {
	Project(ctx context.Context, role access.Role) []menu.Entry
}

// SessionHandler handles per-session UI preferences: sidebar group
// expansion and the UI language.
type SessionHandler struct {
	store    session.Store
	menu     MenuProjector
	renderer *render.Renderer
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(store session.Store, menu MenuProjector, renderer *render.Renderer) *SessionHandler {
	return &SessionHandler{store: store, menu: menu, renderer: renderer}
}

// ToggleMenu flips the expansion of one sidebar group and returns to the
// previous page. Unknown ids and groups hidden from the actor's role leave
// the session untouched.
// POST /menu/{id}/toggle
func (h *SessionHandler) ToggleMenu(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := h.store.Get(ctx)
	actor := s.Actor()
	if actor.IsAnonymous() {
		http.Redirect(w, r, redirectLanding, http.StatusSeeOther)
		return
	}

	id := chi.URLParam(r, "id")
	if e, ok := menu.Find(h.menu.Project(ctx, actor.EffectiveRole()), id); ok && e.IsGroup() {
		h.store.Set(ctx, session.Patch{ExpandedMenu: session.Ptr(menu.Toggle(s.ExpandedMenu, id))})
	}

	http.Redirect(w, r, localReferer(r, redirectDashboard), http.StatusSeeOther)
}

// SetLanguage stores the UI language in the session.
// POST /settings/language
func (h *SessionHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	back := localReferer(r, redirectLanding)

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	lang := r.PostFormValue("lang")
	if !i18n.IsSupported(lang) {
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	h.store.Set(r.Context(), session.Patch{Lang: session.Ptr(lang)})
	flashAndRedirect(w, r, h.renderer, back, i18n.T(lang, "settings.language_saved"), render.FlashSuccess)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/olegiv/pharmaconnect-go/internal/access"
	"github.com/olegiv/pharmaconnect-go/internal/gate"
	"github.com/olegiv/pharmaconnect-go/internal/i18n"
	"github.com/olegiv/pharmaconnect-go/internal/menu"
	"github.com/olegiv/pharmaconnect-go/internal/middleware"
	"github.com/olegiv/pharmaconnect-go/internal/render"
	"github.com/olegiv/pharmaconnect-go/internal/session"
)

// MenuSource renders the sidebar for a role.
type MenuSource interface {
	Tree(ctx context.Context, role access.Role, lang, currentPath string, expanded []string) []menu.Item
}

// PagesHandler mounts gated pages inside the frame. It implements
// gate.PageMounter.
type PagesHandler struct {
	renderer *render.Renderer
	menu     MenuSource
	store    session.Store
	help     map[string]template.HTML
	logger   *slog.Logger
}

// NewPagesHandler creates a PagesHandler and renders the help guides found
// in helpFS as "help/<lang>.md".
func NewPagesHandler(renderer *render.Renderer, menu MenuSource, store session.Store, helpFS fs.FS, logger *slog.Logger) (*PagesHandler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	h := &PagesHandler{
		renderer: renderer,
		menu:     menu,
		store:    store,
		help:     make(map[string]template.HTML, len(i18n.SupportedLanguages)),
		logger:   logger,
	}
	if helpFS == nil {
		return h, nil
	}

	for _, lang := range i18n.SupportedLanguages {
		src, err := fs.ReadFile(helpFS, "help/"+lang+".md")
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading help guide %s: %w", lang, err)
		}
		html, err := render.Markdown(src)
		if err != nil {
			return nil, fmt.Errorf("rendering help guide %s: %w", lang, err)
		}
		h.help[lang] = html
	}
	return h, nil
}

// Mount renders the page named by the decision's route.
func (h *PagesHandler) Mount(w http.ResponseWriter, r *http.Request, v gate.View) {
	ctx := r.Context()
	lang := middleware.GetLanguage(ctx)
	role := v.Decision.Actor.EffectiveRole()
	rt := v.Decision.Route

	data := render.TemplateData{
		Title: rt.Title,
		Lang:  lang,
		Path:  r.URL.Path,
		User:  profile(v.Session, v.Decision.Actor),
		Menu:  h.menu.Tree(ctx, role, lang, r.URL.Path, v.Session.ExpandedMenu),
	}

	data.Breadcrumbs = menu.Breadcrumbs(data.Menu)

	name := templatePage
	data.Data = rt.Page
	switch {
	case v.Decision.Dashboard != "":
		name = "pages/" + v.Decision.Dashboard.Template()
		data.Data = quickLinks(data.Menu)
	case rt.Page == pageHelp:
		name = templateHelp
		data.Data = h.helpFor(lang)
	case h.renderer.Has("pages/" + rt.Page):
		name = "pages/" + rt.Page
		data.Data = nil
	}

	if err := h.renderer.Render(w, r, name, data); err != nil {
		logAndInternalError(w, "failed to render page", "template", name, "path", r.URL.Path, "error", err)
	}
}

// NotFound renders the not-found page with a go-back action. The fallback
// target is the dashboard for signed-in actors and the landing page otherwise.
func (h *PagesHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	back := redirectLanding
	if !h.store.Get(r.Context()).Actor().IsAnonymous() {
		back = redirectDashboard
	}

	err := h.renderer.RenderStatus(w, r, http.StatusNotFound, templateNotFound, render.TemplateData{
		Title: "notfound.title",
		Lang:  middleware.GetLanguage(r.Context()),
		Path:  r.URL.Path,
		Data:  back,
	})
	if err != nil {
		logAndInternalError(w, "failed to render not found page", "path", r.URL.Path, "error", err)
	}
}

func (h *PagesHandler) helpFor(lang string) template.HTML {
	if html, ok := h.help[lang]; ok {
		return html
	}
	return h.help[i18n.DefaultLanguage]
}

// profile builds the header profile from the session.
func profile(s session.Session, actor access.Actor) render.User {
	u := render.User{
		Name:           s.Username,
		Email:          s.UserEmail,
		Organization:   s.Organization,
		HealthFacility: s.HealthFacility,
		IsDemo:         actor.Kind == access.Demo,
	}
	if role := actor.EffectiveRole(); role.Valid() {
		u.Role = role.String()
	}
	return u
}

// quickLinks flattens the sidebar into its leaf links, skipping the
// dashboard itself.
func quickLinks(items []menu.Item) []menu.Item {
	var links []menu.Item
	for _, it := range items {
		if it.HasChildren() {
			links = append(links, quickLinks(it.Children)...)
			continue
		}
		if it.Path != "" && it.Path != gate.PathDashboard {
			links = append(links, it)
		}
	}
	return links
}

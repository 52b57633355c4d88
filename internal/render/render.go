// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render parses the embedded HTML templates and renders pages.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/pharmaconnect-go/internal/i18n"
	"github.com/olegiv/pharmaconnect-go/internal/menu"
)

// Template directories. Pages are wrapped in the authenticated frame,
// public templates only in the base layout.
const (
	dirPages    = "pages"
	dirPublic   = "public"
	baseLayout  = "layouts/base.html"
	frameLayout = "layouts/frame.html"
)

// Session keys used for flash messages.
const (
	flashKey     = "flash"
	flashTypeKey = "flash_type"
)

// Flash types.
const (
	FlashInfo    = "info"
	FlashSuccess = "success"
	FlashError   = "error"
)

// Renderer handles template rendering with caching.
type Renderer struct {
	templates      map[string]*template.Template
	sessionManager *scs.SessionManager
	isDev          bool
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS    fs.FS
	SessionManager *scs.SessionManager
	IsDev          bool
}

// New creates a Renderer with all templates parsed.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates:      make(map[string]*template.Template),
		sessionManager: cfg.SessionManager,
		isDev:          cfg.IsDev,
	}
	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := templateFiles(templatesFS, "partials")
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}

	groups := []struct {
		dir     string
		layouts []string
	}{
		{dirPages, []string{baseLayout, frameLayout}},
		{dirPublic, []string{baseLayout}},
	}
	for _, g := range groups {
		files, err := templateFiles(templatesFS, g.dir)
		if err != nil {
			return fmt.Errorf("getting %s templates: %w", g.dir, err)
		}
		for _, file := range files {
			name := g.dir + "/" + strings.TrimSuffix(path.Base(file), ".html")

			set := append(append(append([]string{}, g.layouts...), partials...), file)
			tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, set...)
			if err != nil {
				return fmt.Errorf("parsing template %s: %w", name, err)
			}
			r.templates[name] = tmpl
		}
	}
	return nil
}

// templateFiles returns all .html files in dir. A missing dir yields none.
func templateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"T": i18n.T,
		"formatDate": func(t time.Time) string {
			return t.Format("02/01/2006")
		},
		"hasPrefix": strings.HasPrefix,
	}
}

// User is the profile shown in the frame header.
type User struct {
	Name           string
	Email          string
	Role           string
	Organization   string
	HealthFacility string
	IsDemo         bool
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Title       string
	Lang        string
	Path        string
	User        User
	Menu        []menu.Item
	Breadcrumbs []menu.Breadcrumb

	// Notifications is the unread count shown on the header bell.
	Notifications int
	Data          any
	Flash         string
	FlashType     string
	CurrentYear   int
}

// Has reports whether a template named name was parsed.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// Render renders a template with status 200.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data TemplateData) error {
	return r.RenderStatus(w, req, http.StatusOK, name, data)
}

// RenderStatus renders a template with the given status code. The output is
// buffered so a template error never leaves a half-written response.
func (r *Renderer) RenderStatus(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	data.CurrentYear = time.Now().Year()
	if data.Lang == "" {
		data.Lang = i18n.DefaultLanguage
	}
	if data.Flash == "" {
		data.Flash, data.FlashType = r.popFlash(req.Context())
	}

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// SetFlash stores a one-shot message shown on the next rendered page.
func (r *Renderer) SetFlash(ctx context.Context, message, flashType string) {
	if r.sessionManager == nil {
		return
	}
	r.sessionManager.Put(ctx, flashKey, message)
	r.sessionManager.Put(ctx, flashTypeKey, flashType)
}

func (r *Renderer) popFlash(ctx context.Context) (string, string) {
	if r.sessionManager == nil {
		return "", ""
	}
	msg := r.sessionManager.PopString(ctx, flashKey)
	if msg == "" {
		return "", ""
	}
	kind := r.sessionManager.PopString(ctx, flashTypeKey)
	if kind == "" {
		kind = FlashInfo
	}
	return msg, kind
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package menu

import (
	"slices"
	"strings"

	"github.com/olegiv/pharmaconnect-go/internal/access"
	"github.com/olegiv/pharmaconnect-go/internal/i18n"
)

// Item is a rendered sidebar node.
type Item struct {
	ID       string
	Label    string
	Icon     string
	Path     string
	Active   bool
	Expanded bool
	Children []Item
}

// HasChildren is used by templates to pick the group markup.
func (i Item) HasChildren() bool {
	return len(i.Children) > 0
}

// Tree projects role and renders it for lang.
func (p *Projector) Tree(role access.Role, lang, currentPath string, expanded []string) []Item {
	return Build(p.Project(role), lang, currentPath, expanded)
}

// Build turns projected entries into render items. The entry whose path best
// matches currentPath is marked active along with its ancestors; groups are
// expanded when listed in expanded or when they contain the active entry.
// Expansion never changes which items exist.
func Build(entries []Entry, lang, currentPath string, expanded []string) []Item {
	active := bestMatch(entries, currentPath)
	items, _ := build(entries, lang, active, expanded)
	return items
}

func build(entries []Entry, lang, active string, expanded []string) ([]Item, bool) {
	items := make([]Item, 0, len(entries))
	anyActive := false
	for _, e := range entries {
		children, childActive := build(e.Children, lang, active, expanded)
		it := Item{
			ID:     e.ID,
			Label:  i18n.T(lang, e.LabelKey),
			Icon:   e.Icon,
			Path:   e.Path,
			Active: (e.Path != "" && e.Path == active) || childActive,
		}
		if len(children) > 0 {
			it.Children = children
			it.Expanded = childActive || slices.Contains(expanded, e.ID)
		}
		anyActive = anyActive || it.Active
		items = append(items, it)
	}
	return items, anyActive
}

// bestMatch returns the longest entry path equal to, or a parent of, currentPath.
func bestMatch(entries []Entry, currentPath string) string {
	best := ""
	for _, p := range Paths(entries) {
		if p == currentPath {
			return p
		}
		if strings.HasPrefix(currentPath, p+"/") && len(p) > len(best) {
			best = p
		}
	}
	return best
}

// Toggle flips id in the expanded set and returns the new set.
func Toggle(expanded []string, id string) []string {
	if i := slices.Index(expanded, id); i >= 0 {
		return slices.Delete(slices.Clone(expanded), i, i+1)
	}
	return append(slices.Clone(expanded), id)
}

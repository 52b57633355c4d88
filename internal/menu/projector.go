// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package menu

import (
	"github.com/olegiv/pharmaconnect-go/internal/access"
)

// Projector derives a role's sidebar from static tables.
// It holds no mutable state and is safe for concurrent use.
type Projector struct {
	base       []Entry
	groups     map[Group][]Entry
	order      []Group
	roleGroups map[access.Role][]Group
}

// NewProjector returns a projector over the default tables.
func NewProjector() *Projector {
	return &Projector{
		base:       BaseEntries,
		groups:     GroupEntries,
		order:      GroupOrder,
		roleGroups: RoleGroups,
	}
}

// Project returns the ordered, filtered entries visible to role.
// The result is a fresh copy on every call.
func (p *Projector) Project(role access.Role) []Entry {
	var out []Entry
	for _, e := range p.base {
		if kept, ok := filter(e, role); ok {
			out = append(out, kept)
		}
	}

	selected := make(map[Group]bool)
	for _, g := range p.roleGroups[role] {
		selected[g] = true
	}
	for _, g := range p.order {
		if !selected[g] {
			continue
		}
		for _, e := range p.groups[g] {
			if kept, ok := filter(e, role); ok {
				out = append(out, kept)
			}
		}
	}
	return out
}

// filter drops e (or any descendant) whose feature does not allow role.
// A group whose children are all dropped is dropped too.
func filter(e Entry, role access.Role) (Entry, bool) {
	if !access.Allows(e.Feature, role) {
		return Entry{}, false
	}
	out := e
	out.Children = nil
	if len(e.Children) == 0 {
		return out.clone(), true
	}
	for _, c := range e.Children {
		if kept, ok := filter(c, role); ok {
			out.Children = append(out.Children, kept)
		}
	}
	if len(out.Children) == 0 && e.IsGroup() {
		return Entry{}, false
	}
	return out, true
}

// Paths returns every navigable path in entries, depth first.
func Paths(entries []Entry) []string {
	var paths []string
	var walk func([]Entry)
	walk = func(es []Entry) {
		for _, e := range es {
			if e.Path != "" {
				paths = append(paths, e.Path)
			}
			walk(e.Children)
		}
	}
	walk(entries)
	return paths
}

// Find returns the entry with id anywhere in entries.
func Find(entries []Entry, id string) (Entry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
		if found, ok := Find(e.Children, id); ok {
			return found, true
		}
	}
	return Entry{}, false
}

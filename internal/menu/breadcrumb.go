// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package menu

// Breadcrumb represents a single breadcrumb item.
type Breadcrumb struct {
	Label  string
	URL    string
	Active bool
}

// Breadcrumbs returns the trail of active items from the top level down.
// Groups have no URL; the last crumb is marked Active.
func Breadcrumbs(items []Item) []Breadcrumb {
	var trail []Breadcrumb
	for len(items) > 0 {
		next := -1
		for i, it := range items {
			if it.Active {
				next = i
				break
			}
		}
		if next < 0 {
			break
		}
		it := items[next]
		trail = append(trail, Breadcrumb{Label: it.Label, URL: it.Path})
		items = it.Children
	}
	if len(trail) > 0 {
		trail[len(trail)-1].Active = true
	}
	return trail
}

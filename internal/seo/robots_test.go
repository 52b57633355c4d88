// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRobotsBuilder_DisallowAll(t *testing.T) {
	content := NewRobotsBuilder(RobotsConfig{
		DisallowAll:   true,
		DisallowPaths: []string{"/dashboard"},
	}).Build()

	assert.Equal(t, "User-agent: *\nDisallow: /\n", content)
}

func TestRobotsBuilder_Paths(t *testing.T) {
	content := NewRobotsBuilder(RobotsConfig{
		DisallowPaths: []string{"/stock/current", "/dashboard", "/dashboard"},
		ExtraRules:    "Crawl-delay: 10",
	}).Build()

	assert.Equal(t, "User-agent: *\n"+
		"Disallow: /dashboard\n"+
		"Disallow: /stock/current\n"+
		"Allow: /$\n"+
		"\nCrawl-delay: 10\n", content)
}

func TestDisallowPrefixes(t *testing.T) {
	got := DisallowPrefixes([]string{
		"/projects/{id}",
		"/projects",
		"/static/*",
		"/",
		"",
		"/menu/{id}/toggle",
	})

	assert.Equal(t, []string{"/menu/", "/projects", "/projects/", "/static/"}, got)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds the crawler directives served by the console.
package seo

import (
	"slices"
	"strings"
)

// RobotsConfig holds configuration for robots.txt generation.
type RobotsConfig struct {
	DisallowAll   bool     // Block all crawlers (development and staging)
	DisallowPaths []string // Path prefixes to keep out of indexes
	ExtraRules    string   // Additional custom rules
}

// RobotsBuilder builds robots.txt content.
type RobotsBuilder struct {
	config RobotsConfig
}

// NewRobotsBuilder creates a new robots.txt builder.
func NewRobotsBuilder(config RobotsConfig) *RobotsBuilder {
	return &RobotsBuilder{config: config}
}

// Build generates the robots.txt content. Only the landing page stays
// crawlable when DisallowAll is false.
func (b *RobotsBuilder) Build() string {
	var sb strings.Builder
	sb.WriteString("User-agent: *\n")

	if b.config.DisallowAll {
		sb.WriteString("Disallow: /\n")
	} else {
		for _, path := range DisallowPrefixes(b.config.DisallowPaths) {
			sb.WriteString("Disallow: ")
			sb.WriteString(path)
			sb.WriteString("\n")
		}
		sb.WriteString("Allow: /$\n")
	}

	if b.config.ExtraRules != "" {
		sb.WriteString("\n")
		sb.WriteString(b.config.ExtraRules)
		if !strings.HasSuffix(b.config.ExtraRules, "\n") {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// DisallowPrefixes reduces route patterns to their static prefixes, sorted
// and without duplicates. "/projects/{id}" becomes "/projects/".
func DisallowPrefixes(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if i := strings.IndexByte(p, '{'); i >= 0 {
			p = p[:i]
		}
		p = strings.TrimSuffix(p, "*")
		if p == "" || p == "/" {
			continue
		}
		out = append(out, p)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package menu

import (
	"context"
	"time"

	"github.com/olegiv/pharmaconnect-go/internal/access"
	"github.com/olegiv/pharmaconnect-go/internal/cache"
)

// cacheKeyPrefix is bumped whenever the static tables change shape.
const cacheKeyPrefix = "menu:v1:"

// Cached memoizes projections per role in a shared cache. It returns the same
// entries as the wrapped projector whether or not the cache is reachable.
type Cached struct {
	p     *Projector
	typed *cache.Typed[[]Entry]
}

// NewCached wraps p with c.
func NewCached(p *Projector, c cache.Cache, ttl time.Duration) *Cached {
	return &Cached{p: p, typed: cache.NewTyped[[]Entry](c, ttl)}
}

// Project returns the cached projection for role, computing it on a miss.
func (c *Cached) Project(ctx context.Context, role access.Role) []Entry {
	entries, _ := c.typed.GetOrSet(ctx, cacheKeyPrefix+role.Code(), func() ([]Entry, error) {
		return c.p.Project(role), nil
	})
	return entries
}

// Tree renders the cached projection for role.
func (c *Cached) Tree(ctx context.Context, role access.Role, lang, currentPath string, expanded []string) []Item {
	return Build(c.Project(ctx, role), lang, currentPath, expanded)
}

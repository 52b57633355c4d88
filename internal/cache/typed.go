// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Typed stores values of type T as JSON in a Cache.
type Typed[T any] struct {
	cache Cache
	ttl   time.Duration
}

// NewTyped wraps c. A zero ttl uses the backend default.
func NewTyped[T any](c Cache, ttl time.Duration) *Typed[T] {
	return &Typed[T]{cache: c, ttl: ttl}
}

// Get decodes the value at key. Undecodable entries count as misses.
func (t *Typed[T]) Get(ctx context.Context, key string) (T, bool) {
	var v T
	data, err := t.cache.Get(ctx, key)
	if err != nil {
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, false
	}
	return v, true
}

// Set encodes and stores v.
func (t *Typed[T]) Set(ctx context.Context, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return t.cache.Set(ctx, key, data, t.ttl)
}

// GetOrSet returns the cached value or computes, stores, and returns it.
// Store failures are ignored since the computed value is still valid.
func (t *Typed[T]) GetOrSet(ctx context.Context, key string, fn func() (T, error)) (T, error) {
	if v, ok := t.Get(ctx, key); ok {
		return v, nil
	}
	v, err := fn()
	if err != nil {
		return v, err
	}
	_ = t.Set(ctx, key, v)
	return v, nil
}

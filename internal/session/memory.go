// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"sync"
)

// MemoryStore is a single-actor in-memory Store, ignoring ctx.
// It is used by tests and by tooling that evaluates a fixed session.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates a store pre-populated with s.
func NewMemoryStore(s Session) *MemoryStore {
	m := &MemoryStore{values: make(map[string]string)}
	m.Set(context.Background(), Patch{
		IsAuthenticated: Ptr(s.IsAuthenticated),
		IsDemoMode:      Ptr(s.IsDemoMode),
		Role:            Ptr(s.Role),
		Username:        Ptr(s.Username),
		Organization:    Ptr(s.Organization),
		HealthFacility:  Ptr(s.HealthFacility),
		UserID:          Ptr(s.UserID),
		UserEmail:       Ptr(s.UserEmail),
		APIToken:        Ptr(s.APIToken),
		Lang:            Ptr(s.Lang),
		ExpandedMenu:    Ptr(s.ExpandedMenu),
	})
	return m
}

// Get returns the stored session.
func (m *MemoryStore) Get(_ context.Context) Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return decode(func(key string) string { return m.values[key] })
}

// Set writes the non-nil fields of p.
func (m *MemoryStore) Set(_ context.Context, p Patch) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.apply(func(key, value string) { m.values[key] = value })
}

// Clear drops all values.
func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.values)
	return nil
}

// Raw returns the stored string for key, for asserting the storage format.
func (m *MemoryStore) Raw(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key]
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"

	"github.com/alexedwards/scs/v2"
)

// ScsStore persists session state in an scs session.
// The context passed to its methods must carry a loaded scs session,
// i.e. the request must have passed through SessionManager.LoadAndSave.
type ScsStore struct {
	sm *scs.SessionManager
}

// NewScsStore wraps an scs session manager.
func NewScsStore(sm *scs.SessionManager) *ScsStore {
	return &ScsStore{sm: sm}
}

// Manager returns the underlying session manager.
func (s *ScsStore) Manager() *scs.SessionManager { return s.sm }

// Get reads the current session. Missing keys read as zero values.
func (s *ScsStore) Get(ctx context.Context) Session {
	return decode(func(key string) string {
		return s.sm.GetString(ctx, key)
	})
}

// Set writes the non-nil fields of p.
func (s *ScsStore) Set(ctx context.Context, p Patch) {
	p.apply(func(key, value string) {
		s.sm.Put(ctx, key, value)
	})
}

// Clear removes every key and rotates the session token.
func (s *ScsStore) Clear(ctx context.Context) error {
	if err := s.sm.Clear(ctx); err != nil {
		return err
	}
	return s.sm.RenewToken(ctx)
}

// RenewToken rotates the session token, used after a privilege change.
func (s *ScsStore) RenewToken(ctx context.Context) error {
	return s.sm.RenewToken(ctx)
}

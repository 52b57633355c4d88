// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the PharmaConnect admin.
package testutil

import (
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/olegiv/pharmaconnect-go/internal/access"
	"github.com/olegiv/pharmaconnect-go/internal/session"
	"github.com/olegiv/pharmaconnect-go/internal/store"
)

// TestLogger creates a silent test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestLoggerSilent creates a completely silent test logger (error level only).
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// TestDB creates a temporary database with migrations applied.
// The database is closed when the test finishes.
func TestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "pharmaconnect-test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

// SessionFor returns an in-memory session store holding a signed-in user
// with the given role. RoleNone yields an authenticated user without a role.
func SessionFor(role access.Role) *session.MemoryStore {
	s := session.Session{
		IsAuthenticated: true,
		UserID:          "1",
		Username:        "test",
		UserEmail:       "test@example.org",
		APIToken:        "token",
	}
	if role.Valid() {
		s.Role = role.String()
	}
	return session.NewMemoryStore(s)
}

// DemoSession returns an in-memory session store in demo mode.
func DemoSession() *session.MemoryStore {
	return session.NewMemoryStore(session.Session{
		IsDemoMode: true,
		UserID:     "demo-test",
		Username:   "Démo",
	})
}

// AnonymousSession returns an empty in-memory session store.
func AnonymousSession() *session.MemoryStore {
	return session.NewMemoryStore(session.Session{})
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging builds the slog loggers and the handler that mirrors
// WARN and ERROR records into the events table.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/olegiv/pharmaconnect-go/internal/store"
)

// Event levels.
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories.
const (
	EventCategoryAuth    = "auth"
	EventCategorySession = "session"
	EventCategoryAPI     = "api"
	EventCategoryConfig  = "config"
	EventCategoryCache   = "cache"
	EventCategorySystem  = "system"
)

// Attribute keys lifted into dedicated event columns.
const (
	attrCategory = "category"
	attrUserID   = "user_id"
	attrIP       = "ip"
)

// EventLogHandler is a slog.Handler that wraps another handler and also writes
// records at or above its level to the events table.
type EventLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level
	attrs   []slog.Attr
}

// NewEventLogHandler forwards WARN and above to the event log.
func NewEventLogHandler(inner slog.Handler, db *sql.DB) *EventLogHandler {
	return NewEventLogHandlerWithLevel(inner, db, slog.LevelWarn)
}

// NewEventLogHandlerWithLevel creates a handler with a custom minimum level.
func NewEventLogHandlerWithLevel(inner slog.Handler, db *sql.DB, level slog.Level) *EventLogHandler {
	return &EventLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   level,
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level {
		h.writeToEventLog(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EventLogHandler{
		inner:   h.inner.WithAttrs(attrs),
		queries: h.queries,
		level:   h.level,
		attrs:   append(append([]slog.Attr(nil), h.attrs...), attrs...),
	}
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{
		inner:   h.inner.WithGroup(name),
		queries: h.queries,
		level:   h.level,
		attrs:   h.attrs,
	}
}

// writeToEventLog persists r. It uses a background context so the event is
// stored even when the request context is already cancelled.
func (h *EventLogHandler) writeToEventLog(r slog.Record) {
	attrs := append([]slog.Attr(nil), h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})

	var category, userID, ip string
	metadata := make(map[string]any, len(attrs))
	for _, a := range attrs {
		switch a.Key {
		case attrCategory:
			category = a.Value.String()
		case attrUserID:
			userID = a.Value.String()
			metadata[a.Key] = userID
		case attrIP:
			ip = a.Value.String()
		default:
			metadata[a.Key] = a.Value.Resolve().Any()
		}
	}
	if category == "" {
		category = inferCategory(r.Message)
	}

	meta, err := json.Marshal(metadata)
	if err != nil {
		meta = []byte("{}")
	}

	_, _ = h.queries.CreateEvent(context.Background(), store.CreateEventParams{
		Level:     levelToEvent(r.Level),
		Category:  category,
		Message:   r.Message,
		UserID:    userID,
		IPAddress: ip,
		Metadata:  string(meta),
		CreatedAt: r.Time,
	})
}

func levelToEvent(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return EventLevelError
	case level >= slog.LevelWarn:
		return EventLevelWarning
	default:
		return EventLevelInfo
	}
}

// inferCategory guesses a category from the message when none was given.
func inferCategory(msg string) string {
	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "auth") || strings.Contains(msg, "login") ||
		strings.Contains(msg, "logout") || strings.Contains(msg, "navigation"):
		return EventCategoryAuth
	case strings.Contains(msg, "session"):
		return EventCategorySession
	case strings.Contains(msg, "api"):
		return EventCategoryAPI
	case strings.Contains(msg, "config") || strings.Contains(msg, "setting"):
		return EventCategoryConfig
	case strings.Contains(msg, "cache") || strings.Contains(msg, "redis"):
		return EventCategoryCache
	default:
		return EventCategorySystem
	}
}

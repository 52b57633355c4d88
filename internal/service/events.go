// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides the audit trail written by the HTTP handlers.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mileusna/useragent"

	"github.com/olegiv/pharmaconnect-go/internal/logging"
	"github.com/olegiv/pharmaconnect-go/internal/store"
)

// EventService records audit events regardless of the console log level.
type EventService struct {
	queries *store.Queries
	now     func() time.Time
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{
		queries: store.New(db),
		now:     time.Now,
	}
}

// LogEvent creates a new event log entry.
func (s *EventService) LogEvent(ctx context.Context, level, category, message, userID, ipAddress string, metadata map[string]any) error {
	metadataJSON := "{}"
	if len(metadata) > 0 {
		if b, err := json.Marshal(metadata); err == nil {
			metadataJSON = string(b)
		}
	}

	_, err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     level,
		Category:  category,
		Message:   message,
		UserID:    userID,
		IPAddress: ipAddress,
		Metadata:  metadataJSON,
		CreatedAt: s.now(),
	})
	if err != nil {
		slog.Error("failed to log event", "message", message, "error", err)
		return fmt.Errorf("creating event: %w", err)
	}
	return nil
}

// LogAuthEvent logs an authentication event.
func (s *EventService) LogAuthEvent(ctx context.Context, level, message, userID, ipAddress string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, logging.EventCategoryAuth, message, userID, ipAddress, metadata)
}

// LogSessionEvent logs a session event such as a menu or language change.
func (s *EventService) LogSessionEvent(ctx context.Context, level, message, userID, ipAddress string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, logging.EventCategorySession, message, userID, ipAddress, metadata)
}

// Recent returns the latest events, optionally filtered by category.
func (s *EventService) Recent(ctx context.Context, category string, limit int) ([]store.Event, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.queries.ListEvents(ctx, store.ListEventsParams{Category: category, Limit: int64(limit)})
}

// ClientMeta describes the client behind a user agent string for event
// metadata. Empty fields are omitted.
func ClientMeta(userAgent string) map[string]any {
	meta := make(map[string]any, 4)
	if userAgent == "" {
		return meta
	}

	ua := useragent.Parse(userAgent)
	if ua.Name != "" {
		meta["browser"] = ua.Name
	}
	if ua.Version != "" {
		meta["browser_version"] = ua.Version
	}
	if ua.OS != "" {
		meta["os"] = ua.OS
	}
	switch {
	case ua.Bot:
		meta["device"] = "bot"
	case ua.Mobile:
		meta["device"] = "mobile"
	case ua.Tablet:
		meta["device"] = "tablet"
	case ua.Desktop:
		meta["device"] = "desktop"
	}
	return meta
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic maintenance jobs of the admin server.
package scheduler

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/pharmaconnect-go/internal/store"
)

// RetentionSchedule runs the event log cleanup daily at 03:00.
const RetentionSchedule = "0 3 * * *"

// JobInfo is the public view of a registered job.
type JobInfo struct {
	Name     string    `json:"name"`
	Schedule string    `json:"schedule"`
	LastRun  time.Time `json:"last_run"`
	NextRun  time.Time `json:"next_run"`
}

type job struct {
	name     string
	schedule string
	entryID  cron.EntryID
}

// Scheduler wraps a cron instance with the built-in jobs.
type Scheduler struct {
	db            *sql.DB
	cron          *cron.Cron
	logger        *slog.Logger
	retentionDays int
	now           func() time.Time

	mu   sync.RWMutex
	jobs map[string]*job
}

// New creates a new scheduler instance. A retentionDays of zero disables
// the event log cleanup.
func New(db *sql.DB, logger *slog.Logger, retentionDays int) *Scheduler {
	return &Scheduler{
		db:            db,
		cron:          cron.New(),
		logger:        logger,
		retentionDays: retentionDays,
		now:           time.Now,
		jobs:          make(map[string]*job),
	}
}

// Register adds fn to the cron instance under name.
func (s *Scheduler) Register(name, schedule string, fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %q already registered", name)
	}
	id, err := s.cron.AddFunc(schedule, fn)
	if err != nil {
		return fmt.Errorf("adding job %q: %w", name, err)
	}
	s.jobs[name] = &job{name: name, schedule: schedule, entryID: id}
	return nil
}

// Start registers the built-in jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if s.db != nil && s.retentionDays > 0 {
		err := s.Register("event_retention", RetentionSchedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if _, err := s.PruneEvents(ctx); err != nil {
				s.logger.Error("failed to prune event log", "category", "system", "error", err)
			}
		})
		if err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// PruneEvents deletes events older than the retention window.
func (s *Scheduler) PruneEvents(ctx context.Context) (int64, error) {
	if s.retentionDays <= 0 {
		return 0, nil
	}
	cutoff := s.now().AddDate(0, 0, -s.retentionDays)
	n, err := store.New(s.db).DeleteEventsBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("deleting events before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	if n > 0 {
		s.logger.Info("pruned event log", "deleted", n, "cutoff", cutoff)
	}
	return n, nil
}

// Jobs lists registered jobs sorted by name.
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]JobInfo, 0, len(s.jobs))
	for _, j := range s.jobs {
		entry := s.cron.Entry(j.entryID)
		infos = append(infos, JobInfo{
			Name:     j.name,
			Schedule: j.schedule,
			LastRun:  entry.Prev,
			NextRun:  entry.Next,
		})
	}
	sort.Slice(infos, func(i, k int) bool { return infos[i].Name < infos[k].Name })
	return infos
}

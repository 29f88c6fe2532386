package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler fires enabled tasks on their default triggers.
type Scheduler struct {
	cron    *cron.Cron
	manager *Manager
	entries map[cron.EntryID]string
	log     *slog.Logger
}

// NewScheduler registers the default triggers of every enabled task in manager.
// Times are evaluated in loc, or the local zone when loc is nil.
func NewScheduler(manager *Manager, loc *time.Location, log *slog.Logger) (*Scheduler, error) {
	if log == nil {
		log = slog.Default()
	}
	if loc == nil {
		loc = time.Local
	}
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		manager: manager,
		entries: make(map[cron.EntryID]string),
		log:     log.With("component", "scheduler"),
	}

	for _, t := range manager.Tasks() {
		if !t.IsEnabled() {
			s.log.Debug("task disabled, not scheduling", "task", t.Key())
			continue
		}
		for _, tr := range t.DefaultTriggers() {
			key := t.Key()
			id, err := s.cron.AddFunc(tr.CronSpec(), func() { s.fire(key) })
			if err != nil {
				return nil, fmt.Errorf("schedule %s (%s): %w", key, tr.CronSpec(), err)
			}
			s.entries[id] = key
			s.log.Info("task scheduled", "task", key, "trigger", tr.String())
		}
	}
	return s, nil
}

// Run starts the cron loop and blocks until ctx is done.
// Runs already in progress are left to the manager.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	s.log.Info("scheduler started", "entries", len(s.entries))

	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
	return nil
}

func (s *Scheduler) fire(key string) {
	_, err := s.manager.Run(context.Background(), key)
	switch {
	case err == nil:
	case errors.Is(err, ErrAlreadyRunning):
		s.log.Info("skipping trigger, task still running", "task", key)
	default:
		s.log.Warn("scheduled run failed to start", "task", key, "error", err)
	}
}

// Next returns the earliest upcoming fire time per task key.
// Times are zero until Run has started the cron loop.
func (s *Scheduler) Next() map[string]time.Time {
	out := make(map[string]time.Time)
	for _, e := range s.cron.Entries() {
		key, ok := s.entries[e.ID]
		if !ok {
			continue
		}
		if cur, seen := out[key]; !seen || e.Next.Before(cur) {
			out[key] = e.Next
		}
	}
	return out
}

package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pinecresthq/be-portal-retention/internal/logger"
	"github.com/pinecresthq/be-portal-retention/internal/service"
)

// Config holds the cron expressions for the scheduled jobs. An empty
// expression disables that job.
//
// Common expressions:
//   - "0 3 * * *"  - daily at 3 AM
//   - "30 4 * * 0" - weekly on Sunday at 4:30 AM
type Config struct {
	SweepSchedule string
	PurgeSchedule string
}

// Scheduler runs the retention sweep and purge on cron schedules.
type Scheduler struct {
	retention *service.RetentionService
	config    Config
	cron      *cron.Cron
	mu        sync.Mutex
	log       *logger.Logger
	running   bool
}

// New creates a new scheduler.
func New(retention *service.RetentionService, cfg Config, log *logger.Logger) *Scheduler {
	return &Scheduler{
		retention: retention,
		config:    cfg,
		cron:      cron.New(),
		log:       log,
	}
}

// Start registers the configured jobs and begins the cron loop. It
// validates every expression before starting and stops automatically
// when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config.SweepSchedule == "" && s.config.PurgeSchedule == "" {
		s.log.Info().Msg("No retention schedules configured, scheduler idle")
		return nil
	}

	if s.config.SweepSchedule != "" {
		if _, err := cron.ParseStandard(s.config.SweepSchedule); err != nil {
			return fmt.Errorf("invalid sweep schedule %q: %w", s.config.SweepSchedule, err)
		}
		if _, err := s.cron.AddFunc(s.config.SweepSchedule, func() {
			s.log.Info().Msg("Starting scheduled retention sweep")
			s.retention.RunSweep(ctx)
		}); err != nil {
			return fmt.Errorf("failed to schedule sweep: %w", err)
		}
	}

	if s.config.PurgeSchedule != "" {
		if _, err := cron.ParseStandard(s.config.PurgeSchedule); err != nil {
			return fmt.Errorf("invalid purge schedule %q: %w", s.config.PurgeSchedule, err)
		}
		if _, err := s.cron.AddFunc(s.config.PurgeSchedule, func() {
			s.log.Info().Msg("Starting scheduled retention purge")
			s.retention.RunPurge(ctx)
		}); err != nil {
			return fmt.Errorf("failed to schedule purge: %w", err)
		}
	}

	s.cron.Start()
	s.running = true

	s.log.Info().
		Str("sweep_schedule", s.config.SweepSchedule).
		Str("purge_schedule", s.config.PurgeSchedule).
		Msg("Retention scheduler started")

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop halts the cron loop and waits for any running job to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		s.log.Info().Msg("Retention scheduler stopped")
	}
}

// IsRunning reports whether the cron loop is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the earliest upcoming scheduled run, or nil when no
// job is registered.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	for _, e := range entries[1:] {
		if e.Next.Before(next) {
			next = e.Next
		}
	}
	return &next
}

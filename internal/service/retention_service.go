package service

import (
	"context"
	"time"

	"github.com/pinecresthq/be-portal-retention/internal/client"
	"github.com/pinecresthq/be-portal-retention/internal/logger"
	"github.com/pinecresthq/be-portal-retention/internal/metrics"
	"github.com/pinecresthq/be-portal-retention/internal/retention"
)

// RetentionService runs the retention engine and reports outcomes to
// logs, metrics, and the notifications bus.
type RetentionService struct {
	sweeper  *retention.Sweeper
	purger   *retention.Purger
	metrics  *metrics.Metrics
	notifier *client.NotificationPublisher
	log      *logger.Logger
}

// NewRetentionService creates a new retention service.
func NewRetentionService(
	sweeper *retention.Sweeper,
	purger *retention.Purger,
	m *metrics.Metrics,
	notifier *client.NotificationPublisher,
	log *logger.Logger,
) *RetentionService {
	return &RetentionService{
		sweeper:  sweeper,
		purger:   purger,
		metrics:  m,
		notifier: notifier,
		log:      log,
	}
}

// RunSweep executes one retention sweep across every policy. Per-policy
// failures are already isolated inside the sweeper, so this never
// returns an error; the result carries the failure count.
func (s *RetentionService) RunSweep(ctx context.Context) retention.SweepResult {
	start := time.Now()
	res := s.sweeper.Run(ctx)

	s.metrics.ObserveSweep(res)

	s.log.Info().
		Int64("total_deleted", res.TotalDeleted).
		Int("error_count", res.ErrorCount).
		Dur("duration", time.Since(start)).
		Msg("Retention sweep completed")

	if s.notifier != nil && (res.TotalDeleted > 0 || res.ErrorCount > 0) {
		s.notifier.PublishLifecycleEvent("retention_sweep_completed", &client.LifecycleEvent{
			Payload: map[string]interface{}{
				"total_deleted": res.TotalDeleted,
				"error_count":   res.ErrorCount,
			},
		})
	}

	return res
}

// RunPurge executes one purge pass. Irreversible; callers are the purge
// schedule and the daemon's explicit one-shot flag only. Per-store
// failures are isolated inside the purger, so this never returns an
// error.
func (s *RetentionService) RunPurge(ctx context.Context) retention.PurgeResult {
	start := time.Now()
	res := s.purger.Run(ctx)

	s.metrics.ObservePurge(res)

	event := s.log.Info()
	for store, n := range res.Purged {
		event = event.Int64("purged_"+store, n)
	}
	event.
		Int64("total_purged", res.Total()).
		Int("error_count", res.ErrorCount).
		Dur("duration", time.Since(start)).
		Msg("Retention purge completed")

	if s.notifier != nil && (res.Total() > 0 || res.ErrorCount > 0) {
		payload := map[string]interface{}{
			"total_purged": res.Total(),
			"error_count":  res.ErrorCount,
		}
		for store, n := range res.Purged {
			payload[store] = n
		}
		s.notifier.PublishLifecycleEvent("retention_purge_completed", &client.LifecycleEvent{
			Payload: payload,
		})
	}

	return res
}

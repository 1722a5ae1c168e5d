package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/pinecresthq/be-portal-retention/internal/logger"
	"github.com/pinecresthq/be-portal-retention/internal/metrics"
	"github.com/pinecresthq/be-portal-retention/internal/retention"
)

// stubStore implements retention.Store and retention.PurgeStore with
// canned results.
type stubStore struct {
	category    string
	softDeleted int64
	purged      int64
	err         error
}

func (s *stubStore) Category() string { return s.category }

func (s *stubStore) SoftDeleteExpired(ctx context.Context, p retention.Policy, cutoff, now time.Time) (int64, error) {
	return s.softDeleted, s.err
}

func (s *stubStore) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.purged, s.err
}

func nopLogger() *logger.Logger {
	return &logger.Logger{Logger: zerolog.Nop()}
}

func TestRetentionService_RunSweepAggregatesCounts(t *testing.T) {
	requests := &stubStore{category: retention.CategoryReviewRequest, softDeleted: 2}
	logins := &stubStore{category: retention.CategoryLoginHistory, softDeleted: 3}

	policies := []retention.Policy{
		{Category: retention.CategoryReviewRequest, Status: retention.StatusPending, RetentionDays: 730, Reference: retention.ReferenceCreatedAt},
		{Category: retention.CategoryLoginHistory, RetentionDays: 365, Reference: retention.ReferenceCreatedAt},
	}

	sweeper := retention.NewSweeper(policies, []retention.Store{requests, logins}, zerolog.Nop())
	purger := retention.NewPurger(nil, 30, zerolog.Nop())
	svc := NewRetentionService(sweeper, purger, metrics.NewWith(prometheus.NewRegistry()), nil, nopLogger())

	res := svc.RunSweep(context.Background())

	if res.TotalDeleted != 5 {
		t.Errorf("TotalDeleted = %d, want 5", res.TotalDeleted)
	}
	if res.ErrorCount != 0 {
		t.Errorf("ErrorCount = %d, want 0", res.ErrorCount)
	}
}

func TestRetentionService_RunSweepSurvivesStoreFailure(t *testing.T) {
	failing := &stubStore{category: retention.CategoryReviewRequest, err: context.DeadlineExceeded}
	logins := &stubStore{category: retention.CategoryLoginHistory, softDeleted: 1}

	policies := []retention.Policy{
		{Category: retention.CategoryReviewRequest, Status: retention.StatusPending, RetentionDays: 730, Reference: retention.ReferenceCreatedAt},
		{Category: retention.CategoryLoginHistory, RetentionDays: 365, Reference: retention.ReferenceCreatedAt},
	}

	sweeper := retention.NewSweeper(policies, []retention.Store{failing, logins}, zerolog.Nop())
	purger := retention.NewPurger(nil, 30, zerolog.Nop())
	svc := NewRetentionService(sweeper, purger, metrics.NewWith(prometheus.NewRegistry()), nil, nopLogger())

	res := svc.RunSweep(context.Background())

	if res.ErrorCount != 1 {
		t.Errorf("ErrorCount = %d, want 1", res.ErrorCount)
	}
	if res.TotalDeleted != 1 {
		t.Errorf("TotalDeleted = %d, want 1", res.TotalDeleted)
	}
}

func TestRetentionService_RunPurgeReportsPerStoreCounts(t *testing.T) {
	requests := &stubStore{category: retention.CategoryReviewRequest, purged: 4}
	logins := &stubStore{category: retention.CategoryLoginHistory, purged: 9}

	sweeper := retention.NewSweeper(nil, nil, zerolog.Nop())
	purger := retention.NewPurger([]retention.PurgeStore{requests, logins}, 30, zerolog.Nop())
	svc := NewRetentionService(sweeper, purger, metrics.NewWith(prometheus.NewRegistry()), nil, nopLogger())

	res := svc.RunPurge(context.Background())

	if got := res.Purged[retention.CategoryReviewRequest]; got != 4 {
		t.Errorf("review request purge count = %d, want 4", got)
	}
	if got := res.Purged[retention.CategoryLoginHistory]; got != 9 {
		t.Errorf("login history purge count = %d, want 9", got)
	}
	if res.Total() != 13 {
		t.Errorf("Total() = %d, want 13", res.Total())
	}
	if res.ErrorCount != 0 {
		t.Errorf("ErrorCount = %d, want 0", res.ErrorCount)
	}
}

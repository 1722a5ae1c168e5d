package retention

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Store executes conditional soft-delete batches for one record
// category.
type Store interface {
	// Category names the record category this store owns.
	Category() string
	// SoftDeleteExpired marks as soft-deleted every active record
	// matching the policy whose reference timestamp is strictly older
	// than cutoff, setting deleted_at to now. Records already
	// soft-deleted are never reselected. Returns the number of records
	// transitioned.
	SoftDeleteExpired(ctx context.Context, p Policy, cutoff, now time.Time) (int64, error)
}

// SweepResult summarizes one retention sweep.
type SweepResult struct {
	TotalDeleted int64
	ErrorCount   int
}

// Sweeper applies every policy in the table against its category's
// store, one policy at a time.
type Sweeper struct {
	policies []Policy
	stores   map[string]Store
	now      func() time.Time
	log      zerolog.Logger
}

// NewSweeper builds a sweeper over the given policy table and stores.
func NewSweeper(policies []Policy, stores []Store, log zerolog.Logger) *Sweeper {
	byCategory := make(map[string]Store, len(stores))
	for _, st := range stores {
		byCategory[st.Category()] = st
	}
	return &Sweeper{
		policies: policies,
		stores:   byCategory,
		now:      time.Now,
		log:      log,
	}
}

// Run executes one sweep. A failure while executing one policy is
// logged and counted but never aborts the remaining policies, and no
// error escapes to the caller; scheduled runs stay non-fatal. All
// policies in a run share a single observed sweep instant.
func (s *Sweeper) Run(ctx context.Context) SweepResult {
	var res SweepResult
	now := s.now().UTC()

	for _, p := range s.policies {
		store, ok := s.stores[p.Category]
		if !ok {
			s.log.Error().
				Str("category", p.Category).
				Str("status", p.Status).
				Msg("retention sweep: no store registered for category")
			res.ErrorCount++
			continue
		}

		cutoff := Cutoff(now, p.RetentionDays)
		deleted, err := store.SoftDeleteExpired(ctx, p, cutoff, now)
		if err != nil {
			s.log.Error().Err(err).
				Str("category", p.Category).
				Str("status", p.Status).
				Int("retention_days", p.RetentionDays).
				Msg("retention sweep: policy failed")
			res.ErrorCount++
			continue
		}

		res.TotalDeleted += deleted
		if deleted > 0 {
			s.log.Info().
				Str("category", p.Category).
				Str("status", p.Status).
				Int64("deleted", deleted).
				Time("cutoff", cutoff).
				Msg("retention sweep: records soft-deleted")
		}
	}

	return res
}

package retention

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultGraceDays is the minimum time a soft-deleted record stays
// recoverable before it becomes eligible for purge.
const DefaultGraceDays = 30

// PurgeStore permanently removes soft-deleted records for one
// physically distinct record store.
type PurgeStore interface {
	// Category names the record category this store owns.
	Category() string
	// PurgeExpired removes every record whose deleted_at is set and
	// strictly older than cutoff. Returns the number of records removed.
	PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// PurgeResult summarizes one purge run, with per-store counts kept
// separate.
type PurgeResult struct {
	Purged     map[string]int64
	ErrorCount int
}

// Total returns the combined count across all stores.
func (r PurgeResult) Total() int64 {
	var total int64
	for _, n := range r.Purged {
		total += n
	}
	return total
}

// Purger hard-deletes records whose soft-deletion has aged past the
// grace period. Irreversible; reached only from the scheduled purge job
// and the daemon's explicit one-shot flag.
type Purger struct {
	stores    []PurgeStore
	graceDays int
	now       func() time.Time
	log       zerolog.Logger
}

// NewPurger builds a purger over the given stores. A non-positive grace
// period falls back to DefaultGraceDays.
func NewPurger(stores []PurgeStore, graceDays int, log zerolog.Logger) *Purger {
	if graceDays <= 0 {
		graceDays = DefaultGraceDays
	}
	return &Purger{
		stores:    stores,
		graceDays: graceDays,
		now:       time.Now,
		log:       log,
	}
}

// Run purges each store in turn. The stores touch disjoint tables, so
// each is wrapped individually: one store's failure is logged and
// counted without preventing the others from attempting their purge.
func (p *Purger) Run(ctx context.Context) PurgeResult {
	res := PurgeResult{Purged: make(map[string]int64, len(p.stores))}
	cutoff := Cutoff(p.now().UTC(), p.graceDays)

	for _, store := range p.stores {
		purged, err := store.PurgeExpired(ctx, cutoff)
		if err != nil {
			p.log.Error().Err(err).
				Str("store", store.Category()).
				Time("cutoff", cutoff).
				Msg("retention purge: store failed")
			res.ErrorCount++
			continue
		}

		res.Purged[store.Category()] = purged
		if purged > 0 {
			p.log.Info().
				Str("store", store.Category()).
				Int64("purged", purged).
				Time("cutoff", cutoff).
				Msg("retention purge: records removed")
		}
	}

	return res
}

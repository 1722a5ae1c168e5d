// Package retention owns the staged-deletion lifecycle of portal
// records: active → soft-deleted → purged.
//
// A record enters soft deletion when a retention sweep finds its
// reference timestamp older than the policy cutoff, or when a member
// withdraws it explicitly. It is purged (physically removed) only
// after its deleted_at timestamp has aged past the grace period.
// Transitions are one-directional; the engine never restores a record
// and never mutates business columns.
//
// Every batch predicate excludes records that already made the
// transition, so sweep and purge runs are idempotent and safe to
// interleave. Overlapping runs may report the same transition in both
// summaries; the totals are best-effort counters, not an accounting
// ledger.
package retention

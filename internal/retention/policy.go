package retention

import "time"

// Record categories sharing the portal's soft-delete mechanism.
const (
	CategoryReviewRequest = "review_request"
	CategoryLoginHistory  = "login_history"
)

// Review request statuses.
const (
	StatusPending   = "pending"
	StatusInReview  = "in_review"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// ReferenceField declares which timestamp a policy measures record age
// from. The fallback for missing decision timestamps lives here, on the
// policy, so call sites never branch on status strings.
type ReferenceField string

const (
	// ReferenceCreatedAt measures age from record creation.
	ReferenceCreatedAt ReferenceField = "created_at"
	// ReferenceDecidedAt measures age from the decision timestamp,
	// falling back to creation time for records never decided.
	ReferenceDecidedAt ReferenceField = "decided_at"
)

// Policy maps one record category, optionally narrowed to one status,
// to a retention duration and an age reference field.
type Policy struct {
	Category      string
	Status        string // empty = applies to the whole category
	RetentionDays int
	Reference     ReferenceField
}

// DefaultPolicies returns the policy table. Every reachable review
// request status and every retained category appears exactly once.
// Decided requests keep the seven-year association book; undecided and
// cancelled requests age out sooner, and login history is operational
// data kept one year.
func DefaultPolicies() []Policy {
	return []Policy{
		{Category: CategoryReviewRequest, Status: StatusApproved, RetentionDays: 2555, Reference: ReferenceDecidedAt},
		{Category: CategoryReviewRequest, Status: StatusRejected, RetentionDays: 2555, Reference: ReferenceDecidedAt},
		{Category: CategoryReviewRequest, Status: StatusCancelled, RetentionDays: 1095, Reference: ReferenceCreatedAt},
		{Category: CategoryReviewRequest, Status: StatusPending, RetentionDays: 730, Reference: ReferenceCreatedAt},
		{Category: CategoryReviewRequest, Status: StatusInReview, RetentionDays: 730, Reference: ReferenceCreatedAt},
		{Category: CategoryLoginHistory, RetentionDays: 365, Reference: ReferenceCreatedAt},
	}
}

// Cutoff returns the instant strictly before which records of the given
// retention duration are eligible for the next lifecycle transition.
// Calendar-aware: 365 days before 2025-03-01 is 2024-03-01, not an
// approximate second count.
func Cutoff(now time.Time, retentionDays int) time.Time {
	return now.UTC().AddDate(0, 0, -retentionDays)
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pinecresthq/be-portal-retention/internal/database"
	"github.com/pinecresthq/be-portal-retention/internal/errors"
	"github.com/pinecresthq/be-portal-retention/internal/retention"
)

// ReviewRequest is an architectural review request submitted by a
// member. The lifecycle engine owns only deleted_at and final removal;
// all business columns are written by the portal services.
type ReviewRequest struct {
	ID            string
	MemberID      string
	PropertyID    string
	Title         string
	Description   *string
	Status        string // pending | in_review | approved | rejected | cancelled
	DecidedBy     *string
	DecidedAt     *time.Time
	DecisionNotes *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// ReviewRequestRepository handles review request lifecycle operations.
type ReviewRequestRepository struct {
	db *database.DB
}

// NewReviewRequestRepository creates a new review request repository.
func NewReviewRequestRepository(db *database.DB) *ReviewRequestRepository {
	return &ReviewRequestRepository{db: db}
}

// Category names the record category this repository owns.
func (r *ReviewRequestRepository) Category() string {
	return retention.CategoryReviewRequest
}

// GetByID retrieves an active (not soft-deleted) review request.
func (r *ReviewRequestRepository) GetByID(ctx context.Context, id string) (*ReviewRequest, error) {
	query := `
		SELECT id, member_id, property_id, title, description, status,
		       decided_by, decided_at, decision_notes,
		       created_at, updated_at, deleted_at
		FROM review_requests
		WHERE id = $1 AND deleted_at IS NULL
	`

	req := &ReviewRequest{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&req.ID,
		&req.MemberID,
		&req.PropertyID,
		&req.Title,
		&req.Description,
		&req.Status,
		&req.DecidedBy,
		&req.DecidedAt,
		&req.DecisionNotes,
		&req.CreatedAt,
		&req.UpdatedAt,
		&req.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, errors.NotFound("review request", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeUnavailable, "failed to get review request")
	}

	return req, nil
}

// referenceExpr resolves a policy's declared reference field to the SQL
// expression this table compares record age against.
func referenceExpr(ref retention.ReferenceField) string {
	if ref == retention.ReferenceDecidedAt {
		return "COALESCE(decided_at, created_at)"
	}
	return "created_at"
}

// SoftDeleteExpired marks as soft-deleted every active request in the
// policy's status whose reference timestamp is strictly older than
// cutoff. The deleted_at IS NULL guard keeps the batch idempotent;
// re-running with the same cutoff marks nothing further.
func (r *ReviewRequestRepository) SoftDeleteExpired(ctx context.Context, p retention.Policy, cutoff, now time.Time) (int64, error) {
	if p.Status == "" {
		return 0, errors.New(errors.ErrCodeInvalidInput, "review request policies must name a status")
	}

	query := fmt.Sprintf(`
		UPDATE review_requests
		SET deleted_at = $1
		WHERE status = $2::review_request_status
		  AND deleted_at IS NULL
		  AND %s < $3
	`, referenceExpr(p.Reference))

	tag, err := r.db.Exec(ctx, query, now, p.Status, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeUnavailable, "failed to soft-delete expired review requests")
	}

	return tag.RowsAffected(), nil
}

// SoftDeleteByID soft-deletes a single request. Returns true only when
// a live row transitioned; an already-deleted or missing row returns
// false without error.
func (r *ReviewRequestRepository) SoftDeleteByID(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE review_requests
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeUnavailable, "failed to soft-delete review request")
	}

	return tag.RowsAffected() > 0, nil
}

// PurgeExpired permanently removes requests soft-deleted strictly
// before cutoff. Irreversible.
func (r *ReviewRequestRepository) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM review_requests
		WHERE deleted_at IS NOT NULL AND deleted_at < $1
	`

	tag, err := r.db.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeUnavailable, "failed to purge review requests")
	}

	return tag.RowsAffected(), nil
}

package repository

import (
	"context"
	"time"

	"github.com/pinecresthq/be-portal-retention/internal/database"
	"github.com/pinecresthq/be-portal-retention/internal/errors"
	"github.com/pinecresthq/be-portal-retention/internal/retention"
)

// LoginHistoryEntry records one portal sign-in attempt. Entries are
// appended by the portal's auth service; this service only ages them
// out.
type LoginHistoryEntry struct {
	ID        string
	MemberID  string
	IPAddress *string
	UserAgent *string
	Succeeded bool
	CreatedAt time.Time
	DeletedAt *time.Time
}

// LoginHistoryRepository handles login history lifecycle operations.
type LoginHistoryRepository struct {
	db *database.DB
}

// NewLoginHistoryRepository creates a new login history repository.
func NewLoginHistoryRepository(db *database.DB) *LoginHistoryRepository {
	return &LoginHistoryRepository{db: db}
}

// Category names the record category this repository owns.
func (r *LoginHistoryRepository) Category() string {
	return retention.CategoryLoginHistory
}

// SoftDeleteExpired marks as soft-deleted every active entry created
// strictly before cutoff. Login history carries no status or decision
// timestamp, so a policy declaring either is malformed for this store.
func (r *LoginHistoryRepository) SoftDeleteExpired(ctx context.Context, p retention.Policy, cutoff, now time.Time) (int64, error) {
	if p.Status != "" {
		return 0, errors.New(errors.ErrCodeInvalidInput, "login history policies must not name a status")
	}
	if p.Reference != retention.ReferenceCreatedAt {
		return 0, errors.New(errors.ErrCodeInvalidInput, "login history has no decision timestamp to measure age from")
	}

	query := `
		UPDATE login_history
		SET deleted_at = $1
		WHERE deleted_at IS NULL AND created_at < $2
	`

	tag, err := r.db.Exec(ctx, query, now, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeUnavailable, "failed to soft-delete expired login history")
	}

	return tag.RowsAffected(), nil
}

// PurgeExpired permanently removes entries soft-deleted strictly before
// cutoff. Irreversible.
func (r *LoginHistoryRepository) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM login_history
		WHERE deleted_at IS NOT NULL AND deleted_at < $1
	`

	tag, err := r.db.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeUnavailable, "failed to purge login history")
	}

	return tag.RowsAffected(), nil
}

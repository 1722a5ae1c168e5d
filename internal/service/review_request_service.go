package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pinecresthq/be-portal-retention/internal/client"
	"github.com/pinecresthq/be-portal-retention/internal/errors"
	"github.com/pinecresthq/be-portal-retention/internal/logger"
	"github.com/pinecresthq/be-portal-retention/internal/repository"
	"github.com/pinecresthq/be-portal-retention/internal/retention"
)

// reviewRequestStore is the slice of the repository the withdraw path
// needs.
type reviewRequestStore interface {
	GetByID(ctx context.Context, id string) (*repository.ReviewRequest, error)
	SoftDeleteByID(ctx context.Context, id string) (bool, error)
}

// ReviewRequestService handles member-triggered lifecycle actions on
// review requests.
type ReviewRequestService struct {
	requests reviewRequestStore
	notifier *client.NotificationPublisher
	log      *logger.Logger
}

// NewReviewRequestService creates a new review request service.
func NewReviewRequestService(
	requests reviewRequestStore,
	notifier *client.NotificationPublisher,
	log *logger.Logger,
) *ReviewRequestService {
	return &ReviewRequestService{
		requests: requests,
		notifier: notifier,
		log:      log,
	}
}

// Withdraw soft-deletes a member's own review request. Only undecided
// requests can be withdrawn; decided ones stay on the association book
// until their retention policy ages them out. Returns true only when a
// live row transitioned, so callers can report success without internal
// error detail.
func (s *ReviewRequestService) Withdraw(ctx context.Context, id, memberID string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, errors.InvalidInput("id", "must be a valid UUID")
	}

	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return false, err
	}

	if req.MemberID != memberID {
		return false, errors.New(errors.ErrCodeConflict, "review request belongs to another member")
	}

	if req.Status != retention.StatusPending && req.Status != retention.StatusInReview {
		return false, errors.New(errors.ErrCodeConflict,
			fmt.Sprintf("cannot withdraw review request with status '%s'", req.Status))
	}

	withdrawn, err := s.requests.SoftDeleteByID(ctx, id)
	if err != nil {
		return false, err
	}

	if withdrawn {
		s.log.Info().
			Str("review_request_id", id).
			Str("member_id", memberID).
			Str("status", req.Status).
			Msg("Review request withdrawn")

		if s.notifier != nil {
			s.notifier.PublishLifecycleEvent("request_withdrawn", &client.LifecycleEvent{
				Category:   retention.CategoryReviewRequest,
				ResourceID: id,
				ActorID:    memberID,
			})
		}
	}

	return withdrawn, nil
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/pinecresthq/be-portal-retention/internal/errors"
	"github.com/pinecresthq/be-portal-retention/internal/repository"
	"github.com/pinecresthq/be-portal-retention/internal/retention"
)

// fakeRequestStore implements reviewRequestStore over a single record.
type fakeRequestStore struct {
	record      *repository.ReviewRequest
	softDeleted bool
}

func (f *fakeRequestStore) GetByID(ctx context.Context, id string) (*repository.ReviewRequest, error) {
	if f.record == nil || f.record.ID != id || f.record.DeletedAt != nil {
		return nil, errors.NotFound("review request", id)
	}
	return f.record, nil
}

func (f *fakeRequestStore) SoftDeleteByID(ctx context.Context, id string) (bool, error) {
	if f.record == nil || f.record.ID != id || f.record.DeletedAt != nil {
		return false, nil
	}
	now := time.Now().UTC()
	f.record.DeletedAt = &now
	f.softDeleted = true
	return true, nil
}

const (
	testRequestID = "3f2c1d9e-7a50-4b8a-9c11-6e2f8d4a0b5c"
	testMemberID  = "member-42"
)

func pendingRequest() *repository.ReviewRequest {
	return &repository.ReviewRequest{
		ID:       testRequestID,
		MemberID: testMemberID,
		Status:   retention.StatusPending,
	}
}

func TestReviewRequestService_WithdrawPendingRequest(t *testing.T) {
	store := &fakeRequestStore{record: pendingRequest()}
	svc := NewReviewRequestService(store, nil, nopLogger())

	withdrawn, err := svc.Withdraw(context.Background(), testRequestID, testMemberID)
	if err != nil {
		t.Fatalf("Withdraw() error = %v", err)
	}
	if !withdrawn {
		t.Error("Withdraw() = false, want true")
	}
	if !store.softDeleted {
		t.Error("record was not soft-deleted")
	}
}

func TestReviewRequestService_WithdrawRejectsInvalidID(t *testing.T) {
	svc := NewReviewRequestService(&fakeRequestStore{}, nil, nopLogger())

	_, err := svc.Withdraw(context.Background(), "not-a-uuid", testMemberID)
	if errors.CodeOf(err) != errors.ErrCodeInvalidInput {
		t.Errorf("error code = %v, want %v", errors.CodeOf(err), errors.ErrCodeInvalidInput)
	}
}

func TestReviewRequestService_WithdrawRejectsOtherMember(t *testing.T) {
	store := &fakeRequestStore{record: pendingRequest()}
	svc := NewReviewRequestService(store, nil, nopLogger())

	_, err := svc.Withdraw(context.Background(), testRequestID, "member-99")
	if errors.CodeOf(err) != errors.ErrCodeConflict {
		t.Errorf("error code = %v, want %v", errors.CodeOf(err), errors.ErrCodeConflict)
	}
	if store.softDeleted {
		t.Error("record of another member was soft-deleted")
	}
}

func TestReviewRequestService_WithdrawRejectsDecidedRequest(t *testing.T) {
	record := pendingRequest()
	record.Status = retention.StatusApproved
	store := &fakeRequestStore{record: record}
	svc := NewReviewRequestService(store, nil, nopLogger())

	_, err := svc.Withdraw(context.Background(), testRequestID, testMemberID)
	if errors.CodeOf(err) != errors.ErrCodeConflict {
		t.Errorf("error code = %v, want %v", errors.CodeOf(err), errors.ErrCodeConflict)
	}
}

func TestReviewRequestService_WithdrawMissingRequest(t *testing.T) {
	svc := NewReviewRequestService(&fakeRequestStore{}, nil, nopLogger())

	_, err := svc.Withdraw(context.Background(), testRequestID, testMemberID)
	if errors.CodeOf(err) != errors.ErrCodeNotFound {
		t.Errorf("error code = %v, want %v", errors.CodeOf(err), errors.ErrCodeNotFound)
	}
}

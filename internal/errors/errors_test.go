package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(cause, ErrCodeUnavailable, "failed to soft-delete expired review requests")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause with errors.Is")
	}
	if CodeOf(err) != ErrCodeUnavailable {
		t.Errorf("CodeOf = %s, want %s", CodeOf(err), ErrCodeUnavailable)
	}
}

func TestCodeOfUncodedError(t *testing.T) {
	if got := CodeOf(stderrors.New("plain")); got != ErrCodeInternal {
		t.Errorf("CodeOf(plain error) = %s, want %s", got, ErrCodeInternal)
	}
}

func TestCodeOfWrappedChain(t *testing.T) {
	inner := New(ErrCodeConflict, "cannot withdraw review request with status 'approved'")
	outer := fmt.Errorf("withdraw: %w", inner)

	if got := CodeOf(outer); got != ErrCodeConflict {
		t.Errorf("CodeOf = %s, want %s", got, ErrCodeConflict)
	}
	if !HasCode(outer, ErrCodeConflict) {
		t.Error("HasCode should find the conflict code through the chain")
	}
}

func TestNotFoundMessage(t *testing.T) {
	err := NotFound("review request", "abc-123")
	if err.Code != ErrCodeNotFound {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeNotFound)
	}
	want := "not_found: review request 'abc-123' not found"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestInvalidInputMessage(t *testing.T) {
	err := InvalidInput("id", "must be a valid UUID")
	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeInvalidInput)
	}
}

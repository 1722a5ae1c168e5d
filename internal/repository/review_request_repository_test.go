package repository

import (
	"testing"

	"github.com/pinecresthq/be-portal-retention/internal/retention"
)

func TestReferenceExpr(t *testing.T) {
	tests := []struct {
		name string
		ref  retention.ReferenceField
		want string
	}{
		{"creation time", retention.ReferenceCreatedAt, "created_at"},
		{"decision time with fallback", retention.ReferenceDecidedAt, "COALESCE(decided_at, created_at)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := referenceExpr(tt.ref); got != tt.want {
				t.Errorf("referenceExpr(%s) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

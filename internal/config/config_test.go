package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Retention.GraceDays != 30 {
		t.Errorf("default grace days = %d, want 30", cfg.Retention.GraceDays)
	}
	if cfg.Retention.SweepSchedule == "" {
		t.Error("default sweep schedule should not be empty")
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("default DB host = %q, want localhost", cfg.Database.Host)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("RETENTION_GRACE_DAYS", "45")
	t.Setenv("RETENTION_SWEEP_SCHEDULE", "0 2 * * *")
	t.Setenv("DB_MAX_CONN_LIFETIME", "2h")
	t.Setenv("NATS_ENABLED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Retention.GraceDays != 45 {
		t.Errorf("grace days = %d, want 45", cfg.Retention.GraceDays)
	}
	if cfg.Retention.SweepSchedule != "0 2 * * *" {
		t.Errorf("sweep schedule = %q, want 0 2 * * *", cfg.Retention.SweepSchedule)
	}
	if cfg.Database.MaxConnLifetime != 2*time.Hour {
		t.Errorf("max conn lifetime = %v, want 2h", cfg.Database.MaxConnLifetime)
	}
	if !cfg.NATS.Enabled {
		t.Error("NATS should be enabled")
	}
}

func TestLoadRejectsNegativeGrace(t *testing.T) {
	t.Setenv("RETENTION_GRACE_DAYS", "-1")

	if _, err := Load(); err == nil {
		t.Error("Load() accepted a negative grace period")
	}
}

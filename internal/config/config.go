package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service configuration, loaded from the environment.
type Config struct {
	Service   ServiceConfig
	Database  DatabaseConfig
	Retention RetentionConfig
	NATS      NATSConfig
	Ops       OpsConfig
}

// ServiceConfig identifies the running service.
type ServiceConfig struct {
	Name        string
	Version     string
	Environment string
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RetentionConfig holds retention engine settings. An empty schedule
// disables that scheduled job.
type RetentionConfig struct {
	SweepSchedule string // cron expression, e.g. "0 3 * * *"
	PurgeSchedule string // cron expression, e.g. "30 4 * * *"
	GraceDays     int    // minimum days a soft-deleted record stays recoverable
}

// NATSConfig holds lifecycle-event publishing settings.
type NATSConfig struct {
	URL     string
	Enabled bool
}

// OpsConfig holds the health/metrics listener settings.
type OpsConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying
// defaults suitable for local development.
func Load() (*Config, error) {
	cfg := &Config{
		Service: ServiceConfig{
			Name:        getEnv("SERVICE_NAME", "be-portal-retention"),
			Version:     getEnv("SERVICE_VERSION", "dev"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "portal"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "portal"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxConns:        int32(getEnvInt("DB_MAX_CONNS", 10)),
			MinConns:        int32(getEnvInt("DB_MIN_CONNS", 2)),
			MaxConnLifetime: getEnvDuration("DB_MAX_CONN_LIFETIME", time.Hour),
			MaxConnIdleTime: getEnvDuration("DB_MAX_CONN_IDLE_TIME", 30*time.Minute),
		},
		Retention: RetentionConfig{
			SweepSchedule: getEnv("RETENTION_SWEEP_SCHEDULE", "0 3 * * *"),
			PurgeSchedule: getEnv("RETENTION_PURGE_SCHEDULE", "30 4 * * *"),
			GraceDays:     getEnvInt("RETENTION_GRACE_DAYS", 30),
		},
		NATS: NATSConfig{
			URL:     getEnv("NATS_URL", "nats://localhost:4222"),
			Enabled: getEnvBool("NATS_ENABLED", false),
		},
		Ops: OpsConfig{
			Port:            getEnvInt("OPS_PORT", 8091),
			ReadTimeout:     getEnvDuration("OPS_READ_TIMEOUT", 5*time.Second),
			WriteTimeout:    getEnvDuration("OPS_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:     getEnvDuration("OPS_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("OPS_SHUTDOWN_TIMEOUT", 15*time.Second),
		},
	}

	if cfg.Retention.GraceDays < 0 {
		return nil, fmt.Errorf("RETENTION_GRACE_DAYS must not be negative, got %d", cfg.Retention.GraceDays)
	}
	if cfg.Database.Host == "" {
		return nil, fmt.Errorf("DB_HOST must not be empty")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

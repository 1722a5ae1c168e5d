package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"

	"github.com/pinecresthq/be-portal-retention/internal/client"
	"github.com/pinecresthq/be-portal-retention/internal/config"
	"github.com/pinecresthq/be-portal-retention/internal/database"
	"github.com/pinecresthq/be-portal-retention/internal/handler"
	"github.com/pinecresthq/be-portal-retention/internal/logger"
	"github.com/pinecresthq/be-portal-retention/internal/metrics"
	"github.com/pinecresthq/be-portal-retention/internal/repository"
	"github.com/pinecresthq/be-portal-retention/internal/retention"
	"github.com/pinecresthq/be-portal-retention/internal/scheduler"
	"github.com/pinecresthq/be-portal-retention/internal/service"
)

func main() {
	sweepOnce := flag.Bool("sweep-once", false, "run a single retention sweep and exit")
	purgeOnce := flag.Bool("purge-once", false, "run a single purge pass and exit (irreversible)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:       os.Getenv("LOG_LEVEL"),
		Environment: cfg.Service.Environment,
		ServiceName: cfg.Service.Name,
		Version:     cfg.Service.Version,
	})

	log.Info().
		Str("service", cfg.Service.Name).
		Str("version", cfg.Service.Version).
		Str("environment", cfg.Service.Environment).
		Msg("Starting portal retention service")

	// Create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database
	db, err := database.New(ctx, database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()
	log.Info().Msg("Database connection established")

	// Initialize NATS connection and lifecycle-event publisher
	var nc *nats.Conn
	if cfg.NATS.Enabled {
		nc, err = nats.Connect(cfg.NATS.URL, nats.Name(cfg.Service.Name))
		if err != nil {
			log.Fatal().Err(err).Str("url", cfg.NATS.URL).Msg("Failed to connect to NATS")
		}
		defer nc.Drain()
		log.Info().Str("url", cfg.NATS.URL).Msg("NATS connection established")
	}
	notifier := client.NewNotificationPublisher(nc, log.Logger)

	// Initialize repositories
	reviewRequestRepo := repository.NewReviewRequestRepository(db)
	loginHistoryRepo := repository.NewLoginHistoryRepository(db)

	// Initialize retention engine
	sweeper := retention.NewSweeper(
		retention.DefaultPolicies(),
		[]retention.Store{reviewRequestRepo, loginHistoryRepo},
		log.Logger,
	)
	purger := retention.NewPurger(
		[]retention.PurgeStore{reviewRequestRepo, loginHistoryRepo},
		cfg.Retention.GraceDays,
		log.Logger,
	)

	// Initialize services
	m := metrics.New()
	retentionService := service.NewRetentionService(sweeper, purger, m, notifier, log)

	// One-shot modes: run the requested pass and exit. This is the
	// deliberate, privileged invocation path for purge.
	if *sweepOnce || *purgeOnce {
		if *sweepOnce {
			retentionService.RunSweep(ctx)
		}
		if *purgeOnce {
			retentionService.RunPurge(ctx)
		}
		return
	}

	// Subscribe to member-triggered withdraw commands
	if nc != nil {
		reviewRequestService := service.NewReviewRequestService(reviewRequestRepo, notifier, log)
		withdrawHandler := handler.NewWithdrawHandler(reviewRequestService, log)
		if _, err := withdrawHandler.Subscribe(nc); err != nil {
			log.Fatal().Err(err).Msg("Failed to subscribe to withdraw commands")
		}
		log.Info().Str("subject", handler.WithdrawSubject).Msg("Listening for withdraw commands")
	}

	// Start scheduler
	sched := scheduler.New(retentionService, scheduler.Config{
		SweepSchedule: cfg.Retention.SweepSchedule,
		PurgeSchedule: cfg.Retention.PurgeSchedule,
	}, log)
	if err := sched.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start retention scheduler")
	}

	// Start ops HTTP server (health + metrics)
	opsHandler := handler.NewOpsHandler(db, log)
	opsServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Ops.Port),
		Handler:      opsHandler.Routes(),
		ReadTimeout:  cfg.Ops.ReadTimeout,
		WriteTimeout: cfg.Ops.WriteTimeout,
		IdleTimeout:  cfg.Ops.IdleTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Ops.Port).Msg("Starting ops HTTP server")
		if err := opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("Ops HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Ops.ShutdownTimeout)
	defer shutdownCancel()

	if err := opsServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Ops HTTP server shutdown failed")
	}

	sched.Stop()

	log.Info().Msg("Service stopped")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadboard_backend/internal/email"
	apphttp "leadboard_backend/internal/http"
	"leadboard_backend/internal/http/router"
	"leadboard_backend/internal/leads"
	"leadboard_backend/internal/leads/handler"
	"leadboard_backend/internal/storage"
	"leadboard_backend/platform/config"
	"leadboard_backend/platform/events"
	"leadboard_backend/platform/logger"
	"leadboard_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Message archive (MinIO) is optional; without it message downloads are
	// served inline only.
	var archive handler.ArtifactStore
	if cfg.IsMinIOEnabled() {
		messageArchive, err := storage.NewMessageArchive(cfg, log)
		if err != nil {
			log.Error("failed to initialize message archive", "error", err)
			panic("failed to initialize message archive: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure message bucket", 5, 2*time.Second, func() error {
			return messageArchive.EnsureBucket(ctx)
		}); err != nil {
			log.Error("failed to ensure message bucket exists", "error", err)
			panic("failed to ensure message bucket exists: " + err.Error())
		}
		archive = messageArchive
		log.Info("message archive initialized", "bucket", cfg.GetMinioBucketMessages())
	} else {
		log.Warn("MINIO_ENDPOINT not configured; message archiving disabled")
	}

	// SMTP delivery of composed messages is optional.
	var mailer handler.Mailer
	if cfg.IsEmailEnabled() {
		mailer = email.NewSMTPSender(cfg, log)
		log.Info("smtp sender initialized", "host", cfg.GetSMTPHost())
	} else {
		log.Warn("SMTP not configured; email delivery disabled")
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	leadsModule, err := leads.NewModule(cfg, eventBus, val, archive, mailer, log)
	if err != nil {
		log.Error("failed to initialize leads module", "error", err)
		panic("failed to initialize leads module: " + err.Error())
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   leadsModule.Service(),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			leadsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}

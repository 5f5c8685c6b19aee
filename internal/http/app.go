package http

import (
	"context"
	"time"

	"leadboard_backend/platform/config"
	"leadboard_backend/platform/events"
	"leadboard_backend/platform/logger"
)

// SnapshotHealth exposes the snapshot cache state for the health endpoint.
type SnapshotHealth interface {
	SnapshotRemaining(ctx context.Context) (time.Duration, bool)
}

// App holds the fully initialized application dependencies. main.go (the
// composition root) populates it and passes it to the router.
type App struct {
	// Config holds the HTTP server settings.
	Config config.HTTPConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health reports snapshot cache freshness for readiness checks.
	Health SnapshotHealth
	// EventBus is the domain event bus for cross-module communication.
	EventBus events.Bus
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}

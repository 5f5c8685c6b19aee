// Package leads is the lead ingestion and reporting bounded context. This
// file wires its dependencies and registers its routes.
package leads

import (
	"context"

	apphttp "leadboard_backend/internal/http"
	"leadboard_backend/internal/leads/handler"
	"leadboard_backend/internal/leads/manual"
	"leadboard_backend/internal/leads/service"
	"leadboard_backend/internal/zoho"
	"leadboard_backend/platform/cache"
	"leadboard_backend/platform/config"
	"leadboard_backend/platform/events"
	"leadboard_backend/platform/logger"
	"leadboard_backend/platform/validator"
)

// SnapshotCacheKey is the Redis key the API server and the scheduler
// worker share for the lead snapshot.
const SnapshotCacheKey = "leads:snapshot"

// Module is the leads bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the leads module. The snapshot cache
// is Redis-backed when REDIS_URL is set, so the scheduler worker can
// refresh the same entry; the token slot stays in-memory.
func NewModule(
	cfg *config.Config,
	bus events.Bus,
	val *validator.Validator,
	archive handler.ArtifactStore,
	mailer handler.Mailer,
	log *logger.Logger,
) (*Module, error) {
	client := zoho.NewClient(cfg, log)

	var snapshot cache.Store[[]zoho.RawLead]
	if cfg.GetRedisURL() != "" {
		redisClient, err := cache.NewRedisClient(cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
		if err != nil {
			return nil, err
		}
		snapshot = cache.NewRedisSlot[[]zoho.RawLead](redisClient, SnapshotCacheKey)
	} else {
		snapshot = cache.NewSlot[[]zoho.RawLead]()
	}

	svc := service.New(client, cache.NewSlot[string](), snapshot, manual.NewStore(), bus, cfg, log)

	bus.Subscribe(service.EventSnapshotRefreshed, events.HandlerFunc(func(_ context.Context, event events.Event) error {
		if e, ok := event.(service.SnapshotRefreshed); ok {
			log.Info("snapshot refreshed", "count", e.Count)
		}
		return nil
	}))
	bus.Subscribe(service.EventManualLeadAdded, events.HandlerFunc(func(_ context.Context, event events.Event) error {
		if e, ok := event.(service.ManualLeadAdded); ok {
			log.Info("manual lead added", "leadId", e.LeadID, "owner", e.Owner)
		}
		return nil
	}))

	return &Module{
		handler: handler.New(svc, val, archive, mailer),
		service: svc,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the lead service for external use (health checks, the
// scheduler worker).
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the leads routes on the router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1, ctx.RefreshRateLimiter.RateLimit())
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)

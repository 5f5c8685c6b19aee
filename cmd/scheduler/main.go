// The scheduler binary keeps the shared lead snapshot warm: it enqueues a
// refresh task on an interval and runs the asynq worker that executes it.
// It requires REDIS_URL, both for asynq and for the shared snapshot slot.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadboard_backend/internal/leads"
	"leadboard_backend/internal/scheduler"
	"leadboard_backend/platform/config"
	"leadboard_backend/platform/events"
	"leadboard_backend/platform/logger"
	"leadboard_backend/platform/validator"

	"github.com/hibiken/asynq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)

	if cfg.GetRedisURL() == "" {
		log.Error("REDIS_URL is required for the scheduler")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eventBus := events.NewInMemoryBus(log)
	leadsModule, err := leads.NewModule(cfg, eventBus, validator.New(), nil, nil, log)
	if err != nil {
		log.Error("failed to initialize leads module", "error", err)
		panic("failed to initialize leads module: " + err.Error())
	}

	redisOpt, err := scheduler.RedisClientOpt(cfg)
	if err != nil {
		log.Error("failed to build redis options", "error", err)
		panic("failed to build redis options: " + err.Error())
	}
	queue := scheduler.Queue(cfg)

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 1,
		Queues:      map[string]int{queue: 1},
	})
	mux := asynq.NewServeMux()
	scheduler.NewWorker(leadsModule.Service(), log).Register(mux)

	client := asynq.NewClient(redisOpt)
	defer client.Close()

	go enqueueLoop(ctx, client, queue, cfg.GetSnapshotRefreshInterval(), log)

	go func() {
		<-ctx.Done()
		log.Info("shutdown signal received, stopping worker")
		server.Shutdown()
	}()

	log.Info("scheduler worker starting", "queue", queue, "interval", cfg.GetSnapshotRefreshInterval().String())
	if err := server.Run(mux); err != nil {
		log.Error("worker stopped", "error", err)
		panic("worker stopped: " + err.Error())
	}
}

// enqueueLoop schedules a refresh immediately and then on every tick, so
// the cache entry is rebuilt ahead of its TTL.
func enqueueLoop(ctx context.Context, client *asynq.Client, queue string, interval time.Duration, log *logger.Logger) {
	enqueue := func(reason string) {
		task, err := scheduler.NewSnapshotRefreshTask(scheduler.SnapshotRefreshPayload{Reason: reason})
		if err != nil {
			log.Error("failed to build refresh task", "error", err)
			return
		}
		if _, err := client.EnqueueContext(ctx, task, asynq.Queue(queue)); err != nil {
			log.Error("failed to enqueue refresh task", "error", err)
			return
		}
		log.Info("snapshot refresh enqueued", "reason", reason)
	}

	enqueue("startup")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			enqueue("interval")
		}
	}
}

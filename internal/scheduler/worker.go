package scheduler

import (
	"context"

	"leadboard_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// SnapshotRefresher is the slice of the lead service the worker needs.
type SnapshotRefresher interface {
	Refresh(ctx context.Context) (int, error)
}

// Worker handles scheduled snapshot refreshes.
type Worker struct {
	refresher SnapshotRefresher
	log       *logger.Logger
}

func NewWorker(refresher SnapshotRefresher, log *logger.Logger) *Worker {
	return &Worker{refresher: refresher, log: log}
}

// Register mounts the worker's handlers on the asynq mux.
func (w *Worker) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TaskSnapshotRefresh, w.HandleSnapshotRefresh)
}

// HandleSnapshotRefresh rebuilds the shared snapshot cache entry.
// Returning the error lets asynq retry with backoff.
func (w *Worker) HandleSnapshotRefresh(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseSnapshotRefreshPayload(task)
	if err != nil {
		return err
	}

	count, err := w.refresher.Refresh(ctx)
	if err != nil {
		w.log.Error("scheduled snapshot refresh failed", "reason", payload.Reason, "error", err)
		return err
	}

	w.log.Info("scheduled snapshot refresh done", "reason", payload.Reason, "count", count)
	return nil
}

// Package scheduler defines the background tasks that keep the lead
// snapshot warm ahead of cache expiry.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskSnapshotRefresh = "leads:snapshot:refresh"

// SnapshotRefreshPayload identifies a scheduled snapshot rebuild.
type SnapshotRefreshPayload struct {
	Reason string `json:"reason"`
}

func NewSnapshotRefreshTask(payload SnapshotRefreshPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSnapshotRefresh, data), nil
}

func ParseSnapshotRefreshPayload(task *asynq.Task) (SnapshotRefreshPayload, error) {
	var payload SnapshotRefreshPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return SnapshotRefreshPayload{}, err
	}
	return payload, nil
}

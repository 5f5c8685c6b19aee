package service

import "leadboard_backend/platform/events"

const (
	EventSnapshotRefreshed = "leads.snapshot_refreshed"
	EventManualLeadAdded   = "leads.manual_lead_added"
)

// SnapshotRefreshed fires after a fresh snapshot lands in the cache.
type SnapshotRefreshed struct {
	events.BaseEvent
	Count int `json:"count"`
}

func (e SnapshotRefreshed) EventName() string { return EventSnapshotRefreshed }

// ManualLeadAdded fires when a lead is captured by hand.
type ManualLeadAdded struct {
	events.BaseEvent
	LeadID string `json:"leadId"`
	Owner  string `json:"owner"`
}

func (e ManualLeadAdded) EventName() string { return EventManualLeadAdded }

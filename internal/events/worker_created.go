package events

import "time"

const WorkerLifecycleTopic = "dairy.worker.lifecycle.v1"

const EventTypeWorkerCreated = "worker_created"

type WorkerCreatedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	WorkerID   string    `json:"worker_id"`
	WorkerCode string    `json:"worker_code"`
	OccurredAt time.Time `json:"occurred_at"`
}

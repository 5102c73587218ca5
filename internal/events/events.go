package events

import (
	"context"
	"time"
)

const (
	UserRegistered           = "user.registered"
	ApplicationCreated       = "application.created"
	ApplicationCancelled     = "application.cancelled"
	ApplicationStatusChanged = "application.status_changed"
	JobCreated               = "job.created"
	JobUpdated               = "job.updated"
)

type Event struct {
	Type       string         `json:"type"`
	Key        string         `json:"key"`
	OccurredAt time.Time      `json:"occurredAt"`
	Data       map[string]any `json:"data,omitempty"`
}

func New(typ, key string, data map[string]any) Event {
	return Event{Type: typ, Key: key, OccurredAt: time.Now().UTC(), Data: data}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

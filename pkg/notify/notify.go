// Package notify publishes alert lifecycle events to downstream consumers.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"

	"agromonitor/entities"
)

const (
	EventAlertCreated   = "alert.created"
	EventAlertResolved  = "alert.resolved"
	EventAlertDismissed = "alert.dismissed"
)

// Event is the payload written for every alert state change.
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Alert      *entities.Alert `json:"alert"`
}

func NewEvent(kind string, a *entities.Alert, at time.Time) Event {
	return Event{ID: uuid.NewString(), Type: kind, OccurredAt: at.UTC(), Alert: a}
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }

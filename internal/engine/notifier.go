package engine

import (
	"context"
	"time"
)

// Notification is a one-shot local reminder request.
type Notification struct {
	FireAt        time.Time `json:"fireAt"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	AppointmentID string    `json:"appointmentId"`
}

// Notifier delivers one-shot notifications at a wall-clock instant.
// Schedule returns an opaque handle that Cancel accepts.
type Notifier interface {
	Schedule(ctx context.Context, n Notification) (string, error)
	Cancel(ctx context.Context, handle string) error
}

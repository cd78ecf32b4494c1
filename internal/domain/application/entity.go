package application

import (
	"time"

	"github.com/google/uuid"
)

// Application records that a user applied to a job. AppliedAt is set once at creation.
type Application struct {
	ID          uuid.UUID
	ClerkUserID string
	UserEmail   string
	JobTitle    string
	Company     string
	Location    string
	JobURL      string
	AppliedAt   time.Time
}

// EventType names a change published to a user's realtime subscribers.
type EventType string

const (
	EventCreated EventType = "application_created"
	EventDeleted EventType = "application_deleted"
)

type Event struct {
	Type          EventType
	UserID        string
	ApplicationID uuid.UUID
	At            time.Time
}

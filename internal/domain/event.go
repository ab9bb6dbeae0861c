package domain

import (
	"context"
	"strings"
	"time"
)

// Event carries the per-event settings that drive registration expiry and notifications.
type Event struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	OwnerID string `json:"owner_id"`
	// RegistrationTimeLimit is the lifetime of an unsubmitted registration in seconds; 0 disables expiry.
	RegistrationTimeLimit int `json:"registration_time_limit"`
	// ConfirmTimeLimit is the time allowed to confirm in seconds; 0 means no confirmation deadline.
	ConfirmTimeLimit int       `json:"confirm_time_limit"`
	ManagerEmail     string    `json:"manager_email,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// EventLink is the canonical public link of an event under baseURL.
func EventLink(baseURL, eventID string) string {
	return strings.TrimRight(baseURL, "/") + "/events/" + eventID
}

// EventOccurrence is one scheduled instance of an event.
type EventOccurrence struct {
	ID      string    `json:"id"`
	EventID string    `json:"event_id"`
	Title   string    `json:"title"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
	Event   *Event    `json:"-"`
}

// EventRepository reads events and their occurrences. Events are owned elsewhere.
type EventRepository interface {
	// GetOccurrence returns the occurrence with its owning Event populated.
	GetOccurrence(ctx context.Context, occurrenceID string) (*EventOccurrence, error)
}

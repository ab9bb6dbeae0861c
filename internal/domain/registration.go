package domain

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Status is the lifecycle state of a registration.
type Status string

const (
	StatusUnsubmitted Status = "unsubmitted"
	StatusUnconfirmed Status = "unconfirmed"
	StatusValid       Status = "valid"
	StatusCanceled    Status = "canceled"
)

// allowedTransitions lists every legal edge of the registration state machine.
// Unsubmitted -> Canceled is realised as a hard delete by the lifecycle service.
var allowedTransitions = map[Status][]Status{
	StatusUnsubmitted: {StatusUnconfirmed, StatusCanceled},
	StatusUnconfirmed: {StatusValid, StatusCanceled},
	StatusValid:       {StatusCanceled},
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusUnsubmitted, StatusUnconfirmed, StatusValid, StatusCanceled:
		return true
	}
	return false
}

// IsInitial reports whether a registration may be created in status s.
func (s Status) IsInitial() bool {
	return s == StatusUnsubmitted || s == StatusUnconfirmed
}

// CanTransition reports whether moving from one status to another is an allowed edge.
func CanTransition(from, to Status) bool {
	return lo.Contains(allowedTransitions[from], to)
}

// Money is an amount in minor units (e.g. cents) of a currency.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// TicketLine associates a registration with a quantity of one ticket type.
// swagger:model TicketLine
type TicketLine struct {
	TicketID string `json:"ticket_id"`
	Title    string `json:"title,omitempty"`
	Quantity int    `json:"quantity"`
}

// Registration is a registration to a single event occurrence.
// swagger:model Registration
type Registration struct {
	ID           string       `json:"id"`
	OccurrenceID string       `json:"occurrence_id"`
	MemberID     *string      `json:"member_id,omitempty"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Status       Status       `json:"status"`
	Total        Money        `json:"total"`
	Token        string       `json:"-"`
	Tickets      []TicketLine `json:"tickets"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewRegistration returns an unpersisted Registration. ID, Token and timestamps are assigned on create.
func NewRegistration(occurrenceID, name, email string, status Status, tickets []TicketLine, total Money) *Registration {
	return &Registration{
		OccurrenceID: occurrenceID,
		Name:         name,
		Email:        email,
		Status:       status,
		Tickets:      tickets,
		Total:        total,
	}
}

// TransitionTo moves the registration to status to, leaving it untouched if the edge is not allowed.
func (r *Registration) TransitionTo(to Status) error {
	if !CanTransition(r.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.Status, to)
	}
	r.Status = to
	return nil
}

// TotalTicketQuantity is the number of places the registration holds.
func (r *Registration) TotalTicketQuantity() int {
	return lo.SumBy(r.Tickets, func(t TicketLine) int { return t.Quantity })
}

// ConfirmationDeadline returns the instant after which an unconfirmed registration expires.
// ok is false unless the registration is unconfirmed and the event has a confirm time limit.
func (r *Registration) ConfirmationDeadline(event *Event) (deadline time.Time, ok bool) {
	if r.Status != StatusUnconfirmed || event == nil || event.ConfirmTimeLimit <= 0 {
		return time.Time{}, false
	}
	return r.CreatedAt.Add(time.Duration(event.ConfirmTimeLimit) * time.Second), true
}

// AccessLink is the capability URL for unauthenticated access to the registration:
// <event-link>/registration/<id>?token=<token>.
func (r *Registration) AccessLink(eventLink string) string {
	return strings.TrimRight(eventLink, "/") + "/registration/" + url.PathEscape(r.ID) +
		"?token=" + url.QueryEscape(r.Token)
}

// RegistrationFilter narrows a registration listing to one occurrence and optionally one status.
type RegistrationFilter struct {
	OccurrenceID string
	Status       Status
}

// RegistrationRepository is the persistence boundary for single registrations.
type RegistrationRepository interface {
	// Insert persists a new registration and its ticket lines, setting reg.ID.
	// A duplicate token yields ErrTokenCollision.
	Insert(ctx context.Context, reg *Registration) error
	GetByID(ctx context.Context, id string) (*Registration, error)
	// List returns one page of matching registrations, newest first, and the total match count.
	List(ctx context.Context, f RegistrationFilter, page PaginationParams) ([]*Registration, int, error)
	// UpdateStatus changes the status only if it is currently from; otherwise ErrInvalidTransition.
	UpdateStatus(ctx context.Context, id string, from, to Status, updatedAt time.Time) error
	// ReplaceTickets swaps the ticket-line set and stored total atomically.
	ReplaceTickets(ctx context.Context, id string, tickets []TicketLine, total Money, updatedAt time.Time) error
	// Delete removes the registration and its ticket lines.
	Delete(ctx context.Context, id string) error
}

package domain

import (
	"context"
	"time"
)

// CreateRegistrationInput is the caller-supplied data for a new registration.
type CreateRegistrationInput struct {
	OccurrenceID string
	MemberID     *string
	Name         string
	Email        string
	// Status must be StatusUnsubmitted or StatusUnconfirmed.
	Status  Status
	Tickets []TicketLine
	Total   Money
}

// CreateRegistrationResult is the outcome of a create. NotificationErr is set when the manager
// notification failed; the registration is persisted regardless.
type CreateRegistrationResult struct {
	Registration    *Registration
	Occurrence      *EventOccurrence
	AccessLink      string
	Notified        bool
	NotificationErr error
}

// RegistrationView bundles a registration with its occurrence and derived fields.
// swagger:model RegistrationView
type RegistrationView struct {
	Registration         *Registration `json:"registration"`
	EventID              string        `json:"event_id"`
	EventTitle           string        `json:"event_title"`
	TotalQuantity        int           `json:"total_quantity"`
	ConfirmationDeadline *time.Time    `json:"confirmation_deadline,omitempty"`
}

// RegistrationService owns the registration lifecycle.
type RegistrationService interface {
	Create(ctx context.Context, in CreateRegistrationInput) (*CreateRegistrationResult, error)
	// Get loads a registration for an authorized principal.
	Get(ctx context.Context, p *Principal, id string) (*RegistrationView, error)
	// List pages through an occurrence's registrations for an authorized principal.
	List(ctx context.Context, p *Principal, f RegistrationFilter, page PaginationParams) ([]*Registration, int, error)
	// GetByToken loads a registration by its capability token; a wrong token yields ErrForbidden.
	GetByToken(ctx context.Context, id, token string) (*RegistrationView, error)
	// Transition applies a status change for an authorized principal.
	Transition(ctx context.Context, p *Principal, id string, to Status) (*Registration, error)
	// TransitionByToken applies a status change on behalf of the capability token holder.
	TransitionByToken(ctx context.Context, id, token string, to Status) (*Registration, error)
	ReplaceTickets(ctx context.Context, p *Principal, id string, tickets []TicketLine, total Money) (*Registration, error)
	Delete(ctx context.Context, p *Principal, id string) error
}

// RegistrationMetrics records registration creation outcomes.
type RegistrationMetrics interface {
	ObserveCreated(status Status, notificationFailed bool)
}

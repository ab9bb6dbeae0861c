package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventregistration/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) GetOccurrence(ctx context.Context, occurrenceID string) (*domain.EventOccurrence, error) {
	query := `
		SELECT o.id, o.event_id, o.title, o.start_at, o.end_at,
			e.id, e.title, e.owner_id, e.registration_time_limit, e.confirm_time_limit, e.manager_email,
			e.created_at, e.updated_at
		FROM event_occurrences o
		JOIN events e ON e.id = o.event_id
		WHERE o.id = $1
	`
	o := &domain.EventOccurrence{Event: &domain.Event{}}
	var managerEmail sql.NullString
	err := r.DB.QueryRowContext(ctx, query, occurrenceID).Scan(
		&o.ID, &o.EventID, &o.Title, &o.StartAt, &o.EndAt,
		&o.Event.ID, &o.Event.Title, &o.Event.OwnerID, &o.Event.RegistrationTimeLimit, &o.Event.ConfirmTimeLimit,
		&managerEmail, &o.Event.CreatedAt, &o.Event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if managerEmail.Valid {
		o.Event.ManagerEmail = managerEmail.String
	}
	return o, nil
}

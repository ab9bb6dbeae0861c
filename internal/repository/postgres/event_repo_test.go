package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventregistration/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestEventRepository_GetOccurrence(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 11, 2, 18, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Hour)
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	columns := []string{
		"id", "event_id", "title", "start_at", "end_at",
		"id", "title", "owner_id", "registration_time_limit", "confirm_time_limit", "manager_email",
		"created_at", "updated_at",
	}

	tests := []struct {
		name    string
		id      string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.EventOccurrence
		wantErr error
	}{
		{
			name: "success with manager email",
			id:   "occ-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT o.id, o.event_id, o.title, o.start_at, o.end_at`).
					WithArgs("occ-1").
					WillReturnRows(sqlmock.NewRows(columns).
						AddRow("occ-1", "ev-1", "Go Meetup #1", start, end, "ev-1", "Go Meetup", "owner-1", 3600, 600, "manager@example.com", created, created))
			},
			want: &domain.EventOccurrence{
				ID: "occ-1", EventID: "ev-1", Title: "Go Meetup #1", StartAt: start, EndAt: end,
				Event: &domain.Event{
					ID: "ev-1", Title: "Go Meetup", OwnerID: "owner-1",
					RegistrationTimeLimit: 3600, ConfirmTimeLimit: 600, ManagerEmail: "manager@example.com",
					CreatedAt: created, UpdatedAt: created,
				},
			},
		},
		{
			name: "null manager email",
			id:   "occ-2",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT o.id, o.event_id, o.title, o.start_at, o.end_at`).
					WithArgs("occ-2").
					WillReturnRows(sqlmock.NewRows(columns).
						AddRow("occ-2", "ev-1", "Go Meetup #2", start, end, "ev-1", "Go Meetup", "owner-1", 0, 0, nil, created, created))
			},
			want: &domain.EventOccurrence{
				ID: "occ-2", EventID: "ev-1", Title: "Go Meetup #2", StartAt: start, EndAt: end,
				Event: &domain.Event{
					ID: "ev-1", Title: "Go Meetup", OwnerID: "owner-1",
					CreatedAt: created, UpdatedAt: created,
				},
			},
		},
		{
			name: "not found",
			id:   "occ-missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT o.id`).
					WithArgs("occ-missing").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.GetOccurrence(ctx, tt.id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, got)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

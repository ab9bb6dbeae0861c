package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	allowed := map[[2]Status]bool{
		{StatusUnsubmitted, StatusUnconfirmed}: true,
		{StatusUnsubmitted, StatusCanceled}:    true,
		{StatusUnconfirmed, StatusValid}:       true,
		{StatusUnconfirmed, StatusCanceled}:    true,
		{StatusValid, StatusCanceled}:          true,
	}
	all := []Status{StatusUnsubmitted, StatusUnconfirmed, StatusValid, StatusCanceled}
	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]Status{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
	assert.False(t, CanTransition("bogus", StatusCanceled))
}

func TestRegistration_TransitionTo(t *testing.T) {
	reg := &Registration{Status: StatusUnsubmitted}

	err := reg.TransitionTo(StatusValid)
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusUnsubmitted, reg.Status)

	require.NoError(t, reg.TransitionTo(StatusUnconfirmed))
	require.NoError(t, reg.TransitionTo(StatusValid))
	require.NoError(t, reg.TransitionTo(StatusCanceled))

	err = reg.TransitionTo(StatusValid)
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusCanceled, reg.Status)
}

func TestStatus_IsInitial(t *testing.T) {
	assert.True(t, StatusUnsubmitted.IsInitial())
	assert.True(t, StatusUnconfirmed.IsInitial())
	assert.False(t, StatusValid.IsInitial())
	assert.False(t, StatusCanceled.IsInitial())
	assert.False(t, Status("").Valid())
}

func TestRegistration_TotalTicketQuantity(t *testing.T) {
	assert.Zero(t, (&Registration{}).TotalTicketQuantity())
	reg := &Registration{Tickets: []TicketLine{{TicketID: "a", Quantity: 2}, {TicketID: "b", Quantity: 3}}}
	assert.Equal(t, 5, reg.TotalTicketQuantity())
}

func TestRegistration_ConfirmationDeadline(t *testing.T) {
	created := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	event := &Event{ConfirmTimeLimit: 600}

	tests := []struct {
		name   string
		reg    *Registration
		event  *Event
		want   time.Time
		wantOK bool
	}{
		{"unconfirmed with limit", &Registration{Status: StatusUnconfirmed, CreatedAt: created}, event, created.Add(10 * time.Minute), true},
		{"no limit", &Registration{Status: StatusUnconfirmed, CreatedAt: created}, &Event{}, time.Time{}, false},
		{"valid registration", &Registration{Status: StatusValid, CreatedAt: created}, event, time.Time{}, false},
		{"unsubmitted registration", &Registration{Status: StatusUnsubmitted, CreatedAt: created}, event, time.Time{}, false},
		{"missing event", &Registration{Status: StatusUnconfirmed, CreatedAt: created}, nil, time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.reg.ConfirmationDeadline(tt.event)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistration_AccessLink(t *testing.T) {
	reg := &Registration{ID: "r-1", Token: "a+b/c"}
	link := EventLink("https://tickets.example.com/", "ev-1")

	assert.Equal(t, "https://tickets.example.com/events/ev-1", link)
	assert.Equal(t, "https://tickets.example.com/events/ev-1/registration/r-1?token=a%2Bb%2Fc", reg.AccessLink(link))
	assert.Equal(t, reg.AccessLink(link), reg.AccessLink(link+"/"))
}

func TestStalePredicate_Matches(t *testing.T) {
	asOf := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	event := &Event{RegistrationTimeLimit: 3600, ConfirmTimeLimit: 600}
	unsubmitted := StalePredicate{Status: StatusUnsubmitted, Deadline: DeadlineRegistrationTimeLimit, AsOf: asOf}
	unconfirmed := StalePredicate{Status: StatusUnconfirmed, Deadline: DeadlineConfirmTimeLimit, AsOf: asOf}

	at := func(status Status, age time.Duration) *Registration {
		return &Registration{Status: status, CreatedAt: asOf.Add(-age)}
	}

	assert.True(t, unsubmitted.Matches(at(StatusUnsubmitted, 3601*time.Second), event))
	assert.False(t, unsubmitted.Matches(at(StatusUnsubmitted, 3600*time.Second), event))
	assert.False(t, unsubmitted.Matches(at(StatusUnsubmitted, 3599*time.Second), event))
	assert.False(t, unsubmitted.Matches(at(StatusUnconfirmed, 2*time.Hour), event))

	assert.True(t, unconfirmed.Matches(at(StatusUnconfirmed, 601*time.Second), event))
	assert.False(t, unconfirmed.Matches(at(StatusUnconfirmed, 599*time.Second), event))
	assert.False(t, unconfirmed.Matches(at(StatusUnconfirmed, 48*time.Hour), &Event{RegistrationTimeLimit: 3600}))
	assert.False(t, unconfirmed.Matches(at(StatusUnconfirmed, 48*time.Hour), nil))
}

func TestPaginationParams_Window(t *testing.T) {
	tests := []struct {
		params             PaginationParams
		n                  int
		wantStart, wantEnd int
	}{
		{PaginationParams{Page: 1, PageSize: 20}, 5, 0, 5},
		{PaginationParams{Page: 2, PageSize: 2}, 5, 2, 4},
		{PaginationParams{Page: 3, PageSize: 2}, 5, 4, 5},
		{PaginationParams{Page: 4, PageSize: 2}, 5, 5, 5},
		{PaginationParams{Page: 0, PageSize: 2}, 5, 0, 2},
	}
	for _, tt := range tests {
		start, end := tt.params.Window(tt.n)
		assert.Equal(t, tt.wantStart, start, "%+v", tt.params)
		assert.Equal(t, tt.wantEnd, end, "%+v", tt.params)
	}
	assert.Equal(t, 40, PaginationParams{Page: 3, PageSize: 20}.Offset())
}

package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"

	"eventregistration/internal/domain"
)

// tx operates on one state without locking; Store serialises access.
type tx struct {
	st       *state
	failures map[string]error
}

func (t *tx) fail(op string) error {
	if err, ok := t.failures[op]; ok {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (t *tx) getOccurrence(id string) (*domain.EventOccurrence, error) {
	if err := t.fail("GetOccurrence"); err != nil {
		return nil, err
	}
	occ, ok := t.st.occurrences[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *occ
	c.Event = t.st.events[occ.EventID]
	return &c, nil
}

func (t *tx) insert(reg *domain.Registration) error {
	if err := t.fail("Insert"); err != nil {
		return err
	}
	if _, ok := t.st.occurrences[reg.OccurrenceID]; !ok {
		return fmt.Errorf("occurrence %q: %w", reg.OccurrenceID, domain.ErrConstraintViolation)
	}
	if _, taken := t.st.tokens[reg.Token]; taken {
		return domain.ErrTokenCollision
	}
	reg.ID = uuid.NewString()
	t.st.registrations[reg.ID] = copyRegistration(reg)
	t.st.tokens[reg.Token] = reg.ID
	return nil
}

func (t *tx) getByID(id string) (*domain.Registration, error) {
	if err := t.fail("GetByID"); err != nil {
		return nil, err
	}
	reg, ok := t.st.registrations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyRegistration(reg), nil
}

func (t *tx) list(f domain.RegistrationFilter, page domain.PaginationParams) ([]*domain.Registration, int, error) {
	if err := t.fail("List"); err != nil {
		return nil, 0, err
	}
	var matched []*domain.Registration
	for _, reg := range t.st.registrations {
		if reg.OccurrenceID != f.OccurrenceID || (f.Status != "" && reg.Status != f.Status) {
			continue
		}
		matched = append(matched, reg)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})
	start, end := page.Window(len(matched))
	out := make([]*domain.Registration, 0, end-start)
	for _, reg := range matched[start:end] {
		out = append(out, copyRegistration(reg))
	}
	return out, len(matched), nil
}

func (t *tx) updateStatus(id string, from, to domain.Status, updatedAt time.Time) error {
	if err := t.fail("UpdateStatus"); err != nil {
		return err
	}
	reg, ok := t.st.registrations[id]
	if !ok {
		return domain.ErrNotFound
	}
	if reg.Status != from {
		return fmt.Errorf("%w: registration is %s", domain.ErrInvalidTransition, reg.Status)
	}
	reg.Status = to
	reg.UpdatedAt = updatedAt
	return nil
}

func (t *tx) replaceTickets(id string, tickets []domain.TicketLine, total domain.Money, updatedAt time.Time) error {
	if err := t.fail("ReplaceTickets"); err != nil {
		return err
	}
	reg, ok := t.st.registrations[id]
	if !ok || reg.Status == domain.StatusCanceled {
		return domain.ErrNotFound
	}
	reg.Tickets = slices.Clone(tickets)
	reg.Total = total
	reg.UpdatedAt = updatedAt
	return nil
}

func (t *tx) delete(id string) error {
	if err := t.fail("Delete"); err != nil {
		return err
	}
	reg, ok := t.st.registrations[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(t.st.tokens, reg.Token)
	delete(t.st.registrations, id)
	return nil
}

func (t *tx) FindStale(_ context.Context, p domain.StalePredicate) ([]string, error) {
	if err := t.fail("FindStale"); err != nil {
		return nil, err
	}
	var ids []string
	for id, reg := range t.st.registrations {
		occ, ok := t.st.occurrences[reg.OccurrenceID]
		if !ok {
			continue
		}
		if p.Matches(reg, t.st.events[occ.EventID]) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (t *tx) BulkDelete(_ context.Context, ids []string, status domain.Status) (int64, error) {
	if err := t.fail("BulkDelete"); err != nil {
		return 0, err
	}
	var n int64
	for _, id := range ids {
		reg, ok := t.st.registrations[id]
		if !ok || reg.Status != status {
			continue
		}
		delete(t.st.tokens, reg.Token)
		delete(t.st.registrations, id)
		n++
	}
	return n, nil
}

func (t *tx) BulkUpdateStatus(_ context.Context, ids []string, from, to domain.Status, updatedAt time.Time) (int64, error) {
	if err := t.fail("BulkUpdateStatus"); err != nil {
		return 0, err
	}
	var n int64
	for _, id := range ids {
		reg, ok := t.st.registrations[id]
		if !ok || reg.Status != from {
			continue
		}
		reg.Status = to
		reg.UpdatedAt = updatedAt
		n++
	}
	return n, nil
}

// InTx on an open transaction joins it.
func (t *tx) InTx(_ context.Context, fn func(domain.PurgeStore) error) error {
	return fn(t)
}

// Package memory provides an in-process implementation of the registration store.
// Transactions work on a copy of the state that replaces the live state on commit.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"eventregistration/internal/domain"
)

type state struct {
	events        map[string]*domain.Event
	occurrences   map[string]*domain.EventOccurrence
	registrations map[string]*domain.Registration
	tokens        map[string]string // token -> registration ID
}

func newState() *state {
	return &state{
		events:        make(map[string]*domain.Event),
		occurrences:   make(map[string]*domain.EventOccurrence),
		registrations: make(map[string]*domain.Registration),
		tokens:        make(map[string]string),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.events {
		c.events[k] = v
	}
	for k, v := range s.occurrences {
		c.occurrences[k] = v
	}
	for k, v := range s.registrations {
		c.registrations[k] = copyRegistration(v)
	}
	for k, v := range s.tokens {
		c.tokens[k] = v
	}
	return c
}

func copyRegistration(r *domain.Registration) *domain.Registration {
	c := *r
	c.Tickets = slices.Clone(r.Tickets)
	if r.MemberID != nil {
		id := *r.MemberID
		c.MemberID = &id
	}
	return &c
}

// Store is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	st       *state
	failures map[string]error
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{st: newState(), failures: make(map[string]error)}
}

// FailOn makes every subsequent call of the named operation (e.g. "BulkDelete") return err.
// Passing a nil err clears the failure.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// AddEvent stores an event, assigning an ID when empty.
func (s *Store) AddEvent(e *domain.Event) *domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	s.st.events[e.ID] = e
	return e
}

// AddOccurrence stores an occurrence of an existing event, assigning an ID when empty.
func (s *Store) AddOccurrence(o *domain.EventOccurrence) (*domain.EventOccurrence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.st.events[o.EventID]; !ok {
		return nil, fmt.Errorf("event %q: %w", o.EventID, domain.ErrNotFound)
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	s.st.occurrences[o.ID] = o
	return o, nil
}

// NewEventRepository returns the EventRepository view of s.
func NewEventRepository(s *Store) domain.EventRepository { return s }

// NewRegistrationRepository returns the RegistrationRepository view of s.
func NewRegistrationRepository(s *Store) domain.RegistrationRepository { return s }

// NewPurgeStore returns the PurgeStore view of s.
func NewPurgeStore(s *Store) domain.PurgeStore { return s }

// view runs fn against the live state under the lock.
func (s *Store) view(fn func(t *tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&tx{st: s.st, failures: s.failures})
}

// atomic runs fn against a copy of the state and publishes it only when fn succeeds.
func (s *Store) atomic(fn func(t *tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.st.clone()
	if err := fn(&tx{st: next, failures: s.failures}); err != nil {
		return err
	}
	s.st = next
	return nil
}

func (s *Store) GetOccurrence(ctx context.Context, occurrenceID string) (*domain.EventOccurrence, error) {
	var occ *domain.EventOccurrence
	err := s.view(func(t *tx) error {
		var err error
		occ, err = t.getOccurrence(occurrenceID)
		return err
	})
	return occ, err
}

func (s *Store) Insert(ctx context.Context, reg *domain.Registration) error {
	return s.atomic(func(t *tx) error { return t.insert(reg) })
}

func (s *Store) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	var reg *domain.Registration
	err := s.view(func(t *tx) error {
		var err error
		reg, err = t.getByID(id)
		return err
	})
	return reg, err
}

func (s *Store) List(ctx context.Context, f domain.RegistrationFilter, page domain.PaginationParams) ([]*domain.Registration, int, error) {
	var (
		regs  []*domain.Registration
		total int
	)
	err := s.view(func(t *tx) error {
		var err error
		regs, total, err = t.list(f, page)
		return err
	})
	return regs, total, err
}

func (s *Store) UpdateStatus(ctx context.Context, id string, from, to domain.Status, updatedAt time.Time) error {
	return s.atomic(func(t *tx) error { return t.updateStatus(id, from, to, updatedAt) })
}

func (s *Store) ReplaceTickets(ctx context.Context, id string, tickets []domain.TicketLine, total domain.Money, updatedAt time.Time) error {
	return s.atomic(func(t *tx) error { return t.replaceTickets(id, tickets, total, updatedAt) })
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.atomic(func(t *tx) error { return t.delete(id) })
}

func (s *Store) FindStale(ctx context.Context, p domain.StalePredicate) ([]string, error) {
	var ids []string
	err := s.view(func(t *tx) error {
		var err error
		ids, err = t.FindStale(ctx, p)
		return err
	})
	return ids, err
}

func (s *Store) BulkDelete(ctx context.Context, ids []string, status domain.Status) (int64, error) {
	var n int64
	err := s.atomic(func(t *tx) error {
		var err error
		n, err = t.BulkDelete(ctx, ids, status)
		return err
	})
	return n, err
}

func (s *Store) BulkUpdateStatus(ctx context.Context, ids []string, from, to domain.Status, updatedAt time.Time) (int64, error) {
	var n int64
	err := s.atomic(func(t *tx) error {
		var err error
		n, err = t.BulkUpdateStatus(ctx, ids, from, to, updatedAt)
		return err
	})
	return n, err
}

func (s *Store) InTx(ctx context.Context, fn func(domain.PurgeStore) error) error {
	return s.atomic(func(t *tx) error { return fn(t) })
}

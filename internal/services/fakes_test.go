package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"eventregistration/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// sequenceTokens issues tok-1, tok-2, ... unless fixed is set.
type sequenceTokens struct {
	mu    sync.Mutex
	n     int
	fixed string
	err   error
}

func (f *sequenceTokens) Issue() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	if f.fixed != "" {
		return f.fixed, nil
	}
	f.n++
	return fmt.Sprintf("tok-%d", f.n), nil
}

type sentNotification struct {
	to   string
	data domain.RegistrationCreatedEmailData
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
	err  error
}

func (f *recordingNotifier) SendRegistrationCreated(ctx context.Context, to string, data *domain.RegistrationCreatedEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentNotification{to: to, data: *data})
	return f.err
}

// grantAll allows every occurrence action; capability decides via caps.
type grantAll struct{}

func (grantAll) Can(ctx context.Context, p *domain.Principal, occ *domain.EventOccurrence, action domain.Action) bool {
	return true
}

type capabilitySet map[string]bool

func (c capabilitySet) HasCapability(ctx context.Context, p *domain.Principal, capability string) bool {
	return c[p.ID+"|"+capability]
}

// denyActions refuses the listed actions.
type denyActions []domain.Action

func (d denyActions) Can(ctx context.Context, p *domain.Principal, occ *domain.EventOccurrence, action domain.Action) bool {
	for _, a := range d {
		if a == action {
			return false
		}
	}
	return true
}

type fakeRegistrationMetrics struct {
	created []domain.Status
	failed  int
}

func (m *fakeRegistrationMetrics) ObserveCreated(status domain.Status, notificationFailed bool) {
	m.created = append(m.created, status)
	if notificationFailed {
		m.failed++
	}
}

type fakePurgeMetrics struct {
	results []domain.PurgeResult
	errs    []error
}

func (m *fakePurgeMetrics) ObservePurge(result domain.PurgeResult, err error) {
	m.results = append(m.results, result)
	m.errs = append(m.errs, err)
}

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var errBoom = errors.New("boom")

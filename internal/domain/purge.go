package domain

import (
	"context"
	"time"
)

// DeadlineField names the event setting a stale-registration predicate measures against.
type DeadlineField string

const (
	DeadlineRegistrationTimeLimit DeadlineField = "registration_time_limit"
	DeadlineConfirmTimeLimit      DeadlineField = "confirm_time_limit"
)

// StalePredicate selects registrations in Status whose CreatedAt plus the event's
// Deadline seconds is strictly before AsOf. Events with a zero limit never match.
type StalePredicate struct {
	Status   Status
	Deadline DeadlineField
	AsOf     time.Time
}

// Matches evaluates the predicate for one registration of the given event.
func (p StalePredicate) Matches(reg *Registration, event *Event) bool {
	if reg.Status != p.Status || event == nil {
		return false
	}
	var limit int
	switch p.Deadline {
	case DeadlineRegistrationTimeLimit:
		limit = event.RegistrationTimeLimit
	case DeadlineConfirmTimeLimit:
		limit = event.ConfirmTimeLimit
	}
	if limit <= 0 {
		return false
	}
	return reg.CreatedAt.Add(time.Duration(limit) * time.Second).Before(p.AsOf)
}

// PurgeStore is the set-oriented side of the registration store used by the purge engine.
type PurgeStore interface {
	FindStale(ctx context.Context, p StalePredicate) ([]string, error)
	// BulkDelete removes the registrations (and their ticket lines) still in status.
	BulkDelete(ctx context.Context, ids []string, status Status) (int64, error)
	// BulkUpdateStatus moves the registrations still in from to status to.
	BulkUpdateStatus(ctx context.Context, ids []string, from, to Status, updatedAt time.Time) (int64, error)
	// InTx runs fn against a store bound to a single transaction; fn's error rolls it back.
	// fn may be run again after a rollback caused by a concurrent write.
	InTx(ctx context.Context, fn func(PurgeStore) error) error
}

// PurgeResult reports how many registrations a purge run changed.
// swagger:model PurgeResult
type PurgeResult struct {
	UnsubmittedDeleted  int64 `json:"unsubmitted_deleted"`
	UnconfirmedCanceled int64 `json:"unconfirmed_canceled"`
}

// PurgeService removes stale unsubmitted registrations and cancels stale unconfirmed ones.
type PurgeService interface {
	RunPurge(ctx context.Context) (PurgeResult, error)
	// Preview counts what RunPurge would change at this instant without mutating anything.
	Preview(ctx context.Context) (PurgeResult, error)
}

// Locker guards a purge run across processes. release must be called when ok is true.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, ok bool, err error)
}

// PurgeMetrics records purge outcomes.
type PurgeMetrics interface {
	ObservePurge(result PurgeResult, err error)
}

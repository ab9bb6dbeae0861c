package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"eventregistration/internal/domain"
)

// DefaultPurgeBatchSize bounds the number of IDs sent in one bulk statement.
const DefaultPurgeBatchSize = 500

type purgeService struct {
	store     domain.PurgeStore
	metrics   domain.PurgeMetrics
	batchSize int
	logger    *slog.Logger
	now       func() time.Time
}

// NewPurgeService creates the purge engine. A batchSize <= 0 uses DefaultPurgeBatchSize.
func NewPurgeService(store domain.PurgeStore, metrics domain.PurgeMetrics, batchSize int, logger *slog.Logger) domain.PurgeService {
	if batchSize <= 0 {
		batchSize = DefaultPurgeBatchSize
	}
	return &purgeService{
		store:     store,
		metrics:   metrics,
		batchSize: batchSize,
		logger:    logger,
		now:       time.Now,
	}
}

func stalePredicates(asOf time.Time) (unsubmitted, unconfirmed domain.StalePredicate) {
	unsubmitted = domain.StalePredicate{
		Status:   domain.StatusUnsubmitted,
		Deadline: domain.DeadlineRegistrationTimeLimit,
		AsOf:     asOf,
	}
	unconfirmed = domain.StalePredicate{
		Status:   domain.StatusUnconfirmed,
		Deadline: domain.DeadlineConfirmTimeLimit,
		AsOf:     asOf,
	}
	return unsubmitted, unconfirmed
}

// RunPurge deletes expired unsubmitted registrations, then cancels expired unconfirmed ones.
// Each pass commits on its own; a failed pass contributes zero to the result.
func (s *purgeService) RunPurge(ctx context.Context) (domain.PurgeResult, error) {
	asOf := s.now().UTC()
	unsubmitted, unconfirmed := stalePredicates(asOf)
	var result domain.PurgeResult
	var errs []error

	deleted, err := s.pass(ctx, unsubmitted, func(tx domain.PurgeStore, ids []string) (int64, error) {
		return tx.BulkDelete(ctx, ids, domain.StatusUnsubmitted)
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "purge unsubmitted registrations failed", "err", err)
		errs = append(errs, fmt.Errorf("delete unsubmitted registrations: %w", err))
	} else {
		result.UnsubmittedDeleted = deleted
	}

	canceled, err := s.pass(ctx, unconfirmed, func(tx domain.PurgeStore, ids []string) (int64, error) {
		return tx.BulkUpdateStatus(ctx, ids, domain.StatusUnconfirmed, domain.StatusCanceled, asOf)
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "cancel unconfirmed registrations failed", "err", err)
		errs = append(errs, fmt.Errorf("cancel unconfirmed registrations: %w", err))
	} else {
		result.UnconfirmedCanceled = canceled
	}

	var runErr error
	if len(errs) > 0 {
		runErr = fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, errors.Join(errs...))
	}
	if s.metrics != nil {
		s.metrics.ObservePurge(result, runErr)
	}
	s.logger.InfoContext(ctx, "purge finished",
		"as_of", asOf,
		"unsubmitted_deleted", result.UnsubmittedDeleted,
		"unconfirmed_canceled", result.UnconfirmedCanceled)
	return result, runErr
}

// pass selects the matching IDs and mutates them in batches inside one transaction.
func (s *purgeService) pass(ctx context.Context, p domain.StalePredicate, mutate func(domain.PurgeStore, []string) (int64, error)) (int64, error) {
	var affected int64
	err := s.store.InTx(ctx, func(tx domain.PurgeStore) error {
		// The store may replay fn after a rollback.
		affected = 0
		ids, err := tx.FindStale(ctx, p)
		if err != nil {
			return err
		}
		for _, batch := range lo.Chunk(ids, s.batchSize) {
			n, err := mutate(tx, batch)
			if err != nil {
				return err
			}
			affected += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func (s *purgeService) Preview(ctx context.Context) (domain.PurgeResult, error) {
	unsubmitted, unconfirmed := stalePredicates(s.now().UTC())
	deletable, err := s.store.FindStale(ctx, unsubmitted)
	if err != nil {
		return domain.PurgeResult{}, fmt.Errorf("find unsubmitted registrations: %w: %w", domain.ErrStorageUnavailable, err)
	}
	cancelable, err := s.store.FindStale(ctx, unconfirmed)
	if err != nil {
		return domain.PurgeResult{}, fmt.Errorf("find unconfirmed registrations: %w: %w", domain.ErrStorageUnavailable, err)
	}
	return domain.PurgeResult{
		UnsubmittedDeleted:  int64(len(deletable)),
		UnconfirmedCanceled: int64(len(cancelable)),
	}, nil
}

package services

import (
	"context"
	"log/slog"
	"time"

	"eventregistration/internal/domain"
)

// PurgeLockKey is the lock name shared by every process that runs the purge.
const PurgeLockKey = "eventregistration:purge"

// PurgeScheduler runs the purge once at start and then on every tick until its context ends.
type PurgeScheduler struct {
	purge    domain.PurgeService
	locker   domain.Locker
	interval time.Duration
	lockTTL  time.Duration
	logger   *slog.Logger
}

func NewPurgeScheduler(purge domain.PurgeService, locker domain.Locker, interval, lockTTL time.Duration, logger *slog.Logger) *PurgeScheduler {
	return &PurgeScheduler{
		purge:    purge,
		locker:   locker,
		interval: interval,
		lockTTL:  lockTTL,
		logger:   logger,
	}
}

// Run blocks until ctx is done. It always returns nil so it can sit in an errgroup beside the server.
func (s *PurgeScheduler) Run(ctx context.Context) error {
	if s.interval <= 0 {
		s.logger.Info("purge scheduler disabled")
		return nil
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *PurgeScheduler) tick(ctx context.Context) {
	release, ok, err := s.locker.TryLock(ctx, PurgeLockKey, s.lockTTL)
	if err != nil {
		s.logger.ErrorContext(ctx, "acquire purge lock", "err", err)
		return
	}
	if !ok {
		s.logger.InfoContext(ctx, "purge skipped, lock held elsewhere")
		return
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.logger.WarnContext(ctx, "release purge lock", "err", err)
		}
	}()

	if _, err := s.purge.RunPurge(ctx); err != nil {
		s.logger.ErrorContext(ctx, "scheduled purge failed", "err", err)
	}
}

// Package worker runs background maintenance for issued codes.
package worker

import (
	"context"
	"log/slog"
	"time"

	"vdcode/internal/domain"
	"vdcode/internal/logger"
)

// DefaultSweepInterval is used when Sweeper.Interval is not positive.
const DefaultSweepInterval = time.Minute

// ExpiredDeleter is the part of the repository the sweeper needs.
type ExpiredDeleter interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// Sweeper periodically deletes expired codes.
type Sweeper struct {
	repo     ExpiredDeleter
	clock    domain.Clock
	interval time.Duration
	log      *slog.Logger
}

// NewSweeper creates a sweeper. A nil log discards output.
func NewSweeper(repo ExpiredDeleter, clock domain.Clock, interval time.Duration, log *slog.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Sweeper{
		repo:     repo,
		clock:    clock,
		interval: interval,
		log:      log.With(logger.Component("sweeper")),
	}
}

// Interval returns the time between sweeps.
func (s *Sweeper) Interval() time.Duration { return s.interval }

// Run sweeps every interval until ctx is cancelled. Failed sweeps are
// logged and retried on the next tick.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.InfoContext(ctx, "sweeper started", slog.Duration("interval", s.interval))

	for {
		select {
		case <-ticker.C:
			_, _ = s.RunOnce(ctx)
		case <-ctx.Done():
			s.log.InfoContext(context.WithoutCancel(ctx), "sweeper stopped")
			return
		}
	}
}

// RunOnce deletes every code that expired before now.
func (s *Sweeper) RunOnce(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteExpired(ctx, s.clock.Now())
	if err != nil {
		s.log.ErrorContext(ctx, "sweeping expired codes", logger.Error(err))
		return 0, err
	}
	if deleted > 0 {
		s.log.InfoContext(ctx, "expired codes deleted", logger.Count(deleted))
	}
	return deleted, nil
}

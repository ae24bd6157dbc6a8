package session

import (
	"context"
	"log/slog"
)

// Sweeper is a scheduled task that drops expired sessions from a store.
// It fits job.WithScheduledTask.
type Sweeper struct {
	store    Store
	schedule string
	logger   *slog.Logger
}

// NewSweeper sweeps store on schedule, a cron expression or descriptor.
func NewSweeper(store Store, schedule string, logger *slog.Logger) *Sweeper {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Sweeper{store: store, schedule: schedule, logger: logger}
}

func (s *Sweeper) Name() string     { return "sweep_expired_sessions" }
func (s *Sweeper) Schedule() string { return s.schedule }

// Handle runs one sweep.
func (s *Sweeper) Handle(ctx context.Context) error {
	n, err := s.store.DeleteExpired(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.InfoContext(ctx, "expired sessions removed", slog.Int64("count", n))
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// IdleEvicter drops sessions not seen since cutoff.
type IdleEvicter interface {
	EvictIdle(cutoff time.Time) int
}

// SessionSweeper periodically evicts idle host sessions.
type SessionSweeper struct {
	schedule string
	maxIdle  time.Duration
	stores   map[string]IdleEvicter
	logger   *zap.Logger
	now      func() time.Time
}

// NewSessionSweeper creates a sweeper running on a cron schedule
// (e.g. "@every 5m") that evicts sessions idle for longer than maxIdle.
func NewSessionSweeper(schedule string, maxIdle time.Duration, logger *zap.Logger) *SessionSweeper {
	return &SessionSweeper{
		schedule: schedule,
		maxIdle:  maxIdle,
		stores:   make(map[string]IdleEvicter),
		logger:   logger,
		now:      time.Now,
	}
}

// Add registers a session store under name.
func (s *SessionSweeper) Add(name string, store IdleEvicter) {
	s.stores[name] = store
}

// Start runs the sweep on schedule until ctx is cancelled.
func (s *SessionSweeper) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	if _, err := c.AddFunc(s.schedule, func() { s.Sweep() }); err != nil {
		return fmt.Errorf("add sweep job %q: %w", s.schedule, err)
	}

	c.Start()
	s.logger.Info("session sweeper started",
		zap.String("schedule", s.schedule),
		zap.Duration("max_idle", s.maxIdle),
	)

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("session sweeper stopped")
	return nil
}

// Sweep evicts idle sessions from every store and returns the total evicted.
func (s *SessionSweeper) Sweep() int {
	cutoff := s.now().Add(-s.maxIdle)

	total := 0
	for name, store := range s.stores {
		n := store.EvictIdle(cutoff)
		if n > 0 {
			s.logger.Debug("idle sessions evicted",
				zap.String("store", name),
				zap.Int("count", n),
			)
		}
		total += n
	}
	return total
}

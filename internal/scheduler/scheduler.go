// Package scheduler drives the delivery engine on a fixed cadence. It
// replaces the naive perpetual-loop pattern with a cancellable recurring
// task: the loop runs until its context is cancelled and survives any
// failure inside a cycle.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/port"
)

// Scheduler invokes the delivery engine once per interval, forever.
type Scheduler struct {
	engine        port.DeliveryService
	interval      time.Duration
	filterEnabled bool
	logger        *slog.Logger
}

// New constructs a scheduler. A non-positive interval falls back to one
// minute.
func New(engine port.DeliveryService, interval time.Duration, filterEnabled bool, logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		engine:        engine,
		interval:      interval,
		filterEnabled: filterEnabled,
		logger:        logger,
	}
}

// Run executes the recurring loop until ctx is cancelled and returns
// ctx.Err(). Cycle errors and panics are logged and the loop continues:
// there is no failure mode that terminates it from the inside.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("distribution cycle panicked", slog.Any("panic", r))
		}
	}()

	sum := s.engine.RunCycle(ctx, port.CycleOptions{FilterEnabled: s.filterEnabled})
	attrs := []any{
		slog.String("outcome", sum.Outcome),
		slog.Int("attempted", sum.Attempted),
		slog.Int("succeeded", sum.Succeeded),
		slog.Int("failed", sum.Failed),
	}
	if sum.Error != "" {
		attrs = append(attrs, slog.String("error", sum.Error))
		s.logger.Warn("scheduled cycle finished with error", attrs...)
		return
	}
	s.logger.Debug("scheduled cycle finished", attrs...)
}

package service

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Sweeper enforces the pending moderation queue on a timer.
type Sweeper struct {
	actions  *Actions
	logger   *slog.Logger
	interval time.Duration
	enabled  bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewSweeper creates a Sweeper that runs Batch every interval.
func NewSweeper(actions *Actions, interval time.Duration, enabled bool, logger *slog.Logger) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		actions:  actions,
		logger:   logger,
		interval: interval,
		enabled:  enabled,
	}
}

// Start begins sweeping in a background goroutine.
// If disabled, this is a no-op.
func (s *Sweeper) Start(ctx context.Context) {
	if !s.enabled {
		s.logger.Info("moderation sweeper disabled")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()

	s.logger.Info("moderation sweeper started", slog.Duration("interval", s.interval))
}

// Stop cancels the background goroutine and waits for it to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
	s.logger.Info("moderation sweeper stopped")
}

func (s *Sweeper) run(ctx context.Context) {
	// Sweep immediately on startup
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	result, err := s.actions.Batch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Error("moderation sweep failed",
			slog.String("error", err.Error()),
		)
		return
	}

	if result.Processed > 0 {
		s.logger.Debug("moderation sweep finished",
			slog.Int("processed", result.Processed),
			slog.Int("succeeded", len(result.Succeeded)),
			slog.Int("failed", len(result.Failed)),
		)
	}
}

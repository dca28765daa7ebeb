package otp

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// DefaultSweepInterval is used when NewHousekeeping gets no interval.
const DefaultSweepInterval = 10 * time.Minute

// Housekeeping periodically prunes OTP entries that expired and were never
// verified, bounding memory under OTP request flooding. It is optional:
// without it expired entries linger until overwritten or verified.
type Housekeeping struct {
	Registry *Registry
	Logger   *slog.Logger
	Interval time.Duration

	// Grace keeps recently expired entries so a late attempt still gets
	// "expired" rather than "invalid".
	Grace time.Duration

	started bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewHousekeeping creates the sweeper. If interval is 0 or negative it
// defaults to DefaultSweepInterval.
func NewHousekeeping(reg *Registry, logger *slog.Logger, interval, grace time.Duration) *Housekeeping {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	return &Housekeeping{
		Registry: reg,
		Logger:   logger,
		Interval: interval,
		Grace:    grace,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop to shut it down.
func (h *Housekeeping) Start() {
	h.started = true
	go h.run()
	h.Logger.Info("otp housekeeping started", "interval", h.Interval, "grace", h.Grace)
}

// Stop shuts the worker down and waits for an in-progress sweep to finish.
// It is a no-op if Start was never called.
func (h *Housekeeping) Stop() {
	if !h.started {
		return
	}
	h.started = false
	close(h.stopCh)
	<-h.doneCh
	h.Logger.Info("otp housekeeping stopped")
}

func (h *Housekeeping) run() {
	defer close(h.doneCh)

	ticker := time.NewTicker(h.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.sweep()
		case <-h.stopCh:
			return
		}
	}
}

func (h *Housekeeping) sweep() {
	n, err := h.Registry.Sweep(context.Background(), h.Grace)
	switch {
	case errors.Is(err, ErrNoSweeper):
		h.Logger.Debug("otp store has no sweeper, skipping")
	case err != nil:
		h.Logger.Error("otp sweep failed", "error", err)
	default:
		h.Logger.Debug("otp sweep completed", "removed", n)
	}
}

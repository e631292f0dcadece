// Package tick drives the simulation at a fixed rate.
package tick

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// StepFunc advances the simulation by dt. Returning false ends the run.
type StepFunc func(dt time.Duration) bool

// Driver calls a StepFunc once per interval on a single goroutine. Every
// step receives the fixed interval as dt so runs are reproducible regardless
// of scheduling jitter. Driver implements server.Service.
type Driver struct {
	interval time.Duration
	step     StepFunc
	logger   *zap.Logger

	once sync.Once
	done chan struct{}

	mu    sync.Mutex
	ticks uint64
}

// NewDriver creates a stopped Driver.
//
// Precondition: interval > 0; step and logger must be non-nil.
func NewDriver(interval time.Duration, step StepFunc, logger *zap.Logger) *Driver {
	if interval <= 0 {
		panic("tick.NewDriver: interval must be > 0")
	}
	if step == nil || logger == nil {
		panic("tick.NewDriver: step and logger must not be nil")
	}
	return &Driver{
		interval: interval,
		step:     step,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Interval returns the fixed step length.
func (d *Driver) Interval() time.Duration { return d.interval }

// Ticks returns the number of steps run so far.
func (d *Driver) Ticks() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ticks
}

// Start steps until the StepFunc returns false, ctx is cancelled, or Stop is
// called.
//
// Postcondition: returns nil when the StepFunc ended the run, ctx.Err()
// on cancellation, and nil after Stop.
func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	d.logger.Info("tick driver started", zap.Duration("interval", d.interval))
	for {
		select {
		case <-ticker.C:
			d.mu.Lock()
			d.ticks++
			d.mu.Unlock()
			if !d.step(d.interval) {
				d.logger.Info("tick driver finished", zap.Uint64("ticks", d.Ticks()))
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		case <-d.done:
			return nil
		}
	}
}

// Stop ends Start. It is idempotent.
func (d *Driver) Stop() {
	d.once.Do(func() { close(d.done) })
}

// RunSteps calls step n times with the fixed interval without waiting, for
// headless replays faster than real time. It stops early when step returns
// false and reports the number of steps run.
func RunSteps(n int, interval time.Duration, step StepFunc) int {
	for i := 0; i < n; i++ {
		if !step(interval) {
			return i + 1
		}
	}
	return n
}

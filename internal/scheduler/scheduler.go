// Package scheduler owns the single per-frame tick loop. A Scheduler is
// constructed once per process and passed to whatever builds
// orchestrators; there is no process-global registration list.
package scheduler

import (
	"context"

	"github.com/vk/framegridgo/internal/ctxlog"
)

// Updateable is anything advanced once per frame. Update receives the
// elapsed time since the previous frame in seconds.
type Updateable interface {
	Update(dt float64)
}

// Scheduler ticks every registered updateable exactly once per host
// frame, in registration order, synchronously on the loop goroutine.
// Registration is append-only: an updateable is ticked for the remainder
// of the loop's life.
type Scheduler struct {
	updateables []Updateable

	prev    float64
	started bool
}

// New creates an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// RegisterUpdateable adds u to the tick set. Callers register once, at
// construction; duplicates are not filtered.
func (s *Scheduler) RegisterUpdateable(u Updateable) {
	s.updateables = append(s.updateables, u)
}

// Step advances the loop by one host frame. now is the host timestamp in
// milliseconds; the delta handed to updateables is (now-prev)/1000
// seconds, clamped to be non-negative, with the very first frame seen as
// dt = 0. A panic inside one updateable is recovered and logged so that
// neither sibling updateables nor the next frame are lost.
func (s *Scheduler) Step(ctx context.Context, now float64) {
	var dt float64
	if s.started {
		dt = (now - s.prev) / 1000
		if dt < 0 {
			dt = 0
		}
	}
	s.started = true
	s.prev = now

	for i, u := range s.updateables {
		s.tick(ctx, i, u, dt)
	}
}

func (s *Scheduler) tick(ctx context.Context, index int, u Updateable, dt float64) {
	defer func() {
		if r := recover(); r != nil {
			ctxlog.FromContext(ctx).Error("Updateable tick failed.", "index", index, "panic", r)
		}
	}()
	u.Update(dt)
}

// Run drives Step from the host's frame provider until the provider's
// channel closes or ctx is canceled. The loop itself never dies on an
// updateable fault; in production it runs for process lifetime.
func (s *Scheduler) Run(ctx context.Context, frames FrameProvider) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Scheduler loop starting.")
	ch := frames.Frames(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Debug("Scheduler loop stopped by context.")
			return ctx.Err()
		case now, ok := <-ch:
			if !ok {
				logger.Debug("Frame provider exhausted, scheduler loop finished.")
				return nil
			}
			s.Step(ctx, now)
		}
	}
}

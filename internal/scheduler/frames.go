package scheduler

import (
	"context"
	"time"
)

// FrameProvider abstracts the host's periodic frame callback. Frames
// yields monotonically increasing timestamps in milliseconds; the engine
// assumes rough cadence but no specific frequency. The channel closing
// ends the scheduler loop.
type FrameProvider interface {
	Frames(ctx context.Context) <-chan float64
}

// WallClock is a FrameProvider backed by a time.Ticker. With MaxFrames
// greater than zero the provider closes its channel after that many
// frames, which bounds a run; zero means unbounded.
type WallClock struct {
	FPS       float64
	MaxFrames int
}

// NewWallClock returns a wall-clock provider at the given frame rate.
func NewWallClock(fps float64, maxFrames int) *WallClock {
	if fps <= 0 {
		fps = 60
	}
	return &WallClock{FPS: fps, MaxFrames: maxFrames}
}

// Frames implements FrameProvider.
func (w *WallClock) Frames(ctx context.Context) <-chan float64 {
	interval := time.Duration(float64(time.Second) / w.FPS)
	ch := make(chan float64)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		start := time.Now()
		emitted := 0
		for {
			select {
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				ms := float64(t.Sub(start)) / float64(time.Millisecond)
				select {
				case ch <- ms:
				case <-ctx.Done():
					return
				}
				emitted++
				if w.MaxFrames > 0 && emitted >= w.MaxFrames {
					return
				}
			}
		}
	}()
	return ch
}

// Package testutil holds shared test doubles and harness helpers.
package testutil

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/vk/framegridgo/internal/backend"
	"github.com/vk/framegridgo/internal/scheduler"
	"github.com/vk/framegridgo/internal/videocontext"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// ManualFrames is a FrameProvider fed from a fixed list of millisecond
// timestamps, for driving the scheduler deterministically.
type ManualFrames struct {
	Stamps []float64
}

// Frames implements scheduler.FrameProvider.
func (m *ManualFrames) Frames(ctx context.Context) <-chan float64 {
	ch := make(chan float64, len(m.Stamps))
	go func() {
		defer close(ch)
		for _, s := range m.Stamps {
			select {
			case <-ctx.Done():
				return
			case ch <- s:
			}
		}
	}()
	return ch
}

// NewContext builds a VideoContext on no-op backends with a discard
// logger, plus the scheduler it registered with.
func NewContext(t *testing.T) (*videocontext.VideoContext, *scheduler.Scheduler) {
	t.Helper()
	sched := scheduler.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	vc := videocontext.New(backend.NoopGraphics{}, backend.NoopSurface{}, sched, videocontext.Options{
		Logger: logger,
	})
	return vc, sched
}

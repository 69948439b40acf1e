package app

import (
	"context"
	"errors"
	"time"

	"github.com/vk/framegridgo/internal/backend"
	"github.com/vk/framegridgo/internal/ctxlog"
	"github.com/vk/framegridgo/internal/hcl"
	"github.com/vk/framegridgo/internal/scheduler"
	"github.com/vk/framegridgo/internal/telemetry"
	"github.com/vk/framegridgo/internal/videocontext"
	"github.com/vk/framegridgo/internal/watcher"
)

// reloadDebounce collapses an editor's burst of write events into one
// composition reload.
const reloadDebounce = 300 * time.Millisecond

// Run executes the main application logic based on the App's configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if !a.config.Watch {
		return a.runOnce(ctx)
	}

	for {
		runCtx, cancel := context.WithCancel(ctx)
		reload := make(chan struct{}, 1)
		go func() {
			err := watcher.Watch(runCtx, a.config.CompositionPath, reloadDebounce, func(string) {
				select {
				case reload <- struct{}{}:
				default:
				}
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Warn("Watcher stopped.", "error", err)
			}
		}()

		done := make(chan error, 1)
		go func() { done <- a.runOnce(runCtx) }()

		select {
		case <-ctx.Done():
			cancel()
			<-done
			return ctx.Err()
		case err := <-done:
			cancel()
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		case <-reload:
			a.logger.Info("Composition changed, reloading.")
			cancel()
			<-done
		}
	}
}

// runOnce loads the composition, builds a fresh orchestrator and runs the
// scheduler until the frame provider is exhausted or ctx is canceled.
func (a *App) runOnce(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	// A fresh loader each run: the HCL parser caches files by name, which
	// would defeat --watch reloads.
	loader := hcl.NewLoader()
	comp, err := loader.LoadComposition(ctx, a.config.CompositionPath)
	if err != nil {
		return err
	}

	sched := scheduler.New()
	vc := videocontext.New(backend.NoopGraphics{}, backend.NoopSurface{}, sched, videocontext.Options{
		Logger: a.logger,
	})

	if err := buildComposition(ctx, vc, a.registry, comp); err != nil {
		return err
	}
	if err := vc.Graph().Validate(); err != nil {
		logger.Warn("Composition graph is structurally broken; playback will hold until repaired.", "error", err)
	}

	if a.config.TelemetryURL != "" {
		emitter, err := telemetry.NewEmitter(ctx, a.config.TelemetryURL, "/")
		if err != nil {
			logger.Warn("Telemetry disabled.", "error", err)
		} else {
			vc.OnStateChange(func(old, next videocontext.State) {
				emitter.StateChanged(old.String(), next.String(), vc.CurrentTime())
			})
		}
	}

	if a.config.Seek != "" {
		t, err := videocontext.ParseTime(a.config.Seek)
		if err != nil {
			return err
		}
		if err := vc.SetCurrentTime(t); err != nil {
			return err
		}
	}

	vc.Play()
	logger.Info("Playback started.",
		"duration", vc.Duration(),
		"frames", a.config.Frames,
		"fps", a.config.FPS)

	provider := scheduler.NewWallClock(a.config.FPS, a.config.Frames)
	if err := sched.Run(ctx, provider); err != nil {
		return err
	}

	logger.Info("Playback finished.",
		"state", vc.State().String(),
		"currentTime", vc.CurrentTime())
	return nil
}

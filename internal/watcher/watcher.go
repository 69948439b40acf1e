// Package watcher adds file-change notification for composition files,
// backing the CLI's --watch mode.
package watcher

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vk/framegridgo/internal/ctxlog"
)

// Watch observes path for writes and invokes onChange with the changed
// path, debounced so an editor's burst of events collapses into one
// callback. Watch blocks until ctx is canceled or the watcher fails.
func Watch(ctx context.Context, path string, debounce time.Duration, onChange func(path string)) error {
	logger := ctxlog.FromContext(ctx)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		return err
	}
	logger.Debug("Watching for changes.", "path", path)

	var pending string
	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = ev.Name
			timerC = time.After(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error.", "error", err)
		case <-timerC:
			timerC = nil
			logger.Info("Composition file changed.", "path", pending)
			onChange(pending)
		}
	}
}

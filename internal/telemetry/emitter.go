// Package telemetry publishes playback-state transitions to a socket.io
// endpoint. The emitter never runs on the tick thread: transitions are
// queued on a buffered channel and drained by a dedicated goroutine, and
// the queue drops on overflow rather than block a frame.
package telemetry

import (
	"context"
	"fmt"
	"net/url"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/framegridgo/internal/ctxlog"
)

// StateEvent is the payload emitted for each playback-state transition.
type StateEvent struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Time float64 `json:"time"`
}

// Emitter is a fire-and-forget socket.io publisher of state transitions.
type Emitter struct {
	io     *socket.Socket
	events chan StateEvent
}

// eventBuffer bounds the number of queued transitions. Past this the
// emitter drops rather than stall the tick thread.
const eventBuffer = 64

// NewEmitter connects a socket.io client to rawURL and starts the drain
// goroutine. The connection lives until ctx is canceled.
func NewEmitter(ctx context.Context, rawURL, namespace string) (*Emitter, error) {
	logger := ctxlog.FromContext(ctx).With("telemetry", rawURL)

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse telemetry URL: %w", err)
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		opts.SetPath(parsedURL.Path)
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(namespace, opts)

	io.On(types.EventName("connect"), func(...any) {
		logger.Info("Telemetry connected.", "namespace", namespace, "sid", io.Id())
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		logger.Warn("Telemetry connection error.", "error", errs)
	})

	e := &Emitter{
		io:     io,
		events: make(chan StateEvent, eventBuffer),
	}
	io.Connect()
	go e.loop(ctx)
	return e, nil
}

// StateChanged queues one transition for emission. Never blocks; the
// event is dropped when the queue is full.
func (e *Emitter) StateChanged(from, to string, at float64) {
	select {
	case e.events <- StateEvent{From: from, To: to, Time: at}:
	default:
	}
}

func (e *Emitter) loop(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	defer func() {
		logger.Debug("Disconnecting telemetry client.")
		e.io.Disconnect()
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-e.events:
			e.io.Emit("playback_state", map[string]any{
				"from": ev.From,
				"to":   ev.To,
				"time": ev.Time,
			})
		}
	}
}

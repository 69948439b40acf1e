// Package videocontext is the orchestration core: it owns the shared
// timeline, the playback state machine, the node collections and the
// render graph, and advances all of them once per scheduler tick.
//
// Everything here runs on the single tick thread. Node collections, the
// graph and the timeline are mutated only from ticks or from API calls
// made on that same thread, so no locking is needed.
package videocontext

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/vk/framegridgo/internal/backend"
	"github.com/vk/framegridgo/internal/node"
	"github.com/vk/framegridgo/internal/registry"
	"github.com/vk/framegridgo/internal/rendergraph"
	"github.com/vk/framegridgo/internal/scheduler"
)

// ErrInvalidTime is returned for a seek target that is not a finite
// number. The timeline is left untouched on failure.
var ErrInvalidTime = errors.New("invalid time value")

// defaultDestinationLayers is the number of layer input ports on the
// destination node when Options does not override it.
const defaultDestinationLayers = 8

type sourceEntry struct {
	n *node.SourceNode
	h rendergraph.Handle
}

type procEntry struct {
	n *node.ProcessingNode
	h rendergraph.Handle
}

// Options tune a VideoContext at construction.
type Options struct {
	// Logger receives state transitions and graph diagnostics. Defaults
	// to slog.Default().
	Logger *slog.Logger
	// DestinationLayers is the number of layer input ports on the
	// destination node. Defaults to 8.
	DestinationLayers int
}

// VideoContext orchestrates one composition: timeline, state machine,
// node collections and the render graph with its destination node.
type VideoContext struct {
	graphics backend.Graphics
	graph    *rendergraph.Graph
	logger   *slog.Logger

	dest  *node.DestinationNode
	destH rendergraph.Handle

	// sources and processing keep creation order; the render pass and
	// all per-tick source dispatch iterate them in that order.
	sources    []sourceEntry
	processing []procEntry

	state       State
	currentTime float64

	listeners []func(old, new State)
}

// New builds a VideoContext wired to the given collaborators and
// registers it with the scheduler. The context starts paused at time 0
// with an empty graph containing only the destination node.
func New(graphics backend.Graphics, surface backend.Surface, sched *scheduler.Scheduler, opts Options) *VideoContext {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	layers := opts.DestinationLayers
	if layers <= 0 {
		layers = defaultDestinationLayers
	}

	graph := rendergraph.New()
	dest := node.NewDestination(surface, layers)
	vc := &VideoContext{
		graphics: graphics,
		graph:    graph,
		logger:   logger,
		dest:     dest,
		destH:    graph.AddNode(dest),
		state:    Paused,
	}
	sched.RegisterUpdateable(vc)
	return vc
}

// Graph exposes the render graph for connection management.
func (vc *VideoContext) Graph() *rendergraph.Graph { return vc.graph }

// Destination returns the handle of the destination node.
func (vc *VideoContext) Destination() rendergraph.Handle { return vc.destH }

// State returns the current playback state.
func (vc *VideoContext) State() State { return vc.state }

// CurrentTime returns the timeline position in seconds.
func (vc *VideoContext) CurrentTime() float64 { return vc.currentTime }

// Duration is derived on demand: the maximum stop time over all source
// nodes, 0 when there are none. Sources determine it, never this type.
func (vc *VideoContext) Duration() float64 {
	max := 0.0
	for _, src := range vc.sources {
		if st := src.n.StopTime(); st > max {
			max = st
		}
	}
	return max
}

// OnStateChange registers a listener invoked on every state transition,
// synchronously on the tick thread. Listeners must not block.
func (vc *VideoContext) OnStateChange(fn func(old, new State)) {
	vc.listeners = append(vc.listeners, fn)
}

func (vc *VideoContext) setState(next State) {
	if next == vc.state {
		return
	}
	old := vc.state
	vc.state = next
	vc.logger.Debug("Playback state changed.", "from", old.String(), "to", next.String(), "currentTime", vc.currentTime)
	for _, fn := range vc.listeners {
		fn(old, next)
	}
}

// CreateSourceNode binds a media backend into the composition at the
// given timeline offset. It has no side effect on playback state.
func (vc *VideoContext) CreateSourceNode(media backend.Media, offset float64) (*node.SourceNode, rendergraph.Handle) {
	n := node.NewSource(media, offset)
	h := vc.graph.AddNode(n)
	vc.sources = append(vc.sources, sourceEntry{n: n, h: h})
	vc.logger.Debug("Source node created.", "handle", int(h), "offset", offset, "stopTime", n.StopTime())
	return n, h
}

// ProcessingSpec is an ad-hoc transform definition for
// CreateProcessingNode. Effects authored declaratively go through
// CreateEffectNode instead.
type ProcessingSpec struct {
	Vertex   string
	Fragment string
	Inputs   []node.Port
	Params   map[string]node.Param
}

// CreateProcessingNode compiles the shader pair and registers the stage
// with the render graph.
func (vc *VideoContext) CreateProcessingNode(spec ProcessingSpec) (*node.ProcessingNode, rendergraph.Handle, error) {
	program, err := vc.compile(spec.Vertex, spec.Fragment, spec.Inputs)
	if err != nil {
		return nil, 0, err
	}
	n := node.NewProcessing(program, spec.Inputs, spec.Params)
	h := vc.graph.AddNode(n)
	vc.processing = append(vc.processing, procEntry{n: n, h: h})
	return n, h, nil
}

// CreateEffectNode instantiates a registered effect definition: the
// shader pair and port list are fixed by the definition, parameters
// start at their declared defaults.
func (vc *VideoContext) CreateEffectNode(def *registry.Definition) (*node.ProcessingNode, rendergraph.Handle, error) {
	program, err := vc.compile(def.Vertex, def.Fragment, def.Inputs)
	if err != nil {
		return nil, 0, fmt.Errorf("effect %q: %w", def.Name, err)
	}
	n := node.NewEffect(program, def.Inputs, def.Params())
	h := vc.graph.AddNode(n)
	vc.processing = append(vc.processing, procEntry{n: n, h: h})
	vc.logger.Debug("Effect node created.", "effect", def.Name, "handle", int(h))
	return n, h, nil
}

func (vc *VideoContext) compile(vertex, fragment string, inputs []node.Port) (backend.Program, error) {
	names := make([]string, 0, len(inputs))
	for _, p := range inputs {
		names = append(names, p.Name)
	}
	program, err := vc.graphics.Compile(backend.ProgramSpec{
		Vertex:   vertex,
		Fragment: fragment,
		Inputs:   names,
	})
	if err != nil {
		return nil, fmt.Errorf("program compilation failed: %w", err)
	}
	return program, nil
}

// ReleaseSourceNode removes a source from the composition. The node must
// already be disconnected; there is no implicit cleanup of a connected
// node.
func (vc *VideoContext) ReleaseSourceNode(h rendergraph.Handle) error {
	if err := vc.graph.RemoveNode(h); err != nil {
		return err
	}
	for i, src := range vc.sources {
		if src.h == h {
			vc.sources = append(vc.sources[:i], vc.sources[i+1:]...)
			break
		}
	}
	return nil
}

// ReleaseProcessingNode removes a processing or effect node. The node
// must already be disconnected.
func (vc *VideoContext) ReleaseProcessingNode(h rendergraph.Handle) error {
	if err := vc.graph.RemoveNode(h); err != nil {
		return err
	}
	for i, p := range vc.processing {
		if p.h == h {
			vc.processing = append(vc.processing[:i], vc.processing[i+1:]...)
			break
		}
	}
	return nil
}

// Play commands every source to begin playing and moves the state to
// playing. Idempotent. A broken graph keeps its state until repaired.
func (vc *VideoContext) Play() {
	if vc.state == Broken {
		vc.logger.Warn("Play ignored: render graph is broken.")
		return
	}
	for _, src := range vc.sources {
		src.n.Play()
	}
	vc.setState(Playing)
}

// Pause commands every source to pause and moves the state to paused.
// Idempotent. A broken graph keeps its state until repaired.
func (vc *VideoContext) Pause() {
	if vc.state == Broken {
		vc.logger.Warn("Pause ignored: render graph is broken.")
		return
	}
	for _, src := range vc.sources {
		src.n.Pause()
	}
	vc.setState(Paused)
}

// SetCurrentTime seeks the whole composition to t seconds: every source
// receives the new absolute time and the timeline is repositioned. The
// playback state is untouched. A non-finite t fails with ErrInvalidTime
// and no effect.
func (vc *VideoContext) SetCurrentTime(t float64) error {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidTime, t)
	}
	for _, src := range vc.sources {
		src.n.Seek(t)
	}
	vc.currentTime = t
	vc.logger.Debug("Timeline repositioned.", "currentTime", t)
	return nil
}

// ParseTime converts a textual seek target to seconds. SetCurrentTime
// accepts only numbers; callers holding textual input convert here
// first.
func ParseTime(s string) (float64, error) {
	t, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return t, nil
}

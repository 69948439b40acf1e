package node

import (
	"github.com/vk/framegridgo/internal/backend"
)

// SourceNode binds an external media backend into the graph. It carries a
// timeline offset: the node's playable window is [offset, StopTime()].
type SourceNode struct {
	media  backend.Media
	offset float64

	// last is the most recent timeline position pushed by the
	// orchestrator, used to decide whether the node is inside its
	// playable window.
	last float64
}

// NewSource wraps a media backend as a graph node starting at the given
// timeline offset in seconds.
func NewSource(media backend.Media, offset float64) *SourceNode {
	return &SourceNode{media: media, offset: offset}
}

// Kind implements Node.
func (s *SourceNode) Kind() Kind { return KindSource }

// Inputs implements Node. A source has no inputs.
func (s *SourceNode) Inputs() []Port { return nil }

// Outputs implements Node.
func (s *SourceNode) Outputs() []Port { return []Port{{Name: "out"}} }

// Offset returns the node's start position on the shared timeline.
func (s *SourceNode) Offset() float64 { return s.offset }

// StopTime returns offset plus the media's intrinsic duration.
func (s *SourceNode) StopTime() float64 { return s.offset + s.media.Duration() }

// Ready reports whether the node can supply a frame at the last pushed
// timeline position. Outside its playable window a source never blocks
// playback, so it reports ready regardless of the media's state.
func (s *SourceNode) Ready() bool {
	if s.last < s.offset || s.last > s.StopTime() {
		return true
	}
	return s.media.Ready()
}

// Seek forwards an absolute timeline seek to the media backend.
func (s *SourceNode) Seek(t float64) {
	s.last = t
	s.media.Seek(t - s.offset)
}

// Play commands the media backend to begin playing.
func (s *SourceNode) Play() { s.media.Play() }

// Pause commands the media backend to pause.
func (s *SourceNode) Pause() { s.media.Pause() }

// Advance pushes the current timeline position to the node. It is called
// once per tick for buffering bookkeeping; no seek is issued here.
func (s *SourceNode) Advance(t float64) { s.last = t }

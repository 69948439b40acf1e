// Package media supplies the built-in media backends: a synthetic clip
// for headless runs and a scripted source for tests. Real decoders live
// behind the same backend.Media interface, outside this repository.
package media

import (
	"time"
)

// Synthetic is a clip with a fixed duration and a simulated load
// latency: it reports not-ready until ReadyAfter has elapsed on the wall
// clock since construction, which exercises the engine's stall path the
// way a slow network fetch would.
type Synthetic struct {
	uri      string
	duration float64
	readyAt  time.Time

	playing  bool
	position float64
}

// NewSynthetic creates a synthetic clip. duration and readyAfter are in
// seconds.
func NewSynthetic(uri string, duration, readyAfter float64) *Synthetic {
	return &Synthetic{
		uri:      uri,
		duration: duration,
		readyAt:  time.Now().Add(time.Duration(readyAfter * float64(time.Second))),
	}
}

// URI returns the identifier the clip was created with.
func (s *Synthetic) URI() string { return s.uri }

// Ready implements backend.Media.
func (s *Synthetic) Ready() bool { return !time.Now().Before(s.readyAt) }

// Seek implements backend.Media.
func (s *Synthetic) Seek(t float64) { s.position = t }

// Play implements backend.Media.
func (s *Synthetic) Play() { s.playing = true }

// Pause implements backend.Media.
func (s *Synthetic) Pause() { s.playing = false }

// Duration implements backend.Media.
func (s *Synthetic) Duration() float64 { return s.duration }

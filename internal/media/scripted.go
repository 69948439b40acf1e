package media

// Scripted is a test double for backend.Media: readiness is flipped by
// the test and every command is recorded for assertions.
type Scripted struct {
	duration float64
	ready    bool

	// Plays and Pauses count received commands; Seeks records every
	// seek target in order.
	Plays  int
	Pauses int
	Seeks  []float64
}

// NewScripted creates a scripted source with the given intrinsic
// duration and initial readiness.
func NewScripted(duration float64, ready bool) *Scripted {
	return &Scripted{duration: duration, ready: ready}
}

// SetReady flips the readiness the source will report from now on.
func (s *Scripted) SetReady(ready bool) { s.ready = ready }

// Ready implements backend.Media.
func (s *Scripted) Ready() bool { return s.ready }

// Seek implements backend.Media.
func (s *Scripted) Seek(t float64) { s.Seeks = append(s.Seeks, t) }

// Play implements backend.Media.
func (s *Scripted) Play() { s.Plays++ }

// Pause implements backend.Media.
func (s *Scripted) Pause() { s.Pauses++ }

// Duration implements backend.Media.
func (s *Scripted) Duration() float64 { return s.duration }

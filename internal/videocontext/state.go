package videocontext

// State is the single context-wide playback state. All states except
// Broken are recomputed every tick from current inputs; Broken is sticky
// until the render graph validates again.
type State int

const (
	// Paused halts time advance; sources are commanded to pause each tick.
	Paused State = iota
	// Playing advances the timeline by dt each tick.
	Playing
	// Stalled means at least one source is not ready; time does not
	// advance and ready sources are held back so they cannot drift ahead.
	Stalled
	// Ended means currentTime passed the derived duration.
	Ended
	// Broken means the render graph is structurally invalid (cycle or
	// missing required connection).
	Broken
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case Paused:
		return "paused"
	case Playing:
		return "playing"
	case Stalled:
		return "stalled"
	case Ended:
		return "ended"
	case Broken:
		return "broken"
	default:
		return "unknown"
	}
}

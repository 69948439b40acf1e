// Package backend declares the interfaces the engine expects from its
// external collaborators: the media decode/load layer behind each source
// node and the graphics layer behind each processing stage. The engine
// never reaches past these interfaces; decoding and draw-call mechanics
// belong to the implementations.
package backend

// Media is the decode/load capability set behind a single source node.
// Ready must be a cheap, side-effect-free poll. Seek may be expensive and
// is only issued on explicit user seeks, never every frame. Play, Pause
// and Seek are fire-and-forget; the engine does not wait for an
// acknowledgement before continuing its tick.
type Media interface {
	// Ready reports whether the media can supply a frame right now
	// without blocking.
	Ready() bool
	// Seek repositions the media to the given absolute time in seconds.
	Seek(t float64)
	// Play starts or resumes decoding.
	Play()
	// Pause suspends decoding.
	Pause()
	// Duration returns the intrinsic playable length in seconds.
	Duration() float64
}

// Program is one compiled transform stage. Render performs a single draw
// against whatever inputs are currently bound; binding and uniform upload
// mechanics live entirely inside the implementation.
type Program interface {
	Render()
}

// ProgramSpec is the declarative definition handed to a Graphics
// implementation for compilation.
type ProgramSpec struct {
	// Vertex and Fragment hold the stage program sources.
	Vertex   string
	Fragment string
	// Inputs names the texture input ports, in declaration order.
	Inputs []string
}

// Graphics compiles declarative program specs into renderable programs.
type Graphics interface {
	Compile(spec ProgramSpec) (Program, error)
}

// Surface is the presentation target owned by the destination node.
// Present makes the composed frame visible; surface acquisition is the
// host's concern.
type Surface interface {
	// Clear establishes the base composite for a new frame.
	Clear()
	// Present makes the composed frame visible.
	Present()
}

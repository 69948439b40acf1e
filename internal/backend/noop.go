package backend

// NoopGraphics accepts every spec and compiles it to a program whose
// Render does nothing. It stands in for a real graphics layer in tests
// and in headless CLI runs.
type NoopGraphics struct{}

// Compile implements Graphics.
func (NoopGraphics) Compile(spec ProgramSpec) (Program, error) {
	return noopProgram{}, nil
}

type noopProgram struct{}

func (noopProgram) Render() {}

// NoopSurface is a presentation target that discards every frame.
type NoopSurface struct{}

// Clear implements Surface.
func (NoopSurface) Clear() {}

// Present implements Surface.
func (NoopSurface) Present() {}

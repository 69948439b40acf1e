package testutil

import (
	"fmt"

	"github.com/vk/framegridgo/internal/backend"
)

// RenderLog records render-pass events in order, for asserting the
// destination-first, creation-order pass.
type RenderLog struct {
	Events []string
}

func (l *RenderLog) add(e string) { l.Events = append(l.Events, e) }

// RecordingGraphics compiles every spec into a program that logs its
// creation sequence number when rendered.
type RecordingGraphics struct {
	Log      *RenderLog
	compiled int
}

// Compile implements backend.Graphics.
func (g *RecordingGraphics) Compile(spec backend.ProgramSpec) (backend.Program, error) {
	g.compiled++
	return &recordingProgram{log: g.Log, name: fmt.Sprintf("program_%d", g.compiled)}, nil
}

type recordingProgram struct {
	log  *RenderLog
	name string
}

func (p *recordingProgram) Render() { p.log.add(p.name) }

// RecordingSurface logs clear and present events.
type RecordingSurface struct {
	Log *RenderLog
}

// Clear implements backend.Surface.
func (s *RecordingSurface) Clear() { s.Log.add("clear") }

// Present implements backend.Surface.
func (s *RecordingSurface) Present() { s.Log.add("present") }

package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/framegridgo/internal/backend"
	"github.com/vk/framegridgo/internal/node"
	"github.com/vk/framegridgo/internal/registry"
	"github.com/vk/framegridgo/internal/schema"
	"github.com/vk/framegridgo/internal/scheduler"
	"github.com/vk/framegridgo/internal/videocontext"
)

func newTestContext() *videocontext.VideoContext {
	sched := scheduler.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return videocontext.New(backend.NoopGraphics{}, backend.NoopSurface{}, sched, videocontext.Options{
		Logger: logger,
	})
}

func crossfadeRegistry() *registry.Registry {
	reg := registry.New()
	reg.Register(&registry.Definition{
		Name:     "crossfade",
		Vertex:   "v",
		Fragment: "f",
		Inputs: []node.Port{
			{Name: "u_image_a", Required: true},
			{Name: "u_image_b", Required: true},
		},
	})
	return reg
}

func validComposition() *schema.Composition {
	return &schema.Composition{
		Sources: []*schema.SourceBlock{
			{Name: "clip_a", URI: "synthetic://a", Duration: 10},
			{Name: "clip_b", URI: "synthetic://b", Offset: 5, Duration: 10},
		},
		EffectNodes: []*schema.EffectNodeBlock{
			{Name: "fade", Effect: "crossfade"},
		},
		Connections: []*schema.ConnectionBlock{
			{From: "clip_a", To: "fade", Input: "u_image_a"},
			{From: "clip_b", To: "fade", Input: "u_image_b"},
			{From: "fade", To: "destination", Input: "layer_1"},
		},
	}
}

func TestBuildComposition(t *testing.T) {
	vc := newTestContext()
	err := buildComposition(context.Background(), vc, crossfadeRegistry(), validComposition())
	require.NoError(t, err)

	// destination + two sources + one effect
	assert.Equal(t, 4, vc.Graph().NodeCount())
	assert.NoError(t, vc.Graph().Validate())
	assert.Equal(t, 15.0, vc.Duration())
	assert.Len(t, vc.Graph().Connections(), 3)
}

func TestBuildCompositionErrors(t *testing.T) {
	t.Run("unknown effect", func(t *testing.T) {
		comp := validComposition()
		comp.EffectNodes[0].Effect = "dne"
		err := buildComposition(context.Background(), newTestContext(), crossfadeRegistry(), comp)
		assert.ErrorContains(t, err, `unknown effect "dne"`)
	})

	t.Run("duplicate instance name", func(t *testing.T) {
		comp := validComposition()
		comp.EffectNodes[0].Name = "clip_a"
		err := buildComposition(context.Background(), newTestContext(), crossfadeRegistry(), comp)
		assert.ErrorContains(t, err, "duplicate instance name")
	})

	t.Run("destination is reserved", func(t *testing.T) {
		comp := validComposition()
		comp.Sources[0].Name = "destination"
		err := buildComposition(context.Background(), newTestContext(), crossfadeRegistry(), comp)
		assert.ErrorContains(t, err, "duplicate instance name")
	})

	t.Run("connection references unknown instance", func(t *testing.T) {
		comp := validComposition()
		comp.Connections[0].From = "dne"
		err := buildComposition(context.Background(), newTestContext(), crossfadeRegistry(), comp)
		assert.ErrorContains(t, err, `unknown instance "dne"`)
	})

	t.Run("connection to unknown port", func(t *testing.T) {
		comp := validComposition()
		comp.Connections[0].Input = "dne"
		err := buildComposition(context.Background(), newTestContext(), crossfadeRegistry(), comp)
		assert.Error(t, err)
	})
}

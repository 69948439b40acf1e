package hcl_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/framegridgo/internal/hcl"
)

const sampleComposition = `
source "clip_a" {
  uri      = "synthetic://a"
  duration = 10
}

source "clip_b" {
  uri         = "synthetic://b"
  offset      = 5
  duration    = 10
  ready_after = 1.5
}

effect_node "fade" {
  effect = "crossfade"
}

connection {
  from  = "clip_a"
  to    = "fade"
  input = "u_image_a"
}

connection {
  from   = "fade"
  output = "out"
  to     = "destination"
  input  = "layer_1"
}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadComposition(t *testing.T) {
	loader := hcl.NewLoader()
	comp, err := loader.LoadComposition(context.Background(), writeFile(t, "demo.hcl", sampleComposition))
	require.NoError(t, err)

	require.Len(t, comp.Sources, 2)
	assert.Equal(t, "clip_a", comp.Sources[0].Name)
	assert.Equal(t, 0.0, comp.Sources[0].Offset)
	assert.Equal(t, 5.0, comp.Sources[1].Offset)
	assert.Equal(t, 1.5, comp.Sources[1].ReadyAfter)

	require.Len(t, comp.EffectNodes, 1)
	assert.Equal(t, "crossfade", comp.EffectNodes[0].Effect)

	require.Len(t, comp.Connections, 2)
	assert.Equal(t, "destination", comp.Connections[1].To)
	// output defaults to empty and is resolved by the builder.
	assert.Equal(t, "", comp.Connections[0].Output)
}

func TestLoadCompositionErrors(t *testing.T) {
	loader := hcl.NewLoader()

	t.Run("missing file", func(t *testing.T) {
		_, err := loader.LoadComposition(context.Background(), filepath.Join(t.TempDir(), "dne.hcl"))
		assert.Error(t, err)
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := loader.LoadComposition(context.Background(), writeFile(t, "bad.hcl", `source "x" {`))
		assert.ErrorContains(t, err, "failed to parse")
	})

	t.Run("unknown block", func(t *testing.T) {
		_, err := loader.LoadComposition(context.Background(), writeFile(t, "bad.hcl", `widget "x" {}`))
		assert.ErrorContains(t, err, "failed to decode")
	})

	t.Run("missing required attribute", func(t *testing.T) {
		_, err := loader.LoadComposition(context.Background(), writeFile(t, "bad.hcl", `source "x" {}`))
		assert.ErrorContains(t, err, "failed to decode")
	})
}

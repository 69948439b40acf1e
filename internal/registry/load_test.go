package registry_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/framegridgo/internal/hcl"
	"github.com/vk/framegridgo/internal/node"
	"github.com/vk/framegridgo/internal/registry"
)

const sampleManifest = `
effect "crossfade" {
  description = "blend"
  vertex      = "void main() {}"
  fragment    = "void main() {}"

  input "u_image_a" {}
  input "u_image_b" {}

  property "mix" {
    type    = number
    default = 0.5
  }

  property "weights" {
    type    = list(number)
    stage   = "vertex"
    kind    = "attribute"
    default = [1, 2, 3]
  }

  property "texture_ref" {
    type = string
  }
}
`

func translate(t *testing.T, src string) (*registry.Definition, error) {
	t.Helper()
	loader := hcl.NewLoader()
	manifest, err := loader.ParseManifestSource(context.Background(), []byte(src), "test.hcl")
	require.NoError(t, err)
	require.Len(t, manifest.Effects, 1)
	return registry.TranslateEffect(context.Background(), manifest.Effects[0])
}

func TestTranslateEffect(t *testing.T) {
	def, err := translate(t, sampleManifest)
	require.NoError(t, err)

	assert.Equal(t, "crossfade", def.Name)
	assert.Equal(t, "blend", def.Description)
	require.Len(t, def.Inputs, 2)
	assert.Equal(t, node.Port{Name: "u_image_a", Required: true}, def.Inputs[0])

	require.Len(t, def.Properties, 3)

	mix := def.Properties[0]
	assert.Equal(t, "mix", mix.Name)
	assert.True(t, mix.Type.Equals(cty.Number))
	assert.Equal(t, node.Uniform, mix.Kind)
	assert.Equal(t, node.FragmentStage, mix.Stage)
	assert.True(t, mix.Default.RawEquals(cty.NumberFloatVal(0.5)))

	weights := def.Properties[1]
	assert.True(t, weights.Type.Equals(cty.List(cty.Number)))
	assert.Equal(t, node.Attribute, weights.Kind)
	assert.Equal(t, node.VertexStage, weights.Stage)

	// No default declared: a typed null.
	ref := def.Properties[2]
	assert.True(t, ref.Type.Equals(cty.String))
	assert.True(t, ref.Default.IsNull())
}

func TestTranslateEffectErrors(t *testing.T) {
	cases := []struct {
		name     string
		manifest string
		wantErr  string
	}{
		{
			name: "default not convertible to declared type",
			manifest: `
effect "bad" {
  vertex   = "v"
  fragment = "f"
  property "mix" {
    type    = number
    default = "almost certainly not a number"
  }
}`,
			wantErr: "default is not a number",
		},
		{
			name: "unknown stage",
			manifest: `
effect "bad" {
  vertex   = "v"
  fragment = "f"
  property "mix" {
    type  = number
    stage = "geometry"
  }
}`,
			wantErr: "unknown stage",
		},
		{
			name: "unknown kind",
			manifest: `
effect "bad" {
  vertex   = "v"
  fragment = "f"
  property "mix" {
    type = number
    kind = "varying"
  }
}`,
			wantErr: "unknown kind",
		},
		{
			name: "property requires concrete type",
			manifest: `
effect "bad" {
  vertex   = "v"
  fragment = "f"
  property "mix" {
    type = any
  }
}`,
			wantErr: "concrete type",
		},
		{
			name: "duplicate input port",
			manifest: `
effect "bad" {
  vertex   = "v"
  fragment = "f"
  input "u_image" {}
  input "u_image" {}
}`,
			wantErr: "duplicate input port",
		},
		{
			name: "duplicate property",
			manifest: `
effect "bad" {
  vertex   = "v"
  fragment = "f"
  property "mix" { type = number }
  property "mix" { type = number }
}`,
			wantErr: "duplicate property",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := translate(t, tc.manifest)
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestRegisterPanicsOnDuplicate(t *testing.T) {
	r := registry.New()
	r.Register(&registry.Definition{Name: "crossfade"})

	assert.Panics(t, func() {
		r.Register(&registry.Definition{Name: "crossfade"})
	})
}

func TestDefinitionParams(t *testing.T) {
	def, err := translate(t, sampleManifest)
	require.NoError(t, err)

	params := def.Params()
	require.Len(t, params, 3)
	assert.True(t, params["mix"].Value.RawEquals(cty.NumberFloatVal(0.5)))
	assert.Equal(t, []string{"u_image_a", "u_image_b"}, def.InputNames())
}

func TestLoadManifestsRecursively(t *testing.T) {
	t.Run("loads every manifest under the path", func(t *testing.T) {
		dir := t.TempDir()
		sub := filepath.Join(dir, "crossfade")
		require.NoError(t, os.Mkdir(sub, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(sub, "manifest.hcl"), []byte(sampleManifest), 0o644))

		r := registry.New()
		require.NoError(t, r.LoadManifestsRecursively(context.Background(), dir))
		assert.Equal(t, 1, r.Len())

		def, ok := r.Lookup("crossfade")
		require.True(t, ok)
		assert.Len(t, def.Inputs, 2)
	})

	t.Run("duplicate effect across files is a config error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), []byte(sampleManifest), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.hcl"), []byte(sampleManifest), 0o644))

		r := registry.New()
		err := r.LoadManifestsRecursively(context.Background(), dir)
		require.Error(t, err)
		assert.ErrorContains(t, err, "defined more than once")
	})

	t.Run("empty path is not an error", func(t *testing.T) {
		r := registry.New()
		require.NoError(t, r.LoadManifestsRecursively(context.Background(), t.TempDir()))
		assert.Equal(t, 0, r.Len())
	})
}

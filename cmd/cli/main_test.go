package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// A manifest with a syntax error guarantees a panic during startup
	// inside app.NewApp().
	invalidHCL := `
		effect "broken" {
			fragment =
	`
	tempDir := t.TempDir()
	modulesDir := filepath.Join(tempDir, "modules")
	require.NoError(t, os.MkdirAll(modulesDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(modulesDir, "manifest.hcl"), []byte(invalidHCL), 0o600))

	args := []string{"-modules-path", modulesDir, "-frames", "1", filepath.Join(tempDir, "comp.hcl")}
	out := &bytes.Buffer{}

	runErr := run(out, args)

	require.Error(t, runErr, "run() should have returned an error after recovering from a panic")
	require.Contains(t, runErr.Error(), "application startup panicked")
	require.Contains(t, runErr.Error(), "failed to load effect manifests")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	args := []string{"-h"}
	out := &bytes.Buffer{}

	err := run(out, args)

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	err := run(out, args)

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_EndToEnd(t *testing.T) {
	t.Parallel()

	manifest := `
effect "invert" {
  vertex   = "void main() {}"
  fragment = "void main() {}"

  input "u_image" {}
}
`
	composition := `
source "clip" {
  uri      = "synthetic://clip"
  duration = 0.1
}

effect_node "inv" {
  effect = "invert"
}

connection {
  from  = "clip"
  to    = "inv"
  input = "u_image"
}

connection {
  from  = "inv"
  to    = "destination"
  input = "layer_1"
}
`
	tempDir := t.TempDir()
	modulesDir := filepath.Join(tempDir, "modules")
	require.NoError(t, os.MkdirAll(modulesDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(modulesDir, "manifest.hcl"), []byte(manifest), 0o600))
	compPath := filepath.Join(tempDir, "comp.hcl")
	require.NoError(t, os.WriteFile(compPath, []byte(composition), 0o600))

	args := []string{"-modules-path", modulesDir, "-frames", "3", "-fps", "120", compPath}
	out := &bytes.Buffer{}

	require.NoError(t, run(out, args))
}

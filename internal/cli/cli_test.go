package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/framegridgo/internal/cli"
)

func TestParseDefaults(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := cli.Parse([]string{"-c", "examples/crossfade.hcl"}, &out)
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, "examples/crossfade.hcl", cfg.CompositionPath)
	assert.Equal(t, "modules", cfg.ModulesPath)
	assert.Equal(t, 0, cfg.Frames)
	assert.Equal(t, 60.0, cfg.FPS)
	assert.Empty(t, cfg.Seek)
	assert.Empty(t, cfg.TelemetryURL)
	assert.False(t, cfg.Watch)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParsePathSources(t *testing.T) {
	var out bytes.Buffer

	t.Run("long flag wins over positional", func(t *testing.T) {
		cfg, exit, err := cli.Parse([]string{"-composition", "a.hcl", "b.hcl"}, &out)
		require.NoError(t, err)
		require.False(t, exit)
		assert.Equal(t, "a.hcl", cfg.CompositionPath)
	})

	t.Run("positional argument", func(t *testing.T) {
		cfg, exit, err := cli.Parse([]string{"b.hcl"}, &out)
		require.NoError(t, err)
		require.False(t, exit)
		assert.Equal(t, "b.hcl", cfg.CompositionPath)
	})
}

func TestParseNoArgsPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := cli.Parse(nil, &out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParseHelpFlag(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := cli.Parse([]string{"-h"}, &out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
}

func TestParseValidation(t *testing.T) {
	var out bytes.Buffer

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad log format", []string{"-c", "a.hcl", "-log-format", "xml"}, "invalid log-format"},
		{"bad log level", []string{"-c", "a.hcl", "-log-level", "verbose"}, "invalid log-level"},
		{"zero fps", []string{"-c", "a.hcl", "-fps", "0"}, "invalid fps"},
		{"negative frames", []string{"-c", "a.hcl", "-frames", "-1"}, "invalid frames"},
		{"unknown flag", []string{"-c", "a.hcl", "-dne"}, "flag provided but not defined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := cli.Parse(tt.args, &out)
			var exitErr *cli.ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tt.want)
		})
	}
}

func TestParseCaseInsensitiveLevels(t *testing.T) {
	var out bytes.Buffer
	cfg, _, err := cli.Parse([]string{"-c", "a.hcl", "-log-level", "DEBUG", "-log-format", "Text"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

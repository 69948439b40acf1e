// Package app wires the engine together: logger, effect registry,
// composition loading, orchestrator construction and the scheduler run.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/framegridgo/internal/ctxlog"
	"github.com/vk/framegridgo/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	config   *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and a
// registry populated from the effect manifests.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if cfg.ModulesPath != "" {
		if err := reg.LoadManifestsRecursively(ctx, cfg.ModulesPath); err != nil {
			// A failure to load effect definitions is a fatal startup error.
			panic(fmt.Errorf("failed to load effect manifests: %w", err))
		}
	}
	logger.Debug("Effect registry populated.", "effects", reg.Names())

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   cfg,
	}
}

// Registry returns the application's effect registry. This is primarily
// for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

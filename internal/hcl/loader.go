// Package hcl loads the engine's declarative inputs: composition files
// and effect manifest bodies, plus the HCL-type-expression translation
// shared with the registry.
package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/framegridgo/internal/ctxlog"
	"github.com/vk/framegridgo/internal/schema"
)

// Loader parses HCL files. A single Loader may be reused across files;
// the underlying parser caches sources for diagnostics.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a Loader with a fresh parser.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// LoadComposition parses one composition file into its schema form.
func (l *Loader) LoadComposition(ctx context.Context, path string) (*schema.Composition, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading composition file.", "path", path)

	file, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse composition %s: %w", path, diags)
	}

	var comp schema.Composition
	if diags := gohcl.DecodeBody(file.Body, nil, &comp); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode composition %s: %w", path, diags)
	}

	logger.Debug("Composition loaded.",
		"sources", len(comp.Sources),
		"effect_nodes", len(comp.EffectNodes),
		"connections", len(comp.Connections))
	return &comp, nil
}

// LoadManifest parses one effect manifest file into its schema form.
func (l *Loader) LoadManifest(ctx context.Context, path string) (*schema.Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading effect manifest.", "path", path)

	file, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, diags)
	}

	var manifest schema.Manifest
	if diags := gohcl.DecodeBody(file.Body, nil, &manifest); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", path, diags)
	}
	return &manifest, nil
}

// ParseManifestSource decodes a manifest from an in-memory buffer. Used
// by tests and anywhere manifests are not file-backed.
func (l *Loader) ParseManifestSource(ctx context.Context, src []byte, filename string) (*schema.Manifest, error) {
	file, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", filename, diags)
	}
	var manifest schema.Manifest
	if diags := gohcl.DecodeBody(file.Body, nil, &manifest); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", filename, diags)
	}
	return &manifest, nil
}

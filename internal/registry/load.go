package registry

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/framegridgo/internal/ctxlog"
	"github.com/vk/framegridgo/internal/fsutil"
	"github.com/vk/framegridgo/internal/hcl"
	"github.com/vk/framegridgo/internal/node"
	"github.com/vk/framegridgo/internal/schema"
)

// LoadManifestsRecursively walks the given path for .hcl manifest files
// and registers every effect they define. A duplicate effect name across
// manifest files is a configuration error, not a panic.
func (r *Registry) LoadManifestsRecursively(ctx context.Context, manifestsPath string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Registry loading effect manifests...", "path", manifestsPath)

	filePaths, err := fsutil.FindFilesByExtension(manifestsPath, ".hcl")
	if err != nil {
		logger.Error("Failed to walk manifests directory", "path", manifestsPath, "error", err)
		return err
	}

	if len(filePaths) == 0 {
		logger.Warn("No .hcl manifest files found in path", "path", manifestsPath)
		return nil
	}

	loader := hcl.NewLoader()
	loaded := 0
	for _, filePath := range filePaths {
		manifest, err := loader.LoadManifest(ctx, filePath)
		if err != nil {
			return err
		}
		for _, block := range manifest.Effects {
			def, err := TranslateEffect(ctx, block)
			if err != nil {
				return fmt.Errorf("manifest %s: %w", filePath, err)
			}
			if _, exists := r.Lookup(def.Name); exists {
				return fmt.Errorf("manifest %s: effect %q defined more than once", filePath, def.Name)
			}
			r.Register(def)
			loaded++
		}
		logger.Debug("Loaded effect definitions from manifest.", "file", filePath)
	}

	logger.Info("Registry loaded successfully.", "effect_definitions_loaded", loaded)
	return nil
}

// TranslateEffect converts a decoded effect block into a validated
// Definition: type expressions become cty types and property defaults
// are evaluated and converted to their declared type.
func TranslateEffect(ctx context.Context, block *schema.EffectBlock) (*Definition, error) {
	def := &Definition{
		Name:        block.Name,
		Description: block.Description,
		Vertex:      block.Vertex,
		Fragment:    block.Fragment,
	}

	seen := make(map[string]struct{})
	for _, in := range block.Inputs {
		if _, dup := seen[in.Name]; dup {
			return nil, fmt.Errorf("effect %q: duplicate input port %q", block.Name, in.Name)
		}
		seen[in.Name] = struct{}{}
		def.Inputs = append(def.Inputs, node.Port{Name: in.Name, Required: !in.Optional})
	}

	seenProps := make(map[string]struct{})
	for _, prop := range block.Properties {
		if _, dup := seenProps[prop.Name]; dup {
			return nil, fmt.Errorf("effect %q: duplicate property %q", block.Name, prop.Name)
		}
		seenProps[prop.Name] = struct{}{}

		translated, err := translateProperty(ctx, block.Name, prop)
		if err != nil {
			return nil, err
		}
		def.Properties = append(def.Properties, translated)
	}

	return def, nil
}

func translateProperty(ctx context.Context, effectName string, prop *schema.PropertyBlock) (Property, error) {
	ctyType, err := hcl.TypeExprToCtyType(ctx, prop.Type)
	if err != nil {
		return Property{}, fmt.Errorf("effect %q, property %q: %w", effectName, prop.Name, err)
	}
	if ctyType.Equals(cty.DynamicPseudoType) {
		return Property{}, fmt.Errorf("effect %q, property %q: properties require a concrete type", effectName, prop.Name)
	}

	kind, err := parseParamKind(prop.Kind)
	if err != nil {
		return Property{}, fmt.Errorf("effect %q, property %q: %w", effectName, prop.Name, err)
	}
	stage, err := parseStage(prop.Stage)
	if err != nil {
		return Property{}, fmt.Errorf("effect %q, property %q: %w", effectName, prop.Name, err)
	}

	defaultVal := cty.NullVal(ctyType)
	if prop.Default != nil {
		raw, diags := prop.Default.Value(nil)
		if diags.HasErrors() {
			return Property{}, fmt.Errorf("effect %q, property %q: failed to evaluate default: %w", effectName, prop.Name, diags)
		}
		// Range checks only apply to concrete values; a default written as
		// null stays null at the declared type.
		if !raw.IsNull() {
			converted, err := convert.Convert(raw, ctyType)
			if err != nil {
				return Property{}, fmt.Errorf("effect %q, property %q: default is not a %s: %w",
					effectName, prop.Name, ctyType.FriendlyName(), err)
			}
			defaultVal = converted
		}
	}

	return Property{
		Name:    prop.Name,
		Type:    ctyType,
		Kind:    kind,
		Stage:   stage,
		Default: defaultVal,
	}, nil
}

func parseParamKind(s string) (node.ParamKind, error) {
	switch s {
	case "", "uniform":
		return node.Uniform, nil
	case "attribute":
		return node.Attribute, nil
	default:
		return node.Uniform, fmt.Errorf("unknown kind %q: must be 'uniform' or 'attribute'", s)
	}
}

func parseStage(s string) (node.Stage, error) {
	switch s {
	case "", "fragment":
		return node.FragmentStage, nil
	case "vertex":
		return node.VertexStage, nil
	default:
		return node.FragmentStage, fmt.Errorf("unknown stage %q: must be 'vertex' or 'fragment'", s)
	}
}

package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/framegridgo/internal/ctxlog"
	"github.com/vk/framegridgo/internal/media"
	"github.com/vk/framegridgo/internal/registry"
	"github.com/vk/framegridgo/internal/rendergraph"
	"github.com/vk/framegridgo/internal/schema"
	"github.com/vk/framegridgo/internal/videocontext"
)

// destinationName is the reserved instance name for the destination node
// in composition connection blocks.
const destinationName = "destination"

// buildComposition populates a fresh VideoContext from a decoded
// composition: synthetic sources, effect instances, then connections.
func buildComposition(ctx context.Context, vc *videocontext.VideoContext, reg *registry.Registry, comp *schema.Composition) error {
	logger := ctxlog.FromContext(ctx)

	handles := map[string]rendergraph.Handle{
		destinationName: vc.Destination(),
	}

	for _, src := range comp.Sources {
		if _, exists := handles[src.Name]; exists {
			return fmt.Errorf("duplicate instance name %q", src.Name)
		}
		clip := media.NewSynthetic(src.URI, src.Duration, src.ReadyAfter)
		_, h := vc.CreateSourceNode(clip, src.Offset)
		handles[src.Name] = h
	}

	for _, en := range comp.EffectNodes {
		if _, exists := handles[en.Name]; exists {
			return fmt.Errorf("duplicate instance name %q", en.Name)
		}
		def, ok := reg.Lookup(en.Effect)
		if !ok {
			return fmt.Errorf("effect_node %q: unknown effect %q (registered: %s)",
				en.Name, en.Effect, strings.Join(reg.Names(), ", "))
		}
		_, h, err := vc.CreateEffectNode(def)
		if err != nil {
			return fmt.Errorf("effect_node %q: %w", en.Name, err)
		}
		handles[en.Name] = h
	}

	for _, conn := range comp.Connections {
		from, ok := handles[conn.From]
		if !ok {
			return fmt.Errorf("connection: unknown instance %q", conn.From)
		}
		to, ok := handles[conn.To]
		if !ok {
			return fmt.Errorf("connection: unknown instance %q", conn.To)
		}
		output := conn.Output
		if output == "" {
			output = "out"
		}
		if err := vc.Graph().Connect(from, output, to, conn.Input); err != nil {
			return fmt.Errorf("connection %s.%s -> %s.%s: %w", conn.From, output, conn.To, conn.Input, err)
		}
	}

	logger.Debug("Composition built.",
		"sources", len(comp.Sources),
		"effect_nodes", len(comp.EffectNodes),
		"connections", len(comp.Connections))
	return nil
}

// Package schema declares the HCL block structures for the two
// declarative file kinds the engine consumes: effect definition manifests
// and composition files.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// --- Effect definition manifests ---

// Manifest is the top-level structure of an effect manifest file.
type Manifest struct {
	Effects []*EffectBlock `hcl:"effect,block"`
}

// EffectBlock is one declarative effect definition: a fixed shader pair,
// named texture input ports and typed properties.
type EffectBlock struct {
	Name        string           `hcl:"name,label"`
	Description string           `hcl:"description,optional"`
	Vertex      string           `hcl:"vertex"`
	Fragment    string           `hcl:"fragment"`
	Inputs      []*InputBlock    `hcl:"input,block"`
	Properties  []*PropertyBlock `hcl:"property,block"`
}

// InputBlock declares one texture input port. Ports are required unless
// marked optional.
type InputBlock struct {
	Name     string `hcl:"name,label"`
	Optional bool   `hcl:"optional,optional"`
}

// PropertyBlock declares one typed parameter. Type is an HCL type
// expression (number, string, list(number)); Default, when present, is
// evaluated and converted to that type at load time.
type PropertyBlock struct {
	Name    string         `hcl:"name,label"`
	Type    hcl.Expression `hcl:"type"`
	Kind    string         `hcl:"kind,optional"`
	Stage   string         `hcl:"stage,optional"`
	Default hcl.Expression `hcl:"default,optional"`
}

// --- Composition files ---

// Composition is the top-level structure of a composition file: the
// sources, effect instances and connections describing one graph.
type Composition struct {
	Sources     []*SourceBlock     `hcl:"source,block"`
	EffectNodes []*EffectNodeBlock `hcl:"effect_node,block"`
	Connections []*ConnectionBlock `hcl:"connection,block"`
}

// SourceBlock places one media source on the timeline.
type SourceBlock struct {
	Name   string  `hcl:"instance_name,label"`
	URI    string  `hcl:"uri"`
	Offset float64 `hcl:"offset,optional"`
	// Duration is the intrinsic playable length for synthetic sources
	// that have no probed duration of their own.
	Duration float64 `hcl:"duration,optional"`
	// ReadyAfter simulates load latency in seconds for synthetic sources.
	ReadyAfter float64 `hcl:"ready_after,optional"`
}

// EffectNodeBlock instantiates a registered effect definition.
type EffectNodeBlock struct {
	Name   string `hcl:"instance_name,label"`
	Effect string `hcl:"effect"`
}

// ConnectionBlock wires (from, output) to (to, input). The reserved name
// "destination" targets the destination node.
type ConnectionBlock struct {
	From   string `hcl:"from"`
	Output string `hcl:"output,optional"`
	To     string `hcl:"to"`
	Input  string `hcl:"input"`
}

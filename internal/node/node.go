// Package node defines the closed set of node kinds that populate the
// render graph, together with the capability interfaces the orchestrator
// dispatches on: Source for media-backed nodes and Renderer for anything
// that draws during the per-frame render pass. Variant selection is an
// explicit Kind tag rather than a type hierarchy.
package node

type Kind int

const (
	// KindSource is a media-backed node with a playable time range.
	KindSource Kind = iota
	// KindProcessing is a GPU transform stage with declared ports and
	// typed parameters.
	KindProcessing
	// KindEffect is a processing node whose shader pair and ports come
	// from a declarative effect definition.
	KindEffect
	// KindDestination is the terminal sink that composites and presents.
	KindDestination
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindSource:
		return "source"
	case KindProcessing:
		return "processing"
	case KindEffect:
		return "effect"
	case KindDestination:
		return "destination"
	default:
		return "unknown"
	}
}

// Port is one named connection point on a node. A Required input port
// must be connected for the graph to be structurally valid.
type Port struct {
	Name     string
	Required bool
}

// Node is the minimal contract the render graph needs from every node.
// Port names are unique within a node and fixed for its lifetime.
type Node interface {
	Kind() Kind
	// Inputs returns the declared input ports, in declaration order.
	Inputs() []Port
	// Outputs returns the declared output ports, in declaration order.
	Outputs() []Port
}

// Source is the capability set of a media-backed node. Ready must be a
// cheap poll; Seek may be expensive and is issued sparingly.
type Source interface {
	Node
	Seek(t float64)
	Play()
	Pause()
	Ready() bool
	// StopTime is the node's offset plus its intrinsic duration.
	StopTime() float64
}

// Renderer is any node that draws during the per-frame render pass.
type Renderer interface {
	Node
	Render()
}

package node

import (
	"fmt"

	"github.com/vk/framegridgo/internal/backend"
)

// DestinationNode is the terminal sink of the graph. It renders first in
// every per-tick pass, establishing the base composite surface, and its
// surface makes the finished frame visible.
type DestinationNode struct {
	surface backend.Surface
	inputs  []Port
}

// NewDestination creates the sink with the given number of layer input
// ports (layer_1 .. layer_n). Layer ports are optional: an empty
// composition is valid and simply presents the cleared surface.
func NewDestination(surface backend.Surface, layers int) *DestinationNode {
	inputs := make([]Port, 0, layers)
	for i := 1; i <= layers; i++ {
		inputs = append(inputs, Port{Name: fmt.Sprintf("layer_%d", i)})
	}
	return &DestinationNode{surface: surface, inputs: inputs}
}

// Kind implements Node.
func (d *DestinationNode) Kind() Kind { return KindDestination }

// Inputs implements Node.
func (d *DestinationNode) Inputs() []Port { return d.inputs }

// Outputs implements Node. The sink has no outputs.
func (d *DestinationNode) Outputs() []Port { return nil }

// Render implements Renderer: clear the composite surface and present it.
// Connected layers draw into the surface when their own Render runs.
func (d *DestinationNode) Render() {
	d.surface.Clear()
	d.surface.Present()
}

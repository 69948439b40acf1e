// Package rendergraph maintains the directed graph of compositing nodes:
// an arena of nodes addressed by stable handles and the set of
// port-to-port connections between them. The graph governs connectivity
// and execution order only; it never touches node parameter values.
package rendergraph

import (
	"errors"
	"fmt"

	"github.com/vk/framegridgo/internal/node"
)

var (
	// ErrUnknownNode is returned when a handle does not address a live node.
	ErrUnknownNode = errors.New("unknown node")
	// ErrUnknownPort is returned when a port name is not declared on the node.
	ErrUnknownPort = errors.New("unknown port")
	// ErrPortOccupied is returned when an input port already has an
	// incoming connection. Inputs accept at most one; outputs fan out.
	ErrPortOccupied = errors.New("input port already connected")
	// ErrNotConnected is returned when disconnecting an edge that does not exist.
	ErrNotConnected = errors.New("connection does not exist")
	// ErrStillConnected is returned when removing a node that still has edges.
	// Nodes must be explicitly disconnected before release.
	ErrStillConnected = errors.New("node still connected")
)

// Handle is a stable, opaque reference to a node in the graph arena.
// Handles are allocated in creation order and never reused.
type Handle int

// Connection is one directed edge: (from node, output port) feeds
// (to node, input port).
type Connection struct {
	From   Handle
	Output string
	To     Handle
	Input  string
}

// Graph is the arena of nodes plus the edge set. It is not safe for
// concurrent use; all mutation happens on the single tick thread.
type Graph struct {
	// nodes is the arena. A released slot holds nil; handles are indices.
	nodes []node.Node
	edges []Connection
}

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{}
}

// AddNode places a node in the arena and returns its handle.
func (g *Graph) AddNode(n node.Node) Handle {
	g.nodes = append(g.nodes, n)
	return Handle(len(g.nodes) - 1)
}

// Node returns the node addressed by h, if it is live.
func (g *Graph) Node(h Handle) (node.Node, bool) {
	if h < 0 || int(h) >= len(g.nodes) || g.nodes[h] == nil {
		return nil, false
	}
	return g.nodes[h], true
}

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int {
	count := 0
	for _, n := range g.nodes {
		if n != nil {
			count++
		}
	}
	return count
}

// RemoveNode releases the node addressed by h. The node must have been
// fully disconnected first; there is no implicit cleanup of a connected
// node.
func (g *Graph) RemoveNode(h Handle) error {
	if _, ok := g.Node(h); !ok {
		return fmt.Errorf("remove: %w: %d", ErrUnknownNode, h)
	}
	for _, e := range g.edges {
		if e.From == h || e.To == h {
			return fmt.Errorf("remove node %d: %w", h, ErrStillConnected)
		}
	}
	g.nodes[h] = nil
	return nil
}

// Connect creates the edge (from, output) -> (to, input). The output port
// may already feed other inputs; the input port must be free.
func (g *Graph) Connect(from Handle, output string, to Handle, input string) error {
	fromNode, ok := g.Node(from)
	if !ok {
		return fmt.Errorf("connect: source: %w: %d", ErrUnknownNode, from)
	}
	toNode, ok := g.Node(to)
	if !ok {
		return fmt.Errorf("connect: destination: %w: %d", ErrUnknownNode, to)
	}
	if !hasPort(fromNode.Outputs(), output) {
		return fmt.Errorf("connect: output %q: %w", output, ErrUnknownPort)
	}
	if !hasPort(toNode.Inputs(), input) {
		return fmt.Errorf("connect: input %q: %w", input, ErrUnknownPort)
	}
	for _, e := range g.edges {
		if e.To == to && e.Input == input {
			return fmt.Errorf("connect: %q on node %d: %w", input, to, ErrPortOccupied)
		}
	}
	g.edges = append(g.edges, Connection{From: from, Output: output, To: to, Input: input})
	return nil
}

// Disconnect removes the exact edge (from, output) -> (to, input).
func (g *Graph) Disconnect(from Handle, output string, to Handle, input string) error {
	for i, e := range g.edges {
		if e.From == from && e.Output == output && e.To == to && e.Input == input {
			g.edges = append(g.edges[:i], g.edges[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("disconnect: %w", ErrNotConnected)
}

// DisconnectAll removes every edge touching the node addressed by h and
// returns the number removed.
func (g *Graph) DisconnectAll(h Handle) int {
	kept := g.edges[:0]
	removed := 0
	for _, e := range g.edges {
		if e.From == h || e.To == h {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	g.edges = kept
	return removed
}

// Connections returns a copy of the current edge set.
func (g *Graph) Connections() []Connection {
	return append([]Connection(nil), g.edges...)
}

func hasPort(ports []node.Port, name string) bool {
	for _, p := range ports {
		if p.Name == name {
			return true
		}
	}
	return false
}

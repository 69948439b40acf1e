package rendergraph

import (
	"errors"
	"fmt"
)

var (
	// ErrCycle indicates the edge set contains a cycle; no execution
	// order exists.
	ErrCycle = errors.New("cycle detected")
	// ErrMissingInput indicates a required input port has no incoming
	// connection.
	ErrMissingInput = errors.New("required input unconnected")
)

// ExecutionOrder returns a topological ordering of the live nodes: every
// node appears after all nodes feeding its inputs, with ties among
// independent nodes broken by creation order. A structurally broken graph
// (a cycle, or a required input left unconnected) yields an error and no
// partial order.
func (g *Graph) ExecutionOrder() ([]Handle, error) {
	for h, n := range g.nodes {
		if n == nil {
			continue
		}
		for _, p := range n.Inputs() {
			if !p.Required {
				continue
			}
			if !g.inputConnected(Handle(h), p.Name) {
				return nil, fmt.Errorf("node %d (%s): input %q: %w", h, n.Kind(), p.Name, ErrMissingInput)
			}
		}
	}

	alive := 0
	indegree := make([]int, len(g.nodes))
	for _, n := range g.nodes {
		if n != nil {
			alive++
		}
	}
	for _, e := range g.edges {
		indegree[e.To]++
	}

	// Kahn's algorithm, re-scanning for the lowest-handle ready node each
	// round so ties always resolve to creation order. Graphs here are
	// small; quadratic is fine.
	emitted := make([]bool, len(g.nodes))
	order := make([]Handle, 0, alive)
	for len(order) < alive {
		next := Handle(-1)
		for h, n := range g.nodes {
			if n == nil || emitted[h] || indegree[h] > 0 {
				continue
			}
			next = Handle(h)
			break
		}
		if next < 0 {
			return nil, fmt.Errorf("%w among remaining %d node(s)", ErrCycle, alive-len(order))
		}
		emitted[next] = true
		order = append(order, next)
		for _, e := range g.edges {
			if e.From == next {
				indegree[e.To]--
			}
		}
	}
	return order, nil
}

// Validate reports the graph's structural health without returning an
// order. A nil result means a full execution order exists.
func (g *Graph) Validate() error {
	_, err := g.ExecutionOrder()
	return err
}

func (g *Graph) inputConnected(h Handle, input string) bool {
	for _, e := range g.edges {
		if e.To == h && e.Input == input {
			return true
		}
	}
	return false
}

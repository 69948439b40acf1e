package node

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/framegridgo/internal/backend"
)

// ProcessingNode is a pure GPU transform stage: a compiled program,
// declared input ports and a typed parameter mapping. It has no concept
// of time; it renders only when the orchestrator triggers it.
type ProcessingNode struct {
	kind    Kind
	program backend.Program
	inputs  []Port
	params  map[string]Param
}

// NewProcessing constructs a transform stage from an already compiled
// program. Input ports and parameter types are fixed from here on.
func NewProcessing(program backend.Program, inputs []Port, params map[string]Param) *ProcessingNode {
	return newTransform(KindProcessing, program, inputs, params)
}

// NewEffect is identical to NewProcessing except for the node kind; the
// distinction records that the definition came from a declarative effect
// manifest rather than an ad-hoc shader pair.
func NewEffect(program backend.Program, inputs []Port, params map[string]Param) *ProcessingNode {
	return newTransform(KindEffect, program, inputs, params)
}

func newTransform(kind Kind, program backend.Program, inputs []Port, params map[string]Param) *ProcessingNode {
	copied := make(map[string]Param, len(params))
	for name, p := range params {
		copied[name] = p
	}
	return &ProcessingNode{
		kind:    kind,
		program: program,
		inputs:  append([]Port(nil), inputs...),
		params:  copied,
	}
}

// Kind implements Node.
func (p *ProcessingNode) Kind() Kind { return p.kind }

// Inputs implements Node.
func (p *ProcessingNode) Inputs() []Port { return p.inputs }

// Outputs implements Node.
func (p *ProcessingNode) Outputs() []Port { return []Port{{Name: "out"}} }

// Param returns the named parameter, if declared.
func (p *ProcessingNode) Param(name string) (Param, bool) {
	param, ok := p.params[name]
	return param, ok
}

// SetParam assigns a new value to a declared parameter. The value must
// have the parameter's declared type; on any error the parameter is left
// unchanged.
func (p *ProcessingNode) SetParam(name string, v cty.Value) error {
	param, ok := p.params[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	if err := param.checkAssign(name, v); err != nil {
		return err
	}
	param.Value = v
	p.params[name] = param
	return nil
}

// Render implements Renderer by issuing one draw of the compiled program.
func (p *ProcessingNode) Render() { p.program.Render() }

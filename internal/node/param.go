package node

import (
	"errors"
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

var (
	// ErrUnknownParam is returned when a parameter name was never declared.
	ErrUnknownParam = errors.New("unknown parameter")
	// ErrParamType is returned when a value would change a parameter's
	// declared type. Parameter types are fixed at creation.
	ErrParamType = errors.New("parameter type mismatch")
)

// ParamKind distinguishes how a parameter is bound in the shader stage.
type ParamKind int

const (
	Uniform ParamKind = iota
	Attribute
)

// String returns the lower-case name of the param kind.
func (k ParamKind) String() string {
	if k == Attribute {
		return "attribute"
	}
	return "uniform"
}

// Stage is the shader stage a parameter targets.
type Stage int

const (
	FragmentStage Stage = iota
	VertexStage
)

// String returns the lower-case name of the stage.
func (s Stage) String() string {
	if s == VertexStage {
		return "vertex"
	}
	return "fragment"
}

// Param is one typed parameter on a processing node. Value is a cty value:
// a numeric scalar (cty.Number), a vector (cty.List(cty.Number)) or a
// texture reference (cty.String). The value's type never changes after
// construction.
type Param struct {
	Value cty.Value
	Kind  ParamKind
	Stage Stage
}

// checkAssign validates that v preserves the param's declared type.
func (p Param) checkAssign(name string, v cty.Value) error {
	if !v.Type().Equals(p.Value.Type()) {
		return fmt.Errorf("parameter %q: cannot assign %s to %s: %w",
			name, v.Type().FriendlyName(), p.Value.Type().FriendlyName(), ErrParamType)
	}
	return nil
}

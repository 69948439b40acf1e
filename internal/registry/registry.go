// Package registry is the catalog of declarative effect definitions. It
// maps effect names used in composition files to the shader pairs, port
// lists and typed properties loaded from manifest files, and validates
// the manifests at startup so that a bad definition fails the process
// before any graph is built.
package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/framegridgo/internal/node"
)

// Property is one typed parameter declared by an effect definition.
type Property struct {
	Name    string
	Type    cty.Type
	Kind    node.ParamKind
	Stage   node.Stage
	Default cty.Value
}

// Definition is a fully translated effect definition: everything needed
// to construct an effect node.
type Definition struct {
	Name        string
	Description string
	Vertex      string
	Fragment    string
	Inputs      []node.Port
	Properties  []Property
}

// Params builds the initial parameter map for a new node instance from
// the definition's property defaults.
func (d *Definition) Params() map[string]node.Param {
	params := make(map[string]node.Param, len(d.Properties))
	for _, p := range d.Properties {
		params[p.Name] = node.Param{Value: p.Default, Kind: p.Kind, Stage: p.Stage}
	}
	return params
}

// InputNames returns the declared input port names in order.
func (d *Definition) InputNames() []string {
	names := make([]string, 0, len(d.Inputs))
	for _, p := range d.Inputs {
		names = append(names, p.Name)
	}
	return names
}

// Registry holds the effect definitions for a single application instance.
type Registry struct {
	definitions map[string]*Definition
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{definitions: make(map[string]*Definition)}
}

// Register adds a definition. Registering the same name twice is a
// programmer error and panics, matching the startup-time contract of the
// rest of the registry.
func (r *Registry) Register(def *Definition) {
	if _, exists := r.definitions[def.Name]; exists {
		panic(fmt.Sprintf("effect definition with name '%s' already registered", def.Name))
	}
	slog.Debug("Registering effect definition.", "name", def.Name)
	r.definitions[def.Name] = def
}

// Lookup returns the definition registered under name, if any.
func (r *Registry) Lookup(name string) (*Definition, bool) {
	def, ok := r.definitions[name]
	return def, ok
}

// Names returns the registered effect names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.definitions))
	for name := range r.definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	return len(r.definitions)
}

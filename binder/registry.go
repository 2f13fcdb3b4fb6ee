package binder

import (
	"sync"

	"github.com/wippyai/compound-bind/binder/internal/types"
	"github.com/wippyai/compound-bind/errors"
)

// EnumRegistry owns the enumeration definitions of one session. It is the
// only shared mutable state in the binder; a definition registered under a
// name is returned for every later request with the same name, never
// duplicated. The registry starts empty and is discarded with the session.
type EnumRegistry struct {
	mu   sync.Mutex
	defs map[string]*types.EnumDefinition
}

// NewEnumRegistry creates an empty registry.
func NewEnumRegistry() *EnumRegistry {
	return &EnumRegistry{defs: make(map[string]*types.EnumDefinition)}
}

// Resolve returns the definition registered under name, registering a new
// one if absent. With strict checking, an existing definition whose legal
// values differ from the requested ones fails; with strict disabled the
// existing definition is returned as-is.
func (r *EnumRegistry) Resolve(name string, values []string, strict bool) (*types.EnumDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if def, ok := r.defs[name]; ok {
		if strict && !def.Compatible(values) {
			return nil, errors.IncompatibleEnum(name, def.Values, values)
		}
		return def, nil
	}

	def := &types.EnumDefinition{
		Name:   name,
		Values: append([]string(nil), values...),
	}
	r.defs[name] = def
	return def, nil
}

// Lookup returns the definition registered under name, if any.
func (r *EnumRegistry) Lookup(name string) (*types.EnumDefinition, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	def, ok := r.defs[name]
	return def, ok
}

// Names returns the registered definition names in no particular order.
func (r *EnumRegistry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	return names
}

// Len reports the number of registered definitions.
func (r *EnumRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.defs)
}

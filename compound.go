package compoundbind

import (
	"github.com/wippyai/compound-bind/binder"
	"github.com/wippyai/compound-bind/engine"
)

// Commonly used types, re-exported so simple programs only import the
// root package.
type (
	Binder             = binder.Binder
	CompoundDescriptor = binder.CompoundDescriptor
	FieldMapping       = binder.FieldMapping
	EnumDefinition     = binder.EnumDefinition
	EnumValue          = binder.EnumValue
	EnumArray          = binder.EnumArray
	Hints              = binder.Hints

	Backend = engine.Backend
	Handle  = engine.Handle
	Session = engine.Session
)

// Open creates a binder over a fresh session on the given backend. Close
// the session when done; it closes the backend if the backend supports it.
func Open(b engine.Backend) *binder.Binder {
	return binder.New(engine.NewSession(b))
}

// NewHints creates an empty set of binding overrides.
func NewHints() *binder.Hints {
	return binder.NewHints()
}

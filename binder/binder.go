package binder

import (
	"sync"

	"github.com/wippyai/compound-bind/engine"
)

// Binder maps on-disk compound types onto in-memory record types. It owns
// the enumeration registry for its session and a per-record-type field
// lookup cache. All backend access is serialized through the session.
type Binder struct {
	session *engine.Session
	enums   *EnumRegistry
	fields  sync.Map // reflect.Type -> map[string]fieldEntry
}

// New creates a binder over a session. The enumeration registry starts
// empty and lives until the session is closed.
func New(session *engine.Session) *Binder {
	return &Binder{
		session: session,
		enums:   NewEnumRegistry(),
	}
}

// Session returns the binder's backend session.
func (b *Binder) Session() *engine.Session {
	return b.session
}

// Enums returns the binder's enumeration registry.
func (b *Binder) Enums() *EnumRegistry {
	return b.enums
}

// ResolveEnum resolves or registers a named enumeration definition. With
// strict checking enabled, a registered definition with different legal
// values fails instead of being returned.
func (b *Binder) ResolveEnum(name string, values []string, strict bool) (*EnumDefinition, error) {
	return b.enums.Resolve(name, values, strict)
}

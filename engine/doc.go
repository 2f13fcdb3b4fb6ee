// Package engine defines the opaque storage backend boundary and the
// session model used by the binder.
//
// A Backend owns type objects and hands out opaque handles to them.
// Handles minted during an introspection call (member types, array element
// types, enum base types) are tracked by a Scope and released when the
// call completes, on every exit path.
//
// A Session serializes all backend access: no two operations issue
// overlapping backend calls. Higher layers treat session lifetime as the
// lifetime of their shared registry state.
//
// MemoryBackend is an in-process Backend implementation over a declared
// type graph. It backs the test suite and the inspect tool, and doubles as
// the reference semantics for handle accounting.
package engine

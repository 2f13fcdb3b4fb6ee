// Package binder maps compound storage types onto Go record types.
//
// A Binder introspects a compound type through a backend session
// (Describe), producing a descriptor whose member offsets are the packed
// running sum of preceding member sizes. Bind then resolves every member
// against a target record type, validating that each bound field can
// represent its member's on-disk kind and attaching enumeration
// definitions from the session-scoped registry. The resulting mappings
// drive the Encoder and Decoder, which move records in and out of packed
// buffers without touching the backend again.
//
// Targets may be struct types (fields match by `bind` tag or name), maps
// (members bind dynamically by name), or nil. Hints override individual
// member bindings without affecting inference for the rest.
package binder

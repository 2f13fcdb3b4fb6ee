// Package types holds the value objects of the binder: compound
// descriptors, member classifications, field mappings, and enumeration
// definitions. Everything here is immutable once built except the
// registry-owned EnumDefinition, which is shared and must not be mutated.
package types

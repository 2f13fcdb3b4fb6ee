package types

import (
	"reflect"
	"sort"

	"github.com/wippyai/compound-bind/engine"
)

// AnonymousTypeName is reported for compound types with no committed name.
const AnonymousTypeName = "UNKNOWN"

// TypeInfo is the semantic classification of one member's storage type.
// For array members, Class and Size describe the element type and Dims
// carries the fixed extents; an empty Dims means scalar.
type TypeInfo struct {
	Class   engine.Class
	Size    int
	Signed  bool
	Dims    []int
	Variant engine.Variant
}

// TotalSize is the member's storage footprint: element size multiplied by
// all array extents.
func (ti TypeInfo) TotalSize() int {
	n := ti.Size
	for _, d := range ti.Dims {
		n *= d
	}
	return n
}

// IsScalar reports whether the member holds a single element. A single
// dimension of extent 1 counts as scalar.
func (ti TypeInfo) IsScalar() bool {
	return len(ti.Dims) == 0 || (len(ti.Dims) == 1 && ti.Dims[0] == 1)
}

// Member is one named slot of a compound type.
type Member struct {
	Name       string
	Offset     int
	Index      int // position in declaration order
	Info       TypeInfo
	EnumName   string   // committed enum type name, "" if anonymous
	EnumValues []string // legal values, enum members only
}

// CompoundDescriptor is the introspected layout of one compound type.
// Member offsets are the running packed sum of preceding member sizes and
// are recomputed by the extractor, never taken from the backend. The
// descriptor is immutable once built.
type CompoundDescriptor struct {
	Name    string
	Handle  engine.Handle // caller-owned handle the descriptor was built from
	Size    int           // packed record size
	Members []Member
}

// Member returns the member with the given name.
func (d *CompoundDescriptor) Member(name string) (Member, bool) {
	for _, m := range d.Members {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// SortedByName returns a copy with members ordered lexicographically by
// name. Offsets are untouched: they stay tied to declaration order.
func (d *CompoundDescriptor) SortedByName() *CompoundDescriptor {
	out := &CompoundDescriptor{
		Name:    d.Name,
		Handle:  d.Handle,
		Size:    d.Size,
		Members: append([]Member(nil), d.Members...),
	}
	sort.Slice(out.Members, func(i, j int) bool {
		return out.Members[i].Name < out.Members[j].Name
	})
	return out
}

// EnumDefinition is a named enumeration with an ordered list of legal
// values. Definitions are registry-owned and shared; never mutate one.
type EnumDefinition struct {
	Name   string
	Values []string
}

// Ordinal returns the position of a legal value.
func (e *EnumDefinition) Ordinal(value string) (int, bool) {
	for i, v := range e.Values {
		if v == value {
			return i, true
		}
	}
	return 0, false
}

// Value returns the legal value at an ordinal.
func (e *EnumDefinition) Value(ordinal int) (string, bool) {
	if ordinal < 0 || ordinal >= len(e.Values) {
		return "", false
	}
	return e.Values[ordinal], true
}

// Compatible reports whether values equals the definition's legal values,
// in order.
func (e *EnumDefinition) Compatible(values []string) bool {
	if len(values) != len(e.Values) {
		return false
	}
	for i, v := range values {
		if e.Values[i] != v {
			return false
		}
	}
	return true
}

// EnumValue holds one symbolic enumeration value for record fields that
// are not declared as a native enumerated type.
type EnumValue struct {
	Type  *EnumDefinition
	Value string
}

// EnumArray holds a sequence of symbolic enumeration values.
type EnumArray struct {
	Type   *EnumDefinition
	Values []string
}

// FieldMapping is the resolved binding between one compound member and one
// field of a target record type. For dynamic (unbound) targets FieldType
// is nil and values bind by name with no field-kind contract.
type FieldMapping struct {
	FieldName  string
	MemberName string
	Kind       Kind
	Offset     int
	Size       int // element size in bytes
	Dims       []int
	Index      int // member index in the descriptor's compound type
	Variant    engine.Variant
	Enum       *EnumDefinition
	FieldIndex []int        // reflect field index path, nil when unbound
	FieldType  reflect.Type // nil when unbound
}

// TotalSize is the mapping's storage footprint in the packed record.
func (fm FieldMapping) TotalSize() int {
	n := fm.Size
	for _, d := range fm.Dims {
		n *= d
	}
	return n
}

// Bound reports whether the mapping is backed by a declared record field.
func (fm FieldMapping) Bound() bool {
	return fm.FieldType != nil
}

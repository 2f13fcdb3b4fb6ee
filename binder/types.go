package binder

import (
	"github.com/wippyai/compound-bind/binder/internal/types"
)

type Kind = types.Kind

const (
	KindInt8      = types.KindInt8
	KindInt16     = types.KindInt16
	KindInt32     = types.KindInt32
	KindInt64     = types.KindInt64
	KindUint8     = types.KindUint8
	KindUint16    = types.KindUint16
	KindUint32    = types.KindUint32
	KindUint64    = types.KindUint64
	KindFloat32   = types.KindFloat32
	KindFloat64   = types.KindFloat64
	KindString    = types.KindString
	KindEnum      = types.KindEnum
	KindEnumArray = types.KindEnumArray
)

// AnonymousTypeName is reported for compound types with no committed name.
const AnonymousTypeName = types.AnonymousTypeName

type TypeInfo = types.TypeInfo
type Member = types.Member
type CompoundDescriptor = types.CompoundDescriptor
type FieldMapping = types.FieldMapping
type EnumDefinition = types.EnumDefinition
type EnumValue = types.EnumValue
type EnumArray = types.EnumArray

package types

type Kind uint8

const (
	KindInt8 Kind = iota
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindString
	KindEnum
	KindEnumArray
)

var kindNames = [...]string{
	KindInt8:      "int8",
	KindInt16:     "int16",
	KindInt32:     "int32",
	KindInt64:     "int64",
	KindUint8:     "uint8",
	KindUint16:    "uint16",
	KindUint32:    "uint32",
	KindUint64:    "uint64",
	KindFloat32:   "float32",
	KindFloat64:   "float64",
	KindString:    "string",
	KindEnum:      "enum",
	KindEnumArray: "enum_array",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsPrimitive reports whether the kind is a plain numeric scalar element.
func (k Kind) IsPrimitive() bool {
	return k <= KindFloat64
}

// IsInteger reports whether the kind is an integer element.
func (k Kind) IsInteger() bool {
	return k <= KindUint64
}

// IsSigned reports whether an integer kind is signed.
func (k Kind) IsSigned() bool {
	return k <= KindInt64
}

// IsEnum reports whether the kind carries enumeration semantics.
func (k Kind) IsEnum() bool {
	return k == KindEnum || k == KindEnumArray
}

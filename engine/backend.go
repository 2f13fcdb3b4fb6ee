package engine

// Handle is an opaque reference to a backend-owned type object.
// The zero value is never a valid handle.
type Handle uint32

// Class is the backend's coarse classification of a type handle.
type Class uint8

const (
	ClassInteger Class = iota
	ClassFloat
	ClassString
	ClassEnum
	ClassArray
	ClassCompound
)

var classNames = [...]string{
	ClassInteger:  "integer",
	ClassFloat:    "float",
	ClassString:   "string",
	ClassEnum:     "enum",
	ClassArray:    "array",
	ClassCompound: "compound",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

// IsPrimitive reports whether the class is a plain numeric type.
func (c Class) IsPrimitive() bool {
	return c == ClassInteger || c == ClassFloat
}

// Variant is an auxiliary semantic tag layered atop a member's raw storage
// type, such as "this integer represents a timestamp".
type Variant uint8

const (
	VariantNone Variant = iota
	VariantTimestamp // milliseconds since the Unix epoch
	VariantDurationMicros
	VariantDurationMillis
	VariantDurationSeconds
	VariantDurationMinutes
	VariantDurationHours
	VariantDurationDays
)

var variantNames = [...]string{
	VariantNone:            "none",
	VariantTimestamp:       "timestamp",
	VariantDurationMicros:  "duration_us",
	VariantDurationMillis:  "duration_ms",
	VariantDurationSeconds: "duration_s",
	VariantDurationMinutes: "duration_min",
	VariantDurationHours:   "duration_h",
	VariantDurationDays:    "duration_d",
}

func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return "unknown"
}

// IsDuration reports whether the variant tags a time duration.
func (v Variant) IsDuration() bool {
	return v >= VariantDurationMicros && v <= VariantDurationDays
}

// Backend is the opaque storage layer that owns type objects. All methods
// are synchronous; callers serialize access through a Session.
//
// MemberType and BaseType mint fresh handles that the caller must release
// via CloseHandle. All other methods only inspect existing handles.
type Backend interface {
	// OpenCompound returns the member names of a compound type in
	// declaration order.
	OpenCompound(h Handle) ([]string, error)

	// MemberType returns a fresh handle to the type of member index i.
	MemberType(compound Handle, index int) (Handle, error)

	// BaseType returns a fresh handle to the element type of an array or
	// the storage base type of an enum.
	BaseType(h Handle) (Handle, error)

	Classify(h Handle) (Class, error)
	ElementSize(h Handle) (int, error)
	Signed(h Handle) (bool, error)
	Dimensions(h Handle) ([]int, error)

	// EnumValues returns the ordered legal value names of an enum type.
	EnumValues(h Handle) ([]string, error)

	// TypeName returns the committed name of a type, or "" if the type is
	// anonymous (uncommitted).
	TypeName(h Handle) (string, error)

	// TypeVariants returns per-member variant metadata recorded on a
	// committed compound type, or nil if none was recorded.
	TypeVariants(h Handle) ([]Variant, error)

	CloseHandle(h Handle) error
}

package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDescribe Phase = "describe" // compound type introspection
	PhaseBind     Phase = "bind"     // member-to-field mapping
	PhaseResolve  Phase = "resolve"  // enumeration type resolution
	PhaseEncode   Phase = "encode"   // record to packed buffer
	PhaseDecode   Phase = "decode"   // packed buffer to record
	PhaseSession  Phase = "session"  // backend session operations
)

// Kind categorizes the error
type Kind string

const (
	KindNotCompound       Kind = "not_compound"
	KindInvalidMetadata   Kind = "invalid_metadata"
	KindIncompatibleField Kind = "incompatible_field"
	KindIncompatibleEnum  Kind = "incompatible_enum"
	KindTypeMismatch      Kind = "type_mismatch"
	KindFieldMissing      Kind = "field_missing"
	KindMemberUnknown     Kind = "member_unknown"
	KindInvalidEnum       Kind = "invalid_enum"
	KindOutOfBounds       Kind = "out_of_bounds"
	KindOverflow          Kind = "overflow"
	KindInvalidData       Kind = "invalid_data"
	KindInvalidInput      Kind = "invalid_input"
	KindUnsupported       Kind = "unsupported"
	KindNotFound          Kind = "not_found"
	KindClosed            Kind = "closed"
	KindNilPointer        Kind = "nil_pointer"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value      any
	Cause      error
	Phase      Phase
	Kind       Kind
	FieldType  string
	MemberType string
	Detail     string
	Path       []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.FieldType != "" || e.MemberType != "" {
		b.WriteString(": ")
		if e.FieldType != "" && e.MemberType != "" {
			b.WriteString("field type ")
			b.WriteString(e.FieldType)
			b.WriteString(", member type ")
			b.WriteString(e.MemberType)
		} else if e.FieldType != "" {
			b.WriteString("field type ")
			b.WriteString(e.FieldType)
		} else {
			b.WriteString("member type ")
			b.WriteString(e.MemberType)
		}
	}

	if e.Detail != "" {
		if e.FieldType != "" || e.MemberType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the member/field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// FieldType sets the record field type name
func (b *Builder) FieldType(t string) *Builder {
	b.err.FieldType = t
	return b
}

// MemberType sets the on-disk member type name
func (b *Builder) MemberType(t string) *Builder {
	b.err.MemberType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NotCompound reports that the introspected handle is not a compound type.
func NotCompound(path []string, class string) *Error {
	return &Error{
		Phase:      PhaseDescribe,
		Kind:       KindNotCompound,
		Path:       path,
		MemberType: class,
		Detail:     "type is not a compound type",
	}
}

// InvalidMetadata reports a variant-metadata array whose length does not
// match the member count of a committed compound type.
func InvalidMetadata(typeName string, got, want int) *Error {
	return &Error{
		Phase:  PhaseDescribe,
		Kind:   KindInvalidMetadata,
		Path:   []string{typeName},
		Detail: fmt.Sprintf("type variant metadata has %d entries for %d members", got, want),
	}
}

// IncompatibleField reports a record field whose declared kind cannot
// represent the on-disk member kind.
func IncompatibleField(path []string, fieldType, detail string) *Error {
	return &Error{
		Phase:     PhaseBind,
		Kind:      KindIncompatibleField,
		Path:      path,
		FieldType: fieldType,
		Detail:    detail,
	}
}

// IncompatibleEnum reports an enumeration name already registered with
// different legal values.
func IncompatibleEnum(name string, existing, requested []string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindIncompatibleEnum,
		Path:   []string{name},
		Detail: fmt.Sprintf("enumeration already defined with values %v, requested %v", existing, requested),
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, fieldType, memberType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindTypeMismatch,
		Path:       path,
		FieldType:  fieldType,
		MemberType: memberType,
	}
}

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldMissing,
		Path:   path,
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// MemberUnknown reports a hint or value naming a member the descriptor
// does not contain.
func MemberUnknown(phase Phase, memberName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMemberUnknown,
		Detail: fmt.Sprintf("unknown member %q", memberName),
	}
}

// InvalidEnum creates an invalid enum value error
func InvalidEnum(phase Phase, path []string, value any, enumType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindInvalidEnum,
		Path:       path,
		MemberType: enumType,
		Detail:     fmt.Sprintf("invalid enum value %v for %s", value, enumType),
		Value:      value,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindOverflow,
		Path:       path,
		MemberType: targetType,
		Detail:     fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:      value,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, path []string, fieldType string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindNilPointer,
		Path:      path,
		FieldType: fieldType,
		Detail:    "nil pointer",
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Closed reports an operation on a closed session.
func Closed(what string) *Error {
	return &Error{
		Phase:  PhaseSession,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s is closed", what),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

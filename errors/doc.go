// Package errors provides structured error types for the compound-bind library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: member/field path, field and member type
// names, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseBind, errors.KindIncompatibleField).
//		Path("measurement", "status").
//		FieldType("int32").
//		Detail("field of enum type does not correspond to enumeration value").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotCompound(path, "integer")
//	err := errors.IncompatibleEnum("Color", existing, requested)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors

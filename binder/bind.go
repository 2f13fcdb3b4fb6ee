package binder

import (
	"reflect"

	"github.com/wippyai/compound-bind/binder/internal/types"
	"github.com/wippyai/compound-bind/engine"
	"github.com/wippyai/compound-bind/errors"
)

var (
	enumValueType = reflect.TypeOf(types.EnumValue{})
	enumArrayType = reflect.TypeOf(types.EnumArray{})
)

// Bind maps every member of a descriptor onto a field of the target record
// type, in member order. The target may be a struct type or value, a map
// (dynamically-keyed record), or nil; dynamic targets bind every member by
// name with no field-kind validation.
//
// A member with no matching field binds by its own name as a dynamic
// mapping. A matching field whose declared kind cannot represent the
// member's on-disk kind fails the whole bind.
func (b *Binder) Bind(d *CompoundDescriptor, target any, hints *Hints) ([]FieldMapping, error) {
	rt, err := targetType(target)
	if err != nil {
		return nil, err
	}

	var fields map[string]reflect.StructField
	if rt != nil {
		fields = b.fieldsOf(rt)
	}

	if err := hints.validate(d); err != nil {
		return nil, err
	}

	mappings := make([]FieldMapping, 0, len(d.Members))
	for _, m := range d.Members {
		fm, err := b.mapMember(d, m, rt, fields, hints.forMember(m.Name))
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, fm)
	}
	return mappings, nil
}

func (b *Binder) mapMember(d *CompoundDescriptor, m Member, rt reflect.Type, fields map[string]reflect.StructField, hint *Hint) (FieldMapping, error) {
	fm := FieldMapping{
		FieldName:  m.Name,
		MemberName: m.Name,
		Offset:     m.Offset,
		Size:       m.Info.Size,
		Dims:       m.Info.Dims,
		Index:      m.Index,
		Variant:    m.Info.Variant,
	}

	var field reflect.StructField
	bound := false
	switch {
	case fields != nil && hint != nil && hint.FieldName != "":
		field, bound = rt.FieldByName(hint.FieldName)
		if !bound {
			return FieldMapping{}, errors.FieldMissing(errors.PhaseBind,
				[]string{d.Name, m.Name}, hint.FieldName)
		}
	case fields != nil:
		field, bound = fields[m.Name]
	case hint != nil && hint.FieldName != "":
		fm.FieldName = hint.FieldName
	}
	if bound {
		fm.FieldName = field.Name
		fm.FieldIndex = field.Index
		fm.FieldType = field.Type
	}

	path := []string{d.Name, m.Name}

	switch {
	case m.Info.Class == engine.ClassEnum && m.Info.IsScalar():
		if bound && !isEnumScalarField(field.Type) {
			return FieldMapping{}, errors.IncompatibleField(path, field.Type.String(),
				"field of enum type does not correspond to enumeration value")
		}
		fm.Kind = KindEnum

	case m.Info.Class == engine.ClassEnum && len(m.Info.Dims) == 1:
		if bound && !isEnumArrayField(field.Type) {
			return FieldMapping{}, errors.IncompatibleField(path, field.Type.String(),
				"field of enum type does not correspond to enumeration array value")
		}
		fm.Kind = KindEnumArray

	case m.Info.Class == engine.ClassEnum:
		return FieldMapping{}, errors.Unsupported(errors.PhaseBind,
			"multi-dimensional enumeration member "+m.Name)

	case m.Info.Class == engine.ClassString:
		if bound && !isStringField(field.Type) {
			return FieldMapping{}, errors.IncompatibleField(path, field.Type.String(),
				"field of string type does not correspond to string or char array")
		}
		fm.Kind = KindString

	default:
		var k Kind
		var err error
		if bound {
			k, err = kindOfField(field.Type, path)
		} else {
			k, err = kindOfMember(m.Info, path)
		}
		if err != nil {
			return FieldMapping{}, err
		}
		fm.Kind = k
	}

	if fm.Kind.IsEnum() {
		if hint != nil && hint.Enum != nil {
			fm.Enum = hint.Enum
		} else {
			def, err := b.resolveMemberEnum(m, field, bound)
			if err != nil {
				return FieldMapping{}, err
			}
			fm.Enum = def
		}
	}

	if hint != nil && hint.Variant != engine.VariantNone {
		fm.Variant = hint.Variant
	}

	return fm, nil
}

// resolveMemberEnum resolves the definition backing an enum member. The
// committed on-disk name wins; an anonymous type falls back to the bound
// field's declared type name, then to the member name.
func (b *Binder) resolveMemberEnum(m Member, field reflect.StructField, bound bool) (*EnumDefinition, error) {
	name := m.EnumName
	if name == "" && bound {
		t := field.Type
		if t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
			t = t.Elem()
		}
		if isDefinedInt(t) {
			name = t.Name()
		}
	}
	if name == "" {
		name = m.Name
	}
	return b.enums.Resolve(name, m.EnumValues, true)
}

// isDefinedInt reports whether t is a named integer type declared outside
// the universe block, the Go shape of a native enumerated field type.
// Plain int8..uint64 do not qualify.
func isDefinedInt(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return t.PkgPath() != ""
	}
	return false
}

func isEnumScalarField(t reflect.Type) bool {
	return t == enumValueType || isDefinedInt(t)
}

func isEnumArrayField(t reflect.Type) bool {
	if t == enumArrayType {
		return true
	}
	if t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		return isDefinedInt(t.Elem())
	}
	return false
}

func isStringField(t reflect.Type) bool {
	if t.Kind() == reflect.String {
		return true
	}
	if (t.Kind() == reflect.Slice || t.Kind() == reflect.Array) && t.Elem().Kind() == reflect.Uint8 && t.Elem().PkgPath() == "" {
		return true
	}
	return false
}

// kindOfField infers the element kind from a bound field's declared type.
// Slices and arrays contribute their element kind; the member's dims
// drive the actual extent.
func kindOfField(t reflect.Type, path []string) (Kind, error) {
	switch t.Kind() {
	case reflect.Int8:
		return KindInt8, nil
	case reflect.Int16:
		return KindInt16, nil
	case reflect.Int32:
		return KindInt32, nil
	case reflect.Int64, reflect.Int:
		return KindInt64, nil
	case reflect.Uint8:
		return KindUint8, nil
	case reflect.Uint16:
		return KindUint16, nil
	case reflect.Uint32:
		return KindUint32, nil
	case reflect.Uint64, reflect.Uint:
		return KindUint64, nil
	case reflect.Float32:
		return KindFloat32, nil
	case reflect.Float64:
		return KindFloat64, nil
	case reflect.Slice, reflect.Array:
		k, err := kindOfField(t.Elem(), path)
		if err != nil {
			return 0, err
		}
		if !k.IsPrimitive() {
			return 0, errors.TypeMismatch(errors.PhaseBind, path, t.String(), "numeric array")
		}
		return k, nil
	default:
		return 0, errors.TypeMismatch(errors.PhaseBind, path, t.String(), "numeric")
	}
}

// kindOfMember infers the element kind from the on-disk type alone, for
// members bound dynamically with no declared field.
func kindOfMember(info TypeInfo, path []string) (Kind, error) {
	switch info.Class {
	case engine.ClassInteger:
		switch info.Size {
		case 1:
			if info.Signed {
				return KindInt8, nil
			}
			return KindUint8, nil
		case 2:
			if info.Signed {
				return KindInt16, nil
			}
			return KindUint16, nil
		case 4:
			if info.Signed {
				return KindInt32, nil
			}
			return KindUint32, nil
		case 8:
			if info.Signed {
				return KindInt64, nil
			}
			return KindUint64, nil
		}
		return 0, errors.InvalidData(errors.PhaseBind, path, "unsupported integer size")
	case engine.ClassFloat:
		switch info.Size {
		case 4:
			return KindFloat32, nil
		case 8:
			return KindFloat64, nil
		}
		return 0, errors.InvalidData(errors.PhaseBind, path, "unsupported float size")
	case engine.ClassString:
		return KindString, nil
	default:
		return 0, errors.Unsupported(errors.PhaseBind, "member class "+info.Class.String())
	}
}

package binder

import (
	"reflect"

	"github.com/wippyai/compound-bind/errors"
)

// Field matching is by exact name only: a `bind:"name"` struct tag first,
// else the Go field name. No case folding, no fuzzy matching. A tag of "-"
// excludes the field.
func (b *Binder) fieldsOf(t reflect.Type) map[string]reflect.StructField {
	if cached, ok := b.fields.Load(t); ok {
		return cached.(map[string]reflect.StructField)
	}

	m := make(map[string]reflect.StructField, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if tag, ok := f.Tag.Lookup("bind"); ok {
			if tag == "-" {
				continue
			}
			m[tag] = f
			continue
		}
		m[f.Name] = f
	}

	b.fields.LoadOrStore(t, m)
	return m
}

// targetType normalizes a bind target into a record type, or nil for
// dynamically-keyed targets (maps, nil) that bind by name with no
// field-kind contract.
func targetType(target any) (reflect.Type, error) {
	if target == nil {
		return nil, nil
	}

	t, ok := target.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(target)
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Struct:
		return t, nil
	case reflect.Map:
		return nil, nil
	default:
		return nil, errors.New(errors.PhaseBind, errors.KindInvalidInput).
			FieldType(t.String()).
			Detail("bind target must be a struct, a map, or nil").
			Build()
	}
}

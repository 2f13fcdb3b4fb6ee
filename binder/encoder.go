package binder

import (
	"math"
	"reflect"

	"github.com/wippyai/compound-bind/binder/internal/types"
	"github.com/wippyai/compound-bind/errors"
)

// Encoder serializes record values into packed compound buffers. It is
// built from a descriptor and the mappings produced by Bind and holds no
// backend resources, so one encoder can serve any number of goroutines.
type Encoder struct {
	size     int
	mappings []FieldMapping
}

// NewEncoder creates an encoder for the given descriptor and mappings.
func NewEncoder(d *CompoundDescriptor, mappings []FieldMapping) *Encoder {
	return &Encoder{size: d.Size, mappings: mappings}
}

// Size is the packed record size in bytes.
func (e *Encoder) Size() int {
	return e.size
}

// Encode serializes one record into a freshly allocated packed buffer.
// The value may be a struct, a pointer to one, or a map[string]any.
func (e *Encoder) Encode(value any) ([]byte, error) {
	buf := make([]byte, e.size)
	if err := e.EncodeInto(value, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// EncodeInto serializes one record into buf, which must hold at least
// Size bytes. Slots between members are left untouched.
func (e *Encoder) EncodeInto(value any, buf []byte) error {
	if len(buf) < e.size {
		return errors.OutOfBounds(errors.PhaseEncode, nil, e.size, len(buf))
	}

	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return errors.NilPointer(errors.PhaseEncode, nil, v.Type().String())
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		for _, fm := range e.mappings {
			fv, err := structField(v, fm, errors.PhaseEncode)
			if err != nil {
				return err
			}
			if err := e.encodeField(fm, fv, buf); err != nil {
				return err
			}
		}
		return nil

	case reflect.Map:
		for _, fm := range e.mappings {
			fv := v.MapIndex(reflect.ValueOf(fm.FieldName))
			if !fv.IsValid() {
				return errors.FieldMissing(errors.PhaseEncode,
					[]string{fm.MemberName}, fm.FieldName)
			}
			if err := e.encodeField(fm, unwrap(fv), buf); err != nil {
				return err
			}
		}
		return nil

	default:
		return errors.InvalidInput(errors.PhaseEncode,
			"record value must be a struct, a pointer to one, or a map")
	}
}

// structField resolves the source or destination field of a mapping on a
// struct record. Mappings built against a dynamic target carry no field
// index and fall back to a lookup by name.
func structField(v reflect.Value, fm FieldMapping, phase errors.Phase) (reflect.Value, error) {
	if fm.FieldIndex != nil {
		return v.FieldByIndex(fm.FieldIndex), nil
	}
	fv := v.FieldByName(fm.FieldName)
	if !fv.IsValid() {
		return reflect.Value{}, errors.FieldMissing(phase,
			[]string{fm.MemberName}, fm.FieldName)
	}
	return fv, nil
}

func unwrap(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	return v
}

func (e *Encoder) encodeField(fm FieldMapping, fv reflect.Value, buf []byte) error {
	path := []string{fm.MemberName}
	slot := buf[fm.Offset : fm.Offset+fm.TotalSize()]

	switch fm.Kind {
	case KindEnum:
		ord, err := enumOrdinal(fm.Enum, fv, path, errors.PhaseEncode)
		if err != nil {
			return err
		}
		putUintLE(slot, fm.Size, uint64(ord))
		return nil

	case KindEnumArray:
		return e.encodeEnumArray(fm, fv, slot, path)

	case KindString:
		return encodeString(fm, fv, slot, path)

	default:
		want := dimsProduct(fm.Dims)
		if want == 1 && len(fm.Dims) == 0 {
			return encodeScalar(fm.Kind, fm.Size, fv, slot, path)
		}
		elems, err := flattenElems(fv, want, path, errors.PhaseEncode)
		if err != nil {
			return err
		}
		for i, ev := range elems {
			off := i * fm.Size
			if err := encodeScalar(fm.Kind, fm.Size, ev, slot[off:off+fm.Size], path); err != nil {
				return err
			}
		}
		return nil
	}
}

// enumOrdinal maps a field value onto an enumeration ordinal. Symbolic
// values resolve through the definition; integer values are taken as
// ordinals directly and range-checked.
func enumOrdinal(def *types.EnumDefinition, fv reflect.Value, path []string, phase errors.Phase) (int, error) {
	switch {
	case fv.Type() == enumValueType:
		ev := fv.Interface().(types.EnumValue)
		ord, ok := def.Ordinal(ev.Value)
		if !ok {
			return 0, errors.InvalidEnum(phase, path, ev.Value, def.Name)
		}
		return ord, nil

	case fv.Kind() == reflect.String:
		ord, ok := def.Ordinal(fv.String())
		if !ok {
			return 0, errors.InvalidEnum(phase, path, fv.String(), def.Name)
		}
		return ord, nil

	case fv.CanInt():
		ord := fv.Int()
		if ord < 0 || ord >= int64(len(def.Values)) {
			return 0, errors.InvalidEnum(phase, path, ord, def.Name)
		}
		return int(ord), nil

	case fv.CanUint():
		ord := fv.Uint()
		if ord >= uint64(len(def.Values)) {
			return 0, errors.InvalidEnum(phase, path, ord, def.Name)
		}
		return int(ord), nil

	default:
		return 0, errors.TypeMismatch(phase, path, fv.Type().String(), def.Name)
	}
}

func (e *Encoder) encodeEnumArray(fm FieldMapping, fv reflect.Value, slot []byte, path []string) error {
	want := dimsProduct(fm.Dims)

	if fv.Type() == enumArrayType {
		ea := fv.Interface().(types.EnumArray)
		if len(ea.Values) != want {
			return errors.InvalidData(errors.PhaseEncode, path,
				"enumeration array length mismatch")
		}
		for i, val := range ea.Values {
			ord, ok := fm.Enum.Ordinal(val)
			if !ok {
				return errors.InvalidEnum(errors.PhaseEncode, path, val, fm.Enum.Name)
			}
			putUintLE(slot[i*fm.Size:], fm.Size, uint64(ord))
		}
		return nil
	}

	if fv.Kind() != reflect.Slice && fv.Kind() != reflect.Array {
		return errors.TypeMismatch(errors.PhaseEncode, path,
			fv.Type().String(), fm.Enum.Name+" array")
	}
	if fv.Len() != want {
		return errors.InvalidData(errors.PhaseEncode, path,
			"enumeration array length mismatch")
	}
	for i := 0; i < want; i++ {
		ord, err := enumOrdinal(fm.Enum, unwrap(fv.Index(i)), path, errors.PhaseEncode)
		if err != nil {
			return err
		}
		putUintLE(slot[i*fm.Size:], fm.Size, uint64(ord))
	}
	return nil
}

// encodeString writes a fixed-length string slot: the value is truncated
// to the slot size and zero-padded below it.
func encodeString(fm FieldMapping, fv reflect.Value, slot []byte, path []string) error {
	var src []byte
	switch {
	case fv.Kind() == reflect.String:
		src = []byte(fv.String())
	case fv.Kind() == reflect.Slice && fv.Type().Elem().Kind() == reflect.Uint8:
		src = fv.Bytes()
	case fv.Kind() == reflect.Array && fv.Type().Elem().Kind() == reflect.Uint8:
		src = make([]byte, fv.Len())
		reflect.Copy(reflect.ValueOf(src), fv)
	default:
		return errors.TypeMismatch(errors.PhaseEncode, path,
			fv.Type().String(), "fixed-length string")
	}

	n := copy(slot, src)
	for i := n; i < len(slot); i++ {
		slot[i] = 0
	}
	return nil
}

func encodeScalar(k Kind, size int, fv reflect.Value, slot []byte, path []string) error {
	switch {
	case k.IsInteger() && k.IsSigned():
		var v int64
		switch {
		case fv.CanInt():
			v = fv.Int()
		case fv.CanUint():
			u := fv.Uint()
			if u > math.MaxInt64 {
				return errors.Overflow(errors.PhaseEncode, path, u, k.String())
			}
			v = int64(u)
		default:
			return errors.TypeMismatch(errors.PhaseEncode, path, fv.Type().String(), k.String())
		}
		if !fitsSigned(v, size) {
			return errors.Overflow(errors.PhaseEncode, path, v, k.String())
		}
		putUintLE(slot, size, uint64(v))
		return nil

	case k.IsInteger():
		var u uint64
		switch {
		case fv.CanUint():
			u = fv.Uint()
		case fv.CanInt():
			v := fv.Int()
			if v < 0 {
				return errors.Overflow(errors.PhaseEncode, path, v, k.String())
			}
			u = uint64(v)
		default:
			return errors.TypeMismatch(errors.PhaseEncode, path, fv.Type().String(), k.String())
		}
		if !fitsUnsigned(u, size) {
			return errors.Overflow(errors.PhaseEncode, path, u, k.String())
		}
		putUintLE(slot, size, u)
		return nil

	case k == KindFloat32:
		f, err := floatOf(fv, k, path)
		if err != nil {
			return err
		}
		putUintLE(slot, 4, uint64(math.Float32bits(float32(f))))
		return nil

	case k == KindFloat64:
		f, err := floatOf(fv, k, path)
		if err != nil {
			return err
		}
		putUintLE(slot, 8, math.Float64bits(f))
		return nil

	default:
		return errors.Unsupported(errors.PhaseEncode, "scalar kind "+k.String())
	}
}

func floatOf(fv reflect.Value, k Kind, path []string) (float64, error) {
	switch {
	case fv.CanFloat():
		return fv.Float(), nil
	case fv.CanInt():
		return float64(fv.Int()), nil
	case fv.CanUint():
		return float64(fv.Uint()), nil
	default:
		return 0, errors.TypeMismatch(errors.PhaseEncode, path, fv.Type().String(), k.String())
	}
}

// flattenElems walks nested slices and arrays down to scalar elements and
// checks the flattened count against the member's extents.
func flattenElems(fv reflect.Value, want int, path []string, phase errors.Phase) ([]reflect.Value, error) {
	out := make([]reflect.Value, 0, want)
	var walk func(reflect.Value)
	walk = func(x reflect.Value) {
		x = unwrap(x)
		switch x.Kind() {
		case reflect.Slice, reflect.Array:
			for i := 0; i < x.Len(); i++ {
				walk(x.Index(i))
			}
		default:
			out = append(out, x)
		}
	}
	walk(fv)
	if len(out) != want {
		return nil, errors.InvalidData(phase, path, "array length mismatch")
	}
	return out, nil
}

package binder

import (
	"bytes"
	"math"
	"reflect"

	"github.com/wippyai/compound-bind/binder/internal/types"
	"github.com/wippyai/compound-bind/errors"
)

// Decoder deserializes packed compound buffers back into record values.
// Like the encoder it holds no backend resources and is safe for
// concurrent use.
type Decoder struct {
	size     int
	mappings []FieldMapping
}

// NewDecoder creates a decoder for the given descriptor and mappings.
func NewDecoder(d *CompoundDescriptor, mappings []FieldMapping) *Decoder {
	return &Decoder{size: d.Size, mappings: mappings}
}

// Size is the packed record size in bytes.
func (d *Decoder) Size() int {
	return d.size
}

// Decode deserializes one packed record into a map keyed by field name.
func (d *Decoder) Decode(buf []byte) (map[string]any, error) {
	out := make(map[string]any, len(d.mappings))
	if err := d.DecodeInto(buf, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeInto deserializes one packed record into target, which must be a
// non-nil pointer to a struct or a map[string]any.
func (d *Decoder) DecodeInto(buf []byte, target any) error {
	if len(buf) < d.size {
		return errors.OutOfBounds(errors.PhaseDecode, nil, d.size, len(buf))
	}

	if m, ok := target.(map[string]any); ok {
		for _, fm := range d.mappings {
			val, err := d.decodeDynamic(fm, buf)
			if err != nil {
				return err
			}
			m[fm.FieldName] = val
		}
		return nil
	}

	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return errors.InvalidInput(errors.PhaseDecode,
			"decode target must be a non-nil struct pointer or a map")
	}
	v = v.Elem()
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return errors.NilPointer(errors.PhaseDecode, nil, v.Type().String())
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return errors.InvalidInput(errors.PhaseDecode,
			"decode target must be a non-nil struct pointer or a map")
	}

	for _, fm := range d.mappings {
		fv, err := structField(v, fm, errors.PhaseDecode)
		if err != nil {
			return err
		}
		if err := d.decodeField(fm, buf, fv); err != nil {
			return err
		}
	}
	return nil
}

// decodeDynamic produces a plain Go value for one member: sized integers
// and floats for scalars, typed slices for arrays, strings for string and
// enum slots.
func (d *Decoder) decodeDynamic(fm FieldMapping, buf []byte) (any, error) {
	path := []string{fm.MemberName}
	slot := buf[fm.Offset : fm.Offset+fm.TotalSize()]

	switch fm.Kind {
	case KindEnum:
		ord := int(getUintLE(slot, fm.Size))
		val, ok := fm.Enum.Value(ord)
		if !ok {
			return nil, errors.InvalidEnum(errors.PhaseDecode, path, ord, fm.Enum.Name)
		}
		return val, nil

	case KindEnumArray:
		n := dimsProduct(fm.Dims)
		vals := make([]string, n)
		for i := 0; i < n; i++ {
			ord := int(getUintLE(slot[i*fm.Size:], fm.Size))
			val, ok := fm.Enum.Value(ord)
			if !ok {
				return nil, errors.InvalidEnum(errors.PhaseDecode, path, ord, fm.Enum.Name)
			}
			vals[i] = val
		}
		return types.EnumArray{Type: fm.Enum, Values: vals}, nil

	case KindString:
		return decodeStringSlot(slot), nil

	default:
		if len(fm.Dims) == 0 {
			return scalarValue(fm.Kind, slot, fm.Size), nil
		}
		return sliceValue(fm.Kind, slot, fm.Size, dimsProduct(fm.Dims)), nil
	}
}

func (d *Decoder) decodeField(fm FieldMapping, buf []byte, fv reflect.Value) error {
	path := []string{fm.MemberName}
	slot := buf[fm.Offset : fm.Offset+fm.TotalSize()]

	switch fm.Kind {
	case KindEnum:
		ord := int(getUintLE(slot, fm.Size))
		val, ok := fm.Enum.Value(ord)
		if !ok {
			return errors.InvalidEnum(errors.PhaseDecode, path, ord, fm.Enum.Name)
		}
		switch {
		case fv.Type() == enumValueType:
			fv.Set(reflect.ValueOf(types.EnumValue{Type: fm.Enum, Value: val}))
		case fv.Kind() == reflect.String:
			fv.SetString(val)
		case fv.CanInt():
			fv.SetInt(int64(ord))
		case fv.CanUint():
			fv.SetUint(uint64(ord))
		default:
			return errors.TypeMismatch(errors.PhaseDecode, path, fv.Type().String(), fm.Enum.Name)
		}
		return nil

	case KindEnumArray:
		return d.decodeEnumArrayField(fm, slot, fv, path)

	case KindString:
		s := decodeStringSlot(slot)
		switch {
		case fv.Kind() == reflect.String:
			fv.SetString(s)
		case fv.Kind() == reflect.Slice && fv.Type().Elem().Kind() == reflect.Uint8:
			fv.SetBytes([]byte(s))
		case fv.Kind() == reflect.Array && fv.Type().Elem().Kind() == reflect.Uint8:
			reflect.Copy(fv, reflect.ValueOf(slot))
		default:
			return errors.TypeMismatch(errors.PhaseDecode, path,
				fv.Type().String(), "fixed-length string")
		}
		return nil

	default:
		if len(fm.Dims) == 0 {
			return setScalar(fm.Kind, slot, fm.Size, fv, path)
		}
		return d.decodeArrayField(fm, slot, fv, path)
	}
}

func (d *Decoder) decodeEnumArrayField(fm FieldMapping, slot []byte, fv reflect.Value, path []string) error {
	n := dimsProduct(fm.Dims)

	if fv.Type() == enumArrayType {
		vals := make([]string, n)
		for i := 0; i < n; i++ {
			ord := int(getUintLE(slot[i*fm.Size:], fm.Size))
			val, ok := fm.Enum.Value(ord)
			if !ok {
				return errors.InvalidEnum(errors.PhaseDecode, path, ord, fm.Enum.Name)
			}
			vals[i] = val
		}
		fv.Set(reflect.ValueOf(types.EnumArray{Type: fm.Enum, Values: vals}))
		return nil
	}

	switch fv.Kind() {
	case reflect.Slice:
		fv.Set(reflect.MakeSlice(fv.Type(), n, n))
	case reflect.Array:
		if fv.Len() != n {
			return errors.InvalidData(errors.PhaseDecode, path,
				"enumeration array length mismatch")
		}
	default:
		return errors.TypeMismatch(errors.PhaseDecode, path,
			fv.Type().String(), fm.Enum.Name+" array")
	}

	for i := 0; i < n; i++ {
		ord := int(getUintLE(slot[i*fm.Size:], fm.Size))
		if _, ok := fm.Enum.Value(ord); !ok {
			return errors.InvalidEnum(errors.PhaseDecode, path, ord, fm.Enum.Name)
		}
		ev := fv.Index(i)
		switch {
		case ev.Kind() == reflect.String:
			val, _ := fm.Enum.Value(ord)
			ev.SetString(val)
		case ev.CanInt():
			ev.SetInt(int64(ord))
		case ev.CanUint():
			ev.SetUint(uint64(ord))
		default:
			return errors.TypeMismatch(errors.PhaseDecode, path,
				ev.Type().String(), fm.Enum.Name)
		}
	}
	return nil
}

// decodeArrayField fills a slice or nested fixed-size array field from a
// flat run of packed elements.
func (d *Decoder) decodeArrayField(fm FieldMapping, slot []byte, fv reflect.Value, path []string) error {
	n := dimsProduct(fm.Dims)

	if fv.Kind() == reflect.Slice {
		fv.Set(reflect.MakeSlice(fv.Type(), n, n))
	}

	idx := 0
	var fill func(x reflect.Value) error
	fill = func(x reflect.Value) error {
		switch x.Kind() {
		case reflect.Slice, reflect.Array:
			for i := 0; i < x.Len(); i++ {
				if err := fill(x.Index(i)); err != nil {
					return err
				}
			}
			return nil
		default:
			if idx >= n {
				return errors.InvalidData(errors.PhaseDecode, path, "array length mismatch")
			}
			err := setScalar(fm.Kind, slot[idx*fm.Size:], fm.Size, x, path)
			idx++
			return err
		}
	}
	if err := fill(fv); err != nil {
		return err
	}
	if idx != n {
		return errors.InvalidData(errors.PhaseDecode, path, "array length mismatch")
	}
	return nil
}

// decodeStringSlot trims a fixed-length string slot at its first NUL.
func decodeStringSlot(slot []byte) string {
	if i := bytes.IndexByte(slot, 0); i >= 0 {
		return string(slot[:i])
	}
	return string(slot)
}

// scalarValue materializes a packed scalar as the natural sized Go value.
func scalarValue(k Kind, slot []byte, size int) any {
	raw := getUintLE(slot, size)
	switch k {
	case KindInt8:
		return int8(signExtend(raw, size))
	case KindInt16:
		return int16(signExtend(raw, size))
	case KindInt32:
		return int32(signExtend(raw, size))
	case KindInt64:
		return signExtend(raw, size)
	case KindUint8:
		return uint8(raw)
	case KindUint16:
		return uint16(raw)
	case KindUint32:
		return uint32(raw)
	case KindUint64:
		return raw
	case KindFloat32:
		return math.Float32frombits(uint32(raw))
	default:
		return math.Float64frombits(raw)
	}
}

func sliceValue(k Kind, slot []byte, size, n int) any {
	var elem reflect.Type
	switch k {
	case KindInt8:
		elem = reflect.TypeOf(int8(0))
	case KindInt16:
		elem = reflect.TypeOf(int16(0))
	case KindInt32:
		elem = reflect.TypeOf(int32(0))
	case KindInt64:
		elem = reflect.TypeOf(int64(0))
	case KindUint8:
		elem = reflect.TypeOf(uint8(0))
	case KindUint16:
		elem = reflect.TypeOf(uint16(0))
	case KindUint32:
		elem = reflect.TypeOf(uint32(0))
	case KindUint64:
		elem = reflect.TypeOf(uint64(0))
	case KindFloat32:
		elem = reflect.TypeOf(float32(0))
	default:
		elem = reflect.TypeOf(float64(0))
	}
	out := reflect.MakeSlice(reflect.SliceOf(elem), n, n)
	for i := 0; i < n; i++ {
		out.Index(i).Set(reflect.ValueOf(scalarValue(k, slot[i*size:], size)))
	}
	return out.Interface()
}

// setScalar writes one packed scalar into a settable reflect value,
// converting between integer widths with overflow checks.
func setScalar(k Kind, slot []byte, size int, fv reflect.Value, path []string) error {
	raw := getUintLE(slot, size)

	switch {
	case k.IsInteger() && k.IsSigned():
		v := signExtend(raw, size)
		switch {
		case fv.CanInt():
			if fv.OverflowInt(v) {
				return errors.Overflow(errors.PhaseDecode, path, v, fv.Type().String())
			}
			fv.SetInt(v)
		case fv.CanUint():
			if v < 0 || fv.OverflowUint(uint64(v)) {
				return errors.Overflow(errors.PhaseDecode, path, v, fv.Type().String())
			}
			fv.SetUint(uint64(v))
		case fv.CanFloat():
			fv.SetFloat(float64(v))
		default:
			return errors.TypeMismatch(errors.PhaseDecode, path, fv.Type().String(), k.String())
		}
		return nil

	case k.IsInteger():
		switch {
		case fv.CanUint():
			if fv.OverflowUint(raw) {
				return errors.Overflow(errors.PhaseDecode, path, raw, fv.Type().String())
			}
			fv.SetUint(raw)
		case fv.CanInt():
			if raw > math.MaxInt64 || fv.OverflowInt(int64(raw)) {
				return errors.Overflow(errors.PhaseDecode, path, raw, fv.Type().String())
			}
			fv.SetInt(int64(raw))
		case fv.CanFloat():
			fv.SetFloat(float64(raw))
		default:
			return errors.TypeMismatch(errors.PhaseDecode, path, fv.Type().String(), k.String())
		}
		return nil

	case k == KindFloat32:
		if !fv.CanFloat() {
			return errors.TypeMismatch(errors.PhaseDecode, path, fv.Type().String(), k.String())
		}
		fv.SetFloat(float64(math.Float32frombits(uint32(raw))))
		return nil

	case k == KindFloat64:
		if !fv.CanFloat() {
			return errors.TypeMismatch(errors.PhaseDecode, path, fv.Type().String(), k.String())
		}
		fv.SetFloat(math.Float64frombits(raw))
		return nil

	default:
		return errors.Unsupported(errors.PhaseDecode, "scalar kind "+k.String())
	}
}

package binder

import (
	stderrors "errors"
	"reflect"
	"strings"
	"testing"

	"github.com/wippyai/compound-bind/engine"
	"github.com/wippyai/compound-bind/errors"
)

// Suit is the Go shape of a native enumerated field type.
type Suit int8

type playRecord struct {
	ID    int32
	Score float64 `bind:"score"`
	Suit  Suit    `bind:"suit"`
}

func describeOrDie(t *testing.T, b *Binder, h engine.Handle) *CompoundDescriptor {
	t.Helper()
	desc, err := b.Describe(h, true)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	return desc
}

func TestBindStruct(t *testing.T) {
	mem, b := newTestBinder(t)
	h := mem.DefineCompound("Play",
		engine.MemberDef{Name: "ID", Type: mem.DefineInt(4, true)},
		engine.MemberDef{Name: "score", Type: mem.DefineFloat(8)},
		engine.MemberDef{Name: "suit", Type: mem.DefineEnum("Suit", 1, "HEARTS", "SPADES")},
	)
	desc := describeOrDie(t, b, h)

	mappings, err := b.Bind(desc, playRecord{}, nil)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if len(mappings) != 3 {
		t.Fatalf("mappings = %d, want 3", len(mappings))
	}

	id := mappings[0]
	if id.FieldName != "ID" || id.Kind != KindInt32 || id.Offset != 0 {
		t.Errorf("id mapping = %+v", id)
	}
	score := mappings[1]
	if score.FieldName != "Score" || score.Kind != KindFloat64 || score.Offset != 4 {
		t.Errorf("score mapping = %+v", score)
	}
	suit := mappings[2]
	if suit.Kind != KindEnum || suit.Offset != 12 || suit.Enum == nil || suit.Enum.Name != "Suit" {
		t.Errorf("suit mapping = %+v", suit)
	}
	if !suit.Bound() || suit.FieldType != reflect.TypeOf(Suit(0)) {
		t.Errorf("suit field type = %v", suit.FieldType)
	}
}

func TestBindDynamicOffsets(t *testing.T) {
	mem, b := newTestBinder(t)
	desc := describeOrDie(t, b, threeMember(mem, "Record"))

	mappings, err := b.Bind(desc, nil, nil)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}

	wantOffsets := []int{0, 4, 12}
	wantKinds := []Kind{KindInt32, KindFloat64, KindUint16}
	for i, fm := range mappings {
		if fm.Offset != wantOffsets[i] {
			t.Errorf("%s offset = %d, want %d", fm.MemberName, fm.Offset, wantOffsets[i])
		}
		if fm.Kind != wantKinds[i] {
			t.Errorf("%s kind = %v, want %v", fm.MemberName, fm.Kind, wantKinds[i])
		}
		if fm.Bound() {
			t.Errorf("%s bound on dynamic target", fm.MemberName)
		}
		if fm.FieldName != fm.MemberName {
			t.Errorf("%s field name = %q", fm.MemberName, fm.FieldName)
		}
	}
}

func TestBindMapTargetIsDynamic(t *testing.T) {
	mem, b := newTestBinder(t)
	desc := describeOrDie(t, b, threeMember(mem, "Record"))

	mappings, err := b.Bind(desc, map[string]any{}, nil)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	for _, fm := range mappings {
		if fm.Bound() {
			t.Errorf("%s bound on map target", fm.MemberName)
		}
	}
}

func TestBindEnumMemberFieldKinds(t *testing.T) {
	mem, b := newTestBinder(t)
	h := mem.DefineCompound("Tagged",
		engine.MemberDef{Name: "suit", Type: mem.DefineEnum("Suit", 1, "HEARTS", "SPADES")},
	)
	desc := describeOrDie(t, b, h)

	// A defined integer type or an EnumValue field binds.
	for _, target := range []any{
		struct{ Suit Suit `bind:"suit"` }{},
		struct{ Suit EnumValue `bind:"suit"` }{},
	} {
		if _, err := b.Bind(desc, target, nil); err != nil {
			t.Errorf("bind %T: %v", target, err)
		}
	}

	// A plain integer or string field does not.
	for _, target := range []any{
		struct{ Suit int32 `bind:"suit"` }{},
		struct{ Suit string `bind:"suit"` }{},
	} {
		_, err := b.Bind(desc, target, nil)
		if err == nil {
			t.Errorf("bind %T: expected incompatible field error", target)
			continue
		}
		if !stderrors.Is(err, errors.IncompatibleField(nil, "", "")) {
			t.Errorf("bind %T: error = %v, want incompatible_field", target, err)
		}
		if !strings.Contains(err.Error(), "does not correspond to enumeration value") {
			t.Errorf("bind %T: error = %v", target, err)
		}
	}
}

func TestBindEnumArrayMember(t *testing.T) {
	mem, b := newTestBinder(t)
	h := mem.DefineCompound("Hand",
		engine.MemberDef{Name: "suits", Type: mem.DefineArray(mem.DefineEnum("Suit", 1, "HEARTS", "SPADES"), 4)},
	)
	desc := describeOrDie(t, b, h)

	mappings, err := b.Bind(desc, struct{ Suits []Suit `bind:"suits"` }{}, nil)
	if err != nil {
		t.Fatalf("bind slice of defined ints: %v", err)
	}
	if mappings[0].Kind != KindEnumArray {
		t.Errorf("kind = %v, want enum array", mappings[0].Kind)
	}

	if _, err := b.Bind(desc, struct{ Suits EnumArray `bind:"suits"` }{}, nil); err != nil {
		t.Errorf("bind EnumArray: %v", err)
	}

	_, err = b.Bind(desc, struct{ Suits string `bind:"suits"` }{}, nil)
	if err == nil || !strings.Contains(err.Error(), "enumeration array value") {
		t.Errorf("bind string: error = %v", err)
	}
}

func TestBindMultiDimEnumUnsupported(t *testing.T) {
	mem, b := newTestBinder(t)
	h := mem.DefineCompound("Grid",
		engine.MemberDef{Name: "cells", Type: mem.DefineArray(mem.DefineEnum("Cell", 1, "X", "O"), 2, 2)},
	)
	desc := describeOrDie(t, b, h)

	_, err := b.Bind(desc, nil, nil)
	if !stderrors.Is(err, errors.Unsupported(errors.PhaseBind, "")) {
		t.Errorf("error = %v, want unsupported", err)
	}
}

func TestBindStringMember(t *testing.T) {
	mem, b := newTestBinder(t)
	h := mem.DefineCompound("Named",
		engine.MemberDef{Name: "name", Type: mem.DefineString(16)},
	)
	desc := describeOrDie(t, b, h)

	for _, target := range []any{
		struct{ Name string `bind:"name"` }{},
		struct{ Name []byte `bind:"name"` }{},
		struct{ Name [16]byte `bind:"name"` }{},
	} {
		if _, err := b.Bind(desc, target, nil); err != nil {
			t.Errorf("bind %T: %v", target, err)
		}
	}

	_, err := b.Bind(desc, struct{ Name int64 `bind:"name"` }{}, nil)
	if err == nil || !strings.Contains(err.Error(), "string or char array") {
		t.Errorf("bind int field: error = %v", err)
	}
}

func TestBindMemberWithoutField(t *testing.T) {
	mem, b := newTestBinder(t)
	desc := describeOrDie(t, b, threeMember(mem, "Record"))

	// Only "id" matches a field; the rest bind dynamically by member name.
	mappings, err := b.Bind(desc, struct{ ID int32 `bind:"id"` }{}, nil)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if !mappings[0].Bound() {
		t.Error("id should bind to the declared field")
	}
	if mappings[1].Bound() || mappings[1].FieldName != "score" {
		t.Errorf("score mapping = %+v", mappings[1])
	}
	if mappings[1].Kind != KindFloat64 {
		t.Errorf("score kind = %v", mappings[1].Kind)
	}
}

func TestBindExcludedTag(t *testing.T) {
	mem, b := newTestBinder(t)
	desc := describeOrDie(t, b, threeMember(mem, "Record"))

	mappings, err := b.Bind(desc, struct {
		Id int8 `bind:"-"`
	}{}, nil)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	for _, fm := range mappings {
		if fm.Bound() {
			t.Errorf("%s bound despite excluded tag", fm.MemberName)
		}
	}
}

func TestBindHints(t *testing.T) {
	mem, b := newTestBinder(t)
	h := mem.DefineCompound("Play",
		engine.MemberDef{Name: "score", Type: mem.DefineFloat(8)},
	)
	desc := describeOrDie(t, b, h)

	type rec struct {
		Points float64
	}

	mappings, err := b.Bind(desc, rec{}, NewHints().Field("score", "Points"))
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if mappings[0].FieldName != "Points" || !mappings[0].Bound() {
		t.Errorf("mapping = %+v", mappings[0])
	}

	_, err = b.Bind(desc, rec{}, NewHints().Field("score", "Nope"))
	if !stderrors.Is(err, errors.FieldMissing(errors.PhaseBind, nil, "")) {
		t.Errorf("error = %v, want field_missing", err)
	}

	_, err = b.Bind(desc, rec{}, NewHints().Field("bogus", "Points"))
	if !stderrors.Is(err, errors.MemberUnknown(errors.PhaseBind, "")) {
		t.Errorf("error = %v, want member_unknown", err)
	}
}

func TestBindHintEnumAndVariant(t *testing.T) {
	mem, b := newTestBinder(t)
	h := mem.DefineCompound("Tagged",
		engine.MemberDef{Name: "suit", Type: mem.DefineEnum("Suit", 1, "HEARTS", "SPADES")},
		engine.MemberDef{Name: "at", Type: mem.DefineInt(8, true)},
	)
	desc := describeOrDie(t, b, h)

	custom := &EnumDefinition{Name: "Override", Values: []string{"A", "B"}}
	hints := NewHints().
		Enum("suit", custom).
		Variant("at", engine.VariantTimestamp)

	mappings, err := b.Bind(desc, nil, hints)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if mappings[0].Enum != custom {
		t.Errorf("enum = %+v, want hint override", mappings[0].Enum)
	}
	if mappings[1].Variant != engine.VariantTimestamp {
		t.Errorf("variant = %v, want timestamp", mappings[1].Variant)
	}
}

func TestBindAnonymousEnumNameFallback(t *testing.T) {
	mem, b := newTestBinder(t)
	h := mem.DefineCompound("Rec",
		engine.MemberDef{Name: "suit", Type: mem.DefineEnum("", 1, "HEARTS", "SPADES")},
	)
	desc := describeOrDie(t, b, h)

	// Bound to a defined integer type: the field type name backs the
	// definition.
	if _, err := b.Bind(desc, struct{ Suit Suit `bind:"suit"` }{}, nil); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if _, ok := b.Enums().Lookup("Suit"); !ok {
		t.Error("expected definition registered under field type name")
	}

	// Unbound: the member name backs the definition.
	if _, err := b.Bind(desc, nil, nil); err != nil {
		t.Fatalf("dynamic bind: %v", err)
	}
	if _, ok := b.Enums().Lookup("suit"); !ok {
		t.Error("expected definition registered under member name")
	}
}

func TestBindSharedEnumDefinition(t *testing.T) {
	mem, b := newTestBinder(t)
	suit := mem.DefineEnum("Suit", 1, "HEARTS", "SPADES")
	h1 := mem.DefineCompound("A", engine.MemberDef{Name: "s", Type: suit})
	h2 := mem.DefineCompound("B", engine.MemberDef{Name: "s", Type: suit})

	m1, err := b.Bind(describeOrDie(t, b, h1), nil, nil)
	if err != nil {
		t.Fatalf("bind A: %v", err)
	}
	m2, err := b.Bind(describeOrDie(t, b, h2), nil, nil)
	if err != nil {
		t.Fatalf("bind B: %v", err)
	}
	if m1[0].Enum != m2[0].Enum {
		t.Error("expected both bindings to share one registry definition")
	}
}

func TestBindInvalidTarget(t *testing.T) {
	mem, b := newTestBinder(t)
	desc := describeOrDie(t, b, threeMember(mem, "Record"))

	_, err := b.Bind(desc, 42, nil)
	if !stderrors.Is(err, errors.New(errors.PhaseBind, errors.KindInvalidInput).Build()) {
		t.Errorf("error = %v, want invalid_input", err)
	}
}

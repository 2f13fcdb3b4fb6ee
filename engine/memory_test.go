package engine

import (
	"errors"
	"testing"

	binderrs "github.com/wippyai/compound-bind/errors"
)

func TestMemoryBackend_Classify(t *testing.T) {
	m := NewMemoryBackend()

	i32 := m.DefineInt(4, true)
	f64 := m.DefineFloat(8)
	str := m.DefineString(16)
	col := m.DefineEnum("Color", 1, "RED", "GREEN")
	arr := m.DefineArray(f64, 3)
	cpd := m.DefineCompound("Point",
		MemberDef{Name: "x", Type: f64},
		MemberDef{Name: "y", Type: f64},
	)

	tests := []struct {
		name string
		h    Handle
		want Class
	}{
		{"integer", i32, ClassInteger},
		{"float", f64, ClassFloat},
		{"string", str, ClassString},
		{"enum", col, ClassEnum},
		{"array", arr, ClassArray},
		{"compound", cpd, ClassCompound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Classify(tt.h)
			if err != nil {
				t.Fatalf("Classify failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Classify = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMemoryBackend_Sizes(t *testing.T) {
	m := NewMemoryBackend()

	f64 := m.DefineFloat(8)
	str := m.DefineString(12)
	arr := m.DefineArray(f64, 3)
	cpd := m.DefineCompound("Rec",
		MemberDef{Name: "v", Type: arr},
		MemberDef{Name: "s", Type: str},
	)

	if n, _ := m.ElementSize(str); n != 12 {
		t.Errorf("string ElementSize = %d, want 12", n)
	}
	if n, _ := m.ElementSize(arr); n != 8 {
		t.Errorf("array ElementSize = %d, want element size 8", n)
	}
	if dims, _ := m.Dimensions(arr); len(dims) != 1 || dims[0] != 3 {
		t.Errorf("array Dimensions = %v, want [3]", dims)
	}
	// compound: 3*8 + 12
	if n, _ := m.ElementSize(cpd); n != 36 {
		t.Errorf("compound ElementSize = %d, want 36", n)
	}
}

func TestMemoryBackend_Compound(t *testing.T) {
	m := NewMemoryBackend()

	i16 := m.DefineInt(2, true)
	cpd := m.DefineCompound("Pair",
		MemberDef{Name: "a", Type: i16},
		MemberDef{Name: "b", Type: i16},
	)

	names, err := m.OpenCompound(cpd)
	if err != nil {
		t.Fatalf("OpenCompound failed: %v", err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("member names = %v, want [a b]", names)
	}

	mt, err := m.MemberType(cpd, 0)
	if err != nil {
		t.Fatalf("MemberType failed: %v", err)
	}
	if class, _ := m.Classify(mt); class != ClassInteger {
		t.Errorf("member class = %v, want integer", class)
	}

	if _, err := m.MemberType(cpd, 5); !errors.Is(err, &binderrs.Error{Phase: binderrs.PhaseSession, Kind: binderrs.KindOutOfBounds}) {
		t.Errorf("MemberType(5) = %v, want out_of_bounds", err)
	}

	if _, err := m.OpenCompound(i16); !errors.Is(err, &binderrs.Error{Phase: binderrs.PhaseDescribe, Kind: binderrs.KindNotCompound}) {
		t.Errorf("OpenCompound(int) = %v, want not_compound", err)
	}
}

func TestMemoryBackend_EnumBase(t *testing.T) {
	m := NewMemoryBackend()

	col := m.DefineEnum("Color", 1, "RED", "GREEN", "BLUE")

	values, err := m.EnumValues(col)
	if err != nil {
		t.Fatalf("EnumValues failed: %v", err)
	}
	if len(values) != 3 || values[2] != "BLUE" {
		t.Errorf("EnumValues = %v", values)
	}

	base, err := m.BaseType(col)
	if err != nil {
		t.Fatalf("BaseType failed: %v", err)
	}
	if class, _ := m.Classify(base); class != ClassInteger {
		t.Errorf("enum base class = %v, want integer", class)
	}
	if n, _ := m.ElementSize(base); n != 1 {
		t.Errorf("enum base size = %d, want 1", n)
	}
}

func TestMemoryBackend_Variants(t *testing.T) {
	m := NewMemoryBackend()

	i64 := m.DefineInt(8, true)
	cpd := m.DefineCompound("Event",
		MemberDef{Name: "when", Type: i64, Variant: VariantTimestamp},
		MemberDef{Name: "count", Type: i64},
	)

	variants, err := m.TypeVariants(cpd)
	if err != nil {
		t.Fatalf("TypeVariants failed: %v", err)
	}
	if len(variants) != 2 {
		t.Fatalf("variants len = %d, want 2", len(variants))
	}
	if variants[0] != VariantTimestamp || variants[1] != VariantNone {
		t.Errorf("variants = %v", variants)
	}

	// Untagged compounds report no metadata at all.
	plain := m.DefineCompound("Plain", MemberDef{Name: "n", Type: i64})
	if v, _ := m.TypeVariants(plain); v != nil {
		t.Errorf("untagged variants = %v, want nil", v)
	}
}

func TestMemoryBackend_HandleAccounting(t *testing.T) {
	m := NewMemoryBackend()

	i32 := m.DefineInt(4, true)
	cpd := m.DefineCompound("One", MemberDef{Name: "n", Type: i32})

	mt, err := m.MemberType(cpd, 0)
	if err != nil {
		t.Fatalf("MemberType failed: %v", err)
	}
	if n := m.OpenHandles(); n != 1 {
		t.Errorf("OpenHandles = %d, want 1", n)
	}

	if err := m.CloseHandle(mt); err != nil {
		t.Fatalf("CloseHandle failed: %v", err)
	}
	if n := m.OpenHandles(); n != 0 {
		t.Errorf("OpenHandles after close = %d, want 0", n)
	}

	// Pinned handles survive CloseHandle.
	if err := m.CloseHandle(cpd); err != nil {
		t.Fatalf("CloseHandle on pinned failed: %v", err)
	}
	if _, err := m.OpenCompound(cpd); err != nil {
		t.Errorf("pinned handle released: %v", err)
	}
}

package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/wippyai/compound-bind/engine"
)

// Manifest declares the enumerations and compound types of one backend.
type Manifest struct {
	Enums []EnumSpec `mapstructure:"enums"`
	Types []TypeSpec `mapstructure:"types"`
}

type EnumSpec struct {
	Name   string   `mapstructure:"name"`
	Base   int      `mapstructure:"base"` // base integer size in bytes
	Values []string `mapstructure:"values"`
}

type TypeSpec struct {
	Name    string       `mapstructure:"name"`
	Members []MemberSpec `mapstructure:"members"`
}

// MemberSpec declares one member. Kind is one of int, uint, float, string
// or enum; Size is the element size in bytes (string length for strings);
// Dims wraps the element in a fixed-extent array.
type MemberSpec struct {
	Name    string `mapstructure:"name"`
	Kind    string `mapstructure:"kind"`
	Size    int    `mapstructure:"size"`
	Enum    string `mapstructure:"enum"`
	Dims    []int  `mapstructure:"dims"`
	Variant string `mapstructure:"variant"`
}

// LoadManifest reads a YAML manifest from path.
func LoadManifest(path string) (*Manifest, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := v.Unmarshal(&m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	return &m, nil
}

// Build materializes the manifest as an in-memory backend and returns the
// declared compound type handles by name.
func (m *Manifest) Build() (*engine.MemoryBackend, map[string]engine.Handle, error) {
	mem := engine.NewMemoryBackend()

	enums := make(map[string]engine.Handle, len(m.Enums))
	for _, e := range m.Enums {
		if e.Name == "" || len(e.Values) == 0 {
			return nil, nil, fmt.Errorf("enum %q must have a name and values", e.Name)
		}
		base := e.Base
		if base == 0 {
			base = 4
		}
		enums[e.Name] = mem.DefineEnum(e.Name, base, e.Values...)
	}

	types := make(map[string]engine.Handle, len(m.Types))
	for _, t := range m.Types {
		members := make([]engine.MemberDef, 0, len(t.Members))
		for _, ms := range t.Members {
			elem, err := memberElem(mem, enums, ms)
			if err != nil {
				return nil, nil, fmt.Errorf("type %s, member %s: %w", t.Name, ms.Name, err)
			}
			if len(ms.Dims) > 0 {
				elem = mem.DefineArray(elem, ms.Dims...)
			}
			variant, err := parseVariant(ms.Variant)
			if err != nil {
				return nil, nil, fmt.Errorf("type %s, member %s: %w", t.Name, ms.Name, err)
			}
			members = append(members, engine.MemberDef{Name: ms.Name, Type: elem, Variant: variant})
		}
		types[t.Name] = mem.DefineCompound(t.Name, members...)
	}

	return mem, types, nil
}

func memberElem(mem *engine.MemoryBackend, enums map[string]engine.Handle, ms MemberSpec) (engine.Handle, error) {
	size := ms.Size
	switch ms.Kind {
	case "int":
		if size == 0 {
			size = 4
		}
		return mem.DefineInt(size, true), nil
	case "uint":
		if size == 0 {
			size = 4
		}
		return mem.DefineInt(size, false), nil
	case "float":
		if size == 0 {
			size = 8
		}
		return mem.DefineFloat(size), nil
	case "string":
		if size == 0 {
			return 0, fmt.Errorf("string member needs a size")
		}
		return mem.DefineString(size), nil
	case "enum":
		h, ok := enums[ms.Enum]
		if !ok {
			return 0, fmt.Errorf("unknown enum %q", ms.Enum)
		}
		return h, nil
	default:
		return 0, fmt.Errorf("unknown member kind %q", ms.Kind)
	}
}

func parseVariant(name string) (engine.Variant, error) {
	if name == "" {
		return engine.VariantNone, nil
	}
	for v := engine.VariantNone; v <= engine.VariantDurationDays; v++ {
		if v.String() == name {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown variant %q", name)
}

package binder

import (
	"github.com/wippyai/compound-bind/engine"
	"github.com/wippyai/compound-bind/errors"
)

// Hint overrides inferred binding choices for one member. Zero-valued
// entries leave the inference untouched.
type Hint struct {
	FieldName string
	Enum      *EnumDefinition
	Variant   engine.Variant
}

// Hints are caller-supplied binding overrides keyed by member name. Hints
// replace inferred values for members the descriptor already contains;
// they never introduce members.
type Hints struct {
	byMember map[string]*Hint
}

// NewHints creates an empty hint set.
func NewHints() *Hints {
	return &Hints{byMember: make(map[string]*Hint)}
}

func (h *Hints) hint(member string) *Hint {
	if _, ok := h.byMember[member]; !ok {
		h.byMember[member] = &Hint{}
	}
	return h.byMember[member]
}

// Field overrides the record field bound to a member.
func (h *Hints) Field(member, fieldName string) *Hints {
	h.hint(member).FieldName = fieldName
	return h
}

// Enum overrides the enumeration definition bound to a member.
func (h *Hints) Enum(member string, def *EnumDefinition) *Hints {
	h.hint(member).Enum = def
	return h
}

// Variant overrides the variant tag of a member.
func (h *Hints) Variant(member string, v engine.Variant) *Hints {
	h.hint(member).Variant = v
	return h
}

// forMember returns the hint for a member, or nil. Safe on a nil receiver.
func (h *Hints) forMember(name string) *Hint {
	if h == nil {
		return nil
	}
	return h.byMember[name]
}

// validate fails when a hint names a member the descriptor does not
// contain. Safe on a nil receiver.
func (h *Hints) validate(d *CompoundDescriptor) error {
	if h == nil {
		return nil
	}
	for name := range h.byMember {
		if _, ok := d.Member(name); !ok {
			return errors.MemberUnknown(errors.PhaseBind, name)
		}
	}
	return nil
}

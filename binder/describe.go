package binder

import (
	"github.com/wippyai/compound-bind/binder/internal/layout"
	"github.com/wippyai/compound-bind/binder/internal/types"
	"github.com/wippyai/compound-bind/engine"
	"github.com/wippyai/compound-bind/errors"
)

// Describe introspects a compound type handle and produces its descriptor.
// Member order equals backend declaration order and member offsets are the
// running packed sum of preceding member sizes.
//
// With readTypePath set, the committed type name and per-member variant
// metadata are read from the backend; otherwise the descriptor is reported
// anonymous. Handles minted during introspection are released before
// Describe returns, on every exit path.
func (b *Binder) Describe(h engine.Handle, readTypePath bool) (*CompoundDescriptor, error) {
	var desc *CompoundDescriptor
	err := b.session.Run(func(scope *engine.Scope) error {
		var err error
		desc, err = b.describe(scope, h, readTypePath)
		return err
	})
	if err != nil {
		return nil, err
	}
	return desc, nil
}

func (b *Binder) describe(scope *engine.Scope, h engine.Handle, readTypePath bool) (*CompoundDescriptor, error) {
	class, err := scope.Classify(h)
	if err != nil {
		return nil, err
	}
	if class != engine.ClassCompound {
		return nil, errors.NotCompound(nil, class.String())
	}

	name := types.AnonymousTypeName
	if readTypePath {
		committed, err := scope.TypeName(h)
		if err != nil {
			return nil, err
		}
		if committed != "" {
			name = committed
		}
	}

	memberNames, err := scope.OpenCompound(h)
	if err != nil {
		return nil, err
	}

	var variants []engine.Variant
	if readTypePath {
		variants, err = scope.TypeVariants(h)
		if err != nil {
			return nil, err
		}
		if variants != nil && len(variants) != len(memberNames) {
			return nil, errors.InvalidMetadata(name, len(variants), len(memberNames))
		}
	}

	desc := &CompoundDescriptor{
		Name:    name,
		Handle:  h,
		Members: make([]Member, 0, len(memberNames)),
	}

	for i, memberName := range memberNames {
		mt, err := scope.MemberType(h, i)
		if err != nil {
			return nil, err
		}

		member, err := b.describeMember(scope, mt)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseDescribe, errors.KindInvalidData, err,
				"member "+memberName)
		}
		member.Name = memberName
		member.Index = i
		if variants != nil {
			member.Info.Variant = variants[i]
		}

		desc.Members = append(desc.Members, member)
	}
	desc.Size = layout.Apply(desc.Members)

	return desc, nil
}

// describeMember classifies one member type handle. Array members are
// unwrapped: the reported class, size and enum data describe the element
// type while Dims carries the extents.
func (b *Binder) describeMember(scope *engine.Scope, mt engine.Handle) (Member, error) {
	class, err := scope.Classify(mt)
	if err != nil {
		return Member{}, err
	}

	elem := mt
	var dims []int
	if class == engine.ClassArray {
		dims, err = scope.Dimensions(mt)
		if err != nil {
			return Member{}, err
		}
		elem, err = scope.BaseType(mt)
		if err != nil {
			return Member{}, err
		}
		class, err = scope.Classify(elem)
		if err != nil {
			return Member{}, err
		}
	}

	member := Member{Info: TypeInfo{Class: class, Dims: dims}}

	switch class {
	case engine.ClassEnum:
		// The member's storage width is that of the enum's base type.
		base, err := scope.BaseType(elem)
		if err != nil {
			return Member{}, err
		}
		member.Info.Size, err = scope.ElementSize(base)
		if err != nil {
			return Member{}, err
		}
		member.Info.Signed, err = scope.Signed(base)
		if err != nil {
			return Member{}, err
		}
		member.EnumValues, err = scope.EnumValues(elem)
		if err != nil {
			return Member{}, err
		}
		member.EnumName, err = scope.TypeName(elem)
		if err != nil {
			return Member{}, err
		}
		// Committed enum types are registered eagerly so later bindings
		// share one definition.
		if member.EnumName != "" {
			if _, err := b.enums.Resolve(member.EnumName, member.EnumValues, true); err != nil {
				return Member{}, err
			}
		}

	default:
		member.Info.Size, err = scope.ElementSize(elem)
		if err != nil {
			return Member{}, err
		}
		member.Info.Signed, err = scope.Signed(elem)
		if err != nil {
			return Member{}, err
		}
	}

	return member, nil
}

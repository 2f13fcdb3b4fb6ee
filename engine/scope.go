package engine

import (
	"go.uber.org/zap"
)

// Scope tracks every handle minted during one introspection call and
// releases them all when the call completes, on every exit path. Handles
// are released in reverse acquisition order.
type Scope struct {
	backend Backend
	handles []Handle
}

// NewScope creates a scope over a backend. Callers normally obtain scopes
// from Session.Run instead of constructing them directly.
func NewScope(b Backend) *Scope {
	return &Scope{backend: b}
}

// Track registers a handle for release and returns it unchanged.
func (s *Scope) Track(h Handle) Handle {
	s.handles = append(s.handles, h)
	return h
}

// MemberType mints and tracks a handle to the type of member index i.
func (s *Scope) MemberType(compound Handle, index int) (Handle, error) {
	h, err := s.backend.MemberType(compound, index)
	if err != nil {
		return 0, err
	}
	return s.Track(h), nil
}

// BaseType mints and tracks a handle to the array element or enum base type.
func (s *Scope) BaseType(h Handle) (Handle, error) {
	base, err := s.backend.BaseType(h)
	if err != nil {
		return 0, err
	}
	return s.Track(base), nil
}

// Passthroughs for non-minting backend calls, so introspection code only
// talks to the scope.

func (s *Scope) OpenCompound(h Handle) ([]string, error)  { return s.backend.OpenCompound(h) }
func (s *Scope) Classify(h Handle) (Class, error)         { return s.backend.Classify(h) }
func (s *Scope) ElementSize(h Handle) (int, error)        { return s.backend.ElementSize(h) }
func (s *Scope) Signed(h Handle) (bool, error)            { return s.backend.Signed(h) }
func (s *Scope) Dimensions(h Handle) ([]int, error)       { return s.backend.Dimensions(h) }
func (s *Scope) EnumValues(h Handle) ([]string, error)    { return s.backend.EnumValues(h) }
func (s *Scope) TypeName(h Handle) (string, error)        { return s.backend.TypeName(h) }
func (s *Scope) TypeVariants(h Handle) ([]Variant, error) { return s.backend.TypeVariants(h) }

// Keep marks a handle as owned by the caller beyond the scope's lifetime.
// It is removed from the release list.
func (s *Scope) Keep(h Handle) Handle {
	for i := len(s.handles) - 1; i >= 0; i-- {
		if s.handles[i] == h {
			s.handles = append(s.handles[:i], s.handles[i+1:]...)
			return h
		}
	}
	return h
}

// Release closes all tracked handles in reverse order. Close failures are
// logged and do not stop the remaining releases.
func (s *Scope) Release() {
	for i := len(s.handles) - 1; i >= 0; i-- {
		if err := s.backend.CloseHandle(s.handles[i]); err != nil {
			Logger().Warn("failed to close handle",
				zap.Uint32("handle", uint32(s.handles[i])),
				zap.Error(err))
		}
	}
	s.handles = s.handles[:0]
}

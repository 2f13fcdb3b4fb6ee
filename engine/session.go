package engine

import (
	"io"
	"sync"

	"github.com/wippyai/compound-bind/errors"
)

// Session serializes access to a backend. All introspection and binding
// operations that touch backend-owned handles run through Run, so no two
// operations issue overlapping backend calls. The session also bounds the
// lifetime of registry state owned by higher layers.
type Session struct {
	backend Backend
	mu      sync.Mutex
	closed  bool
}

// NewSession creates a session over a backend.
func NewSession(b Backend) *Session {
	return &Session{backend: b}
}

// Run executes fn under the session lock with a fresh handle scope. The
// scope is released on every exit path, including when fn returns an error.
func (s *Session) Run(fn func(*Scope) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.Closed("session")
	}

	scope := NewScope(s.backend)
	defer scope.Release()

	return fn(scope)
}

// Backend returns the underlying backend.
func (s *Session) Backend() Backend {
	return s.backend
}

// Close marks the session closed and closes the backend if it supports it.
// Subsequent Run calls fail with a closed-session error.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if c, ok := s.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

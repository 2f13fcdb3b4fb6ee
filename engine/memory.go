package engine

import (
	"sync"

	"github.com/wippyai/compound-bind/errors"
)

// MemoryBackend is an in-process Backend backed by a declared type graph.
// It is used by tests and tooling, and as the reference implementation of
// the backend contract: handle minting, scoped release, and classification
// behave as a native storage layer would.
type MemoryBackend struct {
	mu     sync.Mutex
	types  map[Handle]*memType
	pinned map[Handle]bool
	next   Handle
	closed bool
}

type memType struct {
	class    Class
	name     string
	size     int // element size in bytes
	signed   bool
	dims     []int
	base     *memType
	members  []memberEntry
	values   []string
	variants []Variant
}

type memberEntry struct {
	name string
	typ  *memType
}

// MemberDef declares one member of a compound type.
type MemberDef struct {
	Name    string
	Type    Handle
	Variant Variant
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		types:  make(map[Handle]*memType),
		pinned: make(map[Handle]bool),
	}
}

// totalSize is the storage footprint of one value of t: the element size
// multiplied by all array extents, or the packed sum for compounds.
func (t *memType) totalSize() int {
	if t.class == ClassCompound {
		sum := 0
		for _, m := range t.members {
			sum += m.typ.totalSize()
		}
		return sum
	}
	n := t.size
	for _, d := range t.dims {
		n *= d
	}
	return n
}

// pin registers a type under a fresh handle that survives scope release.
func (m *MemoryBackend) pin(t *memType) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := m.mint(t)
	m.pinned[h] = true
	return h
}

// mint registers a type under a fresh handle. Caller holds the lock.
func (m *MemoryBackend) mint(t *memType) Handle {
	m.next++
	m.types[m.next] = t
	return m.next
}

// DefineInt declares an integer type of the given byte size.
func (m *MemoryBackend) DefineInt(size int, signed bool) Handle {
	return m.pin(&memType{class: ClassInteger, size: size, signed: signed})
}

// DefineFloat declares a floating-point type of the given byte size (4 or 8).
func (m *MemoryBackend) DefineFloat(size int) Handle {
	return m.pin(&memType{class: ClassFloat, size: size, signed: true})
}

// DefineString declares a fixed-length string type.
func (m *MemoryBackend) DefineString(length int) Handle {
	return m.pin(&memType{class: ClassString, size: length})
}

// DefineEnum declares a named enumeration with the given base size and
// ordered legal values.
func (m *MemoryBackend) DefineEnum(name string, baseSize int, values ...string) Handle {
	base := &memType{class: ClassInteger, size: baseSize, signed: true}
	return m.pin(&memType{
		class:  ClassEnum,
		name:   name,
		size:   baseSize,
		signed: true,
		base:   base,
		values: append([]string(nil), values...),
	})
}

// DefineArray declares a fixed-extent array over an existing element type.
func (m *MemoryBackend) DefineArray(elem Handle, dims ...int) Handle {
	m.mu.Lock()
	et, ok := m.types[elem]
	m.mu.Unlock()
	if !ok {
		return 0
	}
	return m.pin(&memType{
		class: ClassArray,
		size:  et.size,
		dims:  append([]int(nil), dims...),
		base:  et,
	})
}

// DefineCompound declares a compound type from ordered member definitions.
// Member variant tags, if any, are recorded as committed type metadata.
func (m *MemoryBackend) DefineCompound(name string, members ...MemberDef) Handle {
	entries := make([]memberEntry, 0, len(members))
	variants := make([]Variant, len(members))
	tagged := false

	m.mu.Lock()
	for i, md := range members {
		t, ok := m.types[md.Type]
		if !ok {
			m.mu.Unlock()
			return 0
		}
		entries = append(entries, memberEntry{name: md.Name, typ: t})
		variants[i] = md.Variant
		if md.Variant != VariantNone {
			tagged = true
		}
	}
	m.mu.Unlock()

	ct := &memType{class: ClassCompound, name: name, members: entries}
	if tagged {
		ct.variants = variants
	}
	return m.pin(ct)
}

// SetVariants overrides the variant metadata recorded on a compound type.
// Tests use this to simulate metadata written by a foreign tool.
func (m *MemoryBackend) SetVariants(h Handle, variants []Variant) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.types[h]; ok {
		t.variants = append([]Variant(nil), variants...)
	}
}

func (m *MemoryBackend) lookup(h Handle) (*memType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, errors.Closed("backend")
	}
	t, ok := m.types[h]
	if !ok {
		return nil, errors.New(errors.PhaseSession, errors.KindNotFound).
			Detail("unknown type handle %d", h).
			Build()
	}
	return t, nil
}

func (m *MemoryBackend) OpenCompound(h Handle) ([]string, error) {
	t, err := m.lookup(h)
	if err != nil {
		return nil, err
	}
	if t.class != ClassCompound {
		return nil, errors.NotCompound(nil, t.class.String())
	}
	names := make([]string, len(t.members))
	for i, me := range t.members {
		names[i] = me.name
	}
	return names, nil
}

func (m *MemoryBackend) MemberType(compound Handle, index int) (Handle, error) {
	t, err := m.lookup(compound)
	if err != nil {
		return 0, err
	}
	if t.class != ClassCompound {
		return 0, errors.NotCompound(nil, t.class.String())
	}
	if index < 0 || index >= len(t.members) {
		return 0, errors.OutOfBounds(errors.PhaseSession, nil, index, len(t.members))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mint(t.members[index].typ), nil
}

func (m *MemoryBackend) BaseType(h Handle) (Handle, error) {
	t, err := m.lookup(h)
	if err != nil {
		return 0, err
	}
	if t.base == nil {
		return 0, errors.New(errors.PhaseSession, errors.KindUnsupported).
			Detail("type of class %s has no base type", t.class).
			Build()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mint(t.base), nil
}

func (m *MemoryBackend) Classify(h Handle) (Class, error) {
	t, err := m.lookup(h)
	if err != nil {
		return 0, err
	}
	return t.class, nil
}

func (m *MemoryBackend) ElementSize(h Handle) (int, error) {
	t, err := m.lookup(h)
	if err != nil {
		return 0, err
	}
	if t.class == ClassCompound {
		return t.totalSize(), nil
	}
	return t.size, nil
}

func (m *MemoryBackend) Signed(h Handle) (bool, error) {
	t, err := m.lookup(h)
	if err != nil {
		return false, err
	}
	return t.signed, nil
}

func (m *MemoryBackend) Dimensions(h Handle) ([]int, error) {
	t, err := m.lookup(h)
	if err != nil {
		return nil, err
	}
	if len(t.dims) == 0 {
		return nil, nil
	}
	return append([]int(nil), t.dims...), nil
}

func (m *MemoryBackend) EnumValues(h Handle) ([]string, error) {
	t, err := m.lookup(h)
	if err != nil {
		return nil, err
	}
	if t.class != ClassEnum {
		return nil, errors.New(errors.PhaseSession, errors.KindUnsupported).
			Detail("type of class %s has no enum values", t.class).
			Build()
	}
	return append([]string(nil), t.values...), nil
}

func (m *MemoryBackend) TypeName(h Handle) (string, error) {
	t, err := m.lookup(h)
	if err != nil {
		return "", err
	}
	return t.name, nil
}

func (m *MemoryBackend) TypeVariants(h Handle) ([]Variant, error) {
	t, err := m.lookup(h)
	if err != nil {
		return nil, err
	}
	if t.variants == nil {
		return nil, nil
	}
	return append([]Variant(nil), t.variants...), nil
}

// CloseHandle releases a minted handle. Pinned (defined) handles survive,
// matching a native backend where committed types outlive introspection
// calls.
func (m *MemoryBackend) CloseHandle(h Handle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pinned[h] {
		return nil
	}
	if _, ok := m.types[h]; !ok {
		return errors.New(errors.PhaseSession, errors.KindNotFound).
			Detail("unknown type handle %d", h).
			Build()
	}
	delete(m.types, h)
	return nil
}

// OpenHandles reports the number of live minted (non-pinned) handles.
func (m *MemoryBackend) OpenHandles() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for h := range m.types {
		if !m.pinned[h] {
			n++
		}
	}
	return n
}

// Close discards all type state.
func (m *MemoryBackend) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.types = make(map[Handle]*memType)
	m.pinned = make(map[Handle]bool)
	return nil
}

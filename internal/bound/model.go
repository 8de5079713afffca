package bound

import (
	"sync"

	"github.com/roach88/opflow/internal/ir"
)

// Model is the read-only semantic model backing a bound tree. It resolves
// well-known platform types by name and wraps internal symbols into public
// ir.Symbol handles.
//
// Model is safe for concurrent use. The same internal symbol always maps
// to the same handle.
type Model struct {
	wellKnown map[string]*Type

	mu      sync.Mutex
	symbols map[*Symbol]ir.Symbol
	types   map[*Type]ir.Symbol
}

// NewModel creates a model over the given well-known types, keyed by their
// metadata name (e.g. "System.IDisposable").
func NewModel(wellKnown map[string]*Type) *Model {
	if wellKnown == nil {
		wellKnown = map[string]*Type{}
	}
	return &Model{
		wellKnown: wellKnown,
		symbols:   make(map[*Symbol]ir.Symbol),
		types:     make(map[*Type]ir.Symbol),
	}
}

// WellKnownType returns the named platform type, or nil if the model does
// not know it.
func (m *Model) WellKnownType(name string) *Type {
	return m.wellKnown[name]
}

// PublicSymbol wraps s. nil maps to nil.
func (m *Model) PublicSymbol(s *Symbol) ir.Symbol {
	if s == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.symbols[s]; ok {
		return p
	}
	p := &publicSymbol{s: s}
	m.symbols[s] = p
	return p
}

// PublicType wraps t. nil maps to nil.
func (m *Model) PublicType(t *Type) ir.Symbol {
	if t == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.types[t]; ok {
		return p
	}
	p := &publicType{t: t}
	m.types[t] = p
	return p
}

type publicSymbol struct {
	s *Symbol
}

func (p *publicSymbol) Name() string              { return p.s.Name }
func (p *publicSymbol) SymbolKind() ir.SymbolKind { return p.s.Kind }
func (p *publicSymbol) String() string            { return p.s.String() }

type publicType struct {
	t *Type
}

func (p *publicType) Name() string              { return p.t.Name }
func (p *publicType) SymbolKind() ir.SymbolKind { return ir.SymbolKindType }
func (p *publicType) String() string            { return p.t.Name }

// Underlying returns the internal symbol behind a public handle produced
// by a Model, or nil.
func Underlying(s ir.Symbol) *Symbol {
	if p, ok := s.(*publicSymbol); ok {
		return p.s
	}
	return nil
}

// UnderlyingType returns the internal type behind a public handle, or nil.
func UnderlyingType(s ir.Symbol) *Type {
	if p, ok := s.(*publicType); ok {
		return p.t
	}
	return nil
}

package analysis

import (
	"phpsa/parser"
	"phpsa/types"
)

// Symbol is a local variable of the routine being analyzed
type Symbol struct {
	Name string
	Gets int
	Sets int

	// Value is the value of the only assignment so far; Unknown once the
	// variable was written more than once.
	Value types.Value

	// Predefined symbols (parameters, $this, superglobals) are never
	// reported as unused.
	Predefined bool

	// Node is the first write, used to locate unused-variable notices
	Node parser.Node
}

// IncGets records a read
func (s *Symbol) IncGets() {
	s.Gets++
}

// IncSets records a write. Only a single write keeps its value.
func (s *Symbol) IncSets() {
	s.Sets++
	if s.Sets > 1 {
		s.Value = types.Unknown
	}
}

// SymbolTable holds the symbols of one routine in registration order
type SymbolTable struct {
	symbols []*Symbol
	index   map[string]*Symbol
}

// NewSymbolTable creates an empty table
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{index: make(map[string]*Symbol)}
}

// Lookup returns the symbol for name (case-sensitive), or nil
func (t *SymbolTable) Lookup(name string) *Symbol {
	if t == nil {
		return nil
	}
	return t.index[name]
}

// Add registers a symbol. An existing symbol of the same name is returned
// unchanged.
func (t *SymbolTable) Add(s *Symbol) *Symbol {
	if existing, ok := t.index[s.Name]; ok {
		return existing
	}
	if s.Value == nil {
		s.Value = types.Unknown
	}
	t.index[s.Name] = s
	t.symbols = append(t.symbols, s)
	return s
}

// Symbols returns the symbols in registration order
func (t *SymbolTable) Symbols() []*Symbol {
	if t == nil {
		return nil
	}
	return t.symbols
}

// Len returns the number of symbols
func (t *SymbolTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.symbols)
}

// Superglobals are defined in every routine
var Superglobals = []string{
	"GLOBALS", "_SERVER", "_GET", "_POST", "_FILES", "_COOKIE",
	"_SESSION", "_REQUEST", "_ENV",
}

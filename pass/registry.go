package pass

import (
	"phpsa/analysis"
	"phpsa/parser"
)

// Pass is a diagnostic check run on every node of the kinds it registers
// for. Examine may emit notices through ctx; returning false skips the
// node's children for the remaining traversal.
type Pass interface {
	Name() string
	Description() string
	Kinds() []parser.NodeKind
	Examine(node parser.Node, ctx *analysis.Context) bool
}

// Registry holds passes keyed by node kind
type Registry struct {
	passes []Pass
	byKind map[parser.NodeKind][]Pass
}

// NewRegistry creates an empty pass registry
func NewRegistry() *Registry {
	return &Registry{byKind: make(map[parser.NodeKind][]Pass)}
}

// Default returns a registry with every built-in pass
func Default() *Registry {
	r := NewRegistry()
	r.Register(NewFormatString())
	return r
}

// Register adds a pass. Passes registered for the same kind run in
// registration order.
func (r *Registry) Register(p Pass) {
	r.passes = append(r.passes, p)
	for _, kind := range p.Kinds() {
		r.byKind[kind] = append(r.byKind[kind], p)
	}
}

// Passes returns the passes registered for kind
func (r *Registry) Passes(kind parser.NodeKind) []Pass {
	return r.byKind[kind]
}

// All returns every registered pass in registration order
func (r *Registry) All() []Pass {
	return r.passes
}

// Walk runs the registered passes over a routine body. Nested function and
// class declarations are analyzed as routines of their own and skipped.
func (r *Registry) Walk(stmts []parser.Stmt, ctx *analysis.Context) {
	if len(r.passes) == 0 {
		return
	}
	parser.InspectStmts(stmts, func(n parser.Node) bool {
		switch n.(type) {
		case *parser.FunctionStmt, *parser.ClassStmt:
			return false
		}
		descend := true
		for _, p := range r.byKind[n.Kind()] {
			if !p.Examine(n, ctx) {
				descend = false
			}
		}
		return descend
	})
}

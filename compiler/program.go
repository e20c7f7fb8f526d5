package compiler

import (
	"errors"
	"fmt"
	"sync"

	"phpsa/analysis"
	"phpsa/builtins"
	"phpsa/definition"
	"phpsa/parser"
	"phpsa/trace"
)

// MainRoutine names the top-level code of a file in traces and notices
const MainRoutine = "{main}"

// block is one namespace block of a file
type block struct {
	aliases *definition.AliasTable
	stmts   []parser.Stmt // top-level statements outside declarations
}

// decl is a harvested routine container in declaration order: a class or
// a free function
type decl struct {
	class definition.ClassID
	fn    *definition.FunctionDefinition
}

// unit is everything phase 2 needs from one file
type unit struct {
	path   string
	decls  []decl
	blocks []*block
}

// ============================================================================
// PHASE 1
// ============================================================================

// Harvester collects the declarations of every file into a definition
// table. Build ends the phase; the harvester cannot be used afterwards.
type Harvester struct {
	builder *definition.Builder
	units   []*unit
	sink    analysis.Sink
	tracer  *trace.Tracer
	built   bool
}

// NewHarvester creates a harvester. Duplicate declarations are reported
// to sink, which may be nil.
func NewHarvester(sink analysis.Sink, tracer *trace.Tracer) *Harvester {
	return &Harvester{
		builder: definition.NewBuilder(),
		sink:    sink,
		tracer:  tracer,
	}
}

// HarvestFile decodes and harvests the AST dump at path
func (h *Harvester) HarvestFile(path string) error {
	file, err := parser.DecodeFile(path)
	if err != nil {
		return err
	}
	return h.Harvest(file)
}

// Harvest records the top-level declarations of file
func (h *Harvester) Harvest(file *parser.File) error {
	if h.built {
		return definition.ErrSealed
	}
	u := &unit{path: file.Path}

	var global []parser.Stmt
	for _, stmt := range file.Stmts {
		ns, ok := stmt.(*parser.NamespaceStmt)
		if !ok {
			global = append(global, stmt)
			continue
		}
		if err := h.harvestBlock(u, ns.Name.String(), ns.Stmts); err != nil {
			return err
		}
	}
	if len(global) > 0 {
		if err := h.harvestBlock(u, "", global); err != nil {
			return err
		}
	}

	h.units = append(h.units, u)
	classes, functions := 0, 0
	for _, d := range u.decls {
		if d.fn != nil {
			functions++
		} else {
			classes++
		}
	}
	h.tracer.FileHarvested(file.Path, classes, functions)
	return nil
}

func (h *Harvester) harvestBlock(u *unit, ns string, stmts []parser.Stmt) error {
	b := &block{aliases: definition.NewAliasTable(ns)}
	u.blocks = append(u.blocks, b)

	// Imports apply to the whole block
	for _, stmt := range stmts {
		if use, ok := stmt.(*parser.UseStmt); ok {
			b.aliases.AddUse(use)
		}
	}

	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *parser.UseStmt:
		case *parser.ClassStmt:
			if err := h.harvestClass(u, b.aliases, s); err != nil {
				return err
			}
		case *parser.FunctionStmt:
			if err := h.harvestFunction(u, b.aliases, s); err != nil {
				return err
			}
		default:
			b.stmts = append(b.stmts, stmt)
			if err := h.harvestConditional(u, b.aliases, stmt); err != nil {
				return err
			}
		}
	}
	return nil
}

// harvestConditional picks up declarations nested in top-level control
// flow, such as if (!function_exists('f')) { function f() {} }
func (h *Harvester) harvestConditional(u *unit, aliases *definition.AliasTable, stmt parser.Stmt) error {
	var err error
	parser.Inspect(stmt, func(n parser.Node) bool {
		if err != nil {
			return false
		}
		switch s := n.(type) {
		case *parser.ClassStmt:
			err = h.harvestClass(u, aliases, s)
			return false
		case *parser.FunctionStmt:
			err = h.harvestFunction(u, aliases, s)
			return false
		case parser.Expr:
			// closures and anonymous classes declare nothing
			return false
		}
		return true
	})
	return err
}

func (h *Harvester) harvestClass(u *unit, aliases *definition.AliasTable, s *parser.ClassStmt) error {
	def := definition.NewClass(s.Name, aliases.Namespace(), u.path)
	def.Flags = s.Flags
	def.Node = s
	def.Aliases = aliases
	// Trait members depend on the using class
	def.UsesTraits = s.Type == parser.ClassTypeTrait
	if s.Extends != nil {
		def.Extends = aliases.ResolveClass(*s.Extends)
	}
	for _, iface := range s.Implements {
		def.Implements = append(def.Implements, aliases.ResolveClass(iface))
	}

	for _, member := range s.Members {
		switch m := member.(type) {
		case *parser.ClassMethodStmt:
			def.AddMethod(&definition.ClassMethod{Name: m.Name, Flags: m.Flags, Node: m})
			for _, p := range m.Params {
				if p.Flags != 0 {
					// promoted constructor property
					def.AddProperty(&definition.Property{Name: p.Name, Flags: p.Flags})
				}
			}
		case *parser.PropertyStmt:
			for _, p := range m.Props {
				def.AddProperty(&definition.Property{Name: p.Name, Flags: m.Flags, Node: p})
			}
		case *parser.ClassConstStmt:
			for _, k := range m.Consts {
				def.AddConst(&definition.Constant{Name: k.Name, Node: k})
			}
		case *parser.UnsupportedStmt:
			// use SomeTrait; enum cases
			def.UsesTraits = true
		}
	}

	id, err := h.builder.AddClass(def)
	if errors.Is(err, definition.ErrDuplicateClass) {
		h.emit(u.path, s, analysis.KindDuplicateClass, fmt.Sprintf("Class %s is already declared", def.FQN()))
		return nil
	}
	if err != nil {
		return fmt.Errorf("harvest %s: %w", u.path, err)
	}
	u.decls = append(u.decls, decl{class: id})
	return nil
}

func (h *Harvester) harvestFunction(u *unit, aliases *definition.AliasTable, s *parser.FunctionStmt) error {
	def := &definition.FunctionDefinition{
		Name:      s.Name,
		Namespace: aliases.Namespace(),
		Filepath:  u.path,
		Node:      s,
		Aliases:   aliases,
	}
	err := h.builder.AddFunction(def)
	if errors.Is(err, definition.ErrDuplicateFunction) {
		h.emit(u.path, s, analysis.KindDuplicateFunction, fmt.Sprintf("Function %s() is already declared", def.FQN()))
		return nil
	}
	if err != nil {
		return fmt.Errorf("harvest %s: %w", u.path, err)
	}
	u.decls = append(u.decls, decl{class: definition.NoClass, fn: def})
	return nil
}

func (h *Harvester) emit(path string, node parser.Node, kind, msg string) {
	h.tracer.Notice("", node.Position().Line, kind, msg)
	if h.sink == nil {
		return
	}
	h.sink.Emit(analysis.Notice{Kind: kind, Message: msg, File: path, Pos: node.Position()})
}

// Build ends phase 1 and returns the program ready for analysis
func (h *Harvester) Build() (*Program, error) {
	table, err := h.builder.Build()
	if err != nil {
		return nil, err
	}
	h.built = true
	units := h.units
	h.units = nil
	return &Program{Table: table, units: units}, nil
}

// Program is the harvested, immutable view of every input file
type Program struct {
	Table *definition.Table
	units []*unit
}

// Files returns the harvested file paths in harvest order
func (p *Program) Files() []string {
	out := make([]string, 0, len(p.units))
	for _, u := range p.units {
		out = append(out, u.path)
	}
	return out
}

// ============================================================================
// PHASE 2
// ============================================================================

// Walker is the secondary traversal run over every routine body after the
// expression compiler, typically a pass registry
type Walker interface {
	Walk(stmts []parser.Stmt, ctx *analysis.Context)
}

// Analyzer runs phase 2 over a Program
type Analyzer struct {
	Builtins *builtins.Registry
	Passes   Walker // may be nil
	Options  analysis.Options
	Sink     analysis.Sink
	Tracer   *trace.Tracer
	Workers  int // files analyzed concurrently; <= 1 means sequential
}

// NewAnalyzer creates an analyzer with default options and the builtin
// function set
func NewAnalyzer(sink analysis.Sink, passes Walker) *Analyzer {
	return &Analyzer{
		Builtins: builtins.NewRegistry(),
		Passes:   passes,
		Options:  analysis.DefaultOptions(),
		Sink:     sink,
	}
}

// Analyze analyzes every routine of prog. Notices reach the sink grouped by
// file, in harvest order, whatever the number of workers.
func (a *Analyzer) Analyze(prog *Program) {
	if a.Builtins == nil {
		a.Builtins = builtins.NewRegistry()
	}
	if a.Workers <= 1 || len(prog.units) < 2 {
		for _, u := range prog.units {
			a.analyzeUnit(prog.Table, u, a.Sink)
		}
		return
	}

	results := make([]*analysis.Collector, len(prog.units))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < a.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = &analysis.Collector{}
				a.analyzeUnit(prog.Table, prog.units[i], results[i])
			}
		}()
	}
	for i := range prog.units {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if a.Sink == nil {
		return
	}
	for _, c := range results {
		for _, n := range c.Notices() {
			a.Sink.Emit(n)
		}
	}
}

func (a *Analyzer) analyzeUnit(table *definition.Table, u *unit, sink analysis.Sink) {
	ctx := analysis.NewContext(u.path, table, a.Builtins, a.Options, sink, a.Tracer)

	for _, d := range u.decls {
		if d.fn != nil {
			a.analyzeRoutine(ctx, d.fn.FQN(), definition.NoClass, false, d.fn.Aliases, d.fn.Node.Params, d.fn.Node.Stmts)
			continue
		}
		class := table.Class(d.class)
		for _, m := range class.Methods() {
			if m.Node.Stmts == nil {
				continue
			}
			name := class.FQN() + "::" + m.Name
			a.analyzeRoutine(ctx, name, d.class, m.IsStatic(), class.Aliases, m.Node.Params, m.Node.Stmts)
		}
	}

	for _, b := range u.blocks {
		if len(b.stmts) == 0 {
			continue
		}
		a.analyzeRoutine(ctx, MainRoutine, definition.NoClass, false, b.aliases, nil, b.stmts)
	}
	ctx.Clear()
}

func (a *Analyzer) analyzeRoutine(ctx *analysis.Context, name string, scope definition.ClassID, static bool,
	aliases *definition.AliasTable, params []*parser.Param, stmts []parser.Stmt) {
	ctx.BeginRoutine(name, scope, static, aliases)
	c := New(ctx)
	for _, p := range params {
		if p.Default != nil {
			c.Compile(p.Default)
		}
		ctx.DefineParam(p)
	}
	c.CompileStmts(stmts)
	if a.Passes != nil {
		a.Passes.Walk(stmts, ctx)
	}
	ctx.EndRoutine()
}

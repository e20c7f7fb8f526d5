package analysis

import (
	"fmt"

	"phpsa/builtins"
	"phpsa/definition"
	"phpsa/parser"
	"phpsa/trace"
)

// Options tune analysis
type Options struct {
	MaxDepth        int  // expression nesting bound; 0 means unlimited
	UnusedVariables bool // report written but never read locals
}

// DefaultOptions returns the options used when no configuration is given
func DefaultOptions() Options {
	return Options{MaxDepth: 256, UnusedVariables: true}
}

// Context is the analysis session of one file. It tracks the routine being
// analyzed, its symbols and the notices emitted so far. A Context is used
// by one goroutine at a time.
type Context struct {
	File     string
	Table    *definition.Table
	Builtins *builtins.Registry
	Options  Options

	// Routine state, reset by BeginRoutine
	Scope   definition.ClassID
	Aliases *definition.AliasTable
	Routine string
	Static  bool // static method: no $this
	Symbols *SymbolTable

	notices      []Notice
	routineStart int // len(notices) when the routine began
	sink         Sink
	tracer       *trace.Tracer
}

// NewContext creates a context for one file. sink and tracer may be nil.
func NewContext(file string, table *definition.Table, reg *builtins.Registry, opts Options, sink Sink, tracer *trace.Tracer) *Context {
	if reg == nil {
		reg = builtins.NewRegistry()
	}
	return &Context{
		File:     file,
		Table:    table,
		Builtins: reg,
		Options:  opts,
		Scope:    definition.NoClass,
		Symbols:  NewSymbolTable(),
		sink:     sink,
		tracer:   tracer,
	}
}

// Tracer returns the trace channel, which may be nil
func (c *Context) Tracer() *trace.Tracer {
	return c.tracer
}

// Class returns the current scope's definition, or nil outside a class
func (c *Context) Class() *definition.ClassDefinition {
	if c.Table == nil {
		return nil
	}
	return c.Table.Class(c.Scope)
}

// Notice records a diagnostic at node's position. It never fails.
func (c *Context) Notice(kind, message string, node parser.Node) {
	pos := parser.NoPos
	if node != nil {
		pos = node.Position()
	}
	c.notices = append(c.notices, Notice{
		Kind:    kind,
		Message: message,
		File:    c.File,
		Pos:     pos,
		Routine: c.Routine,
	})
	c.tracer.Notice(c.Routine, pos.Line, kind, message)
}

// Noticef is Notice with a formatted message
func (c *Context) Noticef(kind string, node parser.Node, format string, args ...interface{}) {
	c.Notice(kind, fmt.Sprintf(format, args...), node)
}

// Notices returns the notices not yet flushed
func (c *Context) Notices() []Notice {
	return c.notices
}

// BeginRoutine starts the analysis of one method, function or top-level
// body with a fresh symbol table
func (c *Context) BeginRoutine(name string, scope definition.ClassID, static bool, aliases *definition.AliasTable) {
	c.Routine = name
	c.Scope = scope
	c.Static = static
	c.Aliases = aliases
	c.Symbols = NewSymbolTable()
	c.routineStart = len(c.notices)

	for _, g := range Superglobals {
		c.Symbols.Add(&Symbol{Name: g, Predefined: true})
	}
	if scope != definition.NoClass && !static {
		c.Symbols.Add(&Symbol{Name: "this", Predefined: true, Sets: 1})
	}
	c.tracer.RoutineStart(name, c.File)
}

// DefineParam registers a routine parameter
func (c *Context) DefineParam(p *parser.Param) {
	c.Symbols.Add(&Symbol{Name: p.Name, Sets: 1, Predefined: true})
}

// EndRoutine finishes the current routine: written but never read locals
// are reported in first-assignment order, then the symbols are discarded.
func (c *Context) EndRoutine() {
	if c.Options.UnusedVariables {
		for _, s := range c.Symbols.Symbols() {
			if s.Predefined || s.Gets > 0 || s.Sets == 0 {
				continue
			}
			c.Noticef(KindUnusedVariable, s.Node, "Variable $%s is assigned but never used", s.Name)
		}
	}
	c.tracer.RoutineFinish(c.Routine, c.Symbols.Len(), len(c.notices)-c.routineStart)
	c.Routine = ""
	c.Scope = definition.NoClass
	c.Static = false
	c.Aliases = nil
	c.Symbols = NewSymbolTable()
}

// Clear flushes pending notices to the sink in emission order and discards
// per-file state. It returns the number of notices flushed.
func (c *Context) Clear() int {
	n := len(c.notices)
	if c.sink != nil {
		for _, notice := range c.notices {
			c.sink.Emit(notice)
		}
	}
	c.notices = nil
	c.Symbols = NewSymbolTable()
	c.Scope = definition.NoClass
	c.Routine = ""
	return n
}

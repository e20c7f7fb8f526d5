package compiler

import (
	"phpsa/analysis"
	"phpsa/parser"
	"phpsa/types"
)

// CompileStmts walks a routine body in source order
func (c *Compiler) CompileStmts(stmts []parser.Stmt) {
	for _, s := range stmts {
		c.compileStmt(s)
	}
}

func (c *Compiler) compileStmt(stmt parser.Stmt) {
	switch s := stmt.(type) {
	case *parser.ExprStmt:
		c.Compile(s.Expr)

	case *parser.ReturnStmt:
		if s.Value != nil {
			c.Compile(s.Value)
		}

	case *parser.EchoStmt:
		for _, e := range s.Exprs {
			c.Compile(e)
		}

	case *parser.IfStmt:
		c.Compile(s.Cond)
		c.CompileStmts(s.Stmts)
		for _, ei := range s.ElseIfs {
			c.Compile(ei.Cond)
			c.CompileStmts(ei.Stmts)
		}
		c.CompileStmts(s.Else)

	case *parser.WhileStmt:
		c.Compile(s.Cond)
		c.CompileStmts(s.Stmts)

	case *parser.ForeachStmt:
		c.Compile(s.Expr)
		if s.KeyVar != nil {
			c.assignTarget(s.KeyVar, types.Unknown)
		}
		c.assignTarget(s.ValueVar, types.Unknown)
		c.CompileStmts(s.Stmts)

	case *parser.FunctionStmt, *parser.ClassStmt, *parser.NamespaceStmt, *parser.UseStmt:
		// Declarations are harvested and analyzed as routines of their own

	case *parser.UnsupportedStmt:
		c.compileUnsupportedStmt(s)

	default:
		if stmt != nil {
			c.ctx.Tracer().UnknownNode(c.ctx.Routine, stmt.Position().Line, stmt.Kind().String())
		}
	}
}

func (c *Compiler) compileUnsupportedStmt(s *parser.UnsupportedStmt) {
	switch s.NodeType {
	case "Stmt_Global", "Stmt_Static", "Stmt_StaticVar", "Stmt_Catch":
		// global $a; static $a = 1; catch (E $e) bind variables
		for _, child := range s.Children {
			switch n := child.(type) {
			case *parser.VariableExpr:
				c.bindVariable(n)
			case parser.Expr:
				c.Compile(n)
			case parser.Stmt:
				c.compileStmt(n)
			}
		}
		return

	case "Stmt_Unset":
		for _, child := range s.Children {
			if e, ok := child.(parser.Expr); ok {
				c.compileQuiet(e)
			}
		}
		return
	}

	for _, child := range s.Children {
		switch n := child.(type) {
		case parser.Stmt:
			c.compileStmt(n)
		case parser.Expr:
			c.Compile(n)
		}
	}
}

// bindVariable defines a variable whose value comes from outside the
// routine's data flow. It is never reported as unused.
func (c *Compiler) bindVariable(v *parser.VariableExpr) {
	if v.NameExpr != nil {
		c.Compile(v.NameExpr)
		return
	}
	if sym := c.ctx.Symbols.Lookup(v.Name); sym != nil {
		sym.IncSets()
		sym.Predefined = true
		return
	}
	c.ctx.Symbols.Add(&analysis.Symbol{Name: v.Name, Sets: 1, Predefined: true, Node: v})
}

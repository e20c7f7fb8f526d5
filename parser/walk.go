package parser

// Inspect traverses the tree rooted at node depth-first, in source order.
// It calls fn(n) for each node; if fn returns false the children of n are
// skipped. Nil nodes are never passed to fn.
func Inspect(node Node, fn func(Node) bool) {
	if isNil(node) || !fn(node) {
		return
	}
	for _, child := range Children(node) {
		Inspect(child, fn)
	}
}

// InspectStmts runs Inspect over each statement in order
func InspectStmts(stmts []Stmt, fn func(Node) bool) {
	for _, s := range stmts {
		Inspect(s, fn)
	}
}

// Children returns the direct child nodes of node in source order
func Children(node Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, n := range nodes {
			if !isNil(n) {
				out = append(out, n)
			}
		}
	}
	addStmts := func(stmts []Stmt) {
		for _, s := range stmts {
			add(s)
		}
	}
	addArgs := func(args []*Arg) {
		for _, a := range args {
			if a != nil {
				add(a.Value)
			}
		}
	}
	addParams := func(params []*Param) {
		for _, p := range params {
			if p != nil {
				add(p.Default)
			}
		}
	}

	switch n := node.(type) {
	case *NamespaceStmt:
		addStmts(n.Stmts)
	case *ClassStmt:
		addStmts(n.Members)
	case *ClassMethodStmt:
		addParams(n.Params)
		addStmts(n.Stmts)
	case *PropertyStmt:
		for _, p := range n.Props {
			add(p.Default)
		}
	case *ClassConstStmt:
		for _, c := range n.Consts {
			add(c.Value)
		}
	case *FunctionStmt:
		addParams(n.Params)
		addStmts(n.Stmts)
	case *ExprStmt:
		add(n.Expr)
	case *ReturnStmt:
		add(n.Value)
	case *EchoStmt:
		for _, e := range n.Exprs {
			add(e)
		}
	case *IfStmt:
		add(n.Cond)
		addStmts(n.Stmts)
		for _, ei := range n.ElseIfs {
			add(ei.Cond)
			addStmts(ei.Stmts)
		}
		addStmts(n.Else)
	case *WhileStmt:
		add(n.Cond)
		addStmts(n.Stmts)
	case *ForeachStmt:
		add(n.Expr, n.KeyVar, n.ValueVar)
		addStmts(n.Stmts)
	case *UnsupportedStmt:
		add(n.Children...)
	case *VariableExpr:
		add(n.NameExpr)
	case *AssignExpr:
		add(n.Target, n.Value)
	case *AssignOpExpr:
		add(n.Target, n.Value)
	case *BinaryExpr:
		add(n.Left, n.Right)
	case *UnaryExpr:
		add(n.Operand)
	case *ArrayExpr:
		for _, item := range n.Items {
			if item != nil {
				add(item.Key, item.Value)
			}
		}
	case *TernaryExpr:
		add(n.Cond, n.Then, n.Else)
	case *MethodCallExpr:
		add(n.Var, n.NameExpr)
		addArgs(n.Args)
	case *StaticCallExpr:
		add(n.ClassExpr, n.NameExpr)
		addArgs(n.Args)
	case *PropertyFetchExpr:
		add(n.Var, n.NameExpr)
	case *ClassConstFetchExpr:
		add(n.ClassExpr)
	case *FuncCallExpr:
		add(n.NameExpr)
		addArgs(n.Args)
	case *NewExpr:
		add(n.ClassExpr)
		addArgs(n.Args)
	case *UnsupportedExpr:
		add(n.Children...)
	}
	return out
}

func isNil(n Node) bool {
	return n == nil
}

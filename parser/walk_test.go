package parser

import (
	"phpsa/types"
	"testing"
)

func TestInspectOrder(t *testing.T) {
	// function f() { $a = 1 / 0; printf('%d', $a); }
	body := []Stmt{
		&ExprStmt{Expr: &AssignExpr{
			Target: &VariableExpr{Name: "a"},
			Value:  &BinaryExpr{Operator: OpDiv, Left: lit(types.NewInt(1)), Right: lit(types.NewInt(0))},
		}},
		&ExprStmt{Expr: &FuncCallExpr{
			Name: NewName("printf"),
			Args: []*Arg{{Value: lit(types.NewStr("%d"))}, {Value: &VariableExpr{Name: "a"}}},
		}},
	}
	fn := &FunctionStmt{Name: "f", Stmts: body}

	var kinds []NodeKind
	Inspect(fn, func(n Node) bool {
		kinds = append(kinds, n.Kind())
		return true
	})

	expected := []NodeKind{
		KindFunction,
		KindExpression, KindAssign, KindVariable, KindBinary, KindLiteral, KindLiteral,
		KindExpression, KindFuncCall, KindLiteral, KindVariable,
	}
	if len(kinds) != len(expected) {
		t.Fatalf("Expected %d nodes, got %d: %v", len(expected), len(kinds), kinds)
	}
	for i := range expected {
		if kinds[i] != expected[i] {
			t.Errorf("node %d: expected %s, got %s", i, expected[i], kinds[i])
		}
	}
}

func TestInspectSkipsChildren(t *testing.T) {
	expr := &BinaryExpr{Operator: OpPlus, Left: lit(types.NewInt(1)), Right: lit(types.NewInt(2))}
	count := 0
	Inspect(expr, func(n Node) bool {
		count++
		return false
	})
	if count != 1 {
		t.Errorf("Expected only the root to be visited, got %d", count)
	}
}

func TestInspectUnsupportedChildren(t *testing.T) {
	call := &FuncCallExpr{Name: NewName("sprintf")}
	stmt := &UnsupportedStmt{NodeType: "Stmt_Try", Children: []Node{&ExprStmt{Expr: call}}}
	found := false
	InspectStmts([]Stmt{stmt}, func(n Node) bool {
		if n == Node(call) {
			found = true
		}
		return true
	})
	if !found {
		t.Error("calls nested in unsupported statements should still be visited")
	}
}

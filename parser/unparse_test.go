package parser

import (
	"phpsa/types"
	"testing"
)

func lit(v types.Value) *LiteralExpr { return &LiteralExpr{Value: v} }

func TestUnparse(t *testing.T) {
	tests := []struct {
		name     string
		expr     Expr
		expected string
	}{
		{"int", lit(types.NewInt(42)), "42"},
		{"float", lit(types.NewFloat(2)), "2.0"},
		{"string", lit(types.NewStr("it's")), `'it\'s'`},
		{"variable", &VariableExpr{Name: "a"}, "$a"},
		{"precedence", &BinaryExpr{
			Operator: OpMul,
			Left:     &BinaryExpr{Operator: OpPlus, Left: lit(types.NewInt(1)), Right: lit(types.NewInt(2))},
			Right:    lit(types.NewInt(3)),
		}, "(1 + 2) * 3"},
		{"unary", &UnaryExpr{Operator: OpUnaryPlus, Operand: &ArrayExpr{}}, "+[]"},
		{"method call", &MethodCallExpr{
			Var:  &VariableExpr{Name: "this"},
			Name: "run",
			Args: []*Arg{{Value: lit(types.NewInt(1))}, {Value: &VariableExpr{Name: "rest"}, Unpack: true}},
		}, "$this->run(1, ...$rest)"},
		{"static call", &StaticCallExpr{Class: NewName("self"), Name: "make"}, "self::make()"},
		{"const fetch", &ClassConstFetchExpr{Class: NewName(`\Foo`), Name: "BAR"}, `\Foo::BAR`},
		{"func call", &FuncCallExpr{Name: NewName("printf"), Args: []*Arg{{Value: lit(types.NewStr("%d"))}}}, "printf('%d')"},
		{"assign", &AssignExpr{Target: &VariableExpr{Name: "x"}, Value: lit(types.NewInt(0))}, "$x = 0"},
		{"compound", &AssignOpExpr{Operator: OpDiv, Target: &VariableExpr{Name: "x"}, Value: lit(types.NewInt(0))}, "$x /= 0"},
		{"new", &NewExpr{Class: NewName("Foo")}, "new Foo()"},
		{"unsupported", &UnsupportedExpr{NodeType: "Expr_Closure"}, "{Expr_Closure}"},
		{"array", &ArrayExpr{Items: []*ArrayItem{
			{Key: lit(types.NewStr("k")), Value: lit(types.NewInt(1))},
			{Value: lit(types.NewInt(2))},
		}}, "['k' => 1, 2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Unparse(tt.expr)
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

package compiler

import (
	"math"
	"strings"
	"testing"

	"phpsa/analysis"
	"phpsa/definition"
	"phpsa/parser"
	"phpsa/types"
)

// AST construction helpers

func lit(v types.Value) *parser.LiteralExpr { return &parser.LiteralExpr{Value: v} }
func intLit(i int64) *parser.LiteralExpr     { return lit(types.NewInt(i)) }
func strLit(s string) *parser.LiteralExpr    { return lit(types.NewStr(s)) }
func variable(name string) *parser.VariableExpr {
	return &parser.VariableExpr{Name: name}
}

func constant(name string) *parser.ConstFetchExpr {
	return &parser.ConstFetchExpr{Name: parser.NewName(name)}
}

func binary(op parser.BinaryOp, l, r parser.Expr) *parser.BinaryExpr {
	return &parser.BinaryExpr{Operator: op, Left: l, Right: r}
}

func unary(op parser.UnaryOp, operand parser.Expr) *parser.UnaryExpr {
	return &parser.UnaryExpr{Operator: op, Operand: operand}
}

func assign(target, value parser.Expr) *parser.AssignExpr {
	return &parser.AssignExpr{Target: target, Value: value}
}

func arrayLit(values ...parser.Expr) *parser.ArrayExpr {
	arr := &parser.ArrayExpr{}
	for _, v := range values {
		arr.Items = append(arr.Items, &parser.ArrayItem{Value: v})
	}
	return arr
}

func args(values ...parser.Expr) []*parser.Arg {
	out := make([]*parser.Arg, 0, len(values))
	for _, v := range values {
		out = append(out, &parser.Arg{Value: v})
	}
	return out
}

func funcCall(name string, values ...parser.Expr) *parser.FuncCallExpr {
	return &parser.FuncCallExpr{Name: parser.NewName(name), Args: args(values...)}
}

func this() *parser.VariableExpr { return variable("this") }

// routine returns a context positioned inside a routine of scope
func routine(table *definition.Table, scope definition.ClassID, static bool) *analysis.Context {
	ctx := analysis.NewContext("test.php", table, nil, analysis.DefaultOptions(), nil, nil)
	ctx.BeginRoutine("test", scope, static, nil)
	return ctx
}

func kindsOf(ctx *analysis.Context) []string {
	var out []string
	for _, n := range ctx.Notices() {
		out = append(out, n.Kind)
	}
	return out
}

func countKind(ctx *analysis.Context, kind string) int {
	n := 0
	for _, notice := range ctx.Notices() {
		if notice.Kind == kind {
			n++
		}
	}
	return n
}

func method(name string, flags parser.Modifiers) *definition.ClassMethod {
	return &definition.ClassMethod{
		Name:  name,
		Flags: flags,
		Node:  &parser.ClassMethodStmt{Name: name, Flags: flags, Stmts: []parser.Stmt{}},
	}
}

// fixture builds:
//
//	class Base { public function inherited(); public $baseProp; const BASE = 'b'; }
//	class Foo extends Base { public function bar(); public static function make(); public $prop; const ONE = 1; }
//	class Magic { __call, __callStatic, __get }
//	class Lib extends External {}
func fixture(t *testing.T) (*definition.Table, map[string]definition.ClassID) {
	t.Helper()
	base := definition.NewClass("Base", "", "base.php")
	base.AddMethod(method("inherited", parser.ModPublic))
	base.AddProperty(&definition.Property{Name: "baseProp"})
	base.AddConst(&definition.Constant{Name: "BASE", Node: &parser.ConstItem{Name: "BASE", Value: strLit("b")}})

	foo := definition.NewClass("Foo", "", "foo.php")
	foo.Extends = "Base"
	foo.AddMethod(method("bar", parser.ModPublic))
	foo.AddMethod(method("make", parser.ModPublic|parser.ModStatic))
	foo.AddProperty(&definition.Property{Name: "prop"})
	foo.AddConst(&definition.Constant{Name: "ONE", Node: &parser.ConstItem{Name: "ONE", Value: intLit(1)}})

	magic := definition.NewClass("Magic", "", "magic.php")
	magic.AddMethod(method("__call", parser.ModPublic))
	magic.AddMethod(method("__callStatic", parser.ModPublic|parser.ModStatic))
	magic.AddMethod(method("__get", parser.ModPublic))

	lib := definition.NewClass("Lib", "", "lib.php")
	lib.Extends = "External"

	b := definition.NewBuilder()
	ids := make(map[string]definition.ClassID)
	for _, c := range []*definition.ClassDefinition{base, foo, magic, lib} {
		id, err := b.AddClass(c)
		if err != nil {
			t.Fatalf("AddClass(%s) error: %v", c.Name, err)
		}
		ids[c.Name] = id
	}
	if err := b.AddFunction(&definition.FunctionDefinition{Name: "helper", Node: &parser.FunctionStmt{
		Name:   "helper",
		Params: []*parser.Param{{Name: "in"}, {Name: "out", ByRef: true}},
	}}); err != nil {
		t.Fatalf("AddFunction error: %v", err)
	}
	table, err := b.Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	return table, ids
}

func TestCompileLiterals(t *testing.T) {
	tests := []struct {
		name string
		expr parser.Expr
		want types.Value
	}{
		{"int", intLit(42), types.NewInt(42)},
		{"negative int", intLit(-7), types.NewInt(-7)},
		{"float", lit(types.NewFloat(1.5)), types.NewFloat(1.5)},
		{"string", strLit("hello"), types.NewStr("hello")},
		{"empty string", strLit(""), types.NewStr("")},
		{"true", constant("true"), types.NewBool(true)},
		{"FALSE", constant("FALSE"), types.NewBool(false)},
		{"null", constant("null"), types.Null},
		{"PHP_EOL", constant("PHP_EOL"), types.NewStr("\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := routine(nil, definition.NoClass, false)
			got := Compile(tt.expr, ctx)
			if got.Type() != tt.want.Type() {
				t.Fatalf("Expected type %s, got %s", tt.want.Type(), got.Type())
			}
			if !got.Equal(tt.want) {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
			if n := len(ctx.Notices()); n != 0 {
				t.Errorf("Expected no notices, got %d", n)
			}
		})
	}
}

func TestUnknownConstant(t *testing.T) {
	ctx := routine(nil, definition.NoClass, false)
	if got := Compile(constant("SOME_FLAG"), ctx); types.IsKnown(got) {
		t.Errorf("Expected Unknown, got %s", got)
	}
	if n := len(ctx.Notices()); n != 0 {
		t.Errorf("Expected no notices, got %d", n)
	}
}

func TestDivisionByZero(t *testing.T) {
	defined := func(ctx *analysis.Context) {
		Compile(assign(variable("a"), intLit(5)), ctx)
	}
	tests := []struct {
		name  string
		setup func(*analysis.Context)
		expr  parser.Expr
	}{
		{"int dividend", nil, binary(parser.OpDiv, intLit(10), intLit(0))},
		{"float dividend", nil, binary(parser.OpDiv, lit(types.NewFloat(2.5)), intLit(0))},
		{"string dividend", nil, binary(parser.OpDiv, strLit("abc"), intLit(0))},
		{"array dividend", nil, binary(parser.OpDiv, arrayLit(intLit(1)), intLit(0))},
		{"defined variable", defined, binary(parser.OpDiv, variable("a"), intLit(0))},
		{"undefined variable", nil, binary(parser.OpDiv, variable("b"), intLit(0))},
		{"call dividend", nil, binary(parser.OpDiv, funcCall("time"), intLit(0))},
		{"float zero", nil, binary(parser.OpDiv, intLit(1), lit(types.NewFloat(0)))},
		{"modulo", nil, binary(parser.OpMod, intLit(1), intLit(0))},
		{"compound", defined, &parser.AssignOpExpr{Operator: parser.OpDiv, Target: variable("a"), Value: intLit(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := routine(nil, definition.NoClass, false)
			if tt.setup != nil {
				tt.setup(ctx)
			}
			got := Compile(tt.expr, ctx)
			if n := countKind(ctx, analysis.KindDivisionZero); n != 1 {
				t.Errorf("Expected 1 division-zero notice, got %d", n)
			}
			if types.IsKnown(got) {
				t.Errorf("Expected Unknown result, got %s", got)
			}
		})
	}

	t.Run("nonzero divisor", func(t *testing.T) {
		ctx := routine(nil, definition.NoClass, false)
		got := Compile(binary(parser.OpDiv, intLit(6), intLit(3)), ctx)
		if len(ctx.Notices()) != 0 {
			t.Errorf("Expected no notices, got %v", kindsOf(ctx))
		}
		if !got.Equal(types.NewInt(2)) {
			t.Errorf("Expected 2, got %s", got)
		}
	})

	t.Run("message", func(t *testing.T) {
		ctx := routine(nil, definition.NoClass, false)
		Compile(binary(parser.OpDiv, intLit(1), intLit(0)), ctx)
		if msg := ctx.Notices()[0].Message; msg != "You trying to use division on 0" {
			t.Errorf("Unexpected message %q", msg)
		}
	})
}

func TestUndefinedVariable(t *testing.T) {
	ctx := routine(nil, definition.NoClass, false)
	Compile(variable("x"), ctx)
	Compile(variable("x"), ctx)
	Compile(binary(parser.OpPlus, variable("x"), intLit(1)), ctx)
	if n := countKind(ctx, analysis.KindUndefinedVariable); n != 1 {
		t.Fatalf("Expected 1 undefined-variable notice, got %d", n)
	}
	if msg := ctx.Notices()[0].Message; msg != "You trying to use undefined variable $x" {
		t.Errorf("Unexpected message %q", msg)
	}

	// A fresh routine starts with a fresh symbol table
	ctx.EndRoutine()
	ctx.BeginRoutine("again", definition.NoClass, false, nil)
	Compile(variable("x"), ctx)
	if n := countKind(ctx, analysis.KindUndefinedVariable); n != 2 {
		t.Errorf("Expected 2 undefined-variable notices after a new routine, got %d", n)
	}
}

func TestPredefinedVariables(t *testing.T) {
	table, ids := fixture(t)
	tests := []struct {
		name   string
		scope  definition.ClassID
		static bool
		expr   parser.Expr
		want   int
	}{
		{"superglobal", definition.NoClass, false, variable("_GET"), 0},
		{"this in method", ids["Foo"], false, this(), 0},
		{"this in static method", ids["Foo"], true, this(), 1},
		{"this outside class", definition.NoClass, false, this(), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := routine(table, tt.scope, tt.static)
			Compile(tt.expr, ctx)
			if n := countKind(ctx, analysis.KindUndefinedVariable); n != tt.want {
				t.Errorf("Expected %d notices, got %d", tt.want, n)
			}
		})
	}
}

func TestAssignment(t *testing.T) {
	ctx := routine(nil, definition.NoClass, false)

	got := Compile(assign(variable("a"), intLit(3)), ctx)
	if !got.Equal(types.NewInt(3)) {
		t.Errorf("Expected assignment value 3, got %s", got)
	}
	if got := Compile(variable("a"), ctx); !got.Equal(types.NewInt(3)) {
		t.Errorf("Expected $a to be 3, got %s", got)
	}

	// A second write forgets the value
	Compile(assign(variable("a"), intLit(4)), ctx)
	if got := Compile(variable("a"), ctx); types.IsKnown(got) {
		t.Errorf("Expected $a to be Unknown after two writes, got %s", got)
	}

	sym := ctx.Symbols.Lookup("a")
	if sym.Sets != 2 || sym.Gets != 2 {
		t.Errorf("Expected 2 sets and 2 gets, got %d and %d", sym.Sets, sym.Gets)
	}

	// The right-hand side is still checked
	Compile(assign(variable("a"), variable("missing")), ctx)
	if n := countKind(ctx, analysis.KindUndefinedVariable); n != 1 {
		t.Errorf("Expected 1 undefined-variable notice, got %d", n)
	}
}

func TestDestructuringAndDimAssign(t *testing.T) {
	ctx := routine(nil, definition.NoClass, false)
	Compile(assign(arrayLit(variable("a"), variable("b")), funcCall("explode", strLit(","), strLit("x,y"))), ctx)
	dim := &parser.UnsupportedExpr{NodeType: "Expr_ArrayDimFetch", Children: []parser.Node{variable("list"), intLit(0)}}
	Compile(assign(dim, intLit(1)), ctx)
	Compile(binary(parser.OpConcat, variable("a"), variable("b")), ctx)
	Compile(variable("list"), ctx)
	if n := len(ctx.Notices()); n != 0 {
		t.Errorf("Expected no notices, got %v", kindsOf(ctx))
	}
}

func TestCoalesceAndIssetAreQuiet(t *testing.T) {
	ctx := routine(nil, definition.NoClass, false)
	got := Compile(binary(parser.OpCoalesce, variable("maybe"), strLit("d")), ctx)
	Compile(&parser.UnsupportedExpr{NodeType: "Expr_Isset", Children: []parser.Node{variable("other")}}, ctx)
	Compile(&parser.UnsupportedExpr{NodeType: "Expr_Empty", Children: []parser.Node{variable("third")}}, ctx)
	if n := len(ctx.Notices()); n != 0 {
		t.Errorf("Expected no notices, got %v", kindsOf(ctx))
	}
	if types.IsKnown(got) {
		t.Errorf("Expected Unknown, got %s", got)
	}

	ctx = routine(nil, definition.NoClass, false)
	got = Compile(binary(parser.OpCoalesce, constant("null"), strLit("d")), ctx)
	if !got.Equal(types.NewStr("d")) {
		t.Errorf("Expected \"d\", got %s", got)
	}
}

func TestUnaryPlus(t *testing.T) {
	tests := []struct {
		name    string
		operand parser.Expr
		want    types.Value
	}{
		{"int", intLit(5), types.NewInt(5)},
		{"float", lit(types.NewFloat(1.9)), types.NewInt(1)},
		{"true", constant("true"), types.NewInt(1)},
		{"false", constant("false"), types.NewInt(0)},
		{"numeric string", strLit("12"), types.NewInt(12)},
		{"leading numeric string", strLit("7 apples"), types.NewInt(7)},
		{"non-numeric string", strLit("abc"), types.NewInt(0)},
		{"null", constant("null"), types.NewInt(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := routine(nil, definition.NoClass, false)
			got := Compile(unary(parser.OpUnaryPlus, tt.operand), ctx)
			if got.Type() != types.TYPE_INT {
				t.Fatalf("Expected INT, got %s", got.Type())
			}
			if !got.Equal(tt.want) {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
			if n := len(ctx.Notices()); n != 0 {
				t.Errorf("Expected no notices, got %d", n)
			}
		})
	}

	t.Run("array", func(t *testing.T) {
		ctx := routine(nil, definition.NoClass, false)
		got := Compile(unary(parser.OpUnaryPlus, arrayLit(intLit(1), intLit(2))), ctx)
		if types.IsKnown(got) {
			t.Errorf("Expected Unknown, got %s", got)
		}
		kinds := kindsOf(ctx)
		if len(kinds) != 1 || kinds[0] != analysis.KindUnsupportedOps {
			t.Errorf("Expected one unsupported-operand-types notice, got %v", kinds)
		}
	})

	t.Run("unknown operand", func(t *testing.T) {
		ctx := routine(nil, definition.NoClass, false)
		got := Compile(unary(parser.OpUnaryPlus, funcCall("time")), ctx)
		if types.IsKnown(got) {
			t.Errorf("Expected Unknown, got %s", got)
		}
		if n := len(ctx.Notices()); n != 0 {
			t.Errorf("Expected no notices, got %d", n)
		}
	})
}

func TestOperatorFolding(t *testing.T) {
	tests := []struct {
		name string
		expr parser.Expr
		want types.Value
	}{
		{"add", binary(parser.OpPlus, intLit(1), intLit(2)), types.NewInt(3)},
		{"add float", binary(parser.OpPlus, intLit(1), lit(types.NewFloat(0.5))), types.NewFloat(1.5)},
		{"overflow", binary(parser.OpPlus, constant("PHP_INT_MAX"), intLit(1)), types.NewFloat(float64(math.MaxInt64) + 1)},
		{"numeric strings", binary(parser.OpMul, strLit("3"), strLit("4")), types.NewInt(12)},
		{"inexact division", binary(parser.OpDiv, intLit(7), intLit(2)), types.NewFloat(3.5)},
		{"modulo", binary(parser.OpMod, intLit(-7), intLit(3)), types.NewInt(-1)},
		{"power", binary(parser.OpPow, intLit(2), intLit(10)), types.NewInt(1024)},
		{"negative power", binary(parser.OpPow, intLit(2), intLit(-1)), types.NewFloat(0.5)},
		{"concat", binary(parser.OpConcat, strLit("a"), intLit(1)), types.NewStr("a1")},
		{"spaceship placeholder", binary(parser.OpSpaceship, intLit(1), intLit(2)), types.NewInt(0)},
		{"loose equal", binary(parser.OpEqual, intLit(1), strLit("1")), types.NewBool(true)},
		{"loose equal non-numeric", binary(parser.OpEqual, intLit(0), strLit("a")), types.NewBool(false)},
		{"identical", binary(parser.OpIdentical, intLit(1), strLit("1")), types.NewBool(false)},
		{"smaller", binary(parser.OpSmaller, intLit(1), intLit(2)), types.NewBool(true)},
		{"string compare", binary(parser.OpGreater, strLit("b"), strLit("a")), types.NewBool(true)},
		{"and", binary(parser.OpBooleanAnd, constant("true"), intLit(0)), types.NewBool(false)},
		{"bitwise", binary(parser.OpBitwiseOr, intLit(4), intLit(1)), types.NewInt(5)},
		{"shift", binary(parser.OpShiftLeft, intLit(1), intLit(3)), types.NewInt(8)},
		{"minus", unary(parser.OpUnaryMinus, intLit(3)), types.NewInt(-3)},
		{"not", unary(parser.OpNot, strLit("")), types.NewBool(true)},
		{"bitwise not", unary(parser.OpBitwiseNot, intLit(0)), types.NewInt(-1)},
		{"ternary", &parser.TernaryExpr{Cond: constant("true"), Then: intLit(1), Else: intLit(2)}, types.NewInt(1)},
		{"short ternary", &parser.TernaryExpr{Cond: intLit(0), Else: intLit(2)}, types.NewInt(2)},
		{"array", arrayLit(intLit(1), strLit("x")), types.NewArray([]types.Value{types.NewInt(1), types.NewStr("x")})},
		{"builtin", funcCall("strlen", strLit("abcd")), types.NewInt(4)},
		{"nested builtin", funcCall("strtoupper", binary(parser.OpConcat, strLit("a"), strLit("b"))), types.NewStr("AB")},
		{"int cast", &parser.UnsupportedExpr{NodeType: "Expr_Cast_Int", Children: []parser.Node{strLit("42abc")}}, types.NewInt(42)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := routine(nil, definition.NoClass, false)
			got := Compile(tt.expr, ctx)
			if got.Type() != tt.want.Type() {
				t.Fatalf("Expected type %s, got %s (%s)", tt.want.Type(), got.Type(), got)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
			if n := len(ctx.Notices()); n != 0 {
				t.Errorf("Expected no notices, got %v", kindsOf(ctx))
			}
		})
	}
}

func TestArrayKeys(t *testing.T) {
	keyed := &parser.ArrayExpr{Items: []*parser.ArrayItem{
		{Key: strLit("a"), Value: intLit(1)},
		{Key: strLit("b"), Value: intLit(2)},
		{Key: strLit("a"), Value: intLit(3)},
		{Key: intLit(1), Value: intLit(4)},
		{Key: strLit("1"), Value: intLit(5)},
	}}
	ctx := routine(nil, definition.NoClass, false)
	got, ok := Compile(keyed, ctx).(types.ArrayValue)
	if !ok {
		t.Fatalf("Expected an array")
	}
	want := types.NewArray([]types.Value{types.NewInt(3), types.NewInt(2), types.NewInt(5)})
	if !got.Equal(want) {
		t.Errorf("Expected %s, got %s", want, got)
	}

	spread := &parser.ArrayExpr{Items: []*parser.ArrayItem{{Value: variable("_GET"), Unpack: true}}}
	if got := Compile(spread, ctx); types.IsKnown(got) {
		t.Errorf("Expected Unknown for spread, got %s", got)
	}
}

func TestUnsupportedOperands(t *testing.T) {
	tests := []struct {
		name string
		expr parser.Expr
		want int
	}{
		{"array plus int", binary(parser.OpPlus, arrayLit(intLit(1)), intLit(1)), 1},
		{"array union", binary(parser.OpPlus, arrayLit(intLit(1)), arrayLit(intLit(2))), 0},
		{"array minus array", binary(parser.OpMinus, arrayLit(), arrayLit()), 1},
		{"array concat", binary(parser.OpConcat, arrayLit(), strLit("x")), 0},
		{"unknown operand", binary(parser.OpMul, funcCall("time"), arrayLit()), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := routine(nil, definition.NoClass, false)
			Compile(tt.expr, ctx)
			if n := countKind(ctx, analysis.KindUnsupportedOps); n != tt.want {
				t.Errorf("Expected %d notices, got %d", tt.want, n)
			}
		})
	}

	ctx := routine(nil, definition.NoClass, false)
	Compile(binary(parser.OpMul, arrayLit(), intLit(2)), ctx)
	if msg := ctx.Notices()[0].Message; msg != "Unsupported operand types: array * int" {
		t.Errorf("Unexpected message %q", msg)
	}
}

func TestMethodCallOnThis(t *testing.T) {
	table, ids := fixture(t)
	call := func(name string) *parser.MethodCallExpr {
		return &parser.MethodCallExpr{Var: this(), Name: name}
	}
	tests := []struct {
		name   string
		scope  string
		static bool
		expr   parser.Expr
		want   int
	}{
		{"declared", "Foo", false, call("bar"), 0},
		{"case insensitive", "Foo", false, call("BAR"), 0},
		{"inherited", "Foo", false, call("inherited"), 0},
		{"missing", "Foo", false, call("missing"), 1},
		{"missing in parent class", "Base", false, call("bar"), 1},
		{"magic __call", "Magic", false, call("anything"), 0},
		{"external parent", "Lib", false, call("anything"), 0},
		{"other object", "Foo", false, &parser.MethodCallExpr{Var: variable("_GET"), Name: "missing"}, 0},
		{"dynamic name", "Foo", false, &parser.MethodCallExpr{Var: this(), NameExpr: strLit("missing")}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := routine(table, ids[tt.scope], tt.static)
			Compile(tt.expr, ctx)
			if n := countKind(ctx, analysis.KindUndefinedMCall); n != tt.want {
				t.Errorf("Expected %d undefined-mcall notices, got %d", tt.want, n)
			}
		})
	}

	ctx := routine(table, ids["Foo"], false)
	Compile(call("missing"), ctx)
	if msg := ctx.Notices()[0].Message; msg != "Method missing() is not exists on this scope" {
		t.Errorf("Unexpected message %q", msg)
	}
}

func TestMethodCallArgumentsChecked(t *testing.T) {
	table, ids := fixture(t)
	ctx := routine(table, ids["Foo"], false)
	Compile(&parser.MethodCallExpr{Var: this(), Name: "bar", Args: args(binary(parser.OpDiv, intLit(1), intLit(0)))}, ctx)
	if n := countKind(ctx, analysis.KindDivisionZero); n != 1 {
		t.Errorf("Expected 1 division-zero notice, got %d", n)
	}
}

func TestStaticCall(t *testing.T) {
	table, ids := fixture(t)
	call := func(class, name string) *parser.StaticCallExpr {
		return &parser.StaticCallExpr{Class: parser.NewName(class), Name: name}
	}
	tests := []struct {
		name  string
		scope string
		expr  parser.Expr
		kind  string
		want  int
	}{
		{"self static", "Foo", call("self", "make"), analysis.KindUndefinedSCall, 0},
		{"self non-static", "Foo", call("self", "bar"), analysis.KindUndefinedSCall, 1},
		{"self missing", "Foo", call("self", "missing"), analysis.KindUndefinedSCall, 1},
		{"static missing", "Foo", call("static", "missing"), analysis.KindUndefinedSCall, 1},
		{"self magic", "Magic", call("self", "missing"), analysis.KindUndefinedSCall, 0},
		{"parent non-static", "Foo", call("parent", "inherited"), analysis.KindUndefinedSCall, 0},
		{"parent missing", "Foo", call("parent", "missing"), analysis.KindUndefinedSCall, 1},
		{"no parent", "Base", call("parent", "anything"), analysis.KindUndefinedSCall, 1},
		{"external parent", "Lib", call("parent", "anything"), analysis.KindUndefinedSCall, 0},
		{"named static", "", call("Foo", "make"), analysis.KindUndefinedSCall, 0},
		{"named non-static", "", call("Foo", "bar"), analysis.KindUndefinedSCall, 1},
		{"named ancestor", "Foo", call("Base", "inherited"), analysis.KindUndefinedSCall, 0},
		{"named current class static", "Foo", call("Foo", "make"), analysis.KindUndefinedSCall, 0},
		{"named current class non-static", "Foo", call("Foo", "bar"), analysis.KindUndefinedSCall, 1},
		{"named missing", "", call("Foo", "missing"), analysis.KindUndefinedSCall, 1},
		{"undefined class", "", call("Nowhere", "make"), analysis.KindUndefinedClass, 1},
		{"builtin class", "", call("DateTime", "createFromFormat"), analysis.KindUndefinedClass, 0},
		{"self outside class", "", call("self", "x"), analysis.KindUndefinedSCall, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope := definition.NoClass
			if tt.scope != "" {
				scope = ids[tt.scope]
			}
			ctx := routine(table, scope, false)
			Compile(tt.expr, ctx)
			if n := countKind(ctx, tt.kind); n != tt.want {
				t.Errorf("Expected %d %s notices, got %d (%v)", tt.want, tt.kind, n, kindsOf(ctx))
			}
		})
	}

	messages := []struct {
		scope string
		expr  parser.Expr
		want  string
	}{
		{"Foo", call("self", "bar"), "Static method bar() is not exists on self scope"},
		{"Base", call("parent", "x"), "Static method x() is not exists on parent scope"},
		{"", call("Foo", "missing"), "Static method missing() is not exists on Foo scope"},
		{"", call("Nowhere", "make"), "Class Nowhere is not exists"},
	}
	for _, m := range messages {
		scope := definition.NoClass
		if m.scope != "" {
			scope = ids[m.scope]
		}
		ctx := routine(table, scope, false)
		Compile(m.expr, ctx)
		if len(ctx.Notices()) != 1 || ctx.Notices()[0].Message != m.want {
			t.Errorf("Expected message %q, got %v", m.want, ctx.Notices())
		}
	}
}

func TestPropertyFetch(t *testing.T) {
	table, ids := fixture(t)
	fetch := func(name string) *parser.PropertyFetchExpr {
		return &parser.PropertyFetchExpr{Var: this(), Name: name}
	}
	tests := []struct {
		name   string
		scope  string
		static bool
		expr   parser.Expr
		want   int
	}{
		{"declared", "Foo", false, fetch("prop"), 0},
		{"inherited", "Foo", false, fetch("baseProp"), 0},
		{"missing", "Foo", false, fetch("nope"), 1},
		{"case sensitive", "Foo", false, fetch("Prop"), 1},
		{"magic __get", "Magic", false, fetch("nope"), 0},
		{"external parent", "Lib", false, fetch("nope"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := routine(table, ids[tt.scope], tt.static)
			Compile(tt.expr, ctx)
			if n := countKind(ctx, analysis.KindUndefinedProperty); n != tt.want {
				t.Errorf("Expected %d undefined-property notices, got %d", tt.want, n)
			}
		})
	}

	t.Run("write is not a fetch", func(t *testing.T) {
		ctx := routine(table, ids["Foo"], false)
		Compile(assign(fetch("dynamic"), intLit(1)), ctx)
		if n := len(ctx.Notices()); n != 0 {
			t.Errorf("Expected no notices, got %v", kindsOf(ctx))
		}
	})

	ctx := routine(table, ids["Foo"], false)
	Compile(fetch("nope"), ctx)
	if msg := ctx.Notices()[0].Message; msg != "Property nope is not exists on this scope" {
		t.Errorf("Unexpected message %q", msg)
	}
}

func TestClassConstFetch(t *testing.T) {
	table, ids := fixture(t)
	fetch := func(class, name string) *parser.ClassConstFetchExpr {
		return &parser.ClassConstFetchExpr{Class: parser.NewName(class), Name: name}
	}
	tests := []struct {
		name    string
		scope   string
		expr    parser.Expr
		want    types.Value
		notices int
	}{
		{"self", "Foo", fetch("self", "ONE"), types.NewInt(1), 0},
		{"inherited", "Foo", fetch("self", "BASE"), types.NewStr("b"), 0},
		{"parent", "Foo", fetch("parent", "BASE"), types.NewStr("b"), 0},
		{"named", "", fetch("Foo", "ONE"), types.NewInt(1), 0},
		{"static is late bound", "Foo", fetch("static", "ONE"), types.Unknown, 0},
		{"missing", "Foo", fetch("self", "TWO"), types.Unknown, 1},
		{"named missing", "", fetch("Foo", "TWO"), types.Unknown, 1},
		{"class name", "", fetch("Foo", "class"), types.NewStr("Foo"), 0},
		{"self class name", "Foo", fetch("self", "class"), types.NewStr("Foo"), 0},
		{"unknown class name", "", fetch("Nowhere", "class"), types.NewStr("Nowhere"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope := definition.NoClass
			if tt.scope != "" {
				scope = ids[tt.scope]
			}
			ctx := routine(table, scope, false)
			got := Compile(tt.expr, ctx)
			if got.Type() != tt.want.Type() || (types.IsKnown(got) && !got.Equal(tt.want)) {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
			if n := len(ctx.Notices()); n != tt.notices {
				t.Errorf("Expected %d notices, got %v", tt.notices, kindsOf(ctx))
			}
		})
	}

	ctx := routine(table, ids["Foo"], false)
	Compile(fetch("self", "TWO"), ctx)
	n := ctx.Notices()[0]
	if n.Kind != analysis.KindUndefinedConst || n.Message != "Constant TWO is not exists on self scope" {
		t.Errorf("Unexpected notice %s %q", n.Kind, n.Message)
	}
}

func TestFunctionCall(t *testing.T) {
	table, _ := fixture(t)
	tests := []struct {
		name string
		expr parser.Expr
		want int
	}{
		{"builtin", funcCall("strlen", strLit("x")), 0},
		{"builtin case insensitive", funcCall("StrLen", strLit("x")), 0},
		{"fully qualified builtin", funcCall(`\count`, arrayLit()), 0},
		{"user function", funcCall("helper", intLit(1), variable("result")), 0},
		{"missing", funcCall("does_not_exist"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := routine(table, definition.NoClass, false)
			Compile(tt.expr, ctx)
			if n := countKind(ctx, analysis.KindUndefinedFCall); n != tt.want {
				t.Errorf("Expected %d undefined-fcall notices, got %d", tt.want, n)
			}
		})
	}

	ctx := routine(table, definition.NoClass, false)
	Compile(funcCall(`App\missing`), ctx)
	if msg := ctx.Notices()[0].Message; msg != `Function App\missing() is not exists` {
		t.Errorf("Unexpected message %q", msg)
	}
}

func TestNamespacedFunctionFallback(t *testing.T) {
	ctx := analysis.NewContext("test.php", nil, nil, analysis.DefaultOptions(), nil, nil)
	ctx.BeginRoutine("test", definition.NoClass, false, definition.NewAliasTable("App"))
	got := Compile(funcCall("strlen", strLit("abc")), ctx)
	if !got.Equal(types.NewInt(3)) {
		t.Errorf("Expected 3, got %s", got)
	}
	if n := len(ctx.Notices()); n != 0 {
		t.Errorf("Expected no notices, got %v", kindsOf(ctx))
	}
}

func TestReferenceArguments(t *testing.T) {
	table, _ := fixture(t)
	ctx := routine(table, definition.NoClass, false)
	Compile(funcCall("preg_match", strLit("/a/"), strLit("a"), variable("matches")), ctx)
	Compile(funcCall("helper", intLit(1), variable("out")), ctx)
	Compile(binary(parser.OpConcat, variable("matches"), variable("out")), ctx)
	if n := len(ctx.Notices()); n != 0 {
		t.Errorf("Expected no notices, got %v", kindsOf(ctx))
	}

	// By-value arguments are still reads
	Compile(funcCall("helper", variable("nope"), variable("out")), ctx)
	if n := countKind(ctx, analysis.KindUndefinedVariable); n != 1 {
		t.Errorf("Expected 1 undefined-variable notice, got %d", n)
	}
}

func TestReferenceArgumentReadsExistingValue(t *testing.T) {
	table, _ := fixture(t)
	tests := []struct {
		name   string
		before []parser.Expr
		want   int
	}{
		// helper(1, $out) may read $out before overwriting it
		{"existing variable", []parser.Expr{assign(variable("out"), intLit(0))}, 0},
		// a fresh out-parameter is only written
		{"fresh variable", nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := routine(table, definition.NoClass, false)
			for _, e := range tt.before {
				Compile(e, ctx)
			}
			Compile(funcCall("helper", intLit(1), variable("out")), ctx)
			ctx.EndRoutine()
			if n := countKind(ctx, analysis.KindUnusedVariable); n != tt.want {
				t.Errorf("Expected %d unused-variable notices, got %d", tt.want, n)
			}
		})
	}
}

func TestNewExpression(t *testing.T) {
	table, _ := fixture(t)
	tests := []struct {
		class string
		want  int
	}{
		{"Foo", 0},
		{`\Foo`, 0},
		{"Exception", 0},
		{"Nowhere", 1},
	}
	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			ctx := routine(table, definition.NoClass, false)
			Compile(&parser.NewExpr{Class: parser.NewName(tt.class)}, ctx)
			if n := countKind(ctx, analysis.KindUndefinedClass); n != tt.want {
				t.Errorf("Expected %d undefined-class notices, got %d", tt.want, n)
			}
		})
	}
}

func TestClosureCapturesAreReads(t *testing.T) {
	ctx := routine(nil, definition.NoClass, false)
	Compile(assign(variable("outer"), intLit(1)), ctx)
	closure := &parser.UnsupportedExpr{NodeType: "Expr_Closure", Children: []parser.Node{
		&parser.UnsupportedExpr{NodeType: "Expr_ClosureUse", Children: []parser.Node{variable("outer")}},
		&parser.ExprStmt{Expr: variable("local")},
	}}
	Compile(closure, ctx)
	if n := len(ctx.Notices()); n != 0 {
		t.Errorf("Expected no notices, got %v", kindsOf(ctx))
	}
	if sym := ctx.Symbols.Lookup("outer"); sym.Gets != 1 {
		t.Errorf("Expected 1 read of $outer, got %d", sym.Gets)
	}
}

func TestDepthLimit(t *testing.T) {
	var expr parser.Expr = intLit(1)
	for i := 0; i < 50; i++ {
		expr = unary(parser.OpUnaryMinus, expr)
	}
	ctx := analysis.NewContext("test.php", nil, nil, analysis.Options{MaxDepth: 10}, nil, nil)
	ctx.BeginRoutine("deep", definition.NoClass, false, nil)
	if got := Compile(expr, ctx); types.IsKnown(got) {
		t.Errorf("Expected Unknown beyond the depth limit, got %s", got)
	}

	ctx = analysis.NewContext("test.php", nil, nil, analysis.Options{}, nil, nil)
	ctx.BeginRoutine("deep", definition.NoClass, false, nil)
	if got := Compile(expr, ctx); !got.Equal(types.NewInt(1)) {
		t.Errorf("Expected 1 without a limit, got %s", got)
	}
}

func TestUnhandledNodeIsUnknown(t *testing.T) {
	ctx := routine(nil, definition.NoClass, false)
	expr := &parser.UnsupportedExpr{NodeType: "Expr_Match", Children: []parser.Node{
		variable("subject"),
		binary(parser.OpDiv, intLit(1), intLit(0)),
	}}
	if got := Compile(expr, ctx); types.IsKnown(got) {
		t.Errorf("Expected Unknown, got %s", got)
	}
	kinds := strings.Join(kindsOf(ctx), ",")
	if kinds != analysis.KindUndefinedVariable+","+analysis.KindDivisionZero {
		t.Errorf("Expected nested notices, got %s", kinds)
	}
}

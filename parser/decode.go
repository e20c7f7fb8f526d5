package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/valyala/fastjson"

	"phpsa/types"
)

// The engine does not parse source text. It consumes the JSON AST dump of
// the external parser (nikic/php-parser, `php-parse --json-dump`): either a
// top-level array of statements, or an object {"stmts": [...], "errors": [...]}
// when the dumper also reports parse errors.

// DecodeFile reads and decodes one AST dump
func DecodeFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(path, data)
}

// Decode decodes one AST dump. path is only used for error messages and
// becomes File.Path.
func Decode(path string, data []byte) (*File, error) {
	var p fastjson.Parser
	root, err := p.ParseBytes(data)
	if err != nil {
		return nil, &SyntaxError{File: path, Msg: err.Error()}
	}

	d := &decoder{path: path}
	stmtsVal := root
	if root.Type() == fastjson.TypeObject {
		if errs := root.GetArray("errors"); len(errs) > 0 {
			first := errs[0]
			return nil, &SyntaxError{
				File: path,
				Line: first.GetInt("attributes", "startLine"),
				Msg:  string(first.GetStringBytes("message")),
			}
		}
		stmtsVal = root.Get("stmts")
		if stmtsVal == nil {
			return nil, &SyntaxError{File: path, Msg: "expected statement list"}
		}
	}
	if stmtsVal.Type() != fastjson.TypeArray {
		return nil, &SyntaxError{File: path, Msg: "expected statement list"}
	}

	stmts, err := d.stmts(stmtsVal)
	if err != nil {
		return nil, err
	}
	return &File{Path: path, Stmts: stmts}, nil
}

type decoder struct {
	path string
}

func (d *decoder) errorf(v *fastjson.Value, format string, args ...interface{}) error {
	line := 0
	if v != nil {
		line = v.GetInt("attributes", "startLine")
	}
	return &SyntaxError{File: d.path, Line: line, Msg: fmt.Sprintf(format, args...)}
}

func isNull(v *fastjson.Value) bool {
	return v == nil || v.Type() == fastjson.TypeNull
}

func nodeType(v *fastjson.Value) string {
	if v == nil || v.Type() != fastjson.TypeObject {
		return ""
	}
	return string(v.GetStringBytes("nodeType"))
}

func (d *decoder) pos(v *fastjson.Value) Position {
	attrs := v.Get("attributes")
	if attrs == nil {
		return NoPos
	}
	p := Position{
		Line:       attrs.GetInt("startLine"),
		EndLine:    attrs.GetInt("endLine"),
		StartToken: -1,
		EndToken:   -1,
	}
	if attrs.Exists("startTokenPos") {
		p.StartToken = attrs.GetInt("startTokenPos")
	}
	if attrs.Exists("endTokenPos") {
		p.EndToken = attrs.GetInt("endTokenPos")
	}
	return p
}

func (d *decoder) comments(v *fastjson.Value) []Comment {
	raw := v.GetArray("attributes", "comments")
	if len(raw) == 0 {
		return nil
	}
	out := make([]Comment, 0, len(raw))
	for _, c := range raw {
		out = append(out, Comment{
			Text: string(c.GetStringBytes("text")),
			Line: c.GetInt("line"),
			Doc:  nodeType(c) == "Comment_Doc",
		})
	}
	return out
}

// ============================================================================
// STATEMENTS
// ============================================================================

func (d *decoder) stmts(v *fastjson.Value) ([]Stmt, error) {
	if isNull(v) {
		return nil, nil
	}
	items, err := v.Array()
	if err != nil {
		return nil, d.errorf(v, "expected statement list")
	}
	out := make([]Stmt, 0, len(items))
	for _, item := range items {
		s, err := d.stmt(item)
		if err != nil {
			return nil, err
		}
		if s != nil {
			out = append(out, s)
		}
	}
	return out, nil
}

// stmt decodes one statement. It returns nil, nil for statements that carry
// nothing to analyze (Stmt_Nop, inline HTML).
func (d *decoder) stmt(v *fastjson.Value) (Stmt, error) {
	nt := nodeType(v)
	if nt == "" {
		return nil, d.errorf(v, "statement without nodeType")
	}
	pos := d.pos(v)

	switch nt {
	case "Stmt_Nop", "Stmt_InlineHTML":
		return nil, nil

	case "Stmt_Namespace":
		name, _ := d.name(v.Get("name"))
		stmts, err := d.stmts(v.Get("stmts"))
		if err != nil {
			return nil, err
		}
		return &NamespaceStmt{Pos: pos, Name: name, Stmts: stmts}, nil

	case "Stmt_Use":
		return d.useStmt(v, pos, Name{})
	case "Stmt_GroupUse":
		prefix, _ := d.name(v.Get("prefix"))
		return d.useStmt(v, pos, prefix)

	case "Stmt_Class":
		return d.classStmt(v, pos, ClassTypeClass)
	case "Stmt_Interface":
		return d.classStmt(v, pos, ClassTypeInterface)
	case "Stmt_Trait":
		return d.classStmt(v, pos, ClassTypeTrait)
	case "Stmt_Enum":
		return d.classStmt(v, pos, ClassTypeEnum)

	case "Stmt_ClassMethod":
		params, err := d.params(v.Get("params"))
		if err != nil {
			return nil, err
		}
		stmts, err := d.stmts(v.Get("stmts"))
		if err != nil {
			return nil, err
		}
		return &ClassMethodStmt{
			Pos:      pos,
			Comments: d.comments(v),
			Name:     d.identifier(v.Get("name")),
			Flags:    Modifiers(v.GetInt("flags")),
			Params:   params,
			Stmts:    stmts,
		}, nil

	case "Stmt_Property":
		s := &PropertyStmt{Pos: pos, Comments: d.comments(v), Flags: Modifiers(v.GetInt("flags"))}
		for _, item := range v.GetArray("props") {
			def, err := d.expr(item.Get("default"))
			if err != nil {
				return nil, err
			}
			s.Props = append(s.Props, &PropertyItem{
				Pos:     d.pos(item),
				Name:    d.identifier(item.Get("name")),
				Default: def,
			})
		}
		return s, nil

	case "Stmt_ClassConst":
		s := &ClassConstStmt{Pos: pos, Comments: d.comments(v), Flags: Modifiers(v.GetInt("flags"))}
		for _, item := range v.GetArray("consts") {
			val, err := d.expr(item.Get("value"))
			if err != nil {
				return nil, err
			}
			s.Consts = append(s.Consts, &ConstItem{
				Pos:   d.pos(item),
				Name:  d.identifier(item.Get("name")),
				Value: val,
			})
		}
		return s, nil

	case "Stmt_Function":
		params, err := d.params(v.Get("params"))
		if err != nil {
			return nil, err
		}
		stmts, err := d.stmts(v.Get("stmts"))
		if err != nil {
			return nil, err
		}
		return &FunctionStmt{
			Pos:      pos,
			Comments: d.comments(v),
			Name:     d.identifier(v.Get("name")),
			Params:   params,
			Stmts:    stmts,
		}, nil

	case "Stmt_Expression":
		e, err := d.expr(v.Get("expr"))
		if err != nil {
			return nil, err
		}
		return &ExprStmt{Pos: pos, Expr: e}, nil

	case "Stmt_Return":
		e, err := d.expr(v.Get("expr"))
		if err != nil {
			return nil, err
		}
		return &ReturnStmt{Pos: pos, Value: e}, nil

	case "Stmt_Echo":
		exprs, err := d.exprList(v.Get("exprs"))
		if err != nil {
			return nil, err
		}
		return &EchoStmt{Pos: pos, Exprs: exprs}, nil

	case "Stmt_If":
		return d.ifStmt(v, pos)

	case "Stmt_While":
		cond, err := d.expr(v.Get("cond"))
		if err != nil {
			return nil, err
		}
		stmts, err := d.stmts(v.Get("stmts"))
		if err != nil {
			return nil, err
		}
		return &WhileStmt{Pos: pos, Cond: cond, Stmts: stmts}, nil

	case "Stmt_Foreach":
		s := &ForeachStmt{Pos: pos, ByRef: v.GetBool("byRef")}
		var err error
		if s.Expr, err = d.expr(v.Get("expr")); err != nil {
			return nil, err
		}
		if s.KeyVar, err = d.expr(v.Get("keyVar")); err != nil {
			return nil, err
		}
		if s.ValueVar, err = d.expr(v.Get("valueVar")); err != nil {
			return nil, err
		}
		if s.Stmts, err = d.stmts(v.Get("stmts")); err != nil {
			return nil, err
		}
		return s, nil
	}

	children, err := d.children(v)
	if err != nil {
		return nil, err
	}
	return &UnsupportedStmt{Pos: pos, NodeType: nt, Children: children}, nil
}

func (d *decoder) useStmt(v *fastjson.Value, pos Position, prefix Name) (Stmt, error) {
	s := &UseStmt{Pos: pos}
	stmtType := UseType(v.GetInt("type"))
	for _, item := range v.GetArray("uses") {
		name, ok := d.name(item.Get("name"))
		if !ok {
			return nil, d.errorf(item, "use without name")
		}
		if !prefix.IsEmpty() {
			name = Name{Parts: append(append([]string{}, prefix.Parts...), name.Parts...)}
		}
		useType := UseType(item.GetInt("type"))
		if useType == 0 {
			useType = stmtType
		}
		if useType == 0 {
			useType = UseNormal
		}
		s.Uses = append(s.Uses, &UseItem{
			Pos:   d.pos(item),
			Type:  useType,
			Name:  name,
			Alias: d.identifier(item.Get("alias")),
		})
	}
	return s, nil
}

func (d *decoder) classStmt(v *fastjson.Value, pos Position, typ ClassType) (Stmt, error) {
	s := &ClassStmt{
		Pos:      pos,
		Comments: d.comments(v),
		Type:     typ,
		Name:     d.identifier(v.Get("name")),
		Flags:    Modifiers(v.GetInt("flags")),
	}
	implements := v.GetArray("implements")
	if typ == ClassTypeInterface {
		// interface I extends A, B
		implements = v.GetArray("extends")
	} else if ext, ok := d.name(v.Get("extends")); ok {
		s.Extends = &ext
	}
	for _, iface := range implements {
		if n, ok := d.name(iface); ok {
			s.Implements = append(s.Implements, n)
		}
	}
	members, err := d.stmts(v.Get("stmts"))
	if err != nil {
		return nil, err
	}
	s.Members = members
	return s, nil
}

func (d *decoder) ifStmt(v *fastjson.Value, pos Position) (Stmt, error) {
	s := &IfStmt{Pos: pos}
	var err error
	if s.Cond, err = d.expr(v.Get("cond")); err != nil {
		return nil, err
	}
	if s.Stmts, err = d.stmts(v.Get("stmts")); err != nil {
		return nil, err
	}
	for _, ei := range v.GetArray("elseifs") {
		clause := &ElseIfClause{Pos: d.pos(ei)}
		if clause.Cond, err = d.expr(ei.Get("cond")); err != nil {
			return nil, err
		}
		if clause.Stmts, err = d.stmts(ei.Get("stmts")); err != nil {
			return nil, err
		}
		s.ElseIfs = append(s.ElseIfs, clause)
	}
	if els := v.Get("else"); !isNull(els) {
		if s.Else, err = d.stmts(els.Get("stmts")); err != nil {
			return nil, err
		}
		if s.Else == nil {
			s.Else = []Stmt{}
		}
	}
	return s, nil
}

func (d *decoder) params(v *fastjson.Value) ([]*Param, error) {
	if isNull(v) {
		return nil, nil
	}
	items, err := v.Array()
	if err != nil {
		return nil, d.errorf(v, "expected parameter list")
	}
	out := make([]*Param, 0, len(items))
	for _, item := range items {
		def, err := d.expr(item.Get("default"))
		if err != nil {
			return nil, err
		}
		out = append(out, &Param{
			Pos:      d.pos(item),
			Name:     string(item.GetStringBytes("var", "name")),
			Default:  def,
			ByRef:    item.GetBool("byRef"),
			Variadic: item.GetBool("variadic"),
			Flags:    Modifiers(item.GetInt("flags")),
		})
	}
	return out, nil
}

// ============================================================================
// EXPRESSIONS
// ============================================================================

var binaryOps = map[string]BinaryOp{
	"Plus":           OpPlus,
	"Minus":          OpMinus,
	"Mul":            OpMul,
	"Div":            OpDiv,
	"Mod":            OpMod,
	"Pow":            OpPow,
	"Concat":         OpConcat,
	"Spaceship":      OpSpaceship,
	"Equal":          OpEqual,
	"NotEqual":       OpNotEqual,
	"Identical":      OpIdentical,
	"NotIdentical":   OpNotIdentical,
	"Smaller":        OpSmaller,
	"SmallerOrEqual": OpSmallerOrEqual,
	"Greater":        OpGreater,
	"GreaterOrEqual": OpGreaterOrEqual,
	"BooleanAnd":     OpBooleanAnd,
	"BooleanOr":      OpBooleanOr,
	"LogicalAnd":     OpLogicalAnd,
	"LogicalOr":      OpLogicalOr,
	"LogicalXor":     OpLogicalXor,
	"BitwiseAnd":     OpBitwiseAnd,
	"BitwiseOr":      OpBitwiseOr,
	"BitwiseXor":     OpBitwiseXor,
	"ShiftLeft":      OpShiftLeft,
	"ShiftRight":     OpShiftRight,
	"Coalesce":       OpCoalesce,
}

func (d *decoder) exprList(v *fastjson.Value) ([]Expr, error) {
	if isNull(v) {
		return nil, nil
	}
	items, err := v.Array()
	if err != nil {
		return nil, d.errorf(v, "expected expression list")
	}
	out := make([]Expr, 0, len(items))
	for _, item := range items {
		e, err := d.expr(item)
		if err != nil {
			return nil, err
		}
		if e != nil {
			out = append(out, e)
		}
	}
	return out, nil
}

// expr decodes an optional expression; JSON null yields a nil Expr
func (d *decoder) expr(v *fastjson.Value) (Expr, error) {
	if isNull(v) {
		return nil, nil
	}
	nt := nodeType(v)
	if nt == "" {
		return nil, d.errorf(v, "expression without nodeType")
	}
	pos := d.pos(v)

	if op, ok := strings.CutPrefix(nt, "Expr_BinaryOp_"); ok {
		if bop, known := binaryOps[op]; known {
			left, err := d.expr(v.Get("left"))
			if err != nil {
				return nil, err
			}
			right, err := d.expr(v.Get("right"))
			if err != nil {
				return nil, err
			}
			return &BinaryExpr{Pos: pos, Operator: bop, Left: left, Right: right}, nil
		}
	}
	if op, ok := strings.CutPrefix(nt, "Expr_AssignOp_"); ok {
		if bop, known := binaryOps[op]; known {
			target, err := d.expr(v.Get("var"))
			if err != nil {
				return nil, err
			}
			value, err := d.expr(v.Get("expr"))
			if err != nil {
				return nil, err
			}
			return &AssignOpExpr{Pos: pos, Operator: bop, Target: target, Value: value}, nil
		}
	}

	switch nt {
	case "Scalar_LNumber", "Scalar_Int":
		n, err := v.Get("value").Int64()
		if err != nil {
			// Integer literals beyond int64 are floats
			f, ferr := v.Get("value").Float64()
			if ferr != nil {
				return nil, d.errorf(v, "invalid integer literal")
			}
			return &LiteralExpr{Pos: pos, Value: types.NewFloat(f)}, nil
		}
		return &LiteralExpr{Pos: pos, Value: types.NewInt(n)}, nil

	case "Scalar_DNumber", "Scalar_Float":
		f, err := v.Get("value").Float64()
		if err != nil {
			return nil, d.errorf(v, "invalid float literal")
		}
		return &LiteralExpr{Pos: pos, Value: types.NewFloat(f)}, nil

	case "Scalar_String":
		s, err := v.Get("value").StringBytes()
		if err != nil {
			return nil, d.errorf(v, "invalid string literal")
		}
		return &LiteralExpr{Pos: pos, Value: types.NewStr(string(s))}, nil

	case "Expr_ConstFetch":
		name, ok := d.name(v.Get("name"))
		if !ok {
			return nil, d.errorf(v, "constant without name")
		}
		return &ConstFetchExpr{Pos: pos, Name: name}, nil

	case "Expr_Variable":
		nameVal := v.Get("name")
		if nameVal != nil && nameVal.Type() == fastjson.TypeString {
			return &VariableExpr{Pos: pos, Name: string(nameVal.GetStringBytes())}, nil
		}
		nameExpr, err := d.expr(nameVal)
		if err != nil {
			return nil, err
		}
		return &VariableExpr{Pos: pos, NameExpr: nameExpr}, nil

	case "Expr_Assign", "Expr_AssignRef":
		target, err := d.expr(v.Get("var"))
		if err != nil {
			return nil, err
		}
		value, err := d.expr(v.Get("expr"))
		if err != nil {
			return nil, err
		}
		return &AssignExpr{Pos: pos, Target: target, Value: value, ByRef: nt == "Expr_AssignRef"}, nil

	case "Expr_UnaryPlus", "Expr_UnaryMinus", "Expr_BooleanNot", "Expr_BitwiseNot":
		operand, err := d.expr(v.Get("expr"))
		if err != nil {
			return nil, err
		}
		op := map[string]UnaryOp{
			"Expr_UnaryPlus":  OpUnaryPlus,
			"Expr_UnaryMinus": OpUnaryMinus,
			"Expr_BooleanNot": OpNot,
			"Expr_BitwiseNot": OpBitwiseNot,
		}[nt]
		return &UnaryExpr{Pos: pos, Operator: op, Operand: operand}, nil

	case "Expr_Array", "Expr_List":
		arr := &ArrayExpr{Pos: pos}
		for _, item := range v.GetArray("items") {
			if isNull(item) {
				arr.Items = append(arr.Items, nil)
				continue
			}
			key, err := d.expr(item.Get("key"))
			if err != nil {
				return nil, err
			}
			value, err := d.expr(item.Get("value"))
			if err != nil {
				return nil, err
			}
			arr.Items = append(arr.Items, &ArrayItem{
				Pos:    d.pos(item),
				Key:    key,
				Value:  value,
				ByRef:  item.GetBool("byRef"),
				Unpack: item.GetBool("unpack"),
			})
		}
		return arr, nil

	case "Expr_Ternary":
		t := &TernaryExpr{Pos: pos}
		var err error
		if t.Cond, err = d.expr(v.Get("cond")); err != nil {
			return nil, err
		}
		if t.Then, err = d.expr(v.Get("if")); err != nil {
			return nil, err
		}
		if t.Else, err = d.expr(v.Get("else")); err != nil {
			return nil, err
		}
		return t, nil

	case "Expr_MethodCall", "Expr_NullsafeMethodCall":
		call := &MethodCallExpr{Pos: pos}
		var err error
		if call.Var, err = d.expr(v.Get("var")); err != nil {
			return nil, err
		}
		if call.Name, call.NameExpr, err = d.member(v.Get("name")); err != nil {
			return nil, err
		}
		if call.Args, err = d.args(v.Get("args")); err != nil {
			return nil, err
		}
		return call, nil

	case "Expr_StaticCall":
		call := &StaticCallExpr{Pos: pos}
		var err error
		if call.Class, call.ClassExpr, err = d.class(v.Get("class")); err != nil {
			return nil, err
		}
		if call.Name, call.NameExpr, err = d.member(v.Get("name")); err != nil {
			return nil, err
		}
		if call.Args, err = d.args(v.Get("args")); err != nil {
			return nil, err
		}
		return call, nil

	case "Expr_PropertyFetch", "Expr_NullsafePropertyFetch":
		fetch := &PropertyFetchExpr{Pos: pos}
		var err error
		if fetch.Var, err = d.expr(v.Get("var")); err != nil {
			return nil, err
		}
		if fetch.Name, fetch.NameExpr, err = d.member(v.Get("name")); err != nil {
			return nil, err
		}
		return fetch, nil

	case "Expr_ClassConstFetch":
		fetch := &ClassConstFetchExpr{Pos: pos, Name: d.identifier(v.Get("name"))}
		var err error
		if fetch.Class, fetch.ClassExpr, err = d.class(v.Get("class")); err != nil {
			return nil, err
		}
		return fetch, nil

	case "Expr_FuncCall":
		call := &FuncCallExpr{Pos: pos}
		var err error
		if name, ok := d.name(v.Get("name")); ok {
			call.Name = name
		} else if call.NameExpr, err = d.expr(v.Get("name")); err != nil {
			return nil, err
		}
		if call.Args, err = d.args(v.Get("args")); err != nil {
			return nil, err
		}
		return call, nil

	case "Expr_New":
		n := &NewExpr{Pos: pos}
		var err error
		if nodeType(v.Get("class")) == "Stmt_Class" {
			// Anonymous class: keep it reachable for traversals only
			children, err := d.children(v)
			if err != nil {
				return nil, err
			}
			n.ClassExpr = &UnsupportedExpr{Pos: pos, NodeType: "Stmt_Class", Children: children}
		} else if n.Class, n.ClassExpr, err = d.class(v.Get("class")); err != nil {
			return nil, err
		}
		if n.Args, err = d.args(v.Get("args")); err != nil {
			return nil, err
		}
		return n, nil
	}

	children, err := d.children(v)
	if err != nil {
		return nil, err
	}
	return &UnsupportedExpr{Pos: pos, NodeType: nt, Children: children}, nil
}

func (d *decoder) args(v *fastjson.Value) ([]*Arg, error) {
	if isNull(v) {
		return nil, nil
	}
	items, err := v.Array()
	if err != nil {
		return nil, d.errorf(v, "expected argument list")
	}
	out := make([]*Arg, 0, len(items))
	for _, item := range items {
		if nodeType(item) != "Arg" {
			// VariadicPlaceholder (first-class callable syntax) has no value
			continue
		}
		value, err := d.expr(item.Get("value"))
		if err != nil {
			return nil, err
		}
		out = append(out, &Arg{
			Pos:    d.pos(item),
			Value:  value,
			ByRef:  item.GetBool("byRef"),
			Unpack: item.GetBool("unpack"),
		})
	}
	return out, nil
}

// ============================================================================
// NAMES
// ============================================================================

// name decodes Name, Name_FullyQualified, Name_Relative and Identifier
// nodes. Both the "parts" array layout and the single "name" string layout
// are accepted.
func (d *decoder) name(v *fastjson.Value) (Name, bool) {
	nt := nodeType(v)
	var n Name
	switch nt {
	case "Name":
	case "Name_FullyQualified":
		n.FullyQualified = true
	case "Name_Relative":
		n.Relative = true
	case "Identifier":
		return Name{Parts: []string{string(v.GetStringBytes("name"))}}, true
	default:
		return Name{}, false
	}
	if parts := v.GetArray("parts"); parts != nil {
		for _, p := range parts {
			n.Parts = append(n.Parts, string(p.GetStringBytes()))
		}
		return n, true
	}
	full := NewName(string(v.GetStringBytes("name")))
	n.Parts = full.Parts
	return n, true
}

// identifier decodes an Identifier/VarLikeIdentifier node or a bare string
func (d *decoder) identifier(v *fastjson.Value) string {
	if isNull(v) {
		return ""
	}
	if v.Type() == fastjson.TypeString {
		return string(v.GetStringBytes())
	}
	switch nodeType(v) {
	case "Identifier", "VarLikeIdentifier":
		return string(v.GetStringBytes("name"))
	}
	return ""
}

// member decodes a method or property name, which is either an identifier
// or an arbitrary expression
func (d *decoder) member(v *fastjson.Value) (string, Expr, error) {
	if name := d.identifier(v); name != "" {
		return name, nil, nil
	}
	e, err := d.expr(v)
	return "", e, err
}

// class decodes the class part of a static reference: a name or an expression
func (d *decoder) class(v *fastjson.Value) (Name, Expr, error) {
	if n, ok := d.name(v); ok {
		return n, nil, nil
	}
	e, err := d.expr(v)
	return Name{}, e, err
}

// ============================================================================
// UNSUPPORTED NODES
// ============================================================================

// children collects every nested statement or expression of a node the
// engine does not model, in key order.
func (d *decoder) children(v *fastjson.Value) ([]Node, error) {
	obj, err := v.Object()
	if err != nil {
		return nil, nil
	}
	var out []Node
	var firstErr error
	obj.Visit(func(key []byte, field *fastjson.Value) {
		if firstErr != nil {
			return
		}
		switch string(key) {
		case "nodeType", "attributes":
			return
		}
		nodes, err := d.collect(field)
		if err != nil {
			firstErr = err
			return
		}
		out = append(out, nodes...)
	})
	return out, firstErr
}

func (d *decoder) collect(v *fastjson.Value) ([]Node, error) {
	if isNull(v) {
		return nil, nil
	}
	switch v.Type() {
	case fastjson.TypeArray:
		var out []Node
		for _, item := range v.GetArray() {
			nodes, err := d.collect(item)
			if err != nil {
				return nil, err
			}
			out = append(out, nodes...)
		}
		return out, nil
	case fastjson.TypeObject:
	default:
		return nil, nil
	}

	nt := nodeType(v)
	switch {
	case nt == "":
		return nil, nil
	case nt == "Identifier" || nt == "VarLikeIdentifier" || strings.HasPrefix(nt, "Name"):
		return nil, nil
	case strings.HasPrefix(nt, "Stmt_"):
		s, err := d.stmt(v)
		if err != nil || s == nil {
			return nil, err
		}
		return []Node{s}, nil
	case strings.HasPrefix(nt, "Expr_") || strings.HasPrefix(nt, "Scalar_"):
		e, err := d.expr(v)
		if err != nil || e == nil {
			return nil, err
		}
		return []Node{e}, nil
	}
	// Structural helpers (Arg, Param, MatchArm, Const, ...): look inside
	return d.children(v)
}

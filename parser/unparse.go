package parser

import (
	"strconv"
	"strings"

	"phpsa/types"
)

// Operator precedence levels (higher = tighter binding)
const (
	precedenceLowest = iota
	precedenceAssign     // = += ...
	precedenceTernary    // ? :
	precedenceCoalesce   // ??
	precedenceOr         // ||
	precedenceAnd        // &&
	precedenceBitOr      // |
	precedenceBitXor     // ^
	precedenceBitAnd     // &
	precedenceEquality   // == != === !== <=>
	precedenceComparison // < <= > >=
	precedenceShift      // << >>
	precedenceAdditive   // + - .
	precedenceMultiply   // * / %
	precedenceUnary      // + - ! ~
	precedencePow        // **
	precedenceMember     // -> :: () (highest)
)

// Unparse renders an expression back to source form. It is used for trace
// output and notice messages, so it favours brevity: closures and other
// unsupported nodes print as their node type.
func Unparse(expr Expr) string {
	return unparseExpr(expr, precedenceLowest)
}

func unparseExpr(expr Expr, parentPrecedence int) string {
	if expr == nil {
		return ""
	}

	switch e := expr.(type) {
	case *LiteralExpr:
		return unparseLiteral(e.Value)

	case *ConstFetchExpr:
		return unparseName(e.Name)

	case *VariableExpr:
		if e.NameExpr != nil {
			return "${" + unparseExpr(e.NameExpr, precedenceLowest) + "}"
		}
		return "$" + e.Name

	case *AssignExpr:
		op := " = "
		if e.ByRef {
			op = " =& "
		}
		return wrap(unparseExpr(e.Target, precedenceAssign)+op+unparseExpr(e.Value, precedenceAssign), precedenceAssign, parentPrecedence)

	case *AssignOpExpr:
		return wrap(unparseExpr(e.Target, precedenceAssign)+" "+e.Operator.String()+"= "+unparseExpr(e.Value, precedenceAssign), precedenceAssign, parentPrecedence)

	case *BinaryExpr:
		prec := binaryPrecedence(e.Operator)
		s := unparseExpr(e.Left, prec) + " " + e.Operator.String() + " " + unparseExpr(e.Right, prec+1)
		return wrap(s, prec, parentPrecedence)

	case *UnaryExpr:
		return wrap(e.Operator.String()+unparseExpr(e.Operand, precedenceUnary), precedenceUnary, parentPrecedence)

	case *ArrayExpr:
		parts := make([]string, 0, len(e.Items))
		for _, item := range e.Items {
			if item == nil {
				parts = append(parts, "")
				continue
			}
			var sb strings.Builder
			if item.Unpack {
				sb.WriteString("...")
			}
			if item.Key != nil {
				sb.WriteString(unparseExpr(item.Key, precedenceLowest) + " => ")
			}
			if item.ByRef {
				sb.WriteString("&")
			}
			sb.WriteString(unparseExpr(item.Value, precedenceLowest))
			parts = append(parts, sb.String())
		}
		return "[" + strings.Join(parts, ", ") + "]"

	case *TernaryExpr:
		var s string
		if e.Then == nil {
			s = unparseExpr(e.Cond, precedenceTernary+1) + " ?: " + unparseExpr(e.Else, precedenceTernary+1)
		} else {
			s = unparseExpr(e.Cond, precedenceTernary+1) + " ? " + unparseExpr(e.Then, precedenceTernary+1) + " : " + unparseExpr(e.Else, precedenceTernary+1)
		}
		return wrap(s, precedenceTernary, parentPrecedence)

	case *MethodCallExpr:
		return unparseExpr(e.Var, precedenceMember) + "->" + unparseMember(e.Name, e.NameExpr) + unparseArgs(e.Args)

	case *StaticCallExpr:
		return unparseClass(e.Class, e.ClassExpr) + "::" + unparseMember(e.Name, e.NameExpr) + unparseArgs(e.Args)

	case *PropertyFetchExpr:
		return unparseExpr(e.Var, precedenceMember) + "->" + unparseMember(e.Name, e.NameExpr)

	case *ClassConstFetchExpr:
		return unparseClass(e.Class, e.ClassExpr) + "::" + e.Name

	case *FuncCallExpr:
		if e.NameExpr != nil {
			return unparseExpr(e.NameExpr, precedenceMember) + unparseArgs(e.Args)
		}
		return unparseName(e.Name) + unparseArgs(e.Args)

	case *NewExpr:
		return "new " + unparseClass(e.Class, e.ClassExpr) + unparseArgs(e.Args)

	case *UnsupportedExpr:
		return "{" + e.NodeType + "}"

	default:
		return "{?}"
	}
}

func wrap(s string, prec, parentPrecedence int) string {
	if prec < parentPrecedence {
		return "(" + s + ")"
	}
	return s
}

func unparseName(n Name) string {
	s := n.String()
	switch {
	case n.FullyQualified:
		return `\` + s
	case n.Relative:
		return `namespace\` + s
	}
	return s
}

func unparseClass(n Name, expr Expr) string {
	if expr != nil {
		return unparseExpr(expr, precedenceMember)
	}
	return unparseName(n)
}

func unparseMember(name string, expr Expr) string {
	if expr != nil {
		return "{" + unparseExpr(expr, precedenceLowest) + "}"
	}
	return name
}

func binaryPrecedence(op BinaryOp) int {
	switch op {
	case OpCoalesce:
		return precedenceCoalesce
	case OpBooleanOr, OpLogicalOr, OpLogicalXor:
		return precedenceOr
	case OpBooleanAnd, OpLogicalAnd:
		return precedenceAnd
	case OpBitwiseOr:
		return precedenceBitOr
	case OpBitwiseXor:
		return precedenceBitXor
	case OpBitwiseAnd:
		return precedenceBitAnd
	case OpEqual, OpNotEqual, OpIdentical, OpNotIdentical, OpSpaceship:
		return precedenceEquality
	case OpSmaller, OpSmallerOrEqual, OpGreater, OpGreaterOrEqual:
		return precedenceComparison
	case OpShiftLeft, OpShiftRight:
		return precedenceShift
	case OpPlus, OpMinus, OpConcat:
		return precedenceAdditive
	case OpMul, OpDiv, OpMod:
		return precedenceMultiply
	case OpPow:
		return precedencePow
	default:
		return precedenceLowest
	}
}

func unparseLiteral(v types.Value) string {
	switch val := v.(type) {
	case types.StrValue:
		// Single-quoted form: only \ and ' need escaping
		s := strings.ReplaceAll(val.Value(), `\`, `\\`)
		return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
	case types.FloatValue:
		s := val.String()
		if !strings.ContainsAny(s, ".EN") {
			s += ".0"
		}
		return s
	case types.IntValue:
		return strconv.FormatInt(val.Val, 10)
	case nil:
		return "null"
	default:
		return v.String()
	}
}

func unparseArgs(args []*Arg) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		if a == nil {
			continue
		}
		prefix := ""
		if a.Unpack {
			prefix = "..."
		} else if a.ByRef {
			prefix = "&"
		}
		parts = append(parts, prefix+unparseExpr(a.Value, precedenceLowest))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

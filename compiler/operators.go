package compiler

import (
	"math"
	"strings"

	"phpsa/parser"
	"phpsa/types"
)

// Operator folding. Every function returns types.Unknown when an operand is
// unknown or when the runtime would raise an error; notices are the
// caller's business.

// ============================================================================
// UNARY OPERATORS
// ============================================================================

// foldUnaryPlus implements +x. Scalars coerce to Integer; anything else is
// unknown.
func foldUnaryPlus(operand types.Value) types.Value {
	if !operand.Type().IsScalar() {
		return types.Unknown
	}
	i, ok := types.ToInt(operand)
	if !ok {
		return types.Unknown
	}
	return types.NewInt(i)
}

// foldUnaryMinus implements -x
func foldUnaryMinus(operand types.Value) types.Value {
	if !operand.Type().IsScalar() {
		return types.Unknown
	}
	num, ok := types.ToNumber(operand)
	if !ok {
		return types.Unknown
	}
	switch v := num.(type) {
	case types.IntValue:
		if v.Val == math.MinInt64 {
			return types.NewFloat(-float64(v.Val))
		}
		return types.NewInt(-v.Val)
	case types.FloatValue:
		return types.NewFloat(-v.Val)
	}
	return types.Unknown
}

// foldNot implements !x
func foldNot(operand types.Value) types.Value {
	b, ok := types.ToBool(operand)
	if !ok {
		return types.Unknown
	}
	return types.NewBool(!b)
}

// foldBitwiseNot implements ~x for ints and floats
func foldBitwiseNot(operand types.Value) types.Value {
	switch v := operand.(type) {
	case types.IntValue:
		return types.NewInt(^v.Val)
	case types.FloatValue:
		i, _ := types.ToInt(v)
		return types.NewInt(^i)
	}
	return types.Unknown
}

// ============================================================================
// BINARY OPERATORS
// ============================================================================

// foldBinary dispatches on the operator
func foldBinary(op parser.BinaryOp, left, right types.Value) types.Value {
	switch op {
	case parser.OpSpaceship:
		// Ordering is not computed; the result is a well-typed placeholder
		return types.NewInt(0)
	case parser.OpCoalesce:
		if left.Type() == types.TYPE_NULL {
			return right
		}
		if types.IsKnown(left) {
			return left
		}
		return types.Unknown
	}

	if !types.IsKnown(left) || !types.IsKnown(right) {
		return types.Unknown
	}

	switch op {
	case parser.OpPlus, parser.OpMinus, parser.OpMul:
		return foldArithmetic(op, left, right)
	case parser.OpDiv:
		return foldDivide(left, right)
	case parser.OpMod:
		return foldModulo(left, right)
	case parser.OpPow:
		return foldPower(left, right)
	case parser.OpConcat:
		return foldConcat(left, right)
	case parser.OpIdentical:
		return types.NewBool(identical(left, right))
	case parser.OpNotIdentical:
		return types.NewBool(!identical(left, right))
	case parser.OpEqual, parser.OpNotEqual, parser.OpSmaller, parser.OpSmallerOrEqual,
		parser.OpGreater, parser.OpGreaterOrEqual:
		return foldComparison(op, left, right)
	case parser.OpBooleanAnd, parser.OpLogicalAnd, parser.OpBooleanOr, parser.OpLogicalOr,
		parser.OpLogicalXor:
		return foldLogical(op, left, right)
	case parser.OpBitwiseAnd, parser.OpBitwiseOr, parser.OpBitwiseXor,
		parser.OpShiftLeft, parser.OpShiftRight:
		return foldBitwise(op, left, right)
	}
	return types.Unknown
}

// numericOperands converts both operands for arithmetic. Arrays never
// convert.
func numericOperands(left, right types.Value) (types.Value, types.Value, bool) {
	if !left.Type().IsScalar() || !right.Type().IsScalar() {
		return nil, nil, false
	}
	l, ok1 := types.ToNumber(left)
	r, ok2 := types.ToNumber(right)
	return l, r, ok1 && ok2
}

func asFloat(v types.Value) float64 {
	f, _ := types.ToFloat(v)
	return f
}

// foldArithmetic implements + - *. Integer overflow promotes to float.
func foldArithmetic(op parser.BinaryOp, left, right types.Value) types.Value {
	l, r, ok := numericOperands(left, right)
	if !ok {
		return types.Unknown
	}
	li, lInt := l.(types.IntValue)
	ri, rInt := r.(types.IntValue)
	if lInt && rInt {
		a, b := li.Val, ri.Val
		switch op {
		case parser.OpPlus:
			if sum := a + b; (sum > a) == (b > 0) {
				return types.NewInt(sum)
			}
		case parser.OpMinus:
			if diff := a - b; (diff < a) == (b > 0) {
				return types.NewInt(diff)
			}
		case parser.OpMul:
			if a == 0 || b == 0 {
				return types.NewInt(0)
			}
			prod := a * b
			if prod/b == a && !(a == -1 && b == math.MinInt64) && !(b == -1 && a == math.MinInt64) {
				return types.NewInt(prod)
			}
		}
	}

	a, b := asFloat(l), asFloat(r)
	switch op {
	case parser.OpPlus:
		return types.NewFloat(a + b)
	case parser.OpMinus:
		return types.NewFloat(a - b)
	default:
		return types.NewFloat(a * b)
	}
}

// foldDivide implements /. Exact integer quotients stay integers; division
// by zero is unknown.
func foldDivide(left, right types.Value) types.Value {
	l, r, ok := numericOperands(left, right)
	if !ok {
		return types.Unknown
	}
	if asFloat(r) == 0 {
		return types.Unknown
	}
	li, lInt := l.(types.IntValue)
	ri, rInt := r.(types.IntValue)
	if lInt && rInt && !(li.Val == math.MinInt64 && ri.Val == -1) && li.Val%ri.Val == 0 {
		return types.NewInt(li.Val / ri.Val)
	}
	return types.NewFloat(asFloat(l) / asFloat(r))
}

// foldModulo implements %. Operands convert to int; the sign follows the
// dividend.
func foldModulo(left, right types.Value) types.Value {
	if !left.Type().IsScalar() || !right.Type().IsScalar() {
		return types.Unknown
	}
	a, ok1 := types.ToInt(left)
	b, ok2 := types.ToInt(right)
	if !ok1 || !ok2 || b == 0 {
		return types.Unknown
	}
	if b == -1 {
		return types.NewInt(0)
	}
	return types.NewInt(a % b)
}

// foldPower implements **. Non-negative integer exponents stay integers
// unless the result overflows.
func foldPower(left, right types.Value) types.Value {
	l, r, ok := numericOperands(left, right)
	if !ok {
		return types.Unknown
	}
	li, lInt := l.(types.IntValue)
	ri, rInt := r.(types.IntValue)
	if lInt && rInt && ri.Val >= 0 {
		if result, ok := intPow(li.Val, ri.Val); ok {
			return types.NewInt(result)
		}
	}
	return types.NewFloat(math.Pow(asFloat(l), asFloat(r)))
}

// intPow computes base**exp, reporting false on overflow
func intPow(base, exp int64) (int64, bool) {
	switch base {
	case 0:
		if exp == 0 {
			return 1, true
		}
		return 0, true
	case 1:
		return 1, true
	case -1:
		if exp%2 == 0 {
			return 1, true
		}
		return -1, true
	}
	if exp > 63 {
		return 0, false
	}
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		next := result * base
		if next/base != result {
			return 0, false
		}
		result = next
	}
	return result, true
}

// foldConcat implements the . operator
func foldConcat(left, right types.Value) types.Value {
	l, ok1 := types.ToString(left)
	r, ok2 := types.ToString(right)
	if !ok1 || !ok2 || len(l)+len(r) > 1<<16 {
		return types.Unknown
	}
	return types.NewStr(l + r)
}

// identical implements ===
func identical(left, right types.Value) bool {
	return left.Type() == right.Type() && left.Equal(right)
}

// compare orders two scalars with loose comparison rules. ok is false when
// the comparison involves arrays.
func compare(left, right types.Value) (int, bool) {
	if !left.Type().IsScalar() || !right.Type().IsScalar() {
		return 0, false
	}
	lt, rt := left.Type(), right.Type()

	// null and bool compare as booleans, except null against a string
	if lt == types.TYPE_BOOL || rt == types.TYPE_BOOL ||
		(lt == types.TYPE_NULL && rt != types.TYPE_STR) || (rt == types.TYPE_NULL && lt != types.TYPE_STR) {
		lb, _ := types.ToBool(left)
		rb, _ := types.ToBool(right)
		return boolCmp(lb, rb), true
	}

	if lt == types.TYPE_STR && rt == types.TYPE_STR || lt == types.TYPE_NULL || rt == types.TYPE_NULL {
		ls, _ := types.ToString(left)
		rs, _ := types.ToString(right)
		ln, lWhole := types.NumericPrefix(ls)
		rn, rWhole := types.NumericPrefix(rs)
		if lWhole && rWhole && ls != "" && rs != "" {
			return floatCmp(asFloat(ln), asFloat(rn)), true
		}
		return strings.Compare(ls, rs), true
	}

	// number against number, or number against string
	if lt == types.TYPE_STR || rt == types.TYPE_STR {
		str, num, flip := left, right, -1
		if rt == types.TYPE_STR {
			str, num, flip = right, left, 1
		}
		s, _ := types.ToString(str)
		if parsed, whole := types.NumericPrefix(s); whole {
			return flip * floatCmp(asFloat(num), asFloat(parsed)), true
		}
		ns, _ := types.ToString(num)
		return flip * strings.Compare(ns, s), true
	}
	return floatCmp(asFloat(left), asFloat(right)), true
}

func boolCmp(a, b bool) int {
	switch {
	case a == b:
		return 0
	case b:
		return -1
	default:
		return 1
	}
}

func floatCmp(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// foldComparison implements == != < <= > >=
func foldComparison(op parser.BinaryOp, left, right types.Value) types.Value {
	c, ok := compare(left, right)
	if !ok {
		if op == parser.OpEqual || op == parser.OpNotEqual {
			if la, isArr := left.(types.ArrayValue); isArr && la.Len() == 0 {
				if ra, isArr := right.(types.ArrayValue); isArr {
					return types.NewBool((ra.Len() == 0) == (op == parser.OpEqual))
				}
			}
		}
		return types.Unknown
	}
	switch op {
	case parser.OpEqual:
		return types.NewBool(c == 0)
	case parser.OpNotEqual:
		return types.NewBool(c != 0)
	case parser.OpSmaller:
		return types.NewBool(c < 0)
	case parser.OpSmallerOrEqual:
		return types.NewBool(c <= 0)
	case parser.OpGreater:
		return types.NewBool(c > 0)
	default:
		return types.NewBool(c >= 0)
	}
}

// foldLogical implements && || and or xor
func foldLogical(op parser.BinaryOp, left, right types.Value) types.Value {
	l, ok1 := types.ToBool(left)
	r, ok2 := types.ToBool(right)
	if !ok1 || !ok2 {
		return types.Unknown
	}
	switch op {
	case parser.OpBooleanAnd, parser.OpLogicalAnd:
		return types.NewBool(l && r)
	case parser.OpBooleanOr, parser.OpLogicalOr:
		return types.NewBool(l || r)
	default:
		return types.NewBool(l != r)
	}
}

// foldBitwise implements & | ^ << >> on integers
func foldBitwise(op parser.BinaryOp, left, right types.Value) types.Value {
	if !left.Type().IsNumeric() || !right.Type().IsNumeric() {
		return types.Unknown
	}
	a, _ := types.ToInt(left)
	b, _ := types.ToInt(right)
	switch op {
	case parser.OpBitwiseAnd:
		return types.NewInt(a & b)
	case parser.OpBitwiseOr:
		return types.NewInt(a | b)
	case parser.OpBitwiseXor:
		return types.NewInt(a ^ b)
	case parser.OpShiftLeft, parser.OpShiftRight:
		if b < 0 {
			return types.Unknown
		}
		if b >= 64 {
			if op == parser.OpShiftRight && a < 0 {
				return types.NewInt(-1)
			}
			return types.NewInt(0)
		}
		if op == parser.OpShiftLeft {
			return types.NewInt(a << uint(b))
		}
		return types.NewInt(a >> uint(b))
	}
	return types.Unknown
}

// isArithmetic reports operators that reject array operands
func isArithmetic(op parser.BinaryOp) bool {
	switch op {
	case parser.OpPlus, parser.OpMinus, parser.OpMul, parser.OpDiv, parser.OpMod, parser.OpPow:
		return true
	}
	return false
}

// unsupportedOperands reports an arithmetic operation that throws a type
// error at runtime: an array with a scalar, or two arrays with anything but +
func unsupportedOperands(op parser.BinaryOp, left, right types.Value) bool {
	if !isArithmetic(op) || !types.IsKnown(left) || !types.IsKnown(right) {
		return false
	}
	la := left.Type() == types.TYPE_ARRAY
	ra := right.Type() == types.TYPE_ARRAY
	if la && ra {
		return op != parser.OpPlus
	}
	return la || ra
}

// typeName is the runtime's name of a value type in error messages
func typeName(v types.Value) string {
	switch v.Type() {
	case types.TYPE_NULL:
		return "null"
	case types.TYPE_BOOL:
		return "bool"
	case types.TYPE_INT:
		return "int"
	case types.TYPE_FLOAT:
		return "float"
	case types.TYPE_STR:
		return "string"
	case types.TYPE_ARRAY:
		return "array"
	}
	return "mixed"
}

package builtins

import (
	"math"

	"phpsa/types"
)

// ============================================================================
// MATH BUILTINS
// ============================================================================

func registerMath(r *Registry) {
	r.Register("abs", builtinAbs)
	r.Register("max", builtinMax)
	r.Register("min", builtinMin)
	r.Register("floor", builtinFloor)
	r.Register("ceil", builtinCeil)
	r.Register("sqrt", builtinSqrt)
	r.Register("intdiv", builtinIntdiv)
	r.Register("pi", func(args []types.Value) types.Value {
		if len(args) != 0 {
			return types.Unknown
		}
		return types.NewFloat(math.Pi)
	})

	r.RegisterNames(
		"round", "pow", "fmod", "exp", "log", "log10", "sin", "cos", "tan",
		"rand", "mt_rand", "random_int", "mt_srand", "is_nan", "is_finite",
		"is_infinite", "base_convert", "bindec", "decbin", "octdec", "decoct",
	)
}

// abs(number) -> int|float
func builtinAbs(args []types.Value) types.Value {
	if len(args) != 1 {
		return types.Unknown
	}
	switch v := args[0].(type) {
	case types.IntValue:
		if v.Val == math.MinInt64 {
			return types.NewFloat(-float64(v.Val))
		}
		if v.Val < 0 {
			return types.NewInt(-v.Val)
		}
		return v
	case types.FloatValue:
		return types.NewFloat(math.Abs(v.Val))
	default:
		return types.Unknown
	}
}

// numericArgs returns the float form of each argument and whether all of
// them are ints
func numericArgs(args []types.Value) ([]float64, bool, bool) {
	out := make([]float64, len(args))
	allInt := true
	for i, a := range args {
		switch v := a.(type) {
		case types.IntValue:
			out[i] = float64(v.Val)
		case types.FloatValue:
			out[i] = v.Val
			allInt = false
		default:
			return nil, false, false
		}
	}
	return out, allInt, true
}

// max(num1, num2, ...) -> int|float
// Only numeric arguments are folded.
func builtinMax(args []types.Value) types.Value {
	return extremum(args, func(a, b float64) bool { return a > b })
}

// min(num1, num2, ...) -> int|float
func builtinMin(args []types.Value) types.Value {
	return extremum(args, func(a, b float64) bool { return a < b })
}

func extremum(args []types.Value, better func(a, b float64) bool) types.Value {
	if len(args) < 2 {
		return types.Unknown
	}
	nums, _, ok := numericArgs(args)
	if !ok {
		return types.Unknown
	}
	best := 0
	for i := 1; i < len(nums); i++ {
		if better(nums[i], nums[best]) {
			best = i
		}
	}
	return args[best]
}

func builtinFloor(args []types.Value) types.Value {
	return roundWith(args, math.Floor)
}

func builtinCeil(args []types.Value) types.Value {
	return roundWith(args, math.Ceil)
}

// floor and ceil always return float
func roundWith(args []types.Value, fn func(float64) float64) types.Value {
	if len(args) != 1 {
		return types.Unknown
	}
	nums, _, ok := numericArgs(args)
	if !ok {
		return types.Unknown
	}
	return types.NewFloat(fn(nums[0]))
}

func builtinSqrt(args []types.Value) types.Value {
	if len(args) != 1 {
		return types.Unknown
	}
	nums, _, ok := numericArgs(args)
	if !ok {
		return types.Unknown
	}
	return types.NewFloat(math.Sqrt(nums[0]))
}

// intdiv(int, int) -> int
// Division by zero throws at runtime and is not folded.
func builtinIntdiv(args []types.Value) types.Value {
	if len(args) != 2 {
		return types.Unknown
	}
	a, ok1 := args[0].(types.IntValue)
	b, ok2 := args[1].(types.IntValue)
	if !ok1 || !ok2 || b.Val == 0 || (a.Val == math.MinInt64 && b.Val == -1) {
		return types.Unknown
	}
	return types.NewInt(a.Val / b.Val)
}

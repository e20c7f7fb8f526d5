package types

import (
	"math"
	"strconv"
	"strings"
)

// Scalar conversions follow the language's juggling rules. Each returns
// ok=false when the input is Unknown, since nothing is known about it.

// ToInt converts a value to an integer
func ToInt(v Value) (int64, bool) {
	switch val := v.(type) {
	case NullValue:
		return 0, true
	case BoolValue:
		if val.Val {
			return 1, true
		}
		return 0, true
	case IntValue:
		return val.Val, true
	case FloatValue:
		return floatToInt(val.Val), true
	case StrValue:
		num, _ := NumericPrefix(val.Value())
		switch n := num.(type) {
		case IntValue:
			return n.Val, true
		case FloatValue:
			return floatToInt(n.Val), true
		}
		return 0, true
	case ArrayValue:
		if val.Len() == 0 {
			return 0, true
		}
		return 1, true
	default:
		return 0, false
	}
}

// ToFloat converts a value to a float
func ToFloat(v Value) (float64, bool) {
	switch val := v.(type) {
	case FloatValue:
		return val.Val, true
	case StrValue:
		num, _ := NumericPrefix(val.Value())
		switch n := num.(type) {
		case IntValue:
			return float64(n.Val), true
		case FloatValue:
			return n.Val, true
		}
		return 0, true
	default:
		i, ok := ToInt(v)
		return float64(i), ok
	}
}

// ToBool converts a value using truthiness rules: null, false, 0, 0.0, "",
// "0" and the empty array are false.
func ToBool(v Value) (bool, bool) {
	switch val := v.(type) {
	case NullValue:
		return false, true
	case BoolValue:
		return val.Val, true
	case IntValue:
		return val.Val != 0, true
	case FloatValue:
		return val.Val != 0, true
	case StrValue:
		s := val.Value()
		return s != "" && s != "0", true
	case ArrayValue:
		return val.Len() > 0, true
	default:
		return false, false
	}
}

// ToString converts a value to its string form as used by concatenation
func ToString(v Value) (string, bool) {
	switch val := v.(type) {
	case NullValue:
		return "", true
	case BoolValue:
		if val.Val {
			return "1", true
		}
		return "", true
	case IntValue:
		return val.String(), true
	case FloatValue:
		return val.String(), true
	case StrValue:
		return val.Value(), true
	case ArrayValue:
		return "Array", true
	default:
		return "", false
	}
}

// ToNumber converts a value for arithmetic: ints stay ints, floats and
// float-like strings become floats.
func ToNumber(v Value) (Value, bool) {
	switch val := v.(type) {
	case IntValue, FloatValue:
		return val, true
	case StrValue:
		num, _ := NumericPrefix(val.Value())
		return num, true
	case NullValue, BoolValue:
		i, _ := ToInt(val)
		return NewInt(i), true
	default:
		return Unknown, false
	}
}

// NumericPrefix parses the leading numeric part of s. It returns IntValue or
// FloatValue, and whole=true when the entire string (ignoring surrounding
// whitespace) was numeric. Strings with no numeric prefix yield IntValue 0.
func NumericPrefix(s string) (Value, bool) {
	trimmed := strings.TrimLeft(s, " \t\n\r\v\f")
	i := 0
	if i < len(trimmed) && (trimmed[i] == '+' || trimmed[i] == '-') {
		i++
	}
	digitsStart := i
	for i < len(trimmed) && isDigit(trimmed[i]) {
		i++
	}
	intDigits := i - digitsStart
	isFloat := false
	if i < len(trimmed) && trimmed[i] == '.' {
		j := i + 1
		for j < len(trimmed) && isDigit(trimmed[j]) {
			j++
		}
		if intDigits > 0 || j > i+1 {
			isFloat = true
			i = j
		}
	}
	if intDigits == 0 && !isFloat {
		return NewInt(0), false
	}
	if i < len(trimmed) && (trimmed[i] == 'e' || trimmed[i] == 'E') {
		j := i + 1
		if j < len(trimmed) && (trimmed[j] == '+' || trimmed[j] == '-') {
			j++
		}
		if j < len(trimmed) && isDigit(trimmed[j]) {
			for j < len(trimmed) && isDigit(trimmed[j]) {
				j++
			}
			isFloat = true
			i = j
		}
	}

	prefix := trimmed[:i]
	whole := strings.TrimRight(trimmed[i:], " \t\n\r\v\f") == ""

	if !isFloat {
		if n, err := strconv.ParseInt(prefix, 10, 64); err == nil {
			return NewInt(n), whole
		}
		// Integer overflow falls back to float
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil && !math.IsInf(f, 0) {
		return NewInt(0), false
	}
	return NewFloat(f), whole
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// floatToInt truncates toward zero. NaN, infinities and out-of-range values
// convert to 0.
func floatToInt(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0
	}
	return int64(f)
}

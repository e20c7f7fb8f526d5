package types

import (
	"math"
	"strconv"
	"strings"
)

// FloatValue represents a floating point number
type FloatValue struct {
	Val float64
}

// Type returns the type code for floats
func (f FloatValue) Type() TypeCode {
	return TYPE_FLOAT
}

// String returns the literal representation.
// Whole numbers print without a fraction ("3"), matching the language's
// float-to-string conversion.
func (f FloatValue) String() string {
	switch {
	case math.IsNaN(f.Val):
		return "NAN"
	case math.IsInf(f.Val, 1):
		return "INF"
	case math.IsInf(f.Val, -1):
		return "-INF"
	}
	abs := math.Abs(f.Val)
	if abs == 0 || (abs >= 1e-4 && abs < 1e15) {
		return strconv.FormatFloat(f.Val, 'f', -1, 64)
	}
	mant, exp, _ := strings.Cut(strconv.FormatFloat(f.Val, 'E', -1, 64), "E")
	if !strings.Contains(mant, ".") {
		mant += ".0"
	}
	e, _ := strconv.Atoi(exp)
	if e < 0 {
		return mant + "E-" + strconv.Itoa(-e)
	}
	return mant + "E+" + strconv.Itoa(e)
}

// Equal checks deep equality
func (f FloatValue) Equal(other Value) bool {
	otherFloat, ok := other.(FloatValue)
	if !ok {
		return false
	}
	// NaN != NaN (IEEE 754 semantics)
	if math.IsNaN(f.Val) || math.IsNaN(otherFloat.Val) {
		return false
	}
	return f.Val == otherFloat.Val
}

// NewFloat creates a new FloatValue
func NewFloat(val float64) FloatValue {
	return FloatValue{Val: val}
}

// IsNaN returns true if the float is NaN
func (f FloatValue) IsNaN() bool {
	return math.IsNaN(f.Val)
}

// IsInf returns true if the float is infinite
func (f FloatValue) IsInf() bool {
	return math.IsInf(f.Val, 0)
}

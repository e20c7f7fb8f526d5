package types

import "strconv"

// IntValue represents an integer
type IntValue struct {
	Val int64
}

// Type returns the type code for integers
func (i IntValue) Type() TypeCode {
	return TYPE_INT
}

// String returns the literal representation
func (i IntValue) String() string {
	return strconv.FormatInt(i.Val, 10)
}

// Equal checks deep equality
func (i IntValue) Equal(other Value) bool {
	otherInt, ok := other.(IntValue)
	if !ok {
		return false
	}
	return i.Val == otherInt.Val
}

// NewInt creates a new IntValue
func NewInt(val int64) IntValue {
	return IntValue{Val: val}
}

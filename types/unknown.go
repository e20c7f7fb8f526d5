package types

// UnknownValue is the result of an expression whose type could not be inferred.
type UnknownValue struct{}

// Unknown is the shared UnknownValue instance
var Unknown Value = UnknownValue{}

func (v UnknownValue) Type() TypeCode {
	return TYPE_UNKNOWN
}

func (v UnknownValue) String() string {
	return "<unknown>"
}

// Equal is false even against another UnknownValue: two unknowns are not
// known to be the same value.
func (v UnknownValue) Equal(other Value) bool {
	return false
}

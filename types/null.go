package types

// NullValue represents the null literal
type NullValue struct{}

// Null is the shared NullValue instance
var Null Value = NullValue{}

func (n NullValue) Type() TypeCode {
	return TYPE_NULL
}

func (n NullValue) String() string {
	return "null"
}

func (n NullValue) Equal(other Value) bool {
	_, ok := other.(NullValue)
	return ok
}

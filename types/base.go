package types

// Value is the inferred result of compiling one expression.
// The concrete type always matches Type(); Unknown carries no payload and is
// the result whenever inference cannot proceed.
type Value interface {
	Type() TypeCode
	String() string   // literal representation, used in traces and messages
	Equal(Value) bool // Deep equality
}

// IsKnown reports whether v carries a concrete type
func IsKnown(v Value) bool {
	return v != nil && v.Type() != TYPE_UNKNOWN
}

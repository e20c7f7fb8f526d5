package types

// TypeCode identifies which variant of Value a compiled expression holds
type TypeCode int

const (
	TYPE_UNKNOWN TypeCode = iota
	TYPE_NULL
	TYPE_BOOL
	TYPE_INT
	TYPE_FLOAT
	TYPE_STR
	TYPE_ARRAY
)

// String returns the string representation of the type code
func (t TypeCode) String() string {
	switch t {
	case TYPE_NULL:
		return "NULL"
	case TYPE_BOOL:
		return "BOOL"
	case TYPE_INT:
		return "INT"
	case TYPE_FLOAT:
		return "FLOAT"
	case TYPE_STR:
		return "STR"
	case TYPE_ARRAY:
		return "ARRAY"
	default:
		return "UNKNOWN"
	}
}

// IsScalar reports whether the type is one of null, bool, int, float or string
func (t TypeCode) IsScalar() bool {
	switch t {
	case TYPE_NULL, TYPE_BOOL, TYPE_INT, TYPE_FLOAT, TYPE_STR:
		return true
	}
	return false
}

// IsNumeric reports whether the type is int or float
func (t TypeCode) IsNumeric() bool {
	return t == TYPE_INT || t == TYPE_FLOAT
}

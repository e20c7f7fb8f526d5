package types

import "strings"

// ArrayValue represents an array literal as an ordered sequence of values.
// Keys are not tracked; an element whose value is not inferable is Unknown.
type ArrayValue struct {
	elements []Value
}

// NewArray creates a new array value
func NewArray(elements []Value) ArrayValue {
	return ArrayValue{elements: elements}
}

// NewEmptyArray creates an empty array
func NewEmptyArray() ArrayValue {
	return ArrayValue{elements: []Value{}}
}

// String returns the short array syntax representation
func (a ArrayValue) String() string {
	parts := make([]string, len(a.elements))
	for i, elem := range a.elements {
		parts[i] = elem.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Type returns the type code for arrays
func (a ArrayValue) Type() TypeCode {
	return TYPE_ARRAY
}

// Equal compares two arrays element by element
func (a ArrayValue) Equal(other Value) bool {
	otherArr, ok := other.(ArrayValue)
	if !ok || len(a.elements) != len(otherArr.elements) {
		return false
	}
	for i := range a.elements {
		if !a.elements[i].Equal(otherArr.elements[i]) {
			return false
		}
	}
	return true
}

// Len returns the number of elements
func (a ArrayValue) Len() int {
	return len(a.elements)
}

// Get returns the element at index (0-based), nil when out of range
func (a ArrayValue) Get(index int) Value {
	if index < 0 || index >= len(a.elements) {
		return nil
	}
	return a.elements[index]
}

// Elements returns the internal slice for iteration
func (a ArrayValue) Elements() []Value {
	return a.elements
}

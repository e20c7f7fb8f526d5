package builtins

import (
	"testing"

	"phpsa/types"
)

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name string
		want bool
	}{
		{"strlen", true},
		{"STRLEN", true},
		{`\printf`, true},
		{"sprintf", true},
		{"array_map", true},
		{"no_such_function", false},
	}
	for _, tt := range tests {
		if got := r.Has(tt.name); got != tt.want {
			t.Errorf("Has(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	if !r.HasClass(`\Exception`) || !r.HasClass("stdclass") {
		t.Error("Expected built-in classes to be registered")
	}
	if r.HasClass("MyService") {
		t.Error("MyService should not be a built-in class")
	}
}

func TestRegisterExtension(t *testing.T) {
	r := NewRegistry()
	r.RegisterNames("redis_connect")
	r.RegisterClass("Redis")
	if !r.Has("redis_connect") || !r.HasClass("redis") {
		t.Error("Expected extension stubs to be registered")
	}
	if got := r.Fold("redis_connect", nil); types.IsKnown(got) {
		t.Errorf("Expected unknown for name-only builtin, got %s", got)
	}
}

func TestFold(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name     string
		fn       string
		args     []types.Value
		expected types.Value
	}{
		{"strlen", "strlen", []types.Value{types.NewStr("hello")}, types.NewInt(5)},
		{"strtoupper", "strtoupper", []types.Value{types.NewStr("abc")}, types.NewStr("ABC")},
		{"trim", "trim", []types.Value{types.NewStr("  x \n")}, types.NewStr("x")},
		{"str_repeat", "str_repeat", []types.Value{types.NewStr("ab"), types.NewInt(3)}, types.NewStr("ababab")},
		{"abs int", "abs", []types.Value{types.NewInt(-4)}, types.NewInt(4)},
		{"abs float", "abs", []types.Value{types.NewFloat(-1.5)}, types.NewFloat(1.5)},
		{"max", "max", []types.Value{types.NewInt(1), types.NewFloat(2.5), types.NewInt(2)}, types.NewFloat(2.5)},
		{"min", "min", []types.Value{types.NewInt(3), types.NewInt(-1)}, types.NewInt(-1)},
		{"floor", "floor", []types.Value{types.NewFloat(2.7)}, types.NewFloat(2)},
		{"intdiv", "intdiv", []types.Value{types.NewInt(7), types.NewInt(2)}, types.NewInt(3)},
		{"intval string", "intval", []types.Value{types.NewStr("12abc")}, types.NewInt(12)},
		{"boolval", "boolval", []types.Value{types.NewStr("0")}, types.NewBool(false)},
		{"gettype", "gettype", []types.Value{types.NewFloat(1)}, types.NewStr("double")},
		{"is_int", "is_int", []types.Value{types.NewInt(1)}, types.NewBool(true)},
		{"is_numeric", "is_numeric", []types.Value{types.NewStr(" 1e3")}, types.NewBool(true)},
		{"count", "count", []types.Value{types.NewArray([]types.Value{types.NewInt(1), types.NewInt(2)})}, types.NewInt(2)},
		{"in_array strict", "in_array", []types.Value{types.NewInt(2), types.NewArray([]types.Value{types.NewInt(2)}), types.NewBool(true)}, types.NewBool(true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Fold(tt.fn, tt.args)
			if !got.Equal(tt.expected) {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestFoldUnknown(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name string
		fn   string
		args []types.Value
	}{
		{"unknown argument", "strlen", []types.Value{types.Unknown}},
		{"wrong arity", "strlen", nil},
		{"name only", "printf", []types.Value{types.NewStr("x")}},
		{"not registered", "nope", nil},
		{"intdiv by zero", "intdiv", []types.Value{types.NewInt(1), types.NewInt(0)}},
		{"loose in_array", "in_array", []types.Value{types.NewInt(1), types.NewEmptyArray(), types.NewBool(false)}},
		{"strlen of int", "strlen", []types.Value{types.NewInt(12)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Fold(tt.fn, tt.args); types.IsKnown(got) {
				t.Errorf("Expected unknown, got %s", got)
			}
		})
	}
}

func TestRefParams(t *testing.T) {
	r := NewRegistry()
	if !r.IsRefParam("preg_match", 2) || !r.IsRefParam(`\PREG_MATCH`, 2) {
		t.Error("Expected preg_match matches argument to be by reference")
	}
	if r.IsRefParam("preg_match", 1) || r.IsRefParam("strlen", 0) {
		t.Error("Expected value parameters not to be by reference")
	}
}

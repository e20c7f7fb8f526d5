package types

import (
	"math"
	"testing"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name     string
		val      Value
		expected int64
	}{
		{"null", Null, 0},
		{"true", NewBool(true), 1},
		{"false", NewBool(false), 0},
		{"int", NewInt(7), 7},
		{"float truncates", NewFloat(3.99), 3},
		{"negative float truncates", NewFloat(-3.99), -3},
		{"nan", NewFloat(math.NaN()), 0},
		{"inf", NewFloat(math.Inf(-1)), 0},
		{"numeric string", NewStr("42"), 42},
		{"leading whitespace", NewStr("  12abc"), 12},
		{"float string", NewStr("1.9"), 1},
		{"exponent string", NewStr("1e3"), 1000},
		{"non numeric string", NewStr("abc"), 0},
		{"empty string", NewStr(""), 0},
		{"empty array", NewEmptyArray(), 0},
		{"non-empty array", NewArray([]Value{Null}), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToInt(tt.val)
			if !ok {
				t.Fatalf("Expected conversion to succeed")
			}
			if got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}

	if _, ok := ToInt(Unknown); ok {
		t.Error("Unknown should not convert")
	}
}

func TestToBool(t *testing.T) {
	falsy := []Value{Null, NewBool(false), NewInt(0), NewFloat(0), NewStr(""), NewStr("0"), NewEmptyArray()}
	for _, v := range falsy {
		if b, ok := ToBool(v); !ok || b {
			t.Errorf("%s should be falsy", v)
		}
	}
	truthy := []Value{NewBool(true), NewInt(-1), NewFloat(0.1), NewStr("0.0"), NewStr("a"), NewArray([]Value{Null})}
	for _, v := range truthy {
		if b, ok := ToBool(v); !ok || !b {
			t.Errorf("%s should be truthy", v)
		}
	}
}

func TestToString(t *testing.T) {
	tests := []struct {
		val      Value
		expected string
	}{
		{Null, ""},
		{NewBool(true), "1"},
		{NewBool(false), ""},
		{NewInt(10), "10"},
		{NewFloat(2.5), "2.5"},
		{NewStr("x"), "x"},
		{NewEmptyArray(), "Array"},
	}
	for _, tt := range tests {
		got, ok := ToString(tt.val)
		if !ok || got != tt.expected {
			t.Errorf("ToString(%s): expected %q, got %q", tt.val, tt.expected, got)
		}
	}
}

func TestNumericPrefix(t *testing.T) {
	tests := []struct {
		input    string
		expected Value
		whole    bool
	}{
		{"123", NewInt(123), true},
		{" 123 ", NewInt(123), true},
		{"-5", NewInt(-5), true},
		{"1.5", NewFloat(1.5), true},
		{".5", NewFloat(0.5), true},
		{"2e2", NewFloat(200), true},
		{"2e", NewInt(2), false},
		{"12abc", NewInt(12), false},
		{"abc", NewInt(0), false},
		{"99999999999999999999", NewFloat(1e20), true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, whole := NumericPrefix(tt.input)
			if !got.Equal(tt.expected) {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
			if whole != tt.whole {
				t.Errorf("Expected whole=%v, got %v", tt.whole, whole)
			}
		})
	}
}

func TestToNumber(t *testing.T) {
	n, ok := ToNumber(NewStr("2.5"))
	if !ok || !n.Equal(NewFloat(2.5)) {
		t.Errorf("Expected 2.5, got %s", n)
	}
	n, ok = ToNumber(NewBool(true))
	if !ok || !n.Equal(NewInt(1)) {
		t.Errorf("Expected 1, got %s", n)
	}
	if _, ok := ToNumber(NewEmptyArray()); ok {
		t.Error("arrays are not numbers")
	}
}

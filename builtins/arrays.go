package builtins

import (
	"phpsa/types"
)

func registerArrays(r *Registry) {
	r.Register("count", builtinCount)
	r.Register("sizeof", builtinCount)
	r.Register("array_reverse", builtinArrayReverse)
	r.Register("in_array", builtinInArray)

	r.RegisterNames(
		"array_keys", "array_values", "array_merge", "array_merge_recursive",
		"array_map", "array_filter", "array_reduce", "array_walk", "array_slice",
		"array_splice", "array_search", "array_key_exists", "key_exists",
		"array_key_first", "array_key_last", "array_unique", "array_flip",
		"array_fill", "array_fill_keys", "array_combine", "array_column",
		"array_diff", "array_diff_key", "array_intersect", "array_intersect_key",
		"array_push", "array_pop", "array_shift", "array_unshift", "array_sum",
		"array_product", "array_pad", "array_chunk", "range", "compact", "extract",
		"sort", "rsort", "usort", "uasort", "uksort", "ksort", "krsort", "asort",
		"arsort", "shuffle", "current", "key", "next", "reset", "end", "each",
		"iterator_to_array", "call_user_func", "call_user_func_array",
		"func_get_args", "func_num_args",
	)
}

// count(array) -> int
// Only array literals are folded; objects may implement Countable.
func builtinCount(args []types.Value) types.Value {
	if len(args) != 1 {
		return types.Unknown
	}
	arr, ok := args[0].(types.ArrayValue)
	if !ok {
		return types.Unknown
	}
	return types.NewInt(int64(arr.Len()))
}

func builtinArrayReverse(args []types.Value) types.Value {
	if len(args) != 1 {
		return types.Unknown
	}
	arr, ok := args[0].(types.ArrayValue)
	if !ok {
		return types.Unknown
	}
	elems := arr.Elements()
	out := make([]types.Value, len(elems))
	for i, e := range elems {
		out[len(elems)-1-i] = e
	}
	return types.NewArray(out)
}

// in_array(needle, haystack, strict) -> bool
// Only strict lookups are folded; loose comparison is left to runtime.
func builtinInArray(args []types.Value) types.Value {
	if len(args) != 3 {
		return types.Unknown
	}
	arr, ok := args[1].(types.ArrayValue)
	if !ok {
		return types.Unknown
	}
	strict, ok := args[2].(types.BoolValue)
	if !ok || !strict.Val {
		return types.Unknown
	}
	for _, e := range arr.Elements() {
		if e.Equal(args[0]) {
			return types.NewBool(true)
		}
	}
	return types.NewBool(false)
}
